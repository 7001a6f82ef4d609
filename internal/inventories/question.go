package inventories

import "fmt"

// Question is a single inventory item. Answers are integers in the
// inclusive range [Minimum, Maximum]; ChoiceLabels holds one display
// label per legal value, in order.
type Question struct {
	ID           int      `json:"id"`
	Text         string   `json:"text"`
	Minimum      int      `json:"minimum"`
	Maximum      int      `json:"maximum"`
	ChoiceLabels []string `json:"choice_labels"`
}

// Choice is one answerable option of a question.
type Choice struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Field renders the question as an answerable input descriptor for the
// presentation layer.
type Field struct {
	QuestionID int      `json:"question_id"`
	Label      string   `json:"label"`
	Choices    []Choice `json:"choices"`
}

func (q Question) Field() Field {
	choices := make([]Choice, 0, q.Maximum-q.Minimum+1)
	for v := q.Minimum; v <= q.Maximum; v++ {
		label := ""
		if i := v - q.Minimum; i < len(q.ChoiceLabels) {
			label = q.ChoiceLabels[i]
		}
		choices = append(choices, Choice{Value: v, Label: label})
	}

	return Field{
		QuestionID: q.ID,
		Label:      fmt.Sprintf("%d. %s", q.ID, q.Text),
		Choices:    choices,
	}
}

// InRange reports whether v is a legal answer value for the question.
func (q Question) InRange(v int) bool {
	return v >= q.Minimum && v <= q.Maximum
}

func buildQuestions(texts map[int]string, minimum, maximum int, labels []string) []Question {
	questions := make([]Question, 0, len(texts))
	for qid := 1; qid <= len(texts); qid++ {
		questions = append(questions, Question{
			ID:           qid,
			Text:         texts[qid],
			Minimum:      minimum,
			Maximum:      maximum,
			ChoiceLabels: labels,
		})
	}
	return questions
}
