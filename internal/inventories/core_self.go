package inventories

// CoreSelf is the Core Self Evaluation Scale: twelve questions on a
// 1-5 agreement scale folded into a single score. Even-numbered
// questions are negatively worded and reverse-scored.
type CoreSelf struct {
	questions []Question
}

var coreSelfLabels = []string{"DS", "D", "N", "A", "AS"}

var coreSelfQuestions = map[int]string{
	1:  "I am confident I get the success I deserve in life.",
	2:  "Sometimes I feel depressed.",
	3:  "When I try, I generally succeed.",
	4:  "Sometimes when I fail I feel worthless.",
	5:  "I complete tasks successfully.",
	6:  "Sometimes, I do not feel in control of my work.",
	7:  "Overall, I am satisfied with myself.",
	8:  "I am filled with doubts about my competence.",
	9:  "I determine what will happen in my life.",
	10: "I do not feel in control of my success in my career.",
	11: "I am capable of coping with most of my problems.",
	12: "There are times when things look pretty bleak and hopeless to me.",
}

func NewCoreSelf() *CoreSelf {
	return &CoreSelf{
		questions: buildQuestions(coreSelfQuestions, 1, 5, coreSelfLabels),
	}
}

func (c *CoreSelf) ID() int        { return CoreSelfID }
func (c *CoreSelf) Name() string   { return "Core Self Evaluation Scale" }
func (c *CoreSelf) PageCount() int { return 1 }

func (c *CoreSelf) Questions(page int) []Question {
	if page != 0 {
		return nil
	}
	return c.questions
}

func (c *CoreSelf) ComputeMetrics(answers map[int]string) (map[string]float64, error) {
	score := 0
	for qid := 1; qid <= len(coreSelfQuestions); qid++ {
		v, err := answerValue(c.Name(), answers, qid)
		if err != nil {
			return nil, err
		}

		if qid%2 == 0 {
			score += 6 - v
		} else {
			score += v
		}
	}

	return map[string]float64{"score": float64(score) / 12}, nil
}

func (c *CoreSelf) Present(metrics map[string]float64) *Presentation {
	return &Presentation{
		Slider: &Slider{
			Minimum: 1,
			Maximum: 5,
			Markers: []SliderMarker{{Key: "you", Label: "You", Value: metrics["score"]}},
		},
	}
}
