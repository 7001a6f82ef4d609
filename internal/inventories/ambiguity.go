package inventories

// Ambiguity is a tolerance-of-ambiguity scale: sixteen questions on a
// 1-7 agreement scale summed into a single score. Even-numbered
// questions are reverse-scored.
type Ambiguity struct {
	questions []Question
}

var ambiguityQuestions = map[int]string{
	1:  "An expert who doesn't come up with a definite answer probably doesn't know much.",
	2:  "I would like to live in a foreign country for a while.",
	3:  "There is really no such thing as a problem that can't be solved.",
	4:  "People who fit their lives to a schedule probably miss most of the joy of living.",
	5:  "A good job is one where what is to be done and how it is to be done are always clear.",
	6:  "It is more fun to tackle a complicated problem than to solve a simple one.",
	7:  "In the long run it is possible to get more done by tackling small, simple problems rather than large and complicated ones.",
	8:  "Often the most interesting and stimulating people are those who don't mind being different and original.",
	9:  "What we are used to is always preferable to what is unfamiliar.",
	10: "People who insist upon a yes or no answer just don't know how complicated things really are.",
	11: "A person who leads an even, regular life in which few surprises or unexpected happenings arise really has a lot to be grateful for.",
	12: "Many of our most important decisions are based upon insufficient information.",
	13: "I like parties where I know most of the people more than ones where all or most of the people are complete strangers.",
	14: "Teachers and supervisors who hand out vague assignments give one a chance to show initiative and originality.",
	15: "The sooner we all acquire similar values and ideals the better.",
	16: "A good teacher is one who makes you wonder about your way of looking at things.",
}

func NewAmbiguity() *Ambiguity {
	return &Ambiguity{
		questions: buildQuestions(ambiguityQuestions, 1, 7, bigFiveLabels),
	}
}

func (a *Ambiguity) ID() int        { return AmbiguityID }
func (a *Ambiguity) Name() string   { return "Ambiguity" }
func (a *Ambiguity) PageCount() int { return 1 }

func (a *Ambiguity) Questions(page int) []Question {
	if page != 0 {
		return nil
	}
	return a.questions
}

func (a *Ambiguity) ComputeMetrics(answers map[int]string) (map[string]float64, error) {
	score := 0
	for qid := 1; qid <= len(ambiguityQuestions); qid++ {
		v, err := answerValue(a.Name(), answers, qid)
		if err != nil {
			return nil, err
		}

		if qid%2 == 0 {
			score += 8 - v
		} else {
			score += v
		}
	}

	return map[string]float64{"score": float64(score)}, nil
}

func (a *Ambiguity) Present(metrics map[string]float64) *Presentation {
	// Score range is 16..112 by construction.
	return &Presentation{
		Slider: &Slider{
			Minimum: 16,
			Maximum: 112,
			Markers: []SliderMarker{{Key: "you", Label: "You", Value: metrics["score"]}},
		},
	}
}
