package inventories

// CareerCommitment measures commitment to a chosen major or career
// field: eight questions on a 1-5 agreement scale scored into an
// identity factor and a planning factor. The question-to-factor
// assignment and reverse-score positions are fixed by the instrument
// and not derivable from question numbering.
type CareerCommitment struct {
	questions []Question
}

var careerCommitmentQuestions = map[int]string{
	1: "My major/career field is an important part of who I am.",
	2: "My major/career field has a great deal of personal meaning to me.",
	3: "I do not feel \"emotionally attached\" to my major/career field.",
	4: "I strongly identify with my chosen major/career field.",
	5: "I do not have a strategy for achieving my goals in my major/career field.",
	6: "I have created a plan for my development in my major/career field.",
	7: "I do not identify specific goals for my development in my major/career field.",
	8: "I do not often think about my personal development in my major/career field.",
}

func NewCareerCommitment() *CareerCommitment {
	return &CareerCommitment{
		questions: buildQuestions(careerCommitmentQuestions, 1, 5, coreSelfLabels),
	}
}

func (cc *CareerCommitment) ID() int        { return CareerCommitmentID }
func (cc *CareerCommitment) Name() string   { return "Career Commitment" }
func (cc *CareerCommitment) PageCount() int { return 1 }

func (cc *CareerCommitment) Questions(page int) []Question {
	if page != 0 {
		return nil
	}
	return cc.questions
}

func (cc *CareerCommitment) ComputeMetrics(answers map[int]string) (map[string]float64, error) {
	value := func(qid int, reversed bool) (float64, error) {
		v, err := answerValue(cc.Name(), answers, qid)
		if err != nil {
			return 0, err
		}
		if reversed {
			return float64(6 - v), nil
		}
		return float64(v), nil
	}

	factors := map[string][]struct {
		qid      int
		reversed bool
	}{
		"identity": {{1, false}, {2, false}, {3, true}, {4, false}},
		"planning": {{5, true}, {6, false}, {7, true}, {8, true}},
	}

	metrics := make(map[string]float64, len(factors))
	for key, items := range factors {
		sum := 0.0
		for _, item := range items {
			v, err := value(item.qid, item.reversed)
			if err != nil {
				return nil, err
			}
			sum += v
		}
		metrics[key] = sum / 4
	}
	return metrics, nil
}

func (cc *CareerCommitment) Present(metrics map[string]float64) *Presentation {
	labels := map[string]string{
		"identity": "Identity factor",
		"planning": "Planning factor",
	}

	containers := make(map[string]SliderContainer, len(labels))
	for key, label := range labels {
		containers[key] = SliderContainer{
			Labels: [2]string{label, ""},
			Slider: Slider{
				Minimum: 1,
				Maximum: 5,
				Markers: []SliderMarker{{Key: "you", Label: "You", Value: metrics[key]}},
			},
		}
	}

	return &Presentation{SliderContainers: containers}
}
