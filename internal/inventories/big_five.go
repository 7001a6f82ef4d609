package inventories

// BigFive is the Ten-Item Personality Inventory: ten questions on a
// 1-7 agreement scale, scored into the five personality traits. Each
// trait averages one direct-scored and one reverse-scored question.
type BigFive struct {
	questions []Question
}

var bigFiveLabels = []string{"DS", "DM", "DL", "N", "AL", "AM", "AS"}

var bigFiveQuestions = map[int]string{
	1:  "Extraverted, enthusiastic.",
	2:  "Critical, quarrelsome.",
	3:  "Dependable, self-disciplined.",
	4:  "Anxious, easily upset.",
	5:  "Open to new experiences, complex.",
	6:  "Reserved, quiet.",
	7:  "Sympathetic, warm.",
	8:  "Disorganized, careless.",
	9:  "Calm, emotionally stable.",
	10: "Conventional, uncreative.",
}

func NewBigFive() *BigFive {
	return &BigFive{
		questions: buildQuestions(bigFiveQuestions, 1, 7, bigFiveLabels),
	}
}

func (b *BigFive) ID() int        { return BigFiveID }
func (b *BigFive) Name() string   { return "Big Five" }
func (b *BigFive) PageCount() int { return 1 }

func (b *BigFive) Questions(page int) []Question {
	if page != 0 {
		return nil
	}
	return b.questions
}

func (b *BigFive) ComputeMetrics(answers map[int]string) (map[string]float64, error) {
	// Trait = (direct + reverse(other)) / 2 with reverse(x) = 8 - x.
	pairs := []struct {
		key             string
		direct, reverse int
	}{
		{"extraversion", 1, 6},
		{"agreeableness", 7, 2},
		{"conscientiousness", 3, 8},
		{"emotional_stability", 9, 4},
		{"openness", 5, 10},
	}

	metrics := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		direct, err := answerValue(b.Name(), answers, p.direct)
		if err != nil {
			return nil, err
		}
		reversed, err := answerValue(b.Name(), answers, p.reverse)
		if err != nil {
			return nil, err
		}
		metrics[p.key] = float64(direct+(8-reversed)) / 2
	}
	return metrics, nil
}

func (b *BigFive) Present(metrics map[string]float64) *Presentation {
	keys := []string{
		"extraversion",
		"agreeableness",
		"conscientiousness",
		"emotional_stability",
		"openness",
	}

	norms := []float64{4.44, 5.23, 5.4, 4.83, 5.38}

	labels := [][2]string{
		{"Introverted", "Extroverted"},
		{"Assertive", "Agreeable"},
		{"Impulsive", "Conscientious"},
		{"Anxious", "Emotionally stable"},
		{"Traditional", "Open to experience"},
	}

	traits := make(map[string]TraitScale, len(keys))
	for i, key := range keys {
		traits[key] = TraitScale{
			Value:          metrics[key],
			PopulationNorm: norms[i],
			Labels:         labels[i],
		}
	}

	return &Presentation{Traits: traits}
}
