package inventories

import (
	"fmt"
)

// FiroB is the Fundamental Interpersonal Relations Orientation
// (behavior) instrument: 54 questions on a 1-6 scale across three
// pages. Scoring is table-driven: each of the six need scores counts
// the questions whose answer falls inside that question's keyed range.
type FiroB struct {
	pages [][]Question
}

var firoBFrequencyLabels = []string{
	"Usually", "Often", "Sometimes", "Occasionally", "Rarely", "Never",
}

var firoBPeopleLabels = []string{
	"Most people", "Many people", "Some people", "A few people", "One or two people", "Nobody",
}

var firoBQuestions = []map[int]string{
	{
		1:  "I try to be with people.",
		2:  "I let other people decide what to do.",
		3:  "I join social groups.",
		4:  "I try to have close relationships with people.",
		5:  "I tend to join social organizations when I have an opportunity.",
		6:  "I let other people strongly influence my actions.",
		7:  "I try to be included in informal social activities.",
		8:  "I try to have close, personal relationships with people.",
		9:  "I try to include other people in my plans.",
		10: "I let other people control my actions.",
		11: "I try to have people around me.",
		12: "I try to get close and personal with people.",
		13: "When people are doing things together I tend to join in.",
		14: "I am easily led by people.",
		15: "I try to avoid being alone.",
		16: "I try to participate in group activities.",
	},
	{
		17: "I try to be friendly to people.",
		18: "I let other people decide what to do.",
		19: "My personal relations with people are cool and distant.",
		20: "I let other people take charge of things.",
		21: "I try to have close relationships with people.",
		22: "I let other people strongly influence my actions.",
		23: "I try to get close and personal with people.",
		24: "I let other people control my actions.",
		25: "I act cool and distant with people.",
		26: "I am easily led by people.",
		27: "I try to have close, personal relationships with people.",
		28: "I like people to invite me to things.",
		29: "I like people to act close and personal with me.",
		30: "I try to influence strongly other people's actions.",
		31: "I like people to invite me to join in their activities.",
		32: "I like people to act close toward me.",
		33: "I try to take charge of things when I am with people.",
		34: "I like people to include me in their activities.",
		35: "I like people to act cool and distant toward me.",
		36: "I like to have other people do things the way I want them done.",
		37: "I like people to ask me to participate in their discussions.",
		38: "I like people to act friendly toward me.",
		39: "I like people to invite me to participate in activities.",
		40: "I like people to act distant toward me.",
	},
	{
		41: "I try to be the dominant person when I am with people.",
		42: "I like people to invite me to things.",
		43: "I like people to act close toward me.",
		44: "I like to have other people do things I want done.",
		45: "I like people to invite me to join their activities.",
		46: "I like people to act cool and distant toward me.",
		47: "I try to influence strongly other people's actions.",
		48: "I like people to include me in their activities.",
		49: "I like people to act close and personal with me.",
		50: "I try to take charge of things when I'm with people.",
		51: "I like people to invite me to participate in activities.",
		52: "I like people to act distant toward me.",
		53: "I try to have other people do things the way I want them done.",
		54: "I take charge of things when I'm with people.",
	},
}

// scoringItem keys one question into one need score: the question
// contributes a point when its answer lies in [Low, High] inclusive.
type scoringItem struct {
	QuestionID int
	Low, High  int
}

var firoBScoringTable = map[string][]scoringItem{
	"expressed_inclusion": {
		{1, 1, 3}, {3, 1, 4}, {5, 1, 4}, {7, 1, 3},
		{9, 1, 2}, {11, 1, 2}, {13, 1, 2}, {15, 1, 1},
		{16, 1, 1},
	},
	"wanted_inclusion": {
		{28, 1, 2}, {31, 1, 2}, {34, 1, 2}, {37, 1, 1},
		{39, 1, 1}, {42, 1, 2}, {45, 1, 2}, {48, 1, 2},
		{51, 1, 2},
	},
	"expressed_control": {
		{30, 1, 3}, {33, 1, 3}, {36, 1, 2}, {41, 1, 4},
		{44, 1, 3}, {47, 1, 3}, {50, 1, 2}, {53, 1, 2},
		{54, 1, 2},
	},
	"wanted_control": {
		{2, 1, 4}, {6, 1, 4}, {10, 1, 3}, {14, 1, 3},
		{18, 1, 3}, {20, 1, 3}, {22, 1, 4}, {24, 1, 3},
		{26, 1, 3},
	},
	"expressed_affection": {
		{4, 1, 2}, {8, 1, 2}, {12, 1, 1}, {17, 1, 2},
		{19, 4, 6}, {21, 1, 2}, {23, 1, 2}, {25, 4, 6},
		{27, 1, 2},
	},
	"wanted_affection": {
		{29, 1, 2}, {32, 1, 2}, {35, 5, 6}, {38, 1, 2},
		{40, 5, 6}, {43, 1, 1}, {46, 5, 6}, {49, 1, 2},
		{52, 5, 6},
	},
}

var firoBModifiers = []string{"expressed", "wanted"}
var firoBCategories = []string{"inclusion", "control", "affection"}

// NewFiroB builds the inventory and verifies the structural invariant
// of the scoring table: every question ID 1..54 keyed exactly once
// across all six need scores.
func NewFiroB() (*FiroB, error) {
	if err := validateFiroBScoringTable(); err != nil {
		return nil, err
	}

	pageLabels := [][]string{firoBFrequencyLabels, firoBPeopleLabels, firoBFrequencyLabels}

	pages := make([][]Question, len(firoBQuestions))
	for page, texts := range firoBQuestions {
		questions := make([]Question, 0, len(texts))

		first := pageStartQuestion(page)
		for qid := first; qid < first+len(texts); qid++ {
			questions = append(questions, Question{
				ID:           qid,
				Text:         texts[qid],
				Minimum:      1,
				Maximum:      6,
				ChoiceLabels: pageLabels[page],
			})
		}
		pages[page] = questions
	}

	return &FiroB{pages: pages}, nil
}

func pageStartQuestion(page int) int {
	start := 1
	for p := 0; p < page; p++ {
		start += len(firoBQuestions[p])
	}
	return start
}

func validateFiroBScoringTable() error {
	seen := make(map[int]string, 54)
	for key, items := range firoBScoringTable {
		for _, item := range items {
			if prev, dup := seen[item.QuestionID]; dup {
				return fmt.Errorf("firo-b scoring table: question %d keyed by both %s and %s", item.QuestionID, prev, key)
			}
			seen[item.QuestionID] = key
		}
	}

	for qid := 1; qid <= 54; qid++ {
		if _, ok := seen[qid]; !ok {
			return fmt.Errorf("firo-b scoring table: question %d not keyed by any score", qid)
		}
	}
	if len(seen) != 54 {
		return fmt.Errorf("firo-b scoring table: %d questions keyed, want 54", len(seen))
	}
	return nil
}

func (f *FiroB) ID() int        { return FiroBID }
func (f *FiroB) Name() string   { return "Fundamental Interpersonal Relations Orientation-behavior" }
func (f *FiroB) PageCount() int { return len(f.pages) }

func (f *FiroB) Questions(page int) []Question {
	if page < 0 || page >= len(f.pages) {
		return nil
	}
	return f.pages[page]
}

func (f *FiroB) ComputeMetrics(answers map[int]string) (map[string]float64, error) {
	metrics := make(map[string]float64, 12)

	for key, items := range firoBScoringTable {
		score := 0
		for _, item := range items {
			v, err := answerValue(f.Name(), answers, item.QuestionID)
			if err != nil {
				return nil, err
			}
			if v >= item.Low && v <= item.High {
				score++
			}
		}
		metrics[key] = float64(score)
	}

	// Derived totals per modifier, per category, and overall.
	metrics["social_interaction_index"] = 0
	for _, modifier := range firoBModifiers {
		total := 0.0
		for _, category := range firoBCategories {
			total += metrics[modifier+"_"+category]
		}
		metrics["total_"+modifier] = total
		metrics["social_interaction_index"] += total
	}

	for _, category := range firoBCategories {
		total := 0.0
		for _, modifier := range firoBModifiers {
			total += metrics[modifier+"_"+category]
		}
		metrics["total_"+category] = total
	}

	return metrics, nil
}

func (f *FiroB) Present(metrics map[string]float64) *Presentation {
	// The results page lists the scores directly, base scores first in
	// table order, then the derived totals.
	order := make([]string, 0, 12)
	for _, modifier := range firoBModifiers {
		for _, category := range firoBCategories {
			order = append(order, modifier+"_"+category)
		}
	}
	for _, modifier := range firoBModifiers {
		order = append(order, "total_"+modifier)
	}
	for _, category := range firoBCategories {
		order = append(order, "total_"+category)
	}
	order = append(order, "social_interaction_index")

	scores := make([]MetricValue, 0, len(order))
	for _, key := range order {
		scores = append(scores, MetricValue{Key: key, Value: metrics[key]})
	}
	return &Presentation{Scores: scores}
}
