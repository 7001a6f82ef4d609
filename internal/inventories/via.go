package inventories

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// viaItemBank is the VIA item bank: one question per line, tab
// separated fields (id, text, strength label), no header. Loaded once
// at construction; the parsed form is immutable.
//
//go:embed via_items.tsv
var viaItemBank []byte

const (
	viaQuestionsPerPage = 20

	// SignatureCount is how many top-scoring strengths form a user's
	// signature strengths.
	SignatureCount = 3
)

var viaChoiceLabels = []string{
	"Very much unlike me", "Unlike me", "Neutral", "Like me", "Very much like me",
}

// ViaCategories groups the 24 character strengths into their six
// virtue categories for display.
var ViaCategories = map[string][]string{
	"Wisdom and Knowledge": {"Creativity", "Curiosity", "Open Mindedness", "Love Of Learning", "Perspective"},
	"Courage":              {"Bravery", "Perserverance", "Integrity", "Vitality"},
	"Humanity":             {"Love", "Kindness", "Social Intelligence"},
	"Justice":              {"Citizenship", "Fairness", "Leadership"},
	"Temperance":           {"Forgiveness", "Humility", "Prudence", "Self Regulation"},
	"Transcendence":        {"Appreciation of Beauty", "Gratitude", "Hopefulness", "Humour", "Spirituality"},
}

// ViaCategoryOf maps a strength display label to its virtue category.
var ViaCategoryOf = func() map[string]string {
	inverse := make(map[string]string)
	for category, strengths := range ViaCategories {
		for _, s := range strengths {
			inverse[s] = category
		}
	}
	return inverse
}()

// StrengthKey converts a strength display label to its metric key.
func StrengthKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}

// Via is the VIA character-strengths survey: 120 questions on a 1-5
// scale across six pages, scored into one metric per strength (sum of
// the answers tagged with that strength).
type Via struct {
	pages [][]Question

	// strength metric key -> question IDs contributing to it
	scoring map[string][]int

	// strength metric key -> display label, as read from the item bank
	labels map[string]string
}

func NewVia() (*Via, error) {
	v := &Via{
		scoring: make(map[string][]int),
		labels:  make(map[string]string),
	}

	scanner := bufio.NewScanner(bytes.NewReader(viaItemBank))
	line := 0
	for scanner.Scan() {
		row := scanner.Text()
		if row == "" {
			continue
		}
		line++

		fields := strings.Split(row, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("via item bank line %d: want 3 tab-separated fields, got %d", line, len(fields))
		}

		qid, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("via item bank line %d: bad question id %q", line, fields[0])
		}

		if (line-1)%viaQuestionsPerPage == 0 {
			v.pages = append(v.pages, make([]Question, 0, viaQuestionsPerPage))
		}
		page := len(v.pages) - 1
		v.pages[page] = append(v.pages[page], Question{
			ID:           qid,
			Text:         fields[1],
			Minimum:      1,
			Maximum:      5,
			ChoiceLabels: viaChoiceLabels,
		})

		key := StrengthKey(fields[2])
		v.scoring[key] = append(v.scoring[key], qid)
		v.labels[key] = fields[2]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read via item bank: %w", err)
	}
	if line == 0 {
		return nil, fmt.Errorf("via item bank is empty")
	}

	return v, nil
}

func (v *Via) ID() int        { return ViaID }
func (v *Via) Name() string   { return "VIA" }
func (v *Via) PageCount() int { return len(v.pages) }

func (v *Via) Questions(page int) []Question {
	if page < 0 || page >= len(v.pages) {
		return nil
	}
	return v.pages[page]
}

// StrengthCount returns how many distinct strengths the item bank
// defines.
func (v *Via) StrengthCount() int {
	return len(v.scoring)
}

// Label returns the display label for a strength metric key.
func (v *Via) Label(key string) string {
	return v.labels[key]
}

func (v *Via) ComputeMetrics(answers map[int]string) (map[string]float64, error) {
	metrics := make(map[string]float64, len(v.scoring))

	for key, qids := range v.scoring {
		total := 0
		for _, qid := range qids {
			av, err := answerValue(v.Name(), answers, qid)
			if err != nil {
				return nil, err
			}
			total += av
		}
		metrics[key] = float64(total)
	}
	return metrics, nil
}

// SignatureStrengths ranks all strengths by score and marks the top n
// as signature strengths. Ties are broken lexicographically by metric
// key so the selection is deterministic.
func (v *Via) SignatureStrengths(metrics map[string]float64, n int) []Strength {
	strengths := make([]Strength, 0, len(metrics))
	for key, value := range metrics {
		label := v.labels[key]
		strengths = append(strengths, Strength{
			Key:      key,
			Label:    label,
			Category: ViaCategoryOf[label],
			Value:    value,
		})
	}

	sort.Slice(strengths, func(i, j int) bool {
		if strengths[i].Value != strengths[j].Value {
			return strengths[i].Value > strengths[j].Value
		}
		return strengths[i].Key < strengths[j].Key
	})

	for i := range strengths {
		strengths[i].IsSignature = i < n
	}
	return strengths
}

func (v *Via) Present(metrics map[string]float64) *Presentation {
	return &Presentation{Strengths: v.SignatureStrengths(metrics, SignatureCount)}
}
