package inventories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every question ID 1..54 must appear in the scoring table exactly
// once across the six need scores. NewFiroB enforces this at
// construction; the direct check documents the invariant.
func TestFiroBScoringTableCoversEveryQuestionOnce(t *testing.T) {
	require.NoError(t, validateFiroBScoringTable())

	seen := make(map[int]int)
	for _, items := range firoBScoringTable {
		for _, item := range items {
			seen[item.QuestionID]++
		}
	}

	require.Len(t, seen, 54)
	for qid := 1; qid <= 54; qid++ {
		assert.Equal(t, 1, seen[qid], "question %d", qid)
	}
}

func TestFiroBPages(t *testing.T) {
	firoB, err := NewFiroB()
	require.NoError(t, err)

	require.Equal(t, 3, firoB.PageCount())
	assert.Len(t, firoB.Questions(0), 16)
	assert.Len(t, firoB.Questions(1), 24)
	assert.Len(t, firoB.Questions(2), 14)
	assert.Nil(t, firoB.Questions(3))

	// Pages hold disjoint, contiguous question ranges.
	assert.Equal(t, 1, firoB.Questions(0)[0].ID)
	assert.Equal(t, 17, firoB.Questions(1)[0].ID)
	assert.Equal(t, 41, firoB.Questions(2)[0].ID)
	assert.Equal(t, 54, firoB.Questions(2)[13].ID)

	// Middle page asks "how many people", the others "how often".
	assert.Equal(t, firoBFrequencyLabels, firoB.Questions(0)[0].ChoiceLabels)
	assert.Equal(t, firoBPeopleLabels, firoB.Questions(1)[0].ChoiceLabels)
	assert.Equal(t, firoBFrequencyLabels, firoB.Questions(2)[0].ChoiceLabels)
}

func TestFiroBSecondFixture(t *testing.T) {
	firoB, err := NewFiroB()
	require.NoError(t, err)

	answers := answersFromValues(map[int]int{
		1: 2, 2: 2, 3: 1, 4: 1, 5: 3,
		6: 3, 7: 2, 8: 1, 9: 2, 10: 5,
		11: 2, 12: 1, 13: 4, 14: 3, 15: 4,
		16: 2, 17: 2, 18: 3, 19: 3, 20: 3,
		21: 1, 22: 3, 23: 1, 24: 4, 25: 3,
		26: 3, 27: 1, 28: 1, 29: 1, 30: 2,
		31: 1, 32: 1, 33: 3, 34: 1, 35: 4,
		36: 1, 37: 1, 38: 1, 39: 1, 40: 5,
		41: 3, 42: 1, 43: 1, 44: 1, 45: 1,
		46: 5, 47: 3, 48: 1, 49: 1, 50: 3,
		51: 1, 52: 5, 53: 1, 54: 3,
	})

	metrics, err := firoB.ComputeMetrics(answers)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"expressed_inclusion":      6,
		"wanted_inclusion":         9,
		"expressed_control":        7,
		"wanted_control":           7,
		"expressed_affection":      7,
		"wanted_affection":         8,
		"total_expressed":          20,
		"total_wanted":             24,
		"total_inclusion":          15,
		"total_control":            14,
		"total_affection":          15,
		"social_interaction_index": 44,
	}, metrics)
}

// total_expressed + total_wanted == social_interaction_index holds by
// construction for every valid answer set.
func TestFiroBTotalsInvariant(t *testing.T) {
	firoB, err := NewFiroB()
	require.NoError(t, err)

	for _, fill := range []int{1, 2, 3, 4, 5, 6} {
		values := make(map[int]int, 54)
		for qid := 1; qid <= 54; qid++ {
			// Vary answers across the range so different buckets hit.
			values[qid] = (qid+fill)%6 + 1
		}

		metrics, err := firoB.ComputeMetrics(answersFromValues(values))
		require.NoError(t, err)

		assert.Equal(t,
			metrics["social_interaction_index"],
			metrics["total_expressed"]+metrics["total_wanted"],
			"fill %d", fill)
		assert.Equal(t,
			metrics["social_interaction_index"],
			metrics["total_inclusion"]+metrics["total_control"]+metrics["total_affection"],
			"fill %d", fill)
	}
}
