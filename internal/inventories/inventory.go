package inventories

import (
	"fmt"
	"strconv"
)

// Inventory is a named questionnaire with a fixed question set and a
// scoring algorithm that turns a completed answer set into metrics.
// Implementations are a closed set registered in the Registry; their
// numeric IDs are storage keys and must never be reordered.
type Inventory interface {
	ID() int
	Name() string

	// PageCount is 1 for single-page inventories.
	PageCount() int

	// Questions returns the ordered question subset for the given
	// zero-based page, or nil when the page is out of range.
	Questions(page int) []Question

	// ComputeMetrics scores a complete answer set (question ID to raw
	// content). It is a pure function: no side effects, identical
	// output for identical input. Every question of the inventory must
	// be answered; a gap surfaces as *MissingAnswerError.
	ComputeMetrics(answers map[int]string) (map[string]float64, error)

	// Present transforms computed metrics into the display structure
	// consumed by the results page.
	Present(metrics map[string]float64) *Presentation
}

// MissingAnswerError reports a ComputeMetrics call with an incomplete
// answer set. This is a data-integrity failure, not user error: the
// submission layer only completes a submission once every page has
// been saved.
type MissingAnswerError struct {
	InventoryName string
	QuestionID    int
}

func (e *MissingAnswerError) Error() string {
	return fmt.Sprintf("%s: missing answer for question %d", e.InventoryName, e.QuestionID)
}

// InvalidAnswerError reports stored answer content that does not parse
// as an integer. Range validation happens at the submission boundary,
// so scoring only guards against corrupt storage.
type InvalidAnswerError struct {
	InventoryName string
	QuestionID    int
	Content       string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("%s: answer for question %d is not numeric: %q", e.InventoryName, e.QuestionID, e.Content)
}

// answerValue resolves one raw answer to its integer value.
func answerValue(name string, answers map[int]string, qid int) (int, error) {
	content, ok := answers[qid]
	if !ok {
		return 0, &MissingAnswerError{InventoryName: name, QuestionID: qid}
	}

	v, err := strconv.Atoi(content)
	if err != nil {
		return 0, &InvalidAnswerError{InventoryName: name, QuestionID: qid, Content: content}
	}
	return v, nil
}
