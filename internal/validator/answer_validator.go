package validator

import (
	"fmt"
	"strconv"

	"github.com/leadlab/inventory-service/internal/inventories"
)

// AnswerValidator checks a page of raw answers against the questions
// an inventory renders on that page. It rejects a page before any
// answer is persisted; scoring performs its own full-inventory check
// at completion time.
type AnswerValidator struct{}

func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{}
}

// ValidatePage verifies every question on the page has a numeric
// answer inside the question's range.
func (v *AnswerValidator) ValidatePage(inv inventories.Inventory, page int, answers map[int]string) ValidationErrors {
	var errs ValidationErrors

	for _, question := range inv.Questions(page) {
		field := fmt.Sprintf("question_%d", question.ID)

		content, ok := answers[question.ID]
		if !ok {
			errs = append(errs, *NewValidationErrorWithRule(field, "is required", "required", nil))
			continue
		}

		value, err := strconv.Atoi(content)
		if err != nil {
			errs = append(errs, *NewValidationErrorWithRule(field, "must be a number", "numeric", content))
			continue
		}

		if !question.InRange(value) {
			message := fmt.Sprintf("must be between %d and %d", question.Minimum, question.Maximum)
			errs = append(errs, *NewValidationErrorWithRule(field, message, "range", value))
		}
	}

	return errs
}

// NewValidationErrorWithRule creates a new validation error with rule
func NewValidationErrorWithRule(field, message, rule string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    rule,
	}
}
