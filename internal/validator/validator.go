package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/leadlab/inventory-service/internal/inventories"
)

// Validator combines struct tag validation with answer validation.
type Validator struct {
	structValidator *validator.Validate
	answerValidator *AnswerValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
		answerValidator: NewAnswerValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate performs struct tag validation and converts failures to the
// shared error type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if converted := ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

// Answers returns the answer validator
func (v *Validator) Answers() *AnswerValidator {
	return v.answerValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("inventory_id", validateInventoryID)
	validate.RegisterValidation("export_format", validateExportFormat)

	// Use json tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateInventoryID(fl validator.FieldLevel) bool {
	id := fl.Field().Int()
	return id >= int64(inventories.BigFiveID) && id <= int64(inventories.ViaID)
}

func validateExportFormat(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "xlsx", "json":
		return true
	}
	return false
}
