// Package validation wraps go-playground/validator with the request-level
// checks used by the transport layer.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

func init() {
	// entity_id matches the uuid identifiers handed out on create.
	err := validate.RegisterValidation("entity_id", func(fl validator.FieldLevel) bool {
		if fl.Field().String() == "" {
			// Leave empty values to the 'required' tag.
			return true
		}

		_, err := uuid.Parse(fl.Field().String())

		return err == nil
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register custom validation: %v", err))
	}
}

// ValidationError holds the per-field messages of a failed validation.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// ValidateStruct checks a request struct against its validate tags and
// returns a *ValidationError with readable messages on failure.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var validationErrors []string

		for _, err := range err.(validator.ValidationErrors) {
			var message string

			switch err.Tag() {
			case "entity_id":
				message = fmt.Sprintf("field '%s' must be a valid id", err.Field())
			case "oneof":
				message = fmt.Sprintf(
					"field '%s' must be one of: %s",
					err.Field(), err.Param(),
				)
			case "min", "max":
				message = fmt.Sprintf(
					"field '%s' failed on the '%s=%s' constraint",
					err.Field(), err.Tag(), err.Param(),
				)
			default:
				message = fmt.Sprintf(
					"field '%s' failed on the '%s' tag",
					err.Field(), err.Tag(),
				)
			}

			validationErrors = append(validationErrors, message)
		}

		return &ValidationError{Errors: validationErrors}
	}

	return nil
}
