package exceptions

import (
	"emr-service/internal/pkg/constvars"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single failed rule attached to a dotted field path such as
// "diagnosis.doctor".
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fieldErr := range v {
		parts = append(parts, fieldErr.Field+" "+fieldErr.Message)
	}
	return strings.Join(parts, ", ")
}

// Fields lists the failing paths in the order they were reported.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, fieldErr := range v {
		fields = append(fields, fieldErr.Field)
	}
	return fields
}

// NewValidationErrors converts validator output into field errors. The root
// struct name is dropped from each namespace so paths start at the first
// JSON field.
func NewValidationErrors(err error) ValidationErrors {
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return nil
	}

	result := make(ValidationErrors, 0, len(validatorErrs))
	for _, fieldErr := range validatorErrs {
		result = append(result, FieldError{
			Field:   fieldPath(fieldErr.Namespace()),
			Tag:     fieldErr.Tag(),
			Message: validationMessage(fieldErr.Tag(), fieldErr.Param()),
		})
	}
	return result
}

func FormatAllValidationErrors(err error) string {
	fieldErrs := NewValidationErrors(err)
	if len(fieldErrs) == 0 {
		return constvars.ErrClientCannotProcessRequest
	}
	return fieldErrs.Error()
}

func FormatFirstValidationError(err error) string {
	fieldErrs := NewValidationErrors(err)
	if len(fieldErrs) == 0 {
		return constvars.ErrDevInvalidInput
	}
	return fieldErrs[0].Field + " " + fieldErrs[0].Message
}

func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func validationMessage(tag, param string) string {
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		return "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		if tag == "oneof" {
			return strings.Replace(customMessage, "%s", strings.Join(strings.Fields(param), ", "), 1)
		}
		return strings.Replace(customMessage, "%s", param, 1)
	}
	return customMessage
}
