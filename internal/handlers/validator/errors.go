package validator

import (
	"fmt"
)

// ErrInvalidField names the first field of a form that failed validation.
type ErrInvalidField struct {
	error
	Field string
}

func NewErrInvalidField(field, message string) *ErrInvalidField {
	return &ErrInvalidField{error: fmt.Errorf("%s %s", field, message), Field: field}
}
