package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrScenarioNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "scenario")
}

func NewErrAnalysisRequestNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "analysis request")
}

func NewErrIndustryNotFound(industry string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("industry %q not found", industry)}
}

// ErrInvalidInput names the first field of a request that failed validation.
type ErrInvalidInput struct {
	error
	Field string
}

func NewErrInvalidInput(field string, err error) *ErrInvalidInput {
	return &ErrInvalidInput{error: fmt.Errorf("invalid %s: %w", field, err), Field: field}
}

func NewErrUnknownIndustry(industry string) *ErrInvalidInput {
	return NewErrInvalidInput("industry", fmt.Errorf("unknown industry %q", industry))
}

func NewErrUnsupportedReportFormat(format string) *ErrInvalidInput {
	return NewErrInvalidInput("format", fmt.Errorf("unsupported report format %q", format))
}
