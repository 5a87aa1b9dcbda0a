package v1alpha1

import "math"

// Calculator kinds accepted by the calculator endpoints.
const (
	CalculatorKindQA      = "qa"
	CalculatorKindOTT     = "ott"
	CalculatorKindPayment = "payment"
)

// Report formats accepted by the report endpoint.
const (
	ReportFormatCSV  = "csv"
	ReportFormatXLSX = "xlsx"
	ReportFormatHTML = "html"
)

// FiniteOrNil returns nil for infinite and NaN values, which JSON cannot carry.
func FiniteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
