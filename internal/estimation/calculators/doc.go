// Package calculators provides the ROI models behind the estimation engine.
//
// Each model is exposed twice: as a pure typed function (CalculateQA, CalculateOTT,
// CalculatePayment) used by the API and the CLI, and as an estimation.Calculator adapter that
// reads its inputs from estimation.Param values so it can be composed via the estimation.Engine.
// All formulas are closed-form and side-effect free; recomputing from the same inputs always
// yields the same result.
package calculators
