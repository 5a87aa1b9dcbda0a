// Package estimation defines a pluggable ROI calculator engine.
//
// Each calculator domain (QA testing, OTT streaming, payment processing) is encapsulated in one
// Calculator, and calculation results are aggregated by the Engine.
package estimation
