package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/mozark/roi-planner/internal/estimation/calculators"
)

type ReportRenderer interface {
	Render(data *ReportData) ([]byte, error)
	SupportedFormat() ReportFormat
}

type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatHTML ReportFormat = "html"
)

// ContentType is the media type a rendered report is served with.
func (f ReportFormat) ContentType() string {
	switch f {
	case ReportFormatCSV:
		return "text/csv"
	case ReportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ReportFormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

type ReportOptions struct {
	Format ReportFormat
}

// ReportData is everything a renderer needs to export one scenario.
type ReportData struct {
	Scenario   ScenarioDetail
	Benchmark  benchmark.IndustryBenchmark
	Inputs     calculators.QAInputs
	Capacity   float64
	Results    calculators.QAResults
	Options    ReportOptions
	Timestamps ReportTimestamps
}

type ScenarioDetail struct {
	ID               uuid.UUID
	Name             string
	CreatedAt        time.Time
	CyclesOverridden bool
}

type ReportTimestamps struct {
	Generated     string
	GeneratedTime string
}

// Row is one labelled figure of the report. Every renderer lays out the same rows.
type Row struct {
	Label string
	Value float64
	Unit  string
}

type Section struct {
	Title string
	Rows  []Row
}

// Sections returns the inputs and results of the report in display order.
func (d *ReportData) Sections() []Section {
	return []Section{
		{
			Title: "INPUTS",
			Rows: []Row{
				{Label: "Manual testers", Value: d.Inputs.ManualTesters},
				{Label: "Tester salary", Value: d.Inputs.TesterSalary, Unit: "USD/year"},
				{Label: "Weekly testing hours", Value: d.Inputs.WeeklyTestingHours, Unit: "hours"},
				{Label: "Monthly test cycles", Value: d.Inputs.MonthlyTestCycles},
				{Label: "Devices used", Value: d.Inputs.DevicesUsed},
				{Label: "Release frequency", Value: d.Inputs.ReleaseFrequency, Unit: "releases/month"},
				{Label: "Test cycle capacity", Value: d.Capacity},
			},
		},
		{
			Title: "RESULTS",
			Rows: []Row{
				{Label: "Reduction in manual effort", Value: d.Results.ReductionManualEffort, Unit: "%"},
				{Label: "Efficiency increase", Value: d.Results.EfficiencyIncrease, Unit: "%"},
				{Label: "Annual salary savings", Value: d.Results.AnnualSalarySavings, Unit: "USD"},
				{Label: "Device cost savings", Value: d.Results.DeviceCostSavings, Unit: "USD"},
				{Label: "Total annual savings", Value: d.Results.TotalAnnualSavings, Unit: "USD"},
				{Label: "Release cycle improvement", Value: d.Results.ReleaseCycleImprovement, Unit: "%"},
				{Label: "Testing coverage improvement", Value: d.Results.TestingCoverageImprovement, Unit: "%"},
			},
		},
	}
}
