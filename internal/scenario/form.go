package scenario

import (
	"fmt"
	"math"

	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/mozark/roi-planner/internal/estimation/calculators"
)

// ErrUnknownIndustry is returned when an industry key is not in the benchmark table.
type ErrUnknownIndustry struct {
	Industry string
}

func (e *ErrUnknownIndustry) Error() string {
	return fmt.Sprintf("unknown industry %q", e.Industry)
}

// Form holds the QA calculator inputs of one session.
//
// monthlyTestCycles depends on manualTesters, weeklyTestingHours, releaseFrequency and
// industry: a change to one of them snaps it back to the rounded capacity estimate.
// Setting it directly marks it as overridden until the next driver change.
type Form struct {
	table            benchmark.Table
	bench            benchmark.IndustryBenchmark
	inputs           calculators.QAInputs
	cyclesOverridden bool
}

// NewForm starts a form for the industry with every slider at its default.
func NewForm(table benchmark.Table, industry string) (*Form, error) {
	b, ok := table.Get(industry)
	if !ok {
		return nil, &ErrUnknownIndustry{Industry: industry}
	}
	return &Form{table: table, bench: b, inputs: calculators.DefaultQAInputs(b)}, nil
}

// Restore rebuilds a form from stored inputs without re-snapping.
// Slider values are clamped into the benchmark ranges, devicesUsed is kept as stored.
func Restore(table benchmark.Table, inputs calculators.QAInputs, cyclesOverridden bool) (*Form, error) {
	b, ok := table.Get(inputs.Industry)
	if !ok {
		return nil, &ErrUnknownIndustry{Industry: inputs.Industry}
	}
	f := &Form{table: table, bench: b, cyclesOverridden: cyclesOverridden}
	f.inputs = calculators.QAInputs{
		Industry:           b.Key,
		ManualTesters:      b.TypicalTesters.Clamp(inputs.ManualTesters),
		TesterSalary:       b.TypicalSalary.Clamp(inputs.TesterSalary),
		WeeklyTestingHours: calculators.WeeklyTestingHoursRange.Clamp(inputs.WeeklyTestingHours),
		MonthlyTestCycles:  b.TypicalTestCycles.Clamp(inputs.MonthlyTestCycles),
		DevicesUsed:        inputs.DevicesUsed,
		ReleaseFrequency:   b.TypicalReleases.Clamp(inputs.ReleaseFrequency),
	}
	return f, nil
}

func (f *Form) Inputs() calculators.QAInputs { return f.inputs }

func (f *Form) Benchmark() benchmark.IndustryBenchmark { return f.bench }

// CyclesOverridden reports whether monthlyTestCycles was set by hand since the last snap.
func (f *Form) CyclesOverridden() bool { return f.cyclesOverridden }

// Capacity is the unrounded test cycle capacity estimate for the current inputs.
func (f *Form) Capacity() float64 {
	return calculators.TestCycleCapacity(f.inputs, f.bench)
}

func (f *Form) Results() calculators.QAResults {
	return calculators.CalculateQA(f.inputs, f.bench)
}

// SetIndustry switches the benchmark and resets testers, salary and releases to the
// midpoints of its ranges. devicesUsed is market driven and keeps its value, even when it
// falls outside the new benchmark's typical range. Selecting the current industry is a no-op.
func (f *Form) SetIndustry(industry string) error {
	b, ok := f.table.Get(industry)
	if !ok {
		return &ErrUnknownIndustry{Industry: industry}
	}
	if b.Key == f.bench.Key {
		return nil
	}
	f.bench = b
	f.inputs.Industry = b.Key
	f.inputs.ManualTesters = b.TypicalTesters.Midpoint()
	f.inputs.TesterSalary = b.TypicalSalary.Midpoint()
	f.inputs.ReleaseFrequency = b.TypicalReleases.Midpoint()
	f.snap()
	return nil
}

// SetManualTesters and the other driver setters re-snap monthlyTestCycles only when the
// clamped value changes, so resending the current value keeps an override.
func (f *Form) SetManualTesters(v float64) {
	if setIfChanged(&f.inputs.ManualTesters, f.bench.TypicalTesters.Clamp(v)) {
		f.snap()
	}
}

func (f *Form) SetWeeklyTestingHours(v float64) {
	if setIfChanged(&f.inputs.WeeklyTestingHours, calculators.WeeklyTestingHoursRange.Clamp(v)) {
		f.snap()
	}
}

func (f *Form) SetReleaseFrequency(v float64) {
	if setIfChanged(&f.inputs.ReleaseFrequency, f.bench.TypicalReleases.Clamp(v)) {
		f.snap()
	}
}

func (f *Form) SetTesterSalary(v float64) {
	f.inputs.TesterSalary = f.bench.TypicalSalary.Clamp(v)
}

func (f *Form) SetDevicesUsed(v float64) {
	f.inputs.DevicesUsed = f.bench.TypicalDevices.Clamp(v)
}

// SetMonthlyTestCycles overrides the capacity estimate until the next driver change.
// Setting the current value changes nothing.
func (f *Form) SetMonthlyTestCycles(v float64) {
	if setIfChanged(&f.inputs.MonthlyTestCycles, f.bench.TypicalTestCycles.Clamp(v)) {
		f.cyclesOverridden = true
	}
}

// setIfChanged stores v in field and reports whether the value changed.
func setIfChanged(field *float64, v float64) bool {
	if *field == v {
		return false
	}
	*field = v
	return true
}

func (f *Form) snap() {
	f.inputs.MonthlyTestCycles = math.Round(f.Capacity())
	f.cyclesOverridden = false
}

// Update is a partial change of the form. Nil fields are left alone.
type Update struct {
	Industry           *string
	ManualTesters      *float64
	TesterSalary       *float64
	WeeklyTestingHours *float64
	MonthlyTestCycles  *float64
	DevicesUsed        *float64
	ReleaseFrequency   *float64
}

// Apply applies the update in dependency order: industry, the other capacity drivers,
// the independent fields, and an explicit monthlyTestCycles last so it survives the snap.
func (f *Form) Apply(u Update) error {
	if u.Industry != nil {
		if err := f.SetIndustry(*u.Industry); err != nil {
			return err
		}
	}
	if u.ManualTesters != nil {
		f.SetManualTesters(*u.ManualTesters)
	}
	if u.WeeklyTestingHours != nil {
		f.SetWeeklyTestingHours(*u.WeeklyTestingHours)
	}
	if u.ReleaseFrequency != nil {
		f.SetReleaseFrequency(*u.ReleaseFrequency)
	}
	if u.TesterSalary != nil {
		f.SetTesterSalary(*u.TesterSalary)
	}
	if u.DevicesUsed != nil {
		f.SetDevicesUsed(*u.DevicesUsed)
	}
	if u.MonthlyTestCycles != nil {
		f.SetMonthlyTestCycles(*u.MonthlyTestCycles)
	}
	return nil
}
