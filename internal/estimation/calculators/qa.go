package calculators

import (
	"fmt"

	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/mozark/roi-planner/internal/estimation"
)

const (
	// ParamIndustry benchmark key selecting the industry (optional, defaults to general).
	ParamIndustry = "industry"
	// ParamManualTesters number of testers doing manual test execution.
	ParamManualTesters = "manual_testers"
	// ParamTesterSalary yearly salary of one tester.
	ParamTesterSalary = "tester_salary"
	// ParamWeeklyTestingHours hours per week spent testing by each tester.
	ParamWeeklyTestingHours = "weekly_testing_hours"
	// ParamMonthlyTestCycles test cycles run per month (optional, defaults to the capacity estimate).
	ParamMonthlyTestCycles = "monthly_test_cycles"
	// ParamDevicesUsed number of physical devices in the test lab.
	ParamDevicesUsed = "devices_used"
	// ParamReleaseFrequency releases shipped per month.
	ParamReleaseFrequency = "release_frequency"

	cyclesPerTesterPerWeek = 4.0
	weeksPerMonth          = 4.0
	standardWeekHours      = 40.0
	baselineComplexity     = 3.0

	// manualTaskSalaryShare is the fraction of a tester salary spent on manual tasks.
	manualTaskSalaryShare = 0.7
	// recoverableDeviceShare is the fraction of device cost a cloud lab recovers.
	recoverableDeviceShare = 0.6
)

// WeeklyTestingHoursRange bounds weeklyTestingHours, which has no per-industry benchmark.
var WeeklyTestingHoursRange = benchmark.Range{1, 80}

// QAInputs are the slider values of the QA testing calculator.
type QAInputs struct {
	Industry           string  `json:"industry"`
	ManualTesters      float64 `json:"manualTesters"`
	TesterSalary       float64 `json:"testerSalary"`
	WeeklyTestingHours float64 `json:"weeklyTestingHours"`
	MonthlyTestCycles  float64 `json:"monthlyTestCycles"`
	DevicesUsed        float64 `json:"devicesUsed"`
	ReleaseFrequency   float64 `json:"releaseFrequency"`
}

// QAResults are derived from QAInputs and the selected benchmark. Every field is rounded.
type QAResults struct {
	ReductionManualEffort      float64 `json:"reductionManualEffort"`
	EfficiencyIncrease         float64 `json:"efficiencyIncrease"`
	AnnualSalarySavings        float64 `json:"annualSalarySavings"`
	DeviceCostSavings          float64 `json:"deviceCostSavings"`
	TotalAnnualSavings         float64 `json:"totalAnnualSavings"`
	ReleaseCycleImprovement    float64 `json:"releaseCycleImprovement"`
	TestingCoverageImprovement float64 `json:"testingCoverageImprovement"`
}

// DefaultQAInputs returns the initial form state for an industry: slider midpoints,
// a 40 hour week and the capacity estimate as monthly test cycles.
func DefaultQAInputs(b benchmark.IndustryBenchmark) QAInputs {
	in := QAInputs{
		Industry:           b.Key,
		ManualTesters:      b.TypicalTesters.Midpoint(),
		TesterSalary:       b.TypicalSalary.Midpoint(),
		WeeklyTestingHours: standardWeekHours,
		DevicesUsed:        b.TypicalDevices.Midpoint(),
		ReleaseFrequency:   b.TypicalReleases.Midpoint(),
	}
	in.MonthlyTestCycles = round(TestCycleCapacity(in, b))
	return in
}

// TestCycleCapacity estimates how many test cycles the team can run per month,
// bounded by the benchmark's typical test cycles.
func TestCycleCapacity(in QAInputs, b benchmark.IndustryBenchmark) float64 {
	baseMonthlyCycles := in.ManualTesters * cyclesPerTesterPerWeek * weeksPerMonth
	hoursMultiplier := in.WeeklyTestingHours / standardWeekHours
	releaseMultiplier := 1 + in.ReleaseFrequency*0.1

	raw := baseMonthlyCycles * hoursMultiplier * releaseMultiplier * (b.TestingComplexity / baselineComplexity)
	return clamp(raw, b.TypicalTestCycles.Min(), b.TypicalTestCycles.Max())
}

// CalculateQA derives the QA automation savings. Rounding applies to the output fields only;
// intermediate values stay unrounded.
func CalculateQA(in QAInputs, b benchmark.IndustryBenchmark) QAResults {
	reductionManualEffort := clamp(85-in.MonthlyTestCycles/100, 60, 90) * b.EfficiencyMultiplier
	efficiencyIncrease := clamp(65+in.ReleaseFrequency*2, 50, 80) * b.EfficiencyMultiplier

	annualSalarySavings := in.TesterSalary * in.ManualTesters * (reductionManualEffort / 100) * manualTaskSalaryShare
	deviceCostSavings := in.DevicesUsed * b.DeviceCost * recoverableDeviceShare

	releaseCycleImprovement := clamp(50+in.ReleaseFrequency*5, 30, 70)
	testingCoverageImprovement := clamp(60+in.MonthlyTestCycles*0.5, 40, 95) * b.CoverageBoost

	return QAResults{
		ReductionManualEffort:      round(reductionManualEffort),
		EfficiencyIncrease:         round(efficiencyIncrease),
		AnnualSalarySavings:        round(annualSalarySavings),
		DeviceCostSavings:          round(deviceCostSavings),
		TotalAnnualSavings:         round(annualSalarySavings + deviceCostSavings),
		ReleaseCycleImprovement:    round(releaseCycleImprovement),
		TestingCoverageImprovement: round(testingCoverageImprovement),
	}
}

// ValidateQAInputs checks every numeric field against the benchmark ranges.
// It returns the name of the first offending field along with the error.
func ValidateQAInputs(in QAInputs, b benchmark.IndustryBenchmark) (string, error) {
	checks := []struct {
		field string
		value float64
		r     benchmark.Range
	}{
		{"manualTesters", in.ManualTesters, b.TypicalTesters},
		{"testerSalary", in.TesterSalary, b.TypicalSalary},
		{"weeklyTestingHours", in.WeeklyTestingHours, WeeklyTestingHoursRange},
		{"monthlyTestCycles", in.MonthlyTestCycles, b.TypicalTestCycles},
		{"devicesUsed", in.DevicesUsed, b.TypicalDevices},
		{"releaseFrequency", in.ReleaseFrequency, b.TypicalReleases},
	}
	for _, c := range checks {
		if !c.r.Contains(c.value) {
			return c.field, fmt.Errorf("%s %v is outside the %s range [%v, %v]", c.field, c.value, b.Key, c.r.Min(), c.r.Max())
		}
	}
	return "", nil
}

// Compile-time assertion that QATesting implements the Calculator interface.
var _ estimation.Calculator = (*QATesting)(nil)

// QATesting adapts CalculateQA to the estimation engine.
type QATesting struct {
	benchmarks benchmark.Table
}

// QATestingOption configuration option for the calculator
type QATestingOption func(*QATesting)

// WithBenchmarks replaces the benchmark table used to resolve the industry param.
func WithBenchmarks(t benchmark.Table) QATestingOption {
	return func(q *QATesting) {
		if t != nil {
			q.benchmarks = t
		}
	}
}

func NewQATesting(opts ...QATestingOption) *QATesting {
	res := QATesting{benchmarks: benchmark.Default()}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

func (c *QATesting) Name() string { return "QA Testing" }

func (c *QATesting) Keys() []string {
	return []string{ParamManualTesters, ParamTesterSalary, ParamWeeklyTestingHours, ParamDevicesUsed, ParamReleaseFrequency}
}

// Calculate resolves the industry (general when absent), fills monthly test cycles from the
// capacity estimate when absent, and reports results plus the capacity as metrics.
func (c *QATesting) Calculate(params map[string]estimation.Param) (estimation.Estimation, error) {
	industry := benchmark.DefaultIndustry
	if p, ok := params[ParamIndustry]; ok {
		v, err := getString(p)
		if err != nil {
			return estimation.Estimation{}, err
		}
		if _, found := c.benchmarks.Get(v); !found {
			return estimation.Estimation{}, fmt.Errorf("unknown industry %q", v)
		}
		industry = v
	}
	b := c.benchmarks.Lookup(industry)

	in := QAInputs{Industry: industry}
	if err := floatParams(params, map[string]*float64{
		ParamManualTesters:      &in.ManualTesters,
		ParamTesterSalary:       &in.TesterSalary,
		ParamWeeklyTestingHours: &in.WeeklyTestingHours,
		ParamDevicesUsed:        &in.DevicesUsed,
		ParamReleaseFrequency:   &in.ReleaseFrequency,
	}, false); err != nil {
		return estimation.Estimation{}, err
	}

	capacity := TestCycleCapacity(in, b)
	in.MonthlyTestCycles = round(capacity)
	if err := floatParams(params, map[string]*float64{ParamMonthlyTestCycles: &in.MonthlyTestCycles}, true); err != nil {
		return estimation.Estimation{}, err
	}

	r := CalculateQA(in, b)
	return estimation.Estimation{
		Metrics: map[string]float64{
			"test_cycle_capacity":          capacity,
			"reduction_manual_effort":      r.ReductionManualEffort,
			"efficiency_increase":          r.EfficiencyIncrease,
			"annual_salary_savings":        r.AnnualSalarySavings,
			"device_cost_savings":          r.DeviceCostSavings,
			"total_annual_savings":         r.TotalAnnualSavings,
			"release_cycle_improvement":    r.ReleaseCycleImprovement,
			"testing_coverage_improvement": r.TestingCoverageImprovement,
		},
		Reason: fmt.Sprintf("%s: %.0f testers, %.0f cycles/month, %.0f devices", b.Name, in.ManualTesters, in.MonthlyTestCycles, in.DevicesUsed),
	}, nil
}
