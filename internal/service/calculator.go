package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/mozark/roi-planner/internal/estimation"
	"github.com/mozark/roi-planner/internal/estimation/calculators"
	"github.com/mozark/roi-planner/pkg/log"
	"github.com/mozark/roi-planner/pkg/metrics"
)

// Calculator kinds, as used in URLs and metric labels.
const (
	CalculatorQA      = "qa"
	CalculatorOTT     = "ott"
	CalculatorPayment = "payment"
)

var calculatorKinds = map[string]string{
	calculators.NewQATesting().Name():         CalculatorQA,
	calculators.NewOTTStreaming().Name():      CalculatorOTT,
	calculators.NewPaymentProcessing().Name(): CalculatorPayment,
}

// QACalculation is the outcome of one QA calculator run.
type QACalculation struct {
	Inputs   calculators.QAInputs
	Capacity float64
	Results  calculators.QAResults
}

// CalculatorService runs the ROI calculators. It is safe for concurrent use.
type CalculatorService struct {
	table  benchmark.Table
	engine *estimation.Engine
	logger *log.StructuredLogger
}

// NewCalculatorService creates a CalculatorService with the QA, OTT and payment calculators registered.
func NewCalculatorService(table benchmark.Table) *CalculatorService {
	engine := estimation.NewEngine()
	engine.Register(calculators.NewQATesting(calculators.WithBenchmarks(table)))
	engine.Register(calculators.NewOTTStreaming())
	engine.Register(calculators.NewPaymentProcessing())

	return &CalculatorService{
		table:  table,
		engine: engine,
		logger: log.NewDebugLogger("calculator_service"),
	}
}

func (cs *CalculatorService) Benchmarks() benchmark.Table {
	return cs.table
}

func (cs *CalculatorService) ListBenchmarks() []benchmark.IndustryBenchmark {
	return cs.table.List()
}

func (cs *CalculatorService) GetBenchmark(industry string) (benchmark.IndustryBenchmark, error) {
	b, ok := cs.table.Get(industry)
	if !ok {
		return benchmark.IndustryBenchmark{}, NewErrIndustryNotFound(industry)
	}
	return b, nil
}

// CalculateQA validates the inputs against the industry benchmark and derives the results.
// An empty industry selects the general benchmark, and zero monthly test cycles are filled in
// from the capacity estimate.
func (cs *CalculatorService) CalculateQA(ctx context.Context, in calculators.QAInputs) (*QACalculation, error) {
	if in.Industry == "" {
		in.Industry = benchmark.DefaultIndustry
	}

	tracer := cs.logger.WithContext(ctx).
		Operation("calculate_qa").
		WithString("industry", in.Industry).
		Build()

	b, ok := cs.table.Get(in.Industry)
	if !ok {
		err := NewErrUnknownIndustry(in.Industry)
		tracer.Error(err).Log()
		return nil, err
	}

	capacity := calculators.TestCycleCapacity(in, b)
	if in.MonthlyTestCycles == 0 {
		in.MonthlyTestCycles = math.Round(capacity)
		tracer.Step("cycles_from_capacity").WithFloat("monthly_test_cycles", in.MonthlyTestCycles).Log()
	}

	if field, err := calculators.ValidateQAInputs(in, b); err != nil {
		err := NewErrInvalidInput(field, err)
		tracer.Error(err).Log()
		return nil, err
	}

	results := calculators.CalculateQA(in, b)
	metrics.IncreaseCalculationsTotalMetric(CalculatorQA)

	tracer.Success().WithFloat("total_annual_savings", results.TotalAnnualSavings).Log()

	return &QACalculation{Inputs: in, Capacity: capacity, Results: results}, nil
}

func (cs *CalculatorService) CalculateOTT(ctx context.Context, in calculators.OTTInputs) (calculators.OTTResults, error) {
	tracer := cs.logger.WithContext(ctx).Operation("calculate_ott").Build()

	if field, err := calculators.ValidateOTTInputs(in); err != nil {
		err := NewErrInvalidInput(field, err)
		tracer.Error(err).Log()
		return calculators.OTTResults{}, err
	}

	results := calculators.CalculateOTT(in)
	metrics.IncreaseCalculationsTotalMetric(CalculatorOTT)

	tracer.Success().WithFloat("total_monthly_savings", results.TotalMonthlySavings).Log()

	return results, nil
}

func (cs *CalculatorService) CalculatePayment(ctx context.Context, in calculators.PaymentInputs) (calculators.PaymentResults, error) {
	tracer := cs.logger.WithContext(ctx).Operation("calculate_payment").Build()

	if field, err := calculators.ValidatePaymentInputs(in); err != nil {
		err := NewErrInvalidInput(field, err)
		tracer.Error(err).Log()
		return calculators.PaymentResults{}, err
	}

	results := calculators.CalculatePayment(in)
	metrics.IncreaseCalculationsTotalMetric(CalculatorPayment)

	tracer.Success().WithFloat("total_annual_savings", results.TotalAnnualSavings).Log()

	return results, nil
}

// Defaults returns the default inputs of a calculator kind. QA defaults are those of the
// general benchmark.
func (cs *CalculatorService) Defaults(kind string) (any, error) {
	switch kind {
	case CalculatorQA:
		return calculators.DefaultQAInputs(cs.table.Lookup(benchmark.DefaultIndustry)), nil
	case CalculatorOTT:
		return calculators.DefaultOTTInputs(), nil
	case CalculatorPayment:
		return calculators.DefaultPaymentInputs(), nil
	default:
		return nil, NewErrInvalidInput("kind", fmt.Errorf("unknown calculator %q", kind))
	}
}

// Estimate runs every calculator whose required params are present. Calculators that
// fail are reported with Failed set and the error as reason.
func (cs *CalculatorService) Estimate(ctx context.Context, params map[string]any) map[string]estimation.Estimation {
	tracer := cs.logger.WithContext(ctx).
		Operation("estimate").
		WithInt("param_count", len(params)).
		Build()

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	inputs := make([]estimation.Param, 0, len(params))
	for _, k := range keys {
		inputs = append(inputs, estimation.Param{Key: k, Value: params[k]})
	}

	results := cs.engine.RunApplicable(inputs)
	for name, est := range results {
		if est.Failed {
			tracer.Step("calculator_failed").WithString("calculator", name).WithString("reason", est.Reason).Log()
			continue
		}
		metrics.IncreaseCalculationsTotalMetric(calculatorKinds[name])
	}

	tracer.Success().WithInt("calculator_count", len(results)).Log()

	return results
}
