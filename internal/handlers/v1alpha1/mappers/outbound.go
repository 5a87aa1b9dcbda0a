package mappers

import (
	"sort"

	api "github.com/mozark/roi-planner/api/v1alpha1"
	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/mozark/roi-planner/internal/estimation"
	"github.com/mozark/roi-planner/internal/estimation/calculators"
	"github.com/mozark/roi-planner/internal/service"
	"github.com/mozark/roi-planner/internal/store/model"
)

func BenchmarkToApi(b benchmark.IndustryBenchmark) api.Benchmark {
	return api.Benchmark{
		Key:                    b.Key,
		Name:                   b.Name,
		Description:            b.Description,
		TypicalTesters:         api.Range(b.TypicalTesters),
		TypicalSalary:          api.Range(b.TypicalSalary),
		TypicalTestCycles:      api.Range(b.TypicalTestCycles),
		TypicalDevices:         api.Range(b.TypicalDevices),
		TypicalReleases:        api.Range(b.TypicalReleases),
		TestingComplexity:      b.TestingComplexity,
		EfficiencyMultiplier:   b.EfficiencyMultiplier,
		DeviceCost:             b.DeviceCost,
		CoverageBoost:          b.CoverageBoost,
		RegulatoryRequirements: b.RegulatoryRequirements,
	}
}

func BenchmarkListToApi(benchmarks []benchmark.IndustryBenchmark) api.BenchmarkList {
	list := api.BenchmarkList{}
	for _, b := range benchmarks {
		list = append(list, BenchmarkToApi(b))
	}
	return list
}

func QAInputsToApi(in calculators.QAInputs) api.QAInputs {
	return api.QAInputs{
		Industry:           in.Industry,
		ManualTesters:      in.ManualTesters,
		TesterSalary:       in.TesterSalary,
		WeeklyTestingHours: in.WeeklyTestingHours,
		MonthlyTestCycles:  in.MonthlyTestCycles,
		DevicesUsed:        in.DevicesUsed,
		ReleaseFrequency:   in.ReleaseFrequency,
	}
}

func QAResultsToApi(r calculators.QAResults) api.QAResults {
	return api.QAResults{
		ReductionManualEffort:      r.ReductionManualEffort,
		EfficiencyIncrease:         r.EfficiencyIncrease,
		AnnualSalarySavings:        r.AnnualSalarySavings,
		DeviceCostSavings:          r.DeviceCostSavings,
		TotalAnnualSavings:         r.TotalAnnualSavings,
		ReleaseCycleImprovement:    r.ReleaseCycleImprovement,
		TestingCoverageImprovement: r.TestingCoverageImprovement,
	}
}

func QACalculationToApi(c *service.QACalculation) api.QACalculation {
	return api.QACalculation{
		Inputs:   QAInputsToApi(c.Inputs),
		Capacity: c.Capacity,
		Results:  QAResultsToApi(c.Results),
	}
}

func OTTInputsToApi(in calculators.OTTInputs) api.OTTInputs {
	return api.OTTInputs{
		MonthlyViewers:    in.MonthlyViewers,
		AvgViewTime:       in.AvgViewTime,
		AvgCpm:            in.AvgCpm,
		CurrentLatency:    in.CurrentLatency,
		TargetLatency:     in.TargetLatency,
		SubscriptionPrice: in.SubscriptionPrice,
		SubscriberCount:   in.SubscriberCount,
		ChurnRate:         in.ChurnRate,
		CdnCostPerGb:      in.CdnCostPerGb,
		MonthlyBandwidth:  in.MonthlyBandwidth,
		SupportCosts:      in.SupportCosts,
		LicensingFees:     in.LicensingFees,
		ChurnReduction:    in.ChurnReduction,
	}
}

func OTTResultsToApi(r calculators.OTTResults) api.OTTResults {
	return api.OTTResults{
		CurrentBufferRate:    r.CurrentBufferRate,
		ImprovedBufferRate:   r.ImprovedBufferRate,
		LostViewTime:         r.LostViewTime,
		SavedViewTime:        r.SavedViewTime,
		PotentialSavings:     r.PotentialSavings,
		ChurnSavings:         r.ChurnSavings,
		OperationalSavings:   r.OperationalSavings,
		TotalMonthlySavings:  r.TotalMonthlySavings,
		PaybackPeriod:        api.FiniteOrNil(r.PaybackPeriod),
		RoiPercentage:        api.FiniteOrNil(r.RoiPercentage),
		MonthlyOperatingCost: r.MonthlyOperatingCost,
	}
}

func PaymentInputsToApi(in calculators.PaymentInputs) api.PaymentInputs {
	return api.PaymentInputs{
		Transactions:          in.Transactions,
		AvgValue:              in.AvgValue,
		CurrentLatency:        in.CurrentLatency,
		MozarkLatency:         in.MozarkLatency,
		DeclineRate:           in.DeclineRate,
		FraudRate:             in.FraudRate,
		ChargebackRate:        in.ChargebackRate,
		ProcessingFee:         in.ProcessingFee,
		FixedFee:              in.FixedFee,
		SupportTickets:        in.SupportTickets,
		CostPerTicket:         in.CostPerTicket,
		CustomerLifetimeValue: in.CustomerLifetimeValue,
		DeclineReduction:      in.DeclineReduction,
		FraudReduction:        in.FraudReduction,
		ChargebackReduction:   in.ChargebackReduction,
		SupportReduction:      in.SupportReduction,
		FeeOptimization:       in.FeeOptimization,
	}
}

func PaymentResultsToApi(r calculators.PaymentResults) api.PaymentResults {
	return api.PaymentResults{
		CurrentAbandonmentRate: r.CurrentAbandonmentRate,
		TargetAbandonmentRate:  r.TargetAbandonmentRate,
		SavedTransactions:      r.SavedTransactions,
		DailySavings:           r.DailySavings,
		DeclineSavings:         r.DeclineSavings,
		FraudSavings:           r.FraudSavings,
		ChargebackSavings:      r.ChargebackSavings,
		FeeSavings:             r.FeeSavings,
		SupportSavings:         r.SupportSavings,
		ClvSavings:             r.ClvSavings,
		TotalDailySavings:      r.TotalDailySavings,
		TotalAnnualSavings:     r.TotalAnnualSavings,
		RoiPercentage:          api.FiniteOrNil(r.RoiPercentage),
		PaybackPeriod:          api.FiniteOrNil(r.PaybackPeriod),
	}
}

func EstimationsToApi(results map[string]estimation.Estimation) api.EstimationResponse {
	response := make(api.EstimationResponse, len(results))
	for name, est := range results {
		metrics := make(map[string]*float64, len(est.Metrics))
		for k, v := range est.Metrics {
			metrics[k] = api.FiniteOrNil(v)
		}
		response[name] = api.EstimationResult{
			Metrics: metrics,
			Reason:  est.Reason,
			Failed:  est.Failed,
		}
	}
	return response
}

// ScenarioToApi maps a scenario with its derived figures.
func ScenarioToApi(state *service.ScenarioState) api.Scenario {
	s := ScenarioModelToApi(state.Scenario)
	capacity := state.Capacity
	results := QAResultsToApi(state.Results)
	s.Capacity = &capacity
	s.Results = &results
	return s
}

// ScenarioModelToApi maps a stored scenario without computing its results.
func ScenarioModelToApi(m model.Scenario) api.Scenario {
	return api.Scenario{
		Id:               m.ID,
		Name:             m.Name,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		Inputs:           QAInputsToApi(m.Inputs()),
		CyclesOverridden: m.CyclesOverridden,
	}
}

func ScenarioListToApi(scenarios model.ScenarioList) api.ScenarioList {
	list := api.ScenarioList{}
	for _, s := range scenarios {
		list = append(list, ScenarioModelToApi(s))
	}
	return list
}

func AnalysisRequestToApi(r model.AnalysisRequest) api.AnalysisRequest {
	request := api.AnalysisRequest{
		Id:         r.ID,
		ScenarioId: r.ScenarioID,
		CreatedAt:  r.CreatedAt,
		Name:       r.Name,
		Email:      r.Email,
		Company:    r.Company,
		Phone:      r.Phone,
	}
	if r.Snapshot != nil {
		request.Snapshot = api.AnalysisSnapshot{
			Inputs:   QAInputsToApi(r.Snapshot.Data.Inputs),
			Results:  QAResultsToApi(r.Snapshot.Data.Results),
			Capacity: r.Snapshot.Data.Capacity,
		}
	}
	return request
}

func AnalysisRequestListToApi(requests model.AnalysisRequestList) api.AnalysisRequestList {
	list := api.AnalysisRequestList{}
	for _, r := range requests {
		list = append(list, AnalysisRequestToApi(r))
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list
}
