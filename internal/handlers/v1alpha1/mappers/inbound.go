package mappers

import (
	"github.com/mozark/roi-planner/api/v1alpha1"
	"github.com/mozark/roi-planner/internal/estimation/calculators"
	"github.com/mozark/roi-planner/internal/scenario"
	"github.com/mozark/roi-planner/internal/service"
)

func QAInputsFromApi(in v1alpha1.QAInputs) calculators.QAInputs {
	return calculators.QAInputs{
		Industry:           in.Industry,
		ManualTesters:      in.ManualTesters,
		TesterSalary:       in.TesterSalary,
		WeeklyTestingHours: in.WeeklyTestingHours,
		MonthlyTestCycles:  in.MonthlyTestCycles,
		DevicesUsed:        in.DevicesUsed,
		ReleaseFrequency:   in.ReleaseFrequency,
	}
}

func OTTInputsFromApi(in v1alpha1.OTTInputs) calculators.OTTInputs {
	return calculators.OTTInputs{
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

func PaymentInputsFromApi(in v1alpha1.PaymentInputs) calculators.PaymentInputs {
	return calculators.PaymentInputs{
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

func ScenarioUpdateFromApi(in v1alpha1.ScenarioUpdate) service.ScenarioUpdate {
	return service.ScenarioUpdate{
		Name: in.Name,
		Update: scenario.Update{
			Industry:           in.Industry,
			ManualTesters:      in.ManualTesters,
			TesterSalary:       in.TesterSalary,
			WeeklyTestingHours: in.WeeklyTestingHours,
			MonthlyTestCycles:  in.MonthlyTestCycles,
			DevicesUsed:        in.DevicesUsed,
			ReleaseFrequency:   in.ReleaseFrequency,
		},
	}
}

func UserInfoFromApi(in v1alpha1.UserInfo) service.UserInfo {
	info := service.UserInfo{
		Name:    in.Name,
		Email:   in.Email,
		Company: in.Company,
	}
	if in.Phone != nil {
		info.Phone = *in.Phone
	}
	return info
}
