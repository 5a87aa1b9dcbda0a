package calculators

import (
	"fmt"
	"math"

	"github.com/mozark/roi-planner/internal/estimation"
)

const (
	ParamTransactions          = "transactions"
	ParamAvgValue              = "avg_value"
	ParamCurrentLatencyMs      = "current_latency_ms"
	ParamMozarkLatencyMs       = "mozark_latency_ms"
	ParamDeclineRate           = "decline_rate"
	ParamFraudRate             = "fraud_rate"
	ParamChargebackRate        = "chargeback_rate"
	ParamProcessingFee         = "processing_fee"
	ParamFixedFee              = "fixed_fee"
	ParamSupportTickets        = "support_tickets"
	ParamCostPerTicket         = "cost_per_ticket"
	ParamCustomerLifetimeValue = "customer_lifetime_value"
	ParamDeclineReduction      = "decline_reduction"
	ParamFraudReduction        = "fraud_reduction"
	ParamChargebackReduction   = "chargeback_reduction"
	ParamSupportReduction      = "support_reduction"
	ParamFeeOptimization       = "fee_optimization"

	// PaymentImplementationCost one-off cost of rolling out the monitoring platform.
	PaymentImplementationCost = 125000.0
	// PaymentAnnualLicense yearly platform license.
	PaymentAnnualLicense = 60000.0

	// DaysPerYear is the day-count convention of the payment model: inputs are daily,
	// annual figures multiply by 365 and the payback month is 30 days.
	DaysPerYear  = 365.0
	DaysPerMonth = 30.0

	baseAbandonmentRate      = 0.005
	abandonmentPer100ms      = 0.0025
	abandonmentLatencyFloor  = 50.0
	recoveredDeclineMargin   = 0.3
	fraudLossShare           = 0.5
	chargebackLossShare      = 0.5
	retainedCustomerFraction = 0.1
)

// PaymentInputs daily figures of a payment processor. Latencies are in milliseconds, rates and
// fees are fractions, reductions and fee optimization are percentages.
type PaymentInputs struct {
	Transactions          float64 `json:"transactions"`
	AvgValue              float64 `json:"avgValue"`
	CurrentLatency        float64 `json:"currentLatency"`
	MozarkLatency         float64 `json:"mozarkLatency"`
	DeclineRate           float64 `json:"declineRate"`
	FraudRate             float64 `json:"fraudRate"`
	ChargebackRate        float64 `json:"chargebackRate"`
	ProcessingFee         float64 `json:"processingFee"`
	FixedFee              float64 `json:"fixedFee"`
	SupportTickets        float64 `json:"supportTickets"`
	CostPerTicket         float64 `json:"costPerTicket"`
	CustomerLifetimeValue float64 `json:"customerLifetimeValue"`
	DeclineReduction      float64 `json:"declineReduction"`
	FraudReduction        float64 `json:"fraudReduction"`
	ChargebackReduction   float64 `json:"chargebackReduction"`
	SupportReduction      float64 `json:"supportReduction"`
	FeeOptimization       float64 `json:"feeOptimization"`
}

type PaymentResults struct {
	CurrentAbandonmentRate float64 `json:"currentAbandonmentRate"`
	TargetAbandonmentRate  float64 `json:"targetAbandonmentRate"`
	SavedTransactions      float64 `json:"savedTransactions"`
	DailySavings           float64 `json:"dailySavings"`
	DeclineSavings         float64 `json:"declineSavings"`
	FraudSavings           float64 `json:"fraudSavings"`
	ChargebackSavings      float64 `json:"chargebackSavings"`
	FeeSavings             float64 `json:"feeSavings"`
	SupportSavings         float64 `json:"supportSavings"`
	ClvSavings             float64 `json:"clvSavings"`
	TotalDailySavings      float64 `json:"totalDailySavings"`
	TotalAnnualSavings     float64 `json:"totalAnnualSavings"`
	RoiPercentage          float64 `json:"roiPercentage"`
	PaybackPeriod          float64 `json:"paybackPeriod"`
}

func DefaultPaymentInputs() PaymentInputs {
	return PaymentInputs{
		Transactions:          100000,
		AvgValue:              75,
		CurrentLatency:        200,
		MozarkLatency:         50,
		DeclineRate:           0.05,
		FraudRate:             0.01,
		ChargebackRate:        0.005,
		ProcessingFee:         0.029,
		FixedFee:              0.30,
		SupportTickets:        500,
		CostPerTicket:         15,
		CustomerLifetimeValue: 1500,
		DeclineReduction:      20,
		FraudReduction:        30,
		ChargebackReduction:   25,
		SupportReduction:      40,
		FeeOptimization:       5,
	}
}

// AbandonmentRate is the modelled fraction of transactions abandoned at a latency in milliseconds.
func AbandonmentRate(latency float64) float64 {
	return baseAbandonmentRate + abandonmentPer100ms*math.Max(0, (latency-abandonmentLatencyFloor)/100)
}

func CalculatePayment(in PaymentInputs) PaymentResults {
	currentRate := AbandonmentRate(in.CurrentLatency)
	targetRate := AbandonmentRate(in.MozarkLatency)

	t := in.Transactions
	savedTransactions := t * (currentRate - targetRate)
	dailySavings := savedTransactions * in.AvgValue

	declineSavings := (t*in.DeclineRate - t*in.DeclineRate*(1-in.DeclineReduction/100)) * in.AvgValue * recoveredDeclineMargin
	fraudSavings := t * in.FraudRate * in.AvgValue * (in.FraudReduction / 100) * fraudLossShare
	chargebackSavings := t * in.ChargebackRate * in.AvgValue * (in.ChargebackReduction / 100) * chargebackLossShare
	feeSavings := t * (in.AvgValue*in.ProcessingFee + in.FixedFee) * (in.FeeOptimization / 100)
	supportSavings := in.SupportTickets * in.CostPerTicket * (in.SupportReduction / 100)
	clvSavings := (savedTransactions * retainedCustomerFraction) * in.CustomerLifetimeValue / DaysPerYear

	totalDailySavings := dailySavings + declineSavings + fraudSavings + chargebackSavings + feeSavings + supportSavings + clvSavings
	totalAnnualSavings := totalDailySavings * DaysPerYear
	totalCost := PaymentImplementationCost + PaymentAnnualLicense

	return PaymentResults{
		CurrentAbandonmentRate: currentRate,
		TargetAbandonmentRate:  targetRate,
		SavedTransactions:      savedTransactions,
		DailySavings:           dailySavings,
		DeclineSavings:         declineSavings,
		FraudSavings:           fraudSavings,
		ChargebackSavings:      chargebackSavings,
		FeeSavings:             feeSavings,
		SupportSavings:         supportSavings,
		ClvSavings:             clvSavings,
		TotalDailySavings:      totalDailySavings,
		TotalAnnualSavings:     totalAnnualSavings,
		RoiPercentage:          ((totalAnnualSavings - totalCost) / totalCost) * 100,
		PaybackPeriod:          paybackMonths(PaymentImplementationCost, totalDailySavings*DaysPerMonth),
	}
}

// Compile-time assertion that PaymentProcessing implements the Calculator interface.
var _ estimation.Calculator = (*PaymentProcessing)(nil)

// PaymentProcessing adapts CalculatePayment to the estimation engine.
type PaymentProcessing struct {
	defaults PaymentInputs
}

// NewPaymentProcessing creates the calculator. Optional params fall back to DefaultPaymentInputs.
func NewPaymentProcessing() *PaymentProcessing {
	return &PaymentProcessing{defaults: DefaultPaymentInputs()}
}

func (c *PaymentProcessing) Name() string { return "Payment Processing" }

func (c *PaymentProcessing) Keys() []string {
	return []string{ParamTransactions, ParamAvgValue, ParamCurrentLatencyMs, ParamMozarkLatencyMs}
}

func (c *PaymentProcessing) Calculate(params map[string]estimation.Param) (estimation.Estimation, error) {
	in := c.defaults
	if err := floatParams(params, map[string]*float64{
		ParamTransactions:     &in.Transactions,
		ParamAvgValue:         &in.AvgValue,
		ParamCurrentLatencyMs: &in.CurrentLatency,
		ParamMozarkLatencyMs:  &in.MozarkLatency,
	}, false); err != nil {
		return estimation.Estimation{}, err
	}
	if err := floatParams(params, map[string]*float64{
		ParamDeclineRate:           &in.DeclineRate,
		ParamFraudRate:             &in.FraudRate,
		ParamChargebackRate:        &in.ChargebackRate,
		ParamProcessingFee:         &in.ProcessingFee,
		ParamFixedFee:              &in.FixedFee,
		ParamSupportTickets:        &in.SupportTickets,
		ParamCostPerTicket:         &in.CostPerTicket,
		ParamCustomerLifetimeValue: &in.CustomerLifetimeValue,
		ParamDeclineReduction:      &in.DeclineReduction,
		ParamFraudReduction:        &in.FraudReduction,
		ParamChargebackReduction:   &in.ChargebackReduction,
		ParamSupportReduction:      &in.SupportReduction,
		ParamFeeOptimization:       &in.FeeOptimization,
	}, true); err != nil {
		return estimation.Estimation{}, err
	}

	r := CalculatePayment(in)
	return estimation.Estimation{
		Metrics: map[string]float64{
			"saved_transactions":   r.SavedTransactions,
			"daily_savings":        r.DailySavings,
			"decline_savings":      r.DeclineSavings,
			"fraud_savings":        r.FraudSavings,
			"chargeback_savings":   r.ChargebackSavings,
			"fee_savings":          r.FeeSavings,
			"support_savings":      r.SupportSavings,
			"clv_savings":          r.ClvSavings,
			"total_daily_savings":  r.TotalDailySavings,
			"total_annual_savings": r.TotalAnnualSavings,
			"roi_percentage":       r.RoiPercentage,
			"payback_period":       r.PaybackPeriod,
		},
		Reason: fmt.Sprintf("%.0f transactions/day, latency %.0fms -> %.0fms", in.Transactions, in.CurrentLatency, in.MozarkLatency),
	}, nil
}

// ValidatePaymentInputs rejects negative figures and returns the first offending field.
func ValidatePaymentInputs(in PaymentInputs) (string, error) {
	return firstNegative([]namedValue{
		{"transactions", in.Transactions},
		{"avgValue", in.AvgValue},
		{"currentLatency", in.CurrentLatency},
		{"mozarkLatency", in.MozarkLatency},
		{"declineRate", in.DeclineRate},
		{"fraudRate", in.FraudRate},
		{"chargebackRate", in.ChargebackRate},
		{"processingFee", in.ProcessingFee},
		{"fixedFee", in.FixedFee},
		{"supportTickets", in.SupportTickets},
		{"costPerTicket", in.CostPerTicket},
		{"customerLifetimeValue", in.CustomerLifetimeValue},
		{"declineReduction", in.DeclineReduction},
		{"fraudReduction", in.FraudReduction},
		{"chargebackReduction", in.ChargebackReduction},
		{"supportReduction", in.SupportReduction},
		{"feeOptimization", in.FeeOptimization},
	})
}
