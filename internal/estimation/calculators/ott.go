package calculators

import (
	"fmt"
	"math"

	"github.com/mozark/roi-planner/internal/estimation"
)

const (
	ParamMonthlyViewers    = "monthly_viewers"
	ParamAvgViewTime       = "avg_view_time"
	ParamAvgCpm            = "avg_cpm"
	ParamCurrentLatencySec = "current_latency_seconds"
	ParamTargetLatencySec  = "target_latency_seconds"
	ParamSubscriptionPrice = "subscription_price"
	ParamSubscriberCount   = "subscriber_count"
	ParamChurnRate         = "churn_rate"
	ParamCdnCostPerGb      = "cdn_cost_per_gb"
	ParamMonthlyBandwidth  = "monthly_bandwidth"
	ParamSupportCosts      = "support_costs"
	ParamLicensingFees     = "licensing_fees"
	ParamChurnReduction    = "churn_reduction"

	// OTTImplementationCost one-off cost of rolling out the monitoring platform.
	OTTImplementationCost = 75000.0
	// OTTAnnualLicense yearly platform license.
	OTTAnnualLicense = 30000.0

	baseBufferRate       = 0.02
	bufferRatePerSecond  = 0.03
	bufferLatencyFloor   = 2.0
	cdnOptimisationShare = 0.10
)

// OTTInputs monthly figures of a streaming platform. Latencies are in seconds,
// view time in minutes, churn rate and churn reduction are fractions.
type OTTInputs struct {
	MonthlyViewers    float64 `json:"monthlyViewers"`
	AvgViewTime       float64 `json:"avgViewTime"`
	AvgCpm            float64 `json:"avgCpm"`
	CurrentLatency    float64 `json:"currentLatency"`
	TargetLatency     float64 `json:"targetLatency"`
	SubscriptionPrice float64 `json:"subscriptionPrice"`
	SubscriberCount   float64 `json:"subscriberCount"`
	ChurnRate         float64 `json:"churnRate"`
	CdnCostPerGb      float64 `json:"cdnCostPerGb"`
	MonthlyBandwidth  float64 `json:"monthlyBandwidth"`
	SupportCosts      float64 `json:"supportCosts"`
	LicensingFees     float64 `json:"licensingFees"`
	ChurnReduction    float64 `json:"churnReduction"`
}

// OTTResults. TotalMonthlySavings is the annualised figure shown as total annual savings;
// ROI and payback are computed from it as-is.
type OTTResults struct {
	CurrentBufferRate    float64 `json:"currentBufferRate"`
	ImprovedBufferRate   float64 `json:"improvedBufferRate"`
	LostViewTime         float64 `json:"lostViewTime"`
	SavedViewTime        float64 `json:"savedViewTime"`
	PotentialSavings     float64 `json:"potentialSavings"`
	ChurnSavings         float64 `json:"churnSavings"`
	OperationalSavings   float64 `json:"operationalSavings"`
	TotalMonthlySavings  float64 `json:"totalMonthlySavings"`
	PaybackPeriod        float64 `json:"paybackPeriod"`
	RoiPercentage        float64 `json:"roiPercentage"`
	MonthlyOperatingCost float64 `json:"monthlyOperatingCost"`
}

func DefaultOTTInputs() OTTInputs {
	return OTTInputs{
		MonthlyViewers:    1000000,
		AvgViewTime:       45,
		AvgCpm:            25,
		CurrentLatency:    4.5,
		TargetLatency:     2.0,
		SubscriptionPrice: 9.99,
		SubscriberCount:   250000,
		ChurnRate:         0.05,
		CdnCostPerGb:      0.02,
		MonthlyBandwidth:  500000,
		SupportCosts:      40000,
		LicensingFees:     120000,
		ChurnReduction:    0.2,
	}
}

// BufferRate is the modelled fraction of view time lost to rebuffering at a latency in seconds.
func BufferRate(latency float64) float64 {
	return baseBufferRate + bufferRatePerSecond*math.Max(0, latency-bufferLatencyFloor)
}

func CalculateOTT(in OTTInputs) OTTResults {
	currentBufferRate := BufferRate(in.CurrentLatency)
	improvedBufferRate := BufferRate(in.TargetLatency)

	lostViewTime := in.MonthlyViewers * in.AvgViewTime * currentBufferRate
	savedViewTime := in.MonthlyViewers * in.AvgViewTime * (currentBufferRate - improvedBufferRate)

	potentialSavings := (savedViewTime / 60) * (in.AvgCpm / 1000)
	churnSavings := in.SubscriberCount * (in.ChurnRate * in.ChurnReduction) * in.SubscriptionPrice * 12
	operationalSavings := (in.MonthlyBandwidth * in.CdnCostPerGb) * cdnOptimisationShare

	totalMonthlySavings := (potentialSavings + churnSavings/12 + operationalSavings) * 12
	totalCost := OTTImplementationCost + OTTAnnualLicense

	return OTTResults{
		CurrentBufferRate:    currentBufferRate,
		ImprovedBufferRate:   improvedBufferRate,
		LostViewTime:         lostViewTime,
		SavedViewTime:        savedViewTime,
		PotentialSavings:     potentialSavings,
		ChurnSavings:         churnSavings,
		OperationalSavings:   operationalSavings,
		TotalMonthlySavings:  totalMonthlySavings,
		PaybackPeriod:        paybackMonths(OTTImplementationCost, totalMonthlySavings),
		RoiPercentage:        ((totalMonthlySavings*12 - totalCost) / totalCost) * 100,
		MonthlyOperatingCost: in.MonthlyBandwidth*in.CdnCostPerGb + in.SupportCosts + in.LicensingFees,
	}
}

// Compile-time assertion that OTTStreaming implements the Calculator interface.
var _ estimation.Calculator = (*OTTStreaming)(nil)

// OTTStreaming adapts CalculateOTT to the estimation engine.
type OTTStreaming struct {
	defaults OTTInputs
}

// NewOTTStreaming creates the calculator. Optional params fall back to DefaultOTTInputs.
func NewOTTStreaming() *OTTStreaming {
	return &OTTStreaming{defaults: DefaultOTTInputs()}
}

func (c *OTTStreaming) Name() string { return "OTT Streaming" }

func (c *OTTStreaming) Keys() []string {
	return []string{ParamMonthlyViewers, ParamAvgViewTime, ParamCurrentLatencySec, ParamTargetLatencySec}
}

func (c *OTTStreaming) Calculate(params map[string]estimation.Param) (estimation.Estimation, error) {
	in := c.defaults
	if err := floatParams(params, map[string]*float64{
		ParamMonthlyViewers:    &in.MonthlyViewers,
		ParamAvgViewTime:       &in.AvgViewTime,
		ParamCurrentLatencySec: &in.CurrentLatency,
		ParamTargetLatencySec:  &in.TargetLatency,
	}, false); err != nil {
		return estimation.Estimation{}, err
	}
	if err := floatParams(params, map[string]*float64{
		ParamAvgCpm:            &in.AvgCpm,
		ParamSubscriptionPrice: &in.SubscriptionPrice,
		ParamSubscriberCount:   &in.SubscriberCount,
		ParamChurnRate:         &in.ChurnRate,
		ParamCdnCostPerGb:      &in.CdnCostPerGb,
		ParamMonthlyBandwidth:  &in.MonthlyBandwidth,
		ParamSupportCosts:      &in.SupportCosts,
		ParamLicensingFees:     &in.LicensingFees,
		ParamChurnReduction:    &in.ChurnReduction,
	}, true); err != nil {
		return estimation.Estimation{}, err
	}

	r := CalculateOTT(in)
	return estimation.Estimation{
		Metrics: map[string]float64{
			"current_buffer_rate":    r.CurrentBufferRate,
			"improved_buffer_rate":   r.ImprovedBufferRate,
			"saved_view_time":        r.SavedViewTime,
			"potential_savings":      r.PotentialSavings,
			"churn_savings":          r.ChurnSavings,
			"operational_savings":    r.OperationalSavings,
			"total_monthly_savings":  r.TotalMonthlySavings,
			"payback_period":         r.PaybackPeriod,
			"roi_percentage":         r.RoiPercentage,
			"monthly_operating_cost": r.MonthlyOperatingCost,
		},
		Reason: fmt.Sprintf("%.0f viewers, latency %.1fs -> %.1fs", in.MonthlyViewers, in.CurrentLatency, in.TargetLatency),
	}, nil
}

// ValidateOTTInputs rejects negative figures and returns the first offending field.
func ValidateOTTInputs(in OTTInputs) (string, error) {
	return firstNegative([]namedValue{
		{"monthlyViewers", in.MonthlyViewers},
		{"avgViewTime", in.AvgViewTime},
		{"avgCpm", in.AvgCpm},
		{"currentLatency", in.CurrentLatency},
		{"targetLatency", in.TargetLatency},
		{"subscriptionPrice", in.SubscriptionPrice},
		{"subscriberCount", in.SubscriberCount},
		{"churnRate", in.ChurnRate},
		{"cdnCostPerGb", in.CdnCostPerGb},
		{"monthlyBandwidth", in.MonthlyBandwidth},
		{"supportCosts", in.SupportCosts},
		{"licensingFees", in.LicensingFees},
		{"churnReduction", in.ChurnReduction},
	})
}
