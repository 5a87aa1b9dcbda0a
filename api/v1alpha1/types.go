// Package v1alpha1 holds the wire types of the ROI planner HTTP API.
package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

// Error is the body of every non 2xx answer.
type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"requestId,omitempty"`
}

type Info struct {
	GitCommit   string `json:"gitCommit"`
	VersionName string `json:"versionName"`
}

type Status struct {
	Status string `json:"status"`
}

// Range is an inclusive [min, max] interval.
type Range [2]float64

type Benchmark struct {
	Key                    string  `json:"key"`
	Name                   string  `json:"name"`
	Description            string  `json:"description"`
	TypicalTesters         Range   `json:"typicalTesters"`
	TypicalSalary          Range   `json:"typicalSalary"`
	TypicalTestCycles      Range   `json:"typicalTestCycles"`
	TypicalDevices         Range   `json:"typicalDevices"`
	TypicalReleases        Range   `json:"typicalReleases"`
	TestingComplexity      float64 `json:"testingComplexity"`
	EfficiencyMultiplier   float64 `json:"efficiencyMultiplier"`
	DeviceCost             float64 `json:"deviceCost"`
	CoverageBoost          float64 `json:"coverageBoost"`
	RegulatoryRequirements string  `json:"regulatoryRequirements"`
}

type BenchmarkList []Benchmark

// QAInputs are the QA calculator inputs. A zero monthlyTestCycles is filled in from the
// capacity estimate.
type QAInputs struct {
	Industry           string  `json:"industry,omitempty" validate:"omitempty,industry"`
	ManualTesters      float64 `json:"manualTesters" validate:"gte=0"`
	TesterSalary       float64 `json:"testerSalary" validate:"gte=0"`
	WeeklyTestingHours float64 `json:"weeklyTestingHours" validate:"gte=0"`
	MonthlyTestCycles  float64 `json:"monthlyTestCycles,omitempty" validate:"gte=0"`
	DevicesUsed        float64 `json:"devicesUsed" validate:"gte=0"`
	ReleaseFrequency   float64 `json:"releaseFrequency" validate:"gte=0"`
}

type QAResults struct {
	ReductionManualEffort      float64 `json:"reductionManualEffort"`
	EfficiencyIncrease         float64 `json:"efficiencyIncrease"`
	AnnualSalarySavings        float64 `json:"annualSalarySavings"`
	DeviceCostSavings          float64 `json:"deviceCostSavings"`
	TotalAnnualSavings         float64 `json:"totalAnnualSavings"`
	ReleaseCycleImprovement    float64 `json:"releaseCycleImprovement"`
	TestingCoverageImprovement float64 `json:"testingCoverageImprovement"`
}

type QACalculation struct {
	Inputs   QAInputs  `json:"inputs"`
	Capacity float64   `json:"capacity"`
	Results  QAResults `json:"results"`
}

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

// OTTResults. Figures that are not finite, such as the payback of a zero saving, are null.
type OTTResults struct {
	CurrentBufferRate    float64  `json:"currentBufferRate"`
	ImprovedBufferRate   float64  `json:"improvedBufferRate"`
	LostViewTime         float64  `json:"lostViewTime"`
	SavedViewTime        float64  `json:"savedViewTime"`
	PotentialSavings     float64  `json:"potentialSavings"`
	ChurnSavings         float64  `json:"churnSavings"`
	OperationalSavings   float64  `json:"operationalSavings"`
	TotalMonthlySavings  float64  `json:"totalMonthlySavings"`
	PaybackPeriod        *float64 `json:"paybackPeriod"`
	RoiPercentage        *float64 `json:"roiPercentage"`
	MonthlyOperatingCost float64  `json:"monthlyOperatingCost"`
}

type OTTCalculation struct {
	Inputs  OTTInputs  `json:"inputs"`
	Results OTTResults `json:"results"`
}

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
	CurrentAbandonmentRate float64  `json:"currentAbandonmentRate"`
	TargetAbandonmentRate  float64  `json:"targetAbandonmentRate"`
	SavedTransactions      float64  `json:"savedTransactions"`
	DailySavings           float64  `json:"dailySavings"`
	DeclineSavings         float64  `json:"declineSavings"`
	FraudSavings           float64  `json:"fraudSavings"`
	ChargebackSavings      float64  `json:"chargebackSavings"`
	FeeSavings             float64  `json:"feeSavings"`
	SupportSavings         float64  `json:"supportSavings"`
	ClvSavings             float64  `json:"clvSavings"`
	TotalDailySavings      float64  `json:"totalDailySavings"`
	TotalAnnualSavings     float64  `json:"totalAnnualSavings"`
	RoiPercentage          *float64 `json:"roiPercentage"`
	PaybackPeriod          *float64 `json:"paybackPeriod"`
}

type PaymentCalculation struct {
	Inputs  PaymentInputs  `json:"inputs"`
	Results PaymentResults `json:"results"`
}

type EstimationRequest struct {
	Params map[string]any `json:"params" validate:"required,min=1"`
}

type EstimationResult struct {
	Metrics map[string]*float64 `json:"metrics"`
	Reason  string              `json:"reason"`
	Failed  bool                `json:"failed"`
}

// EstimationResponse maps calculator names to their results.
type EstimationResponse map[string]EstimationResult

type ScenarioCreate struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Industry *string `json:"industry,omitempty" validate:"omitempty,industry"`
}

// ScenarioUpdate is a partial update. Absent fields are left alone.
type ScenarioUpdate struct {
	Name               *string  `json:"name,omitempty" validate:"omitempty,scenario_name,max=255"`
	Industry           *string  `json:"industry,omitempty" validate:"omitempty,industry"`
	ManualTesters      *float64 `json:"manualTesters,omitempty" validate:"omitempty,gte=0"`
	TesterSalary       *float64 `json:"testerSalary,omitempty" validate:"omitempty,gte=0"`
	WeeklyTestingHours *float64 `json:"weeklyTestingHours,omitempty" validate:"omitempty,gte=0"`
	MonthlyTestCycles  *float64 `json:"monthlyTestCycles,omitempty" validate:"omitempty,gte=0"`
	DevicesUsed        *float64 `json:"devicesUsed,omitempty" validate:"omitempty,gte=0"`
	ReleaseFrequency   *float64 `json:"releaseFrequency,omitempty" validate:"omitempty,gte=0"`
}

type Scenario struct {
	Id               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
	Inputs           QAInputs   `json:"inputs"`
	CyclesOverridden bool       `json:"cyclesOverridden"`
	Capacity         *float64   `json:"capacity,omitempty"`
	Results          *QAResults `json:"results,omitempty"`
}

type ScenarioList []Scenario

type UserInfo struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Email   string  `json:"email" validate:"required,email,max=255"`
	Company string  `json:"company" validate:"required,max=255"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,phone"`
}

type AnalysisSnapshot struct {
	Inputs   QAInputs  `json:"inputs"`
	Results  QAResults `json:"results"`
	Capacity float64   `json:"capacity"`
}

type AnalysisRequest struct {
	Id         uuid.UUID        `json:"id"`
	ScenarioId uuid.UUID        `json:"scenarioId"`
	CreatedAt  time.Time        `json:"createdAt"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Company    string           `json:"company"`
	Phone      *string          `json:"phone,omitempty"`
	Snapshot   AnalysisSnapshot `json:"snapshot"`
}

type AnalysisRequestList []AnalysisRequest
