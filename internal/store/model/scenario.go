package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mozark/roi-planner/internal/estimation/calculators"
)

// Scenario is the stored form state of a QA calculator session.
type Scenario struct {
	ID                 uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          *time.Time
	Name               string            `gorm:"not null;type:VARCHAR(255)"`
	Industry           string            `gorm:"not null;type:VARCHAR(100);index:scenarios_industry_idx"`
	ManualTesters      float64           `gorm:"not null"`
	TesterSalary       float64           `gorm:"not null"`
	WeeklyTestingHours float64           `gorm:"not null"`
	MonthlyTestCycles  float64           `gorm:"not null"`
	DevicesUsed        float64           `gorm:"not null"`
	ReleaseFrequency   float64           `gorm:"not null"`
	CyclesOverridden   bool              `gorm:"not null;default:false"`
	AnalysisRequests   []AnalysisRequest `gorm:"foreignKey:ScenarioID;references:ID;constraint:OnDelete:CASCADE;"`
}

type ScenarioList []Scenario

func (s Scenario) String() string {
	val, _ := json.Marshal(s)
	return string(val)
}

func (s Scenario) Inputs() calculators.QAInputs {
	return calculators.QAInputs{
		Industry:           s.Industry,
		ManualTesters:      s.ManualTesters,
		TesterSalary:       s.TesterSalary,
		WeeklyTestingHours: s.WeeklyTestingHours,
		MonthlyTestCycles:  s.MonthlyTestCycles,
		DevicesUsed:        s.DevicesUsed,
		ReleaseFrequency:   s.ReleaseFrequency,
	}
}

// SetInputs copies the calculator inputs into the row.
func (s *Scenario) SetInputs(in calculators.QAInputs) {
	s.Industry = in.Industry
	s.ManualTesters = in.ManualTesters
	s.TesterSalary = in.TesterSalary
	s.WeeklyTestingHours = in.WeeklyTestingHours
	s.MonthlyTestCycles = in.MonthlyTestCycles
	s.DevicesUsed = in.DevicesUsed
	s.ReleaseFrequency = in.ReleaseFrequency
}
