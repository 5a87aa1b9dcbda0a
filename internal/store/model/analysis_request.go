package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mozark/roi-planner/internal/estimation/calculators"
)

// AnalysisSnapshot freezes the calculator state a detailed analysis was requested for.
type AnalysisSnapshot struct {
	Inputs   calculators.QAInputs  `json:"inputs"`
	Results  calculators.QAResults `json:"results"`
	Capacity float64               `json:"capacity"`
}

// AnalysisRequest is a lead asking for a detailed analysis of a scenario.
type AnalysisRequest struct {
	ID         uuid.UUID                    `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt  time.Time                    `gorm:"not null"`
	ScenarioID uuid.UUID                    `gorm:"not null;type:VARCHAR(255);index:analysis_requests_scenario_id_idx"`
	Name       string                       `gorm:"not null;type:VARCHAR(255)"`
	Email      string                       `gorm:"not null;type:VARCHAR(255)"`
	Company    string                       `gorm:"not null;type:VARCHAR(255)"`
	Phone      *string                      `gorm:"type:VARCHAR(50)"`
	Snapshot   *JSONField[AnalysisSnapshot] `gorm:"type:jsonb;not null"`
}

type AnalysisRequestList []AnalysisRequest

func (a AnalysisRequest) String() string {
	val, _ := json.Marshal(a)
	return string(val)
}
