package events

import (
	"time"

	"github.com/mozark/roi-planner/internal/estimation/calculators"
)

// AnalysisRequestedEvent is the payload of AnalysisRequestedKind events. It carries
// everything the receiver needs to prepare the detailed analysis.
type AnalysisRequestedEvent struct {
	RequestID    string                `json:"request_id"`
	ScenarioID   string                `json:"scenario_id"`
	ScenarioName string                `json:"scenario_name"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	Company      string                `json:"company"`
	Phone        string                `json:"phone,omitempty"`
	Inputs       calculators.QAInputs  `json:"inputs"`
	Results      calculators.QAResults `json:"results"`
	Capacity     float64               `json:"capacity"`
	RequestedAt  time.Time             `json:"requested_at"`
}

type ScenarioDeletedEvent struct {
	ScenarioID string `json:"scenario_id"`
}
