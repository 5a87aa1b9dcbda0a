package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mozark/roi-planner/internal/service/report/csv"
	"github.com/mozark/roi-planner/internal/service/report/html"
	"github.com/mozark/roi-planner/internal/service/report/types"
	"github.com/mozark/roi-planner/internal/service/report/xlsx"
	"github.com/mozark/roi-planner/pkg/log"
)

type ReportRenderer = types.ReportRenderer
type ReportFormat = types.ReportFormat
type ReportOptions = types.ReportOptions
type ReportData = types.ReportData

const (
	ReportFormatCSV  = types.ReportFormatCSV
	ReportFormatXLSX = types.ReportFormatXLSX
	ReportFormatHTML = types.ReportFormatHTML
)

// Report is a rendered scenario export.
type Report struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ReportService struct {
	scenarios *ScenarioService
	renderers map[types.ReportFormat]types.ReportRenderer
	logger    *log.StructuredLogger
}

func NewReportService(scenarios *ScenarioService) *ReportService {
	service := &ReportService{
		scenarios: scenarios,
		renderers: make(map[types.ReportFormat]types.ReportRenderer),
		logger:    log.NewDebugLogger("report_service"),
	}

	for _, renderer := range []types.ReportRenderer{csv.NewRenderer(), xlsx.NewRenderer(), html.NewRenderer()} {
		service.renderers[renderer.SupportedFormat()] = renderer
	}

	return service
}

// GenerateReport exports the inputs and results of a scenario.
func (r *ReportService) GenerateReport(ctx context.Context, scenarioID uuid.UUID, options types.ReportOptions) (*Report, error) {
	tracer := r.logger.WithContext(ctx).
		Operation("generate_report").
		WithUUID("scenario_id", scenarioID).
		WithString("format", string(options.Format)).
		Build()

	renderer, exists := r.renderers[options.Format]
	if !exists {
		err := NewErrUnsupportedReportFormat(string(options.Format))
		tracer.Error(err).Log()
		return nil, err
	}

	state, err := r.scenarios.GetScenario(ctx, scenarioID)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	content, err := renderer.Render(NewReportData(state, options, time.Now()))
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	tracer.Success().WithInt("size", len(content)).Log()

	return &Report{
		Filename:    fmt.Sprintf("roi-report-%s.%s", scenarioID, options.Format),
		ContentType: options.Format.ContentType(),
		Content:     content,
	}, nil
}

func NewReportData(state *ScenarioState, options types.ReportOptions, now time.Time) *types.ReportData {
	return &types.ReportData{
		Scenario: types.ScenarioDetail{
			ID:               state.Scenario.ID,
			Name:             state.Scenario.Name,
			CreatedAt:        state.Scenario.CreatedAt,
			CyclesOverridden: state.Scenario.CyclesOverridden,
		},
		Benchmark: state.Benchmark,
		Inputs:    state.Scenario.Inputs(),
		Capacity:  state.Capacity,
		Results:   state.Results,
		Options:   options,
		Timestamps: types.ReportTimestamps{
			Generated:     now.Format("January 2, 2006"),
			GeneratedTime: now.Format("3:04 PM"),
		},
	}
}
