package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mozark/roi-planner/internal/events"
	"github.com/mozark/roi-planner/internal/store"
	"github.com/mozark/roi-planner/internal/store/model"
	"github.com/mozark/roi-planner/pkg/log"
	"github.com/mozark/roi-planner/pkg/metrics"
)

// UserInfo identifies the lead asking for a detailed analysis. It is validated by the
// HTTP layer before it reaches the service.
type UserInfo struct {
	Name    string
	Email   string
	Company string
	Phone   string
}

type AnalysisRequestService struct {
	scenarios   *ScenarioService
	store       store.Store
	eventWriter *events.EventProducer
	logger      *log.StructuredLogger
}

// NewAnalysisRequestService creates an AnalysisRequestService. eventWriter may be nil, in which
// case requests are only stored.
func NewAnalysisRequestService(store store.Store, scenarios *ScenarioService, eventWriter *events.EventProducer) *AnalysisRequestService {
	return &AnalysisRequestService{
		scenarios:   scenarios,
		store:       store,
		eventWriter: eventWriter,
		logger:      log.NewDebugLogger("analysis_request_service"),
	}
}

// CreateAnalysisRequest stores the request with a snapshot of the scenario results and
// publishes it as an AnalysisRequestedKind notification. Publishing never fails the request.
func (as *AnalysisRequestService) CreateAnalysisRequest(ctx context.Context, scenarioID uuid.UUID, info UserInfo) (*model.AnalysisRequest, error) {
	tracer := as.logger.WithContext(ctx).
		Operation("create_analysis_request").
		WithUUID("scenario_id", scenarioID).
		Build()

	state, err := as.scenarios.GetScenario(ctx, scenarioID)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	request := model.AnalysisRequest{
		ID:         uuid.New(),
		ScenarioID: scenarioID,
		Name:       strings.TrimSpace(info.Name),
		Email:      strings.TrimSpace(info.Email),
		Company:    strings.TrimSpace(info.Company),
		Snapshot: model.MakeJSONField(model.AnalysisSnapshot{
			Inputs:   state.Scenario.Inputs(),
			Results:  state.Results,
			Capacity: state.Capacity,
		}),
	}
	if phone := strings.TrimSpace(info.Phone); phone != "" {
		request.Phone = &phone
	}

	created, err := as.store.AnalysisRequest().Create(ctx, request)
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to create analysis request: %w", err)
	}
	tracer.Step("stored").WithUUID("request_id", created.ID).Log()

	metrics.IncreaseAnalysisRequestsTotalMetric(state.Scenario.Industry)
	metrics.UniqueCompaniesPerWeek.Add(created.Company)

	event := events.AnalysisRequestedEvent{
		RequestID:    created.ID.String(),
		ScenarioID:   scenarioID.String(),
		ScenarioName: state.Scenario.Name,
		Name:         created.Name,
		Email:        created.Email,
		Company:      created.Company,
		Inputs:       state.Scenario.Inputs(),
		Results:      state.Results,
		Capacity:     state.Capacity,
		RequestedAt:  created.CreatedAt.UTC().Truncate(time.Second),
	}
	if created.Phone != nil {
		event.Phone = *created.Phone
	}
	publish(ctx, as.eventWriter, events.AnalysisRequestedKind, event)

	tracer.Success().Log()

	return created, nil
}

func (as *AnalysisRequestService) ListAnalysisRequests(ctx context.Context, scenarioID uuid.UUID) (model.AnalysisRequestList, error) {
	tracer := as.logger.WithContext(ctx).
		Operation("list_analysis_requests").
		WithUUID("scenario_id", scenarioID).
		Build()

	if _, err := as.store.Scenario().Get(ctx, scenarioID); err != nil {
		tracer.Error(err).Log()
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrScenarioNotFound(scenarioID)
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}

	requests, err := as.store.AnalysisRequest().ListByScenario(ctx, scenarioID)
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to list analysis requests: %w", err)
	}

	tracer.Success().WithInt("count", len(requests)).Log()

	return requests, nil
}

func (as *AnalysisRequestService) GetAnalysisRequest(ctx context.Context, id uuid.UUID) (*model.AnalysisRequest, error) {
	request, err := as.store.AnalysisRequest().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrAnalysisRequestNotFound(id)
		}
		return nil, fmt.Errorf("failed to get analysis request: %w", err)
	}
	return request, nil
}
