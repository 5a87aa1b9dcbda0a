package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/mozark/roi-planner/internal/estimation/calculators"
	"github.com/mozark/roi-planner/internal/events"
	"github.com/mozark/roi-planner/internal/scenario"
	"github.com/mozark/roi-planner/internal/store"
	"github.com/mozark/roi-planner/internal/store/model"
	"github.com/mozark/roi-planner/pkg/log"
	"github.com/mozark/roi-planner/pkg/metrics"
	"go.uber.org/zap"
)

// ScenarioState is a stored scenario together with its derived figures.
type ScenarioState struct {
	Scenario  model.Scenario
	Benchmark benchmark.IndustryBenchmark
	Capacity  float64
	Results   calculators.QAResults
}

type ScenarioFilter struct {
	Industry string
	Limit    int
	Offset   int
}

// ScenarioUpdate is a partial change of a scenario. Nil fields are left alone.
type ScenarioUpdate struct {
	Name *string
	scenario.Update
}

type ScenarioService struct {
	store       store.Store
	table       benchmark.Table
	eventWriter *events.EventProducer
	logger      *log.StructuredLogger
}

// NewScenarioService creates a ScenarioService. eventWriter may be nil, in which case no
// notifications are published.
func NewScenarioService(store store.Store, table benchmark.Table, eventWriter *events.EventProducer) *ScenarioService {
	return &ScenarioService{
		store:       store,
		table:       table,
		eventWriter: eventWriter,
		logger:      log.NewDebugLogger("scenario_service"),
	}
}

// CreateScenario starts a scenario for the industry with every input at its default.
// An empty industry selects the general benchmark.
func (ss *ScenarioService) CreateScenario(ctx context.Context, name, industry string) (*ScenarioState, error) {
	if industry == "" {
		industry = benchmark.DefaultIndustry
	}

	tracer := ss.logger.WithContext(ctx).
		Operation("create_scenario").
		WithString("industry", industry).
		Build()

	form, err := scenario.NewForm(ss.table, industry)
	if err != nil {
		tracer.Error(err).Log()
		return nil, NewErrUnknownIndustry(industry)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("%s scenario", form.Benchmark().Name)
	}

	m := model.Scenario{Name: name, CyclesOverridden: form.CyclesOverridden()}
	m.SetInputs(form.Inputs())

	created, err := ss.store.Scenario().Create(ctx, m)
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to create scenario: %w", err)
	}

	ss.refreshScenarioMetrics(ctx)

	tracer.Success().WithUUID("scenario_id", created.ID).Log()

	return ss.state(*created, form), nil
}

func (ss *ScenarioService) ListScenarios(ctx context.Context, filter ScenarioFilter) (model.ScenarioList, error) {
	tracer := ss.logger.WithContext(ctx).
		Operation("list_scenarios").
		WithString("industry", filter.Industry).
		Build()

	f := store.NewScenarioQueryFilter()
	if filter.Industry != "" {
		f = f.ByIndustry(filter.Industry)
	}

	opts := store.NewScenarioQueryOptions().WithSortOrder(store.SortByCreatedTime)
	if filter.Limit > 0 {
		opts = opts.WithLimit(filter.Limit)
	}
	if filter.Offset > 0 {
		opts = opts.WithOffset(filter.Offset)
	}

	scenarios, err := ss.store.Scenario().List(ctx, f, opts)
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	tracer.Success().WithInt("count", len(scenarios)).Log()

	return scenarios, nil
}

func (ss *ScenarioService) GetScenario(ctx context.Context, id uuid.UUID) (*ScenarioState, error) {
	tracer := ss.logger.WithContext(ctx).
		Operation("get_scenario").
		WithUUID("scenario_id", id).
		Build()

	m, err := ss.store.Scenario().Get(ctx, id)
	if err != nil {
		tracer.Error(err).Log()
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrScenarioNotFound(id)
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}

	form, err := scenario.Restore(ss.table, m.Inputs(), m.CyclesOverridden)
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("scenario %s: %w", id, err)
	}

	tracer.Success().Log()

	return ss.state(*m, form), nil
}

// UpdateScenario applies a partial update through the scenario form: driver changes
// re-snap monthly test cycles, an explicit monthly test cycles value overrides them.
func (ss *ScenarioService) UpdateScenario(ctx context.Context, id uuid.UUID, update ScenarioUpdate) (*ScenarioState, error) {
	tracer := ss.logger.WithContext(ctx).
		Operation("update_scenario").
		WithUUID("scenario_id", id).
		Build()

	ctx, err := ss.store.NewTransactionContext(ctx)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}
	defer func() {
		_, _ = store.Rollback(ctx)
	}()

	m, err := ss.store.Scenario().Get(ctx, id)
	if err != nil {
		tracer.Error(err).Log()
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrScenarioNotFound(id)
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}

	form, err := scenario.Restore(ss.table, m.Inputs(), m.CyclesOverridden)
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("scenario %s: %w", id, err)
	}

	previousIndustry := m.Industry
	if err := form.Apply(update.Update); err != nil {
		tracer.Error(err).Log()
		var unknown *scenario.ErrUnknownIndustry
		if errors.As(err, &unknown) {
			return nil, NewErrUnknownIndustry(unknown.Industry)
		}
		return nil, err
	}
	tracer.Step("form_applied").
		WithBool("cycles_overridden", form.CyclesOverridden()).
		WithFloat("monthly_test_cycles", form.Inputs().MonthlyTestCycles).
		Log()

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			err := NewErrInvalidInput("name", errors.New("name must not be empty"))
			tracer.Error(err).Log()
			return nil, err
		}
		m.Name = name
	}
	m.SetInputs(form.Inputs())
	m.CyclesOverridden = form.CyclesOverridden()

	updated, err := ss.store.Scenario().Update(ctx, *m)
	if err != nil {
		tracer.Error(err).Log()
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrScenarioNotFound(id)
		}
		return nil, fmt.Errorf("failed to update scenario: %w", err)
	}

	if ctx, err = store.Commit(ctx); err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	if previousIndustry != updated.Industry {
		ss.refreshScenarioMetrics(ctx)
	}

	tracer.Success().Log()

	return ss.state(*updated, form), nil
}

// DeleteScenario removes the scenario and its analysis requests in one transaction, then
// publishes a ScenarioDeletedKind notification.
func (ss *ScenarioService) DeleteScenario(ctx context.Context, id uuid.UUID) error {
	tracer := ss.logger.WithContext(ctx).
		Operation("delete_scenario").
		WithUUID("scenario_id", id).
		Build()

	ctx, err := ss.store.NewTransactionContext(ctx)
	if err != nil {
		tracer.Error(err).Log()
		return err
	}
	defer func() {
		_, _ = store.Rollback(ctx)
	}()

	if _, err := ss.store.Scenario().Get(ctx, id); err != nil {
		tracer.Error(err).Log()
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrScenarioNotFound(id)
		}
		return fmt.Errorf("failed to get scenario: %w", err)
	}

	if err := ss.store.Scenario().Delete(ctx, id); err != nil {
		tracer.Error(err).Log()
		return fmt.Errorf("failed to delete scenario: %w", err)
	}

	if ctx, err = store.Commit(ctx); err != nil {
		tracer.Error(err).Log()
		return err
	}

	ss.refreshScenarioMetrics(ctx)
	publish(ctx, ss.eventWriter, events.ScenarioDeletedKind, events.ScenarioDeletedEvent{ScenarioID: id.String()})

	tracer.Success().Log()

	return nil
}

func (ss *ScenarioService) state(m model.Scenario, form *scenario.Form) *ScenarioState {
	return &ScenarioState{
		Scenario:  m,
		Benchmark: form.Benchmark(),
		Capacity:  form.Capacity(),
		Results:   form.Results(),
	}
}

// refreshScenarioMetrics sets the scenario gauge of every industry. Failures only cost
// a stale gauge and are logged.
func (ss *ScenarioService) refreshScenarioMetrics(ctx context.Context) {
	counts, err := ss.store.Scenario().CountByIndustry(ctx)
	if err != nil {
		zap.S().Named("scenario_service").Warnw("failed to count scenarios", "error", err)
		return
	}
	for _, industry := range ss.table.Keys() {
		metrics.UpdateScenarioCountMetric(industry, counts[industry])
	}
}

// publish writes a notification without failing the caller.
func publish(ctx context.Context, w *events.EventProducer, kind string, v any) {
	if w == nil {
		return
	}
	if err := w.WriteJSON(ctx, kind, v); err != nil {
		zap.S().Named("service").Errorw("failed to write event", "error", err, "event_kind", kind)
	}
}
