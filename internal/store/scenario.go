package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mozark/roi-planner/internal/store/model"
	"gorm.io/gorm"
)

type Scenario interface {
	List(ctx context.Context, filter *ScenarioQueryFilter, opts *ScenarioQueryOptions) (model.ScenarioList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Scenario, error)
	Create(ctx context.Context, scenario model.Scenario) (*model.Scenario, error)
	Update(ctx context.Context, scenario model.Scenario) (*model.Scenario, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByIndustry(ctx context.Context) (map[string]int, error)
}

type ScenarioStore struct {
	db *gorm.DB
}

// Make sure we conform to Scenario interface
var _ Scenario = (*ScenarioStore)(nil)

func NewScenarioStore(db *gorm.DB) Scenario {
	return &ScenarioStore{db: db}
}

func (s *ScenarioStore) List(ctx context.Context, filter *ScenarioQueryFilter, opts *ScenarioQueryOptions) (model.ScenarioList, error) {
	var scenarios model.ScenarioList
	tx := s.getDB(ctx).Model(&scenarios)

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	if opts != nil {
		for _, fn := range opts.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Order("created_at DESC").Find(&scenarios).Error; err != nil {
		return nil, translateError(err)
	}
	return scenarios, nil
}

func (s *ScenarioStore) Get(ctx context.Context, id uuid.UUID) (*model.Scenario, error) {
	var scenario model.Scenario
	if err := s.getDB(ctx).First(&scenario, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &scenario, nil
}

func (s *ScenarioStore) Create(ctx context.Context, scenario model.Scenario) (*model.Scenario, error) {
	if scenario.ID == uuid.Nil {
		scenario.ID = uuid.New()
	}
	if err := s.getDB(ctx).Create(&scenario).Error; err != nil {
		return nil, translateError(err)
	}
	return &scenario, nil
}

// Update writes every calculator field of the scenario, including zero values.
func (s *ScenarioStore) Update(ctx context.Context, scenario model.Scenario) (*model.Scenario, error) {
	now := time.Now()
	scenario.UpdatedAt = &now

	result := s.getDB(ctx).Model(&model.Scenario{ID: scenario.ID}).
		Select("name", "industry", "manual_testers", "tester_salary", "weekly_testing_hours",
			"monthly_test_cycles", "devices_used", "release_frequency", "cycles_overridden", "updated_at").
		Updates(&scenario)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return s.Get(ctx, scenario.ID)
}

// Delete removes the scenario and its analysis requests. Deleting a missing scenario is not an error.
func (s *ScenarioStore) Delete(ctx context.Context, id uuid.UUID) error {
	db := s.getDB(ctx)
	if err := db.Where("scenario_id = ?", id).Delete(&model.AnalysisRequest{}).Error; err != nil {
		return translateError(err)
	}
	if err := db.Delete(&model.Scenario{}, "id = ?", id).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (s *ScenarioStore) CountByIndustry(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Industry string
		Count    int
	}
	if err := s.getDB(ctx).Model(&model.Scenario{}).
		Select("industry, COUNT(*) AS count").
		Group("industry").
		Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Industry] = r.Count
	}
	return counts, nil
}

func (s *ScenarioStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}
