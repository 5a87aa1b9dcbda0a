package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/mozark/roi-planner/internal/estimation/calculators"
	"github.com/mozark/roi-planner/internal/store/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Scenario() Scenario
	AnalysisRequest() AnalysisRequest
	InitialMigration() error
	Seed() error
	Close() error
}

type DataStore struct {
	db              *gorm.DB
	log             logrus.FieldLogger
	scenario        Scenario
	analysisRequest AnalysisRequest
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:              db,
		log:             logrus.New().WithField("component", "store"),
		scenario:        NewScenarioStore(db),
		analysisRequest: NewAnalysisRequestStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db, s.log)
}

func (s *DataStore) Scenario() Scenario {
	return s.scenario
}

func (s *DataStore) AnalysisRequest() AnalysisRequest {
	return s.analysisRequest
}

// InitialMigration creates the schema from the models. Used when the database is not
// migrated with goose (sqlite).
func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.Scenario{}, &model.AnalysisRequest{})
}

// Seed creates or refreshes the example scenario, stored under the nil uuid.
func (s *DataStore) Seed() error {
	tx, err := newTransaction(s.db, s.log)
	if err != nil {
		return err
	}

	example := model.Scenario{
		ID:   uuid.UUID{},
		Name: "Example",
	}
	example.SetInputs(calculators.DefaultQAInputs(benchmark.Default().Lookup(benchmark.DefaultIndustry)))

	if err := tx.tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"industry", "manual_testers", "tester_salary", "weekly_testing_hours", "monthly_test_cycles", "devices_used", "release_frequency", "cycles_overridden"}),
	}).Create(&example).Error; err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
