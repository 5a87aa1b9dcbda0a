package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/mozark/roi-planner/internal/store/model"
	"gorm.io/gorm"
)

type AnalysisRequest interface {
	Create(ctx context.Context, request model.AnalysisRequest) (*model.AnalysisRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*model.AnalysisRequest, error)
	ListByScenario(ctx context.Context, scenarioID uuid.UUID) (model.AnalysisRequestList, error)
}

type AnalysisRequestStore struct {
	db *gorm.DB
}

// Make sure we conform to AnalysisRequest interface
var _ AnalysisRequest = (*AnalysisRequestStore)(nil)

func NewAnalysisRequestStore(db *gorm.DB) AnalysisRequest {
	return &AnalysisRequestStore{db: db}
}

func (a *AnalysisRequestStore) Create(ctx context.Context, request model.AnalysisRequest) (*model.AnalysisRequest, error) {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	if err := a.getDB(ctx).Create(&request).Error; err != nil {
		return nil, translateError(err)
	}
	return &request, nil
}

func (a *AnalysisRequestStore) Get(ctx context.Context, id uuid.UUID) (*model.AnalysisRequest, error) {
	var request model.AnalysisRequest
	if err := a.getDB(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &request, nil
}

func (a *AnalysisRequestStore) ListByScenario(ctx context.Context, scenarioID uuid.UUID) (model.AnalysisRequestList, error) {
	var requests model.AnalysisRequestList
	if err := a.getDB(ctx).Where("scenario_id = ?", scenarioID).Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, translateError(err)
	}
	return requests, nil
}

func (a *AnalysisRequestStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return a.db.WithContext(ctx)
}
