package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type SortOrder int

const (
	Unsorted SortOrder = iota
	SortByName
	SortByUpdatedTime
	SortByCreatedTime
)

type ScenarioQueryFilter BaseQuerier

func NewScenarioQueryFilter() *ScenarioQueryFilter {
	return &ScenarioQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (f *ScenarioQueryFilter) ByIndustry(industry string) *ScenarioQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("industry = ?", industry)
	})
	return f
}

func (f *ScenarioQueryFilter) ByID(ids []uuid.UUID) *ScenarioQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id IN ?", ids)
	})
	return f
}

// WithoutExample hides the seeded example scenario.
func (f *ScenarioQueryFilter) WithoutExample() *ScenarioQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id != ?", uuid.UUID{})
	})
	return f
}

type ScenarioQueryOptions BaseQuerier

func NewScenarioQueryOptions() *ScenarioQueryOptions {
	return &ScenarioQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *ScenarioQueryOptions) WithSortOrder(sort SortOrder) *ScenarioQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByName:
			return tx.Order("name")
		case SortByUpdatedTime:
			return tx.Order("updated_at DESC")
		case SortByCreatedTime:
			return tx.Order("created_at DESC")
		default:
			return tx
		}
	})
	return o
}

// Limit results
func (o *ScenarioQueryOptions) WithLimit(limit int) *ScenarioQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit)
	})
	return o
}

// Offset results
func (o *ScenarioQueryOptions) WithOffset(offset int) *ScenarioQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(offset)
	})
	return o
}
