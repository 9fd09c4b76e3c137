package tasks

import (
	"context"

	"gorm.io/gorm"

	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
)

// RunStore persists the operator-visible record of task executions.
type RunStore interface {
	CreateRun(ctx context.Context, run *models.TaskRun) error
	SaveRun(ctx context.Context, run *models.TaskRun) error
}

type GormRunStore struct {
	db *gorm.DB
}

func NewGormRunStore(db *gorm.DB) *GormRunStore {
	return &GormRunStore{db: db}
}

func (s *GormRunStore) CreateRun(ctx context.Context, run *models.TaskRun) error {
	return s.db.WithContext(ctx).Create(run).Error
}

func (s *GormRunStore) SaveRun(ctx context.Context, run *models.TaskRun) error {
	return s.db.WithContext(ctx).Save(run).Error
}

var _ RunStore = (*GormRunStore)(nil)
