package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stock-order-service/internal/models"
)

// RunRepository persists import-run history
type RunRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new import run
func (r *RunRepository) Create(ctx context.Context, run *models.ImportRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// Update saves the run's final state along with any per-line errors
func (r *RunRepository) Update(ctx context.Context, run *models.ImportRun) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(run).Error
}

// GetByID returns one run with its errors
func (r *RunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ImportRun, error) {
	var run models.ImportRun
	if err := r.db.WithContext(ctx).Preload("Errors").First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// List returns recent runs, newest first
func (r *RunRepository) List(ctx context.Context, limit, offset int) ([]models.ImportRun, int64, error) {
	var runs []models.ImportRun
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.ImportRun{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&runs).Error
	return runs, total, err
}
