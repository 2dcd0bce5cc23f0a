package repository

import (
	"context"

	"candlescan/internal/model"
	"candlescan/pkg/utils"

	"gorm.io/gorm"
)

// ScanRunRepository persists the audit record of each scan execution.
type ScanRunRepository interface {
	Create(ctx context.Context, run *model.ScanRun, opts ...utils.DBOption) error
	Update(ctx context.Context, run *model.ScanRun, opts ...utils.DBOption) error
	List(ctx context.Context, limit int) ([]model.ScanRun, error)
}

type scanRunRepository struct {
	db *gorm.DB
}

func NewScanRunRepository(db *gorm.DB) ScanRunRepository {
	return &scanRunRepository{db: db}
}

func (r *scanRunRepository) Create(ctx context.Context, run *model.ScanRun, opts ...utils.DBOption) error {
	db := utils.ApplyOptions(r.db, opts...).WithContext(ctx)
	return db.Create(run).Error
}

func (r *scanRunRepository) Update(ctx context.Context, run *model.ScanRun, opts ...utils.DBOption) error {
	db := utils.ApplyOptions(r.db, opts...).WithContext(ctx)
	return db.Save(run).Error
}

func (r *scanRunRepository) List(ctx context.Context, limit int) ([]model.ScanRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []model.ScanRun
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
