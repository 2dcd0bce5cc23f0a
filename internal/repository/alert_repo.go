package repository

import (
	"context"

	"candlescan/internal/model"
	"candlescan/pkg/utils"

	"gorm.io/gorm"
)

// AlertRepository is the append-only log of signal transitions. The caller
// guarantees Create is only invoked for an actual transition away from the
// previously stored signal.
type AlertRepository interface {
	Create(ctx context.Context, alert *model.Alert, opts ...utils.DBOption) error
	List(ctx context.Context) ([]model.Alert, error)
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *model.Alert, opts ...utils.DBOption) error {
	db := utils.ApplyOptions(r.db, opts...).WithContext(ctx)
	return db.Create(alert).Error
}

func (r *alertRepository) List(ctx context.Context) ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}
