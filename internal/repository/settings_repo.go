package repository

import (
	"context"
	"errors"

	"candlescan/internal/model"
	"candlescan/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository stores per-user notification preferences.
type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.Settings, error)
	Upsert(ctx context.Context, settings *model.Settings, opts ...utils.DBOption) error
	ListEmailEnabled(ctx context.Context) ([]model.Settings, error)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetByUserID returns nil without error when the user has no settings row.
func (r *settingsRepository) GetByUserID(ctx context.Context, userID string) (*model.Settings, error) {
	var settings model.Settings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *model.Settings, opts ...utils.DBOption) error {
	db := utils.ApplyOptions(r.db, opts...).WithContext(ctx)

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email_notifications", "notification_email"}),
	}).Create(settings).Error
}

func (r *settingsRepository) ListEmailEnabled(ctx context.Context) ([]model.Settings, error) {
	var settings []model.Settings
	err := r.db.WithContext(ctx).
		Where("email_notifications = ? AND notification_email IS NOT NULL", true).
		Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}
