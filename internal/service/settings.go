package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"candlescan/internal/dto"
	"candlescan/internal/model"
	"candlescan/internal/repository"
	"candlescan/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
)

// SettingsService manages per-user notification preferences. Validation
// failures are returned as a typed value, not through the error path.
type SettingsService interface {
	Get(ctx context.Context, principal dto.Principal) (*model.Settings, error)
	Update(ctx context.Context, principal dto.Principal, req dto.UpdateSettingsRequest) (*model.Settings, *dto.ValidationError, error)
}

type settingsService struct {
	log          *logger.Logger
	validator    *goValidator.Validate
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(log *logger.Logger, validator *goValidator.Validate, settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{log: log, validator: validator, settingsRepo: settingsRepo}
}

// Get returns the stored settings, or defaults pre-filled from the session
// identity when the user has none yet.
func (s *settingsService) Get(ctx context.Context, principal dto.Principal) (*model.Settings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		defaults := &model.Settings{
			UserID:             principal.UserID,
			EmailNotifications: false,
		}
		if principal.Email != "" {
			defaults.NotificationEmail = &principal.Email
		}
		return defaults, nil
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, principal dto.Principal, req dto.UpdateSettingsRequest) (*model.Settings, *dto.ValidationError, error) {
	if err := s.validator.Struct(req); err != nil {
		var fieldErrs goValidator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			field := lowerFirst(first.Field())
			return nil, &dto.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s must be a valid %s", field, first.Tag()),
			}, nil
		}
		return nil, nil, err
	}

	current, err := s.settingsRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, nil, err
	}
	if current == nil {
		current = &model.Settings{UserID: principal.UserID}
	}

	if req.EmailNotifications != nil {
		current.EmailNotifications = *req.EmailNotifications
	}
	if req.NotificationEmail != nil {
		current.NotificationEmail = req.NotificationEmail
	}

	if err := s.settingsRepo.Upsert(ctx, current); err != nil {
		return nil, nil, err
	}
	return current, nil, nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
