package service

import (
	"context"

	"candlescan/internal/model"
	"candlescan/internal/repository"
)

// AlertService exposes the alert log, newest first.
type AlertService interface {
	List(ctx context.Context) ([]model.Alert, error)
}

type alertService struct {
	alertRepo repository.AlertRepository
}

func NewAlertService(alertRepo repository.AlertRepository) AlertService {
	return &alertService{alertRepo: alertRepo}
}

func (s *alertService) List(ctx context.Context) ([]model.Alert, error) {
	return s.alertRepo.List(ctx)
}
