package service

import (
	"candlescan/config"
	"candlescan/internal/repository"
	"candlescan/internal/strategy"
	"candlescan/pkg/logger"
	"candlescan/pkg/notify"

	goValidator "github.com/go-playground/validator/v10"
)

type Service struct {
	StockService     StockService
	AlertService     AlertService
	SettingsService  SettingsService
	ScannerService   ScannerService
	SchedulerService *SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	validator *goValidator.Validate,
	repo *repository.Repository,
	notifier notify.Notifier,
) *Service {
	evaluator := strategy.NewMonthlyEngulfingEvaluator()
	scannerService := NewScannerService(cfg, log, evaluator, repo, notifier)

	return &Service{
		StockService:     NewStockService(log, repo.StockRepo),
		AlertService:     NewAlertService(repo.AlertRepo),
		SettingsService:  NewSettingsService(log, validator, repo.SettingsRepo),
		ScannerService:   scannerService,
		SchedulerService: NewSchedulerService(cfg, log, scannerService),
	}
}
