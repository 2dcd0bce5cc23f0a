package repository

import (
	"candlescan/config"
	"candlescan/pkg/cache"
	"candlescan/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	StockRepo      StockRepository
	AlertRepo      AlertRepository
	SettingsRepo   SettingsRepository
	ScanRunRepo    ScanRunRepository
	MarketDataRepo MarketDataRepository
	UnitOfWork     UnitOfWork
}

func NewRepository(cfg *config.Config, barCache cache.Cache, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	return &Repository{
		StockRepo:      NewStockRepository(db),
		AlertRepo:      NewAlertRepository(db),
		SettingsRepo:   NewSettingsRepository(db),
		ScanRunRepo:    NewScanRunRepository(db),
		MarketDataRepo: NewYahooFinanceRepository(cfg, barCache, log),
		UnitOfWork:     NewUnitOfWork(db),
	}, nil
}
