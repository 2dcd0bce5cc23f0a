package service

import (
	"context"
	"errors"

	"candlescan/config"
	"candlescan/internal/dto"
	"candlescan/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SchedulerService triggers the periodic scan. It reuses the on-demand scan
// path, so the single-scan mutual exclusion applies to both triggers.
type SchedulerService struct {
	cfg     *config.Config
	log     *logger.Logger
	scanner ScannerService
	cron    *cron.Cron
}

func NewSchedulerService(cfg *config.Config, log *logger.Logger, scanner ScannerService) *SchedulerService {
	return &SchedulerService{
		cfg:     cfg,
		log:     log,
		scanner: scanner,
		cron:    cron.New(),
	}
}

func (s *SchedulerService) Start() error {
	if !s.cfg.Scheduler.Enabled {
		s.log.Info("Scheduler disabled, periodic scans will not run")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.CronExpression, s.runScheduledScan)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Scheduler started",
		logger.StringField("cron_expression", s.cfg.Scheduler.CronExpression),
	)
	return nil
}

// Stop halts scheduling and returns a context that completes when any
// running scan job has finished.
func (s *SchedulerService) Stop() context.Context {
	s.log.Info("Stopping scheduler")
	return s.cron.Stop()
}

func (s *SchedulerService) runScheduledScan() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Scheduler.TimeoutDuration)
	defer cancel()

	s.log.Info("Running scheduled scan")
	result, err := s.scanner.Scan(ctx)
	if err != nil {
		if errors.Is(err, dto.ErrScanInProgress) {
			s.log.Warn("Skipping scheduled scan, another scan is already running")
			return
		}
		s.log.Error("Scheduled scan failed", logger.ErrorField(err))
		return
	}

	s.log.Info("Scheduled scan completed",
		logger.IntField("scanned", result.ScannedCount),
		logger.IntField("failed", len(result.FailedSymbols)),
	)
}
