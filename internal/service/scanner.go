package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"candlescan/config"
	"candlescan/internal/dto"
	"candlescan/internal/model"
	"candlescan/internal/repository"
	"candlescan/internal/strategy"
	"candlescan/pkg/logger"
	"candlescan/pkg/notify"
	"candlescan/pkg/utils"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// ScannerService runs the fetch -> evaluate -> upsert -> alert pipeline
// across the tracked watchlist.
type ScannerService interface {
	Scan(ctx context.Context) (*dto.ScanResult, error)
	History(ctx context.Context, limit int) ([]model.ScanRun, error)
}

type scannerService struct {
	cfg          *config.Config
	log          *logger.Logger
	evaluator    strategy.SignalEvaluator
	stockRepo    repository.StockRepository
	alertRepo    repository.AlertRepository
	settingsRepo repository.SettingsRepository
	scanRunRepo  repository.ScanRunRepository
	marketData   repository.MarketDataRepository
	uow          repository.UnitOfWork
	notifier     notify.Notifier

	running atomic.Bool
}

func NewScannerService(
	cfg *config.Config,
	log *logger.Logger,
	evaluator strategy.SignalEvaluator,
	repo *repository.Repository,
	notifier notify.Notifier,
) ScannerService {
	return &scannerService{
		cfg:          cfg,
		log:          log,
		evaluator:    evaluator,
		stockRepo:    repo.StockRepo,
		alertRepo:    repo.AlertRepo,
		settingsRepo: repo.SettingsRepo,
		scanRunRepo:  repo.ScanRunRepo,
		marketData:   repo.MarketDataRepo,
		uow:          repo.UnitOfWork,
		notifier:     notifier,
	}
}

// symbolOutcome is what one per-symbol pipeline step reports back to the run.
type symbolOutcome struct {
	item    config.WatchlistItem
	alert   *model.Alert
	reason  string
	fetched bool
}

// Scan processes every watchlist symbol once. Two scans never overlap: a
// request while one is active is rejected with dto.ErrScanInProgress.
func (s *scannerService) Scan(ctx context.Context) (*dto.ScanResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, dto.ErrScanInProgress
	}
	defer s.running.Store(false)

	items := s.cfg.Scanner.Items()
	s.log.InfoContext(ctx, "Starting scan",
		logger.IntField("symbol_count", len(items)),
		logger.IntField("max_concurrency", s.cfg.Scanner.MaxConcurrency),
	)

	run := &model.ScanRun{
		Status:    model.ScanStatusRunning,
		StartedAt: time.Now(),
	}
	if err := s.scanRunRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record scan run: %w", err)
	}

	var (
		mu       sync.Mutex
		scanned  int
		failed   []string
		outcomes []symbolOutcome
	)

	maxConcurrency := s.cfg.Scanner.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for _, item := range items {
		// A storage failure cancels gctx: stop launching new symbols but
		// let in-flight transactions finish.
		if gctx.Err() != nil {
			break
		}

		item := item
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			outcome, err := s.processSymbol(gctx, item)
			if err != nil {
				// Storage errors are fatal to the run.
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if outcome.fetched {
				scanned++
				outcomes = append(outcomes, outcome)
			} else {
				failed = append(failed, item.Code)
			}
			return nil
		})
	}

	runErr := g.Wait()

	result := &dto.ScanResult{
		ScannedCount:  scanned,
		FailedSymbols: failed,
	}

	switch {
	case runErr != nil:
		run.Status = model.ScanStatusFailed
		result.Message = fmt.Sprintf("Scan aborted: %v", runErr)
	case len(failed) > 0:
		run.Status = model.ScanStatusPartial
		result.Message = fmt.Sprintf("Scan completed with failures: %d scanned, %d failed", scanned, len(failed))
	default:
		run.Status = model.ScanStatusCompleted
		result.Message = "Scan completed"
	}

	run.Message = result.Message
	run.ScannedCount = scanned
	run.CompletedAt = utils.ToPointer(time.Now())
	if len(failed) > 0 {
		if payload, err := json.Marshal(failed); err == nil {
			run.FailedSymbols = datatypes.JSON(payload)
		}
	}

	// The run record is best-effort bookkeeping once the scan itself has an
	// outcome, update failures must not mask runErr.
	if err := s.scanRunRepo.Update(context.WithoutCancel(ctx), run); err != nil {
		s.log.ErrorContext(ctx, "Failed to update scan run record", logger.ErrorField(err))
		if runErr == nil {
			runErr = fmt.Errorf("failed to update scan run record: %w", err)
		}
	}

	if runErr != nil {
		return nil, runErr
	}

	s.notifyAlerts(ctx, outcomes)

	s.log.InfoContext(ctx, "Scan finished",
		logger.IntField("scanned", scanned),
		logger.IntField("failed", len(failed)),
	)
	return result, nil
}

// processSymbol runs the full pipeline for one symbol. Fetch and evaluation
// failures are non-fatal and reported through outcome.fetched=false; only
// storage failures return an error.
func (s *scannerService) processSymbol(ctx context.Context, item config.WatchlistItem) (symbolOutcome, error) {
	outcome := symbolOutcome{item: item}

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.Scanner.FetchTimeout)
	defer cancel()

	// Fetch happens outside any critical section or transaction.
	bars, err := s.marketData.GetMonthlyBars(fetchCtx, item)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to fetch monthly bars, skipping symbol",
			logger.ErrorField(err),
			logger.StringField("symbol", item.Code),
		)
		return outcome, nil
	}

	signal := s.evaluator.Evaluate(bars)
	price := bars[len(bars)-1].Close

	txErr := s.uow.Run(func(opts ...utils.DBOption) error {
		prevSignal := dto.SignalNone
		var prevSignalDate *time.Time

		existing, err := s.stockRepo.Get(ctx, item.Code, opts...)
		if err != nil && !errors.Is(err, dto.ErrStockNotFound) {
			return err
		}
		if existing != nil {
			prevSignal = existing.LastSignal
			prevSignalDate = existing.LastSignalDate
		}

		now := time.Now()
		signalDate := prevSignalDate
		if signal.Type != prevSignal {
			signalDate = &now
		}

		stock := &model.Stock{
			Symbol:         item.Code,
			Name:           item.Name,
			LastPrice:      price,
			LastSignal:     signal.Type,
			LastSignalDate: signalDate,
			SignalReason:   utils.ToPointer(signal.Reason),
		}
		if err := s.stockRepo.Upsert(ctx, stock, opts...); err != nil {
			return err
		}

		// Alerts fire only on an actual transition, and never for NONE.
		if signal.Type != prevSignal && signal.Type != dto.SignalNone {
			alert := &model.Alert{
				Symbol:     item.Code,
				SignalType: signal.Type,
				Price:      price,
				Timestamp:  now,
			}
			if err := s.alertRepo.Create(ctx, alert, opts...); err != nil {
				return err
			}
			outcome.alert = alert
			outcome.reason = signal.Reason
		}
		return nil
	})
	if txErr != nil {
		return outcome, fmt.Errorf("storage failure for %s: %w", item.Code, txErr)
	}

	outcome.fetched = true
	return outcome, nil
}

// notifyAlerts fans emitted alerts out to subscribed users. Delivery
// problems are logged, never surfaced to the scan result.
func (s *scannerService) notifyAlerts(ctx context.Context, outcomes []symbolOutcome) {
	var emitted []symbolOutcome
	for _, o := range outcomes {
		if o.alert != nil {
			emitted = append(emitted, o)
		}
	}
	if len(emitted) == 0 {
		return
	}

	subscribers, err := s.settingsRepo.ListEmailEnabled(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load notification subscribers", logger.ErrorField(err))
	}
	var recipients []string
	for _, sub := range subscribers {
		if sub.NotificationEmail != nil && *sub.NotificationEmail != "" {
			recipients = append(recipients, *sub.NotificationEmail)
		}
	}

	for _, o := range emitted {
		msg := notify.AlertMessage{
			Symbol:     o.alert.Symbol,
			Name:       o.item.Name,
			SignalType: string(o.alert.SignalType),
			Price:      o.alert.Price.StringFixed(2),
			Reason:     o.reason,
			At:         o.alert.Timestamp,
		}
		if err := s.notifier.Send(ctx, msg, recipients); err != nil {
			s.log.ErrorContext(ctx, "Failed to send alert notification",
				logger.ErrorField(err),
				logger.StringField("symbol", o.alert.Symbol),
			)
		}
	}
}

func (s *scannerService) History(ctx context.Context, limit int) ([]model.ScanRun, error) {
	return s.scanRunRepo.List(ctx, limit)
}
