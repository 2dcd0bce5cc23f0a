package repository

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"candlescan/config"
	"candlescan/internal/dto"
	"candlescan/pkg/cache"
	"candlescan/pkg/httpclient"
	"candlescan/pkg/logger"
	"candlescan/pkg/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// MarketDataRepository is the pluggable fetch interface for monthly candle
// data. Bars come back oldest first and the last bar is the most recently
// completed month.
type MarketDataRepository interface {
	GetMonthlyBars(ctx context.Context, item config.WatchlistItem) ([]dto.MonthlyBar, error)
}

type yahooFinanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	barCache       cache.Cache
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository fetches monthly candles from the Yahoo Finance
// chart API, rate limited and cached per symbol.
func NewYahooFinanceRepository(cfg *config.Config, barCache cache.Cache, log *logger.Logger) MarketDataRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)

	return &yahooFinanceRepository{
		httpClient:     httpclient.New(cfg.YahooFinance.BaseURL, cfg.YahooFinance.Timeout),
		cfg:            cfg,
		logger:         log,
		barCache:       barCache,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *yahooFinanceRepository) GetMonthlyBars(ctx context.Context, item config.WatchlistItem) ([]dto.MonthlyBar, error) {
	cacheKey := "monthly_bars:" + item.Code
	if bars, ok := cache.Typed[[]dto.MonthlyBar](r.barCache, cacheKey); ok {
		return bars, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	now := utils.TimeNowIST()
	lookback := r.cfg.YahooFinance.LookbackMonths
	if lookback <= 0 {
		lookback = 12
	}

	endpoint := "/" + r.yahooSymbol(item)
	queryParams := map[string]string{
		"period1":        fmt.Sprintf("%d", now.AddDate(0, -lookback, 0).Unix()),
		"period2":        fmt.Sprintf("%d", now.Unix()),
		"interval":       "1mo",
		"includePrePost": "false",
		"events":         "div,split",
	}

	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://finance.yahoo.com/",
	}

	var yahooResp dto.YahooChartResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from yahoo finance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Yahoo Finance API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("symbol", item.Code))
		return nil, fmt.Errorf("yahoo finance api returned status: %d", resp.StatusCode)
	}

	if yahooResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance api error: %v", yahooResp.Chart.Error)
	}
	if len(yahooResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no data returned for symbol: %s", item.Code)
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data available for symbol: %s", item.Code)
	}
	quote := result.Indicators.Quote[0]

	loc := utils.GetISTTimeLocation()
	var bars []dto.MonthlyBar
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			continue
		}
		// Null entries come through as zeros, drop them so gaps don't
		// produce degenerate candles.
		if quote.Open[i] == 0 || quote.High[i] == 0 || quote.Low[i] == 0 || quote.Close[i] == 0 {
			continue
		}

		period := time.Unix(ts, 0).In(loc)
		// The in-progress month has no completed candle yet.
		if utils.SameMonth(period, now) {
			continue
		}

		var volume int64
		if i < len(quote.Volume) {
			volume = quote.Volume[i]
		}

		bars = append(bars, dto.MonthlyBar{
			Open:        decimal.NewFromFloat(quote.Open[i]),
			High:        decimal.NewFromFloat(quote.High[i]),
			Low:         decimal.NewFromFloat(quote.Low[i]),
			Close:       decimal.NewFromFloat(quote.Close[i]),
			Volume:      volume,
			PeriodStart: utils.MonthStart(period),
		})
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("no valid monthly candles found for symbol: %s", item.Code)
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].PeriodStart.Before(bars[j].PeriodStart)
	})

	r.barCache.Set(cacheKey, bars, r.cfg.Cache.BarTTL)
	return bars, nil
}

func (r *yahooFinanceRepository) yahooSymbol(item config.WatchlistItem) string {
	if item.YahooSymbol != "" {
		return item.YahooSymbol
	}
	if strings.Contains(item.Code, ".") || strings.HasPrefix(item.Code, "^") {
		return item.Code
	}
	return item.Code + r.cfg.YahooFinance.SymbolSuffix
}
