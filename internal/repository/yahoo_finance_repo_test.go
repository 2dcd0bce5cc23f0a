package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"candlescan/config"
	"candlescan/internal/dto"
	"candlescan/pkg/cache"
	"candlescan/pkg/httpclient"
	"candlescan/pkg/logger"
	"candlescan/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeHTTPClient struct {
	response dto.YahooChartResponse
	status   int
	err      error
	calls    int
	lastPath string
}

func (f *fakeHTTPClient) Get(ctx context.Context, endpoint string, queryParams map[string]string, headers map[string]string, result interface{}) (*httpclient.BaseResponse, error) {
	f.calls++
	f.lastPath = endpoint
	if f.err != nil {
		return nil, f.err
	}
	if out, ok := result.(*dto.YahooChartResponse); ok {
		*out = f.response
	}
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	return &httpclient.BaseResponse{StatusCode: status}, nil
}

func (f *fakeHTTPClient) Post(ctx context.Context, endpoint string, body interface{}, headers map[string]string, result interface{}) (*httpclient.BaseResponse, error) {
	return nil, errors.New("not implemented")
}

func newYahooFixture(t *testing.T, client *fakeHTTPClient) *yahooFinanceRepository {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	cfg := &config.Config{
		YahooFinance: config.YahooFinance{
			SymbolSuffix:   ".NS",
			LookbackMonths: 12,
		},
		Cache: config.Cache{BarTTL: time.Minute},
	}

	return &yahooFinanceRepository{
		httpClient:     client,
		cfg:            cfg,
		logger:         log,
		barCache:       cache.NewCache(time.Minute, time.Minute),
		requestLimiter: rate.NewLimiter(rate.Inf, 1),
	}
}

func chartResponse(timestamps []int64, open, high, low, closePrices []float64, volume []int64) dto.YahooChartResponse {
	payload := map[string]interface{}{
		"chart": map[string]interface{}{
			"result": []map[string]interface{}{{
				"timestamp": timestamps,
				"indicators": map[string]interface{}{
					"quote": []map[string]interface{}{{
						"open":   open,
						"high":   high,
						"low":    low,
						"close":  closePrices,
						"volume": volume,
					}},
				},
			}},
			"error": nil,
		},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	var resp dto.YahooChartResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		panic(err)
	}
	return resp
}

func monthUnix(monthsAgo int) int64 {
	// Anchor on the month start so day-of-month normalization near month end
	// cannot shift the result into the current month.
	return utils.MonthStart(utils.TimeNowIST()).AddDate(0, -monthsAgo, 0).Unix()
}

func TestGetMonthlyBars_ParsesAndOrdersBars(t *testing.T) {
	client := &fakeHTTPClient{
		response: chartResponse(
			[]int64{monthUnix(1), monthUnix(3), monthUnix(2)},
			[]float64{110, 100, 105},
			[]float64{120, 111, 115},
			[]float64{95, 90, 99},
			[]float64{118, 104, 108},
			[]int64{1000, 3000, 2000},
		),
	}
	repo := newYahooFixture(t, client)

	bars, err := repo.GetMonthlyBars(context.Background(), config.WatchlistItem{Code: "RELIANCE"})
	require.NoError(t, err)
	require.Len(t, bars, 3)

	assert.Equal(t, "/RELIANCE.NS", client.lastPath)
	// Oldest first regardless of upstream ordering.
	assert.True(t, bars[0].PeriodStart.Before(bars[1].PeriodStart))
	assert.True(t, bars[1].PeriodStart.Before(bars[2].PeriodStart))
	assert.Equal(t, "104", bars[0].Close.String())
	assert.Equal(t, "118", bars[2].Close.String())
	assert.Equal(t, int64(3000), bars[0].Volume)
}

func TestGetMonthlyBars_DropsNullAndCurrentMonthCandles(t *testing.T) {
	now := utils.TimeNowIST()
	client := &fakeHTTPClient{
		response: chartResponse(
			[]int64{monthUnix(2), monthUnix(1), utils.MonthStart(now).Unix()},
			[]float64{100, 0, 108},
			[]float64{111, 0, 112},
			[]float64{90, 0, 101},
			[]float64{104, 0, 110},
			[]int64{3000, 0, 500},
		),
	}
	repo := newYahooFixture(t, client)

	bars, err := repo.GetMonthlyBars(context.Background(), config.WatchlistItem{Code: "TCS"})
	require.NoError(t, err)

	// The zero-filled gap and the in-progress month are both excluded.
	require.Len(t, bars, 1)
	assert.Equal(t, "104", bars[0].Close.String())
}

func TestGetMonthlyBars_CachesSecondCall(t *testing.T) {
	client := &fakeHTTPClient{
		response: chartResponse(
			[]int64{monthUnix(2), monthUnix(1)},
			[]float64{100, 105},
			[]float64{111, 115},
			[]float64{90, 99},
			[]float64{104, 108},
			[]int64{3000, 2000},
		),
	}
	repo := newYahooFixture(t, client)
	item := config.WatchlistItem{Code: "INFY"}

	_, err := repo.GetMonthlyBars(context.Background(), item)
	require.NoError(t, err)
	_, err = repo.GetMonthlyBars(context.Background(), item)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
}

func TestGetMonthlyBars_NonOKStatus(t *testing.T) {
	client := &fakeHTTPClient{status: http.StatusTooManyRequests}
	repo := newYahooFixture(t, client)

	_, err := repo.GetMonthlyBars(context.Background(), config.WatchlistItem{Code: "INFY"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestYahooSymbol_Mapping(t *testing.T) {
	repo := newYahooFixture(t, &fakeHTTPClient{})

	tests := []struct {
		name string
		item config.WatchlistItem
		want string
	}{
		{"plain ticker gets suffix", config.WatchlistItem{Code: "RELIANCE"}, "RELIANCE.NS"},
		{"explicit override wins", config.WatchlistItem{Code: "NIFTY50", YahooSymbol: "^NSEI"}, "^NSEI"},
		{"index prefix passes through", config.WatchlistItem{Code: "^NSEBANK"}, "^NSEBANK"},
		{"dotted code passes through", config.WatchlistItem{Code: "TCS.NS"}, "TCS.NS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.yahooSymbol(tt.item))
		})
	}
}
