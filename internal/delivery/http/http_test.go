package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"candlescan/internal/dto"
	"candlescan/internal/model"
	"candlescan/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStockService struct {
	stocks     []model.Stock
	stock      *model.Stock
	err        error
	lastFilter dto.StockFilter
}

func (s *stubStockService) List(ctx context.Context, filter dto.StockFilter) ([]model.Stock, error) {
	s.lastFilter = filter
	return s.stocks, s.err
}

func (s *stubStockService) Get(ctx context.Context, symbol string) (*model.Stock, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stock, nil
}

type stubAlertService struct {
	alerts []model.Alert
	err    error
}

func (s *stubAlertService) List(ctx context.Context) ([]model.Alert, error) {
	return s.alerts, s.err
}

type stubSettingsService struct {
	settings      *model.Settings
	validationErr *dto.ValidationError
	err           error
	lastPrincipal dto.Principal
	lastRequest   dto.UpdateSettingsRequest
}

func (s *stubSettingsService) Get(ctx context.Context, principal dto.Principal) (*model.Settings, error) {
	s.lastPrincipal = principal
	return s.settings, s.err
}

func (s *stubSettingsService) Update(ctx context.Context, principal dto.Principal, req dto.UpdateSettingsRequest) (*model.Settings, *dto.ValidationError, error) {
	s.lastPrincipal = principal
	s.lastRequest = req
	return s.settings, s.validationErr, s.err
}

type stubScannerService struct {
	result *dto.ScanResult
	runs   []model.ScanRun
	err    error
}

func (s *stubScannerService) Scan(ctx context.Context) (*dto.ScanResult, error) {
	return s.result, s.err
}

func (s *stubScannerService) History(ctx context.Context, limit int) ([]model.ScanRun, error) {
	return s.runs, s.err
}

type handlerFixture struct {
	echo     *echo.Echo
	stocks   *stubStockService
	alerts   *stubAlertService
	settings *stubSettingsService
	scanner  *stubScannerService
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		echo:     echo.New(),
		stocks:   &stubStockService{},
		alerts:   &stubAlertService{},
		settings: &stubSettingsService{},
		scanner:  &stubScannerService{},
	}
	handler := NewHttpAPIHandler(f.echo, &service.Service{
		StockService:    f.stocks,
		AlertService:    f.alerts,
		SettingsService: f.settings,
		ScannerService:  f.scanner,
	})
	handler.SetupRoutes()
	return f
}

func (f *handlerFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-User-Id", "u1")
	req.Header.Set("X-User-Email", "u1@example.com")
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func TestListStocks_PassesFilterThrough(t *testing.T) {
	f := newHandlerFixture()
	f.stocks.stocks = []model.Stock{{
		Symbol:     "HDFCBANK",
		Name:       "HDFC Bank",
		LastPrice:  decimal.RequireFromString("1650.25"),
		LastSignal: dto.SignalBuy,
	}}

	rec := f.do(http.MethodGet, "/api/stocks?signal=BUY&search=HDFC", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HDFC", f.stocks.lastFilter.Search)
	assert.Equal(t, dto.SignalBuy, f.stocks.lastFilter.Signal)
	assert.Contains(t, rec.Body.String(), `"symbol":"HDFCBANK"`)
	assert.Contains(t, rec.Body.String(), `"lastPrice":"1650.25"`)
	assert.Contains(t, rec.Body.String(), `"lastSignal":"BUY"`)
}

func TestListStocks_RejectsUnknownSignal(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(http.MethodGet, "/api/stocks?signal=HOLD", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "signal must be one of BUY, SELL, NONE")
}

func TestGetStock_NotFound(t *testing.T) {
	f := newHandlerFixture()
	f.stocks.err = dto.ErrStockNotFound

	rec := f.do(http.MethodGet, "/api/stocks/UNKNOWN", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Stock not found")
}

func TestGetStock_ReturnsRegistryRow(t *testing.T) {
	f := newHandlerFixture()
	now := time.Now()
	reason := "No pattern confirmed"
	f.stocks.stock = &model.Stock{
		Symbol:         "TCS",
		Name:           "Tata Consultancy Services",
		LastPrice:      decimal.RequireFromString("3890.10"),
		LastSignal:     dto.SignalNone,
		LastSignalDate: &now,
		SignalReason:   &reason,
	}

	rec := f.do(http.MethodGet, "/api/stocks/TCS", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"signalReason":"No pattern confirmed"`)
	assert.Contains(t, rec.Body.String(), `"lastSignalDate"`)
}

func TestListAlerts_ReturnsLog(t *testing.T) {
	f := newHandlerFixture()
	f.alerts.alerts = []model.Alert{{
		ID:         2,
		Symbol:     "RELIANCE",
		SignalType: dto.SignalSell,
		Price:      decimal.RequireFromString("2400.00"),
	}}

	rec := f.do(http.MethodGet, "/api/alerts", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"signalType":"SELL"`)
	assert.Contains(t, rec.Body.String(), `"isRead":false`)
}

func TestGetSettings_UsesHeaderPrincipal(t *testing.T) {
	f := newHandlerFixture()
	f.settings.settings = &model.Settings{UserID: "u1"}

	rec := f.do(http.MethodGet, "/api/settings", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", f.settings.lastPrincipal.UserID)
	assert.Equal(t, "u1@example.com", f.settings.lastPrincipal.Email)
}

func TestUpdateSettings_ValidationFailure(t *testing.T) {
	f := newHandlerFixture()
	f.settings.validationErr = &dto.ValidationError{
		Field:   "notificationEmail",
		Message: "notificationEmail must be a valid email",
	}

	rec := f.do(http.MethodPatch, "/api/settings", `{"notificationEmail":"nope"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"notificationEmail"`)
}

func TestUpdateSettings_BindsPartialBody(t *testing.T) {
	f := newHandlerFixture()
	f.settings.settings = &model.Settings{UserID: "u1", EmailNotifications: true}

	rec := f.do(http.MethodPatch, "/api/settings", `{"emailNotifications":true}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.settings.lastRequest.EmailNotifications)
	assert.True(t, *f.settings.lastRequest.EmailNotifications)
	assert.Nil(t, f.settings.lastRequest.NotificationEmail)
}

func TestRunScan_ConflictWhenAlreadyRunning(t *testing.T) {
	f := newHandlerFixture()
	f.scanner.err = dto.ErrScanInProgress

	rec := f.do(http.MethodPost, "/api/scan", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Scan already running")
}

func TestRunScan_ReturnsResult(t *testing.T) {
	f := newHandlerFixture()
	f.scanner.result = &dto.ScanResult{
		Message:       "Scan completed",
		ScannedCount:  5,
		FailedSymbols: nil,
	}

	rec := f.do(http.MethodPost, "/api/scan", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"scannedCount":5`)
}

func TestListScanRuns_RejectsBadLimit(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(http.MethodGet, "/api/scans?limit=abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_MissingUserHeaderRejected(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/stocks", nil)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
