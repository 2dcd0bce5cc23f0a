package http

import (
	"errors"
	"net/http"
	"strconv"

	"candlescan/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupScan(base *echo.Group) {
	base.POST("/scan", h.RunScan)
	base.GET("/scans", h.ListScanRuns)
}

func (h *HttpAPIHandler) RunScan(c echo.Context) error {
	result, err := h.service.ScannerService.Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, dto.ErrScanInProgress) {
			return c.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Scan already running"})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) ListScanRuns(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "limit must be a non-negative integer"})
		}
		limit = parsed
	}

	runs, err := h.service.ScannerService.History(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "failed to list scan runs"})
	}
	return c.JSON(http.StatusOK, runs)
}
