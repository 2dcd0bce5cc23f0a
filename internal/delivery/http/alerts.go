package http

import (
	"net/http"

	"candlescan/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupAlerts(base *echo.Group) {
	base.GET("/alerts", h.ListAlerts)
}

func (h *HttpAPIHandler) ListAlerts(c echo.Context) error {
	alerts, err := h.service.AlertService.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "failed to list alerts"})
	}
	return c.JSON(http.StatusOK, alerts)
}
