package http

import (
	"candlescan/internal/service"
	"candlescan/pkg/middleware"

	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo    *echo.Echo
	service *service.Service
}

func NewHttpAPIHandler(echo *echo.Echo, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:    echo,
		service: service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api",
		middleware.NewRateLimiterMiddleware(),
		NewAuthMiddleware(),
	)

	h.SetupStocks(base)
	h.SetupAlerts(base)
	h.SetupSettings(base)
	h.SetupScan(base)
}
