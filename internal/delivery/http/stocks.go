package http

import (
	"errors"
	"net/http"

	"candlescan/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStocks(base *echo.Group) {
	base.GET("/stocks", h.ListStocks)
	base.GET("/stocks/:symbol", h.GetStock)
}

func (h *HttpAPIHandler) ListStocks(c echo.Context) error {
	filter := dto.StockFilter{
		Search: c.QueryParam("search"),
		Signal: dto.SignalType(c.QueryParam("signal")),
	}
	if filter.Signal != "" && !filter.Signal.Valid() {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "signal must be one of BUY, SELL, NONE",
		})
	}

	stocks, err := h.service.StockService.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "failed to list stocks"})
	}
	return c.JSON(http.StatusOK, stocks)
}

func (h *HttpAPIHandler) GetStock(c echo.Context) error {
	stock, err := h.service.StockService.Get(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		if errors.Is(err, dto.ErrStockNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Stock not found"})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "failed to get stock"})
	}
	return c.JSON(http.StatusOK, stock)
}
