package http

import (
	"net/http"

	"candlescan/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupSettings(base *echo.Group) {
	base.GET("/settings", h.GetSettings)
	base.PATCH("/settings", h.UpdateSettings)
}

func (h *HttpAPIHandler) GetSettings(c echo.Context) error {
	principal := PrincipalFromContext(c)

	settings, err := h.service.SettingsService.Get(c.Request().Context(), principal)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "failed to get settings"})
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *HttpAPIHandler) UpdateSettings(c echo.Context) error {
	principal := PrincipalFromContext(c)

	req := new(dto.UpdateSettingsRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	settings, validationErr, err := h.service.SettingsService.Update(c.Request().Context(), principal, *req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "failed to update settings"})
	}
	if validationErr != nil {
		return c.JSON(http.StatusBadRequest, validationErr)
	}
	return c.JSON(http.StatusOK, settings)
}
