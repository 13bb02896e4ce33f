package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"canteen/internal/errors"
	"canteen/internal/service"
)

// SettingsHandler handles the admin settings endpoints.
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest represents a settings update request.
type UpdateSettingsRequest struct {
	OrderCutoff    string `json:"order_cutoff" validate:"required,datetime=15:04"`
	MenuVisibility string `json:"menu_visibility" validate:"required,datetime=15:04"`
}

// GetSettings godoc
// @Summary Get the scheduling settings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Settings
// @Router /admin/settings [get]
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.Get(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary Update the scheduling settings
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateSettingsRequest true "Settings data"
// @Success 200 {object} model.Settings
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/settings [put]
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	settings, err := h.settingsService.Update(c.Request().Context(), req.OrderCutoff, req.MenuVisibility)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, settings)
}
