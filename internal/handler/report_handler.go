package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"canteen/internal/errors"
	"canteen/internal/service"
)

// ReportHandler handles the admin reporting endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DailySummary godoc
// @Summary Per-dish ordering summary for a date
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param date path string true "Meal date (YYYY-MM-DD)"
// @Success 200 {object} service.DailySummary
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/reports/daily/{date} [get]
func (h *ReportHandler) DailySummary(c echo.Context) error {
	date, err := parseDateParam(c.Param("date"))
	if err != nil {
		return err
	}

	summary, err := h.reportService.DailySummary(c.Request().Context(), date)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summary)
}

// FailedLogins godoc
// @Summary Recent failed login attempts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries to return" default(100)
// @Success 200 {array} model.FailedLogin
// @Router /admin/reports/failed-logins [get]
func (h *ReportHandler) FailedLogins(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		limit = parsed
	}

	entries, err := h.reportService.RecentFailedLogins(c.Request().Context(), limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, entries)
}
