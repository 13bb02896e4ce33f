package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"canteen/internal/errors"
	"canteen/internal/service"
)

// MenuHandler handles menu endpoints: the user-facing visible menu reads and
// the supplier's menu management.
type MenuHandler struct {
	menuService service.MenuService
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(menuService service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// UpsertMenuRequest represents a supplier menu create/replace request.
type UpsertMenuRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	DishIDs []uint `json:"dish_ids" validate:"required,min=1,dive,gt=0"`
}

// ConfirmMenuRequest represents a supplier menu confirmation request.
type ConfirmMenuRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// GetVisibleMenu godoc
// @Summary Get the visible menu for a date
// @Tags menus
// @Produce json
// @Security BearerAuth
// @Param date path string true "Menu date (YYYY-MM-DD)"
// @Success 200 {object} model.DailyMenu
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /menus/{date} [get]
func (h *MenuHandler) GetVisibleMenu(c echo.Context) error {
	date, err := parseDateParam(c.Param("date"))
	if err != nil {
		return err
	}

	menu, err := h.menuService.GetVisible(c.Request().Context(), date)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, menu)
}

// ListVisibleMenus godoc
// @Summary List currently visible menus
// @Tags menus
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.DailyMenu
// @Router /menus [get]
func (h *MenuHandler) ListVisibleMenus(c echo.Context) error {
	menus, err := h.menuService.ListVisible(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, menus)
}

// UpsertMenu godoc
// @Summary Create or replace the menu for a date
// @Tags supplier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpsertMenuRequest true "Menu data"
// @Success 200 {object} model.DailyMenu
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /supplier/menus [put]
func (h *MenuHandler) UpsertMenu(c echo.Context) error {
	var req UpsertMenuRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := parseDateParam(req.Date)
	if err != nil {
		return err
	}

	menu, err := h.menuService.Upsert(c.Request().Context(), date, req.DishIDs)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, menu)
}

// ConfirmMenu godoc
// @Summary Confirm the menu for a date
// @Tags supplier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConfirmMenuRequest true "Menu date"
// @Success 200 {object} model.DailyMenu
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /supplier/menus/confirm [post]
func (h *MenuHandler) ConfirmMenu(c echo.Context) error {
	var req ConfirmMenuRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := parseDateParam(req.Date)
	if err != nil {
		return err
	}

	menu, err := h.menuService.Confirm(c.Request().Context(), date)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, menu)
}
