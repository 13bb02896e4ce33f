package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"canteen/internal/errors"
	"canteen/internal/service"
)

// CatalogHandler handles supplier category and dish management endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CategoryRequest represents a category create/update request.
type CategoryRequest struct {
	Name      string `json:"name" validate:"required"`
	UnitPrice string `json:"unit_price" validate:"required"`
}

// DishRequest represents a dish create request.
type DishRequest struct {
	CategoryID  uint   `json:"category_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateDishRequest represents a dish update request.
type UpdateDishRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Active      *bool  `json:"active" validate:"required"`
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func parsePrice(value string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid unit_price",
			Code:  "INVALID_PRICE",
		})
	}
	return price, nil
}

// CreateCategory godoc
// @Summary Create a pricing category
// @Tags supplier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "Category data"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Router /supplier/categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	price, err := parsePrice(req.UnitPrice)
	if err != nil {
		return err
	}

	category, err := h.catalogService.CreateCategory(c.Request().Context(), req.Name, price)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Update a category's name and unit price
// @Tags supplier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body CategoryRequest true "Category data"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /supplier/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	price, err := parsePrice(req.UnitPrice)
	if err != nil {
		return err
	}

	category, err := h.catalogService.UpdateCategory(c.Request().Context(), id, req.Name, price)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category with no dishes
// @Tags supplier
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204
// @Failure 409 {object} errors.ErrorResponse
// @Router /supplier/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.catalogService.DeleteCategory(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCategories godoc
// @Summary List categories
// @Tags supplier
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Category
// @Router /supplier/categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateDish godoc
// @Summary Create a dish
// @Tags supplier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DishRequest true "Dish data"
// @Success 201 {object} model.Dish
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /supplier/dishes [post]
func (h *CatalogHandler) CreateDish(c echo.Context) error {
	var req DishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dish, err := h.catalogService.CreateDish(c.Request().Context(), req.CategoryID, req.Name, req.Description)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, dish)
}

// UpdateDish godoc
// @Summary Update a dish
// @Tags supplier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dish ID"
// @Param request body UpdateDishRequest true "Dish data"
// @Success 200 {object} model.Dish
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /supplier/dishes/{id} [put]
func (h *CatalogHandler) UpdateDish(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var req UpdateDishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dish, err := h.catalogService.UpdateDish(c.Request().Context(), id, req.Name, req.Description, *req.Active)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, dish)
}

// DeleteDish godoc
// @Summary Delete a dish with no order history
// @Tags supplier
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dish ID"
// @Success 204
// @Failure 409 {object} errors.ErrorResponse
// @Router /supplier/dishes/{id} [delete]
func (h *CatalogHandler) DeleteDish(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.catalogService.DeleteDish(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// ListDishes godoc
// @Summary List dishes
// @Tags supplier
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active dishes"
// @Success 200 {array} model.Dish
// @Router /supplier/dishes [get]
func (h *CatalogHandler) ListDishes(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	dishes, err := h.catalogService.ListDishes(c.Request().Context(), activeOnly)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, dishes)
}
