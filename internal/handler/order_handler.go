package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"canteen/internal/errors"
	"canteen/internal/model"
	"canteen/internal/service"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceOrderRequest represents a place-or-update order request. QuantityDelta
// adjusts the line for the dish; a negative delta lowers it and removes the
// line when it drops below one.
type PlaceOrderRequest struct {
	MealDate      string `json:"meal_date" validate:"required,datetime=2006-01-02"`
	DishID        uint   `json:"dish_id" validate:"required,gt=0"`
	QuantityDelta int    `json:"quantity_delta" validate:"required,ne=0"`
}

// OrderResponse represents an order with its computed total.
type OrderResponse struct {
	Order *model.Order `json:"order"`
	Total string       `json:"total"`
}

func orderResponse(order *model.Order) OrderResponse {
	return OrderResponse{
		Order: order,
		Total: order.Total().StringFixed(2),
	}
}

// PlaceOrUpdate godoc
// @Summary Place or modify the order for a meal date
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PlaceOrderRequest true "Order data"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) PlaceOrUpdate(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	mealDate, err := parseDateParam(req.MealDate)
	if err != nil {
		return err
	}

	order, err := h.orderService.PlaceOrUpdate(c.Request().Context(), claims.UserID, mealDate, req.DishID, req.QuantityDelta)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, orderResponse(order))
}

// GetForDate godoc
// @Summary Get own order for a meal date
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param date path string true "Meal date (YYYY-MM-DD)"
// @Success 200 {object} OrderResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{date} [get]
func (h *OrderHandler) GetForDate(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	date, err := parseDateParam(c.Param("date"))
	if err != nil {
		return err
	}

	order, err := h.orderService.GetForDate(c.Request().Context(), claims.UserID, date)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, orderResponse(order))
}

// History godoc
// @Summary List own past orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} OrderResponse
// @Router /orders [get]
func (h *OrderHandler) History(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.History(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, orderResponse(&orders[i]))
	}
	return c.JSON(http.StatusOK, responses)
}
