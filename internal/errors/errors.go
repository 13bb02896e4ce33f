package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDishNotFound is returned when a dish is not found.
	ErrDishNotFound = errors.New("dish not found")
	// ErrMenuNotFound is returned when no menu exists for the requested date.
	ErrMenuNotFound = errors.New("no menu for this date")
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrCategoryInUse is returned when deleting a category still referenced by dishes.
	ErrCategoryInUse = errors.New("category is referenced by dishes and cannot be deleted")
	// ErrDishInUse is returned when deleting a dish referenced by order history.
	ErrDishInUse = errors.New("dish is referenced by orders and cannot be deleted")
	// ErrNegativePrice is returned when a category price is negative.
	ErrNegativePrice = errors.New("unit price must not be negative")
	// ErrDishInactive is returned when an inactive dish is added to a menu.
	ErrDishInactive = errors.New("dish is not active")
	// ErrCutoffExceeded is returned when the ordering deadline has passed.
	ErrCutoffExceeded = errors.New("order cutoff time has passed")
	// ErrMenuNotVisible is returned when the menu for the meal date is not visible yet.
	ErrMenuNotVisible = errors.New("menu is not visible")
	// ErrDishNotInMenu is returned when the dish is not offered on the meal date.
	ErrDishNotInMenu = errors.New("dish is not in the menu for this date")
	// ErrQuantityOutOfRange is returned when a line quantity would leave [1,3].
	ErrQuantityOutOfRange = errors.New("quantity must be between 1 and 3")
	// ErrDuplicateOrder is returned when a concurrent insert lost the uniqueness race.
	ErrDuplicateOrder = errors.New("an order for this user and date already exists")
	// ErrInvalidClock is returned when a settings time is not a valid "HH:MM" value.
	ErrInvalidClock = errors.New("time must be in HH:MM format")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrDishNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "DISH_NOT_FOUND")
	case errors.Is(err, ErrMenuNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MENU_NOT_FOUND")
	case errors.Is(err, ErrOrderNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ORDER_NOT_FOUND")
	case errors.Is(err, ErrCategoryInUse):
		return NewHTTPError(http.StatusConflict, err.Error(), "CATEGORY_IN_USE")
	case errors.Is(err, ErrDishInUse):
		return NewHTTPError(http.StatusConflict, err.Error(), "DISH_IN_USE")
	case errors.Is(err, ErrDuplicateOrder):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_ORDER")
	case errors.Is(err, ErrNegativePrice):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NEGATIVE_PRICE")
	case errors.Is(err, ErrDishInactive):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DISH_INACTIVE")
	case errors.Is(err, ErrCutoffExceeded):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CUTOFF_EXCEEDED")
	case errors.Is(err, ErrMenuNotVisible):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MENU_NOT_VISIBLE")
	case errors.Is(err, ErrDishNotInMenu):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DISH_NOT_IN_MENU")
	case errors.Is(err, ErrQuantityOutOfRange):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "QUANTITY_OUT_OF_RANGE")
	case errors.Is(err, ErrInvalidClock):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TIME")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
