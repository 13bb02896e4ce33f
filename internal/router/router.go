package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"canteen/internal/config"
	"canteen/internal/handler"
	"canteen/internal/model"
)

// Register wires routes and middleware. Staff endpoints need only a valid
// token; supplier and admin groups additionally check the role claim.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	menuHandler *handler.MenuHandler,
	orderHandler *handler.OrderHandler,
	catalogHandler *handler.CatalogHandler,
	settingsHandler *handler.SettingsHandler,
	reportHandler *handler.ReportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	// Menu reads and ordering, for any authenticated user
	secured.GET("/menus", menuHandler.ListVisibleMenus)
	secured.GET("/menus/:date", menuHandler.GetVisibleMenu)
	secured.POST("/orders", orderHandler.PlaceOrUpdate)
	secured.GET("/orders", orderHandler.History)
	secured.GET("/orders/:date", orderHandler.GetForDate)

	// Supplier routes
	supplier := secured.Group("/supplier", RequireRole(model.RoleSupplier, model.RoleAdmin))
	supplier.PUT("/menus", menuHandler.UpsertMenu)
	supplier.POST("/menus/confirm", menuHandler.ConfirmMenu)
	supplier.GET("/categories", catalogHandler.ListCategories)
	supplier.POST("/categories", catalogHandler.CreateCategory)
	supplier.PUT("/categories/:id", catalogHandler.UpdateCategory)
	supplier.DELETE("/categories/:id", catalogHandler.DeleteCategory)
	supplier.GET("/dishes", catalogHandler.ListDishes)
	supplier.POST("/dishes", catalogHandler.CreateDish)
	supplier.PUT("/dishes/:id", catalogHandler.UpdateDish)
	supplier.DELETE("/dishes/:id", catalogHandler.DeleteDish)

	// Admin routes
	admin := secured.Group("/admin", RequireRole(model.RoleAdmin))
	admin.GET("/settings", settingsHandler.GetSettings)
	admin.PUT("/settings", settingsHandler.UpdateSettings)
	admin.GET("/reports/daily/:date", reportHandler.DailySummary)
	admin.GET("/reports/failed-logins", reportHandler.FailedLogins)
}

// RequireRole allows the request through only when the token's role claim is
// one of the given roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwtv5.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(jwtv5.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			role, _ := claims["role"].(string)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
