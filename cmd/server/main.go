package main

import (
	"log"
	"net/http"

	_ "canteen/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"canteen/internal/auth"
	"canteen/internal/cache"
	"canteen/internal/config"
	"canteen/internal/db"
	"canteen/internal/handler"
	"canteen/internal/model"
	"canteen/internal/repository"
	"canteen/internal/router"
	"canteen/internal/service"
)

// @title Canteen Ordering API
// @version 1.0
// @description Canteen meal-ordering API: daily menus, quantity-capped orders with price snapshots, supplier catalog management and daily reports.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Dish{},
		&model.DailyMenu{},
		&model.Order{},
		&model.OrderLine{},
		&model.Settings{},
		&model.FailedLogin{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	dishRepo := repository.NewDishRepository(gormDB)
	menuRepo := repository.NewMenuRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	settingsRepo := repository.NewSettingsRepository(gormDB)
	failedLoginRepo := repository.NewFailedLoginRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, failedLoginRepo, jwtService, tokenStore)
	catalogService := service.NewCatalogService(categoryRepo, dishRepo)
	menuService := service.NewMenuService(menuRepo, dishRepo, settingsRepo, cacheClient)
	orderService := service.NewOrderService(orderRepo, menuRepo, dishRepo, settingsRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	reportService := service.NewReportService(orderRepo, failedLoginRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	menuHandler := handler.NewMenuHandler(menuService)
	orderHandler := handler.NewOrderHandler(orderService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	reportHandler := handler.NewReportHandler(reportService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		menuHandler,
		orderHandler,
		catalogHandler,
		settingsHandler,
		reportHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
