package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"canteen/internal/config"
	"canteen/internal/db"
	"canteen/internal/model"
	"canteen/internal/repository"
	"canteen/internal/service"
)

// Seeds the catalog, the default settings row, and a supplier plus a staff
// user, so a fresh deployment is usable immediately.
func main() {
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	settingsRepo := repository.NewSettingsRepository(gormDB)
	if _, err := settingsRepo.Get(ctx); err != nil {
		log.Fatalf("seed settings: %v", err)
	}

	categoryRepo := repository.NewCategoryRepository(gormDB)
	dishRepo := repository.NewDishRepository(gormDB)
	catalog := service.NewCatalogService(categoryRepo, dishRepo)

	categories := []struct {
		name  string
		price string
		dishes []string
	}{
		{"Starter", "3.50", []string{"Bruschetta", "Caprese"}},
		{"First course", "5.00", []string{"Pasta al pesto", "Risotto ai funghi"}},
		{"Main course", "6.50", []string{"Grilled chicken", "Baked cod"}},
		{"Side", "2.50", []string{"Mixed salad", "Roast potatoes"}},
		{"Dessert", "3.00", []string{"Tiramisu", "Fruit salad"}},
	}

	for _, entry := range categories {
		price, err := decimal.NewFromString(entry.price)
		if err != nil {
			log.Fatalf("parse price %q: %v", entry.price, err)
		}
		category, err := catalog.CreateCategory(ctx, entry.name, price)
		if err != nil {
			log.Printf("category %q: %v (skipping)", entry.name, err)
			continue
		}
		for _, dishName := range entry.dishes {
			if _, err := catalog.CreateDish(ctx, category.ID, dishName, ""); err != nil {
				log.Printf("dish %q: %v (skipping)", dishName, err)
			}
		}
	}

	userRepo := repository.NewUserRepository(gormDB)
	users := []struct {
		name, email, password, role string
	}{
		{"Supplier", "supplier@canteen.local", "supplier-pass", model.RoleSupplier},
		{"Staff Member", "staff@canteen.local", "staff-pass", model.RoleStaff},
		{"Admin", "admin@canteen.local", "admin-pass", model.RoleAdmin},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), 10)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user := &model.User{Name: u.name, Email: u.email, PasswordHash: string(hash), Role: u.role}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Printf("user %q: %v (skipping)", u.email, err)
		}
	}

	log.Println("seed complete")
}
