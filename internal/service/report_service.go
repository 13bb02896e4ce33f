package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"canteen/internal/model"
	"canteen/internal/repository"
)

// DishSummary aggregates one dish across all orders of a date. Revenue is
// computed from snapshotted line prices, so later category price changes do
// not alter past reports.
type DishSummary struct {
	DishID   uint            `json:"dish_id"`
	DishName string          `json:"dish_name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DailySummary is the per-date ordering report.
type DailySummary struct {
	Date       string          `json:"date"`
	OrderCount int             `json:"order_count"`
	Dishes     []DishSummary   `json:"dishes"`
	Total      decimal.Decimal `json:"total"`
}

// ReportService produces ordering summaries and audit views for the admin
// surface.
type ReportService interface {
	DailySummary(ctx context.Context, date time.Time) (*DailySummary, error)
	RecentFailedLogins(ctx context.Context, limit int) ([]model.FailedLogin, error)
}

type reportService struct {
	orderRepo       repository.OrderRepository
	failedLoginRepo repository.FailedLoginRepository
}

// NewReportService creates a new report service.
func NewReportService(orderRepo repository.OrderRepository, failedLoginRepo repository.FailedLoginRepository) ReportService {
	return &reportService{orderRepo: orderRepo, failedLoginRepo: failedLoginRepo}
}

// DailySummary aggregates all orders for a meal date per dish.
func (s *reportService) DailySummary(ctx context.Context, date time.Time) (*DailySummary, error) {
	orders, err := s.orderRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	byDish := make(map[uint]*DishSummary)
	total := decimal.Zero
	for _, order := range orders {
		for _, line := range order.Lines {
			entry, ok := byDish[line.DishID]
			if !ok {
				entry = &DishSummary{DishID: line.DishID, DishName: line.Dish.Name, Revenue: decimal.Zero}
				byDish[line.DishID] = entry
			}
			entry.Quantity += line.Quantity
			entry.Revenue = entry.Revenue.Add(line.LineTotal())
			total = total.Add(line.LineTotal())
		}
	}

	dishes := make([]DishSummary, 0, len(byDish))
	for _, entry := range byDish {
		dishes = append(dishes, *entry)
	}
	sort.Slice(dishes, func(i, j int) bool { return dishes[i].DishID < dishes[j].DishID })

	return &DailySummary{
		Date:       model.DateOnly(date).Format("2006-01-02"),
		OrderCount: len(orders),
		Dishes:     dishes,
		Total:      total,
	}, nil
}

const defaultFailedLoginLimit = 100

// RecentFailedLogins returns the newest failed login entries, capped at limit
// (defaulting when limit is not positive).
func (s *reportService) RecentFailedLogins(ctx context.Context, limit int) ([]model.FailedLogin, error) {
	if limit <= 0 {
		limit = defaultFailedLoginLimit
	}
	entries, err := s.failedLoginRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list failed logins: %w", err)
	}
	return entries, nil
}
