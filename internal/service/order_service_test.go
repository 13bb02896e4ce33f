package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "canteen/internal/errors"
	"canteen/internal/model"
)

const (
	testUserID = uint(7)
	testDishID = uint(42)
)

func testDish() *model.Dish {
	return &model.Dish{
		ID:         testDishID,
		CategoryID: 1,
		Name:       "Pasta al pesto",
		Active:     true,
		Category:   model.Category{ID: 1, Name: "First course", UnitPrice: decimal.RequireFromString("5.00")},
	}
}

func visibleMenu(menuDate time.Time) *model.DailyMenu {
	return &model.DailyMenu{
		ID:        1,
		Date:      menuDate,
		Confirmed: true,
		Dishes:    []model.Dish{*testDish()},
	}
}

func newOrderServiceForTest(
	orderRepo *MockOrderRepository,
	menuRepo *MockMenuRepository,
	dishRepo *MockDishRepository,
	settingsRepo *MockSettingsRepository,
	now time.Time,
) OrderService {
	svc := NewOrderService(orderRepo, menuRepo, dishRepo, settingsRepo).(*orderService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestOrderService_PlaceOrUpdate_NewOrder(t *testing.T) {
	mealDate := date("2024-06-10")
	now := instant("2024-06-09T07:00:00Z")
	orderID := uuid.New()

	mockOrderRepo := new(MockOrderRepository)
	mockMenuRepo := new(MockMenuRepository)
	mockDishRepo := new(MockDishRepository)
	mockSettingsRepo := new(MockSettingsRepository)

	mockSettingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
	mockMenuRepo.On("FindByDate", mock.Anything, mealDate).Return(visibleMenu(mealDate), nil)
	mockDishRepo.On("FindByID", mock.Anything, testDishID).Return(testDish(), nil)
	mockOrderRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)

	// No order yet, then the reload after the transaction.
	mockOrderRepo.On("FindByUserAndDate", mock.Anything, testUserID, mealDate).
		Return(nil, gorm.ErrRecordNotFound).Once()
	mockOrderRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Order).ID = orderID
		}).Return(nil)
	mockOrderRepo.On("FindLine", mock.Anything, orderID, testDishID).
		Return(nil, gorm.ErrRecordNotFound)
	mockOrderRepo.On("CreateLine", mock.Anything, mock.MatchedBy(func(line *model.OrderLine) bool {
		return line.Quantity == 2 && line.PriceAtOrder.Equal(decimal.RequireFromString("5.00"))
	})).Return(nil)
	mockOrderRepo.On("FindByUserAndDate", mock.Anything, testUserID, mealDate).
		Return(&model.Order{
			ID:       orderID,
			UserID:   testUserID,
			MealDate: mealDate,
			Lines: []model.OrderLine{
				{OrderID: orderID, DishID: testDishID, Quantity: 2, PriceAtOrder: decimal.RequireFromString("5.00")},
			},
		}, nil).Once()

	svc := newOrderServiceForTest(mockOrderRepo, mockMenuRepo, mockDishRepo, mockSettingsRepo, now)
	order, err := svc.PlaceOrUpdate(context.Background(), testUserID, mealDate, testDishID, 2)

	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, "10.00", order.Total().StringFixed(2))
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_PlaceOrUpdate_Preconditions(t *testing.T) {
	mealDate := date("2024-06-10")

	tests := []struct {
		name          string
		now           time.Time
		quantityDelta int
		setupMock     func(*MockOrderRepository, *MockMenuRepository, *MockDishRepository, *MockSettingsRepository)
		expectedError error
	}{
		{
			name:          "cutoff reached on the day before",
			now:           instant("2024-06-09T20:00:00Z"),
			quantityDelta: 1,
			setupMock: func(mOrder *MockOrderRepository, mMenu *MockMenuRepository, mDish *MockDishRepository, mSettings *MockSettingsRepository) {
				mSettings.On("Get", mock.Anything).Return(testSettings(), nil)
			},
			expectedError: apperrors.ErrCutoffExceeded,
		},
		{
			name:          "menu missing counts as not visible",
			now:           instant("2024-06-09T07:00:00Z"),
			quantityDelta: 1,
			setupMock: func(mOrder *MockOrderRepository, mMenu *MockMenuRepository, mDish *MockDishRepository, mSettings *MockSettingsRepository) {
				mSettings.On("Get", mock.Anything).Return(testSettings(), nil)
				mMenu.On("FindByDate", mock.Anything, mealDate).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrMenuNotVisible,
		},
		{
			name:          "unconfirmed menu is not visible",
			now:           instant("2024-06-09T07:00:00Z"),
			quantityDelta: 1,
			setupMock: func(mOrder *MockOrderRepository, mMenu *MockMenuRepository, mDish *MockDishRepository, mSettings *MockSettingsRepository) {
				mSettings.On("Get", mock.Anything).Return(testSettings(), nil)
				menu := visibleMenu(mealDate)
				menu.Confirmed = false
				mMenu.On("FindByDate", mock.Anything, mealDate).Return(menu, nil)
			},
			expectedError: apperrors.ErrMenuNotVisible,
		},
		{
			name:          "dish not in menu",
			now:           instant("2024-06-09T07:00:00Z"),
			quantityDelta: 1,
			setupMock: func(mOrder *MockOrderRepository, mMenu *MockMenuRepository, mDish *MockDishRepository, mSettings *MockSettingsRepository) {
				mSettings.On("Get", mock.Anything).Return(testSettings(), nil)
				menu := visibleMenu(mealDate)
				menu.Dishes = nil
				mMenu.On("FindByDate", mock.Anything, mealDate).Return(menu, nil)
			},
			expectedError: apperrors.ErrDishNotInMenu,
		},
		{
			name:          "new line quantity above cap",
			now:           instant("2024-06-09T07:00:00Z"),
			quantityDelta: 4,
			setupMock: func(mOrder *MockOrderRepository, mMenu *MockMenuRepository, mDish *MockDishRepository, mSettings *MockSettingsRepository) {
				mSettings.On("Get", mock.Anything).Return(testSettings(), nil)
				mMenu.On("FindByDate", mock.Anything, mealDate).Return(visibleMenu(mealDate), nil)
				mDish.On("FindByID", mock.Anything, testDishID).Return(testDish(), nil)
				mOrder.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mOrder.On("FindByUserAndDate", mock.Anything, testUserID, mealDate).
					Return(&model.Order{ID: uuid.New(), UserID: testUserID, MealDate: mealDate}, nil)
				mOrder.On("FindLine", mock.Anything, mock.Anything, testDishID).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrQuantityOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOrderRepo := new(MockOrderRepository)
			mockMenuRepo := new(MockMenuRepository)
			mockDishRepo := new(MockDishRepository)
			mockSettingsRepo := new(MockSettingsRepository)
			tt.setupMock(mockOrderRepo, mockMenuRepo, mockDishRepo, mockSettingsRepo)

			svc := newOrderServiceForTest(mockOrderRepo, mockMenuRepo, mockDishRepo, mockSettingsRepo, tt.now)
			order, err := svc.PlaceOrUpdate(context.Background(), testUserID, mealDate, testDishID, tt.quantityDelta)

			assert.ErrorIs(t, err, tt.expectedError)
			assert.Nil(t, order)
		})
	}
}

func TestOrderService_PlaceOrUpdate_ExistingLine(t *testing.T) {
	mealDate := date("2024-06-10")
	now := instant("2024-06-09T07:00:00Z")
	orderID := uuid.New()

	existingOrder := func() *model.Order {
		return &model.Order{ID: orderID, UserID: testUserID, MealDate: mealDate}
	}
	price := decimal.RequireFromString("5.00")

	setupCommon := func(mOrder *MockOrderRepository, mMenu *MockMenuRepository, mDish *MockDishRepository, mSettings *MockSettingsRepository) {
		mSettings.On("Get", mock.Anything).Return(testSettings(), nil)
		mMenu.On("FindByDate", mock.Anything, mealDate).Return(visibleMenu(mealDate), nil)
		mDish.On("FindByID", mock.Anything, testDishID).Return(testDish(), nil)
		mOrder.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	}

	t.Run("increments quantity and keeps the original snapshot", func(t *testing.T) {
		mockOrderRepo := new(MockOrderRepository)
		mockMenuRepo := new(MockMenuRepository)
		mockDishRepo := new(MockDishRepository)
		mockSettingsRepo := new(MockSettingsRepository)
		setupCommon(mockOrderRepo, mockMenuRepo, mockDishRepo, mockSettingsRepo)

		mockOrderRepo.On("FindByUserAndDate", mock.Anything, testUserID, mealDate).
			Return(existingOrder(), nil)
		mockOrderRepo.On("FindLine", mock.Anything, orderID, testDishID).
			Return(&model.OrderLine{ID: 11, OrderID: orderID, DishID: testDishID, Quantity: 1, PriceAtOrder: price}, nil)
		mockOrderRepo.On("UpdateLine", mock.Anything, mock.MatchedBy(func(line *model.OrderLine) bool {
			return line.Quantity == 3 && line.PriceAtOrder.Equal(price)
		})).Return(nil)

		svc := newOrderServiceForTest(mockOrderRepo, mockMenuRepo, mockDishRepo, mockSettingsRepo, now)
		_, err := svc.PlaceOrUpdate(context.Background(), testUserID, mealDate, testDishID, 2)

		assert.NoError(t, err)
		mockOrderRepo.AssertExpectations(t)
	})

	t.Run("raising above the cap fails", func(t *testing.T) {
		mockOrderRepo := new(MockOrderRepository)
		mockMenuRepo := new(MockMenuRepository)
		mockDishRepo := new(MockDishRepository)
		mockSettingsRepo := new(MockSettingsRepository)
		setupCommon(mockOrderRepo, mockMenuRepo, mockDishRepo, mockSettingsRepo)

		mockOrderRepo.On("FindByUserAndDate", mock.Anything, testUserID, mealDate).
			Return(existingOrder(), nil)
		mockOrderRepo.On("FindLine", mock.Anything, orderID, testDishID).
			Return(&model.OrderLine{ID: 11, OrderID: orderID, DishID: testDishID, Quantity: 3, PriceAtOrder: price}, nil)

		svc := newOrderServiceForTest(mockOrderRepo, mockMenuRepo, mockDishRepo, mockSettingsRepo, now)
		_, err := svc.PlaceOrUpdate(context.Background(), testUserID, mealDate, testDishID, 1)

		assert.ErrorIs(t, err, apperrors.ErrQuantityOutOfRange)
		mockOrderRepo.AssertNotCalled(t, "UpdateLine", mock.Anything, mock.Anything)
	})

	t.Run("dropping below one removes the line", func(t *testing.T) {
		mockOrderRepo := new(MockOrderRepository)
		mockMenuRepo := new(MockMenuRepository)
		mockDishRepo := new(MockDishRepository)
		mockSettingsRepo := new(MockSettingsRepository)
		setupCommon(mockOrderRepo, mockMenuRepo, mockDishRepo, mockSettingsRepo)

		mockOrderRepo.On("FindByUserAndDate", mock.Anything, testUserID, mealDate).
			Return(existingOrder(), nil)
		mockOrderRepo.On("FindLine", mock.Anything, orderID, testDishID).
			Return(&model.OrderLine{ID: 11, OrderID: orderID, DishID: testDishID, Quantity: 1, PriceAtOrder: price}, nil)
		mockOrderRepo.On("DeleteLine", mock.Anything, uint(11)).Return(nil)

		svc := newOrderServiceForTest(mockOrderRepo, mockMenuRepo, mockDishRepo, mockSettingsRepo, now)
		_, err := svc.PlaceOrUpdate(context.Background(), testUserID, mealDate, testDishID, -1)

		assert.NoError(t, err)
		mockOrderRepo.AssertExpectations(t)
	})
}

func TestOrderService_PlaceOrUpdate_DuplicateConflict(t *testing.T) {
	mealDate := date("2024-06-10")
	now := instant("2024-06-09T07:00:00Z")

	mockOrderRepo := new(MockOrderRepository)
	mockMenuRepo := new(MockMenuRepository)
	mockDishRepo := new(MockDishRepository)
	mockSettingsRepo := new(MockSettingsRepository)

	mockSettingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
	mockMenuRepo.On("FindByDate", mock.Anything, mealDate).Return(visibleMenu(mealDate), nil)
	mockDishRepo.On("FindByID", mock.Anything, testDishID).Return(testDish(), nil)
	mockOrderRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockOrderRepo.On("FindByUserAndDate", mock.Anything, testUserID, mealDate).
		Return(nil, gorm.ErrRecordNotFound)
	// A concurrent request inserted the order first; the unique index makes
	// this writer lose with a conflict.
	mockOrderRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).
		Return(apperrors.ErrDuplicateOrder)

	svc := newOrderServiceForTest(mockOrderRepo, mockMenuRepo, mockDishRepo, mockSettingsRepo, now)
	order, err := svc.PlaceOrUpdate(context.Background(), testUserID, mealDate, testDishID, 1)

	assert.ErrorIs(t, err, apperrors.ErrDuplicateOrder)
	assert.Nil(t, order)
}

func TestOrderService_GetForDate(t *testing.T) {
	mealDate := date("2024-06-10")

	t.Run("missing order", func(t *testing.T) {
		mockOrderRepo := new(MockOrderRepository)
		mockOrderRepo.On("FindByUserAndDate", mock.Anything, testUserID, mealDate).
			Return(nil, gorm.ErrRecordNotFound)

		svc := NewOrderService(mockOrderRepo, new(MockMenuRepository), new(MockDishRepository), new(MockSettingsRepository))
		_, err := svc.GetForDate(context.Background(), testUserID, mealDate)

		assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	})
}
