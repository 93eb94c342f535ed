package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gemshop_api/internal/domain/order/model"
	"gemshop_api/internal/domain/order/processor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockOrderRepository is a mock of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithItems(order *model.Order, items []model.OrderItem) error {
	args := m.Called(order, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id uint) (*model.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetBySlug(slug string) (*model.Order, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(userID string, offset, limit int) ([]model.Order, int64, error) {
	args := m.Called(userID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) MarkCompleted(id uint, paymentStatus string, paidAt time.Time) error {
	args := m.Called(id, paymentStatus, paidAt)
	return args.Error(0)
}

// MockProductChecker is a mock of ProductChecker
type MockProductChecker struct {
	mock.Mock
}

func (m *MockProductChecker) ValidateProductsExist(ids []uint) error {
	args := m.Called(ids)
	return args.Error(0)
}

// fakeProcessor 固定返回预设支付记录的测试渠道
type fakeProcessor struct {
	channel string
	record  *processor.PaymentRecord
	err     error
}

func (f *fakeProcessor) Channel() string {
	return f.channel
}

func (f *fakeProcessor) Retrieve(ctx context.Context, paymentRef string) (*processor.PaymentRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func pendingOrder(id uint, paymentIntentID string) *model.Order {
	order := &model.Order{
		Slug:            "ord-260901-abcd1234",
		UserID:          "user-1",
		TotalPrice:      49.99,
		Status:          model.OrderStatusPending,
		PaymentIntentID: paymentIntentID,
		PaymentStatus:   model.PaymentStatusPending,
		Channel:         model.ChannelStripe,
	}
	order.ID = id
	return order
}

func TestCreateOrder(t *testing.T) {
	t.Run("Create order success", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		mockProducts := new(MockProductChecker)
		svc := NewOrderService(mockRepo, mockProducts)

		items := []ItemInput{
			{ProductID: 1, Quantity: 2, Price: 9.99},
			{ProductID: 2, Quantity: 1, Price: 30.01},
		}

		mockProducts.On("ValidateProductsExist", []uint{1, 2}).Return(nil)
		mockRepo.On("CreateWithItems", mock.AnythingOfType("*model.Order"), mock.AnythingOfType("[]model.OrderItem")).
			Run(func(args mock.Arguments) {
				args.Get(0).(*model.Order).ID = 42
			}).Return(nil)

		order, err := svc.CreateOrder("user-1", 49.99, "pi_123", "", items)

		assert.NoError(t, err)
		assert.Equal(t, uint(42), order.ID)
		assert.NotEmpty(t, order.Slug)
		assert.Equal(t, model.OrderStatusPending, order.Status)
		assert.Equal(t, model.ChannelStripe, order.Channel)
		mockProducts.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown product rejected before insert", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		mockProducts := new(MockProductChecker)
		svc := NewOrderService(mockRepo, mockProducts)

		mockProducts.On("ValidateProductsExist", []uint{999}).Return(errors.New("some products do not exist"))

		order, err := svc.CreateOrder("user-1", 9.99, "pi_123", "", []ItemInput{
			{ProductID: 999, Quantity: 1, Price: 9.99},
		})

		assert.Error(t, err)
		assert.Nil(t, order)
		mockRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything)
	})

	t.Run("Repository failure surfaces to caller", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		mockProducts := new(MockProductChecker)
		svc := NewOrderService(mockRepo, mockProducts)

		mockProducts.On("ValidateProductsExist", []uint{1}).Return(nil)
		mockRepo.On("CreateWithItems", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

		order, err := svc.CreateOrder("user-1", 9.99, "pi_123", "", []ItemInput{
			{ProductID: 1, Quantity: 1, Price: 9.99},
		})

		assert.Error(t, err)
		assert.Nil(t, order)
	})
}

func TestVerifyFulfillment(t *testing.T) {
	t.Run("Succeeded payment marks order completed", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		mockProducts := new(MockProductChecker)
		svc := NewOrderService(mockRepo, mockProducts)
		svc.RegisterProcessor(&fakeProcessor{
			channel: "stripe",
			record: &processor.PaymentRecord{
				Status:        "succeeded",
				Succeeded:     true,
				Amount:        4999,
				Currency:      "USD",
				CustomerEmail: "buyer@example.com",
			},
		})

		order := pendingOrder(1, "pi_123")
		mockRepo.On("GetByID", uint(1)).Return(order, nil)
		mockRepo.On("MarkCompleted", uint(1), model.PaymentStatusSucceeded, mock.AnythingOfType("time.Time")).Return(nil)

		result, err := svc.VerifyFulfillment(1)

		assert.NoError(t, err)
		assert.True(t, result.Verified)
		assert.Equal(t, 49.99, result.Amount)
		assert.Equal(t, "usd", result.Currency)
		assert.Equal(t, "buyer@example.com", result.CustomerEmail)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unpaid payment reports unverified without error", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		mockProducts := new(MockProductChecker)
		svc := NewOrderService(mockRepo, mockProducts)
		svc.RegisterProcessor(&fakeProcessor{
			channel: "stripe",
			record: &processor.PaymentRecord{
				Status:    "requires_payment_method",
				Succeeded: false,
			},
		})

		mockRepo.On("GetByID", uint(2)).Return(pendingOrder(2, "pi_456"), nil)

		result, err := svc.VerifyFulfillment(2)

		assert.NoError(t, err)
		assert.False(t, result.Verified)
		assert.Contains(t, result.Message, "requires_payment_method")
		mockRepo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing payment record reports unverified", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		mockProducts := new(MockProductChecker)
		svc := NewOrderService(mockRepo, mockProducts)

		mockRepo.On("GetByID", uint(3)).Return(pendingOrder(3, ""), nil)

		result, err := svc.VerifyFulfillment(3)

		assert.NoError(t, err)
		assert.False(t, result.Verified)
		assert.Contains(t, result.Message, "No payment record")
	})

	t.Run("Unknown order returns ErrOrderNotFound", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		mockProducts := new(MockProductChecker)
		svc := NewOrderService(mockRepo, mockProducts)

		mockRepo.On("GetByID", uint(404)).Return(nil, gorm.ErrRecordNotFound)

		result, err := svc.VerifyFulfillment(404)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Processor failure surfaces as error", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		mockProducts := new(MockProductChecker)
		svc := NewOrderService(mockRepo, mockProducts)
		svc.RegisterProcessor(&fakeProcessor{
			channel: "stripe",
			err:     errors.New("stripe unreachable"),
		})

		mockRepo.On("GetByID", uint(5)).Return(pendingOrder(5, "pi_789"), nil)

		result, err := svc.VerifyFulfillment(5)

		assert.Nil(t, result)
		assert.Error(t, err)
	})

	t.Run("Completed order is not rewritten on repeat verification", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		mockProducts := new(MockProductChecker)
		svc := NewOrderService(mockRepo, mockProducts)
		svc.RegisterProcessor(&fakeProcessor{
			channel: "stripe",
			record: &processor.PaymentRecord{
				Status:    "succeeded",
				Succeeded: true,
				Amount:    4999,
				Currency:  "usd",
			},
		})

		order := pendingOrder(6, "pi_123")
		order.Status = model.OrderStatusCompleted
		mockRepo.On("GetByID", uint(6)).Return(order, nil)

		result, err := svc.VerifyFulfillment(6)

		assert.NoError(t, err)
		assert.True(t, result.Verified)
		mockRepo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetUserOrders(t *testing.T) {
	t.Run("Pagination defaults applied", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		mockProducts := new(MockProductChecker)
		svc := NewOrderService(mockRepo, mockProducts)

		mockRepo.On("ListByUser", "user-1", 0, 10).Return([]model.Order{*pendingOrder(1, "pi_1")}, int64(1), nil)

		orders, total, err := svc.GetUserOrders("user-1", 0, 0)

		assert.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.Equal(t, int64(1), total)
		mockRepo.AssertExpectations(t)
	})
}
