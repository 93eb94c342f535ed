package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gemshop_api/internal/domain/order/model"
	"gemshop_api/internal/domain/order/processor"
	"gemshop_api/internal/domain/order/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderService is a mock of OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(userID string, totalPrice float64, paymentIntentID, channel string, items []service.ItemInput) (*model.Order, error) {
	args := m.Called(userID, totalPrice, paymentIntentID, channel, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) VerifyFulfillment(orderID uint) (*service.VerificationResult, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VerificationResult), args.Error(1)
}

func (m *MockOrderService) GetOrder(id uint) (*model.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderBySlug(slug string) (*model.Order, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) GetUserOrders(userID string, page, limit int) ([]model.Order, int64, error) {
	args := m.Called(userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderService) RegisterProcessor(p processor.PaymentProcessor) {
	m.Called(p)
}

func setupRouter(mockService *MockOrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOrderHandler(mockService)

	r := gin.New()
	r.POST("/orders", h.CreateOrder)
	r.POST("/orders/verify", h.VerifyOrder)
	return r
}

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderHandler(t *testing.T) {
	t.Run("Create order returns 201 with id and slug", func(t *testing.T) {
		mockService := new(MockOrderService)
		r := setupRouter(mockService)

		order := &model.Order{Slug: "ord-260901-abcd1234"}
		order.ID = 42
		mockService.On("CreateOrder", "user-1", 49.99, "pi_123", "", mock.AnythingOfType("[]service.ItemInput")).
			Return(order, nil)

		w := performJSON(r, http.MethodPost, "/orders", gin.H{
			"totalPrice":      49.99,
			"paymentIntentId": "pi_123",
			"userId":          "user-1",
			"items": []gin.H{
				{"productId": 1, "quantity": 2, "price": 9.99},
				{"productId": 2, "quantity": 1, "price": 30.01},
			},
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(42), resp["id"])
		assert.Equal(t, "ord-260901-abcd1234", resp["slug"])
		mockService.AssertExpectations(t)
	})

	t.Run("Missing fields rejected with 400", func(t *testing.T) {
		mockService := new(MockOrderService)
		r := setupRouter(mockService)

		w := performJSON(r, http.MethodPost, "/orders", gin.H{
			"totalPrice": 49.99,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp, "error")
		mockService.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Empty items rejected with 400", func(t *testing.T) {
		mockService := new(MockOrderService)
		r := setupRouter(mockService)

		w := performJSON(r, http.MethodPost, "/orders", gin.H{
			"totalPrice":      49.99,
			"paymentIntentId": "pi_123",
			"userId":          "user-1",
			"items":           []gin.H{},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Negative item price rejected with 400", func(t *testing.T) {
		mockService := new(MockOrderService)
		r := setupRouter(mockService)

		w := performJSON(r, http.MethodPost, "/orders", gin.H{
			"totalPrice":      49.99,
			"paymentIntentId": "pi_123",
			"userId":          "user-1",
			"items": []gin.H{
				{"productId": 1, "quantity": 1, "price": -5.0},
			},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Service failure returns 500", func(t *testing.T) {
		mockService := new(MockOrderService)
		r := setupRouter(mockService)

		mockService.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		w := performJSON(r, http.MethodPost, "/orders", gin.H{
			"totalPrice":      49.99,
			"paymentIntentId": "pi_123",
			"userId":          "user-1",
			"items": []gin.H{
				{"productId": 1, "quantity": 1, "price": 49.99},
			},
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestVerifyOrderHandler(t *testing.T) {
	t.Run("Verified payment returns 200 with verified true", func(t *testing.T) {
		mockService := new(MockOrderService)
		r := setupRouter(mockService)

		mockService.On("VerifyFulfillment", uint(42)).Return(&service.VerificationResult{
			Verified:      true,
			Message:       "Payment verified",
			Amount:        49.99,
			Currency:      "usd",
			CustomerEmail: "buyer@example.com",
		}, nil)

		w := performJSON(r, http.MethodPost, "/orders/verify", gin.H{"orderId": 42})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["verified"])
		assert.Equal(t, 49.99, resp["amount"])
		mockService.AssertExpectations(t)
	})

	t.Run("Unverified payment still returns 200", func(t *testing.T) {
		mockService := new(MockOrderService)
		r := setupRouter(mockService)

		mockService.On("VerifyFulfillment", uint(7)).Return(&service.VerificationResult{
			Verified: false,
			Message:  "Payment not completed, status: requires_payment_method",
		}, nil)

		w := performJSON(r, http.MethodPost, "/orders/verify", gin.H{"orderId": 7})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["verified"])
	})

	t.Run("Missing orderId returns 400", func(t *testing.T) {
		mockService := new(MockOrderService)
		r := setupRouter(mockService)

		w := performJSON(r, http.MethodPost, "/orders/verify", gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "VerifyFulfillment", mock.Anything)
	})

	t.Run("Unknown order returns 404", func(t *testing.T) {
		mockService := new(MockOrderService)
		r := setupRouter(mockService)

		mockService.On("VerifyFulfillment", uint(404)).Return(nil, service.ErrOrderNotFound)

		w := performJSON(r, http.MethodPost, "/orders/verify", gin.H{"orderId": 404})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Processor failure returns 500", func(t *testing.T) {
		mockService := new(MockOrderService)
		r := setupRouter(mockService)

		mockService.On("VerifyFulfillment", uint(5)).Return(nil, assert.AnError)

		w := performJSON(r, http.MethodPost, "/orders/verify", gin.H{"orderId": 5})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
