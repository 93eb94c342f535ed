package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gemshop_api/internal/domain/order/model"
	"gemshop_api/internal/domain/order/processor"
	"gemshop_api/internal/domain/order/repository"
	"gemshop_api/internal/pkg/middleware"
	"gemshop_api/internal/pkg/push"
	"gemshop_api/pkg/logger"
	"gemshop_api/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrOrderNotFound 订单不存在
var ErrOrderNotFound = errors.New("order not found")

// ItemInput 下单行项目
type ItemInput struct {
	ProductID uint
	Quantity  int
	Price     float64
}

// VerificationResult 核销结果
// 核销失败是业务结果不是错误，统一走 200 + verified 标志
type VerificationResult struct {
	Verified      bool    `json:"verified"`
	Message       string  `json:"message"`
	Amount        float64 `json:"amount,omitempty"`
	Currency      string  `json:"currency,omitempty"`
	CustomerEmail string  `json:"customer_email,omitempty"`
}

// ProductChecker 下单前的商品存在性校验（由 catalog 模块提供）
type ProductChecker interface {
	ValidateProductsExist(ids []uint) error
}

type OrderService interface {
	CreateOrder(userID string, totalPrice float64, paymentIntentID, channel string, items []ItemInput) (*model.Order, error)
	VerifyFulfillment(orderID uint) (*VerificationResult, error)
	GetOrder(id uint) (*model.Order, error)
	GetOrderBySlug(slug string) (*model.Order, error)
	GetUserOrders(userID string, page, limit int) ([]model.Order, int64, error)
	RegisterProcessor(p processor.PaymentProcessor)
}

type orderService struct {
	repo       repository.OrderRepository
	products   ProductChecker
	processors map[string]processor.PaymentProcessor
}

func NewOrderService(repo repository.OrderRepository, products ProductChecker) OrderService {
	return &orderService{
		repo:       repo,
		products:   products,
		processors: make(map[string]processor.PaymentProcessor),
	}
}

// RegisterProcessor 注册支付渠道
func (s *orderService) RegisterProcessor(p processor.PaymentProcessor) {
	s.processors[p.Channel()] = p
}

func (s *orderService) CreateOrder(userID string, totalPrice float64, paymentIntentID, channel string, items []ItemInput) (*model.Order, error) {
	if channel == "" {
		channel = model.ChannelStripe
	}

	// 1. 校验商品都存在（价格仍以客户端为准，见 catalog 服务说明）
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	if err := s.products.ValidateProductsExist(ids); err != nil {
		return nil, err
	}

	// 2. 生成订单短码
	slug := utils.GenerateOrderSlug()

	// 3. 订单 + 行项目在同一事务写入
	order := &model.Order{
		Slug:            slug,
		UserID:          userID,
		TotalPrice:      totalPrice,
		Status:          model.OrderStatusPending,
		PaymentIntentID: paymentIntentID,
		PaymentStatus:   model.PaymentStatusPending,
		Channel:         channel,
	}

	orderItems := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := s.repo.CreateWithItems(order, orderItems); err != nil {
		return nil, err
	}

	return order, nil
}

// VerifyFulfillment 向支付渠道核对支付状态并推进订单
// 状态机：Pending --(渠道确认收款)--> Completed，不存在其他迁移
func (s *orderService) VerifyFulfillment(orderID uint) (*VerificationResult, error) {
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	// 没有支付凭证说明客户端还没发起支付，属于业务失败而非错误
	if order.PaymentIntentID == "" {
		middleware.RecordOrderVerified("unverified")
		return &VerificationResult{
			Verified: false,
			Message:  "No payment record found for this order",
		}, nil
	}

	proc, ok := s.processors[order.Channel]
	if !ok {
		return nil, fmt.Errorf("no payment processor registered for channel %q", order.Channel)
	}

	record, err := proc.Retrieve(context.Background(), order.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	if !record.Succeeded {
		middleware.RecordOrderVerified("unverified")
		return &VerificationResult{
			Verified: false,
			Message:  fmt.Sprintf("Payment not completed, status: %s", record.Status),
		}, nil
	}

	// 渠道已收款：推进订单状态（已完成的订单不重写）
	if order.Status != model.OrderStatusCompleted {
		if err := s.repo.MarkCompleted(order.ID, model.PaymentStatusSucceeded, time.Now()); err != nil {
			// 核销结果以渠道为准，本地更新失败只记日志
			if logger.Log != nil {
				logger.Log.Error("Failed to mark order completed",
					zap.Uint("order_id", order.ID), zap.Error(err))
			}
		} else {
			s.notifyPaid(order)
		}
	}

	middleware.RecordOrderVerified("verified")
	return &VerificationResult{
		Verified:      true,
		Message:       "Payment verified",
		Amount:        float64(record.Amount) / 100.0,
		Currency:      strings.ToLower(record.Currency),
		CustomerEmail: record.CustomerEmail,
	}, nil
}

func (s *orderService) GetOrder(id uint) (*model.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrderBySlug(slug string) (*model.Order, error) {
	order, err := s.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetUserOrders(userID string, page, limit int) ([]model.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.ListByUser(userID, offset, limit)
}

// notifyPaid 推送支付成功通知
// 注意：GlobalPushService 可能为 nil (未配置时)
func (s *orderService) notifyPaid(order *model.Order) {
	if push.GlobalPushService == nil {
		return
	}
	title := "Payment successful"
	body := fmt.Sprintf("Your order %s has been paid. Thanks for shopping with us!", order.Slug)
	go push.GlobalPushService.PushToAccount(order.UserID, title, body, map[string]string{
		"orderSlug": order.Slug,
	})
}
