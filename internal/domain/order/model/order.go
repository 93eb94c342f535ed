package model

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单模型
// Status 只会从 Pending 单向流转到 Completed，由核销接口驱动
type Order struct {
	gorm.Model
	Slug            string  `gorm:"uniqueIndex;not null" json:"slug"`
	UserID          string  `gorm:"type:uuid;index;not null" json:"userId"`
	TotalPrice      float64 `gorm:"not null" json:"totalPrice"`
	Status          string  `gorm:"default:'Pending'" json:"status"` // Pending, Completed
	PaymentIntentID string  `gorm:"index" json:"paymentIntentId"`
	// PaymentStatus 支付渠道侧状态镜像 (pending, succeeded, ...)
	PaymentStatus string     `gorm:"default:'pending'" json:"paymentStatus"`
	Channel       string     `gorm:"default:'stripe'" json:"channel"` // stripe, alipay, wechat
	PaidAt        *time.Time `json:"paidAt,omitempty"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem 订单行项目，随订单一次性写入，之后不再变更
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"index;not null" json:"orderId"`
	ProductID uint    `gorm:"not null" json:"productId"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"

	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"

	ChannelStripe = "stripe"
	ChannelAlipay = "alipay"
	ChannelWechat = "wechat"
)
