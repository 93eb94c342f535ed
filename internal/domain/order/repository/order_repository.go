package repository

import (
	"time"

	"gemshop_api/internal/domain/order/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	// CreateWithItems 在同一个事务里写入订单和行项目
	// 行项目写入失败会回滚订单，不会留下空订单
	CreateWithItems(order *model.Order, items []model.OrderItem) error
	GetByID(id uint) (*model.Order, error)
	GetBySlug(slug string) (*model.Order, error)
	ListByUser(userID string, offset, limit int) ([]model.Order, int64, error)
	MarkCompleted(id uint, paymentStatus string, paidAt time.Time) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateWithItems(order *model.Order, items []model.OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}

		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		order.Items = items
		return nil
	})
}

func (r *orderRepository) GetByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetBySlug(slug string) (*model.Order, error) {
	var order model.Order
	if err := r.db.Preload("Items").Where("slug = ?", slug).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(userID string, offset, limit int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	query := r.db.Model(&model.Order{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Items").Order("created_at desc").
		Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// MarkCompleted 将订单置为已完成，同时记录渠道侧状态
// 只允许 Pending -> Completed，已完成的订单不会被重写
func (r *orderRepository) MarkCompleted(id uint, paymentStatus string, paidAt time.Time) error {
	return r.db.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":         model.OrderStatusCompleted,
			"payment_status": paymentStatus,
			"paid_at":        paidAt,
		}).Error
}
