package repository

import (
	"gemshop_api/internal/domain/booking/model"

	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(booking *model.Booking) error
	GetByID(id uint) (*model.Booking, error)
	ListByUser(userID string, offset, limit int) ([]model.Booking, int64, error)
	UpdateStatus(id uint, from, to string) (bool, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(booking *model.Booking) error {
	return r.db.Create(booking).Error
}

func (r *bookingRepository) GetByID(id uint) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListByUser(userID string, offset, limit int) ([]model.Booking, int64, error) {
	var bookings []model.Booking
	var total int64

	query := r.db.Model(&model.Booking{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("booked_at desc").Offset(offset).Limit(limit).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// UpdateStatus 条件状态迁移，返回是否真的迁移了
// 条件写避免取消一个已完成的预约这类竞态
func (r *bookingRepository) UpdateStatus(id uint, from, to string) (bool, error) {
	result := r.db.Model(&model.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
