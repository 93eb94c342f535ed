package model

import (
	"time"

	"gorm.io/gorm"
)

// 预约状态
const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Booking 服务预约
// 预约的是 catalog 里的服务项目 (造型、改衣、拍摄等)
type Booking struct {
	gorm.Model
	UserID    string    `gorm:"index;not null" json:"userId"`
	ServiceID uint      `gorm:"index;not null" json:"serviceId"`
	ShopID    uint      `gorm:"index;not null" json:"shopId"`
	BookedAt  time.Time `gorm:"not null" json:"bookedAt"`
	Note      string    `gorm:"size:512" json:"note"`
	Status    string    `gorm:"size:16;default:'booked'" json:"status"`
}
