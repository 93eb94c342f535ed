package model

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Shop 店铺/创作者主页
type Shop struct {
	gorm.Model
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	OwnerID     string `gorm:"type:uuid;index" json:"ownerId"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
	Status      string `gorm:"default:'active'" json:"status"` // active, closed
}

// Product 商品
type Product struct {
	gorm.Model
	ShopID      uint            `gorm:"index;not null" json:"shopId"`
	Name        string          `gorm:"type:varchar(200);not null" json:"name"`
	Description string          `json:"description"`
	Price       float64         `gorm:"not null" json:"price"`
	Stock       int             `json:"stock"`
	ImageURLs   json.RawMessage `gorm:"type:jsonb" json:"imageUrls"` // 图片 URL 数组
	Status      string          `gorm:"default:'on_sale'" json:"status"` // on_sale, off_shelf
}

// ServiceOffering 可预约的服务项目（造型、改衣、拍摄等）
type ServiceOffering struct {
	gorm.Model
	ShopID          uint    `gorm:"index;not null" json:"shopId"`
	Name            string  `gorm:"type:varchar(200);not null" json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `gorm:"default:'active'" json:"status"` // active, inactive
}

const (
	ShopStatusActive = "active"
	ShopStatusClosed = "closed"

	ProductStatusOnSale   = "on_sale"
	ProductStatusOffShelf = "off_shelf"
)
