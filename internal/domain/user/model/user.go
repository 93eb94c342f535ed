package model

import (
	"time"

	baseModel "gemshop_api/pkg/model"
)

// User 用户模型
type User struct {
	baseModel.BaseModel
	Mobile    string `gorm:"unique;not null" json:"mobile"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
	Role      int    `gorm:"default:1" json:"role"`
	Status    int    `gorm:"default:1" json:"status"`

	// LedgerUserID 外部宝石账本的账户ID，与本系统用户ID不是同一个体系
	// 首次发生宝石操作时由服务端懒创建，客户端不可指定
	LedgerUserID string `gorm:"index" json:"-"`

	// 会员 (订阅权益)
	IsMember       bool       `gorm:"default:false" json:"isMember"`
	MemberExpireAt *time.Time `json:"memberExpireAt,omitempty"`

	BannedUntil   *time.Time `json:"bannedUntil,omitempty"`
	Token         string     `json:"-"`
	TokenExpireAt *time.Time `json:"-"`
}

const (
	RoleUser  = 1
	RoleAdmin = 2

	StatusNormal  = 1
	StatusBanned  = 2
	StatusDeleted = 3
)
