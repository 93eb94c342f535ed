package model

import (
	"encoding/json"

	baseModel "gemshop_api/pkg/model"
)

// 帖子审核状态
const (
	PostStatusPending  = "pending"
	PostStatusApproved = "approved"
	PostStatusRejected = "rejected"
)

// 帖子类型
const (
	PostTypeOutfit = "outfit"
	PostTypeText   = "text"
	PostTypeVideo  = "video"
)

// Post 穿搭帖子
// 媒体文件先传 OSS，这里只存 URL 数组
type Post struct {
	baseModel.BaseModel
	UserID    string          `gorm:"index;not null" json:"userId"`
	Content   string          `gorm:"type:text" json:"content"`
	MediaURLs json.RawMessage `gorm:"type:jsonb" json:"mediaUrls"`
	Type      string          `gorm:"default:'outfit'" json:"type"`
	Status    string          `gorm:"default:'pending'" json:"status"`

	// 关联
	Comments []Comment `json:"comments,omitempty"`
	Topics   []Topic   `gorm:"many2many:post_topics;" json:"topics,omitempty"`
}

// Topic 话题
type Topic struct {
	baseModel.BaseModel
	Name string `gorm:"unique" json:"name"`
}

// Comment 评论，最多两层
type Comment struct {
	baseModel.BaseModel
	PostID   string `gorm:"index;not null" json:"postId"`
	UserID   string `gorm:"index;not null" json:"userId"`
	Content  string `gorm:"type:text" json:"content"`
	ParentID string `json:"parentId"`               // 直接父评论
	RootID   string `gorm:"index" json:"rootId"`    // 一级评论ID，用于优化查询
	Level    int    `gorm:"default:1" json:"level"` // 1=一级评论，2=二级评论
}

// Like 点赞
type Like struct {
	baseModel.BaseModel
	UserID     string `gorm:"index;not null" json:"userId"`
	TargetID   string `gorm:"index;not null" json:"targetId"`
	TargetType string `json:"targetType"` // post, comment
}
