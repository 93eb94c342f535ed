package model

import (
	"time"

	"gemshop_api/pkg/model"
)

// Challenge 创作者挑战
// 奖励库存双写：数据库是事实来源，Redis 里放一份用于抢领取时的预扣减
type Challenge struct {
	model.BaseModel
	Title       string    `gorm:"size:128;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CoverURL    string    `gorm:"size:512" json:"coverUrl"`
	RewardGems  int64     `gorm:"not null" json:"rewardGems"`
	RewardTotal int       `gorm:"not null" json:"rewardTotal"`
	RewardStock int       `gorm:"not null" json:"rewardStock"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// ChallengeClaim 用户领取记录
type ChallengeClaim struct {
	model.BaseModel
	UserID      string `gorm:"index;not null" json:"userId"`
	ChallengeID string `gorm:"index;not null" json:"challengeId"`
	RewardGems  int64  `gorm:"not null" json:"rewardGems"`
}
