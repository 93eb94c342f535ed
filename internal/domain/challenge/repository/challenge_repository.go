package repository

import (
	"errors"

	"gemshop_api/internal/domain/challenge/model"

	"gorm.io/gorm"
)

type ChallengeRepository interface {
	Create(challenge *model.Challenge) error
	GetByID(id string) (*model.Challenge, error)
	GetList(offset, limit int) ([]model.Challenge, int64, error)

	// DecreaseRewardStock 条件扣减，库存为零时不更新并报错
	DecreaseRewardStock(challengeID string) error
	CreateClaim(userID, challengeID string, rewardGems int64) error
	ListClaimsByUser(userID string, offset, limit int) ([]model.ChallengeClaim, int64, error)
}

type challengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) Create(challenge *model.Challenge) error {
	return r.db.Create(challenge).Error
}

func (r *challengeRepository) GetByID(id string) (*model.Challenge, error) {
	var challenge model.Challenge
	if err := r.db.Where("id = ?", id).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepository) GetList(offset, limit int) ([]model.Challenge, int64, error) {
	var challenges []model.Challenge
	var total int64

	query := r.db.Model(&model.Challenge{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&challenges).Error; err != nil {
		return nil, 0, err
	}
	return challenges, total, nil
}

func (r *challengeRepository) DecreaseRewardStock(challengeID string) error {
	result := r.db.Model(&model.Challenge{}).
		Where("id = ? AND reward_stock > 0", challengeID).
		UpdateColumn("reward_stock", gorm.Expr("reward_stock - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("reward stock exhausted")
	}
	return nil
}

func (r *challengeRepository) CreateClaim(userID, challengeID string, rewardGems int64) error {
	return r.db.Create(&model.ChallengeClaim{
		UserID:      userID,
		ChallengeID: challengeID,
		RewardGems:  rewardGems,
	}).Error
}

func (r *challengeRepository) ListClaimsByUser(userID string, offset, limit int) ([]model.ChallengeClaim, int64, error) {
	var claims []model.ChallengeClaim
	var total int64

	query := r.db.Model(&model.ChallengeClaim{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&claims).Error; err != nil {
		return nil, 0, err
	}
	return claims, total, nil
}
