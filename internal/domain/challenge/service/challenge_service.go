package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gemshop_api/internal/domain/challenge/model"
	"gemshop_api/internal/domain/challenge/repository"
	"gemshop_api/internal/pkg/worker"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrAlreadyClaimed    = errors.New("you have already claimed this challenge reward")
	ErrOutOfStock        = errors.New("challenge reward out of stock")
	ErrNotActive         = errors.New("challenge is not active")
)

type ChallengeService interface {
	CreateChallenge(title, description, coverURL string, rewardGems int64, rewardTotal int, startTime, endTime time.Time) (*model.Challenge, error)
	ClaimReward(ctx context.Context, userID, challengeID string) error
	GetChallenges(page, limit int) ([]model.Challenge, int64, error)
	GetChallenge(id string) (*model.Challenge, error)
	GetMyClaims(userID string, page, limit int) ([]model.ChallengeClaim, int64, error)
}

// taskQueue 领取任务入队口 (生产环境是 worker.WorkerPool)
type taskQueue interface {
	AddTask(task worker.ClaimTask)
}

type challengeService struct {
	repo       repository.ChallengeRepository
	rdb        *redis.Client
	soldOutMap sync.Map // 本地缓存：记录已售罄的 ChallengeID
	queue      taskQueue
}

func NewChallengeService(repo repository.ChallengeRepository, rdb *redis.Client, creditor worker.RewardCreditor) ChallengeService {
	// 领取落库 + 宝石入账走异步 Worker Pool (5个 Worker，缓冲队列 1000)
	pool := worker.NewWorkerPool(repo, creditor, 5, 1000)
	pool.Start()

	return &challengeService{
		repo:  repo,
		rdb:   rdb,
		queue: pool,
	}
}

func (s *challengeService) CreateChallenge(title, description, coverURL string, rewardGems int64, rewardTotal int, startTime, endTime time.Time) (*model.Challenge, error) {
	challenge := &model.Challenge{
		Title:       title,
		Description: description,
		CoverURL:    coverURL,
		RewardGems:  rewardGems,
		RewardTotal: rewardTotal,
		RewardStock: rewardTotal,
		StartTime:   startTime,
		EndTime:     endTime,
	}

	if err := s.repo.Create(challenge); err != nil {
		return nil, err
	}

	// 预热缓存：将奖励库存写入 Redis
	stockKey := fmt.Sprintf("challenge:stock:%s", challenge.ID)
	s.rdb.Set(context.Background(), stockKey, rewardTotal, 0)

	return challenge, nil
}

// Lua 脚本：检查用户是否已领 + 检查库存 + 扣减库存 + 记录用户已领
var claimScript = redis.NewScript(`
	local user_key = KEYS[1]
	local stock_key = KEYS[2]
	local user_id = ARGV[1]

	-- 1. 检查用户是否已领取
	if redis.call("SISMEMBER", user_key, user_id) == 1 then
		return -1 -- 已领取
	end

	-- 2. 检查库存
	local stock = tonumber(redis.call("GET", stock_key))
	if stock == nil or stock <= 0 then
		return -2 -- 库存不足
	end

	-- 3. 扣减库存
	redis.call("DECR", stock_key)
	-- 4. 记录用户已领取
	redis.call("SADD", user_key, user_id)

	return 1 -- 成功
`)

func (s *challengeService) ClaimReward(ctx context.Context, userID, challengeID string) error {
	// 0. 本地缓存校验，售罄的挑战不打 Redis
	if _, ok := s.soldOutMap.Load(challengeID); ok {
		return ErrOutOfStock
	}

	// 1. 挑战必须存在且在活动期内
	challenge, err := s.repo.GetByID(challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChallengeNotFound
		}
		return err
	}

	now := time.Now()
	if now.Before(challenge.StartTime) || now.After(challenge.EndTime) {
		return ErrNotActive
	}

	userKey := fmt.Sprintf("challenge:users:%s", challengeID)
	stockKey := fmt.Sprintf("challenge:stock:%s", challengeID)

	// 2. 执行 Lua 脚本进行预扣减
	result, err := claimScript.Run(ctx, s.rdb, []string{userKey, stockKey}, userID).Int()
	if err != nil {
		return fmt.Errorf("redis error: %v", err)
	}

	if result == -1 {
		return ErrAlreadyClaimed
	}
	if result == -2 {
		// 标记本地缓存为已售罄
		s.soldOutMap.Store(challengeID, true)
		return ErrOutOfStock
	}

	// 3. Redis 扣减成功后，异步落库并给账本入账
	s.queue.AddTask(worker.ClaimTask{
		UserID:      userID,
		ChallengeID: challengeID,
		RewardGems:  challenge.RewardGems,
	})

	return nil
}

func (s *challengeService) GetChallenges(page, limit int) ([]model.Challenge, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetList((page-1)*limit, limit)
}

func (s *challengeService) GetChallenge(id string) (*model.Challenge, error) {
	challenge, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	return challenge, nil
}

func (s *challengeService) GetMyClaims(userID string, page, limit int) ([]model.ChallengeClaim, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListClaimsByUser(userID, (page-1)*limit, limit)
}
