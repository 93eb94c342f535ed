package service

import (
	"context"
	"testing"
	"time"

	"gemshop_api/internal/domain/challenge/model"
	"gemshop_api/internal/pkg/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockChallengeRepository is a mock of ChallengeRepository
type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) Create(challenge *model.Challenge) error {
	args := m.Called(challenge)
	return args.Error(0)
}

func (m *MockChallengeRepository) GetByID(id string) (*model.Challenge, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) GetList(offset, limit int) ([]model.Challenge, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Challenge), args.Get(1).(int64), args.Error(2)
}

func (m *MockChallengeRepository) DecreaseRewardStock(challengeID string) error {
	args := m.Called(challengeID)
	return args.Error(0)
}

func (m *MockChallengeRepository) CreateClaim(userID, challengeID string, rewardGems int64) error {
	args := m.Called(userID, challengeID, rewardGems)
	return args.Error(0)
}

func (m *MockChallengeRepository) ListClaimsByUser(userID string, offset, limit int) ([]model.ChallengeClaim, int64, error) {
	args := m.Called(userID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.ChallengeClaim), args.Get(1).(int64), args.Error(2)
}

// recordingQueue 记录入队任务的测试队列
type recordingQueue struct {
	tasks []worker.ClaimTask
}

func (q *recordingQueue) AddTask(task worker.ClaimTask) {
	q.tasks = append(q.tasks, task)
}

func activeChallenge(id string) *model.Challenge {
	challenge := &model.Challenge{
		Title:       "Outfit of the week",
		RewardGems:  30,
		RewardTotal: 100,
		RewardStock: 100,
		StartTime:   time.Now().Add(-time.Hour),
		EndTime:     time.Now().Add(time.Hour),
	}
	challenge.ID = id
	return challenge
}

func TestClaimReward(t *testing.T) {
	ctx := context.Background()

	t.Run("Sold-out challenge short-circuits locally without enqueueing", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		queue := &recordingQueue{}
		svc := &challengeService{repo: mockRepo, queue: queue}
		svc.soldOutMap.Store("ch-1", true)

		err := svc.ClaimReward(ctx, "user-1", "ch-1")

		assert.ErrorIs(t, err, ErrOutOfStock)
		assert.Empty(t, queue.tasks)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	})

	t.Run("Unknown challenge rejected", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		queue := &recordingQueue{}
		svc := &challengeService{repo: mockRepo, queue: queue}

		mockRepo.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		err := svc.ClaimReward(ctx, "user-1", "ghost")

		assert.ErrorIs(t, err, ErrChallengeNotFound)
		assert.Empty(t, queue.tasks)
	})

	t.Run("Expired challenge rejected before any stock check", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		queue := &recordingQueue{}
		svc := &challengeService{repo: mockRepo, queue: queue}

		challenge := activeChallenge("ch-2")
		challenge.StartTime = time.Now().Add(-48 * time.Hour)
		challenge.EndTime = time.Now().Add(-24 * time.Hour)
		mockRepo.On("GetByID", "ch-2").Return(challenge, nil)

		err := svc.ClaimReward(ctx, "user-1", "ch-2")

		assert.ErrorIs(t, err, ErrNotActive)
		assert.Empty(t, queue.tasks)
	})
}

func TestGetChallenge(t *testing.T) {
	t.Run("Unknown id maps to ErrChallengeNotFound", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		svc := &challengeService{repo: mockRepo}

		mockRepo.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		challenge, err := svc.GetChallenge("ghost")

		assert.Nil(t, challenge)
		assert.ErrorIs(t, err, ErrChallengeNotFound)
	})

	t.Run("Existing challenge returned", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		svc := &challengeService{repo: mockRepo}

		mockRepo.On("GetByID", "ch-1").Return(activeChallenge("ch-1"), nil)

		challenge, err := svc.GetChallenge("ch-1")

		assert.NoError(t, err)
		assert.Equal(t, "Outfit of the week", challenge.Title)
	})
}

func TestGetMyClaims(t *testing.T) {
	t.Run("Pagination defaults applied", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		svc := &challengeService{repo: mockRepo}

		claims := []model.ChallengeClaim{{UserID: "user-1", ChallengeID: "ch-1", RewardGems: 30}}
		mockRepo.On("ListClaimsByUser", "user-1", 0, 10).Return(claims, int64(1), nil)

		result, total, err := svc.GetMyClaims("user-1", 0, 0)

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, int64(1), total)
		mockRepo.AssertExpectations(t)
	})
}
