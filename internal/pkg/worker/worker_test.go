package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockClaimStore is a mock of ClaimStore
type MockClaimStore struct {
	mock.Mock
}

func (m *MockClaimStore) DecreaseRewardStock(challengeID string) error {
	args := m.Called(challengeID)
	return args.Error(0)
}

func (m *MockClaimStore) CreateClaim(userID, challengeID string, rewardGems int64) error {
	args := m.Called(userID, challengeID, rewardGems)
	return args.Error(0)
}

// MockRewardCreditor is a mock of RewardCreditor
type MockRewardCreditor struct {
	mock.Mock
}

func (m *MockRewardCreditor) CreditReward(ctx context.Context, userID string, amount int64, reason string) error {
	args := m.Called(userID, amount, reason)
	return args.Error(0)
}

func TestProcessTask(t *testing.T) {
	task := ClaimTask{UserID: "user-1", ChallengeID: "ch-1", RewardGems: 30}

	t.Run("Claim persisted and gems credited", func(t *testing.T) {
		mockStore := new(MockClaimStore)
		mockCreditor := new(MockRewardCreditor)
		pool := NewWorkerPool(mockStore, mockCreditor, 1, 10)

		mockStore.On("DecreaseRewardStock", "ch-1").Return(nil)
		mockStore.On("CreateClaim", "user-1", "ch-1", int64(30)).Return(nil)
		mockCreditor.On("CreditReward", "user-1", int64(30), mock.AnythingOfType("string")).Return(nil)

		err := pool.processTask(task)

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
		mockCreditor.AssertExpectations(t)
	})

	t.Run("Exhausted stock stops before claim insert", func(t *testing.T) {
		mockStore := new(MockClaimStore)
		mockCreditor := new(MockRewardCreditor)
		pool := NewWorkerPool(mockStore, mockCreditor, 1, 10)

		mockStore.On("DecreaseRewardStock", "ch-1").Return(errors.New("reward stock exhausted"))

		err := pool.processTask(task)

		assert.Error(t, err)
		mockStore.AssertNotCalled(t, "CreateClaim", mock.Anything, mock.Anything, mock.Anything)
		mockCreditor.AssertNotCalled(t, "CreditReward", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Credit failure surfaces for retry", func(t *testing.T) {
		mockStore := new(MockClaimStore)
		mockCreditor := new(MockRewardCreditor)
		pool := NewWorkerPool(mockStore, mockCreditor, 1, 10)

		mockStore.On("DecreaseRewardStock", "ch-1").Return(nil)
		mockStore.On("CreateClaim", "user-1", "ch-1", int64(30)).Return(nil)
		mockCreditor.On("CreditReward", "user-1", int64(30), mock.AnythingOfType("string")).Return(errors.New("ledger down"))

		err := pool.processTask(task)

		assert.Error(t, err)
	})
}

func TestWorkerPool(t *testing.T) {
	t.Run("Queued task processed asynchronously", func(t *testing.T) {
		mockStore := new(MockClaimStore)
		mockCreditor := new(MockRewardCreditor)
		pool := NewWorkerPool(mockStore, mockCreditor, 2, 10)

		done := make(chan struct{})
		mockStore.On("DecreaseRewardStock", "ch-1").Return(nil)
		mockStore.On("CreateClaim", "user-1", "ch-1", int64(30)).Return(nil)
		mockCreditor.On("CreditReward", "user-1", int64(30), mock.AnythingOfType("string")).
			Run(func(mock.Arguments) { close(done) }).Return(nil)

		pool.Start()
		pool.AddTask(ClaimTask{UserID: "user-1", ChallengeID: "ch-1", RewardGems: 30})

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("task was not processed in time")
		}
		mockStore.AssertExpectations(t)
	})
}
