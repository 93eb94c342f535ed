package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gemshop_api/internal/domain/gems/client"
	usermodel "gemshop_api/internal/domain/user/model"
	"gemshop_api/internal/pkg/middleware"
)

const (
	AdjustTypeEarn  = "earn"
	AdjustTypeSpend = "spend"
)

// ErrInvalidAmount 金额为零或类型非法
var ErrInvalidAmount = errors.New("adjustment amount must be nonzero")

// UserStore 宝石模块需要的用户读写能力 (由 user 仓储提供)
// 账本账户 ID 记在用户行上，首次用到时才去账本开户
type UserStore interface {
	GetByID(id string) (*usermodel.User, error)
	UpdateLedgerUserID(userID, ledgerUserID string) error
}

type GemsService interface {
	// Adjust 按 earn/spend 语义折算符号后提交账本交易
	// 账本拒绝时错误为 *client.LedgerError，调用方原样透传
	Adjust(ctx context.Context, userID string, amount int64, adjustType, reason string, metadata map[string]interface{}) (json.RawMessage, error)

	// GetBalance 实时查询余额
	GetBalance(ctx context.Context, userID string) (json.RawMessage, error)

	// CreditReward 活动奖励入账 (挑战模块回调用)
	CreditReward(ctx context.Context, userID string, amount int64, reason string) error
}

type gemsService struct {
	ledger client.LedgerClient
	users  UserStore
}

func NewGemsService(ledger client.LedgerClient, users UserStore) GemsService {
	return &gemsService{ledger: ledger, users: users}
}

func (s *gemsService) Adjust(ctx context.Context, userID string, amount int64, adjustType, reason string, metadata map[string]interface{}) (json.RawMessage, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	// 1. 符号折算：earn 永远加，spend 永远减，客户端传的符号不作数
	delta, err := signedDelta(amount, adjustType)
	if err != nil {
		return nil, err
	}

	// 2. 账本账户 ID 从登录态对应的用户行取，不信客户端
	ledgerUserID, err := s.resolveLedgerUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3. 提交账本
	data, err := s.ledger.AdjustBalance(ctx, ledgerUserID, delta, reason, metadata)
	if err != nil {
		middleware.RecordGemAdjustment(adjustType, "error")
		return nil, err
	}

	middleware.RecordGemAdjustment(adjustType, "success")
	return data, nil
}

func (s *gemsService) GetBalance(ctx context.Context, userID string) (json.RawMessage, error) {
	ledgerUserID, err := s.resolveLedgerUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ledger.GetBalance(ctx, ledgerUserID)
}

func (s *gemsService) CreditReward(ctx context.Context, userID string, amount int64, reason string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	_, err := s.Adjust(ctx, userID, amount, AdjustTypeEarn, reason, nil)
	return err
}

// resolveLedgerUserID 惰性开户：用户行上没有账本 ID 就先去账本开一个再绑定
func (s *gemsService) resolveLedgerUserID(ctx context.Context, userID string) (string, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return "", err
	}

	if user.LedgerUserID != "" {
		return user.LedgerUserID, nil
	}

	ledgerUserID, err := s.ledger.CreateAccount(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("provision ledger account: %w", err)
	}

	if err := s.users.UpdateLedgerUserID(user.ID, ledgerUserID); err != nil {
		return "", err
	}
	return ledgerUserID, nil
}

func signedDelta(amount int64, adjustType string) (int64, error) {
	abs := amount
	if abs < 0 {
		abs = -abs
	}

	switch adjustType {
	case AdjustTypeEarn:
		return abs, nil
	case AdjustTypeSpend:
		return -abs, nil
	default:
		return 0, fmt.Errorf("unknown adjustment type %q", adjustType)
	}
}
