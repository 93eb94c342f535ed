package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gemshop_api/internal/pkg/config"
)

// LedgerError 账本服务返回的非 2xx 响应
// 状态码和响应体需要原样透传给调用方，所以整体保留
type LedgerError struct {
	StatusCode int
	Body       []byte
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger service returned %d: %s", e.StatusCode, string(e.Body))
}

// AdjustmentRequest 账本交易请求
// Currencies 是按币种键控的签名增量，宝石对应键 "GEM"
type AdjustmentRequest struct {
	Currencies map[string]int64       `json:"currencies"`
	Reason     string                 `json:"reason"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

type createAccountRequest struct {
	ExternalID string `json:"externalId"`
}

type createAccountResponse struct {
	ID string `json:"id"`
}

// LedgerClient 外部虚拟货币账本服务客户端
// 账本是余额和流水的唯一事实来源，本地不落任何副本
type LedgerClient interface {
	// CreateAccount 为应用用户开一个账本账户，返回账本侧的用户 ID
	CreateAccount(ctx context.Context, externalID string) (string, error)

	// AdjustBalance 向账本提交一笔签名增量 (正数加、负数减)
	// 账本拒绝时返回 *LedgerError，其中带着原始状态码和响应体
	AdjustBalance(ctx context.Context, ledgerUserID string, delta int64, reason string, metadata map[string]interface{}) (json.RawMessage, error)

	// GetBalance 实时查询账本余额，不走缓存
	GetBalance(ctx context.Context, ledgerUserID string) (json.RawMessage, error)
}

type ledgerClient struct {
	baseURL   string
	secretKey string
	projectID string
	http      *http.Client
}

func NewLedgerClient(cfg config.LedgerConfig) LedgerClient {
	return &ledgerClient{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		projectID: cfg.ProjectID,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *ledgerClient) CreateAccount(ctx context.Context, externalID string) (string, error) {
	url := fmt.Sprintf("%s/v1/projects/%s/users", c.baseURL, c.projectID)

	raw, err := c.post(ctx, url, createAccountRequest{ExternalID: externalID})
	if err != nil {
		return "", err
	}

	var resp createAccountResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode ledger account response: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("ledger account response missing id")
	}
	return resp.ID, nil
}

func (c *ledgerClient) AdjustBalance(ctx context.Context, ledgerUserID string, delta int64, reason string, metadata map[string]interface{}) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/v1/projects/%s/users/%s/transactions", c.baseURL, c.projectID, ledgerUserID)

	return c.post(ctx, url, AdjustmentRequest{
		Currencies: map[string]int64{"GEM": delta},
		Reason:     reason,
		Metadata:   metadata,
	})
}

func (c *ledgerClient) GetBalance(ctx context.Context, ledgerUserID string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/v1/projects/%s/users/%s/balances", c.baseURL, c.projectID, ledgerUserID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *ledgerClient) post(ctx context.Context, url string, body interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *ledgerClient) do(req *http.Request) (json.RawMessage, error) {
	// 服务端密钥只出现在服务端到账本的请求里
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &LedgerError{StatusCode: resp.StatusCode, Body: raw}
	}
	return raw, nil
}

var _ LedgerClient = (*ledgerClient)(nil)
