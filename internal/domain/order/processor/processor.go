package processor

import "context"

// PaymentRecord 支付渠道侧的支付记录快照
type PaymentRecord struct {
	// Status 渠道原始状态串，核销失败时原样返回给客户端
	Status string
	// Succeeded 渠道是否已确认收款
	Succeeded bool
	// Amount 金额，最小货币单位（分）
	Amount int64
	// Currency 货币代码，如 usd / cny
	Currency string
	// CustomerEmail 渠道记录的买家邮箱（部分渠道不提供）
	CustomerEmail string
}

// PaymentProcessor 支付渠道查询接口
type PaymentProcessor interface {
	// Channel 渠道标识 (stripe / alipay / wechat)
	Channel() string

	// Retrieve 按支付凭证号查询渠道侧支付记录
	Retrieve(ctx context.Context, paymentRef string) (*PaymentRecord, error)
}
