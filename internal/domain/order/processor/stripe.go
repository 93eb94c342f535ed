package processor

import (
	"context"
	"errors"

	"gemshop_api/internal/pkg/config"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProcessor 通过 PaymentIntent 查询支付状态
// 客户端在 App 内创建 PaymentIntent 并完成支付，服务端只做核销
type StripeProcessor struct {
	client *client.API
}

func NewStripeProcessor() (*StripeProcessor, error) {
	cfg := config.GlobalConfig.Stripe
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe config missing")
	}

	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)

	return &StripeProcessor{client: sc}, nil
}

func (p *StripeProcessor) Channel() string {
	return "stripe"
}

func (p *StripeProcessor) Retrieve(ctx context.Context, paymentRef string) (*PaymentRecord, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := p.client.PaymentIntents.Get(paymentRef, params)
	if err != nil {
		return nil, err
	}

	return &PaymentRecord{
		Status:        string(pi.Status),
		Succeeded:     pi.Status == stripe.PaymentIntentStatusSucceeded,
		Amount:        pi.Amount,
		Currency:      string(pi.Currency),
		CustomerEmail: pi.ReceiptEmail,
	}, nil
}

// 确保实现了接口
var _ PaymentProcessor = (*StripeProcessor)(nil)
