package processor

import (
	"context"
	"errors"

	"gemshop_api/internal/pkg/config"

	"github.com/wechatpay-apiv3/wechatpay-go/core"
	"github.com/wechatpay-apiv3/wechatpay-go/core/option"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments/app"
	"github.com/wechatpay-apiv3/wechatpay-go/utils"
)

// WechatProcessor 微信支付渠道 (国内版 App 使用)
type WechatProcessor struct {
	client *core.Client
	mchID  string
}

func NewWechatProcessor() (*WechatProcessor, error) {
	cfg := config.GlobalConfig.Wechat
	if cfg.MchID == "" {
		return nil, errors.New("wechat pay config missing")
	}

	// 1. 加载商户私钥
	mchPrivateKey, err := utils.LoadPrivateKey(cfg.MchPrivateKey)
	if err != nil {
		return nil, err
	}

	// 2. 初始化 Client
	ctx := context.Background()
	opts := []core.ClientOption{
		option.WithWechatPayAutoAuthCipher(cfg.MchID, cfg.MchCertificateSerial, mchPrivateKey, cfg.APIv3Key),
	}

	client, err := core.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &WechatProcessor{client: client, mchID: cfg.MchID}, nil
}

func (p *WechatProcessor) Channel() string {
	return "wechat"
}

func (p *WechatProcessor) Retrieve(ctx context.Context, paymentRef string) (*PaymentRecord, error) {
	svc := app.AppApiService{Client: p.client}

	resp, _, err := svc.QueryOrderByOutTradeNo(ctx, app.QueryOrderByOutTradeNoRequest{
		OutTradeNo: core.String(paymentRef),
		Mchid:      core.String(p.mchID),
	})
	if err != nil {
		return nil, err
	}

	status := ""
	if resp.TradeState != nil {
		status = *resp.TradeState
	}

	var amount int64
	currency := "cny"
	if resp.Amount != nil {
		if resp.Amount.Total != nil {
			amount = *resp.Amount.Total
		}
		if resp.Amount.Currency != nil {
			currency = *resp.Amount.Currency
		}
	}

	return &PaymentRecord{
		Status:    status,
		Succeeded: status == "SUCCESS",
		Amount:    amount,
		Currency:  currency,
	}, nil
}

var _ PaymentProcessor = (*WechatProcessor)(nil)
