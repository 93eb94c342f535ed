package processor

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gemshop_api/internal/pkg/config"

	"github.com/smartwalle/alipay/v3"
)

// AlipayProcessor 支付宝渠道 (国内版 App 使用)
type AlipayProcessor struct {
	client *alipay.Client
}

func NewAlipayProcessor() (*AlipayProcessor, error) {
	cfg := config.GlobalConfig.Alipay
	if cfg.AppID == "" {
		return nil, errors.New("alipay config missing")
	}

	client, err := alipay.New(cfg.AppID, cfg.PrivateKey, cfg.IsProduction)
	if err != nil {
		return nil, err
	}

	// 加载支付宝公钥 (用于验证签名)
	if err = client.LoadAliPayPublicKey(cfg.PublicKey); err != nil {
		return nil, err
	}

	return &AlipayProcessor{client: client}, nil
}

func (p *AlipayProcessor) Channel() string {
	return "alipay"
}

func (p *AlipayProcessor) Retrieve(ctx context.Context, paymentRef string) (*PaymentRecord, error) {
	rsp, err := p.client.TradeQuery(ctx, alipay.TradeQuery{
		OutTradeNo: paymentRef,
	})
	if err != nil {
		return nil, err
	}
	if !rsp.IsSuccess() {
		return nil, fmt.Errorf("alipay trade query failed: %s", rsp.SubMsg)
	}

	// TRADE_SUCCESS 或 TRADE_FINISHED 表示成功
	succeeded := rsp.TradeStatus == alipay.TradeStatusSuccess ||
		rsp.TradeStatus == alipay.TradeStatusFinished

	// 支付宝金额是元，转成分
	amountYuan, _ := strconv.ParseFloat(rsp.TotalAmount, 64)

	return &PaymentRecord{
		Status:    string(rsp.TradeStatus),
		Succeeded: succeeded,
		Amount:    int64(amountYuan * 100),
		Currency:  "cny",
	}, nil
}

var _ PaymentProcessor = (*AlipayProcessor)(nil)
