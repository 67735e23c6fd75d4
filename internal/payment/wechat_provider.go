package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/wheat-next/internal/constants"
	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/payment/wechatpay"

	"github.com/shopspring/decimal"
)

// WechatProvider 微信支付提供方
type WechatProvider struct {
	cfg *wechatpay.Config
}

// NewWechatProvider 创建微信支付提供方
func NewWechatProvider(cfg *wechatpay.Config) *WechatProvider {
	return &WechatProvider{cfg: cfg}
}

// Name 支付方式标识
func (p *WechatProvider) Name() string {
	return constants.PaidTypeWechat
}

// CreatePayment 统一下单获取 prepay_id
func (p *WechatProvider) CreatePayment(ctx context.Context, order *models.Order, clientIP string) (*Handle, error) {
	prepayID, err := wechatpay.CreatePrepay(ctx, p.cfg, wechatpay.CreateInput{
		OrderNo:   order.OrderNo,
		AmountFen: amountToFen(order.Amount),
		Body:      fmt.Sprintf("book-%d", order.BookID),
		ClientIP:  clientIP,
	})
	if err != nil {
		if errors.Is(err, wechatpay.ErrConfigInvalid) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Handle{PrepayID: prepayID}, nil
}

// VerifyNotification 验证 XML 回调
func (p *WechatProvider) VerifyNotification(_ url.Values, body []byte) (*Notification, error) {
	notification, err := wechatpay.VerifyNotification(p.cfg, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotification, err)
	}
	return &Notification{
		OrderNo: notification.OutTradeNo,
		TradeNo: notification.TransactionID,
		Paid:    notification.Paid(),
	}, nil
}

// Ack 生成 XML 应答
func (p *WechatProvider) Ack(ok bool) (string, []byte) {
	return "application/xml", wechatpay.AckXML(ok)
}

// amountToFen 金额元转分
func amountToFen(amount models.Money) int64 {
	return amount.Decimal.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
