package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/wheat-next/internal/constants"
	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/payment/alipay"
)

// AlipayProvider 支付宝提供方
type AlipayProvider struct {
	cfg *alipay.Config
}

// NewAlipayProvider 创建支付宝提供方
func NewAlipayProvider(cfg *alipay.Config) *AlipayProvider {
	return &AlipayProvider{cfg: cfg}
}

// Name 支付方式标识
func (p *AlipayProvider) Name() string {
	return constants.PaidTypeAlipay
}

// CreatePayment 生成移动端支付签名串
func (p *AlipayProvider) CreatePayment(ctx context.Context, order *models.Order, clientIP string) (*Handle, error) {
	sign, err := alipay.CreateSign(p.cfg, alipay.CreateInput{
		OrderNo: order.OrderNo,
		Amount:  order.Amount.String(),
		Subject: fmt.Sprintf("book-%d", order.BookID),
	})
	if err != nil {
		if errors.Is(err, alipay.ErrConfigInvalid) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Handle{Sign: sign}, nil
}

// VerifyNotification 验证表单回调
func (p *AlipayProvider) VerifyNotification(form url.Values, _ []byte) (*Notification, error) {
	notification, err := alipay.VerifyNotification(p.cfg, form)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotification, err)
	}
	return &Notification{
		OrderNo: notification.OutTradeNo,
		TradeNo: notification.TradeNo,
		Paid:    notification.Paid(),
	}, nil
}

// Ack 生成回调应答
func (p *AlipayProvider) Ack(ok bool) (string, []byte) {
	if ok {
		return "text/plain", []byte(constants.AlipayCallbackSuccess)
	}
	return "text/plain", []byte(constants.AlipayCallbackFail)
}
