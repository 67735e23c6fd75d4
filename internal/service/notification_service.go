package service

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/wheat-next/internal/logger"
	"github.com/wheat-next/internal/payment"
)

// NotificationService 支付通知校验服务
type NotificationService struct {
	orders   *OrderService
	registry *payment.Registry
}

// NewNotificationService 创建支付通知服务
func NewNotificationService(orders *OrderService, registry *payment.Registry) *NotificationService {
	return &NotificationService{
		orders:   orders,
		registry: registry,
	}
}

// NotificationAck 回给支付网关的应答
type NotificationAck struct {
	ContentType string
	Body        []byte
}

// HandleNotification 验签并应用支付通知。
// 验签失败按网关约定应答成功但不做任何修改；基础设施故障返回错误，
// 不应答，交由网关重试。
func (s *NotificationService) HandleNotification(providerName string, form url.Values, body []byte) (*NotificationAck, error) {
	provider, ok := s.registry.Get(providerName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaidType, providerName)
	}

	notification, err := provider.VerifyNotification(form, body)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidNotification) {
			logger.Warnw("payment_notification_invalid",
				"provider", providerName,
				"error", err,
			)
			return s.ack(provider, true), nil
		}
		return nil, err
	}

	if !notification.Paid {
		logger.Debugw("payment_notification_not_paid",
			"provider", providerName,
			"order_no", notification.OrderNo,
			"trade_no", notification.TradeNo,
		)
		return s.ack(provider, true), nil
	}

	if _, err := s.orders.ApplyPaymentNotification(notification.OrderNo, notification.TradeNo); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			logger.Warnw("payment_notification_order_missing",
				"provider", providerName,
				"order_no", notification.OrderNo,
				"trade_no", notification.TradeNo,
			)
			return s.ack(provider, true), nil
		}
		return nil, err
	}

	return s.ack(provider, true), nil
}

func (s *NotificationService) ack(provider payment.Provider, ok bool) *NotificationAck {
	contentType, body := provider.Ack(ok)
	return &NotificationAck{ContentType: contentType, Body: body}
}
