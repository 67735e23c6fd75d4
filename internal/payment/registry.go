package payment

import (
	"context"
	"errors"
	"net/url"
	"sort"

	"github.com/wheat-next/internal/models"
)

var (
	// ErrInvalidNotification 通知验签失败或报文非法（伪造通知按此处理）
	ErrInvalidNotification = errors.New("payment notification invalid")
	// ErrUnavailable 网关不可用或超时，可重试
	ErrUnavailable = errors.New("payment gateway unavailable")
)

// Handle 下单产物：支付宝返回签名串，微信返回 prepay_id，二者互斥。
type Handle struct {
	Sign     string `json:"sign,omitempty"`
	PrepayID string `json:"prepay_id,omitempty"`
}

// Notification 经验证的支付通知要素。
type Notification struct {
	OrderNo string
	TradeNo string
	Paid    bool
}

// Provider 支付网关能力集 {下单签名, 通知验签, 应答}。
type Provider interface {
	Name() string
	CreatePayment(ctx context.Context, order *models.Order, clientIP string) (*Handle, error)
	VerifyNotification(form url.Values, body []byte) (*Notification, error)
	Ack(ok bool) (contentType string, body []byte)
}

// Registry 启动时装配的 paid_type -> Provider 映射。
type Registry struct {
	providers map[string]Provider
}

// NewRegistry 创建支付提供方注册表
func NewRegistry(providers ...Provider) *Registry {
	registry := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, provider := range providers {
		if provider == nil {
			continue
		}
		registry.providers[provider.Name()] = provider
	}
	return registry
}

// Get 按支付方式查找提供方
func (r *Registry) Get(paidType string) (Provider, bool) {
	if r == nil {
		return nil, false
	}
	provider, ok := r.providers[paidType]
	return provider, ok
}

// Names 已注册的支付方式列表
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
