package service

import "errors"

var (
	// ErrValidation 输入校验失败，包装缺失字段明细
	ErrValidation = errors.New("validation failed")
	// ErrUnknownBinding 未知装帧类型
	ErrUnknownBinding = errors.New("unknown binding")
	// ErrInvalidCount 购买数量非法
	ErrInvalidCount = errors.New("invalid count")
	// ErrUnknownPaidType 未知支付方式
	ErrUnknownPaidType = errors.New("unknown paid type")
	// ErrBookNotFound 书籍不存在或该装帧未定价
	ErrBookNotFound = errors.New("book not found")
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("order not found")
	// ErrCarrierNotFound 承运商不存在
	ErrCarrierNotFound = errors.New("carrier not found")
	// ErrAddressNotFound 收货地址不存在
	ErrAddressNotFound = errors.New("address not found")
	// ErrInvoiceNotFound 发票抬头不存在
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrUpstream 支付网关下单失败，订单保持待支付可重试
	ErrUpstream = errors.New("payment upstream failed")
	// ErrInvalidToken 无效的登录凭证
	ErrInvalidToken = errors.New("invalid token")
)
