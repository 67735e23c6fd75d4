package constants

// 订单状态常量
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// 装帧类型常量
const (
	BindingLiterary  = "literary"
	BindingEconomic  = "economic"
	BindingHardcover = "hardcover"
)

// 支付方式常量
const (
	PaidTypeAlipay = "alipay"
	PaidTypeWechat = "wechat"
)

// 支付宝回调常量
const (
	AlipayTradeStatusSuccess  = "TRADE_SUCCESS"
	AlipayTradeStatusFinished = "TRADE_FINISHED"
	AlipayCallbackSuccess     = "success"
	AlipayCallbackFail        = "fail"
)

// 微信回调常量
const (
	WechatReturnCodeSuccess = "SUCCESS"
	WechatReturnCodeFail    = "FAIL"
)

// 队列常量
const (
	QueueDefault              = "default"
	TaskOrderPaidEmail        = "order:paid_email"
	TaskOrderDeliveryDispatch = "order:delivery_dispatch"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "wh"
)

// 订单号前缀
const (
	OrderNoPrefix = "WH"
)
