package public

import (
	"errors"

	"github.com/wheat-next/internal/http/response"
	"github.com/wheat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var pricingErrorRules = []mappedHandlerError{
	{target: service.ErrUnknownBinding, code: response.CodeBadRequest, msg: "未知的装帧类型"},
	{target: service.ErrInvalidCount, code: response.CodeBadRequest, msg: "购买数量无效"},
	{target: service.ErrBookNotFound, code: response.CodeNotFound, msg: "书籍不存在或该装帧未定价"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "订单参数缺失或无效"},
	{target: service.ErrUnknownPaidType, code: response.CodeBadRequest, msg: "不支持的支付方式"},
	{target: service.ErrUnknownBinding, code: response.CodeBadRequest, msg: "未知的装帧类型"},
	{target: service.ErrInvalidCount, code: response.CodeBadRequest, msg: "购买数量无效"},
	{target: service.ErrBookNotFound, code: response.CodeNotFound, msg: "书籍不存在或该装帧未定价"},
	{target: service.ErrCarrierNotFound, code: response.CodeNotFound, msg: "承运商不存在"},
	{target: service.ErrUpstream, code: response.CodeInternal, msg: "支付网关暂不可用，请稍后重试"},
}

var orderQueryErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "订单参数缺失或无效"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "订单不存在"},
	{target: service.ErrCarrierNotFound, code: response.CodeNotFound, msg: "承运商不存在"},
}

func respondPricingError(c *gin.Context, err error) {
	respondWithMappedError(c, err, pricingErrorRules, response.CodeInternal, "价格计算失败")
}

func respondOrderCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "订单创建失败")
}

func respondOrderQueryError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "订单操作失败")
}
