package public

import (
	"net/http"

	"github.com/wheat-next/internal/constants"
	handlershared "github.com/wheat-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// NotifyAlipay 支付宝异步通知入口。
// 验签与落单交给通知服务；基础设施故障时不应答 success，等网关重试。
func (h *Handler) NotifyAlipay(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		handlershared.RequestLog(c).Warnw("alipay_callback_form_invalid", "error", err)
		c.String(http.StatusOK, constants.AlipayCallbackFail)
		return
	}

	ack, err := h.NotificationService.HandleNotification(constants.PaidTypeAlipay, c.Request.Form, nil)
	if err != nil {
		handlershared.RequestLog(c).Errorw("alipay_callback_failed", "error", err)
		c.String(http.StatusInternalServerError, constants.AlipayCallbackFail)
		return
	}
	c.Data(http.StatusOK, ack.ContentType, ack.Body)
}
