package public

import (
	"io"
	"net/http"

	"github.com/wheat-next/internal/constants"
	handlershared "github.com/wheat-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// NotifyWechat 微信支付异步通知入口，报文与应答均为 XML。
func (h *Handler) NotifyWechat(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		handlershared.RequestLog(c).Warnw("wechat_callback_body_read_failed", "error", err)
		h.respondWechatFail(c, http.StatusOK)
		return
	}

	ack, err := h.NotificationService.HandleNotification(constants.PaidTypeWechat, nil, body)
	if err != nil {
		handlershared.RequestLog(c).Errorw("wechat_callback_failed", "error", err)
		h.respondWechatFail(c, http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, ack.ContentType, ack.Body)
}

func (h *Handler) respondWechatFail(c *gin.Context, status int) {
	provider, ok := h.PaymentRegistry.Get(constants.PaidTypeWechat)
	if !ok {
		c.String(status, "fail")
		return
	}
	contentType, body := provider.Ack(false)
	c.Data(status, contentType, body)
}
