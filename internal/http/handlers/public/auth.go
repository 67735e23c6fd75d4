package public

import (
	"errors"

	"github.com/wheat-next/internal/http/response"
	"github.com/wheat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// TokenRequest 换取访问令牌请求。
// 用户身份由上游用户服务维护，这里只签发本服务的访问令牌。
type TokenRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// CreateToken 签发访问令牌
func (h *Handler) CreateToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	token, expiresAt, err := h.AuthService.GenerateJWT(req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			respondError(c, response.CodeBadRequest, "user_id 缺失", nil)
			return
		}
		respondError(c, response.CodeInternal, "令牌签发失败", err)
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
	})
}
