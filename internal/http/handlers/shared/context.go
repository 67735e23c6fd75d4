package shared

import (
	"strings"

	"github.com/wheat-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUserID 从上下文读取登录用户 ID，缺失时统一返回未认证响应。
func GetContextUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		RespondError(c, response.CodeUnauthorized, "未登录或登录已过期", nil)
		return "", false
	}
	id, ok := value.(string)
	if !ok || strings.TrimSpace(id) == "" {
		RespondError(c, response.CodeUnauthorized, "未登录或登录已过期", nil)
		return "", false
	}
	return id, true
}
