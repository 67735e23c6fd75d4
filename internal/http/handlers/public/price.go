package public

import (
	"strconv"
	"strings"

	"github.com/wheat-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetPrice 计算应付金额，不创建任何记录
func (h *Handler) GetPrice(c *gin.Context) {
	bookID, err := strconv.ParseUint(c.Query("book_id"), 10, 64)
	if err != nil || bookID == 0 {
		respondError(c, response.CodeBadRequest, "book_id 无效", nil)
		return
	}
	binding := strings.TrimSpace(c.Query("binding"))
	count, err := strconv.Atoi(c.DefaultQuery("count", "1"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "count 无效", nil)
		return
	}
	promotionInfo := strings.TrimSpace(c.Query("promotion_info"))

	amount, perr := h.PricingService.ComputePrice(c.Request.Context(), uint(bookID), binding, count, promotionInfo)
	if perr != nil {
		respondPricingError(c, perr)
		return
	}

	response.Success(c, gin.H{
		"book_id": bookID,
		"binding": binding,
		"count":   count,
		"amount":  amount,
	})
}
