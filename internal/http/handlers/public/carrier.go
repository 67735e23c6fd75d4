package public

import (
	"errors"

	"github.com/wheat-next/internal/http/response"
	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCarriers 承运商列表
func (h *Handler) ListCarriers(c *gin.Context) {
	carriers, err := h.CarrierService.ListCarriers()
	if err != nil {
		respondError(c, response.CodeInternal, "承运商查询失败", err)
		return
	}
	response.Success(c, carriers)
}

// CreateCarrierRequest 创建承运商请求
type CreateCarrierRequest struct {
	Name  string       `json:"name" binding:"required"`
	Price models.Money `json:"price"`
}

// CreateCarrier 创建承运商
func (h *Handler) CreateCarrier(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}
	var req CreateCarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	carrier, err := h.CarrierService.CreateCarrier(req.Name, req.Price)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			respondError(c, response.CodeBadRequest, "承运商参数无效", nil)
			return
		}
		respondError(c, response.CodeInternal, "承运商创建失败", err)
		return
	}
	response.Success(c, carrier)
}
