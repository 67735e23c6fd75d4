package public

import (
	"errors"
	"strconv"

	"github.com/wheat-next/internal/http/response"
	"github.com/wheat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 地址写入请求
type AddressRequest struct {
	Consignee string `json:"consignee" binding:"required"`
	Phone     string `json:"phone"`
	Detail    string `json:"detail" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

// ListAddresses 当前用户地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addresses, err := h.AddressService.ListAddresses(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "地址查询失败", err)
		return
	}
	response.Success(c, addresses)
}

// CreateAddress 创建地址
func (h *Handler) CreateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	address, err := h.AddressService.CreateAddress(userID, service.AddressInput{
		Consignee: req.Consignee,
		Phone:     req.Phone,
		Detail:    req.Detail,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, address)
}

// UpdateAddress 更新地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "地址 ID 无效", nil)
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	address, uerr := h.AddressService.UpdateAddress(userID, uint(id), service.AddressInput{
		Consignee: req.Consignee,
		Phone:     req.Phone,
		Detail:    req.Detail,
		IsDefault: req.IsDefault,
	})
	if uerr != nil {
		respondAddressError(c, uerr)
		return
	}
	response.Success(c, address)
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "地址 ID 无效", nil)
		return
	}

	if derr := h.AddressService.DeleteAddress(userID, uint(id)); derr != nil {
		respondAddressError(c, derr)
		return
	}
	response.Success(c, nil)
}

func respondAddressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(c, response.CodeBadRequest, "地址参数缺失或无效", nil)
	case errors.Is(err, service.ErrAddressNotFound):
		respondError(c, response.CodeNotFound, "地址不存在", nil)
	default:
		respondError(c, response.CodeInternal, "地址操作失败", err)
	}
}
