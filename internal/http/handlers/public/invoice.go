package public

import (
	"errors"
	"strconv"

	"github.com/wheat-next/internal/http/response"
	"github.com/wheat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// InvoiceRequest 发票抬头写入请求
type InvoiceRequest struct {
	Title     string `json:"title" binding:"required"`
	TaxNo     string `json:"tax_no"`
	IsDefault bool   `json:"is_default"`
}

// ListInvoices 当前用户发票抬头列表
func (h *Handler) ListInvoices(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	invoices, err := h.InvoiceService.ListInvoices(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "发票抬头查询失败", err)
		return
	}
	response.Success(c, invoices)
}

// CreateInvoice 创建发票抬头
func (h *Handler) CreateInvoice(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	invoice, err := h.InvoiceService.CreateInvoice(userID, service.InvoiceInput{
		Title:     req.Title,
		TaxNo:     req.TaxNo,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		respondInvoiceError(c, err)
		return
	}
	response.Success(c, invoice)
}

// UpdateInvoice 更新发票抬头
func (h *Handler) UpdateInvoice(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "发票抬头 ID 无效", nil)
		return
	}
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	invoice, uerr := h.InvoiceService.UpdateInvoice(userID, uint(id), service.InvoiceInput{
		Title:     req.Title,
		TaxNo:     req.TaxNo,
		IsDefault: req.IsDefault,
	})
	if uerr != nil {
		respondInvoiceError(c, uerr)
		return
	}
	response.Success(c, invoice)
}

// DeleteInvoice 删除发票抬头
func (h *Handler) DeleteInvoice(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "发票抬头 ID 无效", nil)
		return
	}

	if derr := h.InvoiceService.DeleteInvoice(userID, uint(id)); derr != nil {
		respondInvoiceError(c, derr)
		return
	}
	response.Success(c, nil)
}

func respondInvoiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(c, response.CodeBadRequest, "发票抬头参数缺失或无效", nil)
	case errors.Is(err, service.ErrInvoiceNotFound):
		respondError(c, response.CodeNotFound, "发票抬头不存在", nil)
	default:
		respondError(c, response.CodeInternal, "发票抬头操作失败", err)
	}
}
