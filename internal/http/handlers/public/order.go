package public

import (
	"strconv"
	"strings"

	"github.com/wheat-next/internal/http/response"
	"github.com/wheat-next/internal/repository"
	"github.com/wheat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	BuyerID       string `json:"buyer_id" binding:"required"`
	BookID        uint   `json:"book_id" binding:"required"`
	Binding       string `json:"binding" binding:"required"`
	Count         int    `json:"count"`
	PaidType      string `json:"paid_type" binding:"required"`
	PromotionInfo string `json:"promotion_info"`
	DeliveryID    *uint  `json:"delivery_id"`
	Address       string `json:"address"`
	Consignee     string `json:"consignee"`
	Phone         string `json:"phone"`
	InvoiceTitle  string `json:"invoice"`
	Note          string `json:"note"`
}

// CreateOrder 创建订单并返回支付产物
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	result, err := h.OrderService.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		BuyerID:       req.BuyerID,
		BookID:        req.BookID,
		Binding:       req.Binding,
		Count:         req.Count,
		PaidType:      req.PaidType,
		PromotionInfo: req.PromotionInfo,
		DeliveryID:    req.DeliveryID,
		Address:       req.Address,
		Consignee:     req.Consignee,
		Phone:         req.Phone,
		InvoiceTitle:  req.InvoiceTitle,
		Note:          req.Note,
		ClientIP:      c.ClientIP(),
	})
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}

	response.Success(c, result)
}

// GetOrder 按订单号查询订单
func (h *Handler) GetOrder(c *gin.Context) {
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "订单号缺失", nil)
		return
	}

	order, err := h.OrderService.GetOrder(orderNo)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders 买家订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	buyerID := strings.TrimSpace(c.Query("buyer_id"))
	status := strings.TrimSpace(c.Query("status"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrders(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		BuyerID:  buyerID,
		Status:   status,
	})
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// UpdateOrderRequest 更新订单请求，缺省字段不修改
type UpdateOrderRequest struct {
	DeliveryID   *uint   `json:"delivery_id"`
	Address      *string `json:"address"`
	Consignee    *string `json:"consignee"`
	Phone        *string `json:"phone"`
	InvoiceTitle *string `json:"invoice"`
	Note         *string `json:"note"`
}

// UpdateOrder 更新订单收货与配送信息
func (h *Handler) UpdateOrder(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "订单号缺失", nil)
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	order, err := h.OrderService.UpdateOrder(orderNo, service.UpdateOrderInput{
		DeliveryID:   req.DeliveryID,
		Address:      req.Address,
		Consignee:    req.Consignee,
		Phone:        req.Phone,
		InvoiceTitle: req.InvoiceTitle,
		Note:         req.Note,
	})
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.Success(c, order)
}

// DeleteOrder 软删除订单
func (h *Handler) DeleteOrder(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "订单号缺失", nil)
		return
	}

	if err := h.OrderService.DeleteOrder(orderNo); err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.Success(c, nil)
}
