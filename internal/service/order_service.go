package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wheat-next/internal/constants"
	"github.com/wheat-next/internal/logger"
	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/payment"
	"github.com/wheat-next/internal/queue"
	"github.com/wheat-next/internal/repository"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	carrierRepo repository.CarrierRepository
	pricing     *PricingService
	registry    *payment.Registry
	queueClient *queue.Client
	node        *snowflake.Node
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, carrierRepo repository.CarrierRepository, pricing *PricingService, registry *payment.Registry, queueClient *queue.Client, node *snowflake.Node) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		carrierRepo: carrierRepo,
		pricing:     pricing,
		registry:    registry,
		queueClient: queueClient,
		node:        node,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	BuyerID       string
	BookID        uint
	Binding       string
	Count         int
	PaidType      string
	PromotionInfo string
	DeliveryID    *uint
	Address       string
	Consignee     string
	Phone         string
	InvoiceTitle  string
	Note          string
	ClientIP      string
}

// CreateOrderResult 创建订单结果：订单加支付产物（sign 或 prepay_id，二选一）
type CreateOrderResult struct {
	Order  *models.Order   `json:"order"`
	Handle *payment.Handle `json:"payment"`
}

// CreateOrder 创建待支付订单并向支付网关下单。
// 网关失败时订单保留 pending，客户端可重试支付。
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	if err := validateCreateOrder(input); err != nil {
		return nil, err
	}
	provider, ok := s.registry.Get(input.PaidType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaidType, input.PaidType)
	}

	count := input.Count
	if count == 0 {
		count = 1
	}
	amount, err := s.pricing.ComputePrice(ctx, input.BookID, input.Binding, count, input.PromotionInfo)
	if err != nil {
		return nil, err
	}

	deliveryPrice := models.Money{}
	if input.DeliveryID != nil {
		carrier, err := s.carrierRepo.GetByID(*input.DeliveryID)
		if err != nil {
			return nil, err
		}
		if carrier == nil {
			return nil, ErrCarrierNotFound
		}
		deliveryPrice = carrier.Price
	}

	order := &models.Order{
		OrderNo:       constants.OrderNoPrefix + s.node.Generate().String(),
		BuyerID:       strings.TrimSpace(input.BuyerID),
		BookID:        input.BookID,
		Binding:       input.Binding,
		Count:         count,
		Amount:        amount.Add(deliveryPrice),
		Address:       strings.TrimSpace(input.Address),
		Consignee:     strings.TrimSpace(input.Consignee),
		Phone:         strings.TrimSpace(input.Phone),
		InvoiceTitle:  strings.TrimSpace(input.InvoiceTitle),
		Note:          strings.TrimSpace(input.Note),
		PaidType:      input.PaidType,
		DeliveryID:    input.DeliveryID,
		DeliveryPrice: deliveryPrice,
		Status:        constants.OrderStatusPending,
	}

	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order)
	}); err != nil {
		return nil, err
	}

	logger.Infow("order_created",
		"order_no", order.OrderNo,
		"buyer_id", order.BuyerID,
		"paid_type", order.PaidType,
		"amount", order.Amount.String(),
	)

	handle, err := provider.CreatePayment(ctx, order, input.ClientIP)
	if err != nil {
		logger.Warnw("order_payment_create_failed",
			"order_no", order.OrderNo,
			"paid_type", order.PaidType,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return &CreateOrderResult{Order: order, Handle: handle}, nil
}

// validateCreateOrder 校验必填字段，缺失项合并进错误信息
func validateCreateOrder(input CreateOrderInput) error {
	var missing []string
	if strings.TrimSpace(input.BuyerID) == "" {
		missing = append(missing, "buyer_id")
	}
	if input.BookID == 0 {
		missing = append(missing, "book_id")
	}
	if strings.TrimSpace(input.PaidType) == "" {
		missing = append(missing, "paid_type")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// GetOrder 按订单号查询
func (s *OrderService) GetOrder(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateOrderInput 更新订单输入，nil 表示不修改
type UpdateOrderInput struct {
	DeliveryID   *uint
	Address      *string
	Consignee    *string
	Phone        *string
	InvoiceTitle *string
	Note         *string
}

// UpdateOrder 更新收货与配送信息。
// 状态与金额不接受外部写入；换承运商只允许待支付订单，运费差额同步进总额。
func (s *OrderService) UpdateOrder(orderNo string, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.GetOrder(orderNo)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Address != nil {
		updates["address"] = strings.TrimSpace(*input.Address)
	}
	if input.Consignee != nil {
		updates["consignee"] = strings.TrimSpace(*input.Consignee)
	}
	if input.Phone != nil {
		updates["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.InvoiceTitle != nil {
		updates["invoice_title"] = strings.TrimSpace(*input.InvoiceTitle)
	}
	if input.Note != nil {
		updates["note"] = strings.TrimSpace(*input.Note)
	}
	if input.DeliveryID != nil {
		if order.Status != constants.OrderStatusPending {
			return nil, fmt.Errorf("%w: delivery change requires pending order", ErrValidation)
		}
		carrier, err := s.carrierRepo.GetByID(*input.DeliveryID)
		if err != nil {
			return nil, err
		}
		if carrier == nil {
			return nil, ErrCarrierNotFound
		}
		updates["delivery_id"] = *input.DeliveryID
		updates["delivery_price"] = carrier.Price
		updates["amount"] = models.NewMoneyFromDecimal(order.Amount.Decimal.Sub(order.DeliveryPrice.Decimal).Add(carrier.Price.Decimal))
	}

	ok, err := s.orderRepo.UpdateFields(orderNo, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOrderNotFound
	}
	return s.GetOrder(orderNo)
}

// DeleteOrder 软删除订单
func (s *OrderService) DeleteOrder(orderNo string) error {
	ok, err := s.orderRepo.SoftDelete(orderNo)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotFound
	}
	logger.Infow("order_deleted", "order_no", orderNo)
	return nil
}

// ListOrders 买家订单列表
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if strings.TrimSpace(filter.BuyerID) == "" {
		return nil, 0, fmt.Errorf("%w: missing buyer_id", ErrValidation)
	}
	return s.orderRepo.ListByBuyer(filter)
}

// ApplyPaymentNotification 将经验证的支付通知落到订单上。
// 条件更新保证并发重复通知下只发生一次 pending -> paid 转移；
// 已支付订单重复通知按成功返回，不做任何修改。
func (s *OrderService) ApplyPaymentNotification(orderNo, tradeNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == constants.OrderStatusPaid {
		logger.Debugw("order_notification_duplicate", "order_no", orderNo, "trade_no", tradeNo)
		return order, nil
	}

	now := time.Now()
	won, err := s.orderRepo.MarkPaid(orderNo, tradeNo, now)
	if err != nil {
		return nil, err
	}
	if !won {
		// 条件更新未命中：并发通知已完成转移，回读确认
		order, err = s.orderRepo.GetByOrderNo(orderNo)
		if err != nil {
			return nil, err
		}
		if order == nil || order.Status != constants.OrderStatusPaid {
			return nil, ErrOrderNotFound
		}
		return order, nil
	}

	logger.Infow("order_paid",
		"order_no", orderNo,
		"trade_no", tradeNo,
		"paid_at", now,
	)
	s.enqueuePostPaidTasks(order, orderNo)

	return s.GetOrder(orderNo)
}

func (s *OrderService) enqueuePostPaidTasks(order *models.Order, orderNo string) {
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderPaidEmail(queue.OrderPaidEmailPayload{
		OrderNo: orderNo,
		BuyerID: order.BuyerID,
	}); err != nil {
		logger.Warnw("order_paid_email_enqueue_failed", "order_no", orderNo, "error", err)
	}
	if order.DeliveryID == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderDeliveryDispatch(queue.OrderDeliveryDispatchPayload{
		OrderNo:    orderNo,
		DeliveryID: *order.DeliveryID,
	}); err != nil {
		logger.Warnw("order_delivery_dispatch_enqueue_failed", "order_no", orderNo, "error", err)
	}
}
