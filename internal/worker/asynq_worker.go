package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wheat-next/internal/constants"
	"github.com/wheat-next/internal/logger"
	"github.com/wheat-next/internal/provider"
	"github.com/wheat-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPaidEmail, c.handleOrderPaidEmail)
	mux.HandleFunc(queue.TaskOrderDeliveryDispatch, c.handleOrderDeliveryDispatch)
}

// handleOrderPaidEmail 支付成功通知。
// 邮件投递由外部通知服务承接，这里只做状态核对并发出事件日志。
func (c *Consumer) handleOrderPaidEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_paid_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPaidEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_paid_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderNo == "" {
		logger.Debugw("worker_order_paid_email_skip_invalid_payload")
		return nil
	}
	order, err := c.OrderRepo.GetByOrderNo(payload.OrderNo)
	if err != nil {
		logger.Warnw("worker_order_paid_email_fetch_failed", "order_no", payload.OrderNo, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_paid_email_skip_order_not_found", "order_no", payload.OrderNo)
		return nil
	}
	if order.Status != constants.OrderStatusPaid {
		logger.Debugw("worker_order_paid_email_skip_not_paid", "order_no", order.OrderNo, "status", order.Status)
		return nil
	}
	logger.Infow("order_paid_notice",
		"order_no", order.OrderNo,
		"buyer_id", order.BuyerID,
		"amount", order.Amount.String(),
	)
	return nil
}

// handleOrderDeliveryDispatch 发货调度：已支付订单登记调度时间。
func (c *Consumer) handleOrderDeliveryDispatch(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_delivery_dispatch_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderDeliveryDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_delivery_dispatch_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderNo == "" {
		logger.Debugw("worker_order_delivery_dispatch_skip_invalid_payload")
		return nil
	}
	order, err := c.OrderRepo.GetByOrderNo(payload.OrderNo)
	if err != nil {
		logger.Warnw("worker_order_delivery_dispatch_fetch_failed", "order_no", payload.OrderNo, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_delivery_dispatch_skip_order_not_found", "order_no", payload.OrderNo)
		return nil
	}
	if order.Status != constants.OrderStatusPaid {
		logger.Debugw("worker_order_delivery_dispatch_skip_not_paid", "order_no", order.OrderNo, "status", order.Status)
		return nil
	}
	if order.DispatchedAt != nil {
		logger.Debugw("worker_order_delivery_dispatch_skip_dispatched", "order_no", order.OrderNo)
		return nil
	}
	now := time.Now()
	if _, err := c.OrderRepo.UpdateFields(order.OrderNo, map[string]interface{}{
		"dispatched_at": now,
	}); err != nil {
		logger.Warnw("worker_order_delivery_dispatch_update_failed", "order_no", order.OrderNo, "error", err)
		return err
	}
	logger.Infow("order_delivery_dispatched",
		"order_no", order.OrderNo,
		"delivery_id", payload.DeliveryID,
	)
	return nil
}
