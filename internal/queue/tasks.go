package queue

import (
	"encoding/json"

	"github.com/wheat-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPaidEmail 订单支付成功邮件通知任务
	TaskOrderPaidEmail = constants.TaskOrderPaidEmail
	// TaskOrderDeliveryDispatch 订单发货调度任务
	TaskOrderDeliveryDispatch = constants.TaskOrderDeliveryDispatch
)

// OrderPaidEmailPayload 支付成功邮件任务载荷
type OrderPaidEmailPayload struct {
	OrderNo string `json:"order_no"`
	BuyerID string `json:"buyer_id"`
}

// OrderDeliveryDispatchPayload 发货调度任务载荷
type OrderDeliveryDispatchPayload struct {
	OrderNo    string `json:"order_no"`
	DeliveryID uint   `json:"delivery_id"`
}

// NewOrderPaidEmailTask 创建支付成功邮件任务
func NewOrderPaidEmailTask(payload OrderPaidEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPaidEmail, body), nil
}

// NewOrderDeliveryDispatchTask 创建发货调度任务
func NewOrderDeliveryDispatchTask(payload OrderDeliveryDispatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderDeliveryDispatch, body), nil
}
