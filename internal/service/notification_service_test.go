package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/wheat-next/internal/constants"
	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/payment"
)

func newNotificationEnv(t *testing.T, name string) (*NotificationService, *orderServiceEnv) {
	t.Helper()
	env := newOrderServiceEnv(t, name)
	svc := NewNotificationService(env.svc, payment.NewRegistry(env.provider))
	return svc, env
}

func createPendingOrder(t *testing.T, env *orderServiceEnv) *models.Order {
	t.Helper()
	book := env.createBook(t)
	result, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
		BuyerID:  "buyer-1",
		BookID:   book.ID,
		Binding:  constants.BindingLiterary,
		PaidType: constants.PaidTypeAlipay,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return result.Order
}

func TestHandleNotificationUnknownProvider(t *testing.T) {
	svc, _ := newNotificationEnv(t, "notify_unknown_provider")

	if _, err := svc.HandleNotification("paypal", nil, nil); !errors.Is(err, ErrUnknownPaidType) {
		t.Fatalf("expected unknown paid type, got %v", err)
	}
}

func TestHandleNotificationPaidTransitionsOrder(t *testing.T) {
	svc, env := newNotificationEnv(t, "notify_paid")
	order := createPendingOrder(t, env)
	env.provider.notification = &payment.Notification{
		OrderNo: order.OrderNo,
		TradeNo: "trade-500",
		Paid:    true,
	}

	ack, err := svc.HandleNotification(constants.PaidTypeAlipay, nil, nil)
	if err != nil {
		t.Fatalf("handle notification failed: %v", err)
	}
	if string(ack.Body) != constants.AlipayCallbackSuccess {
		t.Fatalf("expected success ack, got %s", ack.Body)
	}

	stored, err := env.orderRepo.GetByOrderNo(order.OrderNo)
	if err != nil || stored == nil {
		t.Fatalf("load order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusPaid || stored.TransactionID != "trade-500" {
		t.Fatalf("unexpected order state: %+v", stored)
	}
}

func TestHandleNotificationInvalidSignatureAcksWithoutMutation(t *testing.T) {
	svc, env := newNotificationEnv(t, "notify_invalid_sign")
	order := createPendingOrder(t, env)
	env.provider.verifyErr = fmt.Errorf("%w: forged sign", payment.ErrInvalidNotification)

	ack, err := svc.HandleNotification(constants.PaidTypeAlipay, nil, nil)
	if err != nil {
		t.Fatalf("invalid signature must not surface as error: %v", err)
	}
	if string(ack.Body) != constants.AlipayCallbackSuccess {
		t.Fatalf("expected success ack for invalid signature, got %s", ack.Body)
	}

	stored, err := env.orderRepo.GetByOrderNo(order.OrderNo)
	if err != nil || stored == nil {
		t.Fatalf("load order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusPending || stored.TransactionID != "" {
		t.Fatalf("forged notification must not mutate order: %+v", stored)
	}
}

func TestHandleNotificationNotPaidAcks(t *testing.T) {
	svc, env := newNotificationEnv(t, "notify_not_paid")
	order := createPendingOrder(t, env)
	env.provider.notification = &payment.Notification{
		OrderNo: order.OrderNo,
		TradeNo: "trade-501",
		Paid:    false,
	}

	ack, err := svc.HandleNotification(constants.PaidTypeAlipay, nil, nil)
	if err != nil {
		t.Fatalf("handle notification failed: %v", err)
	}
	if string(ack.Body) != constants.AlipayCallbackSuccess {
		t.Fatalf("expected success ack, got %s", ack.Body)
	}

	stored, _ := env.orderRepo.GetByOrderNo(order.OrderNo)
	if stored.Status != constants.OrderStatusPending {
		t.Fatalf("unpaid notification must not transition order: %s", stored.Status)
	}
}

func TestHandleNotificationUnknownOrderAcks(t *testing.T) {
	svc, env := newNotificationEnv(t, "notify_unknown_order")
	env.provider.notification = &payment.Notification{
		OrderNo: "WH-not-exist",
		TradeNo: "trade-502",
		Paid:    true,
	}

	ack, err := svc.HandleNotification(constants.PaidTypeAlipay, nil, nil)
	if err != nil {
		t.Fatalf("unknown order must still be acked: %v", err)
	}
	if string(ack.Body) != constants.AlipayCallbackSuccess {
		t.Fatalf("expected success ack, got %s", ack.Body)
	}
}

func TestHandleNotificationInfraErrorReturnsNoAck(t *testing.T) {
	svc, env := newNotificationEnv(t, "notify_infra_error")
	env.provider.verifyErr = errors.New("read config: connection refused")

	ack, err := svc.HandleNotification(constants.PaidTypeAlipay, nil, nil)
	if err == nil {
		t.Fatalf("infra error must surface so the gateway retries")
	}
	if ack != nil {
		t.Fatalf("no ack should be produced on infra error")
	}
}

func TestHandleNotificationDuplicateAcks(t *testing.T) {
	svc, env := newNotificationEnv(t, "notify_duplicate")
	order := createPendingOrder(t, env)
	env.provider.notification = &payment.Notification{
		OrderNo: order.OrderNo,
		TradeNo: "trade-503",
		Paid:    true,
	}

	if _, err := svc.HandleNotification(constants.PaidTypeAlipay, nil, nil); err != nil {
		t.Fatalf("first notification failed: %v", err)
	}
	env.provider.notification.TradeNo = "trade-504"
	ack, err := svc.HandleNotification(constants.PaidTypeAlipay, nil, nil)
	if err != nil {
		t.Fatalf("duplicate notification failed: %v", err)
	}
	if string(ack.Body) != constants.AlipayCallbackSuccess {
		t.Fatalf("expected success ack for duplicate, got %s", ack.Body)
	}

	stored, _ := env.orderRepo.GetByOrderNo(order.OrderNo)
	if stored.TransactionID != "trade-503" {
		t.Fatalf("duplicate must not overwrite transaction_id, got %s", stored.TransactionID)
	}
}
