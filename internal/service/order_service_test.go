package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/wheat-next/internal/config"
	"github.com/wheat-next/internal/constants"
	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/payment"
	"github.com/wheat-next/internal/repository"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// stubProvider 可控的支付提供方桩
type stubProvider struct {
	name         string
	handle       *payment.Handle
	createErr    error
	notification *payment.Notification
	verifyErr    error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) CreatePayment(ctx context.Context, order *models.Order, clientIP string) (*payment.Handle, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	if p.handle != nil {
		return p.handle, nil
	}
	return &payment.Handle{Sign: "stub-sign-" + order.OrderNo}, nil
}

func (p *stubProvider) VerifyNotification(form url.Values, body []byte) (*payment.Notification, error) {
	if p.verifyErr != nil {
		return nil, p.verifyErr
	}
	return p.notification, nil
}

func (p *stubProvider) Ack(ok bool) (string, []byte) {
	if ok {
		return "text/plain", []byte(constants.AlipayCallbackSuccess)
	}
	return "text/plain", []byte(constants.AlipayCallbackFail)
}

type orderServiceEnv struct {
	svc       *OrderService
	orderRepo repository.OrderRepository
	provider  *stubProvider
	db        *gorm.DB
}

func newOrderServiceEnv(t *testing.T, name string) *orderServiceEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Book{}, &models.Order{}, &models.DeliveryCarrier{}, &models.Promotion{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db

	provider := &stubProvider{name: constants.PaidTypeAlipay}
	registry := payment.NewRegistry(provider)

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new snowflake node failed: %v", err)
	}

	bookRepo := repository.NewBookRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	carrierRepo := repository.NewCarrierRepository(db)
	pricing := NewPricingService(bookRepo, promotionRepo, config.PricingConfig{})
	svc := NewOrderService(orderRepo, carrierRepo, pricing, registry, nil, node)

	return &orderServiceEnv{svc: svc, orderRepo: orderRepo, provider: provider, db: db}
}

func (env *orderServiceEnv) createBook(t *testing.T) *models.Book {
	t.Helper()
	book := &models.Book{
		Title:          "麦田里的守望者",
		Author:         "J.D. 塞林格",
		PriceLiterary:  models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		PriceEconomic:  models.NewMoneyFromDecimal(decimal.NewFromInt(12)),
		PriceHardcover: models.NewMoneyFromDecimal(decimal.NewFromInt(58)),
	}
	if err := env.db.Create(book).Error; err != nil {
		t.Fatalf("create book failed: %v", err)
	}
	return book
}

func (env *orderServiceEnv) createCarrier(t *testing.T, name string, price int64) *models.DeliveryCarrier {
	t.Helper()
	carrier := &models.DeliveryCarrier{
		Name:  name,
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
	}
	if err := env.db.Create(carrier).Error; err != nil {
		t.Fatalf("create carrier failed: %v", err)
	}
	return carrier
}

func TestCreateOrderComputesAmountWithDelivery(t *testing.T) {
	env := newOrderServiceEnv(t, "order_create_amount")
	book := env.createBook(t)
	carrier := env.createCarrier(t, "顺丰速运", 5)

	result, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
		BuyerID:    "buyer-1",
		BookID:     book.ID,
		Binding:    constants.BindingLiterary,
		Count:      2,
		PaidType:   constants.PaidTypeAlipay,
		DeliveryID: &carrier.ID,
		Address:    "上海市徐汇区",
		Consignee:  "张三",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if result.Order.Amount.String() != "45.00" {
		t.Fatalf("expected amount 45.00, got %s", result.Order.Amount.String())
	}
	if result.Order.DeliveryPrice.String() != "5.00" {
		t.Fatalf("expected delivery price 5.00, got %s", result.Order.DeliveryPrice.String())
	}
	if result.Order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", result.Order.Status)
	}
	if !strings.HasPrefix(result.Order.OrderNo, constants.OrderNoPrefix) {
		t.Fatalf("order_no missing prefix: %s", result.Order.OrderNo)
	}
	if result.Handle == nil || result.Handle.Sign == "" {
		t.Fatalf("expected payment handle with sign")
	}

	stored, err := env.orderRepo.GetByOrderNo(result.Order.OrderNo)
	if err != nil || stored == nil {
		t.Fatalf("order not persisted: %v", err)
	}
}

func TestCreateOrderMissingFields(t *testing.T) {
	env := newOrderServiceEnv(t, "order_create_missing")

	_, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
		Binding:  constants.BindingLiterary,
		PaidType: constants.PaidTypeAlipay,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "buyer_id") || !strings.Contains(err.Error(), "book_id") {
		t.Fatalf("error should list missing fields: %v", err)
	}

	var count int64
	if err := env.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("no order row should be written, got %d", count)
	}
}

func TestCreateOrderUnknownPaidType(t *testing.T) {
	env := newOrderServiceEnv(t, "order_create_paid_type")
	book := env.createBook(t)

	_, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
		BuyerID:  "buyer-1",
		BookID:   book.ID,
		Binding:  constants.BindingLiterary,
		PaidType: "paypal",
	})
	if !errors.Is(err, ErrUnknownPaidType) {
		t.Fatalf("expected unknown paid type error, got %v", err)
	}
}

func TestCreateOrderCarrierMissing(t *testing.T) {
	env := newOrderServiceEnv(t, "order_create_carrier")
	book := env.createBook(t)
	missingID := uint(999)

	_, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
		BuyerID:    "buyer-1",
		BookID:     book.ID,
		Binding:    constants.BindingLiterary,
		PaidType:   constants.PaidTypeAlipay,
		DeliveryID: &missingID,
	})
	if !errors.Is(err, ErrCarrierNotFound) {
		t.Fatalf("expected carrier not found, got %v", err)
	}
}

func TestCreateOrderZeroCountDefaultsToOne(t *testing.T) {
	env := newOrderServiceEnv(t, "order_create_count")
	book := env.createBook(t)

	result, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
		BuyerID:  "buyer-1",
		BookID:   book.ID,
		Binding:  constants.BindingEconomic,
		PaidType: constants.PaidTypeAlipay,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if result.Order.Count != 1 {
		t.Fatalf("expected count 1, got %d", result.Order.Count)
	}
	if result.Order.Amount.String() != "12.00" {
		t.Fatalf("expected amount 12.00, got %s", result.Order.Amount.String())
	}
}

func TestCreateOrderPaymentFailureKeepsPendingOrder(t *testing.T) {
	env := newOrderServiceEnv(t, "order_create_upstream")
	book := env.createBook(t)
	env.provider.createErr = fmt.Errorf("%w: gateway timeout", payment.ErrUnavailable)

	_, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
		BuyerID:  "buyer-1",
		BookID:   book.ID,
		Binding:  constants.BindingLiterary,
		PaidType: constants.PaidTypeAlipay,
	})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	// 订单保留 pending，客户端可重试支付
	var orders []models.Order
	if err := env.db.Find(&orders).Error; err != nil {
		t.Fatalf("load orders failed: %v", err)
	}
	if len(orders) != 1 || orders[0].Status != constants.OrderStatusPending {
		t.Fatalf("expected one pending order, got %+v", orders)
	}
}

func TestUpdateOrderShippingFields(t *testing.T) {
	env := newOrderServiceEnv(t, "order_update_shipping")
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

	consignee := "李四"
	note := "工作日派送"
	updated, err := env.svc.UpdateOrder(result.Order.OrderNo, UpdateOrderInput{
		Consignee: &consignee,
		Note:      &note,
	})
	if err != nil {
		t.Fatalf("update order failed: %v", err)
	}
	if updated.Consignee != "李四" || updated.Note != "工作日派送" {
		t.Fatalf("unexpected updated order: %+v", updated)
	}
	if updated.Amount.String() != result.Order.Amount.String() {
		t.Fatalf("amount must not change on shipping update")
	}
}

func TestUpdateOrderDeliveryRecomputesAmount(t *testing.T) {
	env := newOrderServiceEnv(t, "order_update_delivery")
	book := env.createBook(t)
	cheap := env.createCarrier(t, "中通快递", 5)
	express := env.createCarrier(t, "顺丰速运", 10)

	result, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
		BuyerID:    "buyer-1",
		BookID:     book.ID,
		Binding:    constants.BindingLiterary,
		Count:      2,
		PaidType:   constants.PaidTypeAlipay,
		DeliveryID: &cheap.ID,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	updated, err := env.svc.UpdateOrder(result.Order.OrderNo, UpdateOrderInput{DeliveryID: &express.ID})
	if err != nil {
		t.Fatalf("update delivery failed: %v", err)
	}
	if updated.Amount.String() != "50.00" {
		t.Fatalf("expected amount 50.00 after carrier change, got %s", updated.Amount.String())
	}
	if updated.DeliveryPrice.String() != "10.00" {
		t.Fatalf("expected delivery price 10.00, got %s", updated.DeliveryPrice.String())
	}
}

func TestUpdateOrderDeliveryRequiresPending(t *testing.T) {
	env := newOrderServiceEnv(t, "order_update_paid")
	book := env.createBook(t)
	carrier := env.createCarrier(t, "EMS", 12)

	result, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
		BuyerID:  "buyer-1",
		BookID:   book.ID,
		Binding:  constants.BindingLiterary,
		PaidType: constants.PaidTypeAlipay,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := env.svc.ApplyPaymentNotification(result.Order.OrderNo, "trade-1"); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	_, err = env.svc.UpdateOrder(result.Order.OrderNo, UpdateOrderInput{DeliveryID: &carrier.ID})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for paid order, got %v", err)
	}
}

func TestApplyPaymentNotificationTransitionsOnce(t *testing.T) {
	env := newOrderServiceEnv(t, "order_notify_once")
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
	orderNo := result.Order.OrderNo

	first, err := env.svc.ApplyPaymentNotification(orderNo, "trade-100")
	if err != nil {
		t.Fatalf("first notification failed: %v", err)
	}
	if first.Status != constants.OrderStatusPaid {
		t.Fatalf("expected paid status, got %s", first.Status)
	}
	if first.TransactionID != "trade-100" {
		t.Fatalf("unexpected transaction_id: %s", first.TransactionID)
	}
	if first.PaidAt == nil {
		t.Fatalf("expected paid_at to be set")
	}

	// 重复通知幂等：按成功处理，流水号不被覆盖
	second, err := env.svc.ApplyPaymentNotification(orderNo, "trade-999")
	if err != nil {
		t.Fatalf("duplicate notification failed: %v", err)
	}
	if second.TransactionID != "trade-100" {
		t.Fatalf("duplicate notification must not overwrite transaction_id, got %s", second.TransactionID)
	}
}

func TestApplyPaymentNotificationUnknownOrder(t *testing.T) {
	env := newOrderServiceEnv(t, "order_notify_missing")

	if _, err := env.svc.ApplyPaymentNotification("WH-unknown", "trade-1"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}
}

func TestDeleteOrder(t *testing.T) {
	env := newOrderServiceEnv(t, "order_delete")
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
	if err := env.svc.DeleteOrder(result.Order.OrderNo); err != nil {
		t.Fatalf("delete order failed: %v", err)
	}
	if _, err := env.svc.GetOrder(result.Order.OrderNo); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected order not found after delete, got %v", err)
	}
	if err := env.svc.DeleteOrder(result.Order.OrderNo); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestListOrdersRequiresBuyerID(t *testing.T) {
	env := newOrderServiceEnv(t, "order_list")

	if _, _, err := env.svc.ListOrders(repository.OrderListFilter{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListOrdersFiltersByBuyerAndStatus(t *testing.T) {
	env := newOrderServiceEnv(t, "order_list_filter")
	book := env.createBook(t)

	for _, buyer := range []string{"buyer-1", "buyer-1", "buyer-2"} {
		if _, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
			BuyerID:  buyer,
			BookID:   book.ID,
			Binding:  constants.BindingLiterary,
			PaidType: constants.PaidTypeAlipay,
		}); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	orders, total, err := env.svc.ListOrders(repository.OrderListFilter{BuyerID: "buyer-1", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 orders for buyer-1, got total=%d len=%d", total, len(orders))
	}

	_, total, err = env.svc.ListOrders(repository.OrderListFilter{BuyerID: "buyer-1", Status: constants.OrderStatusPaid})
	if err != nil {
		t.Fatalf("list paid orders failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected no paid orders, got %d", total)
	}
}
