package payment

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/wheat-next/internal/constants"
	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/payment/alipay"
	"github.com/wheat-next/internal/payment/wechatpay"

	"github.com/shopspring/decimal"
)

func TestRegistryGetAndNames(t *testing.T) {
	registry := NewRegistry(
		NewAlipayProvider(buildAlipayConfig()),
		NewWechatProvider(buildWechatConfig("")),
		nil,
	)

	names := registry.Names()
	if len(names) != 2 || names[0] != constants.PaidTypeAlipay || names[1] != constants.PaidTypeWechat {
		t.Fatalf("unexpected names: %v", names)
	}

	if _, ok := registry.Get(constants.PaidTypeAlipay); !ok {
		t.Fatalf("alipay provider missing")
	}
	if _, ok := registry.Get("paypal"); ok {
		t.Fatalf("unexpected provider for unknown paid_type")
	}

	var nilRegistry *Registry
	if _, ok := nilRegistry.Get(constants.PaidTypeAlipay); ok {
		t.Fatalf("nil registry should miss")
	}
}

func TestAlipayProviderCreatePaymentReturnsSign(t *testing.T) {
	provider := NewAlipayProvider(buildAlipayConfig())
	order := &models.Order{
		OrderNo: "WH5000001",
		BookID:  7,
		Amount:  models.NewMoneyFromDecimal(decimal.NewFromFloat(45.00)),
	}

	handle, err := provider.CreatePayment(context.Background(), order, "203.0.113.9")
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	if handle.Sign == "" {
		t.Fatalf("expected sign in handle")
	}
	if handle.PrepayID != "" {
		t.Fatalf("alipay handle must not carry prepay_id")
	}
	if !strings.Contains(handle.Sign, `out_trade_no="WH5000001"`) {
		t.Fatalf("sign missing order_no: %s", handle.Sign)
	}
}

func TestWechatProviderCreatePaymentReturnsPrepayID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]string{
			"return_code": constants.WechatReturnCodeSuccess,
			"result_code": constants.WechatReturnCodeSuccess,
			"prepay_id":   "wx20260831000777",
		}
		response["sign"] = wechatpay.SignParams(response, buildWechatConfig("").APIKey)
		_, _ = w.Write(encodeTestXML(response))
	}))
	defer server.Close()

	provider := NewWechatProvider(buildWechatConfig(server.URL))
	order := &models.Order{
		OrderNo: "WH5000002",
		BookID:  7,
		Amount:  models.NewMoneyFromDecimal(decimal.NewFromFloat(10.50)),
	}

	handle, err := provider.CreatePayment(context.Background(), order, "203.0.113.9")
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	if handle.PrepayID != "wx20260831000777" {
		t.Fatalf("unexpected prepay_id: %s", handle.PrepayID)
	}
	if handle.Sign != "" {
		t.Fatalf("wechat handle must not carry sign")
	}
}

func TestWechatProviderGatewayDownWrapsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := NewWechatProvider(buildWechatConfig(server.URL))
	order := &models.Order{
		OrderNo: "WH5000003",
		BookID:  7,
		Amount:  models.NewMoneyFromDecimal(decimal.NewFromFloat(1.00)),
	}

	_, err := provider.CreatePayment(context.Background(), order, "203.0.113.9")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestAlipayProviderVerifyNotificationWrapsInvalid(t *testing.T) {
	provider := NewAlipayProvider(buildAlipayConfig())
	form := url.Values{
		"out_trade_no": {"WH5000004"},
		"trade_no":     {"20260831000123"},
		"trade_status": {constants.AlipayTradeStatusSuccess},
		"sign":         {"forged"},
		"sign_type":    {"RSA2"},
	}
	if _, err := provider.VerifyNotification(form, nil); !errors.Is(err, ErrInvalidNotification) {
		t.Fatalf("expected ErrInvalidNotification, got %v", err)
	}
}

func TestProviderAck(t *testing.T) {
	alipayProvider := NewAlipayProvider(buildAlipayConfig())
	contentType, body := alipayProvider.Ack(true)
	if contentType != "text/plain" || string(body) != constants.AlipayCallbackSuccess {
		t.Fatalf("unexpected alipay ack: %s %s", contentType, body)
	}
	_, body = alipayProvider.Ack(false)
	if string(body) != constants.AlipayCallbackFail {
		t.Fatalf("unexpected alipay fail ack: %s", body)
	}

	wechatProvider := NewWechatProvider(buildWechatConfig(""))
	contentType, body = wechatProvider.Ack(true)
	if contentType != "application/xml" || !strings.Contains(string(body), "SUCCESS") {
		t.Fatalf("unexpected wechat ack: %s %s", contentType, body)
	}
}

func TestAmountToFen(t *testing.T) {
	cases := []struct {
		amount string
		fen    int64
	}{
		{"0.01", 1},
		{"1.00", 100},
		{"45.00", 4500},
		{"10.50", 1050},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("parse amount failed: %v", err)
		}
		if got := amountToFen(models.NewMoneyFromDecimal(amount)); got != tc.fen {
			t.Fatalf("amountToFen(%s) = %d, want %d", tc.amount, got, tc.fen)
		}
	}
}

func buildAlipayConfig() *alipay.Config {
	return &alipay.Config{
		AppID:           "2026000000000000",
		PartnerID:       "2088000000000001",
		SellerEmail:     "seller@example.com",
		PrivateKey:      testPrivateKeyPEM,
		AlipayPublicKey: testPublicKeyPEM,
		SignType:        "RSA2",
		NotifyURL:       "https://example.com/api/v1/orders/notify",
	}
}

func buildWechatConfig(gatewayURL string) *wechatpay.Config {
	return &wechatpay.Config{
		AppID:      "wx1234567890",
		MchID:      "1900000109",
		APIKey:     "1234567890abcdef1234567890abcdef",
		NotifyURL:  "https://example.com/api/v1/orders/wxnotify",
		GatewayURL: gatewayURL,
		TimeoutMS:  3000,
	}
}

func encodeTestXML(params map[string]string) []byte {
	var builder strings.Builder
	builder.WriteString("<xml>")
	for key, value := range params {
		builder.WriteString("<" + key + "><![CDATA[" + value + "]]></" + key + ">")
	}
	builder.WriteString("</xml>")
	return []byte(builder.String())
}

var (
	testPrivateKeyPEM, testPublicKeyPEM = generateTestKeyPair()
)

func generateTestKeyPair() (string, string) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	privateKeyDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		panic(err)
	}
	publicKeyDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		panic(err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateKeyDER})),
		string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicKeyDER}))
}
