package wechatpay

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/wheat-next/internal/constants"

	"github.com/google/uuid"
)

var (
	ErrConfigInvalid      = errors.New("wechatpay config invalid")
	ErrRequestFailed      = errors.New("wechatpay request failed")
	ErrResponseInvalid    = errors.New("wechatpay response invalid")
	ErrSignatureInvalid   = errors.New("wechatpay signature invalid")
	ErrNotifyInvalid      = errors.New("wechatpay notify invalid")
	ErrGatewayUnavailable = errors.New("wechatpay gateway unavailable")
)

const defaultTimeout = 12 * time.Second
const defaultGatewayURL = "https://api.mch.weixin.qq.com/pay/unifiedorder"

// Config 微信支付渠道配置（v2 商户接口）。
type Config struct {
	AppID      string
	MchID      string
	APIKey     string
	NotifyURL  string
	GatewayURL string
	TimeoutMS  int
}

// CreateInput 统一下单输入。
type CreateInput struct {
	OrderNo   string
	AmountFen int64 // 总金额，单位分
	Body      string
	ClientIP  string
}

// Notification 回调验签结果。
type Notification struct {
	OutTradeNo    string
	TransactionID string
	ResultCode    string
	TotalFeeFen   int64
	Raw           map[string]string
}

// Paid 判断回调是否为支付成功。
func (n *Notification) Paid() bool {
	return n != nil && n.ResultCode == constants.WechatReturnCodeSuccess
}

// ValidateConfig 校验配置完整性。
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.AppID) == "" {
		return fmt.Errorf("%w: app_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.MchID) == "" {
		return fmt.Errorf("%w: mch_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return fmt.Errorf("%w: api_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.NotifyURL) == "" {
		return fmt.Errorf("%w: notify_url is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(cfg.NotifyURL)); err != nil {
		return fmt.Errorf("%w: notify_url is invalid", ErrConfigInvalid)
	}
	return nil
}

// CreatePrepay 调用统一下单接口获取 prepay_id。
func CreatePrepay(ctx context.Context, cfg *Config, input CreateInput) (string, error) {
	if err := ValidateConfig(cfg); err != nil {
		return "", err
	}
	input.OrderNo = strings.TrimSpace(input.OrderNo)
	if input.OrderNo == "" {
		return "", fmt.Errorf("%w: order_no is required", ErrConfigInvalid)
	}
	if input.AmountFen <= 0 {
		return "", fmt.Errorf("%w: amount is invalid", ErrConfigInvalid)
	}
	body := strings.TrimSpace(input.Body)
	if body == "" {
		body = input.OrderNo
	}
	clientIP := strings.TrimSpace(input.ClientIP)
	if clientIP == "" {
		clientIP = "127.0.0.1"
	}

	params := map[string]string{
		"appid":            strings.TrimSpace(cfg.AppID),
		"mch_id":           strings.TrimSpace(cfg.MchID),
		"nonce_str":        strings.ReplaceAll(uuid.NewString(), "-", ""),
		"body":             body,
		"out_trade_no":     input.OrderNo,
		"total_fee":        fmt.Sprintf("%d", input.AmountFen),
		"spbill_create_ip": clientIP,
		"notify_url":       strings.TrimSpace(cfg.NotifyURL),
		"trade_type":       "APP",
	}
	params["sign"] = SignParams(params, cfg.APIKey)

	responseBody, err := postGateway(ctx, cfg, encodeXML(params))
	if err != nil {
		return "", err
	}
	response, err := parseXML(responseBody)
	if err != nil {
		return "", fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	if response["return_code"] != constants.WechatReturnCodeSuccess {
		return "", fmt.Errorf("%w: %s", ErrResponseInvalid, response["return_msg"])
	}
	if response["result_code"] != constants.WechatReturnCodeSuccess {
		errMsg := strings.TrimSpace(response["err_code_des"])
		if errMsg == "" {
			errMsg = strings.TrimSpace(response["err_code"])
		}
		return "", fmt.Errorf("%w: %s", ErrResponseInvalid, errMsg)
	}
	if SignParams(response, cfg.APIKey) != response["sign"] {
		return "", fmt.Errorf("%w: response sign mismatch", ErrSignatureInvalid)
	}
	prepayID := strings.TrimSpace(response["prepay_id"])
	if prepayID == "" {
		return "", fmt.Errorf("%w: prepay_id is empty", ErrResponseInvalid)
	}
	return prepayID, nil
}

// VerifyNotification 校验 XML 回调签名并提取交易要素。
// 验签失败或报文异常一律视为非法通知。
func VerifyNotification(cfg *Config, xmlBody []byte) (*Notification, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if len(bytes.TrimSpace(xmlBody)) == 0 {
		return nil, fmt.Errorf("%w: callback body is empty", ErrNotifyInvalid)
	}
	params, err := parseXML(xmlBody)
	if err != nil {
		return nil, fmt.Errorf("%w: decode callback failed", ErrNotifyInvalid)
	}
	if params["return_code"] != constants.WechatReturnCodeSuccess {
		return nil, fmt.Errorf("%w: return_code=%s", ErrNotifyInvalid, params["return_code"])
	}
	sign := strings.TrimSpace(params["sign"])
	if sign == "" {
		return nil, fmt.Errorf("%w: sign is required", ErrSignatureInvalid)
	}
	if SignParams(params, cfg.APIKey) != sign {
		return nil, fmt.Errorf("%w: verify failed", ErrSignatureInvalid)
	}

	notification := &Notification{
		OutTradeNo:    strings.TrimSpace(params["out_trade_no"]),
		TransactionID: strings.TrimSpace(params["transaction_id"]),
		ResultCode:    strings.TrimSpace(params["result_code"]),
		TotalFeeFen:   parseFen(params["total_fee"]),
		Raw:           params,
	}
	if notification.OutTradeNo == "" || notification.TransactionID == "" {
		return nil, fmt.Errorf("%w: out_trade_no/transaction_id is required", ErrNotifyInvalid)
	}
	return notification, nil
}

// AckXML 生成回调应答报文，支付方收到 SUCCESS 后停止重试投递。
func AckXML(ok bool) []byte {
	if ok {
		return []byte("<xml><return_code><![CDATA[SUCCESS]]></return_code><return_msg><![CDATA[OK]]></return_msg></xml>")
	}
	return []byte("<xml><return_code><![CDATA[FAIL]]></return_code><return_msg><![CDATA[INVALID]]></return_msg></xml>")
}

// SignParams 计算 v2 MD5 签名：参数名升序拼接 k=v，末尾拼 key，取大写 MD5。
// sign 字段本身不参与签名。
func SignParams(params map[string]string, apiKey string) string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		key = strings.TrimSpace(key)
		if key == "" || key == "sign" || strings.TrimSpace(value) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		parts = append(parts, key+"="+params[key])
	}
	parts = append(parts, "key="+strings.TrimSpace(apiKey))
	sum := md5.Sum([]byte(strings.Join(parts, "&")))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func parseFen(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	var fen int64
	if _, err := fmt.Sscanf(raw, "%d", &fen); err != nil {
		return 0
	}
	return fen
}

// parseXML 将 <xml><k>v</k>...</xml> 解析为扁平键值对。
func parseXML(body []byte) (map[string]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	params := make(map[string]string)
	var key string
	depth := 0
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				key = t.Name.Local
			}
		case xml.EndElement:
			depth--
			if depth == 1 {
				key = ""
			}
		case xml.CharData:
			if depth == 2 && key != "" {
				params[key] += string(t)
			}
		}
	}
	if len(params) == 0 {
		return nil, errors.New("empty xml payload")
	}
	for key, value := range params {
		params[key] = strings.TrimSpace(value)
	}
	return params, nil
}

// encodeXML 将键值对编码为 v2 请求报文。
func encodeXML(params map[string]string) []byte {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var buf bytes.Buffer
	buf.WriteString("<xml>")
	for _, key := range keys {
		buf.WriteString("<" + key + "><![CDATA[" + params[key] + "]]></" + key + ">")
	}
	buf.WriteString("</xml>")
	return buf.Bytes()
}

func postGateway(ctx context.Context, cfg *Config, body []byte) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := withTimeout(ctx, cfg)
	defer cancel()

	gatewayURL := strings.TrimSpace(cfg.GatewayURL)
	if gatewayURL == "" {
		gatewayURL = defaultGatewayURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, gatewayURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response failed", ErrRequestFailed)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	}
	return responseBody, nil
}

func withTimeout(ctx context.Context, cfg *Config) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	timeout := defaultTimeout
	if cfg != nil && cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return context.WithTimeout(ctx, timeout)
}
