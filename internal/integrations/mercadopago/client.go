package mercadopago

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с API Mercado Pago
type Client struct {
	baseURL       string
	accessToken   string
	webhookSecret string
	httpClient    *http.Client
	log           Logger
}

// NewClient создает новый экземпляр клиента Mercado Pago
func NewClient(baseURL, accessToken, webhookSecret string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		accessToken:   accessToken,
		webhookSecret: webhookSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreatePreference создает платежное намерение на сумму amount.
// externalRef попадает в external_reference платежа и возвращается шлюзом
// в вебхуках, связывая платеж с бронью или группой броней.
func (c *Client) CreatePreference(ctx context.Context, externalRef, title string, amount float64) (*Preference, error) {
	body, err := json.Marshal(preferenceRequest{
		Items: []preferenceItem{
			{Title: title, Quantity: 1, UnitPrice: amount},
		},
		ExternalReference: externalRef,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal preference request: %v", ErrInternal, err)
	}

	url := c.baseURL + "/checkout/preferences"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var pref Preference
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("CreatePreference: created preference id=%s for external_ref=%s amount=%.2f",
		pref.ID, externalRef, amount)

	return &pref, nil
}

// GetPayment запрашивает у шлюза авторитетное состояние платежа.
// Статусу из push-уведомления доверять нельзя: уведомления приходят
// не по порядку и могут быть устаревшими.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", c.baseURL, paymentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrPaymentNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &payment, nil
}

// VerifySignature проверяет подпись вебхука Mercado Pago.
// Заголовок x-signature имеет вид "ts=<unix>,v1=<hex hmac>", подпись
// считается как HMAC-SHA256 от шаблона "id:<dataID>;request-id:<rid>;ts:<ts>;"
// секретом вебхука. dataID нормализуется в нижний регистр по требованиям API.
func (c *Client) VerifySignature(xSignature, xRequestID, dataID string) bool {
	if c.webhookSecret == "" {
		c.log.Warn("VerifySignature: webhook secret is not configured, rejecting event")
		return false
	}

	var ts, v1 string
	for _, part := range strings.Split(xSignature, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}

	if ts == "" || v1 == "" {
		return false
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", strings.ToLower(dataID), xRequestID, ts)

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(v1))
}
