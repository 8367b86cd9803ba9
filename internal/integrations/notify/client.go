package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrSendFailed возвращается, когда мост уведомлений не принял сообщение
var ErrSendFailed = errors.New("notify: failed to send message")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент WhatsApp-моста уведомлений.
// Уведомления работают по принципу fire-and-forget: ошибки логируются
// и никогда не блокируют поток бронирования.
type Client struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
	log        Logger
}

type message struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, enabled bool, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет текстовое сообщение на номер телефона
func (c *Client) Send(ctx context.Context, phone, text string) error {
	if !c.enabled {
		return nil
	}

	body, err := json.Marshal(message{Phone: phone, Text: text})
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status code %d", ErrSendFailed, resp.StatusCode)
	}

	return nil
}

// SendAsync отправляет сообщение в отдельной горутине, логируя ошибку.
// Используется в потоке бронирования, где уведомление не должно блокировать ответ.
func (c *Client) SendAsync(phone, text string) {
	if !c.enabled {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.Send(ctx, phone, text); err != nil {
			c.log.Error("SendAsync: notification to %s failed: %v", phone, err)
		}
	}()
}
