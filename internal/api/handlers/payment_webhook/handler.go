package payment_webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/turnosapp/booking-service/internal/api/handlers"
	processPaymentEvent "github.com/turnosapp/booking-service/internal/usecase/process_payment_event"
)

const msgInvalidSignature = "невалидная подпись уведомления"

type Handler struct {
	useCase ProcessPaymentEventUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase ProcessPaymentEventUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
//
// Шлюз ретраит уведомления до получения 2xx, поэтому любой исход,
// кроме невалидной подписи, подтверждается статусом 200.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dataID := r.URL.Query().Get("data.id")

	// Если ID платежа нет в query, пробуем достать из тела
	if dataID == "" {
		var body webhookBody
		raw, err := io.ReadAll(r.Body)
		if err == nil && len(raw) > 0 {
			if err := json.Unmarshal(raw, &body); err == nil {
				dataID = body.Data.ID
			}
		}
	}

	result, err := h.useCase.Execute(r.Context(), &processPaymentEvent.Request{
		XSignature: r.Header.Get("x-signature"),
		XRequestID: r.Header.Get("x-request-id"),
		DataID:     dataID,
	})
	if err != nil {
		if errors.Is(err, processPaymentEvent.ErrUnauthorized) {
			h.logger.Warn("POST /payments/webhook - Invalid signature: data_id=%s", dataID)
			h.metrics.ObserveWebhookEvent("unauthorized")
			handlers.RespondUnauthorized(w, msgInvalidSignature)
			return
		}

		// Не должно случаться: usecase возвращает исход, а не ошибку.
		// На всякий случай подтверждаем, чтобы шлюз не ретраил вечно.
		h.logger.Error("POST /payments/webhook - Unexpected error: data_id=%s, error=%v", dataID, err)
		h.metrics.ObserveWebhookEvent(processPaymentEvent.OutcomeFailed)
		handlers.RespondJSON(w, http.StatusOK, WebhookResponse{Status: processPaymentEvent.OutcomeFailed})
		return
	}

	h.metrics.ObserveWebhookEvent(result.Outcome)
	if result.Outcome == processPaymentEvent.OutcomeConfirmed {
		h.metrics.ObserveBookingConfirmed()
	}

	h.logger.Info("POST /payments/webhook - Processed: data_id=%s, outcome=%s", dataID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, WebhookResponse{Status: result.Outcome})
}
