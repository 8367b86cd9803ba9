package payment_webhook

import (
	"context"

	processPaymentEvent "github.com/turnosapp/booking-service/internal/usecase/process_payment_event"
)

type ProcessPaymentEventUseCase interface {
	Execute(ctx context.Context, req *processPaymentEvent.Request) (*processPaymentEvent.Response, error)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	ObserveWebhookEvent(result string)
	ObserveBookingConfirmed()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
