package process_payment_event

import (
	"context"

	"github.com/turnosapp/booking-service/internal/integrations/mercadopago"
	"github.com/turnosapp/booking-service/internal/service/bookings/models"
)

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	// VerifySignature проверяет подпись webhook-уведомления
	VerifySignature(xSignature, xRequestID, dataID string) bool
	// GetPayment запрашивает платеж у шлюза по ID
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error)
}

// BookingLedger интерфейс реестра бронирований
type BookingLedger interface {
	Confirm(ctx context.Context, bookingID int64, paymentRef string, amount float64) error
	ConfirmGroup(ctx context.Context, groupID string, paymentRef string, amount float64) error
	GetByID(ctx context.Context, id int64) (*models.BookingResponse, error)
	GetGroup(ctx context.Context, groupID string) (*models.BookingListResponse, error)
}

// Notifier интерфейс отправки уведомлений клиенту
type Notifier interface {
	SendAsync(phone, text string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
