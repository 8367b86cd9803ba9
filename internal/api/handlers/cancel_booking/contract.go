package cancel_booking

import "context"

type BookingLedger interface {
	Cancel(ctx context.Context, bookingID int64) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	ObserveBookingCancelled()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
