package cancel_group

import "context"

type BookingLedger interface {
	CancelGroup(ctx context.Context, groupID string) error
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
