package get_barber_earnings

import (
	"context"
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
)

type PayoutService interface {
	Earnings(ctx context.Context, barberID int64, from, to time.Time) (*domain.BarberEarnings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
