package get_booking

import (
	"context"

	"github.com/turnosapp/booking-service/internal/service/bookings/models"
)

type BookingLedger interface {
	GetByID(ctx context.Context, id int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
