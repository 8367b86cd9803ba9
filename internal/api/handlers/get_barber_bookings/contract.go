package get_barber_bookings

import (
	"context"

	"github.com/turnosapp/booking-service/internal/service/bookings/models"
)

type BookingLedger interface {
	GetBarberBookings(ctx context.Context, req *models.GetBarberBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
