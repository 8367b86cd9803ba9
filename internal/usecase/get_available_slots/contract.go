package get_available_slots

import (
	"context"
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
)

// ScheduleResolver интерфейс резолвера расписания барбера
type ScheduleResolver interface {
	// OpenIntervals возвращает открытые интервалы доступности барбера на дату
	OpenIntervals(ctx context.Context, barberID int64, date time.Time) ([]domain.Interval, error)
}

// ScheduleRepository интерфейс репозитория услуг и блокировок
type ScheduleRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetBlocks(ctx context.Context, barberID int64, date time.Time) ([]*domain.Block, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByBarberWithFilter(ctx context.Context, filter domain.BarberBookingsFilter) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
