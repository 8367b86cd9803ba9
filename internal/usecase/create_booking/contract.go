package create_booking

import (
	"context"
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
	"github.com/turnosapp/booking-service/internal/integrations/mercadopago"
)

// ScheduleResolver интерфейс резолвера расписания барбера
type ScheduleResolver interface {
	OpenIntervals(ctx context.Context, barberID int64, date time.Time) ([]domain.Interval, error)
}

// ScheduleRepository интерфейс репозитория барберов, услуг и блокировок
type ScheduleRepository interface {
	GetBarberByID(ctx context.Context, id int64) (*domain.Barber, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetBlocks(ctx context.Context, barberID int64, date time.Time) ([]*domain.Block, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByBarberWithFilter(ctx context.Context, filter domain.BarberBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	CreatePreference(ctx context.Context, externalRef, title string, amount float64) (*mercadopago.Preference, error)
}

// Notifier интерфейс отправки уведомлений клиенту
type Notifier interface {
	SendAsync(phone, text string)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
