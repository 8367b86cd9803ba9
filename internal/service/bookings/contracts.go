package bookings

import (
	"context"
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
	"github.com/turnosapp/booking-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByBarberWithFilter(ctx context.Context, filter domain.BarberBookingsFilter) ([]*domain.Booking, error)
	GetByGroupID(ctx context.Context, groupID string) ([]*domain.Booking, error)
	ConfirmPending(ctx context.Context, id int64, paymentRef string, amountPaid float64, isDeposit bool, cashAmount float64) error
	Cancel(ctx context.Context, id int64) error
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория расписания (барберы и блокировки слотов)
type ScheduleRepository interface {
	GetBarberByID(ctx context.Context, id int64) (*domain.Barber, error)
	GetBlocks(ctx context.Context, barberID int64, date time.Time) ([]*domain.Block, error)
	CreateBlock(ctx context.Context, block *domain.Block) (*domain.Block, error)
	DeleteBlock(ctx context.Context, barberID int64, date time.Time, slotTime types.TimeString) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider через системные часы
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
