package payouts

import (
	"context"
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
)

// EarningsRepository интерфейс репозитория для агрегации выручки
type EarningsRepository interface {
	EarningsByBarber(ctx context.Context, barberID int64, from, to time.Time) (*domain.BarberEarnings, error)
}

// ScheduleRepository интерфейс репозитория барберов
type ScheduleRepository interface {
	GetBarberByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
