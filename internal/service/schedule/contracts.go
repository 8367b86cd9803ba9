package schedule

import (
	"context"
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория источников расписания
type ScheduleRepository interface {
	GetBarberByID(ctx context.Context, id int64) (*domain.Barber, error)
	GetWeeklyEntries(ctx context.Context, barberID int64, weekday int) ([]*domain.WeeklyScheduleEntry, error)
	GetExceptionalDays(ctx context.Context, barberID int64, date time.Time) ([]*domain.ExceptionalDay, error)
	CreateExceptionalDay(ctx context.Context, day *domain.ExceptionalDay) (*domain.ExceptionalDay, error)
	DeleteExceptionalDay(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
