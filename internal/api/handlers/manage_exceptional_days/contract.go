package manage_exceptional_days

import (
	"context"

	"github.com/turnosapp/booking-service/internal/domain"
)

type ScheduleService interface {
	CreateExceptionalDay(ctx context.Context, day *domain.ExceptionalDay) (*domain.ExceptionalDay, error)
	DeleteExceptionalDay(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
