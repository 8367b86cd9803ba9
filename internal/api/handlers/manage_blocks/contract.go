package manage_blocks

import (
	"context"
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
	"github.com/turnosapp/booking-service/pkg/types"
)

type BookingLedger interface {
	BlockSlot(ctx context.Context, barberID int64, date time.Time, slotTime types.TimeString) (*domain.Block, error)
	UnblockSlot(ctx context.Context, barberID int64, date time.Time, slotTime types.TimeString) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
