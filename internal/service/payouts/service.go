package payouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
	scheduleRepo "github.com/turnosapp/booking-service/internal/infra/storage/schedule"
)

// Service агрегатор выручки барберов за период
type Service struct {
	earnings EarningsRepository
	schedule ScheduleRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса выплат
func NewService(earnings EarningsRepository, schedule ScheduleRepository, logger Logger) *Service {
	return &Service{
		earnings: earnings,
		schedule: schedule,
		logger:   logger,
	}
}

// Earnings возвращает агрегированную выручку барбера за период [from, to].
// Считаются только подтвержденные брони: онлайн-оплаты, наличный остаток
// и полная стоимость услуг раздельно.
func (s *Service) Earnings(ctx context.Context, barberID int64, from, to time.Time) (*domain.BarberEarnings, error) {
	if to.Before(from) {
		return nil, ErrInvalidPeriod
	}

	if _, err := s.schedule.GetBarberByID(ctx, barberID); err != nil {
		if errors.Is(err, scheduleRepo.ErrBarberNotFound) {
			return nil, ErrBarberNotFound
		}
		s.logger.Error("Earnings: failed to get barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: Earnings - get barber: %v", ErrInternal, err)
	}

	result, err := s.earnings.EarningsByBarber(ctx, barberID, from, to)
	if err != nil {
		s.logger.Error("Earnings: aggregation failed for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: Earnings - aggregate: %v", ErrInternal, err)
	}

	return result, nil
}
