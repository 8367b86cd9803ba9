package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
	bookingRepo "github.com/turnosapp/booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/turnosapp/booking-service/internal/infra/storage/schedule"
	"github.com/turnosapp/booking-service/internal/service/bookings/models"
	"github.com/turnosapp/booking-service/pkg/types"
)

// Service реестр бронирований: владеет машиной состояний брони,
// подтверждением оплаты, отменами и блокировками слотов
type Service struct {
	bookings     BookingRepository
	schedule     ScheduleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	holdWindow   time.Duration
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookings BookingRepository,
	schedule ScheduleRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	holdWindow time.Duration,
	logger Logger,
) *Service {
	return &Service{
		bookings:     bookings,
		schedule:     schedule,
		txManager:    txManager,
		timeProvider: timeProvider,
		holdWindow:   holdWindow,
		logger:       logger,
	}
}

// GetByID возвращает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - get booking: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetBarberBookings возвращает бронирования барбера по фильтру
func (s *Service) GetBarberBookings(ctx context.Context, req *models.GetBarberBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if _, err := s.schedule.GetBarberByID(ctx, req.BarberID); err != nil {
		if errors.Is(err, scheduleRepo.ErrBarberNotFound) {
			return nil, ErrBarberNotFound
		}
		s.logger.Error("GetBarberBookings: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: GetBarberBookings - get barber: %v", ErrInternal, err)
	}

	list, err := s.bookings.GetByBarberWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBarberBookings: failed to list bookings for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: GetBarberBookings - list bookings: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(list), nil
}

// GetGroup возвращает все сеансы группы
func (s *Service) GetGroup(ctx context.Context, groupID string) (*models.BookingListResponse, error) {
	group, err := s.bookings.GetByGroupID(ctx, groupID)
	if err != nil {
		s.logger.Error("GetGroup: failed to get group %s: %v", groupID, err)
		return nil, fmt.Errorf("%w: GetGroup - get group: %v", ErrInternal, err)
	}
	if len(group) == 0 {
		return nil, ErrGroupNotFound
	}

	return models.FromDomainBookingList(group), nil
}

// Confirm идемпотентно подтверждает бронирование после оплаты.
// Повторное подтверждение с той же ссылкой на платеж - no-op.
// Подтверждение с другой ссылкой - ошибка несогласованности:
// вызывающая сторона обязана залогировать ее громко.
func (s *Service) Confirm(ctx context.Context, bookingID int64, paymentRef string, amount float64) error {
	s.logger.Info("Confirm: booking=%d paymentRef=%s amount=%.2f", bookingID, paymentRef, amount)

	return s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Confirm - get booking: %v", ErrInternal, err)
		}

		return s.confirmOne(ctx, booking, paymentRef, amount)
	})
}

// ConfirmGroup идемпотентно подтверждает все сеансы группы одним платежом.
// Сумма платежа записывается на первый сеанс, остальные подтверждаются
// с нулевой суммой, чтобы выручка не задваивалась.
func (s *Service) ConfirmGroup(ctx context.Context, groupID string, paymentRef string, amount float64) error {
	s.logger.Info("ConfirmGroup: group=%s paymentRef=%s amount=%.2f", groupID, paymentRef, amount)

	return s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		group, err := s.bookings.GetByGroupID(ctx, groupID)
		if err != nil {
			return fmt.Errorf("%w: ConfirmGroup - get group: %v", ErrInternal, err)
		}
		if len(group) == 0 {
			return ErrGroupNotFound
		}

		for i, member := range group {
			memberAmount := 0.0
			if i == 0 {
				memberAmount = amount
			}
			if err := s.confirmOne(ctx, member, paymentRef, memberAmount); err != nil {
				return fmt.Errorf("booking id=%d: %w", member.ID, err)
			}
		}

		return nil
	})
}

// confirmOne применяет подтверждение к одному бронированию внутри транзакции
func (s *Service) confirmOne(ctx context.Context, booking *domain.Booking, paymentRef string, amount float64) error {
	switch booking.Status {
	case domain.StatusPendingPayment:
		err := s.bookings.ConfirmPending(ctx, booking.ID, paymentRef, amount, booking.IsDeposit, booking.CashAmount)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNoPendingBooking) {
				return ErrNotPending
			}
			return fmt.Errorf("%w: confirm booking: %v", ErrInternal, err)
		}
		return nil

	case domain.StatusConfirmed:
		if booking.PaymentRef != nil && *booking.PaymentRef == paymentRef {
			// Повторная доставка того же платежа: уже применено
			s.logger.Info("confirmOne: booking=%d already confirmed with paymentRef=%s, skipping", booking.ID, paymentRef)
			return nil
		}
		return ErrPaymentRefMismatch

	default:
		return ErrNotPending
	}
}

// Cancel отменяет бронирование клиента или барбера.
// Walk-in брони (BLOCKED) по статусам не переходят: строка удаляется,
// и слот сразу возвращается в доступные.
func (s *Service) Cancel(ctx context.Context, bookingID int64) error {
	s.logger.Info("Cancel: booking=%d", bookingID)

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: failed to get booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - get booking: %v", ErrInternal, err)
	}

	if booking.Status == domain.StatusBlocked {
		return s.deleteWalkIn(ctx, bookingID)
	}

	if !booking.CanBeCancelled() {
		return fmt.Errorf("%w: booking id=%d status=%s", ErrCannotCancel, bookingID, booking.Status)
	}

	if err := s.bookings.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrNotCancellable) {
			// Статус изменился между чтением и условным обновлением
			return fmt.Errorf("%w: booking id=%d", ErrCannotCancel, bookingID)
		}
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - cancel booking: %v", ErrInternal, err)
	}

	return nil
}

// CancelGroup отменяет все сеансы группы по принципу "все или ничего".
// Уже отмененные сеансы пропускаются, чтобы повторная отмена была идемпотентной.
// Walk-in сеансы (BLOCKED) удаляются, остальные переводятся в CANCELLED.
func (s *Service) CancelGroup(ctx context.Context, groupID string) error {
	s.logger.Info("CancelGroup: group=%s", groupID)

	return s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		group, err := s.bookings.GetByGroupID(ctx, groupID)
		if err != nil {
			return fmt.Errorf("%w: CancelGroup - get group: %v", ErrInternal, err)
		}
		if len(group) == 0 {
			return ErrGroupNotFound
		}

		for _, member := range group {
			if member.Status == domain.StatusCancelled || member.Status == domain.StatusBlocked {
				continue
			}
			if !member.CanBeCancelled() {
				return fmt.Errorf("%w: booking id=%d status=%s", ErrCannotCancel, member.ID, member.Status)
			}
		}

		for _, member := range group {
			switch member.Status {
			case domain.StatusCancelled:
				continue
			case domain.StatusBlocked:
				if err := s.deleteWalkIn(ctx, member.ID); err != nil {
					return err
				}
			default:
				if err := s.bookings.Cancel(ctx, member.ID); err != nil {
					if errors.Is(err, bookingRepo.ErrNotCancellable) {
						return fmt.Errorf("%w: booking id=%d", ErrCannotCancel, member.ID)
					}
					return fmt.Errorf("%w: CancelGroup - cancel booking id=%d: %v", ErrInternal, member.ID, err)
				}
			}
		}

		return nil
	})
}

// deleteWalkIn удаляет walk-in бронь, освобождая слот.
// BLOCKED брони не несут платежной истории, поэтому строка удаляется,
// а не переводится в терминальный статус.
func (s *Service) deleteWalkIn(ctx context.Context, bookingID int64) error {
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Уже удалена конкурентной отменой
			return nil
		}
		s.logger.Error("deleteWalkIn: failed to delete booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: delete walk-in booking id=%d: %v", ErrInternal, bookingID, err)
	}

	s.logger.Info("deleteWalkIn: walk-in booking id=%d removed, slot released", bookingID)
	return nil
}

// BlockSlot блокирует слот барбера от онлайн-записи.
// Слот с активным бронированием заблокировать нельзя.
func (s *Service) BlockSlot(ctx context.Context, barberID int64, date time.Time, slotTime types.TimeString) (*domain.Block, error) {
	s.logger.Info("BlockSlot: barber=%d date=%s time=%s", barberID, date.Format(domain.DateFormat), slotTime)

	if err := slotTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var created *domain.Block
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := s.schedule.GetBarberByID(ctx, barberID); err != nil {
			if errors.Is(err, scheduleRepo.ErrBarberNotFound) {
				return ErrBarberNotFound
			}
			return fmt.Errorf("%w: BlockSlot - get barber: %v", ErrInternal, err)
		}

		dayBookings, err := s.bookings.GetByBarberWithFilter(ctx, domain.BarberBookingsFilter{
			BarberID:  barberID,
			StartDate: &date,
			EndDate:   &date,
		})
		if err != nil {
			return fmt.Errorf("%w: BlockSlot - get day bookings: %v", ErrInternal, err)
		}

		for _, b := range dayBookings {
			if !b.Occupies() {
				continue
			}
			if coversSlot(b, slotTime) {
				return fmt.Errorf("%w: booking id=%d", ErrSlotOccupied, b.ID)
			}
		}

		created, err = s.schedule.CreateBlock(ctx, &domain.Block{
			BarberID: barberID,
			Date:     date,
			Time:     slotTime,
		})
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrBlockExists) {
				return ErrBlockExists
			}
			return fmt.Errorf("%w: BlockSlot - create block: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UnblockSlot снимает блокировку слота
func (s *Service) UnblockSlot(ctx context.Context, barberID int64, date time.Time, slotTime types.TimeString) error {
	s.logger.Info("UnblockSlot: barber=%d date=%s time=%s", barberID, date.Format(domain.DateFormat), slotTime)

	if err := s.schedule.DeleteBlock(ctx, barberID, date, slotTime); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("UnblockSlot: repository error for barber=%d: %v", barberID, err)
		return fmt.Errorf("%w: UnblockSlot - repository error: %v", ErrInternal, err)
	}

	return nil
}

// ExpireStale переводит в EXPIRED все брони, ожидающие оплаты дольше окна удержания.
// Возвращает количество истекших броней.
func (s *Service) ExpireStale(ctx context.Context) (int64, error) {
	cutoff := s.timeProvider.Now().Add(-s.holdWindow)

	expired, err := s.bookings.ExpireStale(ctx, cutoff)
	if err != nil {
		s.logger.Error("ExpireStale: failed to expire stale bookings: %v", err)
		return 0, fmt.Errorf("%w: ExpireStale - repository error: %v", ErrInternal, err)
	}

	if expired > 0 {
		s.logger.Info("ExpireStale: expired %d stale bookings (cutoff=%s)", expired, cutoff.Format(time.RFC3339))
	}

	return expired, nil
}

// coversSlot проверяет, накрывает ли бронирование начало слота:
// слот занят, если его время попадает в [start, start+duration)
func coversSlot(b *domain.Booking, slotTime types.TimeString) bool {
	slotMin, err := slotTime.Minutes()
	if err != nil {
		return false
	}
	startMin, err := b.StartTime.Minutes()
	if err != nil {
		return false
	}
	return slotMin >= startMin && slotMin < startMin+b.DurationMinutes
}
