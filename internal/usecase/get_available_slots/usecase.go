package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/turnosapp/booking-service/internal/domain"
	scheduleRepo "github.com/turnosapp/booking-service/internal/infra/storage/schedule"
	scheduleService "github.com/turnosapp/booking-service/internal/service/schedule"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	resolver     ScheduleResolver
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	gridMinutes  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resolver ScheduleResolver,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	gridMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:     resolver,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		gridMinutes:  gridMinutes,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: barber=%d, service=%d, date=%s",
		req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу (определяет длительность слота)
	service, err := uc.scheduleRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Дата в прошлом - слотов нет
	if isDateInPast(req.Date, now) {
		return emptyResponse(req), nil
	}

	// 5. Получаем открытые интервалы доступности барбера
	intervals, err := uc.resolver.OpenIntervals(ctx, req.BarberID, req.Date)
	if err != nil {
		if errors.Is(err, scheduleService.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve schedule for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to resolve schedule: %v", ErrInternal, err)
	}

	// Барбер не работает в этот день
	if len(intervals) == 0 {
		uc.logger.Info("GetAvailableSlots: barber=%d has no open intervals on %s",
			req.BarberID, req.Date.Format(domain.DateFormat))
		return emptyResponse(req), nil
	}

	// 6. Генерируем кандидатов обходом сетки
	candidates, err := generateCandidates(intervals, uc.gridMinutes, service.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInternal, err)
	}

	// 7. Отбрасываем прошедшее время (только для сегодняшней даты)
	candidates = filterPastSlots(candidates, req.Date, now)

	// 8. Получаем активные бронирования барбера на дату
	bookings, err := uc.bookingRepo.GetByBarberWithFilter(ctx, domain.BarberBookingsFilter{
		BarberID:  req.BarberID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 9. Получаем блокировки слотов на дату
	blocks, err := uc.scheduleRepo.GetBlocks(ctx, req.BarberID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
	}

	// 10. Вычитаем занятые и заблокированные слоты
	free := filterOccupiedSlots(candidates, service.DurationMinutes, uc.gridMinutes, bookings, blocks)

	slots := make([]Slot, 0, len(free))
	for _, start := range free {
		slots = append(slots, Slot{
			StartTime:       start,
			DurationMinutes: service.DurationMinutes,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d slots available for barber=%d, service=%d, date=%s",
		len(slots), req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

func emptyResponse(req *Request) *Response {
	return &Response{
		Date:      req.Date,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Slots:     []Slot{},
	}
}
