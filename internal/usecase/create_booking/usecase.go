package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/turnosapp/booking-service/internal/domain"
	bookingRepo "github.com/turnosapp/booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/turnosapp/booking-service/internal/infra/storage/schedule"
	scheduleService "github.com/turnosapp/booking-service/internal/service/schedule"
	"github.com/turnosapp/booking-service/pkg/ptr"
)

// UseCase use case для создания записи к барберу
type UseCase struct {
	resolver     ScheduleResolver
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	gateway      PaymentGateway
	notifier     Notifier
	txManager    TransactionManager
	gridMinutes  int
	holdWindow   time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resolver ScheduleResolver,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	gateway PaymentGateway,
	notifier Notifier,
	txManager TransactionManager,
	gridMinutes int,
	holdWindow time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:     resolver,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		gateway:      gateway,
		notifier:     notifier,
		txManager:    txManager,
		gridMinutes:  gridMinutes,
		holdWindow:   holdWindow,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи.
// Для многосеансовых услуг создает серию еженедельных сеансов с общим groupID.
// Все проверки занятости и вставки выполняются в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: barber=%d, service=%d, date=%s, time=%s, walkIn=%t",
		req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.WalkIn)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем барбера (для денормализации филиала)
	barber, err := uc.scheduleRepo.GetBarberByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBarberNotFound) {
			uc.logger.Warn("CreateBooking: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.scheduleRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Вычисляем даты сеансов: еженедельно, в одно и то же время
	sessions := service.Sessions
	if sessions < 1 {
		sessions = 1
	}
	sessionDates := make([]time.Time, 0, sessions)
	for i := 0; i < sessions; i++ {
		sessionDates = append(sessionDates, req.Date.AddDate(0, 0, 7*i))
	}

	var groupID *string
	if sessions > 1 {
		groupID = ptr.Ptr(uuid.NewString())
	}

	// 6. Создаем сеансы в сериализуемой транзакции
	var created []*domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]

		for _, sessionDate := range sessionDates {
			booking, err := uc.reserveSession(txCtx, req, barber, service, sessionDate, groupID)
			if err != nil {
				return err
			}
			created = append(created, booking)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created %d booking(s), first id=%d", len(created), created[0].ID)

	response := &Response{
		Bookings: toCreatedBookings(created),
		GroupID:  groupID,
	}

	// 7. Walk-in записи не требуют оплаты - слот удержан, на этом все
	if req.WalkIn {
		return response, nil
	}

	// 8. Создаем платеж в шлюзе; external_reference - ID группы или брони,
	// по нему webhook находит что подтверждать
	externalRef := strconv.FormatInt(created[0].ID, 10)
	if groupID != nil {
		externalRef = *groupID
	}

	payAmount := service.PaymentAmount()
	preference, err := uc.gateway.CreatePreference(ctx, externalRef, service.Name, payAmount)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create payment preference: %v", err)
		uc.rollbackCreated(ctx, created)
		return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}

	response.PaymentLink = ptr.Ptr(preference.InitPoint)
	response.PaymentAmount = payAmount
	response.IsDeposit = service.RequiresDeposit()
	response.HoldExpiresAt = ptr.Ptr(now.Add(uc.holdWindow))

	// 9. Уведомляем клиента о созданной записи (fire-and-forget)
	uc.notifier.SendAsync(req.ClientPhone, fmt.Sprintf(
		"Запись создана: %s, %s %s. Оплатите в течение %d минут, иначе слот освободится.",
		service.Name,
		created[0].BookingDate.Format(domain.DateFormat),
		created[0].StartTime,
		int(uc.holdWindow.Minutes()),
	))

	return response, nil
}

// reserveSession резервирует один сеанс внутри транзакции:
// проверяет расписание, занятость и блокировки, затем вставляет бронь
func (uc *UseCase) reserveSession(
	ctx context.Context,
	req *Request,
	barber *domain.Barber,
	service *domain.Service,
	sessionDate time.Time,
	groupID *string,
) (*domain.Booking, error) {
	// Открытые интервалы барбера на дату сеанса
	intervals, err := uc.resolver.OpenIntervals(ctx, req.BarberID, sessionDate)
	if err != nil {
		if errors.Is(err, scheduleService.ErrBarberNotFound) {
			return nil, ErrBarberNotFound
		}
		return nil, fmt.Errorf("%w: failed to resolve schedule: %v", ErrInternal, err)
	}

	if err := validateSlotInSchedule(req.StartTime, service.DurationMinutes, uc.gridMinutes, intervals); err != nil {
		uc.logger.Warn("CreateBooking: slot %s on %s is outside schedule for barber=%d",
			req.StartTime, sessionDate.Format(domain.DateFormat), req.BarberID)
		return nil, err
	}

	// Активные брони дня с блокировкой строк (FOR UPDATE)
	dayBookings, err := uc.bookingRepo.GetByBarberWithFilter(ctx, domain.BarberBookingsFilter{
		BarberID:  req.BarberID,
		StartDate: &sessionDate,
		EndDate:   &sessionDate,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	slotEnd, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		return nil, ErrOutsideSchedule
	}

	for _, b := range dayBookings {
		if !b.Occupies() {
			continue
		}
		bookingEnd, err := b.StartTime.AddMinutes(b.DurationMinutes)
		if err != nil {
			continue
		}
		if b.StartTime.IsBefore(slotEnd) && bookingEnd.IsAfter(req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s on %s overlaps booking id=%d",
				req.StartTime, sessionDate.Format(domain.DateFormat), b.ID)
			return nil, ErrSlotNotAvailable
		}
	}

	// Блокировки слотов на дату сеанса
	blocks, err := uc.scheduleRepo.GetBlocks(ctx, req.BarberID, sessionDate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
	}

	for _, block := range blocks {
		blockEnd, err := block.Time.AddMinutes(uc.gridMinutes)
		if err != nil {
			continue
		}
		if block.Time.IsBefore(slotEnd) && blockEnd.IsAfter(req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s on %s is blocked",
				req.StartTime, sessionDate.Format(domain.DateFormat))
			return nil, ErrSlotNotAvailable
		}
	}

	booking := buildBooking(req, barber, service, sessionDate, groupID)

	createdBooking, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		// Гонка с конкурентной записью: частичный уникальный индекс
		// по активному слоту отклонил вставку
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: slot %s on %s lost to a concurrent booking",
				req.StartTime, sessionDate.Format(domain.DateFormat))
			return nil, ErrSlotNotAvailable
		}
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	return createdBooking, nil
}

// buildBooking собирает domain бронирование с денормализацией данных услуги
func buildBooking(
	req *Request,
	barber *domain.Barber,
	service *domain.Service,
	sessionDate time.Time,
	groupID *string,
) *domain.Booking {
	status := domain.StatusPendingPayment
	cashAmount := service.Price - service.PaymentAmount()
	isDeposit := service.RequiresDeposit()

	if req.WalkIn {
		// Walk-in: слот удерживается без оплаты, вся сумма наличными
		status = domain.StatusBlocked
		cashAmount = service.Price
		isDeposit = false
	}

	return &domain.Booking{
		BarberID:        req.BarberID,
		BranchID:        barber.BranchID,
		ServiceID:       service.ID,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		BookingDate:     sessionDate,
		StartTime:       req.StartTime,
		DurationMinutes: service.DurationMinutes,
		Status:          status,
		ServiceName:     service.Name,
		ServicePrice:    service.Price,
		IsDeposit:       isDeposit,
		CashAmount:      cashAmount,
		GroupID:         groupID,
		ExtraServices:   req.ExtraServices,
	}
}

// rollbackCreated отменяет созданные брони, если платеж не удалось создать.
// Ошибки отмены логируются: даже если отмена не прошла, брони истекут
// по окну оплаты.
func (uc *UseCase) rollbackCreated(ctx context.Context, created []*domain.Booking) {
	for _, b := range created {
		if err := uc.bookingRepo.Cancel(ctx, b.ID); err != nil {
			uc.logger.Error("CreateBooking: rollback failed for booking id=%d: %v", b.ID, err)
		}
	}
}

// toCreatedBookings конвертирует созданные брони в response модели
func toCreatedBookings(bookings []*domain.Booking) []CreatedBooking {
	result := make([]CreatedBooking, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, CreatedBooking{
			ID:              b.ID,
			BookingDate:     b.BookingDate,
			StartTime:       b.StartTime,
			DurationMinutes: b.DurationMinutes,
			Status:          string(b.Status),
			ServiceName:     b.ServiceName,
			ServicePrice:    b.ServicePrice,
		})
	}
	return result
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
