package create_booking

import (
	"errors"
	"net/http"

	"github.com/turnosapp/booking-service/internal/api/handlers"
	createBooking "github.com/turnosapp/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateFormat  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgBarberNotFound     = "барбер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgOutsideSchedule    = "выбранное время вне расписания барбера"
	msgSlotNotAvailable   = "выбранный временной слот уже занят"
	msgInvalidDate        = "нельзя записаться на прошедшую дату"
	msgPaymentFailed      = "не удалось создать платеж, попробуйте позже"
	msgWalkInForbidden    = "создание записи без оплаты доступно только барберу"
)

type Handler struct {
	useCase CreateBookingUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Walk-in запись удерживает слот без оплаты - только для
	// аутентифицированных запросов барбера
	if req.WalkIn && r.Header.Get("X-User-ID") == "" {
		h.logger.Warn("POST /bookings - Unauthenticated walk-in attempt: barber_id=%d", req.BarberID)
		handlers.RespondForbidden(w, msgWalkInForbidden)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: barber_id=%d, time=%s", req.BarberID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrBarberNotFound):
			h.logger.Warn("POST /bookings - Barber not found: barber_id=%d", req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrOutsideSchedule):
			h.logger.Warn("POST /bookings - Outside schedule: barber_id=%d, time=%s", req.BarberID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideSchedule)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: barber_id=%d, date=%s", req.BarberID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrPaymentGateway):
			h.logger.Error("POST /bookings - Payment gateway failed: barber_id=%d, error=%v", req.BarberID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentFailed)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: barber_id=%d, error=%v", req.BarberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	for _, b := range result.Bookings {
		h.metrics.ObserveBookingCreated(b.Status)
	}

	h.logger.Info("POST /bookings - Created %d booking(s): barber_id=%d, first_id=%d",
		len(result.Bookings), req.BarberID, result.Bookings[0].ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
