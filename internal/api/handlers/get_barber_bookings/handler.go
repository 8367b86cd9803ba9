package get_barber_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/turnosapp/booking-service/internal/api/handlers"
	"github.com/turnosapp/booking-service/internal/domain"
	bookingsService "github.com/turnosapp/booking-service/internal/service/bookings"
	"github.com/turnosapp/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidBranchID = "некорректный ID филиала"
	msgInvalidStatus   = "некорректный статус бронирования"
	msgBarberNotFound  = "барбер не найден"
)

type Handler struct {
	ledger BookingLedger
	logger Logger
}

func NewHandler(ledger BookingLedger, logger Logger) *Handler {
	return &Handler{
		ledger: ledger,
		logger: logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/bookings?startDate=&endDate=&status=&branchId=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	req := &models.GetBarberBookingsRequest{BarberID: barberID}
	query := r.URL.Query()

	if v := query.Get("startDate"); v != "" {
		startDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if v := query.Get("endDate"); v != "" {
		endDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	if v := query.Get("branchId"); v != "" {
		branchID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidBranchID)
			return
		}
		req.BranchID = &branchID
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.ledger.GetBarberBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{barberId}/bookings - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, bookingsService.ErrValidation):
			h.logger.Warn("GET /barbers/{barberId}/bookings - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /barbers/{barberId}/bookings - Failed: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
