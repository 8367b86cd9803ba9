package get_barber_earnings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/turnosapp/booking-service/internal/api/handlers"
	"github.com/turnosapp/booking-service/internal/domain"
	payoutsService "github.com/turnosapp/booking-service/internal/service/payouts"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod   = "конец периода раньше начала"
	msgBarberNotFound  = "барбер не найден"
)

type Handler struct {
	payouts PayoutService
	logger  Logger
}

func NewHandler(payouts PayoutService, logger Logger) *Handler {
	return &Handler{
		payouts: payouts,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/earnings?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	query := r.URL.Query()

	from, err := time.Parse(domain.DateFormat, query.Get("from"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := time.Parse(domain.DateFormat, query.Get("to"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.payouts.Earnings(r.Context(), barberID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, payoutsService.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{barberId}/earnings - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, payoutsService.ErrInvalidPeriod):
			h.logger.Warn("GET /barbers/{barberId}/earnings - Invalid period: barber_id=%d", barberID)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /barbers/{barberId}/earnings - Failed: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(result, query.Get("from"), query.Get("to")))
}
