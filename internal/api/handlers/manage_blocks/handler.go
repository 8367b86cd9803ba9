package manage_blocks

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/turnosapp/booking-service/internal/api/handlers"
	"github.com/turnosapp/booking-service/internal/domain"
	bookingsService "github.com/turnosapp/booking-service/internal/service/bookings"
	"github.com/turnosapp/booking-service/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidDateFormat  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgBarberNotFound     = "барбер не найден"
	msgSlotOccupied       = "слот занят активным бронированием"
	msgBlockExists        = "слот уже заблокирован"
	msgBlockNotFound      = "блокировка не найдена"
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

// HandleCreate POST /api/v1/barbers/{barberId}/blocks
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	var req BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, slotTime, err := parseDateTime(req.Date, req.Time)
	if err != nil {
		h.logger.Warn("POST /blocks - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	block, err := h.ledger.BlockSlot(r.Context(), barberID, date, slotTime)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBarberNotFound):
			h.logger.Warn("POST /blocks - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, bookingsService.ErrSlotOccupied):
			h.logger.Warn("POST /blocks - Slot occupied: barber_id=%d, time=%s", barberID, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotOccupied)

		case errors.Is(err, bookingsService.ErrBlockExists):
			h.logger.Warn("POST /blocks - Block exists: barber_id=%d, time=%s", barberID, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgBlockExists)

		case errors.Is(err, bookingsService.ErrValidation):
			h.logger.Warn("POST /blocks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateFormat)

		default:
			h.logger.Error("POST /blocks - Failed: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocks - Created: id=%d, barber_id=%d, time=%s", block.ID, barberID, req.Time)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(block))
}

// HandleDelete DELETE /api/v1/barbers/{barberId}/blocks?date=YYYY-MM-DD&time=HH:MM
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	query := r.URL.Query()
	date, slotTime, err := parseDateTime(query.Get("date"), query.Get("time"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	if err := h.ledger.UnblockSlot(r.Context(), barberID, date, slotTime); err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBlockNotFound):
			h.logger.Warn("DELETE /blocks - Not found: barber_id=%d, time=%s", barberID, query.Get("time"))
			handlers.RespondNotFound(w, msgBlockNotFound)

		default:
			h.logger.Error("DELETE /blocks - Failed: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blocks - Deleted: barber_id=%d, date=%s, time=%s",
		barberID, query.Get("date"), query.Get("time"))
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func parseDateTime(dateStr, timeStr string) (time.Time, types.TimeString, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, "", err
	}

	slotTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return time.Time{}, "", err
	}

	return date, slotTime, nil
}
