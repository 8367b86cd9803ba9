package manage_exceptional_days

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/turnosapp/booking-service/internal/api/handlers"
	scheduleService "github.com/turnosapp/booking-service/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidDayID       = "некорректный ID исключительного дня"
	msgInvalidDateFormat  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInterval    = "конец смены должен быть позже начала"
	msgBarberNotFound     = "барбер не найден"
	msgDayNotFound        = "исключительный день не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/barbers/{barberId}/exceptional-days
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	var req CreateExceptionalDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /exceptional-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	day, err := req.ToDomain(barberID)
	if err != nil {
		h.logger.Warn("POST /exceptional-days - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	created, err := h.service.CreateExceptionalDay(r.Context(), day)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrBarberNotFound):
			h.logger.Warn("POST /exceptional-days - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, scheduleService.ErrInvalidInterval):
			h.logger.Warn("POST /exceptional-days - Invalid interval: barber_id=%d", barberID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("POST /exceptional-days - Failed: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /exceptional-days - Created: id=%d, barber_id=%d", created.ID, barberID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(created))
}

// HandleDelete DELETE /api/v1/exceptional-days/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	dayID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDayID)
		return
	}

	if err := h.service.DeleteExceptionalDay(r.Context(), dayID); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrExceptionalDayNotFound):
			h.logger.Warn("DELETE /exceptional-days/{id} - Not found: id=%d", dayID)
			handlers.RespondNotFound(w, msgDayNotFound)

		default:
			h.logger.Error("DELETE /exceptional-days/{id} - Failed: id=%d, error=%v", dayID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /exceptional-days/{id} - Deleted: id=%d", dayID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
