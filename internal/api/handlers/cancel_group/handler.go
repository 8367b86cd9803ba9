package cancel_group

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/turnosapp/booking-service/internal/api/handlers"
	bookingsService "github.com/turnosapp/booking-service/internal/service/bookings"
)

const (
	msgInvalidGroupID = "некорректный ID группы"
	msgGroupNotFound  = "группа бронирований не найдена"
	msgCannotCancel   = "серию нельзя отменить: есть сеанс в неотменяемом статусе"
)

type Handler struct {
	ledger  BookingLedger
	metrics Metrics
	logger  Logger
}

func NewHandler(ledger BookingLedger, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		ledger:  ledger,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/booking-groups/{groupId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]
	if _, err := uuid.Parse(groupID); err != nil {
		handlers.RespondBadRequest(w, msgInvalidGroupID)
		return
	}

	if err := h.ledger.CancelGroup(r.Context(), groupID); err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrGroupNotFound):
			h.logger.Warn("DELETE /booking-groups/{groupId} - Not found: group_id=%s", groupID)
			handlers.RespondNotFound(w, msgGroupNotFound)

		case errors.Is(err, bookingsService.ErrCannotCancel):
			h.logger.Warn("DELETE /booking-groups/{groupId} - Cannot cancel: group_id=%s, error=%v", groupID, err)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("DELETE /booking-groups/{groupId} - Failed: group_id=%s, error=%v", groupID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.ObserveBookingCancelled()
	h.logger.Info("DELETE /booking-groups/{groupId} - Cancelled: group_id=%s", groupID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
