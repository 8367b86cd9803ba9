package get_available_slots

import (
	"github.com/turnosapp/booking-service/internal/domain"
	getAvailableSlots "github.com/turnosapp/booking-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string `json:"date"`
	BarberID  int64  `json:"barberId"`
	ServiceID int64  `json:"serviceId"`
	Slots     []Slot `json:"slots"`
}

// Slot модель доступного слота
type Slot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]Slot, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, Slot{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
		})
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		BarberID:  resp.BarberID,
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}
