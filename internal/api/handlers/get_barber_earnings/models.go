package get_barber_earnings

import (
	"github.com/turnosapp/booking-service/internal/domain"
)

// EarningsResponse HTTP response model
type EarningsResponse struct {
	BarberID        int64   `json:"barberId"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	ConfirmedCount  int     `json:"confirmedCount"`
	TotalPrice      float64 `json:"totalPrice"`
	TotalPaidOnline float64 `json:"totalPaidOnline"`
	TotalCash       float64 `json:"totalCash"`
}

// FromDomain конвертирует domain модель в HTTP response
func FromDomain(e *domain.BarberEarnings, from, to string) *EarningsResponse {
	return &EarningsResponse{
		BarberID:        e.BarberID,
		From:            from,
		To:              to,
		ConfirmedCount:  int(e.ConfirmedCount),
		TotalPrice:      e.TotalPrice,
		TotalPaidOnline: e.TotalPaidOnline,
		TotalCash:       e.TotalCash,
	}
}
