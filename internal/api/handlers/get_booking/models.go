package get_booking

import (
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
	"github.com/turnosapp/booking-service/internal/service/bookings/models"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	BarberID        int64   `json:"barberId"`
	BranchID        int64   `json:"branchId"`
	ServiceID       int64   `json:"serviceId"`
	ClientName      string  `json:"clientName"`
	ClientPhone     string  `json:"clientPhone"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	PaymentRef      *string `json:"paymentRef,omitempty"`
	AmountPaid      float64 `json:"amountPaid"`
	IsDeposit       bool    `json:"isDeposit"`
	CashAmount      float64 `json:"cashAmount"`
	GroupID         *string `json:"groupId,omitempty"`
	ExtraServices   *string `json:"extraServices,omitempty"`
	ConfirmedAt     *string `json:"confirmedAt,omitempty"`
	CancelledAt     *string `json:"cancelledAt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(b *models.BookingResponse) *BookingResponse {
	resp := &BookingResponse{
		ID:              b.ID,
		BarberID:        b.BarberID,
		BranchID:        b.BranchID,
		ServiceID:       b.ServiceID,
		ClientName:      b.ClientName,
		ClientPhone:     b.ClientPhone,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		PaymentRef:      b.PaymentRef,
		AmountPaid:      b.AmountPaid,
		IsDeposit:       b.IsDeposit,
		CashAmount:      b.CashAmount,
		GroupID:         b.GroupID,
		ExtraServices:   b.ExtraServices,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}

	if b.ConfirmedAt != nil {
		confirmed := b.ConfirmedAt.Format(time.RFC3339)
		resp.ConfirmedAt = &confirmed
	}
	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}
