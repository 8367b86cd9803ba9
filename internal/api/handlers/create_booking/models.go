package create_booking

import (
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
	createBooking "github.com/turnosapp/booking-service/internal/usecase/create_booking"
	"github.com/turnosapp/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BarberID      int64   `json:"barberId"`
	ServiceID     int64   `json:"serviceId"`
	ClientName    string  `json:"clientName"`
	ClientPhone   string  `json:"clientPhone"`
	BookingDate   string  `json:"bookingDate"` // "2026-09-15"
	StartTime     string  `json:"startTime"`   // "10:00"
	ExtraServices *string `json:"extraServices,omitempty"`
	WalkIn        bool    `json:"walkIn,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Bookings []BookingItem `json:"bookings"`
	GroupID  *string       `json:"groupId,omitempty"`

	PaymentLink   *string `json:"paymentLink,omitempty"`
	PaymentAmount float64 `json:"paymentAmount"`
	IsDeposit     bool    `json:"isDeposit"`
	HoldExpiresAt *string `json:"holdExpiresAt,omitempty"`
}

// BookingItem модель одного созданного сеанса
type BookingItem struct {
	ID              int64   `json:"id"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		BarberID:      r.BarberID,
		ServiceID:     r.ServiceID,
		ClientName:    r.ClientName,
		ClientPhone:   r.ClientPhone,
		Date:          bookingDate,
		StartTime:     startTime,
		ExtraServices: r.ExtraServices,
		WalkIn:        r.WalkIn,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	bookings := make([]BookingItem, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		bookings = append(bookings, BookingItem{
			ID:              b.ID,
			BookingDate:     b.BookingDate.Format(domain.DateFormat),
			StartTime:       b.StartTime.String(),
			DurationMinutes: b.DurationMinutes,
			Status:          b.Status,
			ServiceName:     b.ServiceName,
			ServicePrice:    b.ServicePrice,
		})
	}

	result := &CreateBookingResponse{
		Bookings:      bookings,
		GroupID:       resp.GroupID,
		PaymentLink:   resp.PaymentLink,
		PaymentAmount: resp.PaymentAmount,
		IsDeposit:     resp.IsDeposit,
	}

	if resp.HoldExpiresAt != nil {
		expires := resp.HoldExpiresAt.Format(time.RFC3339)
		result.HoldExpiresAt = &expires
	}

	return result
}
