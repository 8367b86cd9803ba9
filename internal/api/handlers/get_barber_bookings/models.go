package get_barber_bookings

import (
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
	"github.com/turnosapp/booking-service/internal/service/bookings/models"
)

// BookingListResponse HTTP response model
type BookingListResponse struct {
	Bookings []BookingItem `json:"bookings"`
	Total    int           `json:"total"`
}

// BookingItem модель бронирования в списке
type BookingItem struct {
	ID              int64   `json:"id"`
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
	AmountPaid      float64 `json:"amountPaid"`
	CashAmount      float64 `json:"cashAmount"`
	GroupID         *string `json:"groupId,omitempty"`
	ExtraServices   *string `json:"extraServices,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(list *models.BookingListResponse) *BookingListResponse {
	bookings := make([]BookingItem, 0, len(list.Bookings))
	for _, b := range list.Bookings {
		bookings = append(bookings, BookingItem{
			ID:              b.ID,
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
			AmountPaid:      b.AmountPaid,
			CashAmount:      b.CashAmount,
			GroupID:         b.GroupID,
			ExtraServices:   b.ExtraServices,
			CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		})
	}

	return &BookingListResponse{
		Bookings: bookings,
		Total:    list.Total,
	}
}
