package models

import (
	"fmt"
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
	"github.com/turnosapp/booking-service/pkg/types"
)

// BookingResponse модель бронирования для внешних слоев
type BookingResponse struct {
	ID              int64
	BarberID        int64
	BranchID        int64
	ServiceID       int64
	ClientName      string
	ClientPhone     string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	ServiceName  string
	ServicePrice float64

	PaymentRef *string
	AmountPaid float64
	IsDeposit  bool
	CashAmount float64

	GroupID       *string
	ExtraServices *string

	ConfirmedAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse
	Total    int
}

// GetBarberBookingsRequest запрос списка бронирований барбера
type GetBarberBookingsRequest struct {
	BarberID        int64
	BranchID        *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *GetBarberBookingsRequest) ToDomainFilter() (domain.BarberBookingsFilter, error) {
	filter := domain.BarberBookingsFilter{
		BarberID:        r.BarberID,
		BranchID:        r.BranchID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return domain.BarberBookingsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainBookingStatus валидирует и конвертирует строковый статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !domain.ValidStatus(status) {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return status, nil
}

// FromDomainBooking конвертирует domain бронирование в response модель
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		BarberID:        b.BarberID,
		BranchID:        b.BranchID,
		ServiceID:       b.ServiceID,
		ClientName:      b.ClientName,
		ClientPhone:     b.ClientPhone,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		PaymentRef:      b.PaymentRef,
		AmountPaid:      b.AmountPaid,
		IsDeposit:       b.IsDeposit,
		CashAmount:      b.CashAmount,
		GroupID:         b.GroupID,
		ExtraServices:   b.ExtraServices,
		ConfirmedAt:     b.ConfirmedAt,
		CancelledAt:     b.CancelledAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}
	return result
}
