package domain

import (
	"time"

	"github.com/turnosapp/booking-service/pkg/types"
)

// BookingStatus represents the status of a booking (turno)
type BookingStatus string

const (
	// StatusPendingPayment slot is held while the client completes the payment
	StatusPendingPayment BookingStatus = "pending_payment"
	// StatusConfirmed payment reconciled, the appointment will happen
	StatusConfirmed BookingStatus = "confirmed"
	// StatusBlocked walk-in reservation made by an operator, occupies the slot without payment
	StatusBlocked BookingStatus = "blocked"
	// StatusCancelled explicitly cancelled by the client or an operator
	StatusCancelled BookingStatus = "cancelled"
	// StatusExpired hold window elapsed without payment confirmation
	StatusExpired BookingStatus = "expired"
)

// Booking represents an appointment in the system
type Booking struct {
	ID              int64
	BarberID        int64
	BranchID        int64
	ServiceID       int64
	ClientName      string
	ClientPhone     string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64

	// Payment fields
	PaymentRef *string // external payment id assigned by the gateway
	AmountPaid float64
	IsDeposit  bool    // true when AmountPaid is a deposit (seña), remainder paid in cash
	CashAmount float64 // remainder to collect in person

	// GroupID links the sessions of a multi-session service booked as one sequence
	GroupID       *string
	ExtraServices *string

	ConfirmedAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Occupies returns true if the booking holds its slot against new reservations
func (b *Booking) Occupies() bool {
	return b.Status == StatusPendingPayment ||
		b.Status == StatusConfirmed ||
		b.Status == StatusBlocked
}

// IsTerminal returns true if the booking reached a final state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusExpired
}

// CanBeCancelled returns true if the booking can transition to CANCELLED
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPendingPayment || b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the booking can transition to CONFIRMED
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPendingPayment
}

// CanTransitionTo reports whether the state machine allows moving to next.
// BLOCKED bookings never transition: they are deleted on unblock.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPendingPayment:
		return next == StatusConfirmed || next == StatusCancelled || next == StatusExpired
	case StatusConfirmed:
		return next == StatusCancelled
	default:
		return false
	}
}

// ValidStatus returns true if s is one of the known booking statuses
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusBlocked, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// BarberBookingsFilter фильтр для получения бронирований барбера
type BarberBookingsFilter struct {
	BarberID        int64          // Обязательный параметр
	BranchID        *int64         // Фильтр по филиалу (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и истекшие брони
}
