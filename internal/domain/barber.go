package domain

import (
	"time"

	"github.com/turnosapp/booking-service/pkg/types"
)

// Barber represents a barber assigned to a branch
type Barber struct {
	ID        int64
	Name      string
	BranchID  int64
	Phone     *string
	PhotoURL  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service represents a bookable service (corte, corte+barba, ...)
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	// DepositAmount amount charged online as a seña; 0 means full price is charged
	DepositAmount float64
	// Sessions number of weekly sessions the service spans; 1 for a normal service
	Sessions  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentAmount returns the amount charged through the gateway at reservation time
func (s *Service) PaymentAmount() float64 {
	if s.DepositAmount > 0 {
		return s.DepositAmount
	}
	return s.Price
}

// RequiresDeposit returns true if only a deposit is charged online
func (s *Service) RequiresDeposit() bool {
	return s.DepositAmount > 0 && s.DepositAmount < s.Price
}

// WeeklyScheduleEntry is one recurring shift of a barber's weekly template.
// A barber may have up to two entries per weekday (shifts T1/T2).
type WeeklyScheduleEntry struct {
	ID        int64
	BarberID  int64
	Weekday   int // 0=Sunday .. 6=Saturday, matching time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
}

// ExceptionalDay is a one-off shift for a specific date. When any exceptional
// entries exist for a date they replace the weekly template entirely.
type ExceptionalDay struct {
	ID        int64
	BarberID  int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Block removes a single grid slot from a barber's availability for a date
type Block struct {
	ID       int64
	BarberID int64
	Date     time.Time
	Time     types.TimeString
}
