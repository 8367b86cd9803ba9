package manage_exceptional_days

import (
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
	"github.com/turnosapp/booking-service/pkg/types"
)

// CreateExceptionalDayRequest HTTP request model
type CreateExceptionalDayRequest struct {
	Date      string `json:"date"`      // "2026-09-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "18:00"
}

// ExceptionalDayResponse HTTP response model
type ExceptionalDayResponse struct {
	ID        int64  `json:"id"`
	BarberID  int64  `json:"barberId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToDomain конвертирует HTTP запрос в domain модель
func (r *CreateExceptionalDayRequest) ToDomain(barberID int64) (*domain.ExceptionalDay, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &domain.ExceptionalDay{
		BarberID:  barberID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromDomain конвертирует domain модель в HTTP response
func FromDomain(day *domain.ExceptionalDay) *ExceptionalDayResponse {
	return &ExceptionalDayResponse{
		ID:        day.ID,
		BarberID:  day.BarberID,
		Date:      day.Date.Format(domain.DateFormat),
		StartTime: day.StartTime.String(),
		EndTime:   day.EndTime.String(),
	}
}
