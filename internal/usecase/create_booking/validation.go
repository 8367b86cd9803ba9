package create_booking

import (
	"fmt"
	"strings"

	"github.com/turnosapp/booking-service/internal/domain"
	"github.com/turnosapp/booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName exceeds %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if req.ExtraServices != nil && len(*req.ExtraServices) > domain.MaxExtraServicesLength {
		return fmt.Errorf("%w: extraServices exceeds %d characters", ErrInvalidInput, domain.MaxExtraServicesLength)
	}

	return nil
}

// validateSlotInSchedule проверяет, что слот выровнен по сетке внутри одного
// из открытых интервалов и услуга целиком помещается в интервал
func validateSlotInSchedule(
	start types.TimeString,
	durationMinutes int,
	gridMinutes int,
	intervals []domain.Interval,
) error {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return ErrOutsideSchedule
	}

	startMin, err := start.Minutes()
	if err != nil {
		return ErrOutsideSchedule
	}

	for _, iv := range intervals {
		if start.IsBefore(iv.Start) || end.IsAfter(iv.End) {
			continue
		}

		// Слот должен лежать на сетке, начинающейся от начала интервала
		ivStartMin, err := iv.Start.Minutes()
		if err != nil {
			continue
		}
		if (startMin-ivStartMin)%gridMinutes == 0 {
			return nil
		}
	}

	return ErrOutsideSchedule
}
