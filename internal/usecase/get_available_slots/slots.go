package get_available_slots

import (
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
	"github.com/turnosapp/booking-service/pkg/types"
)

// generateCandidates генерирует кандидатов слотов обходом сетки по каждому
// открытому интервалу. Кандидат валиден, если услуга целиком помещается
// в интервал: start + duration <= interval.End
func generateCandidates(intervals []domain.Interval, gridMinutes, durationMinutes int) ([]types.TimeString, error) {
	candidates := make([]types.TimeString, 0)

	for _, iv := range intervals {
		current := iv.Start

		for current.IsBefore(iv.End) {
			slotEnd, err := current.AddMinutes(durationMinutes)
			if err != nil {
				// Услуга вышла за полночь - дальше по сетке кандидатов нет
				break
			}
			if slotEnd.IsAfter(iv.End) {
				break
			}

			candidates = append(candidates, current)

			current, err = current.AddMinutes(gridMinutes)
			if err != nil {
				break
			}
		}
	}

	return candidates, nil
}

// filterPastSlots отбрасывает кандидатов, начинающихся раньше текущего времени.
// Применяется только если запрошенная дата - сегодня.
func filterPastSlots(candidates []types.TimeString, requestDate, now time.Time) []types.TimeString {
	if !isSameDay(requestDate, now) {
		return candidates
	}

	nowTime := types.NewTimeString(now)

	filtered := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if !slot.IsBefore(nowTime) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// filterOccupiedSlots отбрасывает кандидатов, пересекающихся с активными
// бронированиями или заблокированными ячейками сетки.
//
// Пересечение строгое: бронирование, заканчивающееся ровно в начале слота
// (или начинающееся ровно в его конце), слот не занимает.
// Блокировка трактуется как занятая ячейка сетки длиной gridMinutes.
func filterOccupiedSlots(
	candidates []types.TimeString,
	durationMinutes int,
	gridMinutes int,
	bookings []*domain.Booking,
	blocks []*domain.Block,
) []types.TimeString {
	free := make([]types.TimeString, 0, len(candidates))

	for _, slot := range candidates {
		slotEnd, err := slot.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}

		if hasOverlappingBooking(slot, slotEnd, bookings) {
			continue
		}
		if hasOverlappingBlock(slot, slotEnd, gridMinutes, blocks) {
			continue
		}

		free = append(free, slot)
	}

	return free
}

// hasOverlappingBooking проверяет строгое пересечение слота с занимающим бронированием
func hasOverlappingBooking(slotStart, slotEnd types.TimeString, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if !booking.Occupies() {
			continue
		}

		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		if booking.StartTime.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			return true
		}
	}

	return false
}

// hasOverlappingBlock проверяет пересечение слота с заблокированной ячейкой сетки
func hasOverlappingBlock(slotStart, slotEnd types.TimeString, gridMinutes int, blocks []*domain.Block) bool {
	for _, block := range blocks {
		blockEnd, err := block.Time.AddMinutes(gridMinutes)
		if err != nil {
			continue
		}

		if block.Time.IsBefore(slotEnd) && blockEnd.IsAfter(slotStart) {
			return true
		}
	}

	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
