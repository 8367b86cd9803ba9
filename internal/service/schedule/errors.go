package schedule

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("schedule.service: barber not found")

	// ErrExceptionalDayNotFound возвращается, когда исключительный день не найден
	ErrExceptionalDayNotFound = errors.New("schedule.service: exceptional day not found")

	// ErrInvalidInterval возвращается, когда конец интервала не позже начала
	ErrInvalidInterval = errors.New("schedule.service: interval end must be after start")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule.service: internal error")
)
