package payouts

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("payouts.service: barber not found")

	// ErrInvalidPeriod возвращается, когда конец периода раньше начала
	ErrInvalidPeriod = errors.New("payouts.service: period end must not be before start")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payouts.service: internal error")
)
