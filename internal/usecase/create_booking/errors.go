package create_booking

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("barber not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrOutsideSchedule возвращается, когда слот не попадает в открытые
	// интервалы барбера или не выровнен по сетке
	ErrOutsideSchedule = errors.New("slot is outside the barber's schedule")

	// ErrSlotNotAvailable возвращается, когда слот уже занят или заблокирован
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidDate возвращается при попытке записи на прошедшую дату
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrPaymentGateway возвращается, когда платежный шлюз не смог создать платеж
	ErrPaymentGateway = errors.New("failed to create payment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
