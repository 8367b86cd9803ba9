package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrGroupNotFound возвращается, когда группа бронирований не найдена
	ErrGroupNotFound = errors.New("bookings.service: booking group not found")

	// ErrCannotCancel возвращается при попытке отменить бронирование в терминальном
	// или заблокированном статусе
	ErrCannotCancel = errors.New("bookings.service: booking cannot be cancelled")

	// ErrNotPending возвращается при попытке подтвердить бронирование,
	// которое уже не ожидает оплаты (истекло или отменено)
	ErrNotPending = errors.New("bookings.service: booking is not awaiting payment")

	// ErrPaymentRefMismatch возвращается, когда подтвержденное бронирование
	// получает повторное подтверждение с другой ссылкой на платеж
	ErrPaymentRefMismatch = errors.New("bookings.service: booking already confirmed with different payment reference")

	// ErrSlotOccupied возвращается при попытке заблокировать слот,
	// занятый активным бронированием
	ErrSlotOccupied = errors.New("bookings.service: slot is occupied by an active booking")

	// ErrBlockExists возвращается, когда блокировка слота уже существует
	ErrBlockExists = errors.New("bookings.service: slot is already blocked")

	// ErrBlockNotFound возвращается, когда блокировка слота не найдена
	ErrBlockNotFound = errors.New("bookings.service: block not found")

	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("bookings.service: barber not found")

	// ErrValidation возвращается при невалидных входных данных
	ErrValidation = errors.New("bookings.service: validation error")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
