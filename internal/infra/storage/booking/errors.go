package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда частичный уникальный индекс отклонил
	// вставку: слот уже занят активным бронированием
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrNoPendingBooking возвращается, когда условное обновление не нашло
	// бронирование в статусе pending_payment
	ErrNoPendingBooking = errors.New("booking.repository: no pending booking to transition")

	// ErrNotCancellable возвращается, когда условная отмена не нашла
	// бронирование в отменяемом статусе
	ErrNotCancellable = errors.New("booking.repository: booking is not in a cancellable status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
