package process_payment_event

import "errors"

var (
	// ErrUnauthorized возвращается при невалидной подписи уведомления.
	// Единственная ошибка, на которую handler отвечает не-2xx статусом.
	ErrUnauthorized = errors.New("invalid webhook signature")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
