package mercadopago

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда шлюз не знает платеж с таким ID
	ErrPaymentNotFound = errors.New("mercadopago: payment not found")

	// ErrInvalidResponse возвращается при неожиданном ответе шлюза
	ErrInvalidResponse = errors.New("mercadopago: invalid response")

	// ErrInternal возвращается при сетевых и внутренних ошибках клиента
	ErrInternal = errors.New("mercadopago: internal error")
)
