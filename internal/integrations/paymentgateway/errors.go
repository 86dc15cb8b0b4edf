package paymentgateway

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж по записи не найден
	ErrPaymentNotFound = errors.New("payment not found for appointment")

	// ErrDuplicatePayment возвращается, когда pending-платёж по записи уже создан
	// Благодаря idempotency key повторная отправка безопасна
	ErrDuplicatePayment = errors.New("pending payment already exists")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")
)
