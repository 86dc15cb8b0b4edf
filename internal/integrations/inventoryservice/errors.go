package inventoryservice

import "errors"

var (
	// ErrInsufficientStock возвращается, когда запрошенное количество превышает остаток
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrProductNotFound возвращается, когда товар не найден на складе
	ErrProductNotFound = errors.New("product not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("inventoryservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("inventoryservice client: invalid response")
)
