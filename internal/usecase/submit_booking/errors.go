package submit_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном booking request
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrSchedulingConflict возвращается, когда запрошенный слот занят
	// конкурентной записью - клиенту предлагается выбрать другое время
	ErrSchedulingConflict = errors.New("submit_booking: requested time slot is already taken")

	// ErrInvoiceExhausted возвращается, когда за отведённые попытки
	// не удалось получить свободный номер счета
	ErrInvoiceExhausted = errors.New("submit_booking: failed to generate unique invoice number")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)
