package complete_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("complete_appointment: appointment not found")

	// ErrInvalidStatus возвращается при завершении записи не в статусе confirmed
	ErrInvalidStatus = errors.New("complete_appointment: appointment cannot be completed in its current status")

	// ErrInsufficientStock возвращается, когда на складе не хватает товара
	// Завершение при этом не происходит, ранее списанные позиции возвращены
	ErrInsufficientStock = errors.New("complete_appointment: insufficient stock for appointment products")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_appointment: internal error")
)
