package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrCannotReject возвращается, когда запись нельзя отклонить в текущем статусе
	ErrCannotReject = errors.New("appointment cannot be rejected")

	// ErrReasonRequired возвращается при отклонении без причины
	ErrReasonRequired = errors.New("reject reason is required")

	// ErrAlreadyPaid возвращается при повторной отметке об оплате
	ErrAlreadyPaid = errors.New("appointment is already paid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
