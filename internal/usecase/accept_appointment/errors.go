package accept_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("accept_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("accept_appointment: appointment not found")

	// ErrInvalidStatus возвращается при подтверждении записи не в статусе pending
	ErrInvalidStatus = errors.New("accept_appointment: appointment cannot be accepted in its current status")

	// ErrSchedulingConflict возвращается, когда авторитетная проверка
	// при подтверждении обнаружила пересечение с другой активной записью
	ErrSchedulingConflict = errors.New("accept_appointment: appointment conflicts with another active booking")

	// ErrPaymentFailed возвращается, когда платёжный шлюз не создал pending-платёж
	ErrPaymentFailed = errors.New("accept_appointment: failed to create pending payment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("accept_appointment: internal error")
)
