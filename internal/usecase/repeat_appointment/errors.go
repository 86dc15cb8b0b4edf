package repeat_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("repeat_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда исходная запись не найдена
	ErrAppointmentNotFound = errors.New("repeat_appointment: appointment not found")

	// ErrNotRepeatable возвращается при повторе записи не в терминальном статусе
	// Активную запись повторять нельзя - её слоты ещё удерживаются
	ErrNotRepeatable = errors.New("repeat_appointment: only completed or rejected appointments can be repeated")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("repeat_appointment: internal error")
)
