package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotAtConfirmation возвращается при попытке зафиксировать запрос
	// до прохождения всех шагов мастера
	ErrNotAtConfirmation = errors.New("session: not at confirmation step")

	// ErrAlreadyConfirmed возвращается при изменении сессии после фиксации
	ErrAlreadyConfirmed = errors.New("session: booking request already confirmed")

	// ErrServiceNotSelected возвращается при назначении мастера на невыбранную услугу
	ErrServiceNotSelected = errors.New("session: service is not selected")

	// ErrServiceAlreadySelected возвращается при повторном добавлении услуги
	ErrServiceAlreadySelected = errors.New("session: service is already selected")

	// ErrInternal возвращается при внутренних ошибках сессии
	ErrInternal = errors.New("session: internal error")
)

// ValidationErrors ошибки валидации шага, ключ - имя поля
// Возвращаются вызывающей стороне как есть и никогда не логируются как сбой
type ValidationErrors map[string]string

// Error реализует error; поля перечисляются в стабильном порядке
func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// HasErrors возвращает true, если есть хотя бы одна ошибка
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}
