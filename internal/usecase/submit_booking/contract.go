package submit_booking

import (
	"context"

	"github.com/avelir/salon-appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// Create создает запись со строками товаров из booking request
	// Возвращает appointment.ErrInvoiceNumberTaken при занятом номере счета
	Create(ctx context.Context, req *domain.BookingRequest) (*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория сегментов расписания
type ScheduleRepository interface {
	// InsertSegment вставляет сегмент условной записью
	// Возвращает schedule.ErrConflictingSegment при занятом слоте
	InsertSegment(ctx context.Context, seg *domain.AppointmentSegment) (*domain.AppointmentSegment, error)
}

// TransactionManager интерфейс для выполнения операций в транзакции
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// InvoiceNumberGenerator интерфейс перегенерации номера счета при коллизии
type InvoiceNumberGenerator interface {
	Next() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
