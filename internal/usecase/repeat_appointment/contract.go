package repeat_appointment

import (
	"context"

	"github.com/avelir/salon-appointment-service/internal/domain"
	"github.com/avelir/salon-appointment-service/internal/usecase/submit_booking"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// BookingSubmitter интерфейс оформления клонированного booking request
// Клон проходит тот же путь, что и новая запись: условная вставка
// сегментов, ретраи номера счета
type BookingSubmitter interface {
	Execute(ctx context.Context, req *submit_booking.Request) (*submit_booking.Response, error)
}

// InvoiceNumberGenerator интерфейс генерации номера счета для клона
type InvoiceNumberGenerator interface {
	Next() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
