package appointments

import (
	"context"

	"github.com/avelir/salon-appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Reject(ctx context.Context, id int64, reason string) error
	MarkPaid(ctx context.Context, id int64) error
}

// PaymentGateway интерфейс платёжного шлюза
type PaymentGateway interface {
	SettlePayment(ctx context.Context, appointmentID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
