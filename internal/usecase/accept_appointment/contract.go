package accept_appointment

import (
	"context"
	"time"

	"github.com/avelir/salon-appointment-service/internal/domain"
	"github.com/avelir/salon-appointment-service/internal/integrations/paymentgateway"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// Confirm переводит запись в confirmed и фиксирует исполнителей
	Confirm(ctx context.Context, id int64, executors []int64) error
}

// ScheduleRepository интерфейс репозитория сегментов расписания
type ScheduleRepository interface {
	// SegmentsFor возвращает активные сегменты мастера на дату
	// Внутри транзакции строки блокируются FOR UPDATE
	SegmentsFor(ctx context.Context, staffID int64, date time.Time) ([]*domain.AppointmentSegment, error)
}

// PaymentGateway интерфейс платёжного шлюза
type PaymentGateway interface {
	CreatePendingPayment(ctx context.Context, appointmentID int64, amount float64, method domain.PaymentMethod) (*paymentgateway.Payment, error)
}

// TransactionManager интерфейс для выполнения операций в транзакции
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
