package complete_appointment

import (
	"context"

	"github.com/avelir/salon-appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// InventoryClient интерфейс сервиса склада
type InventoryClient interface {
	// DecrementStock возвращает inventoryservice.ErrInsufficientStock,
	// если остатка не хватает - списание при этом не происходит
	DecrementStock(ctx context.Context, productID int64, quantity int) error
	RestoreStock(ctx context.Context, productID int64, quantity int) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
