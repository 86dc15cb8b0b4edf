package submit_booking

import (
	"context"

	"github.com/avelir/salon-appointment-service/internal/domain"
	"github.com/avelir/salon-appointment-service/internal/session"
	submitBooking "github.com/avelir/salon-appointment-service/internal/usecase/submit_booking"
)

// SessionFactory создает новую сессию оформления для каждого запроса
type SessionFactory func() *session.Session

// CatalogRepository интерфейс read-only каталога услуг и товаров
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type SubmitBookingUseCase interface {
	Execute(ctx context.Context, req *submitBooking.Request) (*submitBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
