package session

import (
	"context"
	"time"

	"github.com/avelir/salon-appointment-service/internal/domain"
	resolveAvailability "github.com/avelir/salon-appointment-service/internal/usecase/resolve_availability"
)

// Step шаг мастера оформления записи
type Step int

const (
	StepCustomerInfo Step = iota
	StepServiceSelection
	StepProductSelection
	StepPayment
	StepConfirmation
)

// String возвращает имя шага для логов и сообщений
func (s Step) String() string {
	switch s {
	case StepCustomerInfo:
		return "customer_info"
	case StepServiceSelection:
		return "service_selection"
	case StepProductSelection:
		return "product_selection"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// Config параметры оформления записи из конфигурации сервиса
type Config struct {
	MaxBookingDays       int               // насколько далеко вперёд доступна запись
	WorkingHours         domain.TimeWindow // рабочие часы салона
	CleanupBufferPercent int               // буфер на уборку, процент от суммарной длительности
}

// AvailabilityResolver интерфейс подбора доступных мастеров
type AvailabilityResolver interface {
	Execute(ctx context.Context, req *resolveAvailability.Request) (*resolveAvailability.Response, error)
}

// InvoiceNumberGenerator интерфейс генерации номеров счетов
type InvoiceNumberGenerator interface {
	Next() string
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// serviceEntry выбранная услуга с назначенным мастером (0 = не назначен)
type serviceEntry struct {
	service *domain.Service
	staffID int64
}

// productEntry выбранный товар с количеством
type productEntry struct {
	product  *domain.Product
	quantity int
}
