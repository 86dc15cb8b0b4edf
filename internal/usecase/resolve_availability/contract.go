package resolve_availability

import (
	"context"
	"time"

	"github.com/avelir/salon-appointment-service/internal/domain"
)

// CatalogRepository интерфейс read-only каталога услуг и мастеров
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	ListStaff(ctx context.Context) ([]*domain.StaffMember, error)
}

// ScheduleRepository интерфейс репозитория сегментов расписания
type ScheduleRepository interface {
	// SegmentsFor возвращает активные сегменты мастера на дату
	// (сегменты отклонённых записей исключены)
	SegmentsFor(ctx context.Context, staffID int64, date time.Time) ([]*domain.AppointmentSegment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
