package resolve_availability

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/avelir/salon-appointment-service/internal/domain"
	"github.com/avelir/salon-appointment-service/internal/schedule"
	catalogRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/catalog"
)

// UseCase use case подбора мастеров, доступных для услуги на дату и время
// Только чтение: состояние не изменяется, бизнес-условия не считаются ошибками
type UseCase struct {
	catalogRepo  CatalogRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет подбор доступных мастеров в три фильтра:
// 1. Специализация (абсолютный фильтр - мастер без специализации не попадёт
//    в результат независимо от расписания)
// 2. Окно рабочего дня с учётом длительности (услуга, заканчивающаяся после
//    конца окна мастера, не подходит)
// 3. Пересечения с существующими сегментами
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveAvailability: service=%d, date=%s, time=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveAvailability: validation failed: %v", err)
		return nil, err
	}

	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("ResolveAvailability: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("ResolveAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ResolveAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = service.DurationMinutes
	}

	interval, err := schedule.NewInterval(req.StartTime, duration)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time interval: %v", ErrInvalidInput, err)
	}

	roster, err := uc.catalogRepo.ListStaff(ctx)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	// Фильтр 1: специализация
	qualified := filterQualified(roster, req.ServiceID)
	if len(qualified) == 0 {
		uc.logger.Info("ResolveAvailability: no specialists for service=%d", req.ServiceID)
		return &Response{Staff: []StaffOption{}, Reason: ReasonNoSpecialists}, nil
	}

	// Фильтр 2: окно рабочего дня на день недели запрошенной даты
	working := filterByWindow(qualified, req.Date, interval)
	if len(working) == 0 {
		uc.logger.Info("ResolveAvailability: all %d specialists off duty for service=%d on %s",
			len(qualified), req.ServiceID, req.Date.Format(domain.DateFormat))
		return &Response{
			Staff:           []StaffOption{},
			Reason:          ReasonDayOff,
			SpecialistCount: len(qualified),
		}, nil
	}

	// Фильтр 3: пересечения с существующими сегментами
	available := make([]StaffOption, 0, len(working))
	busyCount := 0

	for _, member := range working {
		segments, err := uc.scheduleRepo.SegmentsFor(ctx, member.ID, req.Date)
		if err != nil {
			uc.logger.Error("ResolveAvailability: failed to get segments for staff=%d: %v", member.ID, err)
			return nil, fmt.Errorf("%w: failed to get segments: %v", ErrInternal, err)
		}

		conflict, err := schedule.HasConflict(interval, segments)
		if err != nil {
			uc.logger.Error("ResolveAvailability: conflict check failed for staff=%d: %v", member.ID, err)
			return nil, fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}

		if conflict {
			busyCount++
			continue
		}

		available = append(available, StaffOption{
			ID:       member.ID,
			Name:     member.Name,
			Position: member.Position,
		})
	}

	// Стабильный порядок по имени
	sort.SliceStable(available, func(i, j int) bool {
		return available[i].Name < available[j].Name
	})

	reason := ReasonOK
	if len(available) == 0 {
		reason = ReasonAllBusy
	}

	uc.logger.Info("ResolveAvailability: %d of %d specialists available for service=%d (%d busy)",
		len(available), len(qualified), req.ServiceID, busyCount)

	return &Response{
		Staff:           available,
		Reason:          reason,
		SpecialistCount: len(qualified),
		BusyCount:       busyCount,
	}, nil
}
