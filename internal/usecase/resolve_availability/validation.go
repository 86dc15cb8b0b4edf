package resolve_availability

import (
	"fmt"
	"time"

	"github.com/avelir/salon-appointment-service/internal/domain"
	"github.com/avelir/salon-appointment-service/internal/schedule"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// filterQualified оставляет мастеров со специализацией на услугу
func filterQualified(roster []*domain.StaffMember, serviceID int64) []*domain.StaffMember {
	qualified := make([]*domain.StaffMember, 0, len(roster))
	for _, member := range roster {
		if member.IsQualifiedFor(serviceID) {
			qualified = append(qualified, member)
		}
	}
	return qualified
}

// filterByWindow оставляет мастеров, чьё рабочее окно на день недели даты
// присутствует (не выходной) и полностью покрывает интервал
func filterByWindow(staff []*domain.StaffMember, date time.Time, interval schedule.Interval) []*domain.StaffMember {
	working := make([]*domain.StaffMember, 0, len(staff))
	weekday := date.Weekday()

	for _, member := range staff {
		window := member.Availability.WindowFor(weekday)
		if window == nil {
			continue
		}
		if !window.Covers(interval.Start, interval.End) {
			continue
		}
		working = append(working, member)
	}

	return working
}
