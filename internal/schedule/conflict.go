// Package schedule проверка пересечений временных интервалов для защиты
// от двойного бронирования мастера
package schedule

import (
	"github.com/avelir/salon-appointment-service/internal/domain"
	"github.com/avelir/salon-appointment-service/pkg/types"
)

// Interval полуоткрытый интервал времени [Start, End) в пределах одного дня
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// NewInterval создает интервал из времени начала и длительности в минутах
func NewInterval(start types.TimeString, durationMinutes int) (Interval, error) {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов
// Интервалы пересекаются, только если:
// - начало одного СТРОГО раньше конца другого И
// - начало другого СТРОГО раньше конца первого
//
// Граничные случаи пересечением не считаются:
// 10:00-11:00 и 11:00-12:00 совместимы (back-to-back бронирования)
func Overlaps(a, b Interval) bool {
	return a.Start.IsBefore(b.End) && b.Start.IsBefore(a.End)
}

// HasConflict проверяет, пересекается ли кандидат с существующими сегментами мастера
// Сегменты отклонённых записей должны быть исключены вызывающей стороной
// (репозиторий расписания возвращает только активные сегменты)
//
// Guard не знает про буферы: если нужен буфер на уборку, вызывающая сторона
// расширяет интервал кандидата до вызова
func HasConflict(candidate Interval, segments []*domain.AppointmentSegment) (bool, error) {
	conflict, _, err := FirstConflict(candidate, segments)
	return conflict, err
}

// FirstConflict возвращает первый сегмент, пересекающийся с кандидатом
func FirstConflict(candidate Interval, segments []*domain.AppointmentSegment) (bool, *domain.AppointmentSegment, error) {
	for _, seg := range segments {
		segEnd, err := seg.End()
		if err != nil {
			return false, nil, err
		}

		if Overlaps(candidate, Interval{Start: seg.StartTime, End: segEnd}) {
			return true, seg, nil
		}
	}

	return false, nil, nil
}
