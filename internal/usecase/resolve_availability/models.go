package resolve_availability

import (
	"time"

	"github.com/avelir/salon-appointment-service/pkg/types"
)

// Reason код причины для пользовательских сообщений
// Пустой список мастеров - валидный результат, а не ошибка:
// по коду причины UI различает "нет специалистов вообще",
// "у всех выходной" и "все заняты"
type Reason string

const (
	ReasonOK            Reason = "ok"
	ReasonNoSpecialists Reason = "no_specialists"
	ReasonDayOff        Reason = "day_off"
	ReasonAllBusy       Reason = "all_busy"
)

// Request модель запроса на подбор доступных мастеров
type Request struct {
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала (например, "10:00")

	// DurationMinutes переопределяет длительность услуги
	// Используется вызывающей стороной для добавления буфера на уборку
	// 0 = длительность из каталога
	DurationMinutes int
}

// StaffOption один доступный мастер в ответе
type StaffOption struct {
	ID       int64
	Name     string
	Position string
}

// Response модель ответа со списком доступных мастеров
// Staff отсортирован по имени (стабильный порядок)
type Response struct {
	Staff  []StaffOption // доступные и свободные мастера (может быть пуст)
	Reason Reason        // код причины при пустом списке

	// Счётчики для пользовательских сообщений
	SpecialistCount int // мастеров с нужной специализацией всего
	BusyCount       int // из них занятых на запрошенный интервал
}
