package domain

import (
	"time"

	"github.com/avelir/salon-appointment-service/pkg/types"
)

// Service represents a salon service from the catalog.
// Immutable once loaded for a booking session.
type Service struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
	DiscountPercent float64 // 0-100, 0 = no discount
	CategoryID      int64
}

// Product represents a retail product that can be added to an appointment
type Product struct {
	ID              int64
	Name            string
	Price           float64
	DiscountPercent float64
	Stock           int // non-negative, decremented only at completion
}

// InStock returns true if at least quantity units are available
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}

// TimeWindow is a [Start, End) working window within one day
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Covers returns true if the [start, end) interval fits entirely inside the window
func (w TimeWindow) Covers(start, end types.TimeString) bool {
	return !start.IsBefore(w.Start) && !end.IsAfter(w.End)
}

// WeekAvailability holds one optional working window per weekday.
// A nil window means the staff member has that day off.
type WeekAvailability struct {
	Monday    *TimeWindow
	Tuesday   *TimeWindow
	Wednesday *TimeWindow
	Thursday  *TimeWindow
	Friday    *TimeWindow
	Saturday  *TimeWindow
	Sunday    *TimeWindow
}

// WindowFor returns the working window for the given weekday, nil if day off
func (a WeekAvailability) WindowFor(weekday time.Weekday) *TimeWindow {
	switch weekday {
	case time.Monday:
		return a.Monday
	case time.Tuesday:
		return a.Tuesday
	case time.Wednesday:
		return a.Wednesday
	case time.Thursday:
		return a.Thursday
	case time.Friday:
		return a.Friday
	case time.Saturday:
		return a.Saturday
	case time.Sunday:
		return a.Sunday
	default:
		return nil
	}
}

// StaffMember represents a salon employee with service specializations
// and a weekly availability schedule
type StaffMember struct {
	ID              int64
	Name            string
	Position        string
	Specializations []int64 // service IDs the member is qualified for
	Availability    WeekAvailability
}

// IsQualifiedFor returns true if the staff member's specializations include the service
func (m *StaffMember) IsQualifiedFor(serviceID int64) bool {
	for _, id := range m.Specializations {
		if id == serviceID {
			return true
		}
	}
	return false
}
