package session

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/avelir/salon-appointment-service/internal/domain"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// validateStep проверяет данные, накопленные к текущему шагу
func (s *Session) validateStep(step Step) ValidationErrors {
	switch step {
	case StepCustomerInfo:
		return s.validateCustomerInfo()
	case StepServiceSelection:
		return s.validateServiceSelection()
	case StepProductSelection:
		return s.validateProductSelection()
	case StepPayment:
		return s.validatePayment()
	}
	return ValidationErrors{}
}

func (s *Session) validateCustomerInfo() ValidationErrors {
	errs := ValidationErrors{}

	nameLen := utf8.RuneCountInString(s.customer.FullName)
	if nameLen < domain.MinCustomerNameLength || nameLen > domain.MaxCustomerNameLength {
		errs["fullName"] = fmt.Sprintf("must be between %d and %d characters",
			domain.MinCustomerNameLength, domain.MaxCustomerNameLength)
	}

	if s.customer.Gender != "male" && s.customer.Gender != "female" {
		errs["gender"] = "must be male or female"
	}

	if !emailRegex.MatchString(s.customer.Email) {
		errs["email"] = "invalid email format"
	}

	if !phoneRegex.MatchString(s.customer.Phone) {
		errs["phone"] = "invalid phone format"
	}

	if s.customer.Note != nil && utf8.RuneCountInString(*s.customer.Note) > domain.MaxNoteLength {
		errs["note"] = fmt.Sprintf("must not exceed %d characters", domain.MaxNoteLength)
	}

	if s.date.IsZero() {
		errs["date"] = "date is required"
	} else {
		today := dateOnly(s.timeProvider.Now())
		horizon := today.AddDate(0, 0, s.cfg.MaxBookingDays)
		requested := dateOnly(s.date)

		if requested.Before(today) {
			errs["date"] = "date must not be in the past"
		} else if requested.After(horizon) {
			errs["date"] = fmt.Sprintf("date must be within %d days from today", s.cfg.MaxBookingDays)
		}
	}

	if s.startTime.IsZero() {
		errs["startTime"] = "start time is required"
	} else if err := s.startTime.Validate(); err != nil {
		errs["startTime"] = "invalid time format, expected HH:MM"
	} else if s.startTime.IsBefore(s.cfg.WorkingHours.Start) || !s.startTime.IsBefore(s.cfg.WorkingHours.End) {
		errs["startTime"] = fmt.Sprintf("start time must be within working hours %s-%s",
			s.cfg.WorkingHours.Start, s.cfg.WorkingHours.End)
	}

	return errs
}

func (s *Session) validateServiceSelection() ValidationErrors {
	errs := ValidationErrors{}

	if len(s.services) == 0 {
		errs["services"] = "at least one service must be selected"
		return errs
	}

	for _, entry := range s.services {
		if entry.staffID == 0 {
			errs[fmt.Sprintf("services.%d", entry.service.ID)] = "staff member must be assigned"
		}
	}

	// Последняя услуга с буфером должна завершиться до закрытия салона
	end, err := s.startTime.AddMinutes(s.TotalDurationMinutes())
	if err != nil || end.IsAfter(s.cfg.WorkingHours.End) {
		errs["startTime"] = fmt.Sprintf("selected services do not fit before closing at %s",
			s.cfg.WorkingHours.End)
	}

	return errs
}

func (s *Session) validateProductSelection() ValidationErrors {
	errs := ValidationErrors{}

	for _, entry := range s.products {
		key := fmt.Sprintf("products.%d", entry.product.ID)

		if entry.quantity < 1 || entry.quantity > domain.MaxProductQuantity {
			errs[key] = fmt.Sprintf("quantity must be between 1 and %d", domain.MaxProductQuantity)
			continue
		}
		if !entry.product.InStock(entry.quantity) {
			errs[key] = "not enough items in stock"
		}
	}

	return errs
}

// dateOnly отбрасывает время, оставляя календарную дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *Session) validatePayment() ValidationErrors {
	errs := ValidationErrors{}

	if !s.payment.IsValid() {
		errs["paymentMethod"] = "must be one of: cash, card, bank, pos"
	}

	return errs
}
