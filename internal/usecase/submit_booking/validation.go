package submit_booking

import (
	"fmt"
)

// validateRequest валидирует зафиксированный booking request
// Содержательная валидация полей выполнена сессией оформления,
// здесь проверяется только целостность самого запроса
func validateRequest(req *Request) error {
	if req == nil || req.Booking == nil {
		return fmt.Errorf("%w: booking request is required", ErrInvalidInput)
	}

	b := req.Booking

	if b.InvoiceNumber == "" {
		return fmt.Errorf("%w: invoice number is required", ErrInvalidInput)
	}

	if b.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(b.Segments) == 0 {
		return fmt.Errorf("%w: at least one segment is required", ErrInvalidInput)
	}

	for i, seg := range b.Segments {
		if seg.ServiceID <= 0 {
			return fmt.Errorf("%w: segment %d: serviceID must be positive", ErrInvalidInput, i)
		}
		if seg.StaffID <= 0 {
			return fmt.Errorf("%w: segment %d: staffID must be positive", ErrInvalidInput, i)
		}
		if err := seg.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: segment %d: invalid startTime: %v", ErrInvalidInput, i, err)
		}
		if seg.DurationMinutes <= 0 {
			return fmt.Errorf("%w: segment %d: durationMinutes must be positive", ErrInvalidInput, i)
		}
	}

	if !b.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, b.PaymentMethod)
	}

	if b.Totals.Original < 0 || b.Totals.Discounted < 0 || b.Totals.Savings < 0 {
		return fmt.Errorf("%w: totals must not be negative", ErrInvalidInput)
	}

	return nil
}
