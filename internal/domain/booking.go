package domain

import (
	"time"

	"github.com/avelir/salon-appointment-service/pkg/types"
)

// PaymentMethod is the payment method chosen at checkout
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentBank PaymentMethod = "bank"
	PaymentPOS  PaymentMethod = "pos"
)

// IsValid returns true for a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentBank, PaymentPOS:
		return true
	}
	return false
}

// CustomerInfo is the customer snapshot captured by the checkout wizard
type CustomerInfo struct {
	FullName string
	Gender   string
	Email    string
	Phone    string
	Note     *string
}

// RequestSegment is one service selection bound to a resolved staff member
type RequestSegment struct {
	ServiceID       int64
	ServiceName     string
	StaffID         int64
	StartTime       types.TimeString
	DurationMinutes int
	Price           float64 // discounted price frozen at confirmation
	OriginalPrice   float64
}

// ProductSelection is one (product, quantity) pair chosen at checkout
type ProductSelection struct {
	ProductID       int64
	ProductName     string
	Quantity        int
	UnitPrice       float64
	DiscountPercent float64
}

// Totals holds the recomputed price aggregates of a booking request
type Totals struct {
	Original   float64
	Discounted float64
	Savings    float64
}

// BookingRequest is the immutable output of a completed checkout session,
// ready to be persisted as a pending appointment
type BookingRequest struct {
	InvoiceNumber string
	Customer      CustomerInfo
	Date          time.Time
	Segments      []RequestSegment
	Products      []ProductSelection
	PaymentMethod PaymentMethod
	Totals        Totals
}

// AppointmentsFilter filters appointment listings for admin screens
type AppointmentsFilter struct {
	Status    *AppointmentStatus // optional status filter
	StartDate *time.Time
	EndDate   *time.Time
	StaffID   *int64 // only appointments with a segment assigned to this staff member
}
