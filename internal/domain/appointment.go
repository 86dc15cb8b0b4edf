package domain

import (
	"time"

	"github.com/avelir/salon-appointment-service/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusRejected  AppointmentStatus = "rejected"
)

// Appointment represents a persisted booking with its frozen request snapshot.
// Customer data, segments, product lines and totals are immutable after
// creation; only status, reject reason, executors and the paid flag change.
type Appointment struct {
	ID            int64
	InvoiceNumber string
	Status        AppointmentStatus

	// Customer snapshot
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Gender        string
	Note          *string

	Date          time.Time
	PaymentMethod PaymentMethod

	Segments []*AppointmentSegment
	Products []*ProductLine

	// Totals recomputed server-side at submission, never trusted from the client
	OriginalTotal   float64
	DiscountedTotal float64
	Savings         float64

	// Staff members who executed the appointment, assigned at accept
	Executors []int64

	RejectReason *string
	Paid         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentSegment is one service+staff+time-window unit within an appointment
type AppointmentSegment struct {
	ID              int64
	AppointmentID   int64
	ServiceID       int64
	StaffID         int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int

	// Denormalized service data for history; Price is the discounted
	// price frozen at confirmation, OriginalPrice the pre-discount one
	ServiceName   string
	Price         float64
	OriginalPrice float64
}

// End returns the half-open end of the segment's time interval
func (s *AppointmentSegment) End() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationMinutes)
}

// ProductLine is one product selection attached to an appointment
type ProductLine struct {
	ID            int64
	AppointmentID int64
	ProductID     int64
	Quantity      int

	// Denormalized product data frozen at confirmation
	ProductName     string
	UnitPrice       float64
	DiscountPercent float64
}

// IsTerminal returns true if no further status transition is permitted
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusRejected
}

// CanBeAccepted returns true if the appointment may move to confirmed
func (a *Appointment) CanBeAccepted() bool {
	return a.Status == StatusPending
}

// CanBeRejected returns true if the appointment may move to rejected
func (a *Appointment) CanBeRejected() bool {
	return a.Status == StatusPending
}

// CanBeCompleted returns true if the appointment may move to completed
func (a *Appointment) CanBeCompleted() bool {
	return a.Status == StatusConfirmed
}

// IsActive returns true if the appointment still claims its time slots.
// Rejected appointments release their segments from conflict checks.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusRejected
}
