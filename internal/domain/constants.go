package domain

// Default booking configuration values
const (
	DefaultMaxBookingDays = 60 // how far ahead a customer may book
	DefaultInvoiceRetries = 3  // invoice number re-rolls before giving up
	DefaultOpenTime       = "09:00"
	DefaultCloseTime      = "20:00"
	CleanupBufferPercent  = 5 // extra duration added for cleanup between services
)

// Business validation constants
const (
	MinCustomerNameLength = 10
	MaxCustomerNameLength = 100
	MaxNoteLength         = 500
	MaxRejectReasonLength = 500
	MaxProductQuantity    = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses are statuses with no outgoing transitions except the repeat factory
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusRejected,
}

// ActiveStatuses are statuses whose segments still claim their time slots
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
