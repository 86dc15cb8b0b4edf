package reject_appointment

// RejectAppointmentRequest HTTP request model
type RejectAppointmentRequest struct {
	Reason string `json:"reason"`
}
