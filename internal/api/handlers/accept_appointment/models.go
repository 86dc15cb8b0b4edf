package accept_appointment

import (
	acceptAppointment "github.com/avelir/salon-appointment-service/internal/usecase/accept_appointment"
)

// AcceptAppointmentRequest HTTP request model
type AcceptAppointmentRequest struct {
	// Executors - мастера-исполнители; пусто = мастера из сегментов записи
	Executors []int64 `json:"executors,omitempty"`
}

// AcceptAppointmentResponse HTTP response model
type AcceptAppointmentResponse struct {
	ID            int64   `json:"id"`
	InvoiceNumber string  `json:"invoiceNumber"`
	Status        string  `json:"status"`
	Executors     []int64 `json:"executors"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *acceptAppointment.Response) *AcceptAppointmentResponse {
	return &AcceptAppointmentResponse{
		ID:            resp.Appointment.ID,
		InvoiceNumber: resp.Appointment.InvoiceNumber,
		Status:        string(resp.Appointment.Status),
		Executors:     resp.Appointment.Executors,
	}
}
