package complete_appointment

import (
	completeAppointment "github.com/avelir/salon-appointment-service/internal/usecase/complete_appointment"
)

// CompleteAppointmentResponse HTTP response model
type CompleteAppointmentResponse struct {
	ID            int64  `json:"id"`
	InvoiceNumber string `json:"invoiceNumber"`
	Status        string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completeAppointment.Response) *CompleteAppointmentResponse {
	return &CompleteAppointmentResponse{
		ID:            resp.Appointment.ID,
		InvoiceNumber: resp.Appointment.InvoiceNumber,
		Status:        string(resp.Appointment.Status),
	}
}
