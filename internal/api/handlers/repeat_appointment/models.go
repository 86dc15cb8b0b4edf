package repeat_appointment

import (
	"github.com/avelir/salon-appointment-service/internal/domain"
	repeatAppointment "github.com/avelir/salon-appointment-service/internal/usecase/repeat_appointment"
)

// RepeatAppointmentRequest HTTP request model
type RepeatAppointmentRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// RepeatAppointmentResponse HTTP response model
type RepeatAppointmentResponse struct {
	ID            int64  `json:"id"`
	InvoiceNumber string `json:"invoiceNumber"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *repeatAppointment.Response) *RepeatAppointmentResponse {
	out := &RepeatAppointmentResponse{
		ID:            resp.Appointment.ID,
		InvoiceNumber: resp.Appointment.InvoiceNumber,
		Status:        string(resp.Appointment.Status),
		Date:          resp.Appointment.Date.Format(domain.DateFormat),
	}
	if len(resp.Appointment.Segments) > 0 {
		out.StartTime = string(resp.Appointment.Segments[0].StartTime)
	}
	return out
}
