package complete_appointment

import (
	"github.com/avelir/salon-appointment-service/internal/domain"
)

// Request модель запроса на завершение записи
type Request struct {
	AppointmentID int64
}

// Response модель ответа с завершённой записью
type Response struct {
	Appointment *domain.Appointment
}
