package accept_appointment

import (
	"github.com/avelir/salon-appointment-service/internal/domain"
)

// Request модель запроса на подтверждение записи администратором
type Request struct {
	AppointmentID int64

	// Executors - мастера, которые будут выполнять запись
	// Пустой список = мастера из сегментов записи
	Executors []int64
}

// Response модель ответа с подтверждённой записью
type Response struct {
	Appointment *domain.Appointment
}
