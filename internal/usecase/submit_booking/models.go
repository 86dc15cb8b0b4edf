package submit_booking

import (
	"github.com/avelir/salon-appointment-service/internal/domain"
)

// Request модель запроса на оформление записи
// Booking - зафиксированный результат сессии оформления
type Request struct {
	Booking *domain.BookingRequest
}

// Response модель ответа с созданной записью в статусе pending
type Response struct {
	Appointment *domain.Appointment
}
