package repeat_appointment

import (
	"time"

	"github.com/avelir/salon-appointment-service/internal/domain"
	"github.com/avelir/salon-appointment-service/pkg/types"
)

// Request модель запроса на повтор записи
type Request struct {
	AppointmentID int64

	// Date и StartTime - новые дата и время начала
	// Сегменты клона сохраняют относительные интервалы исходной записи
	Date      time.Time
	StartTime types.TimeString
}

// Response модель ответа с новой pending записью
type Response struct {
	Appointment *domain.Appointment
}
