package reject_appointment

import (
	"context"

	"github.com/avelir/salon-appointment-service/internal/service/appointments/models"
)

type AppointmentService interface {
	Reject(ctx context.Context, id int64, req *models.RejectAppointmentRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
