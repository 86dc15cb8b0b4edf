package repeat_appointment

import (
	"context"

	repeatAppointment "github.com/avelir/salon-appointment-service/internal/usecase/repeat_appointment"
)

type RepeatAppointmentUseCase interface {
	Execute(ctx context.Context, req *repeatAppointment.Request) (*repeatAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
