package accept_appointment

import (
	"context"

	acceptAppointment "github.com/avelir/salon-appointment-service/internal/usecase/accept_appointment"
)

type AcceptAppointmentUseCase interface {
	Execute(ctx context.Context, req *acceptAppointment.Request) (*acceptAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
