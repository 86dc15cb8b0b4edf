package repeat_appointment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avelir/salon-appointment-service/internal/api/handlers"
	"github.com/avelir/salon-appointment-service/internal/domain"
	repeatAppointment "github.com/avelir/salon-appointment-service/internal/usecase/repeat_appointment"
	submitBooking "github.com/avelir/salon-appointment-service/internal/usecase/submit_booking"
	"github.com/avelir/salon-appointment-service/pkg/types"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени, ожидается HH:MM"
	msgNotFound             = "запись не найдена"
	msgNotRepeatable        = "повторить можно только завершённую или отклонённую запись"
	msgSlotTaken            = "выбранное время уже занято"
)

type Handler struct {
	useCase RepeatAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RepeatAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/repeat
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/repeat - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RepeatAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/repeat - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/repeat - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime := types.TimeString(req.StartTime)
	if err := startTime.Validate(); err != nil {
		h.logger.Warn("POST /appointments/{id}/repeat - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &repeatAppointment.Request{
		AppointmentID: appointmentID,
		Date:          date,
		StartTime:     startTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, repeatAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/repeat - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, repeatAppointment.ErrNotRepeatable):
			h.logger.Warn("POST /appointments/{id}/repeat - Not repeatable: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgNotRepeatable)

		case errors.Is(err, submitBooking.ErrSchedulingConflict):
			h.logger.Warn("POST /appointments/{id}/repeat - Scheduling conflict: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, repeatAppointment.ErrInvalidInput),
			errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/repeat - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments/{id}/repeat - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/repeat - Created: appointment_id=%d, invoice=%s",
		result.Appointment.ID, result.Appointment.InvoiceNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
