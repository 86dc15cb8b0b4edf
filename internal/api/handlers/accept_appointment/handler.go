package accept_appointment

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avelir/salon-appointment-service/internal/api/handlers"
	acceptAppointment "github.com/avelir/salon-appointment-service/internal/usecase/accept_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgInvalidStatus        = "запись нельзя подтвердить в текущем статусе"
	msgSchedulingConflict   = "запись пересекается с другой активной записью"
	msgPaymentFailed        = "не удалось создать платёж"
)

type Handler struct {
	useCase AcceptAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase AcceptAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/accept - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Тело опционально: без него исполнители берутся из сегментов
	var req AcceptAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /appointments/{id}/accept - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &acceptAppointment.Request{
		AppointmentID: appointmentID,
		Executors:     req.Executors,
	})
	if err != nil {
		switch {
		case errors.Is(err, acceptAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/accept - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, acceptAppointment.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/{id}/accept - Invalid status: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidStatus)

		case errors.Is(err, acceptAppointment.ErrSchedulingConflict):
			h.logger.Warn("PATCH /appointments/{id}/accept - Scheduling conflict: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgSchedulingConflict)

		case errors.Is(err, acceptAppointment.ErrPaymentFailed):
			h.logger.Error("PATCH /appointments/{id}/accept - Payment failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentFailed)

		case errors.Is(err, acceptAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/accept - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /appointments/{id}/accept - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/accept - Confirmed: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
