package complete_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avelir/salon-appointment-service/internal/api/handlers"
	completeAppointment "github.com/avelir/salon-appointment-service/internal/usecase/complete_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgInvalidStatus        = "запись нельзя завершить в текущем статусе"
	msgInsufficientStock    = "недостаточно товара на складе"
)

type Handler struct {
	useCase CompleteAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CompleteAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/complete - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &completeAppointment.Request{
		AppointmentID: appointmentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, completeAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/complete - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, completeAppointment.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/{id}/complete - Invalid status: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidStatus)

		case errors.Is(err, completeAppointment.ErrInsufficientStock):
			h.logger.Warn("PATCH /appointments/{id}/complete - Insufficient stock: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondError(w, http.StatusConflict, msgInsufficientStock)

		case errors.Is(err, completeAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/complete - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		default:
			h.logger.Error("PATCH /appointments/{id}/complete - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/complete - Completed: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
