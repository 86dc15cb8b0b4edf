package reject_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avelir/salon-appointment-service/internal/api/handlers"
	"github.com/avelir/salon-appointment-service/internal/service/appointments"
	"github.com/avelir/salon-appointment-service/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgReasonRequired       = "необходимо указать причину отклонения"
	msgCannotReject         = "запись нельзя отклонить в текущем статусе"
	msgInvalidReason        = "некорректная причина отклонения"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reject - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RejectAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Reject(r.Context(), appointmentID, &models.RejectAppointmentRequest{
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reject - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrReasonRequired):
			h.logger.Warn("PATCH /appointments/{id}/reject - Reason required: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, appointments.ErrCannotReject):
			h.logger.Warn("PATCH /appointments/{id}/reject - Cannot reject: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgCannotReject)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/reject - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReason)

		default:
			h.logger.Error("PATCH /appointments/{id}/reject - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reject - Rejected: appointment_id=%d", appointmentID)
	w.WriteHeader(http.StatusNoContent)
}
