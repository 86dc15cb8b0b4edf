package submit_booking

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avelir/salon-appointment-service/internal/api/handlers"
	"github.com/avelir/salon-appointment-service/internal/domain"
	catalogRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/catalog"
	"github.com/avelir/salon-appointment-service/internal/session"
	submitBooking "github.com/avelir/salon-appointment-service/internal/usecase/submit_booking"
	"github.com/avelir/salon-appointment-service/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgValidationFailed   = "ошибки валидации"
	msgServiceNotFound    = "услуга не найдена"
	msgProductNotFound    = "товар не найден"
	msgDuplicateService   = "услуга выбрана дважды"
	msgSlotTaken          = "выбранное время уже занято"
)

type Handler struct {
	newSession  SessionFactory
	catalogRepo CatalogRepository
	useCase     SubmitBookingUseCase
	logger      Logger
}

func NewHandler(newSession SessionFactory, catalogRepo CatalogRepository, useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		newSession:  newSession,
		catalogRepo: catalogRepo,
		useCase:     useCase,
		logger:      logger,
	}
}

// Handle POST /api/v1/appointments
//
// Запрос проходит через все шаги сессии оформления: данные клиента,
// услуги с мастерами, товары, оплата. Ошибка валидации любого шага
// возвращается клиенту с разбивкой по полям
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	booking, ok := h.runSession(w, r.Context(), &req, date, startTime)
	if !ok {
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitBooking.Request{Booking: booking})
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrSchedulingConflict):
			h.logger.Warn("POST /appointments - Slot taken: invoice=%s", booking.InvoiceNumber)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid booking: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to submit booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, invoice=%s",
		result.Appointment.ID, result.Appointment.InvoiceNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// runSession проводит запрос через шаги сессии оформления
// Возвращает false, если ответ клиенту уже отправлен
func (h *Handler) runSession(w http.ResponseWriter, ctx context.Context, req *SubmitBookingRequest, date time.Time, startTime types.TimeString) (*domain.BookingRequest, bool) {
	s := h.newSession()

	customer := domain.CustomerInfo{
		FullName: req.Customer.FullName,
		Gender:   req.Customer.Gender,
		Email:    req.Customer.Email,
		Phone:    req.Customer.Phone,
		Note:     req.Customer.Note,
	}

	if err := s.SetCustomerInfo(customer, date, startTime); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}
	if !h.advance(w, s) {
		return nil, false
	}

	for _, sel := range req.Services {
		service, err := h.catalogRepo.GetService(ctx, sel.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				h.logger.Warn("POST /appointments - Service not found: service_id=%d", sel.ServiceID)
				handlers.RespondNotFound(w, msgServiceNotFound)
			} else {
				h.logger.Error("POST /appointments - Failed to get service id=%d: %v", sel.ServiceID, err)
				handlers.RespondInternalError(w)
			}
			return nil, false
		}

		if err := s.AddService(service); err != nil {
			h.logger.Warn("POST /appointments - Duplicate service: service_id=%d", sel.ServiceID)
			handlers.RespondBadRequest(w, msgDuplicateService)
			return nil, false
		}
		if err := s.AssignStaff(sel.ServiceID, sel.StaffID); err != nil {
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return nil, false
		}
	}
	if !h.advance(w, s) {
		return nil, false
	}

	for _, sel := range req.Products {
		product, err := h.catalogRepo.GetProduct(ctx, sel.ProductID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrProductNotFound) {
				h.logger.Warn("POST /appointments - Product not found: product_id=%d", sel.ProductID)
				handlers.RespondNotFound(w, msgProductNotFound)
			} else {
				h.logger.Error("POST /appointments - Failed to get product id=%d: %v", sel.ProductID, err)
				handlers.RespondInternalError(w)
			}
			return nil, false
		}

		if err := s.AddProduct(product, sel.Quantity); err != nil {
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return nil, false
		}
	}
	if !h.advance(w, s) {
		return nil, false
	}

	if err := s.SetPaymentMethod(domain.PaymentMethod(req.PaymentMethod)); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}
	if !h.advance(w, s) {
		return nil, false
	}

	booking, err := s.Confirm()
	if err != nil {
		h.logger.Error("POST /appointments - Failed to confirm session: %v", err)
		handlers.RespondInternalError(w)
		return nil, false
	}

	return booking, true
}

// advance переводит сессию на следующий шаг, отправляя клиенту
// ошибки валидации с разбивкой по полям
func (h *Handler) advance(w http.ResponseWriter, s *session.Session) bool {
	err := s.Next()
	if err == nil {
		return true
	}

	var verrs session.ValidationErrors
	if errors.As(err, &verrs) {
		h.logger.Warn("POST /appointments - Validation failed at step %s: %v", s.Step(), err)
		handlers.RespondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  msgValidationFailed,
			Fields: verrs,
		})
		return false
	}

	h.logger.Error("POST /appointments - Session error at step %s: %v", s.Step(), err)
	handlers.RespondInternalError(w)
	return false
}
