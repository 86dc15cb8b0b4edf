// Package repeat_appointment повтор завершённой или отклонённой записи
// как новой pending записи на новые дату и время
package repeat_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelir/salon-appointment-service/internal/domain"
	appointmentRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/appointment"
	"github.com/avelir/salon-appointment-service/internal/usecase/submit_booking"
)

// UseCase use case повтора записи
//
// Клон наследует снапшот клиента, услуги, товары и суммы исходной записи,
// но получает новый номер счета, чистый статус pending и пустых исполнителей.
// Цены берутся замороженные из исходной записи, каталог не перечитывается
type UseCase struct {
	appointmentRepo AppointmentRepository
	submitter       BookingSubmitter
	invoiceGen      InvoiceNumberGenerator
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	submitter BookingSubmitter,
	invoiceGen InvoiceNumberGenerator,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		submitter:       submitter,
		invoiceGen:      invoiceGen,
		logger:          logger,
	}
}

// Execute создает новую pending запись по образцу терминальной
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RepeatAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("RepeatAppointment: source id=%d, new date=%s time=%s",
		req.AppointmentID, req.Date.Format(domain.DateFormat), req.StartTime)

	source, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if !source.IsTerminal() {
		uc.logger.Warn("RepeatAppointment: source id=%d has status %s, not terminal", source.ID, source.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrNotRepeatable, source.Status)
	}

	booking, err := uc.cloneBooking(source, req)
	if err != nil {
		return nil, err
	}

	resp, err := uc.submitter.Execute(ctx, &submit_booking.Request{Booking: booking})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RepeatAppointment: created id=%d invoice=%s from source id=%d",
		resp.Appointment.ID, resp.Appointment.InvoiceNumber, source.ID)

	return &Response{Appointment: resp.Appointment}, nil
}

// cloneBooking собирает booking request из терминальной записи
// Сегменты сдвигаются на новые дату и время с сохранением относительных
// интервалов между услугами
func (uc *UseCase) cloneBooking(source *domain.Appointment, req *Request) (*domain.BookingRequest, error) {
	if len(source.Segments) == 0 {
		return nil, fmt.Errorf("%w: source appointment has no segments", ErrInternal)
	}

	firstStart, err := source.Segments[0].StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid source segment time: %v", ErrInternal, err)
	}
	newStart, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	shift := newStart - firstStart

	segments := make([]domain.RequestSegment, 0, len(source.Segments))
	for _, seg := range source.Segments {
		start, err := seg.StartTime.AddMinutes(shift)
		if err != nil {
			return nil, fmt.Errorf("%w: shifted segment start out of range: %v", ErrInvalidInput, err)
		}

		segments = append(segments, domain.RequestSegment{
			ServiceID:       seg.ServiceID,
			ServiceName:     seg.ServiceName,
			StaffID:         seg.StaffID,
			StartTime:       start,
			DurationMinutes: seg.DurationMinutes,
			Price:           seg.Price,
			OriginalPrice:   seg.OriginalPrice,
		})
	}

	products := make([]domain.ProductSelection, 0, len(source.Products))
	for _, line := range source.Products {
		products = append(products, domain.ProductSelection{
			ProductID:       line.ProductID,
			ProductName:     line.ProductName,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
		})
	}

	return &domain.BookingRequest{
		InvoiceNumber: uc.invoiceGen.Next(),
		Customer: domain.CustomerInfo{
			FullName: source.CustomerName,
			Gender:   source.Gender,
			Email:    source.CustomerEmail,
			Phone:    source.CustomerPhone,
			Note:     source.Note,
		},
		Date:          req.Date,
		Segments:      segments,
		Products:      products,
		PaymentMethod: source.PaymentMethod,
		Totals: domain.Totals{
			Original:   source.OriginalTotal,
			Discounted: source.DiscountedTotal,
			Savings:    source.Savings,
		},
	}, nil
}
