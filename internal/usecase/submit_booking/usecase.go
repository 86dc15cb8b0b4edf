// Package submit_booking сохранение зафиксированного booking request
// как записи в статусе pending вместе с сегментами расписания
package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelir/salon-appointment-service/internal/domain"
	appointmentRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/appointment"
	scheduleRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/schedule"
)

// UseCase use case оформления записи
//
// Запись и её сегменты сохраняются одной сериализуемой транзакцией:
// условная вставка сегментов отсекает конкурентные брони на того же мастера,
// при коллизии номера счета транзакция повторяется с новым номером
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	invoiceGen      InvoiceNumberGenerator
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	invoiceGen InvoiceNumberGenerator,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		invoiceGen:      invoiceGen,
		logger:          logger,
	}
}

// Execute сохраняет booking request как pending запись
//
// Сегменты вставляются сразу при оформлении - ожидающая подтверждения
// запись уже удерживает свои слоты и видна проверкам пересечений.
// Окончательная проверка происходит при подтверждении записи администратором
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	booking := *req.Booking
	uc.logger.Info("SubmitBooking: invoice=%s, date=%s, segments=%d",
		booking.InvoiceNumber, booking.Date.Format(domain.DateFormat), len(booking.Segments))

	var created *domain.Appointment

	// Ошибка в транзакции Postgres абортирует её целиком, поэтому коллизия
	// номера счета повторяет всю транзакцию с новым номером
	for attempt := 0; attempt < domain.DefaultInvoiceRetries; attempt++ {
		err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			appt, err := uc.appointmentRepo.Create(txCtx, &booking)
			if err != nil {
				return err
			}

			for i := range booking.Segments {
				seg := &domain.AppointmentSegment{
					AppointmentID:   appt.ID,
					ServiceID:       booking.Segments[i].ServiceID,
					StaffID:         booking.Segments[i].StaffID,
					Date:            booking.Date,
					StartTime:       booking.Segments[i].StartTime,
					DurationMinutes: booking.Segments[i].DurationMinutes,
					ServiceName:     booking.Segments[i].ServiceName,
					Price:           booking.Segments[i].Price,
					OriginalPrice:   booking.Segments[i].OriginalPrice,
				}

				inserted, err := uc.scheduleRepo.InsertSegment(txCtx, seg)
				if err != nil {
					return err
				}
				appt.Segments = append(appt.Segments, inserted)
			}

			created = appt
			return nil
		})

		if err == nil {
			uc.logger.Info("SubmitBooking: created appointment id=%d invoice=%s",
				created.ID, created.InvoiceNumber)
			return &Response{Appointment: created}, nil
		}

		if errors.Is(err, appointmentRepo.ErrInvoiceNumberTaken) {
			old := booking.InvoiceNumber
			booking.InvoiceNumber = uc.invoiceGen.Next()
			uc.logger.Warn("SubmitBooking: invoice %s taken, retrying with %s (attempt %d)",
				old, booking.InvoiceNumber, attempt+1)
			continue
		}

		if errors.Is(err, scheduleRepo.ErrConflictingSegment) {
			uc.logger.Warn("SubmitBooking: scheduling conflict for invoice=%s", booking.InvoiceNumber)
			return nil, ErrSchedulingConflict
		}

		uc.logger.Error("SubmitBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	uc.logger.Error("SubmitBooking: invoice numbers exhausted after %d attempts", domain.DefaultInvoiceRetries)
	return nil, ErrInvoiceExhausted
}
