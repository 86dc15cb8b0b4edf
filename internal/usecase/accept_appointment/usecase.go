// Package accept_appointment подтверждение pending записи администратором
package accept_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelir/salon-appointment-service/internal/domain"
	appointmentRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/appointment"
	"github.com/avelir/salon-appointment-service/internal/schedule"
)

// UseCase use case подтверждения записи
//
// Подтверждение - авторитетная точка проверки пересечений: сегменты
// мастеров перечитываются под блокировкой внутри сериализуемой транзакции,
// и только после успешной проверки запись переходит в confirmed
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	paymentGateway  PaymentGateway
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	paymentGateway PaymentGateway,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		paymentGateway:  paymentGateway,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute подтверждает запись: pending -> confirmed
//
// Порядок внутри транзакции: проверка статуса, перечитывание сегментов
// под FOR UPDATE с проверкой пересечений, создание pending-платежа,
// смена статуса. Ошибка на любом шаге откатывает транзакцию целиком -
// платёж защищён от дублей idempotency key на стороне шлюза
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AcceptAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("AcceptAppointment: id=%d", req.AppointmentID)

	var confirmed *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if !appt.CanBeAccepted() {
			uc.logger.Warn("AcceptAppointment: id=%d has status %s, cannot accept", appt.ID, appt.Status)
			return fmt.Errorf("%w: status is %s", ErrInvalidStatus, appt.Status)
		}

		if err := uc.recheckConflicts(txCtx, appt); err != nil {
			return err
		}

		executors := req.Executors
		if len(executors) == 0 {
			executors = executorsFromSegments(appt.Segments)
		}

		if _, err := uc.paymentGateway.CreatePendingPayment(txCtx, appt.ID, appt.DiscountedTotal, appt.PaymentMethod); err != nil {
			uc.logger.Error("AcceptAppointment: payment gateway failed for id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}

		if err := uc.appointmentRepo.Confirm(txCtx, appt.ID, executors); err != nil {
			return fmt.Errorf("%w: failed to confirm appointment: %v", ErrInternal, err)
		}

		appt.Status = domain.StatusConfirmed
		appt.Executors = executors
		confirmed = appt
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AcceptAppointment: confirmed id=%d invoice=%s", confirmed.ID, confirmed.InvoiceNumber)
	return &Response{Appointment: confirmed}, nil
}

// recheckConflicts перечитывает сегменты каждого задействованного мастера
// и проверяет пересечения, исключая сегменты самой записи
func (uc *UseCase) recheckConflicts(ctx context.Context, appt *domain.Appointment) error {
	for _, seg := range appt.Segments {
		interval, err := schedule.NewInterval(seg.StartTime, seg.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: invalid segment interval: %v", ErrInternal, err)
		}

		others, err := uc.scheduleRepo.SegmentsFor(ctx, seg.StaffID, appt.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get segments for staff=%d: %v", ErrInternal, seg.StaffID, err)
		}

		foreign := make([]*domain.AppointmentSegment, 0, len(others))
		for _, other := range others {
			if other.AppointmentID == appt.ID {
				continue
			}
			foreign = append(foreign, other)
		}

		conflict, err := schedule.HasConflict(interval, foreign)
		if err != nil {
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("AcceptAppointment: id=%d conflicts on staff=%d at %s",
				appt.ID, seg.StaffID, seg.StartTime)
			return ErrSchedulingConflict
		}
	}

	return nil
}

// executorsFromSegments возвращает уникальных мастеров из сегментов записи
// с сохранением порядка появления
func executorsFromSegments(segments []*domain.AppointmentSegment) []int64 {
	seen := make(map[int64]bool, len(segments))
	executors := make([]int64, 0, len(segments))

	for _, seg := range segments {
		if seen[seg.StaffID] {
			continue
		}
		seen[seg.StaffID] = true
		executors = append(executors, seg.StaffID)
	}

	return executors
}
