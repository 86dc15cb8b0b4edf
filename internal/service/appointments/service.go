package appointments

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/avelir/salon-appointment-service/internal/domain"
	appointmentRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/appointment"
	paymentClient "github.com/avelir/salon-appointment-service/internal/integrations/paymentgateway"
	"github.com/avelir/salon-appointment-service/internal/service/appointments/models"
)

// Service сервис для работы с записями: чтение, отклонение, отметка об оплате
// Переходы с бизнес-логикой (accept, complete, repeat) живут в usecase-слое
type Service struct {
	appointmentRepo AppointmentRepository
	paymentGateway  PaymentGateway
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	paymentGateway PaymentGateway,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		paymentGateway:  paymentGateway,
		logger:          logger,
	}
}

// GetByID получает запись по ID вместе с сегментами и товарами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// GetAppointments получает записи с фильтрацией по статусу, периоду и мастеру
// Дочерние строки не загружаются - детали запрашиваются через GetByID
func (s *Service) GetAppointments(ctx context.Context, req *models.GetAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetAppointments: status=%v, staff=%v", req.Status, req.StaffID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAppointments: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAppointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAppointments: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// Reject отклоняет pending запись с обязательной причиной
// Сегменты отклонённой записи перестают удерживать слоты
func (s *Service) Reject(ctx context.Context, id int64, req *models.RejectAppointmentRequest) error {
	s.logger.Info("Reject: rejecting appointment id=%d", id)

	if req.Reason == "" {
		s.logger.Warn("Reject: empty reason for appointment id=%d", id)
		return ErrReasonRequired
	}
	if utf8.RuneCountInString(req.Reason) > domain.MaxRejectReasonLength {
		s.logger.Warn("Reject: reason too long for appointment id=%d", id)
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxRejectReasonLength)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Reject: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Reject: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	if !appt.CanBeRejected() {
		s.logger.Warn("Reject: appointment id=%d cannot be rejected, status=%s", id, appt.Status)
		return ErrCannotReject
	}

	if err := s.appointmentRepo.Reject(ctx, id, req.Reason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Reject: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reject: rejected appointment id=%d", id)
	return nil
}

// MarkPaid отмечает запись оплаченной и закрывает платёж в шлюзе
// Оплата ортогональна статусу: завершить можно и неоплаченную запись
func (s *Service) MarkPaid(ctx context.Context, id int64) error {
	s.logger.Info("MarkPaid: marking appointment id=%d as paid", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("MarkPaid: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("MarkPaid: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	if appt.Paid {
		s.logger.Warn("MarkPaid: appointment id=%d is already paid", id)
		return ErrAlreadyPaid
	}

	if err := s.appointmentRepo.MarkPaid(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("MarkPaid: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	// Платёж в шлюзе мог не создаваться, если запись ещё не подтверждена -
	// отсутствие платежа не считается ошибкой
	if err := s.paymentGateway.SettlePayment(ctx, id); err != nil {
		if errors.Is(err, paymentClient.ErrPaymentNotFound) {
			s.logger.Warn("MarkPaid: no pending payment in gateway for appointment id=%d", id)
			return nil
		}
		s.logger.Error("MarkPaid: failed to settle payment for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkPaid - failed to settle payment: %v", ErrInternal, err)
	}

	s.logger.Info("MarkPaid: appointment id=%d marked as paid", id)
	return nil
}
