package accept_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelir/salon-appointment-service/internal/domain"
	appointmentRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/appointment"
	"github.com/avelir/salon-appointment-service/internal/integrations/paymentgateway"
)

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
	confirmed    map[int64][]int64
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentRepo) Confirm(_ context.Context, id int64, executors []int64) error {
	if f.confirmed == nil {
		f.confirmed = map[int64][]int64{}
	}
	f.confirmed[id] = executors
	return nil
}

type fakeScheduleRepo struct {
	segments map[int64][]*domain.AppointmentSegment // по staffID
}

func (f *fakeScheduleRepo) SegmentsFor(_ context.Context, staffID int64, _ time.Time) ([]*domain.AppointmentSegment, error) {
	return f.segments[staffID], nil
}

type fakeGateway struct {
	err   error
	calls int
}

func (f *fakeGateway) CreatePendingPayment(_ context.Context, appointmentID int64, amount float64, _ domain.PaymentMethod) (*paymentgateway.Payment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &paymentgateway.Payment{ID: "pay-1", AppointmentID: appointmentID, Amount: amount, Status: "pending"}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var date = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		InvoiceNumber:   "INV-20260302-483",
		Status:          domain.StatusPending,
		Date:            date,
		PaymentMethod:   domain.PaymentCard,
		DiscountedTotal: 158,
		Segments: []*domain.AppointmentSegment{
			{ID: 1, AppointmentID: 1, ServiceID: 1, StaffID: 10, Date: date, StartTime: "10:00", DurationMinutes: 30},
			{ID: 2, AppointmentID: 1, ServiceID: 2, StaffID: 10, Date: date, StartTime: "10:32", DurationMinutes: 60},
		},
	}
}

// ownSegments расписание, в котором мастер занят только самой записью
func ownSegments(appt *domain.Appointment) map[int64][]*domain.AppointmentSegment {
	segs := map[int64][]*domain.AppointmentSegment{}
	for _, s := range appt.Segments {
		segs[s.StaffID] = append(segs[s.StaffID], s)
	}
	return segs
}

func TestExecute_ConfirmsPendingAppointment(t *testing.T) {
	appt := pendingAppointment()
	repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: appt}}
	gateway := &fakeGateway{}
	uc := NewUseCase(repo, &fakeScheduleRepo{segments: ownSegments(appt)}, gateway, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 1, Executors: []int64{10, 20}})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Appointment.Status)
	assert.Equal(t, []int64{10, 20}, resp.Appointment.Executors)
	assert.Equal(t, []int64{10, 20}, repo.confirmed[1])
	assert.Equal(t, 1, gateway.calls)
}

func TestExecute_DefaultExecutorsFromSegments(t *testing.T) {
	appt := pendingAppointment()
	repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: appt}}
	uc := NewUseCase(repo, &fakeScheduleRepo{segments: ownSegments(appt)}, &fakeGateway{}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 1})

	require.NoError(t, err)
	// Оба сегмента у мастера 10 - в исполнителях он один раз
	assert.Equal(t, []int64{10}, resp.Appointment.Executors)
}

func TestExecute_OwnSegmentsDoNotConflict(t *testing.T) {
	// Сегменты самой записи уже в расписании после submit - проверка
	// пересечений должна их игнорировать
	appt := pendingAppointment()
	repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: appt}}
	uc := NewUseCase(repo, &fakeScheduleRepo{segments: ownSegments(appt)}, &fakeGateway{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 1})

	assert.NoError(t, err)
}

func TestExecute_ConflictWithForeignSegment(t *testing.T) {
	appt := pendingAppointment()
	segments := ownSegments(appt)
	// Чужая запись заняла 10:15-10:45 у того же мастера
	segments[10] = append(segments[10], &domain.AppointmentSegment{
		ID: 99, AppointmentID: 2, StaffID: 10, Date: date, StartTime: "10:15", DurationMinutes: 30,
	})
	repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: appt}}
	gateway := &fakeGateway{}
	uc := NewUseCase(repo, &fakeScheduleRepo{segments: segments}, gateway, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 1})

	assert.ErrorIs(t, err, ErrSchedulingConflict)
	// До платежа дело не дошло
	assert.Zero(t, gateway.calls)
	assert.Empty(t, repo.confirmed)
}

func TestExecute_TouchingForeignSegmentIsCompatible(t *testing.T) {
	appt := pendingAppointment()
	segments := ownSegments(appt)
	// Чужая запись заканчивается ровно в 10:00 - граничащие интервалы совместимы
	segments[10] = append(segments[10], &domain.AppointmentSegment{
		ID: 99, AppointmentID: 2, StaffID: 10, Date: date, StartTime: "09:30", DurationMinutes: 30,
	})
	repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: appt}}
	uc := NewUseCase(repo, &fakeScheduleRepo{segments: segments}, &fakeGateway{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 1})

	assert.NoError(t, err)
}

func TestExecute_StatusGuard(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusRejected,
	} {
		t.Run(string(status), func(t *testing.T) {
			appt := pendingAppointment()
			appt.Status = status
			repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: appt}}
			uc := NewUseCase(repo, &fakeScheduleRepo{segments: ownSegments(appt)}, &fakeGateway{}, fakeTxManager{}, nopLogger{})

			_, err := uc.Execute(context.Background(), &Request{AppointmentID: 1})

			assert.ErrorIs(t, err, ErrInvalidStatus)
		})
	}
}

func TestExecute_PaymentFailureRollsBack(t *testing.T) {
	appt := pendingAppointment()
	repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: appt}}
	gateway := &fakeGateway{err: errors.New("gateway timeout")}
	uc := NewUseCase(repo, &fakeScheduleRepo{segments: ownSegments(appt)}, gateway, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 1})

	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Empty(t, repo.confirmed)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}}
	uc := NewUseCase(repo, &fakeScheduleRepo{}, &fakeGateway{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 777})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, &fakeGateway{}, fakeTxManager{}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"нулевой appointmentID", &Request{}},
		{"отрицательный исполнитель", &Request{AppointmentID: 1, Executors: []int64{-5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
