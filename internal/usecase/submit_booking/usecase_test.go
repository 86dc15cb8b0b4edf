package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelir/salon-appointment-service/internal/domain"
	appointmentRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/appointment"
	scheduleRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/schedule"
)

type fakeAppointmentRepo struct {
	takenInvoices map[string]bool
	nextID        int64
	created       []*domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, req *domain.BookingRequest) (*domain.Appointment, error) {
	if f.takenInvoices[req.InvoiceNumber] {
		return nil, appointmentRepo.ErrInvoiceNumberTaken
	}
	f.nextID++
	appt := &domain.Appointment{
		ID:            f.nextID,
		InvoiceNumber: req.InvoiceNumber,
		Status:        domain.StatusPending,
		Date:          req.Date,
	}
	f.created = append(f.created, appt)
	return appt, nil
}

type fakeScheduleRepo struct {
	conflictAt int // индекс сегмента, на котором возникает конфликт (-1 = без конфликтов)
	inserted   []*domain.AppointmentSegment
}

func (f *fakeScheduleRepo) InsertSegment(_ context.Context, seg *domain.AppointmentSegment) (*domain.AppointmentSegment, error) {
	if f.conflictAt >= 0 && len(f.inserted) == f.conflictAt {
		return nil, scheduleRepo.ErrConflictingSegment
	}
	inserted := *seg
	inserted.ID = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, &inserted)
	return &inserted, nil
}

// fakeTxManager прогоняет fn напрямую, считая вызовы
type fakeTxManager struct{ calls int }

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type seqInvoiceGen struct{ seq int }

func (g *seqInvoiceGen) Next() string {
	g.seq++
	return fmt.Sprintf("INV-20260302-%03d", g.seq)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var bookingDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func validBooking() *domain.BookingRequest {
	return &domain.BookingRequest{
		InvoiceNumber: "INV-20260302-001",
		Customer:      domain.CustomerInfo{FullName: "Мария Петрова-Иванова", Email: "maria@example.com", Phone: "+79991234567", Gender: "female"},
		Date:          bookingDate,
		PaymentMethod: domain.PaymentCard,
		Segments: []domain.RequestSegment{
			{ServiceID: 1, ServiceName: "Haircut", StaffID: 10, StartTime: "10:00", DurationMinutes: 30, Price: 50, OriginalPrice: 50},
			{ServiceID: 2, ServiceName: "Coloring", StaffID: 20, StartTime: "10:32", DurationMinutes: 60, Price: 108, OriginalPrice: 120},
		},
		Totals: domain.Totals{Original: 170, Discounted: 158, Savings: 12},
	}
}

func newTestUseCase(appts *fakeAppointmentRepo, sched *fakeScheduleRepo, tx *fakeTxManager) *UseCase {
	return NewUseCase(appts, sched, tx, &seqInvoiceGen{seq: 100}, nopLogger{})
}

func TestExecute_CreatesPendingAppointmentWithSegments(t *testing.T) {
	appts := &fakeAppointmentRepo{takenInvoices: map[string]bool{}}
	sched := &fakeScheduleRepo{conflictAt: -1}
	tx := &fakeTxManager{}
	uc := newTestUseCase(appts, sched, tx)

	resp, err := uc.Execute(context.Background(), &Request{Booking: validBooking()})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Appointment.Status)
	assert.Equal(t, "INV-20260302-001", resp.Appointment.InvoiceNumber)
	require.Len(t, resp.Appointment.Segments, 2)
	assert.Equal(t, 1, tx.calls)

	// Сегменты привязаны к записи и унаследовали её дату
	for _, seg := range sched.inserted {
		assert.Equal(t, resp.Appointment.ID, seg.AppointmentID)
		assert.Equal(t, bookingDate, seg.Date)
	}

	// Обе цены сегмента доходят до хранилища
	require.Len(t, sched.inserted, 2)
	assert.Equal(t, 108.0, sched.inserted[1].Price)
	assert.Equal(t, 120.0, sched.inserted[1].OriginalPrice)
}

func TestExecute_RetriesOnTakenInvoice(t *testing.T) {
	appts := &fakeAppointmentRepo{takenInvoices: map[string]bool{
		"INV-20260302-001": true,
		"INV-20260302-101": true,
	}}
	sched := &fakeScheduleRepo{conflictAt: -1}
	tx := &fakeTxManager{}
	uc := newTestUseCase(appts, sched, tx)

	resp, err := uc.Execute(context.Background(), &Request{Booking: validBooking()})

	require.NoError(t, err)
	// Две коллизии, третья попытка успешна
	assert.Equal(t, "INV-20260302-102", resp.Appointment.InvoiceNumber)
	assert.Equal(t, 3, tx.calls)
}

func TestExecute_InvoiceExhausted(t *testing.T) {
	appts := &fakeAppointmentRepo{takenInvoices: map[string]bool{
		"INV-20260302-001": true,
		"INV-20260302-101": true,
		"INV-20260302-102": true,
	}}
	uc := newTestUseCase(appts, &fakeScheduleRepo{conflictAt: -1}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{Booking: validBooking()})

	assert.ErrorIs(t, err, ErrInvoiceExhausted)
}

func TestExecute_SchedulingConflict(t *testing.T) {
	appts := &fakeAppointmentRepo{takenInvoices: map[string]bool{}}
	sched := &fakeScheduleRepo{conflictAt: 1} // второй сегмент конфликтует
	tx := &fakeTxManager{}
	uc := newTestUseCase(appts, sched, tx)

	_, err := uc.Execute(context.Background(), &Request{Booking: validBooking()})

	assert.ErrorIs(t, err, ErrSchedulingConflict)
	// Конфликт слота не повторяется - клиент выбирает другое время
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	uc := NewUseCase(
		&failingAppointmentRepo{},
		&fakeScheduleRepo{conflictAt: -1},
		&fakeTxManager{},
		&seqInvoiceGen{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{Booking: validBooking()})

	assert.ErrorIs(t, err, ErrInternal)
}

type failingAppointmentRepo struct{}

func (failingAppointmentRepo) Create(context.Context, *domain.BookingRequest) (*domain.Appointment, error) {
	return nil, errors.New("connection refused")
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{takenInvoices: map[string]bool{}},
		&fakeScheduleRepo{conflictAt: -1},
		&fakeTxManager{},
	)

	tests := []struct {
		name  string
		setup func(b *domain.BookingRequest)
	}{
		{"пустой номер счета", func(b *domain.BookingRequest) { b.InvoiceNumber = "" }},
		{"нулевая дата", func(b *domain.BookingRequest) { b.Date = time.Time{} }},
		{"нет сегментов", func(b *domain.BookingRequest) { b.Segments = nil }},
		{"сегмент без мастера", func(b *domain.BookingRequest) { b.Segments[0].StaffID = 0 }},
		{"сегмент с нулевой длительностью", func(b *domain.BookingRequest) { b.Segments[0].DurationMinutes = 0 }},
		{"некорректное время", func(b *domain.BookingRequest) { b.Segments[0].StartTime = "25:99" }},
		{"неизвестный способ оплаты", func(b *domain.BookingRequest) { b.PaymentMethod = "crypto" }},
		{"отрицательные суммы", func(b *domain.BookingRequest) { b.Totals.Discounted = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validBooking()
			tt.setup(booking)

			_, err := uc.Execute(context.Background(), &Request{Booking: booking})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	t.Run("nil booking", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
