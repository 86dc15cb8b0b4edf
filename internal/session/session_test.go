package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelir/salon-appointment-service/internal/domain"
	resolveAvailability "github.com/avelir/salon-appointment-service/internal/usecase/resolve_availability"
	"github.com/avelir/salon-appointment-service/pkg/ptr"
	"github.com/avelir/salon-appointment-service/pkg/types"
)

type fakeResolver struct {
	lastReq *resolveAvailability.Request
	resp    *resolveAvailability.Response
}

func (f *fakeResolver) Execute(_ context.Context, req *resolveAvailability.Request) (*resolveAvailability.Response, error) {
	f.lastReq = req
	if f.resp != nil {
		return f.resp, nil
	}
	return &resolveAvailability.Response{Reason: resolveAvailability.ReasonOK}, nil
}

type fakeInvoiceGen struct{ number string }

func (f *fakeInvoiceGen) Next() string { return f.number }

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

var (
	today    = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tomorrow = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
)

func newTestSession(resolver *fakeResolver) *Session {
	return New(
		Config{
			MaxBookingDays:       60,
			WorkingHours:         domain.TimeWindow{Start: "09:00", End: "20:00"},
			CleanupBufferPercent: 5,
		},
		resolver,
		&fakeInvoiceGen{number: "INV-20260302-483"},
		&fixedTime{t: today},
	)
}

func validCustomer() domain.CustomerInfo {
	return domain.CustomerInfo{
		FullName: "Мария Петрова-Иванова",
		Gender:   "female",
		Email:    "maria@example.com",
		Phone:    "+79991234567",
	}
}

func haircut() *domain.Service {
	return &domain.Service{ID: 1, Name: "Haircut", Price: 50, DurationMinutes: 30}
}

func coloring() *domain.Service {
	return &domain.Service{ID: 2, Name: "Coloring", Price: 120, DurationMinutes: 60, DiscountPercent: 10}
}

func shampoo() *domain.Product {
	return &domain.Product{ID: 5, Name: "Shampoo", Price: 35, DiscountPercent: 20, Stock: 10}
}

// advance доводит сессию до нужного шага, падая при ошибках валидации
func advance(t *testing.T, s *Session, to Step) {
	t.Helper()
	for s.Step() < to {
		require.NoError(t, s.Next(), "step %s", s.Step())
	}
}

func TestSession_FullWizardFlow(t *testing.T) {
	s := newTestSession(&fakeResolver{})

	require.NoError(t, s.SetCustomerInfo(validCustomer(), tomorrow, "10:00"))
	require.NoError(t, s.Next())
	assert.Equal(t, StepServiceSelection, s.Step())

	require.NoError(t, s.AddService(haircut()))
	require.NoError(t, s.AddService(coloring()))
	require.NoError(t, s.AssignStaff(1, 10))
	require.NoError(t, s.AssignStaff(2, 20))
	require.NoError(t, s.Next())

	require.NoError(t, s.AddProduct(shampoo(), 2))
	require.NoError(t, s.Next())

	require.NoError(t, s.SetPaymentMethod(domain.PaymentCard))
	require.NoError(t, s.Next())
	assert.Equal(t, StepConfirmation, s.Step())

	req, err := s.Confirm()
	require.NoError(t, err)

	assert.Equal(t, "INV-20260302-483", req.InvoiceNumber)
	assert.Equal(t, tomorrow, req.Date)
	assert.Equal(t, domain.PaymentCard, req.PaymentMethod)

	require.Len(t, req.Segments, 2)
	// Вторая услуга начинается после первой с буфером: 30 * 1.05 = 31.5 -> 32
	assert.Equal(t, types.TimeString("10:00"), req.Segments[0].StartTime)
	assert.Equal(t, types.TimeString("10:32"), req.Segments[1].StartTime)
	// В сегменте хранится чистая длительность услуги, без буфера
	assert.Equal(t, 30, req.Segments[0].DurationMinutes)
	assert.Equal(t, 60, req.Segments[1].DurationMinutes)
	assert.Equal(t, int64(10), req.Segments[0].StaffID)
	assert.Equal(t, 50.0, req.Segments[0].Price)
	assert.Equal(t, 108.0, req.Segments[1].Price) // 120 со скидкой 10%
	assert.Equal(t, 120.0, req.Segments[1].OriginalPrice)

	require.Len(t, req.Products, 1)
	assert.Equal(t, 2, req.Products[0].Quantity)

	// 50 + 120 + 2*35 = 240; скидки: 12 + 2*7 = 26
	assert.Equal(t, 240.0, req.Totals.Original)
	assert.Equal(t, 214.0, req.Totals.Discounted)
	assert.Equal(t, 26.0, req.Totals.Savings)
}

func TestSession_Totals(t *testing.T) {
	s := newTestSession(&fakeResolver{})
	require.NoError(t, s.AddService(haircut()))
	require.NoError(t, s.AddProduct(shampoo(), 1))

	totals := s.Totals()
	assert.Equal(t, 85.0, totals.Original)
	assert.Equal(t, 78.0, totals.Discounted)
	assert.Equal(t, 7.0, totals.Savings)
}

func TestSession_CustomerInfoValidation(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *domain.CustomerInfo, date *time.Time, start *types.TimeString)
		field string
	}{
		{"короткое имя", func(c *domain.CustomerInfo, _ *time.Time, _ *types.TimeString) {
			c.FullName = "Иван"
		}, "fullName"},
		{"неизвестный пол", func(c *domain.CustomerInfo, _ *time.Time, _ *types.TimeString) {
			c.Gender = "other"
		}, "gender"},
		{"некорректный email", func(c *domain.CustomerInfo, _ *time.Time, _ *types.TimeString) {
			c.Email = "not-an-email"
		}, "email"},
		{"некорректный телефон", func(c *domain.CustomerInfo, _ *time.Time, _ *types.TimeString) {
			c.Phone = "abc"
		}, "phone"},
		{"дата в прошлом", func(_ *domain.CustomerInfo, date *time.Time, _ *types.TimeString) {
			*date = today.AddDate(0, 0, -1)
		}, "date"},
		{"дата за горизонтом", func(_ *domain.CustomerInfo, date *time.Time, _ *types.TimeString) {
			*date = today.AddDate(0, 0, 61)
		}, "date"},
		{"время до открытия", func(_ *domain.CustomerInfo, _ *time.Time, start *types.TimeString) {
			*start = "08:30"
		}, "startTime"},
		{"время после закрытия", func(_ *domain.CustomerInfo, _ *time.Time, start *types.TimeString) {
			*start = "20:00"
		}, "startTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(&fakeResolver{})
			customer := validCustomer()
			date := tomorrow
			start := types.TimeString("10:00")
			tt.setup(&customer, &date, &start)

			require.NoError(t, s.SetCustomerInfo(customer, date, start))
			err := s.Next()

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs, tt.field)
			assert.Equal(t, StepCustomerInfo, s.Step())
		})
	}
}

func TestSession_LongNoteRejected(t *testing.T) {
	s := newTestSession(&fakeResolver{})
	customer := validCustomer()
	long := make([]byte, domain.MaxNoteLength+1)
	for i := range long {
		long[i] = 'x'
	}
	customer.Note = ptr.Ptr(string(long))

	require.NoError(t, s.SetCustomerInfo(customer, tomorrow, "10:00"))
	err := s.Next()

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "note")
}

func TestSession_ServiceSelectionValidation(t *testing.T) {
	t.Run("услуги не выбраны", func(t *testing.T) {
		s := newTestSession(&fakeResolver{})
		require.NoError(t, s.SetCustomerInfo(validCustomer(), tomorrow, "10:00"))
		advance(t, s, StepServiceSelection)

		err := s.Next()
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "services")
	})

	t.Run("мастер не назначен", func(t *testing.T) {
		s := newTestSession(&fakeResolver{})
		require.NoError(t, s.SetCustomerInfo(validCustomer(), tomorrow, "10:00"))
		advance(t, s, StepServiceSelection)
		require.NoError(t, s.AddService(haircut()))

		err := s.Next()
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "services.1")
	})

	t.Run("услуги не помещаются до закрытия", func(t *testing.T) {
		s := newTestSession(&fakeResolver{})
		require.NoError(t, s.SetCustomerInfo(validCustomer(), tomorrow, "19:45"))
		advance(t, s, StepServiceSelection)
		require.NoError(t, s.AddService(haircut()))
		require.NoError(t, s.AssignStaff(1, 10))

		err := s.Next()
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "startTime")
	})
}

func TestSession_ProductQuantityValidation(t *testing.T) {
	s := newTestSession(&fakeResolver{})
	require.NoError(t, s.SetCustomerInfo(validCustomer(), tomorrow, "10:00"))
	advance(t, s, StepServiceSelection)
	require.NoError(t, s.AddService(haircut()))
	require.NoError(t, s.AssignStaff(1, 10))
	advance(t, s, StepProductSelection)

	require.NoError(t, s.AddProduct(&domain.Product{ID: 7, Name: "Mask", Price: 15, Stock: 1}, 3))

	err := s.Next()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "products.7")
}

func TestSession_PaymentValidation(t *testing.T) {
	s := newTestSession(&fakeResolver{})
	require.NoError(t, s.SetCustomerInfo(validCustomer(), tomorrow, "10:00"))
	advance(t, s, StepServiceSelection)
	require.NoError(t, s.AddService(haircut()))
	require.NoError(t, s.AssignStaff(1, 10))
	advance(t, s, StepPayment)

	err := s.Next()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "paymentMethod")
}

func TestSession_BackIsUnrestricted(t *testing.T) {
	s := newTestSession(&fakeResolver{})
	require.NoError(t, s.SetCustomerInfo(validCustomer(), tomorrow, "10:00"))
	advance(t, s, StepServiceSelection)

	s.Back()
	assert.Equal(t, StepCustomerInfo, s.Step())

	// С первого шага назад некуда
	s.Back()
	assert.Equal(t, StepCustomerInfo, s.Step())
}

func TestSession_ConfirmOnlyAtConfirmationStep(t *testing.T) {
	s := newTestSession(&fakeResolver{})

	_, err := s.Confirm()
	assert.ErrorIs(t, err, ErrNotAtConfirmation)
}

func TestSession_DoubleConfirm(t *testing.T) {
	s := newTestSession(&fakeResolver{})
	require.NoError(t, s.SetCustomerInfo(validCustomer(), tomorrow, "10:00"))
	advance(t, s, StepServiceSelection)
	require.NoError(t, s.AddService(haircut()))
	require.NoError(t, s.AssignStaff(1, 10))
	advance(t, s, StepPayment)
	require.NoError(t, s.SetPaymentMethod(domain.PaymentCash))
	advance(t, s, StepConfirmation)

	_, err := s.Confirm()
	require.NoError(t, err)

	_, err = s.Confirm()
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)

	// Фиксация замораживает сессию полностью
	assert.ErrorIs(t, s.AddService(coloring()), ErrAlreadyConfirmed)
	assert.ErrorIs(t, s.SetPaymentMethod(domain.PaymentCard), ErrAlreadyConfirmed)
}

func TestSession_DuplicateService(t *testing.T) {
	s := newTestSession(&fakeResolver{})
	require.NoError(t, s.AddService(haircut()))

	assert.ErrorIs(t, s.AddService(haircut()), ErrServiceAlreadySelected)
}

func TestSession_AssignStaffUnknownService(t *testing.T) {
	s := newTestSession(&fakeResolver{})

	assert.ErrorIs(t, s.AssignStaff(42, 10), ErrServiceNotSelected)
}

func TestSession_StaffChoicesOffsetsByEarlierServices(t *testing.T) {
	resolver := &fakeResolver{}
	s := newTestSession(resolver)
	require.NoError(t, s.SetCustomerInfo(validCustomer(), tomorrow, "10:00"))
	require.NoError(t, s.AddService(haircut()))
	require.NoError(t, s.AddService(coloring()))

	_, err := s.StaffChoices(context.Background(), 2)
	require.NoError(t, err)

	// Вторая услуга стартует после первой с буфером (30 * 1.05 -> 32 минуты)
	assert.Equal(t, types.TimeString("10:32"), resolver.lastReq.StartTime)
	// Интервал самой услуги тоже с буфером: 60 * 1.05 = 63
	assert.Equal(t, 63, resolver.lastReq.DurationMinutes)
	assert.Equal(t, tomorrow, resolver.lastReq.Date)
}

func TestSession_RemoveServiceAndProduct(t *testing.T) {
	s := newTestSession(&fakeResolver{})
	require.NoError(t, s.AddService(haircut()))
	require.NoError(t, s.AddService(coloring()))
	require.NoError(t, s.AddProduct(shampoo(), 1))

	s.RemoveService(1)
	s.RemoveProduct(5)

	assert.Equal(t, 63, s.TotalDurationMinutes()) // остался только coloring
	totals := s.Totals()
	assert.Equal(t, 120.0, totals.Original)
}
