package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelir/salon-appointment-service/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func bookingFixture() *domain.BookingRequest {
	return &domain.BookingRequest{
		InvoiceNumber: "INV-20260302-042",
		Customer: domain.CustomerInfo{
			FullName: "Анна Константиновна",
			Gender:   "female",
			Email:    "anna@example.com",
			Phone:    "+79990001122",
		},
		Date:          time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		PaymentMethod: domain.PaymentCard,
		Products: []domain.ProductSelection{
			{ProductID: 7, ProductName: "Шампунь", Quantity: 2, UnitPrice: 15, DiscountPercent: 10},
		},
		Totals: domain.Totals{Original: 130, Discounted: 117, Savings: 13},
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(5), now, now))
	mock.ExpectQuery("INSERT INTO appointment_products").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	appt, err := repo.Create(context.Background(), bookingFixture())
	require.NoError(t, err)

	assert.Equal(t, int64(5), appt.ID)
	assert.Equal(t, "INV-20260302-042", appt.InvoiceNumber)
	assert.Equal(t, domain.StatusPending, appt.Status)
	assert.Equal(t, now, appt.CreatedAt)
	assert.Empty(t, appt.Executors)

	require.Len(t, appt.Products, 1)
	assert.Equal(t, int64(11), appt.Products[0].ID)
	assert.Equal(t, int64(5), appt.Products[0].AppointmentID)
	assert.Equal(t, "Шампунь", appt.Products[0].ProductName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_InvoiceNumberTaken(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), bookingFixture())
	assert.ErrorIs(t, err, ErrInvoiceNumberTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).
			AddRow(
				int64(5), "INV-20260302-042", "confirmed",
				"Анна Константиновна", "anna@example.com", "+79990001122", "female", nil,
				date, "card",
				130.0, 117.0, 13.0,
				"{10,20}", nil, false,
				now, now,
			))
	mock.ExpectQuery("SELECT (.+) FROM appointment_segments").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "appointment_id", "service_id", "staff_id",
			"segment_date", "start_time", "duration_minutes", "service_name", "price", "original_price",
		}).AddRow(int64(1), int64(5), int64(3), int64(10), date, "10:00", 30, "Стрижка", 45.0, 50.0))
	mock.ExpectQuery("SELECT (.+) FROM appointment_products").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "appointment_id", "product_id", "quantity",
			"product_name", "unit_price", "discount_percent",
		}).AddRow(int64(11), int64(5), int64(7), 2, "Шампунь", 15.0, 10.0))

	appt, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, appt.Status)
	assert.Equal(t, []int64{10, 20}, appt.Executors)
	assert.Nil(t, appt.Note)

	require.Len(t, appt.Segments, 1)
	assert.Equal(t, "10:00", string(appt.Segments[0].StartTime))
	assert.Equal(t, 30, appt.Segments[0].DurationMinutes)

	require.Len(t, appt.Products, 1)
	assert.Equal(t, 2, appt.Products[0].Quantity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_GetWithFilter_ByStatus(t *testing.T) {
	repo, mock := newMock(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)

	status := domain.StatusPending
	mock.ExpectQuery("SELECT (.+) FROM appointments a").
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows(appointmentColumns).
			AddRow(
				int64(5), "INV-20260302-042", "pending",
				"Анна Константиновна", "anna@example.com", "+79990001122", "female", nil,
				date, "card",
				130.0, 117.0, 13.0,
				"{}", nil, false,
				now, now,
			).
			AddRow(
				int64(6), "INV-20260302-051", "pending",
				"Пётр Александрович", "petr@example.com", "+79990003344", "male", nil,
				date, "cash",
				50.0, 50.0, 0.0,
				"{}", nil, false,
				now, now,
			))

	result, err := repo.GetWithFilter(context.Background(), domain.AppointmentsFilter{Status: &status})
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, int64(5), result[0].ID)
	assert.Equal(t, int64(6), result[1].ID)
	// Список без дочерних строк - детали загружаются через GetByID
	assert.Empty(t, result[0].Segments)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Confirm(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Confirm(context.Background(), 5, []int64{10, 20})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkPaid_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkPaid(context.Background(), 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_Reject_ExecFailure(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE appointments").
		WillReturnError(errors.New("connection reset"))

	err := repo.Reject(context.Background(), 5, "мастер заболел")
	assert.ErrorIs(t, err, ErrExecQuery)
}
