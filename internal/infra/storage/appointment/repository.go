package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avelir/salon-appointment-service/internal/domain"
	"github.com/avelir/salon-appointment-service/pkg/dbmetrics"
	"github.com/avelir/salon-appointment-service/pkg/psqlbuilder"
)

// uniqueViolation код ошибки Postgres при нарушении уникального индекса
const uniqueViolation = "23505"

var appointmentColumns = []string{
	"id",
	"invoice_number",
	"status",
	"customer_name",
	"customer_email",
	"customer_phone",
	"gender",
	"note",
	"appointment_date",
	"payment_method",
	"original_total",
	"discounted_total",
	"savings",
	"executors",
	"reject_reason",
	"paid",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись из зафиксированного booking request вместе со строками товаров
// Сегменты расписания вставляются отдельно через schedule.Repository с условной записью,
// поэтому Create ожидается внутри сериализуемой транзакции
//
// При занятом номере счета возвращает ErrInvoiceNumberTaken - вызывающая сторона
// перегенерирует номер (до domain.DefaultInvoiceRetries раз)
func (r *Repository) Create(ctx context.Context, req *domain.BookingRequest) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"invoice_number",
			"status",
			"customer_name",
			"customer_email",
			"customer_phone",
			"gender",
			"note",
			"appointment_date",
			"payment_method",
			"original_total",
			"discounted_total",
			"savings",
			"executors",
			"paid",
		).
		Values(
			req.InvoiceNumber,
			domain.StatusPending,
			req.Customer.FullName,
			req.Customer.Email,
			req.Customer.Phone,
			req.Customer.Gender,
			req.Customer.Note,
			req.Date,
			req.PaymentMethod,
			req.Totals.Original,
			req.Totals.Discounted,
			req.Totals.Savings,
			pq.Array([]int64{}),
			false,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	appt := &domain.Appointment{
		InvoiceNumber:   req.InvoiceNumber,
		Status:          domain.StatusPending,
		CustomerName:    req.Customer.FullName,
		CustomerEmail:   req.Customer.Email,
		CustomerPhone:   req.Customer.Phone,
		Gender:          req.Customer.Gender,
		Note:            req.Customer.Note,
		Date:            req.Date,
		PaymentMethod:   req.PaymentMethod,
		OriginalTotal:   req.Totals.Original,
		DiscountedTotal: req.Totals.Discounted,
		Savings:         req.Totals.Savings,
		Executors:       []int64{},
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&appt.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrInvoiceNumberTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	for _, p := range req.Products {
		line, err := r.insertProductLine(ctx, executor, appt.ID, p)
		if err != nil {
			return nil, err
		}
		appt.Products = append(appt.Products, line)
	}

	return appt, nil
}

func (r *Repository) insertProductLine(ctx context.Context, executor DBExecutor, appointmentID int64, p domain.ProductSelection) (*domain.ProductLine, error) {
	query, args, err := psqlbuilder.Insert("appointment_products").
		Columns("appointment_id", "product_id", "quantity", "product_name", "unit_price", "discount_percent").
		Values(appointmentID, p.ProductID, p.Quantity, p.ProductName, p.UnitPrice, p.DiscountPercent).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: insertProductLine - build insert query: %v", ErrBuildQuery, err)
	}

	line := &domain.ProductLine{
		AppointmentID:   appointmentID,
		ProductID:       p.ProductID,
		Quantity:        p.Quantity,
		ProductName:     p.ProductName,
		UnitPrice:       p.UnitPrice,
		DiscountPercent: p.DiscountPercent,
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&line.ID); err != nil {
		return nil, fmt.Errorf("%w: insertProductLine - execute insert: %v", ErrExecQuery, err)
	}

	return line, nil
}

// GetByID получает запись по ID вместе с сегментами и товарами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if appt.Segments, err = r.segmentsByAppointment(ctx, executor, id); err != nil {
		return nil, err
	}
	if appt.Products, err = r.productsByAppointment(ctx, executor, id); err != nil {
		return nil, err
	}

	return appt, nil
}

// GetWithFilter получает записи с фильтрацией по статусу, периоду и мастеру
// Дочерние строки (сегменты, товары) не загружаются - список используется
// админ-экранами, детали запрашиваются через GetByID
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(prefixColumns("a", appointmentColumns)...).
		From("appointments a")

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.
			Join("appointment_segments s ON s.appointment_id = a.id").
			Where(squirrel.Eq{"s.staff_id": *filter.StaffID}).
			GroupBy(prefixColumns("a", appointmentColumns)...)
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.status": *filter.Status})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"a.appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"a.appointment_date": *filter.EndDate})
	}

	selectBuilder = selectBuilder.OrderBy("a.appointment_date DESC, a.created_at DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := r.scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - iterate rows: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// Confirm переводит запись в confirmed и фиксирует исполнителей
func (r *Repository) Confirm(ctx context.Context, id int64, executors []int64) error {
	return r.update(ctx, "Confirm", id, map[string]interface{}{
		"status":     domain.StatusConfirmed,
		"executors":  pq.Array(executors),
		"updated_at": squirrel.Expr("NOW()"),
	})
}

// Reject переводит запись в rejected с указанием причины
func (r *Repository) Reject(ctx context.Context, id int64, reason string) error {
	return r.update(ctx, "Reject", id, map[string]interface{}{
		"status":        domain.StatusRejected,
		"reject_reason": reason,
		"updated_at":    squirrel.Expr("NOW()"),
	})
}

// UpdateStatus обновляет только статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{
		"status":     status,
		"updated_at": squirrel.Expr("NOW()"),
	})
}

// MarkPaid отмечает запись оплаченной, статус не затрагивается
func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	return r.update(ctx, "MarkPaid", id, map[string]interface{}{
		"paid":       true,
		"updated_at": squirrel.Expr("NOW()"),
	})
}

func (r *Repository) update(ctx context.Context, op string, id int64, set map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var executors pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.InvoiceNumber,
		&appt.Status,
		&appt.CustomerName,
		&appt.CustomerEmail,
		&appt.CustomerPhone,
		&appt.Gender,
		&appt.Note,
		&appt.Date,
		&appt.PaymentMethod,
		&appt.OriginalTotal,
		&appt.DiscountedTotal,
		&appt.Savings,
		&executors,
		&appt.RejectReason,
		&appt.Paid,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanAppointment: %v", ErrScanRow, err)
	}

	appt.Executors = executors
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func (r *Repository) segmentsByAppointment(ctx context.Context, executor DBExecutor, appointmentID int64) ([]*domain.AppointmentSegment, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"service_id",
		"staff_id",
		"segment_date",
		"start_time",
		"duration_minutes",
		"service_name",
		"price",
		"original_price",
	).
		From("appointment_segments").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: segmentsByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: segmentsByAppointment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	segments := make([]*domain.AppointmentSegment, 0)
	for rows.Next() {
		var seg domain.AppointmentSegment
		if err := rows.Scan(
			&seg.ID,
			&seg.AppointmentID,
			&seg.ServiceID,
			&seg.StaffID,
			&seg.Date,
			&seg.StartTime,
			&seg.DurationMinutes,
			&seg.ServiceName,
			&seg.Price,
			&seg.OriginalPrice,
		); err != nil {
			return nil, fmt.Errorf("%w: segmentsByAppointment - scan segment: %v", ErrScanRow, err)
		}
		segments = append(segments, &seg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: segmentsByAppointment - iterate rows: %v", ErrScanRow, err)
	}

	return segments, nil
}

func (r *Repository) productsByAppointment(ctx context.Context, executor DBExecutor, appointmentID int64) ([]*domain.ProductLine, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"product_id",
		"quantity",
		"product_name",
		"unit_price",
		"discount_percent",
	).
		From("appointment_products").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: productsByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: productsByAppointment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	products := make([]*domain.ProductLine, 0)
	for rows.Next() {
		var line domain.ProductLine
		if err := rows.Scan(
			&line.ID,
			&line.AppointmentID,
			&line.ProductID,
			&line.Quantity,
			&line.ProductName,
			&line.UnitPrice,
			&line.DiscountPercent,
		); err != nil {
			return nil, fmt.Errorf("%w: productsByAppointment - scan product line: %v", ErrScanRow, err)
		}
		products = append(products, &line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: productsByAppointment - iterate rows: %v", ErrScanRow, err)
	}

	return products, nil
}

func prefixColumns(alias string, columns []string) []string {
	prefixed := make([]string, len(columns))
	for i, c := range columns {
		prefixed[i] = alias + "." + c
	}
	return prefixed
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
