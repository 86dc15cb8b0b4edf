package catalog

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
	"github.com/avelir/salon-appointment-service/pkg/types"
)

// DBExecutor интерфейс выполнения запросов (из dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository read-only репозиторий каталога: услуги, товары, мастера
// Авторитетные копии записей живут в админке салона, движок бронирования
// их только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price",
		"duration_minutes",
		"discount_percent",
		"category_id",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.Name,
		&svc.Price,
		&svc.DurationMinutes,
		&svc.DiscountPercent,
		&svc.CategoryID,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &svc, nil
}

// GetProduct получает товар по ID
func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price",
		"discount_percent",
		"stock",
	).
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProduct - build select query: %v", ErrBuildQuery, err)
	}

	var product domain.Product
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.DiscountPercent,
		&product.Stock,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProduct - scan product: %v", ErrScanRow, err)
	}

	return &product, nil
}

// ListStaff получает всех мастеров со специализациями и недельным расписанием
func (r *Repository) ListStaff(ctx context.Context) ([]*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"position",
		"specializations",
	).
		From("staff").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.StaffMember, 0)
	byID := make(map[int64]*domain.StaffMember)

	for rows.Next() {
		var member domain.StaffMember
		var specializations pq.Int64Array
		if err := rows.Scan(&member.ID, &member.Name, &member.Position, &specializations); err != nil {
			return nil, fmt.Errorf("%w: ListStaff - scan staff member: %v", ErrScanRow, err)
		}
		member.Specializations = specializations
		staff = append(staff, &member)
		byID[member.ID] = &member
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaff - iterate rows: %v", ErrScanRow, err)
	}

	if err := r.loadAvailability(ctx, executor, byID); err != nil {
		return nil, err
	}

	return staff, nil
}

// loadAvailability читает недельные окна доступности и раскладывает их по мастерам
// Отсутствие строки для дня недели означает выходной
func (r *Repository) loadAvailability(ctx context.Context, executor DBExecutor, byID map[int64]*domain.StaffMember) error {
	if len(byID) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	query, args, err := psqlbuilder.Select(
		"staff_id",
		"weekday",
		"start_time",
		"end_time",
	).
		From("staff_availability").
		Where(squirrel.Eq{"staff_id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadAvailability - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var staffID int64
		var weekday int
		var start, end types.TimeString
		if err := rows.Scan(&staffID, &weekday, &start, &end); err != nil {
			return fmt.Errorf("%w: loadAvailability - scan window: %v", ErrScanRow, err)
		}

		member, ok := byID[staffID]
		if !ok {
			continue
		}

		window := &domain.TimeWindow{Start: start, End: end}

		// weekday хранится как в time.Weekday: 0 = Sunday
		switch weekday {
		case 0:
			member.Availability.Sunday = window
		case 1:
			member.Availability.Monday = window
		case 2:
			member.Availability.Tuesday = window
		case 3:
			member.Availability.Wednesday = window
		case 4:
			member.Availability.Thursday = window
		case 5:
			member.Availability.Friday = window
		case 6:
			member.Availability.Saturday = window
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadAvailability - iterate rows: %v", ErrScanRow, err)
	}

	return nil
}
