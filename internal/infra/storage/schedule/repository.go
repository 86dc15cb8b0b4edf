package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avelir/salon-appointment-service/internal/domain"
	"github.com/avelir/salon-appointment-service/pkg/dbmetrics"
	"github.com/avelir/salon-appointment-service/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (из dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий сегментов расписания мастеров
// Сегмент - это один интервал (услуга, мастер, время) внутри записи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// SegmentsFor получает активные сегменты мастера на указанную дату
// Сегменты отклонённых записей исключаются - они не занимают слоты
//
// Внутри транзакции добавляется FOR UPDATE OF s для блокировки строк:
// так конкурирующие accept-операции на одного мастера сериализуются
func (r *Repository) SegmentsFor(ctx context.Context, staffID int64, date time.Time) ([]*domain.AppointmentSegment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"s.id",
		"s.appointment_id",
		"s.service_id",
		"s.staff_id",
		"s.segment_date",
		"s.start_time",
		"s.duration_minutes",
		"s.service_name",
		"s.price",
		"s.original_price",
	).
		From("appointment_segments s").
		Join("appointments a ON a.id = s.appointment_id").
		Where(squirrel.Eq{"s.staff_id": staffID}).
		Where(squirrel.Eq{"s.segment_date": date}).
		Where(squirrel.NotEq{"a.status": string(domain.StatusRejected)}).
		OrderBy("s.start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF s")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SegmentsFor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SegmentsFor - execute query: %v", ErrExecQuery, err)
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
			return nil, fmt.Errorf("%w: SegmentsFor - scan segment: %v", ErrScanRow, err)
		}
		segments = append(segments, &seg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SegmentsFor - iterate rows: %v", ErrScanRow, err)
	}

	return segments, nil
}

// InsertSegment вставляет сегмент с условной записью: вставка не произойдёт,
// если у мастера уже есть пересекающийся активный сегмент на эту дату
// Пересечение считается по полуоткрытым интервалам - граничащие сегменты совместимы
//
// Возвращает ErrConflictingSegment, если слот занят конкурентной записью
func (r *Repository) InsertSegment(ctx context.Context, seg *domain.AppointmentSegment) (*domain.AppointmentSegment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	endTime, err := seg.End()
	if err != nil {
		return nil, fmt.Errorf("%w: InsertSegment - compute segment end: %v", ErrBuildQuery, err)
	}

	// Условная запись: INSERT ... SELECT ... WHERE NOT EXISTS (пересекающийся сегмент)
	query := `
		INSERT INTO appointment_segments
			(appointment_id, service_id, staff_id, segment_date, start_time, end_time, duration_minutes, service_name, price, original_price)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		WHERE NOT EXISTS (
			SELECT 1
			FROM appointment_segments s
			JOIN appointments a ON a.id = s.appointment_id
			WHERE s.staff_id = $3
			  AND s.segment_date = $4
			  AND a.status <> $11
			  AND s.start_time < $6
			  AND $5 < s.end_time
		)
		RETURNING id`

	row := executor.QueryRowContext(ctx, query,
		seg.AppointmentID,
		seg.ServiceID,
		seg.StaffID,
		seg.Date,
		seg.StartTime,
		endTime,
		seg.DurationMinutes,
		seg.ServiceName,
		seg.Price,
		seg.OriginalPrice,
		string(domain.StatusRejected),
	)

	inserted := *seg
	if err := row.Scan(&inserted.ID); err != nil {
		// Нет возвращённой строки - условие NOT EXISTS не выполнилось
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConflictingSegment
		}
		return nil, fmt.Errorf("%w: InsertSegment - execute insert: %v", ErrExecQuery, err)
	}

	return &inserted, nil
}
