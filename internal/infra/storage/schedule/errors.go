package schedule

import "errors"

var (
	// ErrConflictingSegment возвращается условной записью, когда пересекающийся
	// сегмент был вставлен конкурентно после чтения доступности
	ErrConflictingSegment = errors.New("schedule.repository: conflicting segment exists")

	// ErrSegmentNotFound возвращается, когда сегмент не найден
	ErrSegmentNotFound = errors.New("schedule.repository: segment not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
