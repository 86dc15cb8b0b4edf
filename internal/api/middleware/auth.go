// Package middleware HTTP middleware: аутентификация и метрики
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/avelir/salon-appointment-service/internal/api/handlers"
)

type contextKey string

const staffIDKey contextKey = "staffID"

// StaffIDHeader заголовок с ID сотрудника салона
// Аутентификацию выполняет API gateway, сервис доверяет заголовку
const StaffIDHeader = "X-Staff-ID"

// Auth проверяет наличие валидного X-Staff-ID и кладёт его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(StaffIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+StaffIDHeader)
			return
		}

		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок "+StaffIDHeader)
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffID возвращает ID сотрудника из контекста запроса
func GetStaffID(ctx context.Context) (int64, bool) {
	staffID, ok := ctx.Value(staffIDKey).(int64)
	return staffID, ok
}
