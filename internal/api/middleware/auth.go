package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/WingorOsnova/BarbershopPP/internal/api/handlers"
)

const userIDHeader = "X-User-ID"

const msgAuthRequired = "требуется аутентификация"

type contextKey string

const userIDKey contextKey = "userID"

// GetUserID извлекает ID аутентифицированного пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// Auth middleware для эндпоинтов личного кабинета. Требует валидный
// заголовок X-User-ID, иначе запрос отклоняется с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(userIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgAuthRequired)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// OptionalAuth middleware для публичных эндпоинтов, которые привязывают
// запись к пользователю, если он аутентифицирован. Невалидный заголовок
// игнорируется: запрос продолжается как гостевой.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, err := strconv.ParseInt(r.Header.Get(userIDHeader), 10, 64); err == nil && userID > 0 {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
		}
		next.ServeHTTP(w, r)
	})
}
