package middleware

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey string

// ClientIDKey ключ контекста с идентификатором клиента из заголовка
const ClientIDKey contextKey = "clientID"

// Auth извлекает X-Client-ID из заголовка и кладет его в контекст запроса.
// Заголовок опционален: запросы без него считаются гостевыми, права
// проверяются на уровне сервисов.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Client-ID")
		if raw != "" {
			clientID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || clientID <= 0 {
				http.Error(w, `{"error": "некорректный заголовок X-Client-ID"}`, http.StatusUnauthorized)
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), ClientIDKey, clientID))
		}

		next.ServeHTTP(w, r)
	})
}

// ClientIDFromContext возвращает идентификатор клиента из контекста.
// nil означает гостевой запрос.
func ClientIDFromContext(ctx context.Context) *int64 {
	if id, ok := ctx.Value(ClientIDKey).(int64); ok {
		return &id
	}
	return nil
}
