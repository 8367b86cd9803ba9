package middleware

import (
	"net/http"

	"github.com/turnosapp/booking-service/internal/api/handlers"
)

const msgMissingUserID = "отсутствует заголовок X-User-ID"

// Auth проверяет наличие заголовка X-User-ID.
// Аутентификацию выполняет API-шлюз перед нами, здесь только
// отсекаются запросы, пришедшие мимо него.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-User-ID") == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		next.ServeHTTP(w, r)
	})
}
