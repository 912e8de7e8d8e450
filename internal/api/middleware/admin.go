package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-VacationService/internal/api/handlers"
)

const msgAdminOnly = "операция доступна только администратору"

// AdminOnly пропускает только запросы администратора.
// Должен стоять после Auth в цепочке middleware.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}
