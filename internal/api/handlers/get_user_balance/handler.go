package get_user_balance

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VacationService/internal/api/handlers"
	"github.com/m04kA/SMC-VacationService/internal/api/middleware"
	"github.com/m04kA/SMC-VacationService/internal/service/vacations"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidYear   = "некорректный год"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service VacationService
	logger  Logger
}

func NewHandler(service VacationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/balance?year=2026
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetUserID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/balance - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	requestingUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/balance - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// По умолчанию текущий год
	year := time.Now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err = strconv.Atoi(yearStr)
		if err != nil || year < 1970 || year > 9999 {
			h.logger.Warn("GET /users/{id}/balance - Invalid year: %s", yearStr)
			handlers.RespondBadRequest(w, msgInvalidYear)
			return
		}
	}

	balance, err := h.service.GetBalance(r.Context(), targetUserID, year, requestingUserID, middleware.IsAdmin(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, vacations.ErrAccessDenied):
			h.logger.Warn("GET /users/{id}/balance - Access denied: target=%d, user_id=%d",
				targetUserID, requestingUserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /users/{id}/balance - Failed to get balance: user_id=%d, year=%d, error=%v",
				targetUserID, year, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/balance - Balance retrieved: user_id=%d, year=%d", targetUserID, year)
	handlers.RespondJSON(w, http.StatusOK, balance)
}
