package get_user_vacations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VacationService/internal/api/handlers"
	"github.com/m04kA/SMC-VacationService/internal/api/middleware"
	"github.com/m04kA/SMC-VacationService/internal/service/vacations"
	"github.com/m04kA/SMC-VacationService/internal/service/vacations/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidYear   = "некорректный год"
	msgInvalidStatus = "некорректный статус отпуска"
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

// Handle GET /api/v1/users/{userId}/vacations?year=2026&status=approved
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetUserID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/vacations - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	requestingUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/vacations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetUserVacationsRequest{
		UserID:           targetUserID,
		RequestingUserID: requestingUserID,
		IsAdmin:          middleware.IsAdmin(r.Context()),
	}

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < 1970 || year > 9999 {
			h.logger.Warn("GET /users/{id}/vacations - Invalid year: %s", yearStr)
			handlers.RespondBadRequest(w, msgInvalidYear)
			return
		}
		req.Year = &year
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetUserVacations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, vacations.ErrAccessDenied):
			h.logger.Warn("GET /users/{id}/vacations - Access denied: target=%d, user_id=%d",
				targetUserID, requestingUserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, vacations.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/vacations - Invalid status filter: user_id=%d", targetUserID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{id}/vacations - Failed to get vacations: user_id=%d, error=%v",
				targetUserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/vacations - Retrieved %d vacations: user_id=%d",
		result.Total, targetUserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
