package get_vacation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VacationService/internal/api/handlers"
	"github.com/m04kA/SMC-VacationService/internal/api/middleware"
	"github.com/m04kA/SMC-VacationService/internal/service/vacations"
)

const (
	msgInvalidVacationID = "некорректный ID отпуска"
	msgNotFound          = "отпуск не найден"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
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

// Handle GET /api/v1/vacations/{vacationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vacationID, err := strconv.ParseInt(vars["vacationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /vacations/{id} - Invalid vacation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVacationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /vacations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vacation, err := h.service.GetByID(r.Context(), vacationID, userID, middleware.IsAdmin(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, vacations.ErrVacationNotFound):
			h.logger.Warn("GET /vacations/{id} - Vacation not found: vacation_id=%d", vacationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, vacations.ErrAccessDenied):
			h.logger.Warn("GET /vacations/{id} - Access denied: vacation_id=%d, user_id=%d", vacationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /vacations/{id} - Failed to get vacation: vacation_id=%d, error=%v", vacationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vacations/{id} - Vacation retrieved successfully: vacation_id=%d, user_id=%d",
		vacationID, userID)
	handlers.RespondJSON(w, http.StatusOK, vacation)
}
