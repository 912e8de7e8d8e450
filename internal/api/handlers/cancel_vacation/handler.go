package cancel_vacation

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
	msgInvalidVacationID = "некорректный ID отпуска"
	msgNotFound          = "отпуск не найден"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgCannotCancel      = "отпуск не может быть отменен"
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

// Handle DELETE /api/v1/vacations/{vacationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vacationID, err := strconv.ParseInt(vars["vacationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /vacations/{id} - Invalid vacation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVacationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /vacations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.CancelVacationRequest{
		RequestingUserID: userID,
		IsAdmin:          middleware.IsAdmin(r.Context()),
	}

	if err := h.service.Cancel(r.Context(), vacationID, req); err != nil {
		switch {
		case errors.Is(err, vacations.ErrVacationNotFound):
			h.logger.Warn("DELETE /vacations/{id} - Vacation not found: vacation_id=%d", vacationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, vacations.ErrAccessDenied):
			h.logger.Warn("DELETE /vacations/{id} - Access denied: vacation_id=%d, user_id=%d", vacationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, vacations.ErrCannotCancel):
			h.logger.Warn("DELETE /vacations/{id} - Cannot cancel: vacation_id=%d", vacationID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("DELETE /vacations/{id} - Failed to cancel vacation: vacation_id=%d, error=%v", vacationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /vacations/{id} - Vacation cancelled successfully: vacation_id=%d, user_id=%d",
		vacationID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
