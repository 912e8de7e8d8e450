package approve_vacation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VacationService/internal/api/handlers"
	"github.com/m04kA/SMC-VacationService/internal/service/vacations"
)

const (
	msgInvalidVacationID = "некорректный ID отпуска"
	msgNotFound          = "отпуск не найден"
	msgNotPending        = "утвердить можно только заявку в статусе pending"
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

// Handle PATCH /api/v1/vacations/{vacationId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vacationID, err := strconv.ParseInt(vars["vacationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /vacations/{id}/approve - Invalid vacation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVacationID)
		return
	}

	if err := h.service.Approve(r.Context(), vacationID); err != nil {
		switch {
		case errors.Is(err, vacations.ErrVacationNotFound):
			h.logger.Warn("PATCH /vacations/{id}/approve - Vacation not found: vacation_id=%d", vacationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, vacations.ErrInvalidStatusTransition):
			h.logger.Warn("PATCH /vacations/{id}/approve - Not pending: vacation_id=%d", vacationID)
			handlers.RespondConflict(w, msgNotPending)

		default:
			h.logger.Error("PATCH /vacations/{id}/approve - Failed to approve: vacation_id=%d, error=%v", vacationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /vacations/{id}/approve - Vacation approved successfully: vacation_id=%d", vacationID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
