package reject_vacation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VacationService/internal/api/handlers"
	"github.com/m04kA/SMC-VacationService/internal/service/vacations"
	"github.com/m04kA/SMC-VacationService/internal/service/vacations/models"
)

const (
	msgInvalidVacationID  = "некорректный ID отпуска"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "отпуск не найден"
	msgNotPending         = "отклонить можно только заявку в статусе pending"
)

// RejectVacationRequest HTTP request model
type RejectVacationRequest struct {
	Reason string `json:"reason,omitempty"`
}

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

// Handle PATCH /api/v1/vacations/{vacationId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vacationID, err := strconv.ParseInt(vars["vacationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /vacations/{id}/reject - Invalid vacation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVacationID)
		return
	}

	// Тело опционально: отклонение без причины допустимо
	var req RejectVacationRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /vacations/{id}/reject - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	if err := h.service.Reject(r.Context(), vacationID, &models.RejectVacationRequest{Reason: req.Reason}); err != nil {
		switch {
		case errors.Is(err, vacations.ErrVacationNotFound):
			h.logger.Warn("PATCH /vacations/{id}/reject - Vacation not found: vacation_id=%d", vacationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, vacations.ErrInvalidStatusTransition):
			h.logger.Warn("PATCH /vacations/{id}/reject - Not pending: vacation_id=%d", vacationID)
			handlers.RespondConflict(w, msgNotPending)

		default:
			h.logger.Error("PATCH /vacations/{id}/reject - Failed to reject: vacation_id=%d, error=%v", vacationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /vacations/{id}/reject - Vacation rejected successfully: vacation_id=%d", vacationID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
