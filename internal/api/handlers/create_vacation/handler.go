package create_vacation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VacationService/internal/api/handlers"
	"github.com/m04kA/SMC-VacationService/internal/api/middleware"
	createVacation "github.com/m04kA/SMC-VacationService/internal/usecase/create_vacation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgRuleViolation        = "заявка нарушает правила бронирования отпусков"
	msgInsufficientBalance  = "недостаточно дней на балансе отпуска"
	msgInvalidVacationInput = "некорректные данные заявки на отпуск"
)

type Handler struct {
	useCase CreateVacationUseCase
	logger  Logger
}

func NewHandler(useCase CreateVacationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/vacations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /vacations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateVacationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vacations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /vacations - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Нарушение правила бронирования: структурированный 422
		if rv, ok := createVacation.AsRuleViolation(err); ok {
			h.logger.Warn("POST /vacations - Rule violation: user_id=%d, kind=%s", userID, rv.Violation.Kind)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, FromViolation(rv.Violation, msgRuleViolation))
			return
		}

		switch {
		case errors.Is(err, createVacation.ErrInsufficientBalance):
			h.logger.Warn("POST /vacations - Insufficient balance: user_id=%d", userID)
			handlers.RespondConflict(w, msgInsufficientBalance)

		case errors.Is(err, createVacation.ErrInvalidInput):
			h.logger.Warn("POST /vacations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidVacationInput)

		default:
			h.logger.Error("POST /vacations - Failed to create vacation: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vacations - Vacation created successfully: vacation_id=%d, user_id=%d",
		result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
