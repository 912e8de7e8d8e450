package get_team_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-VacationService/internal/api/handlers"
	"github.com/m04kA/SMC-VacationService/internal/api/middleware"
	"github.com/m04kA/SMC-VacationService/internal/domain"
	getTeamCalendar "github.com/m04kA/SMC-VacationService/internal/usecase/get_team_calendar"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange  = "некорректный период календаря"
	msgMissingUserID = "отсутствует ID пользователя"
)

type Handler struct {
	useCase GetTeamCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetTeamCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar?startDate=2026-07-01&endDate=2026-07-31
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /calendar - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	// По умолчанию текущий месяц
	now := time.Now()
	startDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endDate := startDate.AddDate(0, 1, -1)

	var err error
	if s := query.Get("startDate"); s != "" {
		startDate, err = time.Parse(domain.DateFormat, s)
		if err != nil {
			h.logger.Warn("GET /calendar - Invalid startDate: %s", s)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}
	if s := query.Get("endDate"); s != "" {
		endDate, err = time.Parse(domain.DateFormat, s)
		if err != nil {
			h.logger.Warn("GET /calendar - Invalid endDate: %s", s)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getTeamCalendar.Request{
		RequestingUserID: userID,
		StartDate:        startDate,
		EndDate:          endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, getTeamCalendar.ErrInvalidInput):
			h.logger.Warn("GET /calendar - Invalid range: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /calendar - Failed to build calendar: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendar - Calendar retrieved: user_id=%d, %d vacations", userID, len(result.Vacations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
