package get_settings

import (
	"net/http"

	"github.com/m04kA/SMC-VacationService/internal/api/handlers"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetGlobal(r.Context())
	if err != nil {
		h.logger.Error("GET /settings - Failed to get global settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /settings - Global settings retrieved")
	handlers.RespondJSON(w, http.StatusOK, settings)
}
