package update_settings

import (
	"context"

	"github.com/m04kA/SMC-VacationService/internal/service/settings/models"
)

type SettingsService interface {
	UpdateGlobal(ctx context.Context, req *models.UpdateGlobalSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
