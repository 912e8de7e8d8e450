package update_user_settings

import (
	"context"

	"github.com/m04kA/SMC-VacationService/internal/service/settings/models"
)

type SettingsService interface {
	UpdateUserSettings(ctx context.Context, userID int64, req *models.UpdateUserSettingsRequest) (*models.UserSettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
