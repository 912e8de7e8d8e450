package get_user_settings

import (
	"context"

	"github.com/m04kA/SMC-VacationService/internal/service/settings/models"
)

type SettingsService interface {
	GetUserSettings(ctx context.Context, userID int64) (*models.UserSettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
