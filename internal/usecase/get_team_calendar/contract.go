package get_team_calendar

import (
	"context"

	"github.com/m04kA/SMC-VacationService/internal/domain"
)

// VacationRepository интерфейс репозитория отпусков
type VacationRepository interface {
	GetWithFilter(ctx context.Context, filter domain.VacationsFilter) ([]*domain.Vacation, error)
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetResolved(ctx context.Context, userID int64) (domain.Settings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
