package settings

import (
	"context"

	"github.com/m04kA/SMC-VacationService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetGlobal(ctx context.Context) (*domain.Settings, error)
	GetUserOverride(ctx context.Context, userID int64) (*domain.SettingsOverride, error)
	GetResolved(ctx context.Context, userID int64) (domain.Settings, error)
	UpsertGlobal(ctx context.Context, settings *domain.Settings) error
	UpsertUserOverride(ctx context.Context, userID int64, override *domain.SettingsOverride) error
	DeleteUserOverride(ctx context.Context, userID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
