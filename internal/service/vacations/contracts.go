package vacations

import (
	"context"

	"github.com/m04kA/SMC-VacationService/internal/domain"
	"github.com/m04kA/SMC-VacationService/internal/integrations/mailservice"
)

// VacationRepository интерфейс репозитория отпусков
type VacationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vacation, error)
	GetByUserID(ctx context.Context, userID int64, year *int, status *domain.VacationStatus) ([]*domain.Vacation, error)
	GetWithFilter(ctx context.Context, filter domain.VacationsFilter) ([]*domain.Vacation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.VacationStatus) error
	Delete(ctx context.Context, id int64) error
}

// BalanceRepository интерфейс репозитория балансов отпускных дней
type BalanceRepository interface {
	GetOrCreate(ctx context.Context, userID int64, year int, defaultTotalDays int) (*domain.Balance, error)
	SetTotal(ctx context.Context, userID int64, year int, totalDays int) error
	Credit(ctx context.Context, userID int64, year int, days int) error
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetResolved(ctx context.Context, userID int64) (domain.Settings, error)
}

// MailServiceClient интерфейс клиента почтового сервиса
type MailServiceClient interface {
	EnqueueWithGracefulDegradation(ctx context.Context, msg *mailservice.Message) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
