package create_vacation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VacationService/internal/domain"
	"github.com/m04kA/SMC-VacationService/internal/integrations/mailservice"
)

// VacationRepository интерфейс репозитория отпусков
type VacationRepository interface {
	Create(ctx context.Context, vacation *domain.Vacation) (*domain.Vacation, error)
	GetWithFilter(ctx context.Context, filter domain.VacationsFilter) ([]*domain.Vacation, error)
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetResolved(ctx context.Context, userID int64) (domain.Settings, error)
}

// BalanceRepository интерфейс репозитория балансов отпускных дней
type BalanceRepository interface {
	GetOrCreate(ctx context.Context, userID int64, year int, defaultTotalDays int) (*domain.Balance, error)
	SetTotal(ctx context.Context, userID int64, year int, totalDays int) error
	Debit(ctx context.Context, userID int64, year int, days int) error
}

// MailServiceClient интерфейс клиента почтового сервиса
type MailServiceClient interface {
	EnqueueWithGracefulDegradation(ctx context.Context, msg *mailservice.Message) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
