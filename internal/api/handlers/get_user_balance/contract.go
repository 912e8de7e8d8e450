package get_user_balance

import (
	"context"

	"github.com/m04kA/SMC-VacationService/internal/service/vacations/models"
)

type VacationService interface {
	GetBalance(ctx context.Context, userID int64, year int, requestingUserID int64, isAdmin bool) (*models.BalanceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
