package get_vacation

import (
	"context"

	"github.com/m04kA/SMC-VacationService/internal/service/vacations/models"
)

type VacationService interface {
	GetByID(ctx context.Context, id int64, requestingUserID int64, isAdmin bool) (*models.VacationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
