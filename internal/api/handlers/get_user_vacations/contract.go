package get_user_vacations

import (
	"context"

	"github.com/m04kA/SMC-VacationService/internal/service/vacations/models"
)

type VacationService interface {
	GetUserVacations(ctx context.Context, req *models.GetUserVacationsRequest) (*models.VacationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
