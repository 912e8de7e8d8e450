package reject_vacation

import (
	"context"

	"github.com/m04kA/SMC-VacationService/internal/service/vacations/models"
)

type VacationService interface {
	Reject(ctx context.Context, vacationID int64, req *models.RejectVacationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
