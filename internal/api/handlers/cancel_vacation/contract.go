package cancel_vacation

import (
	"context"

	"github.com/m04kA/SMC-VacationService/internal/service/vacations/models"
)

type VacationService interface {
	Cancel(ctx context.Context, vacationID int64, req *models.CancelVacationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
