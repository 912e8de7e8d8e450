package create_vacation

import (
	"context"

	createVacation "github.com/m04kA/SMC-VacationService/internal/usecase/create_vacation"
)

type CreateVacationUseCase interface {
	Execute(ctx context.Context, req *createVacation.Request) (*createVacation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
