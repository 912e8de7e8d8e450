package get_team_calendar

import (
	"context"

	getTeamCalendar "github.com/m04kA/SMC-VacationService/internal/usecase/get_team_calendar"
)

type GetTeamCalendarUseCase interface {
	Execute(ctx context.Context, req *getTeamCalendar.Request) (*getTeamCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
