package approve_vacation

import "context"

type VacationService interface {
	Approve(ctx context.Context, vacationID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
