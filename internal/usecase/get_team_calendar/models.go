package get_team_calendar

import (
	"time"

	"github.com/m04kA/SMC-VacationService/internal/domain"
)

// Request запрос на получение календаря команды за период
type Request struct {
	RequestingUserID int64
	StartDate        time.Time
	EndDate          time.Time
}

// Response календарь команды: отпуска всех пользователей за период
// плюс оверлеи настроек для отрисовки (blackout-периоды, рекомендованные
// периоды, праздники и запрещенные дни)
type Response struct {
	StartDate        string          `json:"startDate"`
	EndDate          string          `json:"endDate"`
	Vacations        []CalendarEntry `json:"vacations"`
	BlackoutPeriods  []PeriodEntry   `json:"blackoutPeriods"`
	PreferredPeriods []PeriodEntry   `json:"preferredPeriods"`
	Holidays         []string        `json:"holidays"`
	RestrictedDays   []string        `json:"restrictedDays"`
}

// CalendarEntry отпуск в календаре команды
type CalendarEntry struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	UserName  string `json:"userName"`
	UserColor string `json:"userColor"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
	GapDays   int    `json:"gapDays"`
	GapEnd    string `json:"gapEnd,omitempty"`
}

// PeriodEntry именованный период в календаре
type PeriodEntry struct {
	Name      string `json:"name"`
	Reason    string `json:"reason,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func toCalendarEntry(v *domain.Vacation) CalendarEntry {
	entry := CalendarEntry{
		ID:        v.ID,
		UserID:    v.UserID,
		UserName:  v.UserName,
		UserColor: v.UserColor,
		StartDate: v.StartDate.Format(domain.DateFormat),
		EndDate:   v.EndDate.Format(domain.DateFormat),
		Status:    string(v.Status),
		GapDays:   v.GapDays,
	}
	if v.HasGap() {
		entry.GapEnd = v.GapEnd().Format(domain.DateFormat)
	}
	return entry
}

func toPeriodEntry(p domain.Period) PeriodEntry {
	return PeriodEntry{
		Name:      p.Name,
		Reason:    p.Reason,
		StartDate: p.Start.Format(domain.DateFormat),
		EndDate:   p.End.Format(domain.DateFormat),
	}
}
