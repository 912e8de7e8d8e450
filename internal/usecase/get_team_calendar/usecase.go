package get_team_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VacationService/internal/domain"
	"github.com/m04kA/SMC-VacationService/pkg/ptr"
)

// UseCase use case для получения календаря команды
type UseCase struct {
	vacationRepo VacationRepository
	settingsRepo SettingsRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	vacationRepo VacationRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		vacationRepo: vacationRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Execute выполняет use case получения календаря команды.
// Возвращает отпуска всех пользователей, пересекающиеся с периодом,
// и оверлеи из настроек запрашивающего пользователя.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetTeamCalendar: user=%d, start=%s, end=%s",
		req.RequestingUserID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetTeamCalendar: validation failed: %v", err)
		return nil, err
	}

	startDate := domain.DateOnly(req.StartDate)
	endDate := domain.DateOnly(req.EndDate)

	// 2. Получаем отпуска, пересекающиеся с периодом
	filter := domain.VacationsFilter{
		StartDate: ptr.Ptr(startDate),
		EndDate:   ptr.Ptr(endDate),
	}

	vacations, err := uc.vacationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetTeamCalendar: failed to get vacations: %v", err)
		return nil, fmt.Errorf("%w: failed to get vacations: %v", ErrInternal, err)
	}

	// 3. Получаем настройки для оверлеев календаря
	settings, err := uc.settingsRepo.GetResolved(ctx, req.RequestingUserID)
	if err != nil {
		uc.logger.Error("GetTeamCalendar: failed to resolve settings for user=%d: %v", req.RequestingUserID, err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}

	resp := &Response{
		StartDate:        startDate.Format(domain.DateFormat),
		EndDate:          endDate.Format(domain.DateFormat),
		Vacations:        make([]CalendarEntry, 0, len(vacations)),
		BlackoutPeriods:  []PeriodEntry{},
		PreferredPeriods: []PeriodEntry{},
		Holidays:         []string{},
		RestrictedDays:   []string{},
	}

	for _, v := range vacations {
		resp.Vacations = append(resp.Vacations, toCalendarEntry(v))
	}

	// 4. Оверлеи сезонных правил показываем только если группа включена
	if settings.SeasonalRules.Enabled {
		for _, p := range settings.SeasonalRules.BlackoutPeriods {
			if p.Overlaps(startDate, endDate) {
				resp.BlackoutPeriods = append(resp.BlackoutPeriods, toPeriodEntry(p))
			}
		}
		for _, p := range settings.SeasonalRules.PreferredPeriods {
			if p.Overlaps(startDate, endDate) {
				resp.PreferredPeriods = append(resp.PreferredPeriods, toPeriodEntry(p))
			}
		}
	}

	// 5. Праздники и запрещенные дни, попавшие в период
	if settings.RestrictedDays.Enabled {
		resp.Holidays = daysInRange(settings.RestrictedDays.Holidays, startDate, endDate)
		resp.RestrictedDays = daysInRange(settings.RestrictedDays.CustomRestricted, startDate, endDate)
	}

	uc.logger.Info("GetTeamCalendar: returning %d vacations for period %s..%s",
		len(resp.Vacations), resp.StartDate, resp.EndDate)
	return resp, nil
}

func daysInRange(days []time.Time, start, end time.Time) []string {
	out := []string{}
	for _, d := range days {
		day := domain.DateOnly(d)
		if !day.Before(start) && !day.After(end) {
			out = append(out, day.Format(domain.DateFormat))
		}
	}
	return out
}
