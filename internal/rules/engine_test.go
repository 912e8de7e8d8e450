package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VacationService/internal/domain"
)

// Настройки со всеми выключенными группами: срабатывает только
// безусловная проверка self-overlap.
func allDisabledSettings() domain.Settings {
	return domain.Settings{}
}

func enabledSettings() domain.Settings {
	s := domain.DefaultGlobalSettings()
	s.RestrictedDays.Enabled = true
	s.SeasonalRules.Enabled = true
	return s
}

func vacation(id, userID int64, start, end time.Time, gapDays int) *domain.Vacation {
	return &domain.Vacation{
		ID:                id,
		UserID:            userID,
		UserName:          "user",
		StartDate:         start,
		EndDate:           end,
		Status:            domain.StatusApproved,
		TotalVacationDays: 5,
		GapDays:           gapDays,
	}
}

func validate(t *testing.T, input Input, existing []*domain.Vacation, settings domain.Settings, now time.Time) Result {
	t.Helper()
	result, err := Validate(input, existing, settings, now)
	require.NoError(t, err)
	return result
}

func TestValidate_NoConflicts(t *testing.T) {
	now := date(2026, time.June, 1)
	input := Input{
		UserID:    1,
		StartDate: date(2026, time.June, 8),
		EndDate:   date(2026, time.June, 12),
	}

	result := validate(t, input, nil, enabledSettings(), now)

	assert.True(t, result.Valid)
	assert.Nil(t, result.Violation)
}

func TestValidate_SelfOverlap(t *testing.T) {
	now := date(2026, time.June, 1)
	existing := []*domain.Vacation{
		vacation(10, 1, date(2026, time.June, 10), date(2026, time.June, 14), 0),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical range", date(2026, time.June, 10), date(2026, time.June, 14), true},
		{"partial overlap at start", date(2026, time.June, 8), date(2026, time.June, 10), true},
		{"partial overlap at end", date(2026, time.June, 14), date(2026, time.June, 16), true},
		{"fully inside", date(2026, time.June, 11), date(2026, time.June, 12), true},
		{"adjacent before", date(2026, time.June, 8), date(2026, time.June, 9), false},
		{"adjacent after", date(2026, time.June, 15), date(2026, time.June, 16), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := Input{UserID: 1, StartDate: tt.start, EndDate: tt.end}
			result := validate(t, input, existing, allDisabledSettings(), now)

			if tt.want {
				require.False(t, result.Valid)
				assert.Equal(t, KindSelfOverlap, result.Violation.Kind)
			} else {
				assert.True(t, result.Valid)
			}
		})
	}
}

// Self-overlap проверяется даже при выключенных группах правил
func TestValidate_SelfOverlapUnconditional(t *testing.T) {
	now := date(2026, time.June, 1)
	existing := []*domain.Vacation{
		vacation(10, 1, date(2026, time.June, 10), date(2026, time.June, 14), 0),
	}
	input := Input{UserID: 1, StartDate: date(2026, time.June, 12), EndDate: date(2026, time.June, 16)}

	result := validate(t, input, existing, allDisabledSettings(), now)

	require.False(t, result.Valid)
	assert.Equal(t, KindSelfOverlap, result.Violation.Kind)
}

func TestValidate_CrossOverlapLimit(t *testing.T) {
	now := date(2024, time.June, 1)
	// Два сотрудника уже в отпуске 2024-07-01
	existing := []*domain.Vacation{
		vacation(1, 2, date(2024, time.June, 28), date(2024, time.July, 3), 0),
		vacation(2, 3, date(2024, time.July, 1), date(2024, time.July, 5), 0),
	}

	settings := allDisabledSettings()
	settings.OverlapRules = domain.OverlapRules{Enabled: true, MaxSimultaneousBookings: 2}

	input := Input{UserID: 4, StartDate: date(2024, time.July, 1), EndDate: date(2024, time.July, 2)}
	result := validate(t, input, existing, settings, now)

	require.False(t, result.Valid)
	assert.Equal(t, KindMaxOverlapExceeded, result.Violation.Kind)
	assert.Equal(t, "2024-07-01", result.Violation.Details["date"])

	// Лимит 3: заявка проходит
	settings.OverlapRules.MaxSimultaneousBookings = 3
	result = validate(t, input, existing, settings, now)
	assert.True(t, result.Valid)
}

func TestValidate_CrossOverlapZeroMeansNoLimit(t *testing.T) {
	now := date(2024, time.June, 1)
	existing := []*domain.Vacation{
		vacation(1, 2, date(2024, time.July, 1), date(2024, time.July, 5), 0),
		vacation(2, 3, date(2024, time.July, 1), date(2024, time.July, 5), 0),
	}

	settings := allDisabledSettings()
	settings.OverlapRules = domain.OverlapRules{Enabled: true, MaxSimultaneousBookings: 0}

	input := Input{UserID: 4, StartDate: date(2024, time.July, 1), EndDate: date(2024, time.July, 3)}
	result := validate(t, input, existing, settings, now)

	assert.True(t, result.Valid)
}

func TestValidate_CrossOverlapExemptions(t *testing.T) {
	now := date(2024, time.June, 1)
	existing := []*domain.Vacation{
		vacation(1, 2, date(2024, time.July, 1), date(2024, time.July, 5), 0),
	}

	settings := allDisabledSettings()
	settings.OverlapRules = domain.OverlapRules{Enabled: true, MaxSimultaneousBookings: 1}
	input := Input{UserID: 4, StartDate: date(2024, time.July, 1), EndDate: date(2024, time.July, 3)}

	// Без исключений: конфликт
	result := validate(t, input, existing, settings, now)
	require.False(t, result.Valid)

	// Персональный bypass
	settings.OverlapRules.BypassOverlapRules = true
	result = validate(t, input, existing, settings, now)
	assert.True(t, result.Valid)

	// Исключение для конкретного пользователя
	settings.OverlapRules.BypassOverlapRules = false
	settings.OverlapRules.CanIgnoreOverlapRulesOf = []int64{2}
	result = validate(t, input, existing, settings, now)
	assert.True(t, result.Valid)
}

// Отпуск заканчивается 2024-06-10 с gap 7 дней: окно (2024-06-10, 2024-06-17]
func TestValidate_GapWindow(t *testing.T) {
	now := date(2024, time.May, 1)
	existing := []*domain.Vacation{
		vacation(1, 2, date(2024, time.June, 3), date(2024, time.June, 10), 7),
	}

	settings := allDisabledSettings()
	settings.GapRules = domain.GapRules{Enabled: true}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"starts inside window", date(2024, time.June, 12), date(2024, time.June, 20), true},
		{"ends inside window", date(2024, time.June, 11), date(2024, time.June, 15), true},
		{"starts on last window day", date(2024, time.June, 17), date(2024, time.June, 25), true},
		{"starts day after window", date(2024, time.June, 18), date(2024, time.June, 25), false},
		{"ends before vacation", date(2024, time.May, 27), date(2024, time.June, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := Input{UserID: 3, StartDate: tt.start, EndDate: tt.end}
			result := validate(t, input, existing, settings, now)

			if tt.want {
				require.False(t, result.Valid)
				assert.Equal(t, KindGapConflict, result.Violation.Kind)
				assert.Equal(t, "2024-06-17", result.Violation.Details["gapEnd"])
			} else {
				assert.True(t, result.Valid)
			}
		})
	}
}

func TestValidate_GapZeroNeverConflicts(t *testing.T) {
	now := date(2024, time.May, 1)
	existing := []*domain.Vacation{
		vacation(1, 2, date(2024, time.June, 9), date(2024, time.June, 10), 0),
	}

	settings := allDisabledSettings()
	settings.GapRules = domain.GapRules{Enabled: true}

	input := Input{UserID: 3, StartDate: date(2024, time.June, 11), EndDate: date(2024, time.June, 12)}
	result := validate(t, input, existing, settings, now)

	assert.True(t, result.Valid)
}

// Blackout 2024-12-20..2025-01-05: любое пересечение блокирует заявку
func TestValidate_BlackoutPeriod(t *testing.T) {
	now := date(2024, time.November, 1)
	settings := allDisabledSettings()
	settings.SeasonalRules = domain.SeasonalRules{
		Enabled: true,
		BlackoutPeriods: []domain.Period{
			{
				Name:   "Year-end freeze",
				Reason: "peak season",
				Start:  date(2024, time.December, 20),
				End:    date(2025, time.January, 5),
			},
		},
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"fully inside", date(2024, time.December, 23), date(2024, time.December, 27), true},
		{"overlaps start boundary", date(2024, time.December, 15), date(2024, time.December, 20), true},
		{"overlaps end boundary", date(2025, time.January, 5), date(2025, time.January, 10), true},
		{"spans whole period", date(2024, time.December, 10), date(2025, time.January, 10), true},
		{"before period", date(2024, time.December, 10), date(2024, time.December, 19), false},
		{"after period", date(2025, time.January, 6), date(2025, time.January, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := Input{UserID: 1, StartDate: tt.start, EndDate: tt.end}
			result := validate(t, input, nil, settings, now)

			if tt.want {
				require.False(t, result.Valid)
				assert.Equal(t, KindBlackoutPeriod, result.Violation.Kind)
				assert.Equal(t, "Year-end freeze", result.Violation.Details["name"])
			} else {
				assert.True(t, result.Valid)
			}
		})
	}
}

// Preferred-периоды не блокируют бронирование
func TestValidate_PreferredPeriodsNeverGate(t *testing.T) {
	now := date(2024, time.May, 1)
	settings := allDisabledSettings()
	settings.SeasonalRules = domain.SeasonalRules{
		Enabled: true,
		PreferredPeriods: []domain.Period{
			{Name: "Summer", Start: date(2024, time.June, 1), End: date(2024, time.August, 31)},
		},
	}

	input := Input{UserID: 1, StartDate: date(2024, time.September, 2), EndDate: date(2024, time.September, 6)}
	result := validate(t, input, nil, settings, now)

	assert.True(t, result.Valid)
}

func TestValidate_RestrictedDays(t *testing.T) {
	now := date(2026, time.April, 1)

	tests := []struct {
		name     string
		rules    domain.RestrictedDays
		start    time.Time
		end      time.Time
		wantKind Kind
	}{
		{
			name: "custom restricted day",
			rules: domain.RestrictedDays{
				Enabled:          true,
				CustomRestricted: []time.Time{date(2026, time.May, 6)},
			},
			start:    date(2026, time.May, 4),
			end:      date(2026, time.May, 8),
			wantKind: KindCustomRestricted,
		},
		{
			name: "holiday",
			rules: domain.RestrictedDays{
				Enabled:  true,
				Holidays: []time.Time{date(2026, time.May, 1)},
			},
			start:    date(2026, time.April, 29),
			end:      date(2026, time.May, 1),
			wantKind: KindHolidayRestriction,
		},
		{
			// 2026-05-09 суббота
			name: "saturday with all-weekends restriction",
			rules: domain.RestrictedDays{
				Enabled:  true,
				Weekends: domain.WeekendPolicy{Restriction: domain.WeekendRestrictionAll},
			},
			start:    date(2026, time.May, 8),
			end:      date(2026, time.May, 9),
			wantKind: KindWeekendRestriction,
		},
		{
			// 2026-05-10 воскресенье, блокируется только суббота
			name: "sunday with saturday-only restriction passes",
			rules: domain.RestrictedDays{
				Enabled:  true,
				Weekends: domain.WeekendPolicy{Restriction: domain.WeekendRestrictionSaturdayOnly},
			},
			start: date(2026, time.May, 10),
			end:   date(2026, time.May, 11),
		},
		{
			name: "disabled group never gates",
			rules: domain.RestrictedDays{
				Enabled:          false,
				CustomRestricted: []time.Time{date(2026, time.May, 6)},
			},
			start: date(2026, time.May, 4),
			end:   date(2026, time.May, 8),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := allDisabledSettings()
			settings.RestrictedDays = tt.rules

			input := Input{UserID: 1, StartDate: tt.start, EndDate: tt.end}
			result := validate(t, input, nil, settings, now)

			if tt.wantKind != "" {
				require.False(t, result.Valid)
				assert.Equal(t, tt.wantKind, result.Violation.Kind)
			} else {
				assert.True(t, result.Valid)
			}
		})
	}
}

func TestValidate_AdvanceBookingAndMinNotice(t *testing.T) {
	now := date(2026, time.June, 1) // понедельник

	tests := []struct {
		name     string
		rules    domain.BookingRules
		start    time.Time
		wantKind Kind
	}{
		{
			name: "too far ahead calendar days",
			rules: domain.BookingRules{
				MaxAdvanceBookingDays: domain.DayLimit{Days: 30, DayType: domain.DayTypeCalendar},
			},
			start:    date(2026, time.July, 15),
			wantKind: KindAdvanceBooking,
		},
		{
			name: "within advance window",
			rules: domain.BookingRules{
				MaxAdvanceBookingDays: domain.DayLimit{Days: 30, DayType: domain.DayTypeCalendar},
			},
			start: date(2026, time.June, 29),
		},
		{
			name: "not enough notice",
			rules: domain.BookingRules{
				MinDaysNotice: domain.DayLimit{Days: 14, DayType: domain.DayTypeCalendar},
			},
			start:    date(2026, time.June, 5),
			wantKind: KindMinNotice,
		},
		{
			name: "enough notice",
			rules: domain.BookingRules{
				MinDaysNotice: domain.DayLimit{Days: 14, DayType: domain.DayTypeCalendar},
			},
			start: date(2026, time.June, 22),
		},
		{
			name: "working-day notice excludes weekends",
			rules: domain.BookingRules{
				// 5 рабочих дней от понедельника = следующий понедельник
				MinDaysNotice: domain.DayLimit{Days: 5, DayType: domain.DayTypeWorking},
			},
			start:    date(2026, time.June, 5), // пятница, всего 4 рабочих дня
			wantKind: KindMinNotice,
		},
		{
			name:  "zero limits mean unlimited",
			rules: domain.BookingRules{},
			start: date(2030, time.January, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := allDisabledSettings()
			settings.BookingRules = tt.rules

			input := Input{UserID: 1, StartDate: tt.start, EndDate: tt.start.AddDate(0, 0, 1)}
			result := validate(t, input, nil, settings, now)

			if tt.wantKind != "" {
				require.False(t, result.Valid)
				assert.Equal(t, tt.wantKind, result.Violation.Kind)
			} else {
				assert.True(t, result.Valid)
			}
		})
	}
}

func TestValidate_MaxDaysPerBooking(t *testing.T) {
	now := date(2026, time.June, 1)
	settings := allDisabledSettings()
	settings.BookingRules.MaxDaysPerBooking = 5

	// 2026-07-06..2026-07-17 = 10 рабочих дней
	input := Input{UserID: 1, StartDate: date(2026, time.July, 6), EndDate: date(2026, time.July, 17)}
	result := validate(t, input, nil, settings, now)

	require.False(t, result.Valid)
	assert.Equal(t, KindMaxDaysPerBooking, result.Violation.Kind)
	assert.Equal(t, "10", result.Violation.Details["requested"])

	// Ровно в лимит
	input.EndDate = date(2026, time.July, 10)
	result = validate(t, input, nil, settings, now)
	assert.True(t, result.Valid)
}

func TestValidate_MaxDaysPerYear(t *testing.T) {
	now := date(2026, time.March, 1)
	settings := allDisabledSettings()
	settings.BookingRules.MaxDaysPerYear = 20

	existing := []*domain.Vacation{
		{
			ID: 1, UserID: 1,
			StartDate: date(2026, time.February, 2), EndDate: date(2026, time.February, 20),
			Status: domain.StatusApproved, TotalVacationDays: 15,
		},
		// Чужой отпуск не учитывается
		{
			ID: 2, UserID: 2,
			StartDate: date(2026, time.February, 2), EndDate: date(2026, time.February, 20),
			Status: domain.StatusApproved, TotalVacationDays: 15,
		},
	}

	// 2026-06-01..2026-06-12 = 10 рабочих дней, 15 + 10 > 20
	input := Input{UserID: 1, StartDate: date(2026, time.June, 1), EndDate: date(2026, time.June, 12)}
	result := validate(t, input, existing, settings, now)

	require.False(t, result.Valid)
	assert.Equal(t, KindMaxDaysPerYear, result.Violation.Kind)
	assert.Equal(t, "15", result.Violation.Details["used"])

	// 2026-06-01..2026-06-05 = 5 рабочих дней, ровно в лимит
	input.EndDate = date(2026, time.June, 5)
	result = validate(t, input, existing, settings, now)
	assert.True(t, result.Valid)
}

// Порядок проверок фиксирован: при нескольких нарушениях возвращается
// первое по приоритету
func TestValidate_ShortCircuitOrder(t *testing.T) {
	now := date(2024, time.June, 1)

	settings := allDisabledSettings()
	settings.OverlapRules = domain.OverlapRules{Enabled: true, MaxSimultaneousBookings: 1}
	settings.BookingRules.MaxDaysPerBooking = 1

	existing := []*domain.Vacation{
		// Свой отпуск и чужой отпуск пересекаются с заявкой
		vacation(1, 1, date(2024, time.July, 1), date(2024, time.July, 5), 0),
		vacation(2, 2, date(2024, time.July, 1), date(2024, time.July, 5), 0),
	}

	input := Input{UserID: 1, StartDate: date(2024, time.July, 3), EndDate: date(2024, time.July, 10)}
	result := validate(t, input, existing, settings, now)

	require.False(t, result.Valid)
	assert.Equal(t, KindSelfOverlap, result.Violation.Kind)
}

// Идемпотентность: повторный прогон с теми же данными дает тот же результат
func TestValidate_Deterministic(t *testing.T) {
	now := date(2024, time.May, 1)
	existing := []*domain.Vacation{
		vacation(1, 2, date(2024, time.June, 3), date(2024, time.June, 10), 7),
		vacation(2, 3, date(2024, time.June, 5), date(2024, time.June, 12), 7),
	}

	settings := allDisabledSettings()
	settings.GapRules = domain.GapRules{Enabled: true}

	input := Input{UserID: 4, StartDate: date(2024, time.June, 14), EndDate: date(2024, time.June, 20)}

	first := validate(t, input, existing, settings, now)
	for i := 0; i < 5; i++ {
		again := validate(t, input, existing, settings, now)
		assert.Equal(t, first, again)
	}
	require.False(t, first.Valid)
	// Конфликт детерминированно указывает на первый отпуск в снимке
	assert.Equal(t, "1", first.Violation.Details["vacationId"])
}

func TestValidate_InvalidInput(t *testing.T) {
	now := date(2024, time.May, 1)

	_, err := Validate(Input{UserID: 1}, nil, allDisabledSettings(), now)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Validate(Input{
		UserID:    1,
		StartDate: date(2024, time.June, 10),
		EndDate:   date(2024, time.June, 5),
	}, nil, allDisabledSettings(), now)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
