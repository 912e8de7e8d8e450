package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-VacationService/internal/domain"
)

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")
)

// Request модели.
// Даты в API передаются строками формата YYYY-MM-DD.

// OverlapRulesPayload правила одновременных отпусков
type OverlapRulesPayload struct {
	Enabled                 bool    `json:"enabled"`
	MaxSimultaneousBookings int     `json:"maxSimultaneousBookings" validate:"gte=0,lte=1000"`
	BypassOverlapRules      bool    `json:"bypassOverlapRules"`
	CanIgnoreOverlapRulesOf []int64 `json:"canIgnoreOverlapRulesOf" validate:"dive,gt=0"`
}

// GapRulesPayload правила промежутков между отпусками
type GapRulesPayload struct {
	Enabled         bool    `json:"enabled"`
	BypassGapRules  bool    `json:"bypassGapRules"`
	CanIgnoreGapsOf []int64 `json:"canIgnoreGapsOf" validate:"dive,gt=0"`
}

// WeekendPolicyPayload политика бронирования выходных
type WeekendPolicyPayload struct {
	Restriction string `json:"restriction" validate:"oneof=all none saturday-only sunday-only"`
}

// RestrictedDaysPayload правила запрещенных дней
type RestrictedDaysPayload struct {
	Enabled          bool                 `json:"enabled"`
	Holidays         []string             `json:"holidays" validate:"dive,datetime=2006-01-02"`
	Weekends         WeekendPolicyPayload `json:"weekends"`
	CustomRestricted []string             `json:"customRestricted" validate:"dive,datetime=2006-01-02"`
}

// PeriodPayload именованный период дат
type PeriodPayload struct {
	Name   string `json:"name" validate:"required,max=200"`
	Reason string `json:"reason" validate:"max=500"`
	Start  string `json:"start" validate:"required,datetime=2006-01-02"`
	End    string `json:"end" validate:"required,datetime=2006-01-02"`
}

// SeasonalRulesPayload сезонные правила: blackout-периоды и рекомендованные периоды
type SeasonalRulesPayload struct {
	Enabled          bool            `json:"enabled"`
	BlackoutPeriods  []PeriodPayload `json:"blackoutPeriods" validate:"dive"`
	PreferredPeriods []PeriodPayload `json:"preferredPeriods" validate:"dive"`
}

// DayLimitPayload лимит в днях с режимом подсчета
type DayLimitPayload struct {
	Days    int    `json:"days" validate:"gte=0,lte=3650"`
	DayType string `json:"dayType" validate:"oneof=working calendar"`
}

// BookingRulesPayload лимиты заблаговременности и объема бронирования
type BookingRulesPayload struct {
	MaxAdvanceBookingDays DayLimitPayload `json:"maxAdvanceBookingDays"`
	MinDaysNotice         DayLimitPayload `json:"minDaysNotice"`
	MaxDaysPerBooking     int             `json:"maxDaysPerBooking" validate:"gte=0,lte=365"`
	MaxDaysPerYear        int             `json:"maxDaysPerYear" validate:"gte=0,lte=365"`
}

// UpdateGlobalSettingsRequest запрос на обновление глобальных настроек.
// Все группы обязательны: глобальный уровень всегда полный.
type UpdateGlobalSettingsRequest struct {
	OverlapRules   OverlapRulesPayload   `json:"overlapRules"`
	GapRules       GapRulesPayload       `json:"gapRules"`
	RestrictedDays RestrictedDaysPayload `json:"restrictedDays"`
	SeasonalRules  SeasonalRulesPayload  `json:"seasonalRules"`
	BookingRules   BookingRulesPayload   `json:"bookingRules"`
}

// UpdateUserSettingsRequest запрос на обновление персонального override-слоя.
// Группы опциональны: отсутствующая группа наследуется из глобальных настроек.
type UpdateUserSettingsRequest struct {
	OverlapRules   *OverlapRulesPayload   `json:"overlapRules,omitempty"`
	GapRules       *GapRulesPayload       `json:"gapRules,omitempty"`
	RestrictedDays *RestrictedDaysPayload `json:"restrictedDays,omitempty"`
	SeasonalRules  *SeasonalRulesPayload  `json:"seasonalRules,omitempty"`
	BookingRules   *BookingRulesPayload   `json:"bookingRules,omitempty"`
}

// Response модели

// SettingsResponse полный набор настроек
type SettingsResponse struct {
	OverlapRules   OverlapRulesPayload   `json:"overlapRules"`
	GapRules       GapRulesPayload       `json:"gapRules"`
	RestrictedDays RestrictedDaysPayload `json:"restrictedDays"`
	SeasonalRules  SeasonalRulesPayload  `json:"seasonalRules"`
	BookingRules   BookingRulesPayload   `json:"bookingRules"`
}

// UserSettingsResponse персональные настройки: override-слой плюс итоговые значения
type UserSettingsResponse struct {
	UserID   int64             `json:"userId"`
	Override *SettingsResponse `json:"override,omitempty"`
	Resolved SettingsResponse  `json:"resolved"`
}

// Converters: payload -> domain

// ToDomainSettings конвертирует запрос в domain.Settings
func (r *UpdateGlobalSettingsRequest) ToDomainSettings() (*domain.Settings, error) {
	restricted, err := r.RestrictedDays.toDomain()
	if err != nil {
		return nil, err
	}
	seasonal, err := r.SeasonalRules.toDomain()
	if err != nil {
		return nil, err
	}
	return &domain.Settings{
		OverlapRules:   r.OverlapRules.toDomain(),
		GapRules:       r.GapRules.toDomain(),
		RestrictedDays: *restricted,
		SeasonalRules:  *seasonal,
		BookingRules:   r.BookingRules.toDomain(),
	}, nil
}

// ToDomainOverride конвертирует запрос в domain.SettingsOverride
func (r *UpdateUserSettingsRequest) ToDomainOverride() (*domain.SettingsOverride, error) {
	override := &domain.SettingsOverride{}
	if r.OverlapRules != nil {
		v := r.OverlapRules.toDomain()
		override.OverlapRules = &v
	}
	if r.GapRules != nil {
		v := r.GapRules.toDomain()
		override.GapRules = &v
	}
	if r.RestrictedDays != nil {
		v, err := r.RestrictedDays.toDomain()
		if err != nil {
			return nil, err
		}
		override.RestrictedDays = v
	}
	if r.SeasonalRules != nil {
		v, err := r.SeasonalRules.toDomain()
		if err != nil {
			return nil, err
		}
		override.SeasonalRules = v
	}
	if r.BookingRules != nil {
		v := r.BookingRules.toDomain()
		override.BookingRules = &v
	}
	return override, nil
}

func (p *OverlapRulesPayload) toDomain() domain.OverlapRules {
	return domain.OverlapRules{
		Enabled:                 p.Enabled,
		MaxSimultaneousBookings: p.MaxSimultaneousBookings,
		BypassOverlapRules:      p.BypassOverlapRules,
		CanIgnoreOverlapRulesOf: p.CanIgnoreOverlapRulesOf,
	}
}

func (p *GapRulesPayload) toDomain() domain.GapRules {
	return domain.GapRules{
		Enabled:         p.Enabled,
		BypassGapRules:  p.BypassGapRules,
		CanIgnoreGapsOf: p.CanIgnoreGapsOf,
	}
}

func (p *RestrictedDaysPayload) toDomain() (*domain.RestrictedDays, error) {
	holidays, err := parseDates(p.Holidays)
	if err != nil {
		return nil, err
	}
	custom, err := parseDates(p.CustomRestricted)
	if err != nil {
		return nil, err
	}
	return &domain.RestrictedDays{
		Enabled:          p.Enabled,
		Holidays:         holidays,
		Weekends:         domain.WeekendPolicy{Restriction: domain.WeekendRestriction(p.Weekends.Restriction)},
		CustomRestricted: custom,
	}, nil
}

func (p *SeasonalRulesPayload) toDomain() (*domain.SeasonalRules, error) {
	blackout, err := parsePeriods(p.BlackoutPeriods)
	if err != nil {
		return nil, err
	}
	preferred, err := parsePeriods(p.PreferredPeriods)
	if err != nil {
		return nil, err
	}
	return &domain.SeasonalRules{
		Enabled:          p.Enabled,
		BlackoutPeriods:  blackout,
		PreferredPeriods: preferred,
	}, nil
}

func (p *BookingRulesPayload) toDomain() domain.BookingRules {
	return domain.BookingRules{
		MaxAdvanceBookingDays: domain.DayLimit{Days: p.MaxAdvanceBookingDays.Days, DayType: domain.DayType(p.MaxAdvanceBookingDays.DayType)},
		MinDaysNotice:         domain.DayLimit{Days: p.MinDaysNotice.Days, DayType: domain.DayType(p.MinDaysNotice.DayType)},
		MaxDaysPerBooking:     p.MaxDaysPerBooking,
		MaxDaysPerYear:        p.MaxDaysPerYear,
	}
}

func parseDates(dates []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse(domain.DateFormat, d)
		if err != nil {
			return nil, ErrInvalidDate
		}
		out = append(out, t)
	}
	return out, nil
}

func parsePeriods(periods []PeriodPayload) ([]domain.Period, error) {
	out := make([]domain.Period, 0, len(periods))
	for _, p := range periods {
		start, err := time.Parse(domain.DateFormat, p.Start)
		if err != nil {
			return nil, ErrInvalidDate
		}
		end, err := time.Parse(domain.DateFormat, p.End)
		if err != nil {
			return nil, ErrInvalidDate
		}
		out = append(out, domain.Period{Name: p.Name, Reason: p.Reason, Start: start, End: end})
	}
	return out, nil
}

// Converters: domain -> response

// FromDomainSettings конвертирует domain.Settings в SettingsResponse
func FromDomainSettings(s *domain.Settings) *SettingsResponse {
	return &SettingsResponse{
		OverlapRules:   fromDomainOverlap(s.OverlapRules),
		GapRules:       fromDomainGap(s.GapRules),
		RestrictedDays: fromDomainRestricted(s.RestrictedDays),
		SeasonalRules:  fromDomainSeasonal(s.SeasonalRules),
		BookingRules:   fromDomainBooking(s.BookingRules),
	}
}

// FromDomainOverride конвертирует override-слой в SettingsResponse.
// Отсутствующие группы остаются нулевыми значениями; вызывающий слой
// показывает их только вместе с флагами присутствия.
func FromDomainOverride(o *domain.SettingsOverride) *SettingsResponse {
	out := &SettingsResponse{}
	if o.OverlapRules != nil {
		out.OverlapRules = fromDomainOverlap(*o.OverlapRules)
	}
	if o.GapRules != nil {
		out.GapRules = fromDomainGap(*o.GapRules)
	}
	if o.RestrictedDays != nil {
		out.RestrictedDays = fromDomainRestricted(*o.RestrictedDays)
	}
	if o.SeasonalRules != nil {
		out.SeasonalRules = fromDomainSeasonal(*o.SeasonalRules)
	}
	if o.BookingRules != nil {
		out.BookingRules = fromDomainBooking(*o.BookingRules)
	}
	return out
}

func fromDomainOverlap(r domain.OverlapRules) OverlapRulesPayload {
	return OverlapRulesPayload{
		Enabled:                 r.Enabled,
		MaxSimultaneousBookings: r.MaxSimultaneousBookings,
		BypassOverlapRules:      r.BypassOverlapRules,
		CanIgnoreOverlapRulesOf: r.CanIgnoreOverlapRulesOf,
	}
}

func fromDomainGap(r domain.GapRules) GapRulesPayload {
	return GapRulesPayload{
		Enabled:         r.Enabled,
		BypassGapRules:  r.BypassGapRules,
		CanIgnoreGapsOf: r.CanIgnoreGapsOf,
	}
}

func fromDomainRestricted(r domain.RestrictedDays) RestrictedDaysPayload {
	return RestrictedDaysPayload{
		Enabled:          r.Enabled,
		Holidays:         formatDates(r.Holidays),
		Weekends:         WeekendPolicyPayload{Restriction: string(r.Weekends.Restriction)},
		CustomRestricted: formatDates(r.CustomRestricted),
	}
}

func fromDomainSeasonal(r domain.SeasonalRules) SeasonalRulesPayload {
	return SeasonalRulesPayload{
		Enabled:          r.Enabled,
		BlackoutPeriods:  formatPeriods(r.BlackoutPeriods),
		PreferredPeriods: formatPeriods(r.PreferredPeriods),
	}
}

func fromDomainBooking(r domain.BookingRules) BookingRulesPayload {
	return BookingRulesPayload{
		MaxAdvanceBookingDays: DayLimitPayload{Days: r.MaxAdvanceBookingDays.Days, DayType: string(r.MaxAdvanceBookingDays.DayType)},
		MinDaysNotice:         DayLimitPayload{Days: r.MinDaysNotice.Days, DayType: string(r.MinDaysNotice.DayType)},
		MaxDaysPerBooking:     r.MaxDaysPerBooking,
		MaxDaysPerYear:        r.MaxDaysPerYear,
	}
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(domain.DateFormat))
	}
	return out
}

func formatPeriods(periods []domain.Period) []PeriodPayload {
	out := make([]PeriodPayload, 0, len(periods))
	for _, p := range periods {
		out = append(out, PeriodPayload{
			Name:   p.Name,
			Reason: p.Reason,
			Start:  p.Start.Format(domain.DateFormat),
			End:    p.End.Format(domain.DateFormat),
		})
	}
	return out
}
