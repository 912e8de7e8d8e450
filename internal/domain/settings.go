package domain

import "time"

// DayType determines how day-deltas are counted for booking windows
type DayType string

const (
	DayTypeWorking  DayType = "working"  // weekends excluded
	DayTypeCalendar DayType = "calendar" // raw calendar days
)

// WeekendRestriction weekend booking policy
type WeekendRestriction string

const (
	WeekendRestrictionAll          WeekendRestriction = "all"
	WeekendRestrictionNone         WeekendRestriction = "none"
	WeekendRestrictionSaturdayOnly WeekendRestriction = "saturday-only"
	WeekendRestrictionSundayOnly   WeekendRestriction = "sunday-only"
)

// BlocksSaturday returns true if the policy forbids bookings covering Saturday
func (w WeekendRestriction) BlocksSaturday() bool {
	return w == WeekendRestrictionAll || w == WeekendRestrictionSaturdayOnly
}

// BlocksSunday returns true if the policy forbids bookings covering Sunday
func (w WeekendRestriction) BlocksSunday() bool {
	return w == WeekendRestrictionAll || w == WeekendRestrictionSundayOnly
}

// OverlapRules rules limiting simultaneous bookings across users
type OverlapRules struct {
	Enabled                 bool    `json:"enabled"`
	MaxSimultaneousBookings int     `json:"maxSimultaneousBookings"`
	BypassOverlapRules      bool    `json:"bypassOverlapRules"`
	CanIgnoreOverlapRulesOf []int64 `json:"canIgnoreOverlapRulesOf"`
}

// HasLimit returns true if a simultaneous-bookings limit is configured.
// Zero means "no limit", same convention as the advance-booking limits.
func (r *OverlapRules) HasLimit() bool {
	return r.MaxSimultaneousBookings > 0
}

// CanIgnore returns true if conflicts with the given user are exempted
func (r *OverlapRules) CanIgnore(userID int64) bool {
	for _, id := range r.CanIgnoreOverlapRulesOf {
		if id == userID {
			return true
		}
	}
	return false
}

// GapRules rules enforcing a cooldown window after other users' vacations
type GapRules struct {
	Enabled         bool    `json:"enabled"`
	BypassGapRules  bool    `json:"bypassGapRules"`
	CanIgnoreGapsOf []int64 `json:"canIgnoreGapsOf"`
}

// CanIgnore returns true if gap windows of the given user are exempted
func (r *GapRules) CanIgnore(userID int64) bool {
	for _, id := range r.CanIgnoreGapsOf {
		if id == userID {
			return true
		}
	}
	return false
}

// WeekendPolicy weekend part of the restricted-days rules
type WeekendPolicy struct {
	Restriction WeekendRestriction `json:"restriction"`
}

// RestrictedDays rules blocking bookings on specific days
type RestrictedDays struct {
	Enabled          bool          `json:"enabled"`
	Holidays         []time.Time   `json:"holidays"`
	Weekends         WeekendPolicy `json:"weekends"`
	CustomRestricted []time.Time   `json:"customRestricted"`
}

// Period is a named date range used for blackout and preferred periods
type Period struct {
	Name   string    `json:"name"`
	Reason string    `json:"reason"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// Overlaps returns true if the period intersects the [start, end] range
func (p *Period) Overlaps(start, end time.Time) bool {
	return !start.After(p.End) && !end.Before(p.Start)
}

// SeasonalRules blackout periods block bookings; preferred periods are
// informational only and surface as calendar hints.
type SeasonalRules struct {
	Enabled          bool     `json:"enabled"`
	BlackoutPeriods  []Period `json:"blackoutPeriods"`
	PreferredPeriods []Period `json:"preferredPeriods"`
}

// DayLimit a day count with its counting mode
type DayLimit struct {
	Days    int     `json:"days"`
	DayType DayType `json:"dayType"`
}

// BookingRules advance-booking, notice and volume limits.
// Zero values mean "no limit" throughout.
type BookingRules struct {
	MaxAdvanceBookingDays DayLimit `json:"maxAdvanceBookingDays"`
	MinDaysNotice         DayLimit `json:"minDaysNotice"`
	MaxDaysPerBooking     int      `json:"maxDaysPerBooking"`
	MaxDaysPerYear        int      `json:"maxDaysPerYear"`
}

// Settings full resolved ruleset consumed by the validation engine.
// Disabled rule groups must never produce a conflict.
type Settings struct {
	OverlapRules   OverlapRules   `json:"overlapRules"`
	GapRules       GapRules       `json:"gapRules"`
	RestrictedDays RestrictedDays `json:"restrictedDays"`
	SeasonalRules  SeasonalRules  `json:"seasonalRules"`
	BookingRules   BookingRules   `json:"bookingRules"`
}

// SettingsOverride per-user override layer. Nil groups fall back to global.
// Overrides replace a whole rule group, they are not merged field by field.
type SettingsOverride struct {
	OverlapRules   *OverlapRules   `json:"overlapRules,omitempty"`
	GapRules       *GapRules       `json:"gapRules,omitempty"`
	RestrictedDays *RestrictedDays `json:"restrictedDays,omitempty"`
	SeasonalRules  *SeasonalRules  `json:"seasonalRules,omitempty"`
	BookingRules   *BookingRules   `json:"bookingRules,omitempty"`
}

// IsEmpty returns true if the override carries no groups
func (o *SettingsOverride) IsEmpty() bool {
	return o.OverlapRules == nil && o.GapRules == nil && o.RestrictedDays == nil &&
		o.SeasonalRules == nil && o.BookingRules == nil
}

// Merge produces resolved settings from global defaults and an optional
// per-user override. Pure: neither argument is mutated.
func Merge(global Settings, override *SettingsOverride) Settings {
	resolved := global
	if override == nil {
		return resolved
	}
	if override.OverlapRules != nil {
		resolved.OverlapRules = *override.OverlapRules
	}
	if override.GapRules != nil {
		resolved.GapRules = *override.GapRules
	}
	if override.RestrictedDays != nil {
		resolved.RestrictedDays = *override.RestrictedDays
	}
	if override.SeasonalRules != nil {
		resolved.SeasonalRules = *override.SeasonalRules
	}
	if override.BookingRules != nil {
		resolved.BookingRules = *override.BookingRules
	}
	return resolved
}
