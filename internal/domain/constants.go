package domain

// Default configuration values
const (
	DefaultMaxSimultaneousBookings = 2
	DefaultMaxDaysPerBooking       = 14
	DefaultMaxDaysPerYear          = 28
	DefaultGapDays                 = 7

	// GapThresholdWorkingDays bookings longer than this (in working days)
	// get a cooldown window appended after their end date
	GapThresholdWorkingDays = 2
)

// Business validation constants
const (
	MaxVacationRangeDays = 365
	MaxUserNameLength    = 100
	MaxUserEmailLength   = 254
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// GapDaysForBooking returns the cooldown window appended after a booking
// of the given working-day length
func GapDaysForBooking(workingDays int) int {
	if workingDays > GapThresholdWorkingDays {
		return DefaultGapDays
	}
	return 0
}

// DefaultGlobalSettings returns the ruleset used when no global settings
// row exists yet
func DefaultGlobalSettings() Settings {
	return Settings{
		OverlapRules: OverlapRules{
			Enabled:                 true,
			MaxSimultaneousBookings: DefaultMaxSimultaneousBookings,
		},
		GapRules: GapRules{
			Enabled: true,
		},
		RestrictedDays: RestrictedDays{
			Enabled: true,
			Weekends: WeekendPolicy{
				Restriction: WeekendRestrictionNone,
			},
		},
		SeasonalRules: SeasonalRules{
			Enabled: true,
		},
		BookingRules: BookingRules{
			MaxAdvanceBookingDays: DayLimit{Days: 0, DayType: DayTypeCalendar},
			MinDaysNotice:         DayLimit{Days: 0, DayType: DayTypeCalendar},
			MaxDaysPerBooking:     DefaultMaxDaysPerBooking,
			MaxDaysPerYear:        DefaultMaxDaysPerYear,
		},
	}
}
