package rules

// Kind machine-readable reason of a rule violation. Closed set: the HTTP
// layer maps each kind to a status code and a user-facing message.
type Kind string

const (
	KindSelfOverlap        Kind = "SELF_OVERLAP"
	KindMaxOverlapExceeded Kind = "MAX_OVERLAP_EXCEEDED"
	KindGapConflict        Kind = "GAP_CONFLICT"
	KindBlackoutPeriod     Kind = "BLACKOUT_PERIOD"
	KindCustomRestricted   Kind = "CUSTOM_RESTRICTED_DAY"
	KindHolidayRestriction Kind = "HOLIDAY_RESTRICTION"
	KindWeekendRestriction Kind = "WEEKEND_RESTRICTION"
	KindAdvanceBooking     Kind = "ADVANCE_BOOKING"
	KindMinNotice          Kind = "MIN_NOTICE"
	KindMaxDaysPerBooking  Kind = "MAX_DAYS_PER_BOOKING"
	KindMaxDaysPerYear     Kind = "MAX_DAYS_PER_YEAR"
)

// Violation a single failed rule check. Violations are data, not errors:
// the engine never returns a Go error for an ordinary rule conflict.
type Violation struct {
	Kind    Kind
	Message string
	Details map[string]string
}

// Result outcome of a validation run
type Result struct {
	Valid     bool
	Violation *Violation
}

func valid() Result {
	return Result{Valid: true}
}

func failed(v *Violation) Result {
	return Result{Valid: false, Violation: v}
}

func violation(kind Kind, message string, details map[string]string) *Violation {
	return &Violation{Kind: kind, Message: message, Details: details}
}
