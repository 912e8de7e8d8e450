package domain

import "time"

// VacationStatus represents the status of a vacation record
type VacationStatus string

const (
	StatusPending  VacationStatus = "pending"
	StatusApproved VacationStatus = "approved"
	// StatusRejected is transient: rejecting a pending request deletes the
	// record and credits the days back to the owner's balance.
	StatusRejected VacationStatus = "rejected"
)

// Vacation represents a booked vacation period in the system.
// StartDate and EndDate are inclusive calendar dates (time set to midnight).
type Vacation struct {
	ID        int64
	UserID    int64
	UserEmail string
	UserName  string
	UserColor string

	StartDate time.Time
	EndDate   time.Time
	Status    VacationStatus

	// TotalVacationDays is the working-day count of the range,
	// computed once at creation and immutable afterwards.
	TotalVacationDays int

	// GapDays is the cooldown window appended after EndDate during which
	// other employees' bookings are restricted.
	GapDays int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps returns true if the vacation shares at least one calendar day
// with the [start, end] range (inclusive bounds on both sides).
func (v *Vacation) Overlaps(start, end time.Time) bool {
	return !start.After(v.EndDate) && !end.Before(v.StartDate)
}

// ContainsDay returns true if the given day falls within [StartDate, EndDate]
func (v *Vacation) ContainsDay(day time.Time) bool {
	return !day.Before(v.StartDate) && !day.After(v.EndDate)
}

// HasGap returns true if the vacation carries a cooldown window
func (v *Vacation) HasGap() bool {
	return v.GapDays > 0
}

// GapEnd returns the last day of the cooldown window after the vacation.
// The window is (EndDate, GapEnd]; EndDate itself belongs to the vacation.
func (v *Vacation) GapEnd() time.Time {
	return v.EndDate.AddDate(0, 0, v.GapDays)
}

// CountsTowardLimit returns true if the vacation consumes yearly allowance
func (v *Vacation) CountsTowardLimit() bool {
	return v.Status == StatusPending || v.Status == StatusApproved
}

// CanBeCancelled returns true if the vacation can be cancelled by its owner
func (v *Vacation) CanBeCancelled() bool {
	return v.Status == StatusPending || v.Status == StatusApproved
}

// VacationsFilter фильтр для выборки отпусков
type VacationsFilter struct {
	UserID    *int64          // Фильтр по владельцу (опционально)
	Year      *int            // Календарный год, с которым пересекается отпуск (опционально)
	Status    *VacationStatus // Фильтр по статусу (опционально)
	StartDate *time.Time      // Начало периода пересечения (опционально)
	EndDate   *time.Time      // Конец периода пересечения (опционально)
}

// DateOnly truncates a timestamp to its calendar date in the same location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
