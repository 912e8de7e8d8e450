package domain

import "time"

// Balance vacation-day balance of a user for one calendar year.
// Creation of a vacation debits UsedDays; cancellation and rejection
// credit them back.
type Balance struct {
	UserID    int64
	Year      int
	TotalDays int
	UsedDays  int
	UpdatedAt time.Time
}

// Remaining returns the number of unconsumed vacation days
func (b *Balance) Remaining() int {
	return b.TotalDays - b.UsedDays
}
