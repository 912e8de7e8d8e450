package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestVacationGapWindow(t *testing.T) {
	v := &Vacation{
		StartDate: day(2024, time.June, 3),
		EndDate:   day(2024, time.June, 10),
		GapDays:   7,
	}

	assert.True(t, v.HasGap())
	assert.Equal(t, day(2024, time.June, 17), v.GapEnd())

	v.GapDays = 0
	assert.False(t, v.HasGap())
}

func TestVacationOverlapsAndContains(t *testing.T) {
	v := &Vacation{
		StartDate: day(2024, time.June, 10),
		EndDate:   day(2024, time.June, 14),
	}

	assert.True(t, v.Overlaps(day(2024, time.June, 14), day(2024, time.June, 20)))
	assert.True(t, v.Overlaps(day(2024, time.June, 1), day(2024, time.June, 10)))
	assert.False(t, v.Overlaps(day(2024, time.June, 15), day(2024, time.June, 20)))

	assert.True(t, v.ContainsDay(day(2024, time.June, 10)))
	assert.True(t, v.ContainsDay(day(2024, time.June, 14)))
	assert.False(t, v.ContainsDay(day(2024, time.June, 15)))
}

func TestVacationStatusPredicates(t *testing.T) {
	for _, status := range []VacationStatus{StatusPending, StatusApproved} {
		v := &Vacation{Status: status}
		assert.True(t, v.CountsTowardLimit(), string(status))
		assert.True(t, v.CanBeCancelled(), string(status))
	}

	v := &Vacation{Status: StatusRejected}
	assert.False(t, v.CountsTowardLimit())
	assert.False(t, v.CanBeCancelled())
}

func TestGapDaysForBooking(t *testing.T) {
	assert.Equal(t, 0, GapDaysForBooking(1))
	assert.Equal(t, 0, GapDaysForBooking(2))
	assert.Equal(t, DefaultGapDays, GapDaysForBooking(3))
	assert.Equal(t, DefaultGapDays, GapDaysForBooking(10))
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2024, time.June, 10, 15, 30, 45, 123, time.UTC)
	assert.Equal(t, day(2024, time.June, 10), DateOnly(ts))
}
