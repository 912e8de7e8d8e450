package rules

import (
	"time"

	"github.com/m04kA/SMC-VacationService/internal/domain"
)

// WorkingDays counts the days in [start, end] inclusive that are neither
// Saturday nor Sunday. Returns ErrInvalidRange if start is after end.
func WorkingDays(start, end time.Time) (int, error) {
	start = domain.DateOnly(start)
	end = domain.DateOnly(end)

	if start.After(end) {
		return 0, ErrInvalidRange
	}

	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if isWorkingDay(day) {
			count++
		}
	}
	return count, nil
}

func isWorkingDay(day time.Time) bool {
	wd := day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// daysUntil returns how many days ahead of "from" the date "to" is,
// counted per dayType. Calendar mode counts raw days; working mode counts
// only weekdays in (from, to]. Returns 0 when "to" is not after "from".
func daysUntil(from, to time.Time, dayType domain.DayType) int {
	from = domain.DateOnly(from)
	to = domain.DateOnly(to)

	if !to.After(from) {
		return 0
	}

	if dayType == domain.DayTypeWorking {
		count := 0
		for day := from.AddDate(0, 0, 1); !day.After(to); day = day.AddDate(0, 0, 1) {
			if isWorkingDay(day) {
				count++
			}
		}
		return count
	}

	return int(to.Sub(from).Hours() / 24)
}
