package rules

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-VacationService/internal/domain"
)

// checkSelfOverlap forbids a user from double-booking their own days.
// Unconditional: no enabled flag or bypass can switch it off.
func checkSelfOverlap(input Input, existing []*domain.Vacation) *Violation {
	for _, v := range existing {
		if v.UserID != input.UserID {
			continue
		}
		if v.Overlaps(input.StartDate, input.EndDate) {
			return violation(KindSelfOverlap,
				fmt.Sprintf("requested range overlaps your own vacation %s - %s",
					v.StartDate.Format(domain.DateFormat), v.EndDate.Format(domain.DateFormat)),
				map[string]string{
					"vacationId": strconv.FormatInt(v.ID, 10),
					"startDate":  v.StartDate.Format(domain.DateFormat),
					"endDate":    v.EndDate.Format(domain.DateFormat),
				})
		}
	}
	return nil
}

// checkCrossOverlap enforces the simultaneous-bookings limit day by day.
// A zero limit means "no limit" (legacy convention, see OverlapRules.HasLimit).
func checkCrossOverlap(input Input, existing []*domain.Vacation, rules domain.OverlapRules) *Violation {
	if !rules.Enabled || rules.BypassOverlapRules || !rules.HasLimit() {
		return nil
	}

	for day := input.StartDate; !day.After(input.EndDate); day = day.AddDate(0, 0, 1) {
		count := 0
		for _, v := range existing {
			if v.UserID == input.UserID {
				continue
			}
			if rules.CanIgnore(v.UserID) {
				continue
			}
			if v.ContainsDay(day) {
				count++
			}
		}
		if count >= rules.MaxSimultaneousBookings {
			return violation(KindMaxOverlapExceeded,
				fmt.Sprintf("%d employees are already on vacation on %s (limit %d)",
					count, day.Format(domain.DateFormat), rules.MaxSimultaneousBookings),
				map[string]string{
					"date":  day.Format(domain.DateFormat),
					"count": strconv.Itoa(count),
					"limit": strconv.Itoa(rules.MaxSimultaneousBookings),
				})
		}
	}
	return nil
}

// checkGapRules forbids a booking that falls into the cooldown window
// (vacationEnd, gapEnd] of another user's vacation, or fully spans it.
// Iterates in stable slice order so the first conflict is deterministic.
func checkGapRules(input Input, existing []*domain.Vacation, rules domain.GapRules) *Violation {
	if !rules.Enabled || rules.BypassGapRules {
		return nil
	}

	for _, v := range existing {
		if v.UserID == input.UserID {
			continue
		}
		if rules.CanIgnore(v.UserID) {
			continue
		}
		if !v.HasGap() {
			continue
		}

		gapEnd := v.GapEnd()

		startInside := input.StartDate.After(v.EndDate) && !input.StartDate.After(gapEnd)
		endInside := input.EndDate.After(v.EndDate) && !input.EndDate.After(gapEnd)
		spansWindow := !input.StartDate.After(v.EndDate) && !input.EndDate.Before(gapEnd)

		if startInside || endInside || spansWindow {
			return violation(KindGapConflict,
				fmt.Sprintf("booking falls into the %d-day cooldown after %s's vacation ending %s",
					v.GapDays, v.UserName, v.EndDate.Format(domain.DateFormat)),
				map[string]string{
					"vacationId":  strconv.FormatInt(v.ID, 10),
					"userName":    v.UserName,
					"vacationEnd": v.EndDate.Format(domain.DateFormat),
					"gapEnd":      gapEnd.Format(domain.DateFormat),
				})
		}
	}
	return nil
}

// checkBlackout forbids any intersection with a blackout period.
// Preferred periods never gate: they are calendar hints only.
func checkBlackout(input Input, rules domain.SeasonalRules) *Violation {
	if !rules.Enabled {
		return nil
	}

	for i := range rules.BlackoutPeriods {
		p := &rules.BlackoutPeriods[i]
		if p.Overlaps(input.StartDate, input.EndDate) {
			return violation(KindBlackoutPeriod,
				fmt.Sprintf("requested range intersects blackout period %q (%s)", p.Name, p.Reason),
				map[string]string{
					"name":   p.Name,
					"reason": p.Reason,
					"start":  p.Start.Format(domain.DateFormat),
					"end":    p.End.Format(domain.DateFormat),
				})
		}
	}
	return nil
}

// checkRestrictedDays forbids bookings covering custom restricted days,
// holidays or restricted weekend days. The legacy system only gated on custom
// days and rendered holidays/weekends as calendar hints; here all three gate
// booking submission (documented decision, see DESIGN.md).
func checkRestrictedDays(input Input, rules domain.RestrictedDays) *Violation {
	if !rules.Enabled {
		return nil
	}

	for _, d := range rules.CustomRestricted {
		d = domain.DateOnly(d)
		if !d.Before(input.StartDate) && !d.After(input.EndDate) {
			return violation(KindCustomRestricted,
				fmt.Sprintf("requested range covers restricted day %s", d.Format(domain.DateFormat)),
				map[string]string{"date": d.Format(domain.DateFormat)})
		}
	}

	for _, d := range rules.Holidays {
		d = domain.DateOnly(d)
		if !d.Before(input.StartDate) && !d.After(input.EndDate) {
			return violation(KindHolidayRestriction,
				fmt.Sprintf("requested range covers holiday %s", d.Format(domain.DateFormat)),
				map[string]string{"date": d.Format(domain.DateFormat)})
		}
	}

	restriction := rules.Weekends.Restriction
	if restriction == domain.WeekendRestrictionNone || restriction == "" {
		return nil
	}
	for day := input.StartDate; !day.After(input.EndDate); day = day.AddDate(0, 0, 1) {
		blocked := (day.Weekday() == time.Saturday && restriction.BlocksSaturday()) ||
			(day.Weekday() == time.Sunday && restriction.BlocksSunday())
		if blocked {
			return violation(KindWeekendRestriction,
				fmt.Sprintf("requested range covers restricted weekend day %s", day.Format(domain.DateFormat)),
				map[string]string{
					"date":        day.Format(domain.DateFormat),
					"restriction": string(restriction),
				})
		}
	}
	return nil
}

// checkAdvanceBooking forbids a start date further ahead of today than the
// configured window. Zero days means no limit.
func checkAdvanceBooking(input Input, limit domain.DayLimit, today time.Time) *Violation {
	if limit.Days <= 0 {
		return nil
	}

	delta := daysUntil(today, input.StartDate, limit.DayType)
	if delta > limit.Days {
		return violation(KindAdvanceBooking,
			fmt.Sprintf("start date is %d %s days ahead, bookings are limited to %d days in advance",
				delta, limit.DayType, limit.Days),
			map[string]string{
				"daysAhead": strconv.Itoa(delta),
				"limit":     strconv.Itoa(limit.Days),
				"dayType":   string(limit.DayType),
			})
	}
	return nil
}

// checkMinNotice forbids a start date closer to today than the configured
// notice window. Zero days means no limit.
func checkMinNotice(input Input, limit domain.DayLimit, today time.Time) *Violation {
	if limit.Days <= 0 {
		return nil
	}

	delta := daysUntil(today, input.StartDate, limit.DayType)
	if delta < limit.Days {
		return violation(KindMinNotice,
			fmt.Sprintf("start date is only %d %s days ahead, bookings require %d days notice",
				delta, limit.DayType, limit.Days),
			map[string]string{
				"daysAhead": strconv.Itoa(delta),
				"required":  strconv.Itoa(limit.Days),
				"dayType":   string(limit.DayType),
			})
	}
	return nil
}

// checkMaxDaysPerBooking caps the working-day length of a single booking.
// Zero means no limit.
func checkMaxDaysPerBooking(workingDays, limit int) *Violation {
	if limit <= 0 {
		return nil
	}
	if workingDays > limit {
		return violation(KindMaxDaysPerBooking,
			fmt.Sprintf("booking spans %d working days, limit is %d per booking", workingDays, limit),
			map[string]string{
				"requested": strconv.Itoa(workingDays),
				"limit":     strconv.Itoa(limit),
			})
	}
	return nil
}

// checkMaxDaysPerYear caps the user's total working days for the booking's
// calendar year, counting pending and approved records. Zero means no limit.
func checkMaxDaysPerYear(input Input, existing []*domain.Vacation, workingDays, limit int) *Violation {
	if limit <= 0 {
		return nil
	}

	year := input.StartDate.Year()
	used := 0
	for _, v := range existing {
		if v.UserID != input.UserID {
			continue
		}
		if !v.CountsTowardLimit() {
			continue
		}
		if v.StartDate.Year() != year {
			continue
		}
		used += v.TotalVacationDays
	}

	if used+workingDays > limit {
		return violation(KindMaxDaysPerYear,
			fmt.Sprintf("booking would use %d of %d vacation days for %d (%d already booked)",
				used+workingDays, limit, year, used),
			map[string]string{
				"year":      strconv.Itoa(year),
				"used":      strconv.Itoa(used),
				"requested": strconv.Itoa(workingDays),
				"limit":     strconv.Itoa(limit),
			})
	}
	return nil
}
