// Package rules реализует движок валидации бронирования отпусков:
// чистый конвейер проверок с фиксированным порядком и коротким замыканием
// на первом нарушении. Движок не ходит в БД и не знает про HTTP:
// все данные передаются вызывающим кодом.
package rules

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VacationService/internal/domain"
)

// Input proposed booking under validation
type Input struct {
	UserID    int64
	UserEmail string
	StartDate time.Time
	EndDate   time.Time
}

// Validate runs all checks against the proposed booking in fixed priority
// order and returns the first violation found:
//
//	self-overlap → cross-user overlap → gap rule → seasonal blackout →
//	restricted days → advance booking → min notice → max days per booking →
//	max days per year
//
// Pure and deterministic: the same input, records snapshot, settings and
// clock always produce the same Result. A non-nil error is reserved for
// caller bugs (inverted or zero dates), never for ordinary rule conflicts.
func Validate(input Input, existing []*domain.Vacation, settings domain.Settings, now time.Time) (Result, error) {
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return Result{}, fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}

	input.StartDate = domain.DateOnly(input.StartDate)
	input.EndDate = domain.DateOnly(input.EndDate)
	today := domain.DateOnly(now)

	workingDays, err := WorkingDays(input.StartDate, input.EndDate)
	if err != nil {
		return Result{}, err
	}

	checks := []func() *Violation{
		func() *Violation { return checkSelfOverlap(input, existing) },
		func() *Violation { return checkCrossOverlap(input, existing, settings.OverlapRules) },
		func() *Violation { return checkGapRules(input, existing, settings.GapRules) },
		func() *Violation { return checkBlackout(input, settings.SeasonalRules) },
		func() *Violation { return checkRestrictedDays(input, settings.RestrictedDays) },
		func() *Violation { return checkAdvanceBooking(input, settings.BookingRules.MaxAdvanceBookingDays, today) },
		func() *Violation { return checkMinNotice(input, settings.BookingRules.MinDaysNotice, today) },
		func() *Violation { return checkMaxDaysPerBooking(workingDays, settings.BookingRules.MaxDaysPerBooking) },
		func() *Violation {
			return checkMaxDaysPerYear(input, existing, workingDays, settings.BookingRules.MaxDaysPerYear)
		},
	}

	for _, check := range checks {
		if v := check(); v != nil {
			return failed(v), nil
		}
	}

	return valid(), nil
}
