package get_team_calendar

import (
	"fmt"

	"github.com/m04kA/SMC-VacationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RequestingUserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", ErrInvalidInput)
	}

	if req.StartDate.After(req.EndDate) {
		return fmt.Errorf("%w: startDate must not be after endDate", ErrInvalidInput)
	}

	if int(req.EndDate.Sub(req.StartDate).Hours()/24) > domain.MaxVacationRangeDays {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidInput, domain.MaxVacationRangeDays)
	}

	return nil
}
