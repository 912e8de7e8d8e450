package create_vacation

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/m04kA/SMC-VacationService/internal/domain"
)

// maxRangeDuration предел длины диапазона дат до запуска конвейера проверок
const maxRangeDuration = time.Duration(domain.MaxVacationRangeDays) * 24 * time.Hour

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.UserEmail == "" {
		return fmt.Errorf("%w: userEmail is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.UserEmail); err != nil {
		return fmt.Errorf("%w: invalid userEmail format", ErrInvalidInput)
	}

	if req.UserName == "" {
		return fmt.Errorf("%w: userName is required", ErrInvalidInput)
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

	if req.EndDate.Sub(req.StartDate) > maxRangeDuration {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidInput, domain.MaxVacationRangeDays)
	}

	return nil
}
