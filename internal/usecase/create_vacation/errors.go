package create_vacation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VacationService/internal/rules"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_vacation: invalid input data")

	// ErrInsufficientBalance возвращается, когда на балансе недостаточно дней
	ErrInsufficientBalance = errors.New("create_vacation: insufficient vacation balance")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_vacation: internal error")
)

// RuleViolationError несет нарушение правила бронирования.
// Нарушение - это данные для клиента, а не внутренняя ошибка:
// обработчик конвертирует его в структурированный JSON-ответ.
type RuleViolationError struct {
	Violation rules.Violation
}

// Error реализует интерфейс error
func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("create_vacation: rule violation %s: %s", e.Violation.Kind, e.Violation.Message)
}

// AsRuleViolation извлекает RuleViolationError из цепочки ошибок
func AsRuleViolation(err error) (*RuleViolationError, bool) {
	var rv *RuleViolationError
	if errors.As(err, &rv) {
		return rv, true
	}
	return nil, false
}
