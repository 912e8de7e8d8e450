package vacations

import "errors"

var (
	// ErrVacationNotFound возвращается, когда отпуск не найден
	ErrVacationNotFound = errors.New("vacation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда отпуск не может быть отменен
	ErrCannotCancel = errors.New("vacation cannot be cancelled")

	// ErrInvalidStatusTransition возвращается при недопустимом переходе статуса
	// (утвердить или отклонить можно только заявку в статусе pending)
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
