package rules

import "errors"

var (
	// ErrInvalidRange возвращается, когда начало диапазона позже его конца.
	// Это ошибка программиста на стороне вызывающего кода, а не нарушение правил.
	ErrInvalidRange = errors.New("rules: start date is after end date")

	// ErrInvalidInput возвращается при некорректных входных данных (нулевые даты)
	ErrInvalidInput = errors.New("rules: invalid input")
)
