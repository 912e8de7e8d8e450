package balance

import "errors"

var (
	// ErrBalanceNotFound возвращается, когда баланс не найден
	ErrBalanceNotFound = errors.New("balance.repository: balance not found")

	// ErrInsufficientBalance возвращается, когда списание превышает остаток дней
	ErrInsufficientBalance = errors.New("balance.repository: insufficient vacation days")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("balance.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("balance.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("balance.repository: failed to scan row")
)
