package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-VacationService/internal/domain"
	"github.com/m04kA/SMC-VacationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VacationService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий баланса отпускных дней (на пользователя и год)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория балансов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает баланс пользователя за год
func (r *Repository) Get(ctx context.Context, userID int64, year int) (*domain.Balance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"user_id",
		"year",
		"total_days",
		"used_days",
		"updated_at",
	).
		From("vacation_balances").
		Where(squirrel.Eq{"user_id": userID, "year": year}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var balance domain.Balance
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&balance.UserID,
		&balance.Year,
		&balance.TotalDays,
		&balance.UsedDays,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBalanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan balance: %v", ErrScanRow, err)
	}

	balance.UpdatedAt = updatedAt.Time

	return &balance, nil
}

// GetOrCreate получает баланс пользователя за год, создавая строку
// с дефолтным лимитом при первом обращении
func (r *Repository) GetOrCreate(ctx context.Context, userID int64, year int, defaultTotalDays int) (*domain.Balance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vacation_balances").
		Columns("user_id", "year", "total_days", "used_days").
		Values(userID, year, defaultTotalDays, 0).
		Suffix("ON CONFLICT (user_id, year) DO NOTHING").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - execute insert: %v", ErrExecQuery, err)
	}

	return r.Get(ctx, userID, year)
}

// Debit списывает дни с баланса. Отказывает, если остатка недостаточно:
// условие used_days + N <= total_days проверяется атомарно на стороне БД.
func (r *Repository) Debit(ctx context.Context, userID int64, year int, days int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vacation_balances").
		Set("used_days", squirrel.Expr("used_days + ?", days)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID, "year": year}).
		Where(squirrel.Expr("used_days + ? <= total_days", days)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Debit - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Debit - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Debit - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо строки нет, либо остатка недостаточно, различаем по Get
		if _, getErr := r.Get(ctx, userID, year); getErr != nil {
			return getErr
		}
		return ErrInsufficientBalance
	}

	return nil
}

// Credit возвращает дни на баланс (отмена или отклонение отпуска).
// Остаток не может уйти ниже нуля.
func (r *Repository) Credit(ctx context.Context, userID int64, year int, days int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vacation_balances").
		Set("used_days", squirrel.Expr("GREATEST(used_days - ?, 0)", days)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID, "year": year}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Credit - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Credit - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Credit - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBalanceNotFound
	}

	return nil
}

// SetTotal устанавливает годовой лимит дней для пользователя
func (r *Repository) SetTotal(ctx context.Context, userID int64, year int, totalDays int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vacation_balances").
		Columns("user_id", "year", "total_days", "used_days").
		Values(userID, year, totalDays, 0).
		Suffix(`ON CONFLICT (user_id, year) DO UPDATE SET
			total_days = EXCLUDED.total_days,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetTotal - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetTotal - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
