package vacation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-VacationService/internal/domain"
	"github.com/m04kA/SMC-VacationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VacationService/pkg/psqlbuilder"
)

var vacationColumns = []string{
	"id",
	"user_id",
	"user_email",
	"user_name",
	"user_color",
	"start_date",
	"end_date",
	"status",
	"total_vacation_days",
	"gap_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с отпусками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отпусков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись отпуска
// Если в контексте передана активная транзакция (через context.Value), использует её
func (r *Repository) Create(ctx context.Context, vacation *domain.Vacation) (*domain.Vacation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vacations").
		Columns(
			"user_id",
			"user_email",
			"user_name",
			"user_color",
			"start_date",
			"end_date",
			"status",
			"total_vacation_days",
			"gap_days",
		).
		Values(
			vacation.UserID,
			vacation.UserEmail,
			vacation.UserName,
			vacation.UserColor,
			vacation.StartDate,
			vacation.EndDate,
			vacation.Status,
			vacation.TotalVacationDays,
			vacation.GapDays,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&vacation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	vacation.CreatedAt = createdAt.Time
	vacation.UpdatedAt = updatedAt.Time

	return vacation, nil
}

// GetByID получает отпуск по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vacation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(vacationColumns...).
		From("vacations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	vacation, err := scanVacationRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrVacationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan vacation: %v", ErrScanRow, err)
	}

	return vacation, nil
}

// GetWithFilter получает отпуска с гибкой фильтрацией.
// Фильтр по году выбирает записи, пересекающиеся с календарным годом,
// фильтр по периоду - записи, пересекающиеся с [StartDate, EndDate].
//
// Если запрос выполняется внутри транзакции и задан фильтр по году или
// периоду, добавляется FOR UPDATE: это блокирует снимок записей на время
// проверки правил и закрывает гонку check-then-act при создании отпуска.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.VacationsFilter) ([]*domain.Vacation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(vacationColumns...).
		From("vacations")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	// Пересечение с календарным годом
	if filter.Year != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Expr("end_date >= make_date(?, 1, 1)", *filter.Year)).
			Where(squirrel.Expr("start_date <= make_date(?, 12, 31)", *filter.Year))
	}

	// Пересечение с периодом
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": *filter.EndDate})
	}

	selectBuilder = selectBuilder.OrderBy("start_date ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) && (filter.Year != nil || filter.StartDate != nil || filter.EndDate != nil) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanVacations(rows)
}

// GetByUserID получает отпуска пользователя, опционально за год и по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, year *int, status *domain.VacationStatus) ([]*domain.Vacation, error) {
	return r.GetWithFilter(ctx, domain.VacationsFilter{
		UserID: &userID,
		Year:   year,
		Status: status,
	})
}

// UpdateStatus обновляет статус отпуска
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.VacationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vacations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrVacationNotFound
	}

	return nil
}

// Delete удаляет запись отпуска (отмена или отклонение заявки).
// Восстановление баланса дней выполняет вызывающий слой в той же транзакции.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("vacations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrVacationNotFound
	}

	return nil
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVacation(s rowScanner) (*domain.Vacation, error) {
	var vacation domain.Vacation
	var createdAt, updatedAt sql.NullTime

	err := s.Scan(
		&vacation.ID,
		&vacation.UserID,
		&vacation.UserEmail,
		&vacation.UserName,
		&vacation.UserColor,
		&vacation.StartDate,
		&vacation.EndDate,
		&vacation.Status,
		&vacation.TotalVacationDays,
		&vacation.GapDays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	vacation.CreatedAt = createdAt.Time
	vacation.UpdatedAt = updatedAt.Time

	return &vacation, nil
}

func scanVacationRow(row *sql.Row) (*domain.Vacation, error) {
	return scanVacation(row)
}

// scanVacations сканирует результаты запроса в слайс отпусков
func scanVacations(rows *sql.Rows) ([]*domain.Vacation, error) {
	vacations := make([]*domain.Vacation, 0)

	for rows.Next() {
		vacation, err := scanVacation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanVacations - scan row: %v", ErrScanRow, err)
		}
		vacations = append(vacations, vacation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanVacations - rows error: %v", ErrScanRow, err)
	}

	return vacations, nil
}
