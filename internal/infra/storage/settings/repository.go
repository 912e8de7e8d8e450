package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-VacationService/internal/domain"
	"github.com/m04kA/SMC-VacationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VacationService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий настроек правил бронирования.
// Группы правил хранятся в JSONB-колонках; строка с user_id IS NULL хранит
// глобальные настройки, строки с user_id - персональные override-слои.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var settingsColumns = []string{
	"overlap_rules",
	"gap_rules",
	"restricted_days",
	"seasonal_rules",
	"booking_rules",
}

// GetGlobal получает глобальные настройки
func (r *Repository) GetGlobal(ctx context.Context) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("vacation_settings").
		Where(squirrel.Eq{"user_id": nil}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetGlobal - build select query: %v", ErrBuildQuery, err)
	}

	var raw [5][]byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw[0], &raw[1], &raw[2], &raw[3], &raw[4])
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetGlobal - scan settings: %v", ErrScanRow, err)
	}

	var settings domain.Settings
	groups := []interface{}{
		&settings.OverlapRules,
		&settings.GapRules,
		&settings.RestrictedDays,
		&settings.SeasonalRules,
		&settings.BookingRules,
	}
	for i, dst := range groups {
		if err := json.Unmarshal(raw[i], dst); err != nil {
			return nil, fmt.Errorf("%w: GetGlobal - column %s: %v", ErrUnmarshal, settingsColumns[i], err)
		}
	}

	return &settings, nil
}

// GetUserOverride получает персональный override-слой пользователя.
// NULL-колонки означают отсутствие override для соответствующей группы.
func (r *Repository) GetUserOverride(ctx context.Context, userID int64) (*domain.SettingsOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("vacation_settings").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUserOverride - build select query: %v", ErrBuildQuery, err)
	}

	var raw [5][]byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw[0], &raw[1], &raw[2], &raw[3], &raw[4])
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserOverride - scan settings: %v", ErrScanRow, err)
	}

	var override domain.SettingsOverride
	if err := unmarshalGroup(raw[0], &override.OverlapRules); err != nil {
		return nil, fmt.Errorf("%w: GetUserOverride - overlap_rules: %v", ErrUnmarshal, err)
	}
	if err := unmarshalGroup(raw[1], &override.GapRules); err != nil {
		return nil, fmt.Errorf("%w: GetUserOverride - gap_rules: %v", ErrUnmarshal, err)
	}
	if err := unmarshalGroup(raw[2], &override.RestrictedDays); err != nil {
		return nil, fmt.Errorf("%w: GetUserOverride - restricted_days: %v", ErrUnmarshal, err)
	}
	if err := unmarshalGroup(raw[3], &override.SeasonalRules); err != nil {
		return nil, fmt.Errorf("%w: GetUserOverride - seasonal_rules: %v", ErrUnmarshal, err)
	}
	if err := unmarshalGroup(raw[4], &override.BookingRules); err != nil {
		return nil, fmt.Errorf("%w: GetUserOverride - booking_rules: %v", ErrUnmarshal, err)
	}

	return &override, nil
}

// GetResolved получает настройки пользователя с учетом иерархии:
// 1. Глобальные настройки (если их нет - дефолтные значения)
// 2. Персональный override-слой пользователя поверх глобальных
func (r *Repository) GetResolved(ctx context.Context, userID int64) (domain.Settings, error) {
	global, err := r.GetGlobal(ctx)
	if err != nil {
		if !errors.Is(err, ErrSettingsNotFound) {
			return domain.Settings{}, fmt.Errorf("%w: GetResolved - global level: %v", ErrExecQuery, err)
		}
		defaults := domain.DefaultGlobalSettings()
		global = &defaults
	}

	override, err := r.GetUserOverride(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrSettingsNotFound) {
			return domain.Settings{}, fmt.Errorf("%w: GetResolved - user level: %v", ErrExecQuery, err)
		}
		override = nil
	}

	return domain.Merge(*global, override), nil
}

// UpsertGlobal создает или обновляет глобальные настройки
func (r *Repository) UpsertGlobal(ctx context.Context, settings *domain.Settings) error {
	groups, err := marshalGroups(
		settings.OverlapRules,
		settings.GapRules,
		settings.RestrictedDays,
		settings.SeasonalRules,
		settings.BookingRules,
	)
	if err != nil {
		return fmt.Errorf("%w: UpsertGlobal: %v", ErrMarshal, err)
	}

	return r.upsert(ctx, nil, groups)
}

// UpsertUserOverride создает или обновляет персональный override-слой.
// Отсутствующие группы сохраняются как NULL (fallback на глобальные).
func (r *Repository) UpsertUserOverride(ctx context.Context, userID int64, override *domain.SettingsOverride) error {
	groups, err := marshalOptionalGroups(
		override.OverlapRules,
		override.GapRules,
		override.RestrictedDays,
		override.SeasonalRules,
		override.BookingRules,
	)
	if err != nil {
		return fmt.Errorf("%w: UpsertUserOverride: %v", ErrMarshal, err)
	}

	return r.upsert(ctx, &userID, groups)
}

// DeleteUserOverride удаляет персональный override-слой пользователя
func (r *Repository) DeleteUserOverride(ctx context.Context, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("vacation_settings").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteUserOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteUserOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteUserOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSettingsNotFound
	}

	return nil
}

func (r *Repository) upsert(ctx context.Context, userID *int64, groups [5]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Для глобальной строки используем частичный уникальный индекс по user_id IS NULL
	conflictTarget := "(user_id)"
	if userID == nil {
		conflictTarget = "((user_id IS NULL)) WHERE user_id IS NULL"
	}

	query, args, err := psqlbuilder.Insert("vacation_settings").
		Columns(
			"user_id",
			"overlap_rules",
			"gap_rules",
			"restricted_days",
			"seasonal_rules",
			"booking_rules",
		).
		Values(userID, groups[0], groups[1], groups[2], groups[3], groups[4]).
		Suffix("ON CONFLICT " + conflictTarget + ` DO UPDATE SET
			overlap_rules = EXCLUDED.overlap_rules,
			gap_rules = EXCLUDED.gap_rules,
			restricted_days = EXCLUDED.restricted_days,
			seasonal_rules = EXCLUDED.seasonal_rules,
			booking_rules = EXCLUDED.booking_rules,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func marshalGroups(groups ...interface{}) ([5]interface{}, error) {
	var out [5]interface{}
	for i, g := range groups {
		data, err := json.Marshal(g)
		if err != nil {
			return out, err
		}
		out[i] = data
	}
	return out, nil
}

func marshalOptionalGroups(overlap *domain.OverlapRules, gap *domain.GapRules, restricted *domain.RestrictedDays, seasonal *domain.SeasonalRules, booking *domain.BookingRules) ([5]interface{}, error) {
	var out [5]interface{}
	ptrs := []interface{}{overlap, gap, restricted, seasonal, booking}
	nils := []bool{overlap == nil, gap == nil, restricted == nil, seasonal == nil, booking == nil}
	for i := range ptrs {
		if nils[i] {
			out[i] = nil
			continue
		}
		data, err := json.Marshal(ptrs[i])
		if err != nil {
			return out, err
		}
		out[i] = data
	}
	return out, nil
}

func unmarshalGroup[T any](raw []byte, dst **T) error {
	if raw == nil {
		*dst = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}
