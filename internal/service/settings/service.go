package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-VacationService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-VacationService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-VacationService/internal/service/settings/models"
)

// Service сервис для работы с настройками правил бронирования отпусков
type Service struct {
	settingsRepo SettingsRepository
	validate     *validator.Validate
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		validate:     validator.New(),
		logger:       logger,
	}
}

// GetGlobal получает глобальные настройки.
// Если глобальная строка еще не создана, возвращаются дефолтные значения.
func (s *Service) GetGlobal(ctx context.Context) (*models.SettingsResponse, error) {
	s.logger.Info("GetGlobal: fetching global settings")

	settings, err := s.settingsRepo.GetGlobal(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("GetGlobal: no global settings stored, returning defaults")
			defaults := domain.DefaultGlobalSettings()
			return models.FromDomainSettings(&defaults), nil
		}
		s.logger.Error("GetGlobal: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetGlobal - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// UpdateGlobal создает или обновляет глобальные настройки (только администратор)
func (s *Service) UpdateGlobal(ctx context.Context, req *models.UpdateGlobalSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateGlobal: updating global settings")

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("UpdateGlobal: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	settings, err := req.ToDomainSettings()
	if err != nil {
		s.logger.Warn("UpdateGlobal: conversion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.validatePeriods(settings.SeasonalRules); err != nil {
		s.logger.Warn("UpdateGlobal: period validation failed: %v", err)
		return nil, err
	}

	if err := s.settingsRepo.UpsertGlobal(ctx, settings); err != nil {
		s.logger.Error("UpdateGlobal: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateGlobal - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateGlobal: successfully updated global settings")
	return models.FromDomainSettings(settings), nil
}

// GetUserSettings получает персональные настройки пользователя:
// override-слой (если есть) плюс итоговые значения с учетом иерархии
func (s *Service) GetUserSettings(ctx context.Context, userID int64) (*models.UserSettingsResponse, error) {
	s.logger.Info("GetUserSettings: fetching settings for user=%d", userID)

	resolved, err := s.settingsRepo.GetResolved(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserSettings: failed to resolve settings for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserSettings - resolve settings: %v", ErrInternal, err)
	}

	resp := &models.UserSettingsResponse{
		UserID:   userID,
		Resolved: *models.FromDomainSettings(&resolved),
	}

	override, err := s.settingsRepo.GetUserOverride(ctx, userID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("GetUserSettings: failed to fetch override for user=%d: %v", userID, err)
			return nil, fmt.Errorf("%w: GetUserSettings - fetch override: %v", ErrInternal, err)
		}
	} else {
		resp.Override = models.FromDomainOverride(override)
	}

	return resp, nil
}

// UpdateUserSettings создает или обновляет персональный override-слой (только администратор).
// Пустой запрос (без групп) удаляет override, пользователь возвращается к глобальным настройкам.
func (s *Service) UpdateUserSettings(ctx context.Context, userID int64, req *models.UpdateUserSettingsRequest) (*models.UserSettingsResponse, error) {
	s.logger.Info("UpdateUserSettings: updating settings for user=%d", userID)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("UpdateUserSettings: validation failed for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	override, err := req.ToDomainOverride()
	if err != nil {
		s.logger.Warn("UpdateUserSettings: conversion failed for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if override.IsEmpty() {
		if err := s.settingsRepo.DeleteUserOverride(ctx, userID); err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("UpdateUserSettings: failed to delete override for user=%d: %v", userID, err)
			return nil, fmt.Errorf("%w: UpdateUserSettings - delete override: %v", ErrInternal, err)
		}
		s.logger.Info("UpdateUserSettings: removed override for user=%d", userID)
		return s.GetUserSettings(ctx, userID)
	}

	if override.SeasonalRules != nil {
		if err := s.validatePeriods(*override.SeasonalRules); err != nil {
			s.logger.Warn("UpdateUserSettings: period validation failed for user=%d: %v", userID, err)
			return nil, err
		}
	}

	if err := s.settingsRepo.UpsertUserOverride(ctx, userID, override); err != nil {
		s.logger.Error("UpdateUserSettings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: UpdateUserSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateUserSettings: successfully updated settings for user=%d", userID)
	return s.GetUserSettings(ctx, userID)
}

// validatePeriods проверяет согласованность границ периодов
func (s *Service) validatePeriods(rules domain.SeasonalRules) error {
	check := func(periods []domain.Period, kind string) error {
		for _, p := range periods {
			if p.Start.After(p.End) {
				return fmt.Errorf("%w: %s period %q: start is after end", ErrInvalidInput, kind, p.Name)
			}
			if p.End.Sub(p.Start) > time.Duration(domain.MaxVacationRangeDays)*24*time.Hour {
				return fmt.Errorf("%w: %s period %q: range exceeds %d days", ErrInvalidInput, kind, p.Name, domain.MaxVacationRangeDays)
			}
		}
		return nil
	}
	if err := check(rules.BlackoutPeriods, "blackout"); err != nil {
		return err
	}
	return check(rules.PreferredPeriods, "preferred")
}
