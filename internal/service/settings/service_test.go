package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VacationService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-VacationService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-VacationService/internal/service/settings/models"
)

type fakeSettingsRepo struct {
	global    *domain.Settings
	overrides map[int64]*domain.SettingsOverride
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{overrides: make(map[int64]*domain.SettingsOverride)}
}

func (f *fakeSettingsRepo) GetGlobal(_ context.Context) (*domain.Settings, error) {
	if f.global == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.global, nil
}

func (f *fakeSettingsRepo) GetUserOverride(_ context.Context, userID int64) (*domain.SettingsOverride, error) {
	o, ok := f.overrides[userID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return o, nil
}

func (f *fakeSettingsRepo) GetResolved(_ context.Context, userID int64) (domain.Settings, error) {
	global := domain.DefaultGlobalSettings()
	if f.global != nil {
		global = *f.global
	}
	return domain.Merge(global, f.overrides[userID]), nil
}

func (f *fakeSettingsRepo) UpsertGlobal(_ context.Context, settings *domain.Settings) error {
	f.global = settings
	return nil
}

func (f *fakeSettingsRepo) UpsertUserOverride(_ context.Context, userID int64, override *domain.SettingsOverride) error {
	f.overrides[userID] = override
	return nil
}

func (f *fakeSettingsRepo) DeleteUserOverride(_ context.Context, userID int64) error {
	if _, ok := f.overrides[userID]; !ok {
		return settingsRepo.ErrSettingsNotFound
	}
	delete(f.overrides, userID)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validGlobalRequest() *models.UpdateGlobalSettingsRequest {
	return &models.UpdateGlobalSettingsRequest{
		OverlapRules: models.OverlapRulesPayload{Enabled: true, MaxSimultaneousBookings: 3},
		GapRules:     models.GapRulesPayload{Enabled: true},
		RestrictedDays: models.RestrictedDaysPayload{
			Enabled:  true,
			Holidays: []string{"2026-01-01", "2026-05-01"},
			Weekends: models.WeekendPolicyPayload{Restriction: "all"},
		},
		SeasonalRules: models.SeasonalRulesPayload{
			Enabled: true,
			BlackoutPeriods: []models.PeriodPayload{
				{Name: "Year-end freeze", Start: "2026-12-20", End: "2027-01-05"},
			},
		},
		BookingRules: models.BookingRulesPayload{
			MaxAdvanceBookingDays: models.DayLimitPayload{Days: 180, DayType: "calendar"},
			MinDaysNotice:         models.DayLimitPayload{Days: 14, DayType: "working"},
			MaxDaysPerBooking:     14,
			MaxDaysPerYear:        28,
		},
	}
}

func TestGetGlobal_DefaultsWhenMissing(t *testing.T) {
	svc := NewService(newFakeSettingsRepo(), nopLogger{})

	resp, err := svc.GetGlobal(context.Background())
	require.NoError(t, err)

	defaults := domain.DefaultGlobalSettings()
	assert.Equal(t, defaults.OverlapRules.MaxSimultaneousBookings, resp.OverlapRules.MaxSimultaneousBookings)
	assert.Equal(t, string(defaults.RestrictedDays.Weekends.Restriction), resp.RestrictedDays.Weekends.Restriction)
}

func TestUpdateGlobal(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := newFakeSettingsRepo()
		svc := NewService(repo, nopLogger{})

		resp, err := svc.UpdateGlobal(context.Background(), validGlobalRequest())
		require.NoError(t, err)

		assert.Equal(t, 3, resp.OverlapRules.MaxSimultaneousBookings)
		assert.Equal(t, "all", resp.RestrictedDays.Weekends.Restriction)
		require.NotNil(t, repo.global)
		assert.Equal(t, 3, repo.global.OverlapRules.MaxSimultaneousBookings)
	})

	t.Run("negative limit rejected", func(t *testing.T) {
		svc := NewService(newFakeSettingsRepo(), nopLogger{})

		req := validGlobalRequest()
		req.OverlapRules.MaxSimultaneousBookings = -1

		_, err := svc.UpdateGlobal(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad weekend policy rejected", func(t *testing.T) {
		svc := NewService(newFakeSettingsRepo(), nopLogger{})

		req := validGlobalRequest()
		req.RestrictedDays.Weekends.Restriction = "fridays"

		_, err := svc.UpdateGlobal(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad holiday date rejected", func(t *testing.T) {
		svc := NewService(newFakeSettingsRepo(), nopLogger{})

		req := validGlobalRequest()
		req.RestrictedDays.Holidays = []string{"01.01.2026"}

		_, err := svc.UpdateGlobal(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("inverted blackout period rejected", func(t *testing.T) {
		svc := NewService(newFakeSettingsRepo(), nopLogger{})

		req := validGlobalRequest()
		req.SeasonalRules.BlackoutPeriods = []models.PeriodPayload{
			{Name: "broken", Start: "2026-07-10", End: "2026-07-01"},
		}

		_, err := svc.UpdateGlobal(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetUserSettings(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewService(repo, nopLogger{})

	t.Run("no override", func(t *testing.T) {
		resp, err := svc.GetUserSettings(context.Background(), 42)
		require.NoError(t, err)

		assert.Equal(t, int64(42), resp.UserID)
		assert.Nil(t, resp.Override)
		defaults := domain.DefaultGlobalSettings()
		assert.Equal(t, defaults.BookingRules.MaxDaysPerYear, resp.Resolved.BookingRules.MaxDaysPerYear)
	})

	t.Run("with override", func(t *testing.T) {
		repo.overrides[42] = &domain.SettingsOverride{
			BookingRules: &domain.BookingRules{MaxDaysPerYear: 35},
		}

		resp, err := svc.GetUserSettings(context.Background(), 42)
		require.NoError(t, err)

		require.NotNil(t, resp.Override)
		assert.Equal(t, 35, resp.Override.BookingRules.MaxDaysPerYear)
		assert.Equal(t, 35, resp.Resolved.BookingRules.MaxDaysPerYear)
	})
}

func TestUpdateUserSettings(t *testing.T) {
	t.Run("override stored and resolved", func(t *testing.T) {
		repo := newFakeSettingsRepo()
		svc := NewService(repo, nopLogger{})

		req := &models.UpdateUserSettingsRequest{
			OverlapRules: &models.OverlapRulesPayload{Enabled: true, BypassOverlapRules: true},
		}

		resp, err := svc.UpdateUserSettings(context.Background(), 42, req)
		require.NoError(t, err)

		require.NotNil(t, resp.Override)
		assert.True(t, resp.Override.OverlapRules.BypassOverlapRules)
		assert.True(t, resp.Resolved.OverlapRules.BypassOverlapRules)
		// Незаданные группы наследуются из глобального уровня
		defaults := domain.DefaultGlobalSettings()
		assert.Equal(t, defaults.BookingRules.MaxDaysPerYear, resp.Resolved.BookingRules.MaxDaysPerYear)
	})

	t.Run("empty request removes override", func(t *testing.T) {
		repo := newFakeSettingsRepo()
		repo.overrides[42] = &domain.SettingsOverride{
			GapRules: &domain.GapRules{Enabled: false},
		}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.UpdateUserSettings(context.Background(), 42, &models.UpdateUserSettingsRequest{})
		require.NoError(t, err)

		assert.Nil(t, resp.Override)
		assert.NotContains(t, repo.overrides, int64(42))
	})

	t.Run("empty request without stored override is a no-op", func(t *testing.T) {
		svc := NewService(newFakeSettingsRepo(), nopLogger{})

		resp, err := svc.UpdateUserSettings(context.Background(), 42, &models.UpdateUserSettingsRequest{})
		require.NoError(t, err)
		assert.Nil(t, resp.Override)
	})

	t.Run("invalid override rejected", func(t *testing.T) {
		svc := NewService(newFakeSettingsRepo(), nopLogger{})

		req := &models.UpdateUserSettingsRequest{
			BookingRules: &models.BookingRulesPayload{
				MaxAdvanceBookingDays: models.DayLimitPayload{DayType: "lunar"},
				MinDaysNotice:         models.DayLimitPayload{DayType: "calendar"},
			},
		}

		_, err := svc.UpdateUserSettings(context.Background(), 42, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
