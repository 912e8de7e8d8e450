package vacations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VacationService/internal/domain"
	vacationRepo "github.com/m04kA/SMC-VacationService/internal/infra/storage/vacation"
	"github.com/m04kA/SMC-VacationService/internal/service/vacations/models"
	"github.com/m04kA/SMC-VacationService/pkg/ptr"
)

type fakeVacationRepo struct {
	byID    map[int64]*domain.Vacation
	deleted []int64
	updated map[int64]domain.VacationStatus
}

func newFakeVacationRepo(vacations ...*domain.Vacation) *fakeVacationRepo {
	byID := make(map[int64]*domain.Vacation, len(vacations))
	for _, v := range vacations {
		byID[v.ID] = v
	}
	return &fakeVacationRepo{byID: byID, updated: make(map[int64]domain.VacationStatus)}
}

func (f *fakeVacationRepo) GetByID(_ context.Context, id int64) (*domain.Vacation, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, vacationRepo.ErrVacationNotFound
	}
	return v, nil
}

func (f *fakeVacationRepo) GetByUserID(_ context.Context, userID int64, _ *int, status *domain.VacationStatus) ([]*domain.Vacation, error) {
	var out []*domain.Vacation
	for _, v := range f.byID {
		if v.UserID != userID {
			continue
		}
		if status != nil && v.Status != *status {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVacationRepo) GetWithFilter(_ context.Context, _ domain.VacationsFilter) ([]*domain.Vacation, error) {
	return nil, nil
}

func (f *fakeVacationRepo) UpdateStatus(_ context.Context, id int64, status domain.VacationStatus) error {
	if _, ok := f.byID[id]; !ok {
		return vacationRepo.ErrVacationNotFound
	}
	f.updated[id] = status
	return nil
}

func (f *fakeVacationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return vacationRepo.ErrVacationNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBalanceRepo struct {
	stored   *domain.Balance
	credited map[int64]int
	setTotal *int
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{credited: make(map[int64]int)}
}

func (f *fakeBalanceRepo) GetOrCreate(_ context.Context, userID int64, year int, defaultTotalDays int) (*domain.Balance, error) {
	if f.stored == nil {
		f.stored = &domain.Balance{UserID: userID, Year: year, TotalDays: defaultTotalDays, UsedDays: 5}
	}
	return f.stored, nil
}

func (f *fakeBalanceRepo) SetTotal(_ context.Context, _ int64, _ int, totalDays int) error {
	f.setTotal = &totalDays
	f.stored.TotalDays = totalDays
	return nil
}

func (f *fakeBalanceRepo) Credit(_ context.Context, userID int64, _ int, days int) error {
	f.credited[userID] += days
	return nil
}

type fakeSettingsRepo struct {
	settings domain.Settings
}

func (f *fakeSettingsRepo) GetResolved(_ context.Context, _ int64) (domain.Settings, error) {
	return f.settings, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testVacation(id, userID int64, status domain.VacationStatus) *domain.Vacation {
	return &domain.Vacation{
		ID:                id,
		UserID:            userID,
		UserEmail:         "ivan@example.com",
		UserName:          "Ivan Petrov",
		StartDate:         day(2026, time.June, 8),
		EndDate:           day(2026, time.June, 12),
		Status:            status,
		TotalVacationDays: 5,
		GapDays:           domain.DefaultGapDays,
	}
}

func newTestService(vacations *fakeVacationRepo, balances *fakeBalanceRepo) *Service {
	return NewService(
		vacations,
		balances,
		&fakeSettingsRepo{settings: domain.DefaultGlobalSettings()},
		nil,
		&fakeTxManager{},
		nopLogger{},
	)
}

func TestGetByID(t *testing.T) {
	repo := newFakeVacationRepo(testVacation(1, 42, domain.StatusPending))
	svc := newTestService(repo, newFakeBalanceRepo())

	t.Run("owner can read", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 42, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "2026-06-08", resp.StartDate)
	})

	t.Run("admin can read foreign vacation", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 99, true)
		assert.NoError(t, err)
	})

	t.Run("foreign user denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 99, false)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 777, 42, false)
		assert.ErrorIs(t, err, ErrVacationNotFound)
	})
}

func TestGetUserVacations(t *testing.T) {
	repo := newFakeVacationRepo(
		testVacation(1, 42, domain.StatusPending),
		testVacation(2, 42, domain.StatusApproved),
		testVacation(3, 7, domain.StatusApproved),
	)
	svc := newTestService(repo, newFakeBalanceRepo())

	t.Run("all own vacations", func(t *testing.T) {
		resp, err := svc.GetUserVacations(context.Background(), &models.GetUserVacationsRequest{
			UserID:           42,
			RequestingUserID: 42,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("filter by status", func(t *testing.T) {
		resp, err := svc.GetUserVacations(context.Background(), &models.GetUserVacationsRequest{
			UserID:           42,
			RequestingUserID: 42,
			Status:           ptr.Ptr("approved"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.GetUserVacations(context.Background(), &models.GetUserVacationsRequest{
			UserID:           42,
			RequestingUserID: 42,
			Status:           ptr.Ptr("rejected"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("foreign user denied", func(t *testing.T) {
		_, err := svc.GetUserVacations(context.Background(), &models.GetUserVacationsRequest{
			UserID:           42,
			RequestingUserID: 7,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetBalance(t *testing.T) {
	svc := newTestService(newFakeVacationRepo(), newFakeBalanceRepo())

	resp, err := svc.GetBalance(context.Background(), 42, 2026, 42, false)
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.UserID)
	assert.Equal(t, 2026, resp.Year)
	assert.Equal(t, domain.DefaultGlobalSettings().BookingRules.MaxDaysPerYear, resp.TotalDays)
	assert.Equal(t, resp.TotalDays-resp.UsedDays, resp.RemainingDays)

	_, err = svc.GetBalance(context.Background(), 42, 2026, 7, false)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetBalance_SyncsTotalWithSettings(t *testing.T) {
	// Годовой лимит в настройках изменился после создания строки баланса
	balances := newFakeBalanceRepo()
	balances.stored = &domain.Balance{UserID: 42, Year: 2026, TotalDays: 20, UsedDays: 5}
	svc := newTestService(newFakeVacationRepo(), balances)

	resp, err := svc.GetBalance(context.Background(), 42, 2026, 42, false)
	require.NoError(t, err)

	require.NotNil(t, balances.setTotal)
	assert.Equal(t, domain.DefaultGlobalSettings().BookingRules.MaxDaysPerYear, *balances.setTotal)
	assert.Equal(t, domain.DefaultGlobalSettings().BookingRules.MaxDaysPerYear, resp.TotalDays)
	assert.Equal(t, resp.TotalDays-5, resp.RemainingDays)
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels, days credited back", func(t *testing.T) {
		repo := newFakeVacationRepo(testVacation(1, 42, domain.StatusApproved))
		balances := newFakeBalanceRepo()
		svc := newTestService(repo, balances)

		err := svc.Cancel(context.Background(), 1, &models.CancelVacationRequest{RequestingUserID: 42})
		require.NoError(t, err)

		assert.Equal(t, []int64{1}, repo.deleted)
		assert.Equal(t, 5, balances.credited[42])
	})

	t.Run("admin cancels foreign vacation", func(t *testing.T) {
		repo := newFakeVacationRepo(testVacation(1, 42, domain.StatusPending))
		svc := newTestService(repo, newFakeBalanceRepo())

		err := svc.Cancel(context.Background(), 1, &models.CancelVacationRequest{RequestingUserID: 99, IsAdmin: true})
		assert.NoError(t, err)
	})

	t.Run("foreign user denied", func(t *testing.T) {
		repo := newFakeVacationRepo(testVacation(1, 42, domain.StatusPending))
		balances := newFakeBalanceRepo()
		svc := newTestService(repo, balances)

		err := svc.Cancel(context.Background(), 1, &models.CancelVacationRequest{RequestingUserID: 99})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, repo.deleted)
		assert.Empty(t, balances.credited)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(newFakeVacationRepo(), newFakeBalanceRepo())
		err := svc.Cancel(context.Background(), 1, &models.CancelVacationRequest{RequestingUserID: 42})
		assert.ErrorIs(t, err, ErrVacationNotFound)
	})
}

func TestApprove(t *testing.T) {
	t.Run("pending becomes approved", func(t *testing.T) {
		repo := newFakeVacationRepo(testVacation(1, 42, domain.StatusPending))
		svc := newTestService(repo, newFakeBalanceRepo())

		err := svc.Approve(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, repo.updated[1])
	})

	t.Run("already approved", func(t *testing.T) {
		repo := newFakeVacationRepo(testVacation(1, 42, domain.StatusApproved))
		svc := newTestService(repo, newFakeBalanceRepo())

		err := svc.Approve(context.Background(), 1)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(newFakeVacationRepo(), newFakeBalanceRepo())
		err := svc.Approve(context.Background(), 1)
		assert.ErrorIs(t, err, ErrVacationNotFound)
	})
}

func TestReject(t *testing.T) {
	t.Run("pending is deleted and credited", func(t *testing.T) {
		repo := newFakeVacationRepo(testVacation(1, 42, domain.StatusPending))
		balances := newFakeBalanceRepo()
		svc := newTestService(repo, balances)

		err := svc.Reject(context.Background(), 1, &models.RejectVacationRequest{Reason: "team capacity"})
		require.NoError(t, err)

		assert.Equal(t, []int64{1}, repo.deleted)
		assert.Equal(t, 5, balances.credited[42])
	})

	t.Run("approved cannot be rejected", func(t *testing.T) {
		repo := newFakeVacationRepo(testVacation(1, 42, domain.StatusApproved))
		balances := newFakeBalanceRepo()
		svc := newTestService(repo, balances)

		err := svc.Reject(context.Background(), 1, &models.RejectVacationRequest{})
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
		assert.Empty(t, repo.deleted)
		assert.Empty(t, balances.credited)
	})
}
