package create_vacation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VacationService/internal/domain"
	balanceRepo "github.com/m04kA/SMC-VacationService/internal/infra/storage/balance"
	"github.com/m04kA/SMC-VacationService/internal/integrations/mailservice"
	"github.com/m04kA/SMC-VacationService/internal/rules"
	"github.com/m04kA/SMC-VacationService/pkg/ptr"
)

// UseCase use case для создания заявки на отпуск
type UseCase struct {
	vacationRepo VacationRepository
	settingsRepo SettingsRepository
	balanceRepo  BalanceRepository
	mailClient   MailServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	vacationRepo VacationRepository,
	settingsRepo SettingsRepository,
	balanceRepo BalanceRepository,
	mailClient MailServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		vacationRepo: vacationRepo,
		settingsRepo: settingsRepo,
		balanceRepo:  balanceRepo,
		mailClient:   mailClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания отпуска.
// Использует сериализуемую транзакцию: снимок существующих отпусков
// читается с блокировкой, поэтому две конкурентные заявки не могут
// обе пройти проверку лимита одновременных отпусков.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateVacation: user=%d, start=%s, end=%s",
		req.UserID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateVacation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	startDate := domain.DateOnly(req.StartDate)
	endDate := domain.DateOnly(req.EndDate)
	year := startDate.Year()

	var result *domain.Vacation
	var remainingDays int

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем настройки пользователя с учетом иерархии
		settings, err := uc.settingsRepo.GetResolved(txCtx, req.UserID)
		if err != nil {
			uc.logger.Error("CreateVacation: failed to resolve settings for user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
		}

		// 3.2. Снимок записей для проверок, с блокировкой (FOR UPDATE).
		// Период расширен на окно промежутка, чтобы снимок покрывал gap-проверку,
		// в том числе через границу календарного года. Фильтр по году здесь не
		// используется: он бы отрезал отпуск прошлого года, чье окно промежутка
		// накрывает начало заявки.
		snapshotStart := startDate.AddDate(0, 0, -domain.DefaultGapDays)
		snapshotEnd := endDate.AddDate(0, 0, domain.DefaultGapDays)

		overlapping, err := uc.vacationRepo.GetWithFilter(txCtx, domain.VacationsFilter{
			StartDate: ptr.Ptr(snapshotStart),
			EndDate:   ptr.Ptr(snapshotEnd),
		})
		if err != nil {
			uc.logger.Error("CreateVacation: failed to get overlapping vacations: %v", err)
			return fmt.Errorf("%w: failed to get overlapping vacations: %v", ErrInternal, err)
		}

		// Годовой лимит считается по всем записям пользователя за календарный
		// год, а не только по пересекающимся с периодом заявки
		yearRecords, err := uc.vacationRepo.GetWithFilter(txCtx, domain.VacationsFilter{
			UserID: ptr.Ptr(req.UserID),
			Year:   ptr.Ptr(year),
		})
		if err != nil {
			uc.logger.Error("CreateVacation: failed to get user vacations for year %d: %v", year, err)
			return fmt.Errorf("%w: failed to get user vacations for year: %v", ErrInternal, err)
		}

		existing := mergeSnapshots(overlapping, yearRecords)

		// 3.3. Прогоняем конвейер проверок
		input := rules.Input{
			UserID:    req.UserID,
			UserEmail: req.UserEmail,
			StartDate: startDate,
			EndDate:   endDate,
		}

		verdict, err := rules.Validate(input, existing, settings, now)
		if err != nil {
			uc.logger.Warn("CreateVacation: rules engine rejected input: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !verdict.Valid {
			uc.logger.Warn("CreateVacation: rule violation %s for user=%d", verdict.Violation.Kind, req.UserID)
			return &RuleViolationError{Violation: *verdict.Violation}
		}

		// 3.4. Считаем рабочие дни и окно промежутка
		workingDays, err := rules.WorkingDays(startDate, endDate)
		if err != nil {
			return fmt.Errorf("%w: failed to count working days: %v", ErrInternal, err)
		}
		gapDays := domain.GapDaysForBooking(workingDays)

		// 3.5. Создаем отпуск
		vacation := &domain.Vacation{
			UserID:            req.UserID,
			UserEmail:         req.UserEmail,
			UserName:          req.UserName,
			UserColor:         req.UserColor,
			StartDate:         startDate,
			EndDate:           endDate,
			Status:            domain.StatusPending,
			TotalVacationDays: workingDays,
			GapDays:           gapDays,
		}

		created, err := uc.vacationRepo.Create(txCtx, vacation)
		if err != nil {
			uc.logger.Error("CreateVacation: failed to create vacation: %v", err)
			return fmt.Errorf("%w: failed to create vacation: %v", ErrInternal, err)
		}

		// 3.6. Списываем дни с баланса в той же транзакции
		totalDays := settings.BookingRules.MaxDaysPerYear
		if totalDays <= 0 {
			totalDays = domain.DefaultMaxDaysPerYear
		}
		balance, err := uc.balanceRepo.GetOrCreate(txCtx, req.UserID, year, totalDays)
		if err != nil {
			uc.logger.Error("CreateVacation: failed to get balance for user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to get balance: %v", ErrInternal, err)
		}

		// Лимит в строке баланса следует за актуальными настройками,
		// а не остается замороженным на момент создания строки
		if balance.TotalDays != totalDays {
			if err := uc.balanceRepo.SetTotal(txCtx, req.UserID, year, totalDays); err != nil {
				uc.logger.Error("CreateVacation: failed to sync balance total for user=%d: %v", req.UserID, err)
				return fmt.Errorf("%w: failed to sync balance total: %v", ErrInternal, err)
			}
			balance.TotalDays = totalDays
		}

		if err := uc.balanceRepo.Debit(txCtx, req.UserID, year, workingDays); err != nil {
			if errors.Is(err, balanceRepo.ErrInsufficientBalance) {
				uc.logger.Warn("CreateVacation: insufficient balance for user=%d: need %d, have %d",
					req.UserID, workingDays, balance.Remaining())
				return fmt.Errorf("%w: need %d days, %d remaining", ErrInsufficientBalance, workingDays, balance.Remaining())
			}
			uc.logger.Error("CreateVacation: failed to debit balance for user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to debit balance: %v", ErrInternal, err)
		}

		result = created
		remainingDays = balance.Remaining() - workingDays
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateVacation: successfully created vacation id=%d for user=%d, %d working days",
		result.ID, result.UserID, result.TotalVacationDays)

	// 4. Уведомление после коммита, best effort
	uc.notifyRequested(ctx, result)

	return toResponse(result, remainingDays), nil
}

// mergeSnapshots объединяет выборки записей, убирая дубликаты по ID.
// Порядок стабильный: сначала первая выборка, затем новые записи из второй.
func mergeSnapshots(first, second []*domain.Vacation) []*domain.Vacation {
	merged := make([]*domain.Vacation, 0, len(first)+len(second))
	seen := make(map[int64]struct{}, len(first))

	for _, v := range first {
		merged = append(merged, v)
		seen[v.ID] = struct{}{}
	}
	for _, v := range second {
		if _, ok := seen[v.ID]; ok {
			continue
		}
		merged = append(merged, v)
		seen[v.ID] = struct{}{}
	}

	return merged
}

// notifyRequested ставит в очередь письмо о новой заявке.
// Ошибки логируются и не влияют на результат.
func (uc *UseCase) notifyRequested(ctx context.Context, vacation *domain.Vacation) {
	if uc.mailClient == nil {
		return
	}

	msg := &mailservice.Message{
		ID:       uuid.NewString(),
		To:       vacation.UserEmail,
		Subject:  "Vacation request submitted",
		Template: mailservice.TemplateVacationRequested,
		Params: map[string]string{
			"userName":  vacation.UserName,
			"startDate": vacation.StartDate.Format(domain.DateFormat),
			"endDate":   vacation.EndDate.Format(domain.DateFormat),
		},
	}

	if err := uc.mailClient.EnqueueWithGracefulDegradation(ctx, msg); err != nil {
		uc.logger.Warn("CreateVacation: failed to enqueue notification for vacation id=%d: %v", vacation.ID, err)
	}
}
