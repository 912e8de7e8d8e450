package vacations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VacationService/internal/domain"
	vacationRepo "github.com/m04kA/SMC-VacationService/internal/infra/storage/vacation"
	"github.com/m04kA/SMC-VacationService/internal/integrations/mailservice"
	"github.com/m04kA/SMC-VacationService/internal/service/vacations/models"
)

// Service сервис для работы с отпусками: чтение, отмена и переходы статуса.
// Создание отпуска с проверкой правил живет в usecase/create_vacation.
type Service struct {
	vacationRepo VacationRepository
	balanceRepo  BalanceRepository
	settingsRepo SettingsRepository
	mailClient   MailServiceClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса отпусков
func NewService(
	vacationRepo VacationRepository,
	balanceRepo BalanceRepository,
	settingsRepo SettingsRepository,
	mailClient MailServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		vacationRepo: vacationRepo,
		balanceRepo:  balanceRepo,
		settingsRepo: settingsRepo,
		mailClient:   mailClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает отпуск по ID.
// Пользователь видит только свои отпуска, администратор - любые.
func (s *Service) GetByID(ctx context.Context, id int64, requestingUserID int64, isAdmin bool) (*models.VacationResponse, error) {
	s.logger.Info("GetByID: fetching vacation id=%d for user=%d", id, requestingUserID)

	vacation, err := s.getVacation(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if vacation.UserID != requestingUserID && !isAdmin {
		s.logger.Warn("GetByID: access denied for user=%d to vacation id=%d", requestingUserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainVacation(vacation), nil
}

// GetUserVacations получает отпуска пользователя, опционально за год и по статусу
func (s *Service) GetUserVacations(ctx context.Context, req *models.GetUserVacationsRequest) (*models.VacationListResponse, error) {
	s.logger.Info("GetUserVacations: fetching vacations for user=%d, year=%v, status=%v",
		req.UserID, req.Year, req.Status)

	if req.UserID != req.RequestingUserID && !req.IsAdmin {
		s.logger.Warn("GetUserVacations: access denied for user=%d to vacations of user=%d",
			req.RequestingUserID, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.VacationStatus
	if req.Status != nil {
		status, err := models.ToDomainVacationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserVacations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	vacations, err := s.vacationRepo.GetByUserID(ctx, req.UserID, req.Year, domainStatus)
	if err != nil {
		s.logger.Error("GetUserVacations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserVacations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserVacations: successfully fetched %d vacations for user=%d", len(vacations), req.UserID)
	return models.FromDomainVacationList(vacations), nil
}

// GetBalance получает баланс отпускных дней пользователя за год.
// При первом обращении создает строку с годовым лимитом из настроек.
func (s *Service) GetBalance(ctx context.Context, userID int64, year int, requestingUserID int64, isAdmin bool) (*models.BalanceResponse, error) {
	if userID != requestingUserID && !isAdmin {
		s.logger.Warn("GetBalance: access denied for user=%d to balance of user=%d", requestingUserID, userID)
		return nil, ErrAccessDenied
	}

	settings, err := s.settingsRepo.GetResolved(ctx, userID)
	if err != nil {
		s.logger.Error("GetBalance: failed to resolve settings for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetBalance - resolve settings: %v", ErrInternal, err)
	}

	totalDays := settings.BookingRules.MaxDaysPerYear
	if totalDays <= 0 {
		totalDays = domain.DefaultMaxDaysPerYear
	}

	balance, err := s.balanceRepo.GetOrCreate(ctx, userID, year, totalDays)
	if err != nil {
		s.logger.Error("GetBalance: repository error for user=%d, year=%d: %v", userID, year, err)
		return nil, fmt.Errorf("%w: GetBalance - repository error: %v", ErrInternal, err)
	}

	// Лимит в строке баланса следует за актуальными настройками
	if balance.TotalDays != totalDays {
		if err := s.balanceRepo.SetTotal(ctx, userID, year, totalDays); err != nil {
			s.logger.Error("GetBalance: failed to sync balance total for user=%d, year=%d: %v", userID, year, err)
			return nil, fmt.Errorf("%w: GetBalance - sync balance total: %v", ErrInternal, err)
		}
		balance.TotalDays = totalDays
	}

	return models.FromDomainBalance(balance), nil
}

// Cancel отменяет отпуск (удаляет запись).
// Пользователь может отменить только свой отпуск, администратор - любой.
// Списанные дни возвращаются на баланс в той же транзакции.
func (s *Service) Cancel(ctx context.Context, vacationID int64, req *models.CancelVacationRequest) error {
	s.logger.Info("Cancel: cancelling vacation id=%d by user=%d", vacationID, req.RequestingUserID)

	vacation, err := s.getVacation(ctx, vacationID, "Cancel")
	if err != nil {
		return err
	}

	if vacation.UserID != req.RequestingUserID && !req.IsAdmin {
		s.logger.Warn("Cancel: access denied for user=%d to vacation id=%d", req.RequestingUserID, vacationID)
		return ErrAccessDenied
	}

	if !vacation.CanBeCancelled() {
		s.logger.Warn("Cancel: vacation id=%d cannot be cancelled, status=%s", vacationID, vacation.Status)
		return ErrCannotCancel
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.balanceRepo.Credit(txCtx, vacation.UserID, vacation.StartDate.Year(), vacation.TotalVacationDays); err != nil {
			return fmt.Errorf("%w: Cancel - credit balance: %v", ErrInternal, err)
		}
		if err := s.vacationRepo.Delete(txCtx, vacationID); err != nil {
			if errors.Is(err, vacationRepo.ErrVacationNotFound) {
				return ErrVacationNotFound
			}
			return fmt.Errorf("%w: Cancel - delete vacation: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Cancel: failed to cancel vacation id=%d: %v", vacationID, err)
		return err
	}

	s.notify(ctx, vacation, mailservice.TemplateVacationCancelled, nil)

	s.logger.Info("Cancel: successfully cancelled vacation id=%d, %d days returned to user=%d",
		vacationID, vacation.TotalVacationDays, vacation.UserID)
	return nil
}

// Approve утверждает заявку на отпуск (pending → approved)
func (s *Service) Approve(ctx context.Context, vacationID int64) error {
	s.logger.Info("Approve: approving vacation id=%d", vacationID)

	vacation, err := s.getVacation(ctx, vacationID, "Approve")
	if err != nil {
		return err
	}

	if vacation.Status != domain.StatusPending {
		s.logger.Warn("Approve: vacation id=%d is not pending, status=%s", vacationID, vacation.Status)
		return ErrInvalidStatusTransition
	}

	if err := s.vacationRepo.UpdateStatus(ctx, vacationID, domain.StatusApproved); err != nil {
		if errors.Is(err, vacationRepo.ErrVacationNotFound) {
			return ErrVacationNotFound
		}
		s.logger.Error("Approve: repository error for vacation id=%d: %v", vacationID, err)
		return fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
	}

	s.notify(ctx, vacation, mailservice.TemplateVacationApproved, nil)

	s.logger.Info("Approve: successfully approved vacation id=%d", vacationID)
	return nil
}

// Reject отклоняет заявку на отпуск: запись удаляется, дни возвращаются
// на баланс владельца в той же транзакции
func (s *Service) Reject(ctx context.Context, vacationID int64, req *models.RejectVacationRequest) error {
	s.logger.Info("Reject: rejecting vacation id=%d", vacationID)

	vacation, err := s.getVacation(ctx, vacationID, "Reject")
	if err != nil {
		return err
	}

	if vacation.Status != domain.StatusPending {
		s.logger.Warn("Reject: vacation id=%d is not pending, status=%s", vacationID, vacation.Status)
		return ErrInvalidStatusTransition
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.balanceRepo.Credit(txCtx, vacation.UserID, vacation.StartDate.Year(), vacation.TotalVacationDays); err != nil {
			return fmt.Errorf("%w: Reject - credit balance: %v", ErrInternal, err)
		}
		if err := s.vacationRepo.Delete(txCtx, vacationID); err != nil {
			if errors.Is(err, vacationRepo.ErrVacationNotFound) {
				return ErrVacationNotFound
			}
			return fmt.Errorf("%w: Reject - delete vacation: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Reject: failed to reject vacation id=%d: %v", vacationID, err)
		return err
	}

	s.notify(ctx, vacation, mailservice.TemplateVacationRejected, map[string]string{
		"reason": req.Reason,
	})

	s.logger.Info("Reject: successfully rejected vacation id=%d, %d days returned to user=%d",
		vacationID, vacation.TotalVacationDays, vacation.UserID)
	return nil
}

func (s *Service) getVacation(ctx context.Context, id int64, op string) (*domain.Vacation, error) {
	vacation, err := s.vacationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vacationRepo.ErrVacationNotFound) {
			s.logger.Warn("%s: vacation id=%d not found", op, id)
			return nil, ErrVacationNotFound
		}
		s.logger.Error("%s: repository error for vacation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return vacation, nil
}

// notify ставит уведомление в очередь почтового сервиса (best effort).
// Ошибки логируются, но не влияют на результат бизнес-операции.
func (s *Service) notify(ctx context.Context, vacation *domain.Vacation, template string, extra map[string]string) {
	if s.mailClient == nil {
		return
	}

	params := map[string]string{
		"userName":  vacation.UserName,
		"startDate": vacation.StartDate.Format(domain.DateFormat),
		"endDate":   vacation.EndDate.Format(domain.DateFormat),
	}
	for k, v := range extra {
		params[k] = v
	}

	msg := &mailservice.Message{
		ID:       uuid.NewString(),
		To:       vacation.UserEmail,
		Subject:  "Vacation update",
		Template: template,
		Params:   params,
	}

	if err := s.mailClient.EnqueueWithGracefulDegradation(ctx, msg); err != nil {
		s.logger.Warn("notify: failed to enqueue %s mail for vacation id=%d: %v", template, vacation.ID, err)
	}
}
