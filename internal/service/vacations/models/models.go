package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-VacationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid vacation status")
)

// Request модели

// GetUserVacationsRequest запрос на получение отпусков пользователя
type GetUserVacationsRequest struct {
	UserID           int64
	RequestingUserID int64
	IsAdmin          bool
	Year             *int
	Status           *string
}

// CancelVacationRequest запрос на отмену отпуска
type CancelVacationRequest struct {
	RequestingUserID int64
	IsAdmin          bool
}

// RejectVacationRequest запрос на отклонение заявки
type RejectVacationRequest struct {
	Reason string
}

// Response модели

// VacationResponse отпуск в ответе сервиса
type VacationResponse struct {
	ID                int64  `json:"id"`
	UserID            int64  `json:"userId"`
	UserEmail         string `json:"userEmail"`
	UserName          string `json:"userName"`
	UserColor         string `json:"userColor"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	Status            string `json:"status"`
	TotalVacationDays int    `json:"totalVacationDays"`
	GapDays           int    `json:"gapDays"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

// VacationListResponse список отпусков
type VacationListResponse struct {
	Vacations []VacationResponse `json:"vacations"`
	Total     int                `json:"total"`
}

// BalanceResponse баланс отпускных дней пользователя за год
type BalanceResponse struct {
	UserID        int64 `json:"userId"`
	Year          int   `json:"year"`
	TotalDays     int   `json:"totalDays"`
	UsedDays      int   `json:"usedDays"`
	RemainingDays int   `json:"remainingDays"`
}

// Converters

// FromDomainVacation конвертирует domain.Vacation в VacationResponse
func FromDomainVacation(v *domain.Vacation) *VacationResponse {
	return &VacationResponse{
		ID:                v.ID,
		UserID:            v.UserID,
		UserEmail:         v.UserEmail,
		UserName:          v.UserName,
		UserColor:         v.UserColor,
		StartDate:         v.StartDate.Format(domain.DateFormat),
		EndDate:           v.EndDate.Format(domain.DateFormat),
		Status:            string(v.Status),
		TotalVacationDays: v.TotalVacationDays,
		GapDays:           v.GapDays,
		CreatedAt:         v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         v.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainVacationList конвертирует слайс domain.Vacation в VacationListResponse
func FromDomainVacationList(vacations []*domain.Vacation) *VacationListResponse {
	out := make([]VacationResponse, 0, len(vacations))
	for _, v := range vacations {
		out = append(out, *FromDomainVacation(v))
	}
	return &VacationListResponse{Vacations: out, Total: len(out)}
}

// FromDomainBalance конвертирует domain.Balance в BalanceResponse
func FromDomainBalance(b *domain.Balance) *BalanceResponse {
	return &BalanceResponse{
		UserID:        b.UserID,
		Year:          b.Year,
		TotalDays:     b.TotalDays,
		UsedDays:      b.UsedDays,
		RemainingDays: b.Remaining(),
	}
}

// ToDomainVacationStatus валидирует и конвертирует статус из строки
func ToDomainVacationStatus(s string) (domain.VacationStatus, error) {
	switch domain.VacationStatus(s) {
	case domain.StatusPending, domain.StatusApproved:
		return domain.VacationStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
