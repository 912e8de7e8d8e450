package create_vacation

import (
	"time"

	"github.com/m04kA/SMC-VacationService/internal/domain"
)

// Request запрос на создание отпуска
type Request struct {
	UserID    int64
	UserEmail string
	UserName  string
	UserColor string
	StartDate time.Time
	EndDate   time.Time
}

// Response созданный отпуск
type Response struct {
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
	RemainingDays     int    `json:"remainingDays"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

func toResponse(v *domain.Vacation, remainingDays int) *Response {
	return &Response{
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
		RemainingDays:     remainingDays,
		CreatedAt:         v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         v.UpdatedAt.Format(time.RFC3339),
	}
}
