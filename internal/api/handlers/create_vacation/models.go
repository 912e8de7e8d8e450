package create_vacation

import (
	"time"

	"github.com/m04kA/SMC-VacationService/internal/domain"
	"github.com/m04kA/SMC-VacationService/internal/rules"
	createVacation "github.com/m04kA/SMC-VacationService/internal/usecase/create_vacation"
)

// CreateVacationRequest HTTP request model
type CreateVacationRequest struct {
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	UserColor string `json:"userColor,omitempty"`
	StartDate string `json:"startDate"` // "2026-07-01"
	EndDate   string `json:"endDate"`   // "2026-07-14"
}

// ViolationPayload нарушение правила в HTTP-ответе
type ViolationPayload struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ViolationResponse ответ при отклонении заявки конвейером проверок
type ViolationResponse struct {
	Error     string           `json:"error"`
	Violation ViolationPayload `json:"violation"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateVacationRequest) ToUseCaseRequest(userID int64) (*createVacation.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createVacation.Request{
		UserID:    userID,
		UserEmail: r.UserEmail,
		UserName:  r.UserName,
		UserColor: r.UserColor,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromViolation конвертирует нарушение правила в HTTP-ответ
func FromViolation(v rules.Violation, message string) *ViolationResponse {
	return &ViolationResponse{
		Error: message,
		Violation: ViolationPayload{
			Kind:    string(v.Kind),
			Message: v.Message,
			Details: v.Details,
		},
	}
}
