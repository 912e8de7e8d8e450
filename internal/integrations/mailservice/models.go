package mailservice

// Message сообщение, отправляемое в очередь почтового сервиса
type Message struct {
	ID       string            `json:"id"`       // UUID, используется сервисом для дедупликации
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"` // Идентификатор шаблона письма
	Params   map[string]string `json:"params"`   // Подстановки шаблона
}

// Шаблоны писем, известные почтовому сервису
const (
	TemplateVacationRequested = "vacation_requested"
	TemplateVacationApproved  = "vacation_approved"
	TemplateVacationRejected  = "vacation_rejected"
	TemplateVacationCancelled = "vacation_cancelled"
)

// ErrorResponse модель ошибки от почтового сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
