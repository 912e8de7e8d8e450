package mailservice

import "errors"

var (
	// ErrQueueRejected возвращается, когда почтовый сервис отклонил сообщение
	ErrQueueRejected = errors.New("mailservice client: message rejected by queue")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("mailservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Указывает, что почтовый сервис недоступен; уведомление потеряно,
	// но бизнес-операция должна завершиться успешно.
	ErrServiceDegraded = errors.New("mailservice unavailable: graceful degradation applied")
)
