package mailservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с очередью почтового сервиса
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента почтового сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enqueue ставит сообщение в очередь отправки
func (c *Client) Enqueue(ctx context.Context, msg *Message) error {
	url := fmt.Sprintf("%s/internal/mail/queue", c.baseURL)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusAccepted, http.StatusOK:
		return nil
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: message id=%s", ErrQueueRejected, msg.ID)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// EnqueueWithGracefulDegradation ставит сообщение в очередь с graceful degradation.
// При недоступности почтового сервиса возвращает ErrServiceDegraded:
// вызывающий слой логирует и продолжает, не откатывая бизнес-операцию.
func (c *Client) EnqueueWithGracefulDegradation(ctx context.Context, msg *Message) error {
	c.log.Info("Enqueueing mail message id=%s, template=%s, to=%s", msg.ID, msg.Template, msg.To)

	if err := c.Enqueue(ctx, msg); err != nil {
		// Отклонение сообщения очередью - бизнес-ошибка, пробрасываем как есть
		if errors.Is(err, ErrQueueRejected) {
			return err
		}

		// Для остальных ошибок (недоступность сервиса, timeout и т.д.)
		// применяем graceful degradation
		c.log.Error("MailService unavailable, applying graceful degradation for message id=%s: %v", msg.ID, err)
		return fmt.Errorf("%w: message id=%s, error=%v", ErrServiceDegraded, msg.ID, err)
	}

	c.log.Info("Successfully enqueued mail message id=%s", msg.ID)
	return nil
}
