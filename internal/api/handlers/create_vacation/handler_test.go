package create_vacation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VacationService/internal/api/middleware"
	"github.com/m04kA/SMC-VacationService/internal/rules"
	createVacation "github.com/m04kA/SMC-VacationService/internal/usecase/create_vacation"
)

type fakeUseCase struct {
	gotReq *createVacation.Request
	resp   *createVacation.Response
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createVacation.Request) (*createVacation.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"userEmail": "ivan@example.com",
	"userName": "Ivan Petrov",
	"userColor": "#3366FF",
	"startDate": "2026-06-08",
	"endDate": "2026-06-12"
}`

// serve прогоняет запрос через Auth middleware и обработчик,
// как это происходит в настоящем роутере
func serve(t *testing.T, uc *fakeUseCase, userID string, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vacations", strings.NewReader(body))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{
		resp: &createVacation.Response{
			ID:                1,
			UserID:            42,
			StartDate:         "2026-06-08",
			EndDate:           "2026-06-12",
			Status:            "pending",
			TotalVacationDays: 5,
			GapDays:           7,
			RemainingDays:     23,
		},
	}

	rec := serve(t, uc, "42", validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(42), uc.gotReq.UserID)
	assert.Equal(t, "ivan@example.com", uc.gotReq.UserEmail)

	var resp createVacation.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, 23, resp.RemainingDays)
}

func TestHandle_MissingUser(t *testing.T) {
	rec := serve(t, &fakeUseCase{}, "", validBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "broken json",
			body: `{"userEmail":`,
		},
		{
			name: "empty body",
			body: "",
		},
		{
			name: "unknown field",
			body: `{"userEmail": "a@b.com", "surprise": true}`,
		},
		{
			name: "bad date format",
			body: `{"userEmail": "a@b.com", "userName": "A", "startDate": "08.06.2026", "endDate": "12.06.2026"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(t, uc, "42", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.gotReq)
		})
	}
}

func TestHandle_RuleViolation(t *testing.T) {
	uc := &fakeUseCase{
		err: &createVacation.RuleViolationError{
			Violation: rules.Violation{
				Kind:    rules.KindBlackoutPeriod,
				Message: "booking falls into blackout period",
				Details: map[string]string{"name": "Year-end freeze"},
			},
		},
	}

	rec := serve(t, uc, "42", validBody)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ViolationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(rules.KindBlackoutPeriod), resp.Violation.Kind)
	assert.Equal(t, "Year-end freeze", resp.Violation.Details["name"])
	assert.NotEmpty(t, resp.Error)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "insufficient balance",
			err:  createVacation.ErrInsufficientBalance,
			code: http.StatusConflict,
		},
		{
			name: "invalid input",
			err:  createVacation.ErrInvalidInput,
			code: http.StatusBadRequest,
		},
		{
			name: "internal error",
			err:  createVacation.ErrInternal,
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.err}, "42", validBody)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
