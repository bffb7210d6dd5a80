package create_booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/WingorOsnova/BarbershopPP/internal/api/handlers/create_booking"
	createBooking "github.com/WingorOsnova/BarbershopPP/internal/usecase/create_booking"
)

// ---------- Mocks ----------

type mockUseCase struct {
	resp    *createBooking.Response
	err     error
	lastReq *createBooking.Request
}

func (m *mockUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ---------- Helpers ----------

const validBody = `{
	"client_name": "Іван",
	"client_phone": "0501234567",
	"barber": 1,
	"service": 2,
	"booking_date": "2026-03-20",
	"booking_time": "10:00"
}`

func doRequest(t *testing.T, uc *mockUseCase, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	h := handler.NewHandler(uc, nil, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/book", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	return rec, fields
}

// ---------- Tests ----------

func TestHandle_Success(t *testing.T) {
	uc := &mockUseCase{resp: &createBooking.Response{ID: 42, BarberID: 1}}

	rec, fields := doRequest(t, uc, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", string(fields["ok"]))
	assert.Equal(t, "42", string(fields["id"]))
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, "0501234567", uc.lastReq.ClientPhone)
	assert.Nil(t, uc.lastReq.UserID, "no auth header means guest booking")
}

func TestHandle_EmptyBody(t *testing.T) {
	rec, fields := doRequest(t, &mockUseCase{}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "false", string(fields["ok"]))
}

func TestHandle_ValidationErrorsByField(t *testing.T) {
	verr := &createBooking.ValidationError{
		Fields: map[string][]string{
			"client_name":  {"Введите ваше имя, чтобы мы смогли подтвердить запись."},
			"booking_date": {"Нельзя записаться на прошедшую дату."},
		},
	}
	uc := &mockUseCase{err: verr}

	rec, fields := doRequest(t, uc, validBody)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "false", string(fields["ok"]))

	var errsByField map[string][]string
	require.NoError(t, json.Unmarshal(fields["errors"], &errsByField))
	assert.Contains(t, errsByField, "client_name")
	assert.Contains(t, errsByField, "booking_date")
}

func TestHandle_SpamLooksLikeGenericBadRequest(t *testing.T) {
	uc := &mockUseCase{err: createBooking.ErrSpamRejected}

	rec, fields := doRequest(t, uc, validBody)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "false", string(fields["ok"]))
	// Причина отказа наружу не уходит
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "spam")
	assert.NotContains(t, rec.Body.String(), "honeypot")
}

func TestHandle_SlotTakenConflict(t *testing.T) {
	uc := &mockUseCase{err: createBooking.ErrSlotTaken}

	rec, _ := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_DuplicateBookingConflict(t *testing.T) {
	uc := &mockUseCase{err: createBooking.ErrDuplicateBooking}

	rec, _ := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_BarberNotFound(t *testing.T) {
	uc := &mockUseCase{err: createBooking.ErrBarberNotFound}

	rec, _ := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	uc := &mockUseCase{err: createBooking.ErrInternal}

	rec, _ := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandle_HoneypotPassedThrough(t *testing.T) {
	uc := &mockUseCase{resp: &createBooking.Response{ID: 1}}

	body := strings.Replace(validBody, `"client_name": "Іван",`,
		`"client_name": "Іван", "website": "http://spam.example",`, 1)
	doRequest(t, uc, body)

	require.NotNil(t, uc.lastReq)
	assert.Equal(t, "http://spam.example", uc.lastReq.Honeypot)
}
