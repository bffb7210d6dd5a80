package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const (
	msgNotFound        = "ресурс не найден"
	msgForbidden       = "доступ запрещен"
	msgTooManyRequests = "слишком много запросов, попробуйте позже"
	msgInternalError   = "внутренняя ошибка сервера"
)

var (
	// ErrEmptyBody возвращается при пустом теле запроса
	ErrEmptyBody = errors.New("handlers: empty request body")

	// ErrInvalidJSON возвращается при некорректном JSON в теле запроса
	ErrInvalidJSON = errors.New("handlers: invalid json body")
)

// DecodeJSON декодирует JSON тело запроса в dst. Лишние поля игнорируются.
func DecodeJSON(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return ErrInvalidJSON
	}
	if len(body) == 0 {
		return ErrEmptyBody
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return ErrInvalidJSON
	}
	return nil
}

// RespondJSON отправляет произвольный JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondSuccess отправляет 200 с ok=true, ID затронутого бронирования
// и человекочитаемым сообщением
func RespondSuccess(w http.ResponseWriter, id int64, message string) {
	RespondJSON(w, http.StatusOK, SuccessResponse{OK: true, ID: id, Message: message})
}

// RespondFieldErrors отправляет 400 с ошибками валидации по полям
func RespondFieldErrors(w http.ResponseWriter, fields map[string][]string) {
	RespondJSON(w, http.StatusBadRequest, FieldErrorsResponse{OK: false, Errors: fields})
}

// RespondError отправляет ошибку с указанным статусом и сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{OK: false, Message: message})
}

// RespondBadRequest отправляет 400 с сообщением об ошибке
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized отправляет 401 с сообщением об ошибке
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondNotFound отправляет 404 с сообщением об ошибке
func RespondNotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = msgNotFound
	}
	RespondError(w, http.StatusNotFound, message)
}

// RespondForbidden отправляет 403 с сообщением об ошибке
func RespondForbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = msgForbidden
	}
	RespondError(w, http.StatusForbidden, message)
}

// RespondConflict отправляет 409 с сообщением об ошибке
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondTooManyRequests отправляет 429 с сообщением об ошибке
func RespondTooManyRequests(w http.ResponseWriter) {
	RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
}

// RespondInternalError отправляет 500 с общим сообщением
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
