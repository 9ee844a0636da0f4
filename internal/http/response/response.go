// Package response содержит вспомогательные типы и функции для формирования
// JSON‑ответов HTTP‑обработчиков: сообщений, ошибок и ошибок валидации полей.
// Успешные ответы отдаются как есть, без обертки.
package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/videoclass/internal/lib/apperr"
	"github.com/magabrotheeeer/videoclass/internal/lib/sl"
)

const msgServerError = "Server error"

// MessageResponse тело ответа с одним сообщением. Используется и для ошибок.
type MessageResponse struct {
	Message string `json:"message" example:"Class not found"`
}

// FieldError нарушение правила валидации одного поля.
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"email must be a valid email address"`
}

// ValidationErrorResponse тело ответа с ошибками валидации.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// Message возвращает ответ с сообщением.
func Message(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

// Error возвращает ответ с текстом ошибки.
func Error(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

// ValidationError переводит ошибки валидатора в список ошибок по полям.
func ValidationError(errs validator.ValidationErrors) ValidationErrorResponse {
	out := make([]FieldError, 0, len(errs))
	for _, err := range errs {
		out = append(out, FieldError{Field: err.Field(), Message: fieldMessage(err)})
	}
	return ValidationErrorResponse{Errors: out}
}

func fieldMessage(err validator.FieldError) string {
	switch err.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "required_for_live":
		return fmt.Sprintf("%s is required for live classes", err.Field())
	default:
		return fmt.Sprintf("%s is not valid", err.Field())
	}
}

// StatusFor выбирает HTTP-статус по виду ошибки.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RenderError пишет ответ с ошибкой бизнес-слоя. Для внутренних ошибок
// клиент получает общее сообщение, подробности уходят в лог.
func RenderError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := StatusFor(err)
	msg, ok := apperr.Message(err)
	if status == http.StatusInternalServerError || !ok {
		log.Error("request failed", sl.Err(err))
		status, msg = http.StatusInternalServerError, msgServerError
	} else {
		log.Info("request rejected", slog.Int("status", status), sl.Err(err))
	}

	render.Status(r, status)
	render.JSON(w, r, Error(msg))
}

// RenderInvalid пишет 400 для тела запроса, не прошедшего декодирование или валидацию.
func RenderInvalid(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	render.Status(r, http.StatusBadRequest)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		log.Info("validation failed", sl.Err(err))
		render.JSON(w, r, ValidationError(verrs))
		return
	}
	log.Info("failed to decode request body", sl.Err(err))
	render.JSON(w, r, Error("Invalid request body"))
}

// ServerError пишет 500 с общим сообщением.
func ServerError(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, Error(msgServerError))
}
