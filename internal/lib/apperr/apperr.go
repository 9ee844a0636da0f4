// Package apperr описывает таксономию ошибок бизнес-слоя.
//
// Сервисы возвращают *Error с одним из видов (Kind) ниже, HTTP-слой по виду
// выбирает статус ответа. Любая другая ошибка считается внутренней (500).
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation некорректные входные данные.
	ErrValidation = errors.New("validation error")
	// ErrConflict дубликат email или уже существующий администратор.
	ErrConflict = errors.New("conflict")
	// ErrAuth неверные учетные данные, невалидный или просроченный токен.
	ErrAuth = errors.New("unauthorized")
	// ErrForbidden роль не позволяет выполнить операцию.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound запрошенный ресурс не существует.
	ErrNotFound = errors.New("not found")
)

// Error ошибка с видом из таксономии и сообщением для клиента.
type Error struct {
	Kind    error  // Один из Err* выше
	Message string // Человекочитаемое сообщение, уходит в тело ответа
	Cause   error  // Исходная ошибка (опционально)
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is позволяет проверять вид через errors.Is(err, apperr.ErrNotFound).
func (e *Error) Is(target error) bool { return e.Kind == target }

func (e *Error) Unwrap() error { return e.Cause }

// Validation создает ошибку валидации.
func Validation(msg string) *Error { return &Error{Kind: ErrValidation, Message: msg} }

// Conflict создает ошибку конфликта.
func Conflict(msg string) *Error { return &Error{Kind: ErrConflict, Message: msg} }

// Auth создает ошибку аутентификации.
func Auth(msg string) *Error { return &Error{Kind: ErrAuth, Message: msg} }

// Forbidden создает ошибку доступа.
func Forbidden(msg string) *Error { return &Error{Kind: ErrForbidden, Message: msg} }

// NotFound создает ошибку отсутствия ресурса.
func NotFound(msg string) *Error { return &Error{Kind: ErrNotFound, Message: msg} }

// Wrap добавляет к ошибке исходную причину.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Cause: cause}
}

// Message возвращает сообщение для клиента, если err *Error.
func Message(err error) (string, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message, true
	}
	return "", false
}
