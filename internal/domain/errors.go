package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"lead_relay/pkg/errcodes"
)

// Публичные ошибки конвейера заявок. Message уходит клиенту как есть,
// поэтому никаких внутренних подробностей в нём быть не должно.
var (
	ErrOriginsNotConfigured = NewError(errcodes.OriginsNotConfigured, "Missing ALLOWED_ORIGINS configuration")
	ErrOriginForbidden      = NewError(errcodes.Forbidden, "Forbidden")
	ErrMethodNotAllowed     = NewError(errcodes.MethodNotAllowed, "Method Not Allowed")
	ErrTooManyRequests      = NewError(errcodes.TooManyRequests, "Too Many Requests")
	ErrInvalidFormTiming    = NewError(errcodes.InvalidFormTiming, "Invalid form timing")
	ErrInvalidName          = NewError(errcodes.InvalidName, "Invalid name")
	ErrInvalidPhone         = NewError(errcodes.InvalidPhoneNumber, "Invalid phone")
	ErrRelayNotConfigured   = NewError(errcodes.RelayNotConfigured, "Missing Telegram configuration")
	ErrRelayFailed          = NewError(errcodes.RelayFailed, "Telegram error")
)

// AppError представляет доменную ошибку приложения.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap возвращает обёрнутую ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is сравнивает ошибки по коду, чтобы обёрнутая ошибка совпадала с sentinel.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// ErrorCode код для сопоставления со статусом ответа.
func (e *AppError) ErrorCode() failure.ErrorCode {
	return e.Code
}

// PublicMessage текст ответа клиенту.
func (e *AppError) PublicMessage() string {
	return e.Message
}

// Wrap прикрепляет причину к публичной ошибке, не меняя код и сообщение.
func (e *AppError) Wrap(cause error) *AppError {
	return WrapError(cause, e.Code, e.Message)
}

// NewError создаёт новую доменную ошибку.
func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError оборачивает существующую ошибку с доменным контекстом.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// GetCode извлекает код ошибки, если это AppError.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

// PublicMessage возвращает текст, который можно показать клиенту.
func PublicMessage(err error) (string, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message, true
	}
	return "", false
}
