package reply

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"lead_relay/pkg/contextx"
	"lead_relay/pkg/errcodes"
	"lead_relay/pkg/logx"
)

const HeaderSupportID = "X-Support-Id"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// publicError ошибка, текст которой можно отдать клиенту.
type publicError interface {
	error
	ErrorCode() failure.ErrorCode
	PublicMessage() string
}

//nolint:gochecknoglobals
var statusByCode = map[failure.ErrorCode]int{
	errcodes.OriginsNotConfigured: http.StatusInternalServerError,
	errcodes.RelayNotConfigured:   http.StatusInternalServerError,
	errcodes.Forbidden:            http.StatusForbidden,
	errcodes.MethodNotAllowed:     http.StatusMethodNotAllowed,
	errcodes.TooManyRequests:      http.StatusTooManyRequests,
	errcodes.InvalidFormTiming:    http.StatusBadRequest,
	errcodes.InvalidName:          http.StatusBadRequest,
	errcodes.InvalidPhoneNumber:   http.StatusBadRequest,
	errcodes.ValidationError:      http.StatusBadRequest,
	errcodes.RelayFailed:          http.StatusBadGateway,
}

func OK(ctx context.Context, w http.ResponseWriter) {
	Text(ctx, w, http.StatusOK, "OK")
}

// Status отвечает кодом без тела (preflight).
func Status(w http.ResponseWriter, statusCode int) {
	w.WriteHeader(statusCode)
}

func Text(ctx context.Context, w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	if _, err := io.WriteString(w, body); err != nil {
		logger(ctx).Error("io.WriteString", logx.Error(err))
	}
}

// Error пишет короткий публичный текст ошибки. Причина остаётся только в логе.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	statusCode, body := StatusAndMessage(err)

	level := slog.LevelInfo
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	logger(ctx).Log(ctx, level, "error", logx.Error(err), slog.Int(logx.FieldResponseStatus, statusCode))

	w.Header().Set(HeaderSupportID, supportID(ctx))
	Text(ctx, w, statusCode, body)
}

// StatusAndMessage сопоставляет ошибке HTTP-статус и текст ответа.
func StatusAndMessage(err error) (int, string) {
	var pub publicError
	if errors.As(err, &pub) {
		if statusCode, ok := statusByCode[pub.ErrorCode()]; ok {
			return statusCode, pub.PublicMessage()
		}

		return http.StatusInternalServerError, pub.PublicMessage()
	}

	switch {
	case failure.IsInvalidArgumentError(err):
		return http.StatusBadRequest, http.StatusText(http.StatusBadRequest)
	case failure.IsForbiddenError(err):
		return http.StatusForbidden, http.StatusText(http.StatusForbidden)
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
