package reply_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"lead_relay/pkg/contextx"
	"lead_relay/pkg/errcodes"
	"lead_relay/pkg/httpx/reply"
)

type testError struct {
	code failure.ErrorCode
	msg  string
}

func (e testError) Error() string                { return e.msg + ": internal detail" }
func (e testError) ErrorCode() failure.ErrorCode { return e.code }
func (e testError) PublicMessage() string        { return e.msg }

func TestError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		err        error
		statusCode int
		body       string
	}{
		{
			name:       "forbidden",
			err:        testError{code: errcodes.Forbidden, msg: "Forbidden"},
			statusCode: http.StatusForbidden,
			body:       "Forbidden",
		},
		{
			name:       "wrapped too many requests",
			err:        fmt.Errorf("limiter: %w", testError{code: errcodes.TooManyRequests, msg: "Too Many Requests"}),
			statusCode: http.StatusTooManyRequests,
			body:       "Too Many Requests",
		},
		{
			name:       "invalid phone",
			err:        testError{code: errcodes.InvalidPhoneNumber, msg: "Invalid phone"},
			statusCode: http.StatusBadRequest,
			body:       "Invalid phone",
		},
		{
			name:       "relay failed",
			err:        testError{code: errcodes.RelayFailed, msg: "Telegram error"},
			statusCode: http.StatusBadGateway,
			body:       "Telegram error",
		},
		{
			name:       "missing configuration",
			err:        testError{code: errcodes.OriginsNotConfigured, msg: "Missing ALLOWED_ORIGINS configuration"},
			statusCode: http.StatusInternalServerError,
			body:       "Missing ALLOWED_ORIGINS configuration",
		},
		{
			name:       "unknown code",
			err:        testError{code: "Unknown", msg: "Oops"},
			statusCode: http.StatusInternalServerError,
			body:       "Oops",
		},
		{
			name:       "invalid argument",
			err:        failure.NewInvalidArgumentError("bad json", failure.WithCode(errcodes.ValidationError)),
			statusCode: http.StatusBadRequest,
			body:       "Bad Request",
		},
		{
			name:       "plain error",
			err:        errors.New("secret connection string"),
			statusCode: http.StatusInternalServerError,
			body:       "Internal Server Error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rq := require.New(t)

			ctx := contextx.WithTraceID(context.Background(), "trace-1")
			w := httptest.NewRecorder()

			reply.Error(ctx, w, tc.err)

			rq.Equal(tc.statusCode, w.Code)
			rq.Equal(tc.body, w.Body.String())
			rq.Equal("text/plain; charset=utf-8", w.Header().Get("Content-Type"))
			rq.Equal("trace-1", w.Header().Get(reply.HeaderSupportID))
		})
	}
}

func TestOKAndStatus(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	w := httptest.NewRecorder()
	reply.OK(context.Background(), w)
	rq.Equal(http.StatusOK, w.Code)
	rq.Equal("OK", w.Body.String())

	w = httptest.NewRecorder()
	reply.Status(w, http.StatusForbidden)
	rq.Equal(http.StatusForbidden, w.Code)
	rq.Empty(w.Body.String())
}
