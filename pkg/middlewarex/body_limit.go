package middlewarex

import (
	"bytes"
	"io"
	"net/http"

	"lead_relay/pkg/logx"
)

// BodyLimit держит в памяти не больше limit+1 байт тела. Лишнее не читается
// вовсе, а обработчик по длине видит, что предел превышен.
func BodyLimit(limit int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
			if err != nil {
				logger(r.Context()).Warn("io.ReadAll", logx.Error(err))
			}

			_ = r.Body.Close()

			r.Body = io.NopCloser(bytes.NewReader(body))
			r.ContentLength = int64(len(body))

			next.ServeHTTP(w, r)
		})
	}
}
