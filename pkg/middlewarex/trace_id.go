package middlewarex

import (
	"net/http"

	"lead_relay/pkg/contextx"
)

const (
	headerNameTraceID = "X-Trace-Id"
	maxTraceIDLen     = 64
)

// TraceID берёт id трассировки из заголовка или создаёт новый. Чужой id
// принимается, только если он короткий и из безопасных символов: он попадает
// в логи и заголовки ответа.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := contextx.TraceID(r.Header.Get(headerNameTraceID))

		if !validTraceID(traceID) {
			traceID = contextx.NewTraceID()
		}

		ctx := contextx.WithTraceID(r.Context(), traceID)

		w.Header().Set(headerNameTraceID, traceID.String())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validTraceID(id contextx.TraceID) bool {
	if id == "" || len(id) > maxTraceIDLen {
		return false
	}

	for _, c := range []byte(id) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			return false
		}
	}

	return true
}
