package middlewarex

import (
	"log/slog"
	"net/http"

	"lead_relay/pkg/contextx"
	"lead_relay/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Logger кладёт в контекст логгер с полями запроса. Должен стоять после
// TraceID и ClientIP.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		traceID, err := contextx.TraceIDFromContext(ctx)
		if err != nil {
			logger(ctx).Error("contextx.TraceIDFromContext", logx.Error(err))
		}

		clientIP, err := contextx.ClientIPFromContext(ctx)
		if err != nil {
			clientIP = contextx.ClientIP(r.RemoteAddr)
		}

		ctx = contextx.WithLogger(
			ctx,
			logger(ctx).With(
				logx.Stringer(logx.FieldTraceID, traceID),
				logx.Stringer(logx.FieldURL, r.URL),
				slog.String(logx.FieldHTTPMethod, r.Method),
				logx.Stringer(logx.FieldClientIP, clientIP),
				slog.String(logx.FieldOrigin, r.Header.Get("Origin")),
			),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
