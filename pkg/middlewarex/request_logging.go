package middlewarex

import (
	"log/slog"
	"net/http"
	"net/http/httputil"

	"lead_relay/pkg/logx"
)

// RequestLogging пишет дамп входящего запроса. Имя и телефон из тела заявки
// закрываются маскером до обрезки по logFieldMaxLen (0 без обрезки).
func RequestLogging(
	sensitiveDataMasker logx.SensitiveDataMaskerInterface,
	logFieldMaxLen int,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			dump, err := httputil.DumpRequest(r, r.Method != http.MethodOptions)

			logger(ctx).Info(
				logx.FieldHTTPRequest,
				slog.String(logx.FieldRequestBody, truncate(sensitiveDataMasker.Mask(dump), logFieldMaxLen)),
				logx.Error(err),
			)

			next.ServeHTTP(w, r)
		})
	}
}

func truncate(dump []byte, maxLen int) string {
	if maxLen > 0 && len(dump) > maxLen {
		dump = dump[:maxLen]
	}

	return string(dump)
}
