package middlewarex

import (
	"net"
	"net/http"
	"strings"

	"lead_relay/pkg/contextx"
)

const unknownClientIP = "unknown"

// ClientIP определяет адрес клиента для лимитов и логов. За прокси
// (trustProxy) приоритет у первого адреса X-Forwarded-For, затем X-Real-IP.
func ClientIP(trustProxy bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := resolveClientIP(r, trustProxy)
			ctx := contextx.WithClientIP(r.Context(), contextx.ClientIP(ip))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}

		if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
			return realIP
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}

	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}

	return unknownClientIP
}
