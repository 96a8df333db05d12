package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lead_relay/pkg/logx"
	"lead_relay/pkg/middlewarex"
)

type RouterOptions struct {
	TrustProxy     bool
	MaxBodyBytes   int64
	LogFieldMaxLen int
}

// NewRouter собирает цепочку middleware вокруг обработчиков.
func NewRouter(s Server, opts RouterOptions) http.Handler {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()

	r.Use(
		middleware.CleanPath,
		middlewarex.TraceID,
		middlewarex.ClientIP(opts.TrustProxy),
		middlewarex.Logger,
		middlewarex.BodyLimit(opts.MaxBodyBytes),
		middlewarex.RequestLogging(masker, opts.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, opts.LogFieldMaxLen),
		middlewarex.Recovery,
	)

	s.RegisterRoutes(r)

	return r
}
