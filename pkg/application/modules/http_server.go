package modules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"lead_relay/pkg/logx"
)

const defaultReadHeaderTimeout = 5 * time.Second

// HTTPServer запускает HTTP-сервер и останавливает его по отмене контекста,
// давая активным запросам (в том числе ждущим Telegram) ShutdownTimeout на
// завершение.
type HTTPServer struct {
	ShutdownTimeout time.Duration
}

func (h HTTPServer) Run(
	ctx context.Context,
	g *errgroup.Group,
	httpServer *http.Server,
) {
	if httpServer.ReadHeaderTimeout == 0 {
		httpServer.ReadHeaderTimeout = defaultReadHeaderTimeout
	}

	g.Go(func() error {
		go func() {
			<-ctx.Done()

			logger(ctx).Info("http server draining", slog.Duration("timeout", h.ShutdownTimeout))

			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.ShutdownTimeout) //nolint:govet
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				logger(ctx).Error("server.Shutdown", logx.Error(err))
			}
		}()

		logger(ctx).Info("http server started", slog.String("address", httpServer.Addr))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe: %w", err)
		}

		logger(ctx).Info("http server stopped", slog.String("address", httpServer.Addr))

		return nil
	})
}
