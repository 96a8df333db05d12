package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"lead_relay/internal/config"
	"lead_relay/internal/domain/service/lead"
	"lead_relay/internal/domain/service/ratelimit"
	"lead_relay/internal/infrastructure/notifier"
	"lead_relay/internal/infrastructure/ratestore"
	"lead_relay/internal/server"
	"lead_relay/pkg/application/connectors"
	"lead_relay/pkg/application/modules"
	"lead_relay/pkg/metrics"
	"lead_relay/pkg/probe"
)

const (
	appName = "lead_relay"

	memoryCleanupInterval = time.Minute
)

// Version подставляется при сборке через -ldflags.
var Version = "dev" //nolint:gochecknoglobals

// Run поднимает HTTP, probe и metrics серверы и ждёт отмены ctx.
func Run(ctx context.Context, log *slog.Logger, cfg config.Config, reg prometheus.Registerer) error {
	var checks []probe.ReadinessCheck

	store, closeStore := newRateStore(ctx, log, cfg)
	defer closeStore()

	if r, ok := store.(*redisStore); ok {
		checks = append(checks, r.conn.Ping)
	}

	limiter := ratelimit.NewLimiter(store, cfg.RateLimit.Max, cfg.RateLimit.Window.Duration())

	relay, err := newRelay(ctx, log, cfg)
	if err != nil {
		return err
	}

	leadMetrics, err := metrics.NewLeadMetrics(reg)
	if err != nil {
		return fmt.Errorf("lead metrics: %w", err)
	}

	svc := lead.NewService(relay).
		WithTiming(cfg.Lead.MinFillTime.Duration(), cfg.Lead.MaxFillTime.Duration()).
		WithRelayTimeout(cfg.Bot.Timeout).
		WithMetrics(leadMetrics)

	origins := cfg.Lead.AllowedOrigins()
	if len(origins) == 0 {
		log.Warn("ALLOWED_ORIGINS is empty, every request will be rejected with 500")
	}

	leadServer := server.NewLeadServer(svc, limiter, server.NewOriginPolicy(origins)).
		WithMaxBodyBytes(cfg.Lead.MaxBodyBytes).
		WithMetrics(leadMetrics)

	router := server.NewRouter(server.NewServer(leadServer), server.RouterOptions{
		TrustProxy:     cfg.HTTP.TrustProxy,
		MaxBodyBytes:   cfg.Lead.MaxBodyBytes,
		LogFieldMaxLen: cfg.HTTP.LogFieldMaxLen,
	})

	httpServer := &http.Server{ //nolint:exhaustruct
		Addr:    cfg.HTTP.ListenAddress,
		Handler: router,
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)

	modules.ProbeServer{
		Name:          appName,
		Version:       Version,
		ListenAddress: cfg.Observability.ProbeListenAddress,
		Checks:        checks,
	}.Run(ctx, g)

	gatherer, _ := reg.(prometheus.Gatherer)

	modules.MetricServer{
		ListenAddress: cfg.Observability.MetricListenAddress,
		Gatherer:      gatherer,
	}.Run(ctx, g)

	log.Info("application started",
		slog.String("rate-limit-backend", cfg.RateLimit.Backend),
		slog.Int("rate-limit-max", cfg.RateLimit.Max),
		slog.Duration("rate-limit-window", cfg.RateLimit.Window.Duration()),
		slog.Bool("relay-configured", relay != nil),
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	log.Info("application stopping...")

	return nil
}

type redisStore struct {
	*ratestore.Redis
	conn *connectors.Redis
}

// newRateStore недоступный Redis роняет старт (connectors.Redis.Client).
func newRateStore(ctx context.Context, log *slog.Logger, cfg config.Config) (ratelimit.Store, func()) {
	if cfg.RateLimit.Backend != config.BackendRedis {
		log.Info("rate limit store: memory")

		return ratestore.NewMemory(memoryCleanupInterval), func() {}
	}

	conn := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}

	log.Info("rate limit store: redis", slog.String("address", cfg.Redis.Address))

	store := &redisStore{
		Redis: ratestore.NewRedis(conn.Client(ctx)),
		conn:  conn,
	}

	return store, func() { conn.Close(context.WithoutCancel(ctx)) }
}

// newRelay без токена или чата возвращает nil: заявки отклоняются с 500,
// но сервис продолжает отвечать на CORS и отсекать ботов.
func newRelay(ctx context.Context, log *slog.Logger, cfg config.Config) (lead.Relay, error) {
	if !cfg.Bot.Configured() {
		log.Warn("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is empty, leads will not be relayed")

		return nil, nil //nolint:nilnil
	}

	bot, err := notifier.NewTelegramBot(ctx, cfg.Bot.Token, cfg.Bot.ChatID,
		notifier.WithAPIServer(cfg.Bot.APIURL),
		notifier.WithTimeout(cfg.Bot.Timeout),
		notifier.WithLogFieldMaxLen(cfg.HTTP.LogFieldMaxLen),
	)
	if err != nil {
		return nil, fmt.Errorf("notifier bot: %w", err)
	}

	return bot, nil
}
