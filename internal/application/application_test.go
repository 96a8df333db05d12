package application_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"lead_relay/internal/application"
	"lead_relay/internal/config"
	"lead_relay/pkg/tests"
)

const (
	testToken = "123456:AAEhBOweik6ad9r_QXMENQjcrGbqCr4K-ra"
	origin    = "https://example.ru"
)

type botAPI struct {
	mu    sync.Mutex
	texts []string
}

func (b *botAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.texts = append(b.texts, string(body))
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":-100500,"type":"group"}}}`)
}

func (b *botAPI) sent() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string(nil), b.texts...)
}

type ports struct {
	http, probe, metrics string
}

func startApp(t *testing.T, p ports, extra map[string]string) {
	t.Helper()
	rq := require.New(t)

	environment := map[string]string{
		"ALLOWED_ORIGINS":     origin,
		"MIN_FORM_FILL_MS":    "1000",
		"RATE_LIMIT_MAX":      "2",
		"HTTP_LISTEN_ADDR":    ":" + p.http,
		"PROBE_LISTEN_ADDR":   ":" + p.probe,
		"METRICS_LISTEN_ADDR": ":" + p.metrics,
	}
	for k, v := range extra {
		environment[k] = v
	}

	cfg, err := config.LoadFrom(environment)
	rq.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- application.Run(ctx, slog.Default(), cfg, prometheus.NewRegistry())
	}()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	for _, port := range []string{p.http, p.probe, p.metrics} {
		client := tests.NewAPIClient("http://localhost:"+port, nil)

		rq.Eventually(func() bool {
			_, err := client.Get(ctx, "/healthz")
			return err == nil
		}, 5*time.Second, 50*time.Millisecond)
	}
}

func leadPayload() map[string]any {
	return map[string]any{
		"name":      "Анна",
		"phone":     "8 (999) 123-45-67",
		"company":   "",
		"startedAt": time.Now().Add(-5 * time.Second).UnixMilli(),
		"queryParams": map[string]string{
			"utm_source": "ya",
		},
	}
}

func TestRun(t *testing.T) {
	rq := require.New(t)

	api := &botAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	startApp(t, ports{http: "10040", probe: "10041", metrics: "10042"}, map[string]string{
		"TELEGRAM_BOT_TOKEN": testToken,
		"TELEGRAM_CHAT_ID":   "-100500",
		"TELEGRAM_API_URL":   srv.URL,
	})

	ctx := context.Background()
	client := tests.NewAPIClient("http://localhost:10040", nil).WithOrigin(origin)

	resp, err := client.Options(ctx, "/v1/lead")
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(origin, resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = client.Post(ctx, "/", leadPayload())
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("OK", resp.Body)

	sent := api.sent()
	rq.Len(sent, 1)
	rq.Contains(sent[0], "+7 (999) 123-45-67")
	rq.Contains(sent[0], "utm_source: ya")

	resp, err = client.PostJSON(ctx, "/v1/lead", `{"name":`)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)

	// Лимит 2 запроса, preflight не считается.
	resp, err = client.Post(ctx, "/v1/lead", leadPayload())
	rq.NoError(err)
	rq.Equal(http.StatusTooManyRequests, resp.StatusCode)
	rq.NotEmpty(resp.Header.Get("Retry-After"))

	resp, err = tests.NewAPIClient("http://localhost:10040", nil).
		WithOrigin("https://evil.example").
		Post(ctx, "/", leadPayload())
	rq.NoError(err)
	rq.Equal(http.StatusForbidden, resp.StatusCode)

	metricsResp, err := tests.NewAPIClient("http://localhost:10042", nil).Get(ctx, "/metrics")
	rq.NoError(err)
	rq.Equal(http.StatusOK, metricsResp.StatusCode)
	rq.True(strings.Contains(metricsResp.Body, "lead_relay_submissions_total"))
}

func TestRun_RelayNotConfigured(t *testing.T) {
	rq := require.New(t)

	startApp(t, ports{http: "10043", probe: "10044", metrics: "10045"}, nil)

	resp, err := tests.NewAPIClient("http://localhost:10043", nil).
		WithOrigin(origin).
		Post(context.Background(), "/", leadPayload())
	rq.NoError(err)
	rq.Equal(http.StatusInternalServerError, resp.StatusCode)
	rq.Equal("Missing Telegram configuration", resp.Body)
}

func TestRun_RedisBackend(t *testing.T) {
	rq := require.New(t)

	mr := miniredis.RunT(t)

	startApp(t, ports{http: "10046", probe: "10047", metrics: "10048"}, map[string]string{
		"RATE_LIMIT_BACKEND": "redis",
		"REDIS_ADDR":         mr.Addr(),
	})

	ctx := context.Background()

	resp, err := tests.NewAPIClient("http://localhost:10047", nil).Get(ctx, "/ready")
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	resp, err = tests.NewAPIClient("http://localhost:10046", nil).
		WithOrigin(origin).
		Post(ctx, "/", leadPayload())
	rq.NoError(err)
	rq.Equal(http.StatusInternalServerError, resp.StatusCode)
	rq.NotEmpty(mr.Keys())

	mr.Close()

	resp, err = tests.NewAPIClient("http://localhost:10047", nil).Get(ctx, "/ready")
	rq.NoError(err)
	rq.Equal(http.StatusServiceUnavailable, resp.StatusCode)
}
