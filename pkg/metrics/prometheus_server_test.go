package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"lead_relay/pkg/metrics"
)

func TestPrometheusServer(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name          string
		listenAddress string
		endpoint      string
		statusCode    int
	}{
		{
			name:          "Metrics handler",
			listenAddress: ":10010",
			endpoint:      "http://:10010/metrics",
			statusCode:    http.StatusOK,
		},
		{
			name:          "Invalid endpoint",
			listenAddress: ":10020",
			endpoint:      "http://:10020/invalid",
			statusCode:    http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			prometheusServer := metrics.NewPrometheusServer(tc.listenAddress)

			g, ctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				return prometheusServer.Run(ctx)
			})

			// Wait for server to start.
			time.Sleep(time.Second)

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.endpoint, http.NoBody)
			rq.NoError(err)

			resp, err := http.DefaultClient.Do(req)
			rq.NoError(err)

			defer resp.Body.Close()

			rq.Equal(tc.statusCode, resp.StatusCode)

			cancel()

			rq.NoError(g.Wait())
		})
	}
}

func TestLeadMetrics(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	reg := prometheus.NewRegistry()

	m, err := metrics.NewLeadMetrics(reg)
	rq.NoError(err)

	m.ObserveOutcome("relayed")
	m.ObserveOutcome("relayed")
	m.ObserveOutcome("honeypot")
	m.ObserveRelay(200*time.Millisecond, nil)
	m.ObserveRelay(time.Second, errors.New("timeout"))
	m.ObserveRateLimited()

	w := httptest.NewRecorder()
	metrics.NewPrometheusServer(":0").WithGatherer(reg).Handler().
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	rq.Equal(http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	rq.NoError(err)

	rq.Contains(string(body), `lead_relay_submissions_total{outcome="relayed"} 2`)
	rq.Contains(string(body), `lead_relay_submissions_total{outcome="honeypot"} 1`)
	rq.Contains(string(body), `lead_relay_relay_duration_seconds_count{result="ok"} 1`)
	rq.Contains(string(body), `lead_relay_relay_duration_seconds_count{result="error"} 1`)
	rq.Contains(string(body), `lead_relay_rate_limited_total 1`)

	// повторная регистрация в том же реестре
	_, err = metrics.NewLeadMetrics(reg)
	rq.Error(err)
}
