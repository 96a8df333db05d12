package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"lead_relay/internal/domain"
	"lead_relay/internal/domain/entity"
	"lead_relay/internal/domain/service/lead"
	"lead_relay/pkg/contextx"
	"lead_relay/pkg/httpx/reply"
	"lead_relay/pkg/httpx/req"
	"lead_relay/pkg/logx"
	"lead_relay/pkg/rest"
)

const defaultMaxBodyBytes = 4096

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type leadService interface {
	Submit(ctx context.Context, sub lead.Submission) (lead.Outcome, error)
}

type rateLimiter interface {
	Allow(ctx context.Context, key string) (entity.RateDecision, error)
}

type rateLimitObserver interface {
	ObserveRateLimited()
}

type nopObserver struct{}

func (nopObserver) ObserveRateLimited() {}

type LeadServer struct {
	leadService  leadService
	limiter      rateLimiter
	origins      OriginPolicy
	maxBodyBytes int64
	observer     rateLimitObserver
	now          func() time.Time
}

func NewLeadServer(leadService leadService, limiter rateLimiter, origins OriginPolicy) LeadServer {
	return LeadServer{
		leadService:  leadService,
		limiter:      limiter,
		origins:      origins,
		maxBodyBytes: defaultMaxBodyBytes,
		observer:     nopObserver{},
		now:          time.Now,
	}
}

func (s LeadServer) WithMetrics(observer rateLimitObserver) LeadServer {
	s.observer = observer
	return s
}

func (s LeadServer) WithMaxBodyBytes(n int64) LeadServer {
	s.maxBodyBytes = n
	return s
}

// postLead порядок проверок важен: конфигурация, preflight, источник, метод,
// лимит и только потом тело.
func (s LeadServer) postLead(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if !s.origins.Configured() {
		return domain.ErrOriginsNotConfigured
	}

	origin := r.Header.Get("Origin")
	allowed := s.origins.Allowed(origin)

	setCORSHeaders(w.Header(), origin, allowed)

	if r.Method == http.MethodOptions {
		if allowed {
			reply.Status(w, http.StatusOK)
		} else {
			reply.Status(w, http.StatusForbidden)
		}

		return nil
	}

	if !allowed {
		return domain.ErrOriginForbidden
	}

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", corsAllowMethods)
		return domain.ErrMethodNotAllowed
	}

	clientIP := clientIPFromContext(ctx)

	decision, err := s.limiter.Allow(ctx, clientIP)
	if err != nil {
		// хранилище лимитов недоступно: пропускаем запрос
		decision.Allowed = true
	}

	if !decision.Allowed {
		retryAfter := decision.RetryAfter(s.now())
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		s.observer.ObserveRateLimited()
		logger(ctx).Info("rate limit exceeded", slog.Int(logx.FieldRetryAfter, retryAfter))

		return domain.ErrTooManyRequests
	}

	var request rest.LeadRequest

	if err := req.ReadLimited(r, s.maxBodyBytes, &request); err != nil {
		logger(ctx).Info("lead body ignored", logx.Error(err))

		request = rest.LeadRequest{}
	}

	outcome, err := s.leadService.Submit(ctx, newSubmission(request, clientIP))
	if err != nil {
		return fmt.Errorf("leadService.Submit: %w", err)
	}

	logger(ctx).Debug("lead handled", slog.String(logx.FieldOutcome, outcome.String()))

	reply.OK(ctx, w)

	return nil
}

func clientIPFromContext(ctx context.Context) string {
	ip, err := contextx.ClientIPFromContext(ctx)
	if err != nil || ip == "" {
		return "unknown"
	}

	return ip.String()
}
