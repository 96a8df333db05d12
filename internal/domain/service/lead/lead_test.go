package lead_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lead_relay/internal/domain"
	"lead_relay/internal/domain/entity"
	"lead_relay/internal/domain/service/lead"
	"lead_relay/internal/domain/value"
)

type fakeRelay struct {
	mu    sync.Mutex
	leads []entity.Lead
	err   error
}

func (r *fakeRelay) SendLead(_ context.Context, l entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}

	r.leads = append(r.leads, l)

	return nil
}

type fakeRecorder struct {
	outcomes []string
	relays   int
}

func (r *fakeRecorder) ObserveOutcome(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

func (r *fakeRecorder) ObserveRelay(time.Duration, error) {
	r.relays++
}

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) //nolint:gochecknoglobals

func validSubmission() lead.Submission {
	return lead.Submission{
		Name:      "  Иван\tПетров ",
		Phone:     "8 (999) 123-45-67",
		StartedAt: now.Add(-time.Minute),
		QueryParams: []value.QueryParam{
			{Key: "utm_source", Value: "yandex"},
			{Key: "bad key!", Value: ""},
		},
		ClientIP: "10.0.0.1",
	}
}

func newService(relay lead.Relay) *lead.Service {
	return lead.NewService(relay).WithClock(func() time.Time { return now })
}

func TestService_Submit(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	relay := &fakeRelay{}
	recorder := &fakeRecorder{}

	outcome, err := newService(relay).WithMetrics(recorder).Submit(context.Background(), validSubmission())
	rq.NoError(err)
	rq.Equal(lead.OutcomeRelayed, outcome)

	rq.Len(relay.leads, 1)
	got := relay.leads[0]
	rq.Equal("Иван Петров", got.Name)
	rq.Equal(value.Phone("79991234567"), got.Phone)
	rq.Equal(value.QueryParams{{Key: "utm_source", Value: "yandex"}}, got.QueryParams)
	rq.Equal(now, got.ReceivedAt)
	rq.Equal(time.Minute, got.FillDuration())
	rq.Equal("10.0.0.1", got.ClientIP)

	rq.Equal([]string{"relayed"}, recorder.outcomes)
	rq.Equal(1, recorder.relays)
}

func TestService_SubmitRejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		modify   func(s *lead.Submission)
		expected error
	}{
		{
			name:     "no startedAt",
			modify:   func(s *lead.Submission) { s.StartedAt = time.Time{} },
			expected: domain.ErrInvalidFormTiming,
		},
		{
			name:     "too fast",
			modify:   func(s *lead.Submission) { s.StartedAt = now.Add(-time.Second) },
			expected: domain.ErrInvalidFormTiming,
		},
		{
			name:     "too slow",
			modify:   func(s *lead.Submission) { s.StartedAt = now.Add(-3 * time.Hour) },
			expected: domain.ErrInvalidFormTiming,
		},
		{
			name:     "from the future",
			modify:   func(s *lead.Submission) { s.StartedAt = now.Add(time.Minute) },
			expected: domain.ErrInvalidFormTiming,
		},
		{
			name:     "name too short",
			modify:   func(s *lead.Submission) { s.Name = " И \x00" },
			expected: domain.ErrInvalidName,
		},
		{
			name:     "name too long",
			modify:   func(s *lead.Submission) { s.Name = strings.Repeat("я", 81) },
			expected: domain.ErrInvalidName,
		},
		{
			name: "name checked before phone",
			modify: func(s *lead.Submission) {
				s.Name = ""
				s.Phone = ""
			},
			expected: domain.ErrInvalidName,
		},
		{
			name:     "phone too short",
			modify:   func(s *lead.Submission) { s.Phone = "+7 (999) 123-45" },
			expected: domain.ErrInvalidPhone,
		},
		{
			name:     "phone empty",
			modify:   func(s *lead.Submission) { s.Phone = "  " },
			expected: domain.ErrInvalidPhone,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rq := require.New(t)

			relay := &fakeRelay{}
			sub := validSubmission()
			tc.modify(&sub)

			_, err := newService(relay).Submit(context.Background(), sub)
			rq.ErrorIs(err, tc.expected)
			rq.Empty(relay.leads)
		})
	}
}

func TestService_SubmitTimingBounds(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	svc := newService(&fakeRelay{}).WithTiming(2*time.Second, time.Hour)

	sub := validSubmission()
	sub.StartedAt = now.Add(-2 * time.Second)
	_, err := svc.Submit(context.Background(), sub)
	rq.NoError(err)

	sub.StartedAt = now.Add(-time.Hour)
	_, err = svc.Submit(context.Background(), sub)
	rq.NoError(err)

	sub.StartedAt = now.Add(-time.Hour - time.Millisecond)
	_, err = svc.Submit(context.Background(), sub)
	rq.ErrorIs(err, domain.ErrInvalidFormTiming)
}

func TestService_SubmitHoneypot(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	relay := &fakeRelay{}
	recorder := &fakeRecorder{}

	sub := validSubmission()
	sub.Company = " ООО Ромашка "
	// ловушка срабатывает раньше остальных проверок
	sub.StartedAt = time.Time{}
	sub.Phone = ""

	outcome, err := newService(relay).WithMetrics(recorder).Submit(context.Background(), sub)
	rq.NoError(err)
	rq.Equal(lead.OutcomeHoneypot, outcome)
	rq.Empty(relay.leads)
	rq.Equal([]string{"honeypot"}, recorder.outcomes)

	sub = validSubmission()
	sub.Company = "   "

	outcome, err = newService(relay).Submit(context.Background(), sub)
	rq.NoError(err)
	rq.Equal(lead.OutcomeRelayed, outcome)
}

func TestService_SubmitRelayErrors(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	recorder := &fakeRecorder{}

	_, err := newService(nil).WithMetrics(recorder).Submit(context.Background(), validSubmission())
	rq.ErrorIs(err, domain.ErrRelayNotConfigured)

	// без настроенной отправки невалидная заявка всё равно получает свою ошибку
	sub := validSubmission()
	sub.Phone = "123"
	_, err = newService(nil).Submit(context.Background(), sub)
	rq.ErrorIs(err, domain.ErrInvalidPhone)

	cause := errors.New("bad gateway")
	_, err = newService(&fakeRelay{err: cause}).WithMetrics(recorder).Submit(context.Background(), validSubmission())
	rq.ErrorIs(err, domain.ErrRelayFailed)
	rq.ErrorIs(err, cause)

	msg, ok := domain.PublicMessage(err)
	rq.True(ok)
	rq.Equal("Telegram error", msg)

	rq.Equal([]string{"RelayNotConfigured", "RelayFailed"}, recorder.outcomes)
	rq.Equal(1, recorder.relays)
}

type deadlineRelay struct {
	deadline time.Time
	ok       bool
}

func (r *deadlineRelay) SendLead(ctx context.Context, _ entity.Lead) error {
	r.deadline, r.ok = ctx.Deadline()
	return nil
}

func TestService_SubmitRelayTimeout(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	relay := &deadlineRelay{}

	_, err := newService(relay).WithRelayTimeout(3*time.Second).Submit(context.Background(), validSubmission())
	rq.NoError(err)
	rq.True(relay.ok)
	rq.WithinDuration(time.Now().Add(3*time.Second), relay.deadline, time.Second)
}
