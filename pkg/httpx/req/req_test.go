package req_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"lead_relay/pkg/errcodes"
	"lead_relay/pkg/httpx/req"
)

type payload struct {
	Name string `json:"name"`
	Kind string `json:"kind" validate:"omitempty,oneof=a b"`
}

func TestReadLimited(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		body     string
		limit    int64
		expected payload
		wantErr  bool
	}{
		{name: "ok", body: `{"name":"Анна"}`, limit: 64, expected: payload{Name: "Анна"}},
		{name: "exactly at limit", body: `{"name":"ab"}`, limit: 13, expected: payload{Name: "ab"}},
		{name: "over limit", body: `{"name":"abc"}`, limit: 13, wantErr: true},
		{name: "malformed", body: `{"name":`, limit: 64, wantErr: true},
		{name: "empty", body: ``, limit: 64, wantErr: true},
		{name: "validation", body: `{"kind":"c"}`, limit: 64, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rq := require.New(t)

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))

			var dest payload

			err := req.ReadLimited(r, tc.limit, &dest)
			if tc.wantErr {
				rq.Error(err)
				rq.True(failure.IsInvalidArgumentError(err))
				rq.Equal(errcodes.ValidationError, failure.Code(err))

				return
			}

			rq.NoError(err)
			rq.Equal(tc.expected, dest)
		})
	}
}
