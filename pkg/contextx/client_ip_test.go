package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"lead_relay/pkg/contextx"
)

func TestClientIP(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var testClientIPEmpty contextx.ClientIP

	testClientIPNotEmpty := contextx.ClientIP("203.0.113.7")

	clientIP, err := contextx.ClientIPFromContext(ctx)
	rq.Equal(testClientIPEmpty, clientIP)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "client ip: no value in context")

	ctx = contextx.WithClientIP(ctx, testClientIPNotEmpty)

	clientIP, err = contextx.ClientIPFromContext(ctx)
	rq.Equal(testClientIPNotEmpty, clientIP)
	rq.NoError(err)
	rq.Equal("203.0.113.7", clientIP.String())
}
