package contextx

import (
	"context"
	"fmt"
)

// ClientIP is the address a request is attributed to for rate limiting.
type ClientIP string

type contextKeyClientIP struct{}

func (c ClientIP) String() string {
	return string(c)
}

func WithClientIP(ctx context.Context, clientIP ClientIP) context.Context {
	return context.WithValue(ctx, contextKeyClientIP{}, clientIP)
}

func ClientIPFromContext(ctx context.Context) (ClientIP, error) {
	clientIP, ok := ctx.Value(contextKeyClientIP{}).(ClientIP)
	if !ok {
		return "", fmt.Errorf("client ip: %w", ErrNoValue)
	}

	return clientIP, nil
}
