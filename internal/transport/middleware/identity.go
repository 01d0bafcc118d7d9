package middleware

import "context"

type identityKey struct{}

// requestIdentity lets inner middleware report who the caller was to the
// request logger, which only sees the outer context.
type requestIdentity struct {
	tenantID string
}

func withIdentity(ctx context.Context, ids *requestIdentity) context.Context {
	return context.WithValue(ctx, identityKey{}, ids)
}

func reportTenant(ctx context.Context, tenantID string) {
	if ids, ok := ctx.Value(identityKey{}).(*requestIdentity); ok {
		ids.tenantID = tenantID
	}
}
