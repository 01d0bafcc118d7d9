// Package ctxutil carries request-scoped identity through context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type key int

const (
	tenantKey key = iota
	userKey
	requestKey
)

// lookup returns the stored value, treating the zero value as absent.
func lookup[T comparable](ctx context.Context, k key) (T, bool) {
	v, ok := ctx.Value(k).(T)
	var zero T
	if !ok || v == zero {
		return zero, false
	}
	return v, true
}

// WithTenantID stores the authenticated tenant.
func WithTenantID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantKey, id)
}

// TenantIDFromCtx reports the tenant; uuid.Nil counts as missing.
func TenantIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	return lookup[uuid.UUID](ctx, tenantKey)
}

// WithUserID stores the chat user behind the request.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userKey, id)
}

func UserIDFromCtx(ctx context.Context) (int64, bool) {
	return lookup[int64](ctx, userKey)
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestKey, id)
}

// RequestIDFromCtx returns "" when no id was set.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := lookup[string](ctx, requestKey)
	return id
}
