// Package dataloader provides per-request loaders that batch last-event
// lookups of one HTTP request into a single store query per tenant.
// Loaders call the store directly; tenant isolation comes from the
// tenant_id filter of every query.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/ntotao/baby-tracker/internal/domain"
)

const (
	maxBatch = 50
	wait     = 2 * time.Millisecond
)

//go:generate moq -out last_event_store_mock_test.go -pkg dataloader . lastEventStore

type lastEventStore interface {
	LastOfTypes(ctx context.Context, tenantID uuid.UUID, types []domain.EventType) (map[domain.EventType]domain.Event, error)
}

// Key identifies the newest event of one type in one tenant.
type Key struct {
	TenantID uuid.UUID
	Type     domain.EventType
}

// Loaders contains the per-request loaders. Created per request via NewLoaders.
type Loaders struct {
	// LastEvent yields nil when the tenant has no event of the type.
	LastEvent *dataloader.Loader[Key, *domain.Event]
}

// NewLoaders creates loaders backed by store. Results are cached for the
// lifetime of the returned value, so it must not outlive a request.
func NewLoaders(store lastEventStore) *Loaders {
	return &Loaders{
		LastEvent: dataloader.NewBatchedLoader(
			newLastEventBatchFn(store),
			dataloader.WithWait[Key, *domain.Event](wait),
			dataloader.WithBatchCapacity[Key, *domain.Event](maxBatch),
		),
	}
}

func newLastEventBatchFn(store lastEventStore) dataloader.BatchFunc[Key, *domain.Event] {
	return func(ctx context.Context, keys []Key) []*dataloader.Result[*domain.Event] {
		byTenant := make(map[uuid.UUID][]domain.EventType)
		for _, k := range keys {
			byTenant[k.TenantID] = append(byTenant[k.TenantID], k.Type)
		}

		found := make(map[Key]domain.Event, len(keys))
		failed := make(map[uuid.UUID]error)
		for tenantID, types := range byTenant {
			last, err := store.LastOfTypes(ctx, tenantID, types)
			if err != nil {
				failed[tenantID] = err
				continue
			}
			for t, ev := range last {
				found[Key{TenantID: tenantID, Type: t}] = ev
			}
		}

		results := make([]*dataloader.Result[*domain.Event], len(keys))
		for i, k := range keys {
			if err, ok := failed[k.TenantID]; ok {
				results[i] = &dataloader.Result[*domain.Event]{Error: err}
				continue
			}
			if ev, ok := found[k]; ok {
				results[i] = &dataloader.Result[*domain.Event]{Data: &ev}
			} else {
				results[i] = &dataloader.Result[*domain.Event]{}
			}
		}
		return results
	}
}

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (the middleware is not installed).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is the middleware installed?")
	}
	return l
}
