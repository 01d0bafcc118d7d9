package testhelper

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// uniqueUserID returns a chat user id that will not collide across parallel tests.
func uniqueUserID() int64 {
	return rand.Int64N(1<<40) + 1
}

// SeedTenant creates a tenant with a random creator and returns it.
func SeedTenant(t *testing.T, pool *pgxpool.Pool) domain.Tenant {
	t.Helper()

	admin := uniqueUserID()
	tenant := domain.Tenant{
		ID:           uuid.New(),
		AdminUserID:  admin,
		AllowedUsers: []int64{admin},
		Timezone:     "UTC",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO tenants (id, admin_user_id, allowed_users, timezone, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		tenant.ID, tenant.AdminUserID, tenant.AllowedUsers, tenant.Timezone, tenant.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTenant: %v", err)
	}

	return tenant
}

// SeedLegacyEvent inserts an event the way the first tracker version wrote
// them: a legacy type literal and the classification only in the summary.
func SeedLegacyEvent(t *testing.T, pool *pgxpool.Pool, tenantID uuid.UUID, rawType, summary string, at time.Time) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO events (tenant_id, user_id, occurred_at, event_type, summary)
		 VALUES ($1, 0, $2, $3, $4) RETURNING id`,
		tenantID, at.UTC(), rawType, summary,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedLegacyEvent: %v", err)
	}

	return id
}
