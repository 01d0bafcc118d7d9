package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// BabyStore keeps the per-tenant baby profile in SQLite.
type BabyStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewBabyStore creates a baby profile store.
func NewBabyStore(db *sql.DB) *BabyStore {
	return &BabyStore{db: db, now: time.Now}
}

const upsertBabySQL = `
INSERT INTO babies (tenant_id, name, birth_date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (tenant_id) DO UPDATE
SET name = excluded.name, birth_date = excluded.birth_date, updated_at = excluded.updated_at`

// Get returns the profile of the tenant, or domain.ErrNotFound.
func (s *BabyStore) Get(ctx context.Context, tenantID uuid.UUID) (*domain.Baby, error) {
	var (
		b                    domain.Baby
		birth                *int64
		createdAt, updatedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT tenant_id, name, birth_date, created_at, updated_at FROM babies WHERE tenant_id = ?`, tenantID,
	).Scan(&b.TenantID, &b.Name, &birth, &createdAt, &updatedAt)
	if err != nil {
		return nil, mapError(err, "baby", tenantID)
	}

	b.BirthDate = fromMicrosPtr(birth)
	b.CreatedAt = fromMicros(createdAt)
	b.UpdatedAt = fromMicros(updatedAt)
	return &b, nil
}

// Upsert creates or replaces the profile of the tenant.
func (s *BabyStore) Upsert(ctx context.Context, b *domain.Baby) (*domain.Baby, error) {
	now := toMicros(s.now())
	if _, err := s.db.ExecContext(ctx, upsertBabySQL, b.TenantID, b.Name, toMicrosPtr(b.BirthDate), now, now); err != nil {
		return nil, mapError(err, "baby", b.TenantID)
	}
	return s.Get(ctx, b.TenantID)
}
