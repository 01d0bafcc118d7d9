// Package baby implements the baby profile repository using PostgreSQL.
package baby

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/internal/adapter/postgres"
	"github.com/ntotao/baby-tracker/internal/domain"
)

// Repo provides baby profile persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new baby profile repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	TenantID  uuid.UUID  `db:"tenant_id"`
	Name      string     `db:"name"`
	BirthDate *time.Time `db:"birth_date"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

const getSQL = `
SELECT tenant_id, name, birth_date, created_at, updated_at
FROM babies WHERE tenant_id = $1`

const upsertSQL = `
INSERT INTO babies (tenant_id, name, birth_date, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (tenant_id) DO UPDATE
SET name = EXCLUDED.name, birth_date = EXCLUDED.birth_date, updated_at = now()
RETURNING tenant_id, name, birth_date, created_at, updated_at`

// Get returns the profile of the tenant, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, tenantID uuid.UUID) (*domain.Baby, error) {
	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, getSQL, tenantID); err != nil {
		return nil, postgres.MapError(err, "baby", tenantID)
	}
	return toDomain(dst), nil
}

// Upsert creates or replaces the profile of the tenant.
func (r *Repo) Upsert(ctx context.Context, b *domain.Baby) (*domain.Baby, error) {
	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, upsertSQL, b.TenantID, b.Name, b.BirthDate); err != nil {
		return nil, postgres.MapError(err, "baby", b.TenantID)
	}
	return toDomain(dst), nil
}

func toDomain(r row) *domain.Baby {
	return &domain.Baby{
		TenantID:  r.TenantID,
		Name:      r.Name,
		BirthDate: r.BirthDate,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
