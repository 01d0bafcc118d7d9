// Package tenant implements the tenant registry using PostgreSQL.
package tenant

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/internal/adapter/postgres"
	"github.com/ntotao/baby-tracker/internal/domain"
)

// Repo provides tenant persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new tenant repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID           uuid.UUID `db:"id"`
	AdminUserID  int64     `db:"admin_user_id"`
	AllowedUsers []int64   `db:"allowed_users"`
	Timezone     string    `db:"timezone"`
	IsPremium    bool      `db:"is_premium"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r row) toDomain() *domain.Tenant {
	return &domain.Tenant{
		ID:           r.ID,
		AdminUserID:  r.AdminUserID,
		AllowedUsers: r.AllowedUsers,
		Timezone:     r.Timezone,
		IsPremium:    r.IsPremium,
		CreatedAt:    r.CreatedAt,
	}
}

const selectColumns = `id, admin_user_id, allowed_users, timezone, is_premium, created_at`

const getByIDSQL = `SELECT ` + selectColumns + ` FROM tenants WHERE id = $1`

const getByAdminSQL = `SELECT ` + selectColumns + ` FROM tenants WHERE admin_user_id = $1`

const createSQL = `
INSERT INTO tenants (id, admin_user_id, allowed_users, timezone, created_at)
VALUES ($1, $2, $3, $4, $5)`

// addMemberSQL appends the user only when absent and reports whether the
// tenant exists, in one statement.
const addMemberSQL = `
WITH target AS (
    SELECT id FROM tenants WHERE id = $1
), updated AS (
    UPDATE tenants
    SET allowed_users = array_append(allowed_users, $2)
    WHERE id = $1 AND NOT ($2 = ANY(allowed_users))
    RETURNING id
)
SELECT EXISTS(SELECT 1 FROM target)`

const setTimezoneSQL = `UPDATE tenants SET timezone = $2 WHERE id = $1`

// GetByID returns the tenant with the given id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, getByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "tenant", id)
	}
	return dst.toDomain(), nil
}

// GetByAdmin returns the tenant created by userID.
func (r *Repo) GetByAdmin(ctx context.Context, userID int64) (*domain.Tenant, error) {
	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, getByAdminSQL, userID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, postgres.MapError(err, "tenant of user", userID)
	}
	return dst.toDomain(), nil
}

// Create inserts a new tenant.
func (r *Repo) Create(ctx context.Context, t *domain.Tenant) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	allowed := t.AllowedUsers
	if allowed == nil {
		allowed = []int64{}
	}

	_, err := q.Exec(ctx, createSQL, t.ID, t.AdminUserID, allowed, t.Timezone, t.CreatedAt)
	return postgres.MapError(err, "tenant", t.ID)
}

// AddMember appends userID to the allowed set. Returns false when the
// tenant does not exist.
func (r *Repo) AddMember(ctx context.Context, id uuid.UUID, userID int64) (bool, error) {
	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, addMemberSQL, id, userID).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "tenant", id)
	}
	return exists, nil
}

// SetTimezone stores the tenant's IANA timezone name.
func (r *Repo) SetTimezone(ctx context.Context, id uuid.UUID, tz string) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, setTimezoneSQL, id, tz)
	if err != nil {
		return postgres.MapError(err, "tenant", id)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}
