package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// TenantStore is the tenant registry backed by SQLite. allowed_users is a
// JSON array of chat user ids.
type TenantStore struct {
	db *sql.DB
}

// NewTenantStore creates a tenant store.
func NewTenantStore(db *sql.DB) *TenantStore {
	return &TenantStore{db: db}
}

const tenantColumns = `id, admin_user_id, allowed_users, timezone, is_premium, created_at`

const insertTenantSQL = `
INSERT INTO tenants (id, admin_user_id, allowed_users, timezone, is_premium, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

// addMemberSQL appends only when the id is not present yet.
const addMemberSQL = `
UPDATE tenants
SET allowed_users = json_insert(allowed_users, '$[#]', ?)
WHERE id = ? AND NOT EXISTS (
    SELECT 1 FROM json_each(tenants.allowed_users) WHERE value = ?
)`

const tenantExistsSQL = `SELECT EXISTS(SELECT 1 FROM tenants WHERE id = ?)`

// GetByID returns the tenant with the given id.
func (s *TenantStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = ?`, id)
	t, err := scanTenant(row)
	if err != nil {
		return nil, mapError(err, "tenant", id)
	}
	return t, nil
}

// GetByAdmin returns the tenant created by userID.
func (s *TenantStore) GetByAdmin(ctx context.Context, userID int64) (*domain.Tenant, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE admin_user_id = ?`, userID)
	t, err := scanTenant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTenantNotFound
	}
	if err != nil {
		return nil, mapError(err, "tenant of user", userID)
	}
	return t, nil
}

// Create inserts a new tenant.
func (s *TenantStore) Create(ctx context.Context, t *domain.Tenant) error {
	allowed := t.AllowedUsers
	if allowed == nil {
		allowed = []int64{}
	}
	raw, err := json.Marshal(allowed)
	if err != nil {
		return fmt.Errorf("marshal allowed users: %w", err)
	}

	_, err = s.db.ExecContext(ctx, insertTenantSQL,
		t.ID, t.AdminUserID, string(raw), t.Timezone, t.IsPremium, toMicros(t.CreatedAt),
	)
	return mapError(err, "tenant", t.ID)
}

// AddMember appends userID to the allowed set. Returns false when the
// tenant does not exist.
func (s *TenantStore) AddMember(ctx context.Context, id uuid.UUID, userID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, addMemberSQL, userID, id, userID)
	if err != nil {
		return false, mapError(err, "tenant", id)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return true, nil
	}

	// Nothing updated: either already a member or no such tenant.
	var exists bool
	if err := s.db.QueryRowContext(ctx, tenantExistsSQL, id).Scan(&exists); err != nil {
		return false, mapError(err, "tenant", id)
	}
	return exists, nil
}

// SetTimezone stores the tenant's IANA timezone name.
func (s *TenantStore) SetTimezone(ctx context.Context, id uuid.UUID, tz string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tenants SET timezone = ? WHERE id = ?`, tz, id)
	if err != nil {
		return mapError(err, "tenant", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

func scanTenant(row *sql.Row) (*domain.Tenant, error) {
	var (
		t         domain.Tenant
		allowed   string
		createdAt int64
	)
	if err := row.Scan(&t.ID, &t.AdminUserID, &allowed, &t.Timezone, &t.IsPremium, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(allowed), &t.AllowedUsers); err != nil {
		return nil, fmt.Errorf("unmarshal allowed users: %w", err)
	}
	t.CreatedAt = fromMicros(createdAt)
	return &t, nil
}
