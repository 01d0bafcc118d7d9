package baby_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/internal/adapter/postgres/baby"
	"github.com/ntotao/baby-tracker/internal/adapter/postgres/testhelper"
	"github.com/ntotao/baby-tracker/internal/domain"
)

func TestRepo_Get_NotFound(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := baby.New(pool)

	_, err := repo.Get(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_Upsert_CreateThenReplace(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := baby.New(pool)
	ctx := context.Background()
	tenant := testhelper.SeedTenant(t, pool)

	birth := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	created, err := repo.Upsert(ctx, &domain.Baby{TenantID: tenant.ID, Name: "Giulia", BirthDate: &birth})
	if err != nil {
		t.Fatalf("Upsert: unexpected error: %v", err)
	}
	if created.Name != "Giulia" {
		t.Errorf("Name = %q, want Giulia", created.Name)
	}
	if created.BirthDate == nil || !created.BirthDate.Equal(birth) {
		t.Errorf("BirthDate = %v, want %v", created.BirthDate, birth)
	}

	updated, err := repo.Upsert(ctx, &domain.Baby{TenantID: tenant.ID, Name: "Giulietta"})
	if err != nil {
		t.Fatalf("Upsert (replace): unexpected error: %v", err)
	}
	if updated.Name != "Giulietta" {
		t.Errorf("Name = %q, want Giulietta", updated.Name)
	}
	if updated.BirthDate != nil {
		t.Errorf("BirthDate = %v, want nil after replace", updated.BirthDate)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed on replace: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}

	got, err := repo.Get(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if got.Name != "Giulietta" {
		t.Errorf("Get Name = %q, want Giulietta", got.Name)
	}
}

func TestRepo_Upsert_NameTooShort(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := baby.New(pool)
	tenant := testhelper.SeedTenant(t, pool)

	_, err := repo.Upsert(context.Background(), &domain.Baby{TenantID: tenant.ID, Name: "G"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation from check constraint, got: %v", err)
	}
}
