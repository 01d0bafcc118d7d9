package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// constraintErrors maps integrity violations to the domain sentinel callers
// branch on.
var constraintErrors = map[string]error{
	pgerrcode.UniqueViolation:     domain.ErrAlreadyExists,
	pgerrcode.ForeignKeyViolation: domain.ErrNotFound,
	pgerrcode.CheckViolation:      domain.ErrValidation,
	pgerrcode.NotNullViolation:    domain.ErrValidation,
}

// MapError translates a driver error on entity/key into the domain error
// vocabulary. Context cancellation is returned as is.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}
	where := fmt.Sprintf("%s %v", entity, key)

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", where, err)
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", where, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if sentinel, known := constraintErrors[pgErr.Code]; known {
			return fmt.Errorf("%s: %w", where, sentinel)
		}
		if pgerrcode.IsConnectionException(pgErr.Code) ||
			(pgerrcode.IsOperatorIntervention(pgErr.Code) && pgErr.Code != pgerrcode.QueryCanceled) {
			return fmt.Errorf("%s: %w: %v", where, domain.ErrStorageUnavailable, err)
		}
		return fmt.Errorf("%s: %w", where, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w: %v", where, domain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", where, err)
}
