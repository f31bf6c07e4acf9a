package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gadme-be/internal/db"

	"github.com/google/uuid"
)

// Repository exposes the slice of the user store the checkout core needs.
type Repository interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	LockForUpdate(ctx context.Context, q db.Querier, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)",
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return exists, nil
}

// LockForUpdate takes the user row lock inside q's transaction. Checkouts for
// the same user queue on this lock.
func (r *repository) LockForUpdate(ctx context.Context, q db.Querier, id uuid.UUID) error {
	var locked uuid.UUID
	err := q.QueryRowContext(ctx,
		"SELECT id FROM users WHERE id = $1 FOR UPDATE",
		id,
	).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("lock user: %w", err)
	}
	return nil
}
