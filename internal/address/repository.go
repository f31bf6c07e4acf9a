package address

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gadme-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Address, error)
	Create(ctx context.Context, addr *Address) error
	Update(ctx context.Context, addr *Address) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const addressColumns = `
	id, user_id,
	first_name, last_name, phone,
	line1, building, floor, unit,
	subdistrict, district, province, postal_code,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAddress(row rowScanner) (*Address, error) {
	var a Address
	err := row.Scan(
		&a.ID, &a.UserID,
		&a.FirstName, &a.LastName, &a.Phone,
		&a.Line1, &a.Building, &a.Floor, &a.Unit,
		&a.Subdistrict, &a.District, &a.Province, &a.PostalCode,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "ListByUser"),
		zap.String("user_id", userID.String()),
	)

	rows, err := r.db.QueryContext(ctx,
		`SELECT`+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan address: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Address, error) {
	a, err := scanAddress(r.db.QueryRowContext(ctx,
		`SELECT`+addressColumns+` FROM addresses WHERE id = $1`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

func (r *repository) Create(ctx context.Context, a *Address) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO addresses (
			id, user_id,
			first_name, last_name, phone,
			line1, building, floor, unit,
			subdistrict, district, province, postal_code
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`,
		a.ID, a.UserID,
		a.FirstName, a.LastName, a.Phone,
		a.Line1, a.Building, a.Floor, a.Unit,
		a.Subdistrict, a.District, a.Province, a.PostalCode,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert address",
			zap.String("user_id", a.UserID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("create address: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, a *Address) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE addresses
		SET first_name = $1, last_name = $2, phone = $3,
		    line1 = $4, building = $5, floor = $6, unit = $7,
		    subdistrict = $8, district = $9, province = $10, postal_code = $11,
		    updated_at = NOW()
		WHERE id = $12 AND user_id = $13
		RETURNING updated_at
	`,
		a.FirstName, a.LastName, a.Phone,
		a.Line1, a.Building, a.Floor, a.Unit,
		a.Subdistrict, a.District, a.Province, a.PostalCode,
		a.ID, a.UserID,
	).Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAddressNotFound
	}
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM addresses WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAddressNotFound
	}
	return nil
}
