package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var (
		p     Product
		stock sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, image, colors, price, stock, is_active
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Image, pq.Array(&p.Colors), &p.Price, &stock, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if stock.Valid {
		n := int(stock.Int64)
		p.Stock = &n
	}
	return &p, nil
}
