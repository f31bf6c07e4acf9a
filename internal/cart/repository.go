package cart

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
	ListLines(ctx context.Context, userID uuid.UUID) ([]Line, error)
	GetLine(ctx context.Context, userID, lineID uuid.UUID) (*Line, error)
	UpsertLine(ctx context.Context, params UpsertLineParams) (merged bool, err error)
	SetQty(ctx context.Context, userID, lineID uuid.UUID, qty int) error
	IncrementQty(ctx context.Context, userID, lineID uuid.UUID, step int) error
	DecrementQty(ctx context.Context, userID, lineID uuid.UUID, step int) error
	RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListLines(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	return QueryLines(ctx, r.db, userID, false)
}

func (r *repository) GetLine(ctx context.Context, userID, lineID uuid.UUID) (*Line, error) {
	var row lineRow
	err := r.db.QueryRowContext(ctx, selectLines+" AND cl.id = $2", userID, lineID).
		Scan(row.scanDest()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cart line: %w", err)
	}

	line, err := mergeSnapshot(row)
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// UpsertLine inserts a line or, when the (user, product, color) line exists,
// adds to its quantity and refreshes the snapshot in the same statement.
func (r *repository) UpsertLine(ctx context.Context, p UpsertLineParams) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpsertLine"),
		zap.String("user_id", p.UserID.String()),
		zap.String("product_id", p.ProductID.String()),
	)

	query := `
	INSERT INTO cart_lines (
		id, user_id, product_id, product_color, qty, status, price, name, image
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (user_id, product_id, product_color) DO UPDATE
	SET qty = cart_lines.qty + EXCLUDED.qty,
	    status = EXCLUDED.status,
	    price = EXCLUDED.price,
	    name = EXCLUDED.name,
	    image = EXCLUDED.image,
	    updated_at = NOW()
	RETURNING (xmax <> 0) AS merged
	`

	var merged bool
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.UserID, p.ProductID, p.Color, p.Qty, string(p.Status), p.Price, p.Name, p.Image,
	).Scan(&merged)
	if err != nil {
		log.Error("failed to upsert cart line", zap.Error(err))
		return false, fmt.Errorf("upsert cart line: %w", err)
	}

	log.Debug("cart line upserted", zap.Bool("merged", merged), zap.Int("qty", p.Qty))
	return merged, nil
}

func (r *repository) SetQty(ctx context.Context, userID, lineID uuid.UUID, qty int) error {
	return r.updateLine(ctx, "SetQty", `
		UPDATE cart_lines
		SET qty = $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
	`, qty, string(StatusSelected), lineID, userID)
}

func (r *repository) IncrementQty(ctx context.Context, userID, lineID uuid.UUID, step int) error {
	return r.updateLine(ctx, "IncrementQty", `
		UPDATE cart_lines
		SET qty = qty + $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
	`, step, string(StatusSelected), lineID, userID)
}

// DecrementQty never takes a line below 1.
func (r *repository) DecrementQty(ctx context.Context, userID, lineID uuid.UUID, step int) error {
	return r.updateLine(ctx, "DecrementQty", `
		UPDATE cart_lines
		SET qty = GREATEST(1, qty - $1), status = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
	`, step, string(StatusSelected), lineID, userID)
}

func (r *repository) updateLine(ctx context.Context, method, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update cart line",
			zap.String("layer", "repository"),
			zap.String("method", method),
			zap.Error(err),
		)
		return fmt.Errorf("update cart line: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrLineNotFound
	}
	return nil
}

// RemoveLine succeeds whether or not the line exists.
func (r *repository) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_lines WHERE id = $1 AND user_id = $2`,
		lineID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}
	return nil
}

func (r *repository) ClearCart(ctx context.Context, userID uuid.UUID) error {
	_, err := ClearLines(ctx, r.db, userID)
	return err
}
