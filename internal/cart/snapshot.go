package cart

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gadme-be/internal/db"

	"github.com/google/uuid"
)

const selectLines = `
	SELECT
		cl.id,
		cl.product_id,
		cl.product_color,
		cl.qty,
		cl.status,
		cl.price,
		cl.name,
		cl.image,
		cl.created_at,
		cl.updated_at,
		p.name,
		p.image,
		p.price,
		p.stock
	FROM cart_lines cl
	LEFT JOIN products p ON p.id = cl.product_id
	WHERE cl.user_id = $1`

// lineRow is a cart line as stored plus the live product columns.
type lineRow struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Color     string
	Qty       int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time

	StoredPrice sql.NullInt64
	StoredName  sql.NullString
	StoredImage sql.NullString

	LivePrice sql.NullInt64
	LiveName  sql.NullString
	LiveImage sql.NullString
	LiveStock sql.NullInt64
}

func (r *lineRow) scanDest() []any {
	return []any{
		&r.ID, &r.ProductID, &r.Color, &r.Qty, &r.Status,
		&r.StoredPrice, &r.StoredName, &r.StoredImage,
		&r.CreatedAt, &r.UpdatedAt,
		&r.LiveName, &r.LiveImage, &r.LivePrice, &r.LiveStock,
	}
}

// mergeSnapshot resolves a line's display fields. A stored value always
// wins; the live product only fills fields that were never stored.
func mergeSnapshot(r lineRow) (Line, error) {
	status, err := ParseLineStatus(r.Status)
	if err != nil {
		return Line{}, err
	}

	l := Line{
		ID:        r.ID,
		ProductID: r.ProductID,
		Color:     r.Color,
		Qty:       r.Qty,
		Status:    status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	switch {
	case r.StoredPrice.Valid:
		l.Price = r.StoredPrice.Int64
	case r.LivePrice.Valid:
		l.Price = r.LivePrice.Int64
	}
	switch {
	case r.StoredName.Valid:
		l.Name = r.StoredName.String
	case r.LiveName.Valid:
		l.Name = r.LiveName.String
	}
	switch {
	case r.StoredImage.Valid:
		l.Image = r.StoredImage.String
	case r.LiveImage.Valid:
		l.Image = r.LiveImage.String
	}
	if r.LiveStock.Valid {
		n := int(r.LiveStock.Int64)
		l.Stock = &n
	}

	return l, nil
}

// Summarize computes totals over Selected lines only.
func Summarize(lines []Line) Totals {
	var t Totals
	for _, l := range lines {
		if l.Status != StatusSelected {
			continue
		}
		t.CountItems += l.Qty
		t.CountLines++
		t.Subtotal += l.Subtotal()
	}
	return t
}

// QueryLines reads a user's cart through q, which may be a transaction.
// With forUpdate the cart rows stay locked until q commits.
func QueryLines(ctx context.Context, q db.Querier, userID uuid.UUID, forUpdate bool) ([]Line, error) {
	query := selectLines + "\n\tORDER BY cl.created_at, cl.id"
	if forUpdate {
		query += "\n\tFOR UPDATE OF cl"
	}

	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}
	defer rows.Close()

	lines := make([]Line, 0)
	for rows.Next() {
		var r lineRow
		if err := rows.Scan(r.scanDest()...); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		l, err := mergeSnapshot(r)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart lines: %w", err)
	}

	return lines, nil
}

// ClearLines deletes every line of the user's cart through q.
func ClearLines(ctx context.Context, q db.Querier, userID uuid.UUID) (int64, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear cart lines: %w", err)
	}
	return res.RowsAffected()
}
