package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gadme-be/internal/cart"
	"gadme-be/internal/db"
	"gadme-be/internal/logger"
	"gadme-be/internal/user"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// BuildFunc turns the locked cart into the order to persist. Returning an
// error aborts the checkout with nothing written.
type BuildFunc func(lines []cart.Line) (*Order, error)

type Repository interface {
	Checkout(ctx context.Context, userID uuid.UUID, build BuildFunc) (*Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	UpdateLocked(ctx context.Context, id uuid.UUID, fn func(o *Order) error) (*Order, error)
}

type repository struct {
	db         *sql.DB
	users      user.Repository
	maxRetries uint64
}

func NewRepository(db *sql.DB, users user.Repository, maxRetries uint64) Repository {
	return &repository{db: db, users: users, maxRetries: maxRetries}
}

var checkoutTxOptions = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

// orderNumberConstraint is the unique index on orders.number.
const orderNumberConstraint = "orders_number_key"

const writeColumns = `
		id, number, user_id, subtotal, shipping_fee, discount, total, currency, status,
		shipping_first_name, shipping_last_name, shipping_phone,
		shipping_line1, shipping_building, shipping_floor, shipping_unit,
		shipping_subdistrict, shipping_district, shipping_province, shipping_postal_code,
		payment_method, payment_status, payment_transaction_id`

const orderColumns = writeColumns + `,
		created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(s rowScanner) (*Order, error) {
	var (
		o      Order
		status string
		method string
		pay    string
		txID   sql.NullString
	)
	sh := &o.ShippingAddress
	err := s.Scan(
		&o.ID, &o.Number, &o.UserID, &o.Subtotal, &o.ShippingFee, &o.Discount, &o.Total, &o.Currency, &status,
		&sh.FirstName, &sh.LastName, &sh.Phone,
		&sh.Line1, &sh.Building, &sh.Floor, &sh.Unit,
		&sh.Subdistrict, &sh.District, &sh.Province, &sh.PostalCode,
		&method, &pay, &txID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if o.Status, err = ParseStatus(status); err != nil {
		return nil, err
	}
	o.Payment.Method = PaymentMethod(method)
	o.Payment.Status = PaymentStatus(pay)
	if txID.Valid {
		o.Payment.TransactionID = &txID.String
	}
	o.Items = []Item{}
	return &o, nil
}

// Checkout locks the user row and the cart, builds the order from the
// locked lines, writes it with its items and empties the cart, all in one
// transaction.
func (r *repository) Checkout(ctx context.Context, userID uuid.UUID, build BuildFunc) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Checkout"),
		zap.String("user_id", userID.String()),
	)

	var created *Order
	err := db.RunInTx(ctx, r.db, checkoutTxOptions, r.maxRetries, func(tx *sql.Tx) error {
		if err := r.users.LockForUpdate(ctx, tx, userID); err != nil {
			return err
		}

		lines, err := cart.QueryLines(ctx, tx, userID, true)
		if err != nil {
			return err
		}

		o, err := build(lines)
		if err != nil {
			return err
		}

		if err := insertOrder(ctx, tx, o); err != nil {
			if db.IsUniqueViolation(err, orderNumberConstraint) {
				// build runs again on the next attempt and draws a new number.
				log.Warn("order number taken, retrying", zap.String("order_number", o.Number))
				return db.Retry(err)
			}
			return err
		}
		if err := insertItems(ctx, tx, o); err != nil {
			return err
		}
		if _, err := cart.ClearLines(ctx, tx, userID); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		log.Debug("checkout transaction aborted", zap.Error(err))
		return nil, err
	}

	log.Info("order persisted",
		zap.String("order_id", created.ID.String()),
		zap.Int("items", len(created.Items)),
	)
	return created, nil
}

func insertOrder(ctx context.Context, q db.Querier, o *Order) error {
	sh := o.ShippingAddress
	txID := nullString(o.Payment.TransactionID)

	query := `
	INSERT INTO orders (` + writeColumns + `
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	RETURNING created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		o.ID, o.Number, o.UserID, o.Subtotal, o.ShippingFee, o.Discount, o.Total, o.Currency, string(o.Status),
		sh.FirstName, sh.LastName, sh.Phone,
		sh.Line1, sh.Building, sh.Floor, sh.Unit,
		sh.Subdistrict, sh.District, sh.Province, sh.PostalCode,
		string(o.Payment.Method), string(o.Payment.Status), txID,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func insertItems(ctx context.Context, q db.Querier, o *Order) error {
	query := `
	INSERT INTO order_items (
		id, order_id, product_id, product_name, product_image, color, price, qty, line_total
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		_, err := q.ExecContext(ctx, query,
			it.ID, o.ID, it.ProductID, it.Name, it.Image, it.Color, it.UnitPrice, it.Qty, it.LineSubtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

const selectItems = `
	SELECT id, order_id, product_id, product_name, product_image, color, price, qty, line_total
	FROM order_items`

// loadItems attaches items to the given orders with a single query.
func loadItems(ctx context.Context, q db.Querier, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID.String())
	}

	rows, err := q.QueryContext(ctx,
		selectItems+"\n\tWHERE order_id = ANY($1::uuid[])\n\tORDER BY order_id, id",
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it      Item
			orderID uuid.UUID
		)
		if err := rows.Scan(
			&it.ID, &orderID, &it.ProductID, &it.Name, &it.Image, &it.Color, &it.UnitPrice, &it.Qty, &it.LineSubtotal,
		); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		"SELECT"+orderColumns+"\n\tFROM orders WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to get order",
			zap.String("order_id", id.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := loadItems(ctx, r.db, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ListByUser returns the user's orders, newest first, with their items.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT"+orderColumns+"\n\tFROM orders WHERE user_id = $1\n\tORDER BY created_at DESC, id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var ptrs []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		ptrs = append(ptrs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if err := loadItems(ctx, r.db, ptrs); err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(ptrs))
	for _, o := range ptrs {
		orders = append(orders, *o)
	}
	return orders, nil
}

// UpdateLocked loads the order row FOR UPDATE, lets fn mutate its status and
// payment, and writes them back. An error from fn rolls everything back.
func (r *repository) UpdateLocked(ctx context.Context, id uuid.UUID, fn func(o *Order) error) (*Order, error) {
	var updated *Order
	err := db.RunInTx(ctx, r.db, nil, r.maxRetries, func(tx *sql.Tx) error {
		o, err := scanOrder(tx.QueryRowContext(ctx,
			"SELECT"+orderColumns+"\n\tFROM orders WHERE id = $1\n\tFOR UPDATE", id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}

		if err := fn(o); err != nil {
			return err
		}

		txID := nullString(o.Payment.TransactionID)
		err = tx.QueryRowContext(ctx, `
	UPDATE orders
	SET status = $1,
	    payment_method = $2,
	    payment_status = $3,
	    payment_transaction_id = $4,
	    updated_at = NOW()
	WHERE id = $5
	RETURNING updated_at
	`,
			string(o.Status), string(o.Payment.Method), string(o.Payment.Status), txID, o.ID,
		).Scan(&o.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		if err := loadItems(ctx, tx, []*Order{o}); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
