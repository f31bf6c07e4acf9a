package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LineStatus marks whether a line is considered for the cart summary.
type LineStatus string

const (
	StatusSelected LineStatus = "Selected"
	StatusCheckout LineStatus = "Checkout"
)

func ParseLineStatus(s string) (LineStatus, error) {
	switch LineStatus(s) {
	case StatusSelected:
		return StatusSelected, nil
	case StatusCheckout:
		return StatusCheckout, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Line is one (product, color) entry in a user's cart. Price, Name and
// Image are the merged snapshot: stored values first, live product values
// only where nothing was stored.
type Line struct {
	ID        uuid.UUID  `json:"id"`
	ProductID uuid.UUID  `json:"product_id"`
	Color     string     `json:"product_color"`
	Qty       int        `json:"product_qty"`
	Status    LineStatus `json:"product_status"`
	Price     int64      `json:"product_price"`
	Name      string     `json:"product_name"`
	Image     string     `json:"product_image"`
	// Stock is the live product stock; nil when untracked.
	Stock     *int      `json:"stock,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l Line) Subtotal() int64 {
	return l.Price * int64(l.Qty)
}

type Totals struct {
	CountItems int   `json:"count_items"`
	CountLines int   `json:"count_lines"`
	Subtotal   int64 `json:"subtotal"`
}

type AddItemParams struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Color     string
	Qty       int
	Status    LineStatus
}

type AddResult struct {
	Totals Totals
	// Merged is true when an existing line absorbed the quantity.
	Merged bool
	Added  int
}

type UpsertLineParams struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Color     string
	Qty       int
	Status    LineStatus
	Price     int64
	Name      string
	Image     string
}
