package order

import (
	"fmt"
	"time"

	"gadme-be/internal/address"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Locked reports whether the order no longer accepts payment edits.
func (s Status) Locked() bool {
	switch s {
	case StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled, StatusShipped},
	StatusPaid:    {StatusPending, StatusCancelled, StatusShipped},
	StatusShipped: {StatusDelivered},
}

// CanTransition reports whether an order may move from one status to
// another. Nothing leaves delivered or cancelled.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCOD          PaymentMethod = "cod"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCreditCard, PaymentBankTransfer, PaymentCOD:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
}

// NormalizePaymentMethod falls back to credit_card for absent or unknown input.
func NormalizePaymentMethod(s string) PaymentMethod {
	if m, err := ParsePaymentMethod(s); err == nil {
		return m
	}
	return PaymentCreditCard
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch ps := PaymentStatus(s); ps {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return ps, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, s)
}

// NormalizePaymentStatus falls back to pending for absent or unknown input.
func NormalizePaymentStatus(s string) PaymentStatus {
	if ps, err := ParsePaymentStatus(s); err == nil {
		return ps
	}
	return PaymentPending
}

// StatusForPayment derives the order status from its payment status.
func StatusForPayment(ps PaymentStatus) Status {
	if ps == PaymentPaid {
		return StatusPaid
	}
	return StatusPending
}

type Payment struct {
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	TransactionID *string       `json:"transactionId,omitempty"`
}

// Item is an immutable copy of a cart line taken at checkout.
type Item struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"product_name"`
	Image        string    `json:"product_image"`
	Color        string    `json:"product_color"`
	Qty          int       `json:"product_qty"`
	UnitPrice    int64     `json:"product_price"`
	LineSubtotal int64     `json:"product_subtotal"`
}

type Order struct {
	ID              uuid.UUID        `json:"id"`
	Number          string           `json:"order_number"`
	UserID          uuid.UUID        `json:"user_id"`
	Items           []Item           `json:"order_items"`
	Subtotal        int64            `json:"order_subtotal"`
	ShippingFee     int64            `json:"order_shippingFee"`
	Discount        int64            `json:"order_discount"`
	Total           int64            `json:"order_total"`
	Currency        string           `json:"currency"`
	ShippingAddress address.Shipping `json:"order_shipping_address"`
	Payment         Payment          `json:"order_payment"`
	Status          Status           `json:"order_status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Summary is returned by a successful checkout.
type Summary struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      Status    `json:"order_status"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
}

// Preview is the checkout view of the current cart.
type Preview struct {
	Items      []Item `json:"items"`
	Subtotal   int64  `json:"subtotal"`
	CountItems int    `json:"count_items"`
	CountLines int    `json:"count_lines"`
	Currency   string `json:"currency"`
}

type PaymentInput struct {
	Method        string `json:"method"`
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
}

type CheckoutInput struct {
	UserID uuid.UUID
	// Address is used when AddressID is nil.
	Address   address.Shipping
	AddressID *uuid.UUID
	Payment   PaymentInput
}
