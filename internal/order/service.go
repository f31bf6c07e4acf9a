package order

import (
	"context"
	"errors"

	"gadme-be/internal/address"
	"gadme-be/internal/apperr"
	"gadme-be/internal/cart"
	"gadme-be/internal/logger"
	"gadme-be/internal/metrics"
	"gadme-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines checkout and order management.
type Service interface {
	Preview(ctx context.Context, userID uuid.UUID) (*Preview, error)
	Checkout(ctx context.Context, in CheckoutInput) (*Summary, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]Order, error)
	UpdatePayment(ctx context.Context, userID, orderID uuid.UUID, in PaymentInput) (*Order, error)
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*Order, error)
}

type service struct {
	repo      Repository
	carts     cart.Service
	addresses address.Service
	pricing   Pricing

	newNumber func() string

	checkoutOK       *metrics.Counter
	checkoutFailed   *metrics.Counter
	checkoutConflict *metrics.Counter
	paymentUpdates   *metrics.Counter
	cancels          *metrics.Counter
}

func NewService(repo Repository, carts cart.Service, addresses address.Service, pricing Pricing) Service {
	return &service{
		repo:             repo,
		carts:            carts,
		addresses:        addresses,
		pricing:          pricing,
		newNumber:        utils.GenerateOrderNumber,
		checkoutOK:       metrics.Default.Counter(metrics.CheckoutSuccess),
		checkoutFailed:   metrics.Default.Counter(metrics.CheckoutFailure),
		checkoutConflict: metrics.Default.Counter(metrics.CheckoutRetryable),
		paymentUpdates:   metrics.Default.Counter(metrics.PaymentUpdates),
		cancels:          metrics.Default.Counter(metrics.OrderCancels),
	}
}

// Preview shows every line that a checkout would turn into an order item.
func (s *service) Preview(ctx context.Context, userID uuid.UUID) (*Preview, error) {
	lines, _, err := s.carts.Read(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, subtotal := snapshotItems(lines)
	p := &Preview{
		Items:      items,
		Subtotal:   subtotal,
		CountLines: len(items),
		Currency:   s.pricing.Currency,
	}
	for _, it := range items {
		p.CountItems += it.Qty
	}
	return p, nil
}

func (s *service) resolveShipping(ctx context.Context, in CheckoutInput) (address.Shipping, error) {
	if in.AddressID == nil {
		return address.Normalize(in.Address), nil
	}
	addr, err := s.addresses.GetForUser(ctx, in.UserID, *in.AddressID)
	if err != nil {
		return address.Shipping{}, err
	}
	return address.Normalize(addr.Shipping), nil
}

// Checkout converts the user's cart into an order. The cart is read, the
// order written and the cart cleared atomically; on any failure nothing
// changes.
func (s *service) Checkout(ctx context.Context, in CheckoutInput) (*Summary, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Order"),
		zap.String("method", "Checkout"),
		zap.String("user_id", in.UserID.String()),
	)

	shipping, err := s.resolveShipping(ctx, in)
	if err != nil {
		s.checkoutFailed.Inc()
		return nil, err
	}

	payment := Payment{
		Method: NormalizePaymentMethod(in.Payment.Method),
		Status: NormalizePaymentStatus(in.Payment.Status),
	}
	if in.Payment.TransactionID != "" {
		payment.TransactionID = utils.StrPtr(in.Payment.TransactionID)
	}

	o, err := s.repo.Checkout(ctx, in.UserID, func(lines []cart.Line) (*Order, error) {
		if len(lines) == 0 {
			return nil, ErrCartEmpty
		}
		if err := address.Validate(shipping); err != nil {
			return nil, err
		}

		items, subtotal := snapshotItems(lines)
		fee, discount, total := s.pricing.Totals(subtotal)
		return &Order{
			ID:              uuid.New(),
			Number:          s.newNumber(),
			UserID:          in.UserID,
			Items:           items,
			Subtotal:        subtotal,
			ShippingFee:     fee,
			Discount:        discount,
			Total:           total,
			Currency:        s.pricing.Currency,
			ShippingAddress: shipping,
			Payment:         payment,
			Status:          StatusForPayment(payment.Status),
		}, nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrRetryable) {
			s.checkoutConflict.Inc()
		}
		s.checkoutFailed.Inc()
		log.Warn("checkout failed", zap.Error(err))
		return nil, err
	}

	s.checkoutOK.Inc()
	log.Info("checkout completed",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.Number),
		zap.Int64("total", o.Total),
	)

	return &Summary{
		OrderID:     o.ID,
		OrderNumber: o.Number,
		Status:      o.Status,
		Amount:      o.Total,
		Currency:    o.Currency,
		CreatedAt:   o.CreatedAt,
	}, nil
}

func (s *service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		logger.FromCtx(ctx).Warn("order owned by another user",
			zap.String("service", "Order"),
			zap.String("order_id", orderID.String()),
		)
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UpdatePayment overwrites the payment record and moves the order between
// pending and paid. Orders that have shipped or been cancelled are frozen.
func (s *service) UpdatePayment(ctx context.Context, userID, orderID uuid.UUID, in PaymentInput) (*Order, error) {
	method, err := ParsePaymentMethod(in.Method)
	if err != nil {
		return nil, ErrInvalidPaymentMethod
	}
	status, err := ParsePaymentStatus(in.Status)
	if err != nil {
		return nil, ErrInvalidPaymentStatus
	}

	o, err := s.repo.UpdateLocked(ctx, orderID, func(o *Order) error {
		if o.UserID != userID {
			return ErrForbidden
		}
		next := StatusForPayment(status)
		if o.Status.Locked() || (next != o.Status && !CanTransition(o.Status, next)) {
			return ErrInvalidState.WithDetail("status", string(o.Status))
		}

		o.Payment = Payment{Method: method, Status: status}
		if in.TransactionID != "" {
			o.Payment.TransactionID = utils.StrPtr(in.TransactionID)
		}
		o.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.paymentUpdates.Inc()
	logger.FromCtx(ctx).Info("order payment updated",
		zap.String("order_id", o.ID.String()),
		zap.String("payment_status", string(o.Payment.Status)),
	)
	return o, nil
}

func (s *service) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*Order, error) {
	o, err := s.repo.UpdateLocked(ctx, orderID, func(o *Order) error {
		if o.UserID != userID {
			return ErrForbidden
		}
		if !CanTransition(o.Status, StatusCancelled) {
			return ErrInvalidState.WithDetail("status", string(o.Status))
		}
		o.Status = StatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cancels.Inc()
	return o, nil
}
