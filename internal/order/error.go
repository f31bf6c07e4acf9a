package order

import "gadme-be/internal/apperr"

var (
	ErrCartEmpty     = apperr.New(apperr.KindCartEmpty, "CART_EMPTY", "Cart is empty.")
	ErrOrderNotFound = apperr.New(apperr.KindNotFound, "ORDER_NOT_FOUND", "Order not found")
	ErrForbidden     = apperr.ErrForbidden.WithMessage("You are not allowed to access this order")
	ErrInvalidState  = apperr.New(apperr.KindInvalidState, "INVALID_STATE", "Order can't be updated in current status")

	ErrInvalidPaymentMethod = apperr.New(apperr.KindInvalidArgument, "INVALID_PAYMENT_METHOD", "payment method must be one of [credit_card bank_transfer cod]")
	ErrInvalidPaymentStatus = apperr.New(apperr.KindInvalidArgument, "INVALID_PAYMENT_STATUS", "payment status must be one of [pending paid failed]")
)
