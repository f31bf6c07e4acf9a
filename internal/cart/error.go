package cart

import (
	"fmt"

	"gadme-be/internal/apperr"
)

var (
	// -- Validation & Input --
	ErrInvalidQuantity = apperr.New(apperr.KindInvalidArgument, "INVALID_QUANTITY", "product_qty must be an integer >= 1")
	ErrInvalidStep     = apperr.New(apperr.KindInvalidArgument, "INVALID_STEP", "step must be an integer >= 1")
	ErrInvalidColor    = apperr.New(apperr.KindInvalidArgument, "INVALID_COLOR", "Invalid product color")
	ErrInvalidStatus   = apperr.New(apperr.KindInvalidArgument, "INVALID_STATUS", "product_status must be Selected or Checkout")

	// -- Resource State --
	ErrLineNotFound  = apperr.New(apperr.KindNotFound, "CART_ITEM_NOT_FOUND", "Cart item not found")
	ErrStockExceeded = apperr.New(apperr.KindStockExceeded, "STOCK_EXCEEDED", "Quantity exceeds stock")
)

func stockExceeded(available int) error {
	return ErrStockExceeded.
		WithMessage(fmt.Sprintf("Quantity exceeds stock (%d)", available)).
		WithDetail("available", available)
}
