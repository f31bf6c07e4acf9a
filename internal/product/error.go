package product

import "gadme-be/internal/apperr"

var ErrProductNotFound = apperr.New(apperr.KindNotFound, "PRODUCT_NOT_FOUND", "Product not found")
