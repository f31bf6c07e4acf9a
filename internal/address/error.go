package address

import (
	"errors"

	"gadme-be/internal/apperr"
	"gadme-be/internal/transport"
)

var (
	ErrAddressInvalid  = apperr.New(apperr.KindInvalidArgument, "ADDRESS_INVALID", "Your shipping details are required")
	ErrAddressNotFound = apperr.New(apperr.KindNotFound, "ADDRESS_NOT_FOUND", "Address not found")
)

// Validate fails with ErrAddressInvalid naming the first missing field.
func Validate(s Shipping) error {
	err := transport.Validate(s)
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return err
	}
	return ErrAddressInvalid.
		WithMessage(appErr.Message).
		WithDetail("field", appErr.Details["field"])
}
