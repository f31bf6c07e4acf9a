// Package api exposes the cart, checkout, order and address services over
// HTTP.
package api

import (
	"fmt"
	"net/http"

	"gadme-be/internal/address"
	"gadme-be/internal/apperr"
	"gadme-be/internal/auth"
	"gadme-be/internal/cart"
	"gadme-be/internal/order"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Handler struct {
	CartSvc    cart.Service
	OrderSvc   order.Service
	AddressSvc address.Service
}

func NewHandler(cartSvc cart.Service, orderSvc order.Service, addressSvc address.Service) *Handler {
	return &Handler{
		CartSvc:    cartSvc,
		OrderSvc:   orderSvc,
		AddressSvc: addressSvc,
	}
}

var errInvalidID = apperr.New(apperr.KindInvalidArgument, "INVALID_ID", "Invalid id")

// currentUser returns the authenticated user. Handlers never fall back to a
// default identity.
func currentUser(r *http.Request) (uuid.UUID, error) {
	id, ok := auth.UserIDFrom(r.Context())
	if !ok {
		return uuid.Nil, apperr.ErrUnauthenticated
	}
	return id, nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, errInvalidID.
			WithMessage(fmt.Sprintf("Invalid %s", name)).
			WithDetail("field", name)
	}
	return id, nil
}
