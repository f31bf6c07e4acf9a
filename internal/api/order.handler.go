package api

import (
	"net/http"
	"time"

	"gadme-be/internal/address"
	"gadme-be/internal/order"
	"gadme-be/internal/transport"

	"github.com/google/uuid"
)

type checkoutRequest struct {
	Address   *address.Shipping  `json:"address"`
	AddressID string             `json:"address_id"`
	Payment   order.PaymentInput `json:"payment"`
}

type paymentResponse struct {
	OrderID   uuid.UUID     `json:"order_id"`
	Status    order.Status  `json:"order_status"`
	Payment   order.Payment `json:"order_payment"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (h *Handler) CheckoutPreview(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	p, err := h.OrderSvc.Preview(r.Context(), userID)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, p)
}

// Checkout validates the address itself so an empty cart is reported
// before a bad address.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	var req checkoutRequest
	if err := transport.Decode(r, &req); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	in := order.CheckoutInput{UserID: userID, Payment: req.Payment}
	if req.Address != nil {
		in.Address = *req.Address
	}
	if req.AddressID != "" {
		id, err := uuid.Parse(req.AddressID)
		if err != nil {
			transport.WriteError(r.Context(), w, errInvalidID.
				WithMessage("Invalid address_id").
				WithDetail("field", "address_id"))
			return
		}
		in.AddressID = &id
	}

	sum, err := h.OrderSvc.Checkout(r.Context(), in)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, sum)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	orders, err := h.OrderSvc.ListOrders(r.Context(), userID)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	transport.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	orderID, err := pathID(r, "orderId")
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	o, err := h.OrderSvc.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	orderID, err := pathID(r, "orderId")
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	var in order.PaymentInput
	if err := transport.Decode(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	o, err := h.OrderSvc.UpdatePayment(r.Context(), userID, orderID, in)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, paymentResponse{
		OrderID:   o.ID,
		Status:    o.Status,
		Payment:   o.Payment,
		UpdatedAt: o.UpdatedAt,
	})
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	orderID, err := pathID(r, "orderId")
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	o, err := h.OrderSvc.CancelOrder(r.Context(), userID, orderID)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Order cancelled",
		"order":   o,
	})
}
