package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"gadme-be/internal/cart"
	"gadme-be/internal/transport"
	"gadme-be/internal/utils"

	"github.com/google/uuid"
)

// metaResponse keeps the legacy count field next to the totals.
type metaResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message,omitempty"`
	cart.Totals
	Count int `json:"count"`
}

func newMeta(message string, t cart.Totals) metaResponse {
	return metaResponse{Message: message, Totals: t, Count: t.CountItems}
}

type cartResponse struct {
	CartItems []cart.Line `json:"cartItems"`
	metaResponse
}

type addCartRequest struct {
	ProductID     string `json:"product_id" validate:"required,uuid"`
	ProductColor  string `json:"product_color"`
	ProductQty    *int   `json:"product_qty"`
	ProductStatus string `json:"product_status"`
}

type setQtyRequest struct {
	ProductQty json.Number `json:"product_qty"`
}

// qty accepts only whole numbers >= 1; fractions and overflow are rejected.
func (req setQtyRequest) qty() (int, error) {
	n, err := strconv.ParseInt(req.ProductQty.String(), 10, 32)
	if err != nil || n < 1 {
		return 0, cart.ErrInvalidQuantity
	}
	return int(n), nil
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	lines, totals, err := h.CartSvc.Read(r.Context(), userID)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, cartResponse{
		CartItems:    lines,
		metaResponse: newMeta("Get cart successfully!", totals),
	})
}

func (h *Handler) GetCartMeta(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	totals, err := h.CartSvc.Meta(r.Context(), userID)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, newMeta("", totals))
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	var req addCartRequest
	if err := transport.Bind(r, &req); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	params := cart.AddItemParams{
		UserID:    userID,
		ProductID: uuid.MustParse(req.ProductID),
		Color:     req.ProductColor,
		Qty:       1,
		Status:    cart.StatusSelected,
	}
	if req.ProductQty != nil {
		params.Qty = *req.ProductQty
	}
	if req.ProductStatus != "" {
		params.Status = cart.LineStatus(req.ProductStatus)
	}

	res, err := h.CartSvc.AddItem(r.Context(), params)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	msg := "Added to cart"
	if res.Merged {
		msg = "Increased quantity"
	}
	transport.WriteJSON(w, http.StatusCreated, newMeta(msg, res.Totals))
}

func (h *Handler) SetQty(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	lineID, err := pathID(r, "lineId")
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	var req setQtyRequest
	if err := transport.Decode(r, &req); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	qty, err := req.qty()
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	totals, err := h.CartSvc.SetQty(r.Context(), userID, lineID, qty)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, newMeta("Quantity updated", totals))
}

func (h *Handler) IncreaseQty(w http.ResponseWriter, r *http.Request) {
	h.stepQty(w, r, h.CartSvc.IncrementQty, "Quantity increased")
}

func (h *Handler) DecreaseQty(w http.ResponseWriter, r *http.Request) {
	h.stepQty(w, r, h.CartSvc.DecrementQty, "Quantity decreased")
}

type stepFunc func(ctx context.Context, userID, lineID uuid.UUID, step int) (cart.Totals, error)

func (h *Handler) stepQty(w http.ResponseWriter, r *http.Request, fn stepFunc, message string) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	lineID, err := pathID(r, "lineId")
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	step := utils.ParseStep(r.URL.Query().Get("step"))
	totals, err := fn(r.Context(), userID, lineID, step)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, newMeta(message, totals))
}

func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	lineID, err := pathID(r, "lineId")
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	totals, err := h.CartSvc.RemoveLine(r.Context(), userID, lineID)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, newMeta("Item removed", totals))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	totals, err := h.CartSvc.ClearCart(r.Context(), userID)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, newMeta("Cart cleared", totals))
}
