package api

import (
	"net/http"

	"gadme-be/internal/address"
	"gadme-be/internal/transport"
)

type addressResponse struct {
	Error   bool   `json:"error"`
	Address any    `json:"address"`
	Message string `json:"message"`
}

func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	list, err := h.AddressSvc.List(r.Context(), userID)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	if list == nil {
		list = []address.Address{}
	}
	transport.WriteJSON(w, http.StatusOK, addressResponse{Address: list, Message: "Address retrieved successfully"})
}

func (h *Handler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	var in address.Shipping
	if err := transport.Decode(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	addr, err := h.AddressSvc.Create(r.Context(), userID, in)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, addressResponse{Address: addr, Message: "Address created successfully"})
}

func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	addressID, err := pathID(r, "addressId")
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	var in address.UpdateInput
	if err := transport.Decode(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	addr, err := h.AddressSvc.Update(r.Context(), userID, addressID, in)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, addressResponse{Address: addr, Message: "Address updated successfully"})
}

func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	addressID, err := pathID(r, "addressId")
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	addr, err := h.AddressSvc.Delete(r.Context(), userID, addressID)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, addressResponse{Address: addr, Message: "Address deleted successfully"})
}
