package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/andeshop/tienda-api/internal/common"
)

// Handler exposes cart endpoints for the authenticated buyer.
type Handler struct {
	Svc *Service
}

// Get returns the buyer's cart lines and subtotal.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := authedUser(w, r)
	if !ok {
		return
	}
	items, err := h.Svc.Items(r.Context(), uid)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load cart", nil)
		return
	}
	var subtotal int64
	for _, item := range items {
		subtotal += item.Subtotal
	}
	common.JSONData(w, http.StatusOK, map[string]any{
		"items":    items,
		"subtotal": subtotal,
	})
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// AddItem inserts or increments a cart line.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := authedUser(w, r)
	if !ok {
		return
	}
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	if err := h.Svc.AddItem(r.Context(), uid, productID, req.Qty); err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to add item", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateItemRequest struct {
	Qty int `json:"qty"`
}

// UpdateItem changes a cart line's quantity.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := authedUser(w, r)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.Svc.UpdateQty(r.Context(), uid, itemID, req.Qty); err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart item not found", nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to update item", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveItem deletes a cart line.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := authedUser(w, r)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	if err := h.Svc.RemoveItem(r.Context(), uid, itemID); err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to remove item", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func authedUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return uuid.Nil, false
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user identity", nil)
		return uuid.Nil, false
	}
	return uid, true
}
