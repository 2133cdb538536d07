package favorites

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/andeshop/tienda-api/internal/common"
)

// Handler exposes favorites endpoints for the authenticated buyer.
type Handler struct {
	Svc *Service
}

// List returns the buyer's saved products.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := authedUser(w, r)
	if !ok {
		return
	}
	favs, err := h.Svc.List(r.Context(), uid)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load favorites", nil)
		return
	}
	common.JSONData(w, http.StatusOK, favs)
}

// Toggle flips the favorite mark on a product.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	uid, ok := authedUser(w, r)
	if !ok {
		return
	}
	productID, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	favorited, err := h.Svc.Toggle(r.Context(), uid, productID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to toggle favorite", nil)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]any{"favorited": favorited})
}

// Check reports whether a product is favorited.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	uid, ok := authedUser(w, r)
	if !ok {
		return
	}
	productID, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	favorited, err := h.Svc.Check(r.Context(), uid, productID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to check favorite", nil)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]any{"favorited": favorited})
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
