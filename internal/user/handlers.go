package user

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/andeshop/tienda-api/internal/common"
)

// Handler exposes buyer profile endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

// Get returns the authenticated buyer's profile.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := authedUser(w, r)
	if !ok {
		return
	}
	profile, err := h.Svc.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "profile not configured", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load profile", nil)
		return
	}
	common.JSONData(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	Province    string `json:"province" validate:"omitempty,max=80"`
	City        string `json:"city" validate:"omitempty,max=80"`
	AddressLine string `json:"addressLine" validate:"omitempty,max=255"`
}

// Update stores the authenticated buyer's profile fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := authedUser(w, r)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid profile payload", err.Error())
		return
	}
	profile, err := h.Svc.Update(r.Context(), uid, ProfileInput{
		Phone:       req.Phone,
		Province:    req.Province,
		City:        req.City,
		AddressLine: req.AddressLine,
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to update profile", nil)
		return
	}
	common.JSONData(w, http.StatusOK, profile)
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
