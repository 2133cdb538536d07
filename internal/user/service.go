package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/andeshop/tienda-api/internal/shipping"
)

// ErrNotFound indicates the buyer has no stored profile.
var ErrNotFound = errors.New("profile not found")

// Profile is the buyer's stored contact and location data. Province and City
// feed the shipping estimate and may be blank.
type Profile struct {
	UserID      uuid.UUID `json:"userId"`
	Phone       string    `json:"phone,omitempty"`
	Province    string    `json:"province,omitempty"`
	City        string    `json:"city,omitempty"`
	AddressLine string    `json:"addressLine,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProfileInput captures the payload for updating a profile.
type ProfileInput struct {
	Phone       string
	Province    string
	City        string
	AddressLine string
}

// Store persists buyer profiles.
type Store interface {
	ProfileByUser(ctx context.Context, userID uuid.UUID) (Profile, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (Profile, error)
}

// Service orchestrates buyer profile operations.
type Service struct {
	Store Store
}

// Get returns the buyer's profile or ErrNotFound.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (Profile, error) {
	if s == nil || s.Store == nil {
		return Profile{}, errors.New("user service not configured")
	}
	return s.Store.ProfileByUser(ctx, userID)
}

// Update stores the provided profile fields, trimming surrounding whitespace.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, input ProfileInput) (Profile, error) {
	if s == nil || s.Store == nil {
		return Profile{}, errors.New("user service not configured")
	}
	input.Phone = strings.TrimSpace(input.Phone)
	input.Province = strings.TrimSpace(input.Province)
	input.City = strings.TrimSpace(input.City)
	input.AddressLine = strings.TrimSpace(input.AddressLine)
	return s.Store.UpsertProfile(ctx, userID, input)
}

// Location implements shipping.LocationSource. A buyer without a profile
// resolves to a blank location so the estimator can apply its warning policy.
func (s *Service) Location(ctx context.Context, userID uuid.UUID) (shipping.BuyerLocation, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return shipping.BuyerLocation{}, nil
		}
		return shipping.BuyerLocation{}, err
	}
	return shipping.BuyerLocation{Province: profile.Province, City: profile.City}, nil
}
