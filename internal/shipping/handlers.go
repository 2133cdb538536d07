package shipping

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/andeshop/tienda-api/internal/common"
	"github.com/andeshop/tienda-api/internal/obs"
)

// CartSource provides the buyer's current cart snapshot.
type CartSource interface {
	Snapshot(ctx context.Context, userID uuid.UUID) ([]Line, error)
}

// LocationSource provides the buyer's registered location. A buyer without a
// stored profile resolves to a blank location, not an error.
type LocationSource interface {
	Location(ctx context.Context, userID uuid.UUID) (BuyerLocation, error)
}

// Handler serves shipping estimates for the authenticated buyer.
type Handler struct {
	Est       *Estimator
	Carts     CartSource
	Locations LocationSource
	Log       zerolog.Logger
}

type estimateLine struct {
	VendedorID string `json:"vendedorId"`
	Provincia  string `json:"provincia"`
	Ciudad     string `json:"ciudad"`
	Precio     Money  `json:"precio"`
	Items      int    `json:"items"`
}

type estimateResponse struct {
	TotalEnvio Money          `json:"totalEnvio"`
	Detalle    []estimateLine `json:"detalle"`
	Warning    string         `json:"warning,omitempty"`
}

// Estimate computes the shipping estimate for the caller's cart and location.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	if h.Est == nil || h.Carts == nil || h.Locations == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "shipping estimator not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user identity", nil)
		return
	}
	ctx := r.Context()

	loc, err := h.Locations.Location(ctx, uid)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load buyer profile", nil)
		return
	}

	lines, err := h.Carts.Snapshot(ctx, uid)
	if err != nil {
		// Broken session data fails open to an empty cart so the checkout
		// flow keeps moving; the estimate degrades to zero.
		h.Log.Warn().Err(err).Str("user_id", userID).Msg("cart snapshot unavailable, treating as empty")
		lines = nil
	}

	start := time.Now()
	est, err := h.Est.Estimate(ctx, lines, loc)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		observeEstimate("error", time.Since(start))
		h.Log.Error().Err(err).Str("user_id", userID).Msg("shipping estimate failed")
		common.JSONError(w, http.StatusServiceUnavailable, "SHIPPING_UNAVAILABLE", "no se pudo calcular el costo de envío", nil)
		return
	}
	observeEstimate("ok", time.Since(start))

	detalle := make([]estimateLine, 0, len(est.Breakdown))
	for _, entry := range est.Breakdown {
		detalle = append(detalle, estimateLine{
			VendedorID: entry.SellerID.String(),
			Provincia:  entry.Province,
			Ciudad:     entry.City,
			Precio:     entry.Price,
			Items:      entry.ItemCount,
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": estimateResponse{
			TotalEnvio: est.Total,
			Detalle:    detalle,
			Warning:    est.Warning,
		},
	})
}

func observeEstimate(result string, elapsed time.Duration) {
	if obs.ShippingEstimateTotal != nil {
		obs.ShippingEstimateTotal.WithLabelValues(result).Inc()
	}
	if obs.ShippingEstimateDuration != nil {
		obs.ShippingEstimateDuration.WithLabelValues(result).Observe(obs.DurationMillis(elapsed))
	}
}
