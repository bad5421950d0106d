package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/mnmarketlink/platform/internal/domain/orders"
)

// registerPublicRoutes exposes the unauthenticated pre-order intake endpoint
// used by the storefront.
func registerPublicRoutes(mux *http.ServeMux, logger *slog.Logger, service orders.Service) {
	mux.HandleFunc("/public/preorder-intake", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var payload PreorderIntakeRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		payload.Normalize()
		if err := payload.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		input := orders.PlaceInput{
			CustomerID: payload.CustomerID,
			PickupDate: payload.PickupDate,
		}
		for _, item := range payload.Items {
			input.Items = append(input.Items, orders.PlaceItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		order, err := service.Place(input)
		if err != nil {
			switch {
			case errors.Is(err, orders.ErrNoItems):
				respondError(w, http.StatusBadRequest, "at least one item is required")
			case errors.Is(err, orders.ErrInvalidInput):
				respondError(w, http.StatusBadRequest, err.Error())
			default:
				logger.Error("preorder intake failed", "customer_id", payload.CustomerID, "err", err)
				respondError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		logger.Info("preorder_intake_received",
			"order_id", order.ID,
			"customer_id", order.CustomerID,
			"items", len(order.Items),
			"source", payload.Source,
		)

		respondJSON(w, http.StatusAccepted, map[string]any{
			"status":   "accepted",
			"order_id": order.ID,
			"total":    order.TotalCents,
		})
	})
}

// PreorderIntakeRequest mirrors the storefront pre-order submission payload.
type PreorderIntakeRequest struct {
	CustomerID int64      `json:"customer_id"`
	PickupDate *time.Time `json:"pickup_date,omitempty"`
	Source     string     `json:"source,omitempty"`
	Items      []struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	} `json:"items"`
}

// Normalize fills in defaults for optional fields.
func (p *PreorderIntakeRequest) Normalize() {
	for idx := range p.Items {
		if p.Items[idx].Quantity <= 0 {
			p.Items[idx].Quantity = 1
		}
	}
	if p.Source == "" {
		p.Source = "storefront"
	}
}

// Validate rejects obviously malformed submissions before they reach the
// order service.
func (p *PreorderIntakeRequest) Validate() error {
	if p.CustomerID <= 0 {
		return fmt.Errorf("customer_id is required")
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	if p.PickupDate != nil && p.PickupDate.Before(time.Now().UTC()) {
		return fmt.Errorf("pickup_date must be in the future")
	}
	return nil
}
