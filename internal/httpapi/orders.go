package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/mnmarketlink/platform/internal/domain/orders"
)

func registerOrderRoutes(mux *http.ServeMux, logger *slog.Logger, service orders.Service) {
	mux.HandleFunc("/v1/orders", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handleOrderPlace(w, r, logger, service)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/orders/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		id, ok := parseID(strings.TrimPrefix(r.URL.Path, "/v1/orders/"))
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid order id")
			return
		}
		handleOrderGet(w, logger, service, id)
	})
}

// orderPlaceRequest mirrors the pre-order submission payload.
type orderPlaceRequest struct {
	CustomerID int64      `json:"customer_id"`
	PickupDate *time.Time `json:"pickup_date,omitempty"`
	Items      []struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	} `json:"items"`
}

func handleOrderPlace(w http.ResponseWriter, r *http.Request, logger *slog.Logger, service orders.Service) {
	var payload orderPlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if payload.CustomerID <= 0 {
		respondError(w, http.StatusBadRequest, "customer_id is required")
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
			respondError(w, http.StatusBadRequest, "order requires at least one item")
		case errors.Is(err, orders.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, orders.ErrNotImplemented):
			respondError(w, http.StatusNotImplemented, "place order not yet implemented")
		default:
			logger.Error("place order failed", "customer_id", payload.CustomerID, "err", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	logger.Info("order placed", "order_id", order.ID, "customer_id", order.CustomerID, "total_cents", order.TotalCents)
	respondJSON(w, http.StatusCreated, order)
}

func handleOrderGet(w http.ResponseWriter, logger *slog.Logger, service orders.Service, id int64) {
	order, err := service.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrNotImplemented):
			respondError(w, http.StatusNotImplemented, "get order not yet implemented")
		case errors.Is(err, orders.ErrNotFound):
			respondError(w, http.StatusNotFound, "order not found")
		default:
			logger.Error("get order failed", "err", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	respondJSON(w, http.StatusOK, order)
}
