package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/mnmarketlink/platform/internal/domain/products"
)

func registerProductRoutes(mux *http.ServeMux, logger *slog.Logger, service products.Service) {
	mux.HandleFunc("/v1/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handleProductCreate(w, r, logger, service)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/products/search", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handleProductSearch(w, r, logger, service)
	})
}

// handleProductSearch answers the "search for products across all markets"
// page. A blank keyword is rejected rather than matching everything.
func handleProductSearch(w http.ResponseWriter, r *http.Request, logger *slog.Logger, service products.Service) {
	keyword := r.URL.Query().Get("q")

	results, err := service.Search(keyword)
	if err != nil {
		switch {
		case errors.Is(err, products.ErrEmptyKeyword):
			respondError(w, http.StatusBadRequest, "query parameter q is required")
		case errors.Is(err, products.ErrNotImplemented):
			respondError(w, http.StatusNotImplemented, "product search not yet implemented")
		default:
			logger.Error("product search failed", "keyword", keyword, "err", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"data":  results,
		"count": len(results),
	})
}

func handleProductCreate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, service products.Service) {
	var input products.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	product, err := service.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, products.ErrNotImplemented):
			respondError(w, http.StatusNotImplemented, "create product not yet implemented")
		case errors.Is(err, products.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Error("create product failed", "err", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	logger.Info("product created", "product_id", product.ID, "vendor_id", product.VendorID)
	respondJSON(w, http.StatusCreated, product)
}
