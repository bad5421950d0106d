package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"github.com/mnmarketlink/platform/internal/domain/products"
	"github.com/mnmarketlink/platform/internal/domain/vendors"
)

func registerVendorRoutes(mux *http.ServeMux, logger *slog.Logger, service vendors.Service, productService products.Service) {
	mux.HandleFunc("/v1/vendors", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handleVendorList(w, r, logger, service)
		case http.MethodPost:
			handleVendorCreate(w, r, logger, service)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/vendors/", func(w http.ResponseWriter, r *http.Request) {
		remainder := strings.TrimPrefix(r.URL.Path, "/v1/vendors/")

		if rest, found := strings.CutSuffix(remainder, "/products"); found {
			id, ok := parseID(strings.TrimSuffix(rest, "/"))
			if !ok {
				respondError(w, http.StatusBadRequest, "invalid vendor id")
				return
			}
			if r.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			handleVendorProducts(w, r, logger, productService, id)
			return
		}

		if rest, found := strings.CutSuffix(remainder, "/markets"); found {
			id, ok := parseID(strings.TrimSuffix(rest, "/"))
			if !ok {
				respondError(w, http.StatusBadRequest, "invalid vendor id")
				return
			}
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			handleVendorAssignMarket(w, r, logger, service, id)
			return
		}

		id, ok := parseID(remainder)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid vendor id")
			return
		}
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handleVendorGet(w, logger, service, id)
	})
}

func handleVendorList(w http.ResponseWriter, r *http.Request, logger *slog.Logger, service vendors.Service) {
	offset, limit, ok := parsePagination(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid pagination parameters")
		return
	}

	results, err := service.List(offset, limit)
	if err != nil {
		if errors.Is(err, vendors.ErrNotImplemented) {
			respondError(w, http.StatusNotImplemented, "list vendors not yet implemented")
			return
		}
		logger.Error("list vendors failed", "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"data":  results,
		"count": len(results),
	})
}

func handleVendorGet(w http.ResponseWriter, logger *slog.Logger, service vendors.Service, id int64) {
	vendor, err := service.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, vendors.ErrNotFound):
			respondError(w, http.StatusNotFound, "vendor not found")
		default:
			logger.Error("get vendor failed", "err", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	respondJSON(w, http.StatusOK, vendor)
}

func handleVendorCreate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, service vendors.Service) {
	var input vendors.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	vendor, err := service.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, vendors.ErrNotImplemented):
			respondError(w, http.StatusNotImplemented, "create vendor not yet implemented")
		case errors.Is(err, vendors.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Error("create vendor failed", "err", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	logger.Info("vendor created", "vendor_id", vendor.ID, "business_name", vendor.BusinessName)
	respondJSON(w, http.StatusCreated, vendor)
}

func handleVendorProducts(w http.ResponseWriter, r *http.Request, logger *slog.Logger, service products.Service, vendorID int64) {
	offset, limit, ok := parsePagination(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid pagination parameters")
		return
	}

	results, err := service.ListForVendor(vendorID, offset, limit)
	if err != nil {
		logger.Error("list products for vendor failed", "vendor_id", vendorID, "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"data":  results,
		"count": len(results),
	})
}

func handleVendorAssignMarket(w http.ResponseWriter, r *http.Request, logger *slog.Logger, service vendors.Service, vendorID int64) {
	var payload struct {
		MarketID int64 `json:"market_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if payload.MarketID <= 0 {
		respondError(w, http.StatusBadRequest, "market_id is required")
		return
	}

	if err := service.AssignToMarket(vendorID, payload.MarketID); err != nil {
		if errors.Is(err, vendors.ErrNotFound) {
			respondError(w, http.StatusNotFound, "vendor not found")
			return
		}
		logger.Error("assign vendor to market failed", "vendor_id", vendorID, "market_id", payload.MarketID, "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"vendor_id": vendorID,
		"market_id": payload.MarketID,
	})
}
