package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"github.com/mnmarketlink/platform/internal/domain/markets"
	"github.com/mnmarketlink/platform/internal/domain/vendors"
)

func registerMarketRoutes(mux *http.ServeMux, logger *slog.Logger, service markets.Service, vendorService vendors.Service) {
	mux.HandleFunc("/v1/markets", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handleMarketList(w, logger, service)
		case http.MethodPost:
			handleMarketCreate(w, r, logger, service)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/markets/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		remainder := strings.TrimPrefix(r.URL.Path, "/v1/markets/")
		if rest, found := strings.CutSuffix(remainder, "/vendors"); found {
			id, ok := parseID(strings.TrimSuffix(rest, "/"))
			if !ok {
				respondError(w, http.StatusBadRequest, "invalid market id")
				return
			}
			handleMarketVendors(w, logger, service, vendorService, id)
			return
		}

		id, ok := parseID(remainder)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid market id")
			return
		}
		handleMarketGet(w, logger, service, id)
	})
}

func handleMarketList(w http.ResponseWriter, logger *slog.Logger, service markets.Service) {
	results, err := service.List()
	if err != nil {
		if errors.Is(err, markets.ErrNotImplemented) {
			respondError(w, http.StatusNotImplemented, "list markets not yet implemented")
			return
		}
		logger.Error("list markets failed", "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"data":  results,
		"count": len(results),
	})
}

func handleMarketGet(w http.ResponseWriter, logger *slog.Logger, service markets.Service, id int64) {
	market, err := service.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, markets.ErrNotImplemented):
			respondError(w, http.StatusNotImplemented, "get market not yet implemented")
		case errors.Is(err, markets.ErrNotFound):
			respondError(w, http.StatusNotFound, "market not found")
		default:
			logger.Error("get market failed", "err", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	respondJSON(w, http.StatusOK, market)
}

// handleMarketVendors serves the vendors attending one market, the table the
// market detail page shows.
func handleMarketVendors(w http.ResponseWriter, logger *slog.Logger, service markets.Service, vendorService vendors.Service, marketID int64) {
	if _, err := service.Get(marketID); err != nil {
		if errors.Is(err, markets.ErrNotFound) {
			respondError(w, http.StatusNotFound, "market not found")
			return
		}
		logger.Error("get market failed", "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	results, err := vendorService.ListForMarket(marketID)
	if err != nil {
		logger.Error("list vendors for market failed", "market_id", marketID, "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"data":  results,
		"count": len(results),
	})
}

func handleMarketCreate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, service markets.Service) {
	var input markets.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	market, err := service.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, markets.ErrNotImplemented):
			respondError(w, http.StatusNotImplemented, "create market not yet implemented")
		case errors.Is(err, markets.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Error("create market failed", "err", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	logger.Info("market created", "market_id", market.ID, "name", market.Name)
	respondJSON(w, http.StatusCreated, market)
}
