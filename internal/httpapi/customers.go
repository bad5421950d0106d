package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"github.com/mnmarketlink/platform/internal/domain/customers"
	"github.com/mnmarketlink/platform/internal/domain/orders"
)

func registerCustomerRoutes(mux *http.ServeMux, logger *slog.Logger, service customers.Service, orderService orders.Service) {
	mux.HandleFunc("/v1/customers", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handleCustomerList(w, logger, service)
		case http.MethodPost:
			handleCustomerCreate(w, r, logger, service)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/customers/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		remainder := strings.TrimPrefix(r.URL.Path, "/v1/customers/")
		if rest, found := strings.CutSuffix(remainder, "/orders"); found {
			id, ok := parseID(strings.TrimSuffix(rest, "/"))
			if !ok {
				respondError(w, http.StatusBadRequest, "invalid customer id")
				return
			}
			handleCustomerOrders(w, r, logger, service, orderService, id)
			return
		}

		id, ok := parseID(remainder)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid customer id")
			return
		}
		handleCustomerGet(w, logger, service, id)
	})
}

func handleCustomerList(w http.ResponseWriter, logger *slog.Logger, service customers.Service) {
	results, err := service.List()
	if err != nil {
		if errors.Is(err, customers.ErrNotImplemented) {
			respondError(w, http.StatusNotImplemented, "list customers not yet implemented")
			return
		}
		logger.Error("list customers failed", "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"data":  results,
		"count": len(results),
	})
}

func handleCustomerGet(w http.ResponseWriter, logger *slog.Logger, service customers.Service, id int64) {
	customer, err := service.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrNotImplemented):
			respondError(w, http.StatusNotImplemented, "get customer not yet implemented")
		case errors.Is(err, customers.ErrNotFound):
			respondError(w, http.StatusNotFound, "customer not found")
		default:
			logger.Error("get customer failed", "err", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	respondJSON(w, http.StatusOK, customer)
}

func handleCustomerCreate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, service customers.Service) {
	var input customers.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	customer, err := service.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrEmailExists):
			respondError(w, http.StatusConflict, "email already in use")
		case errors.Is(err, customers.ErrNotImplemented):
			respondError(w, http.StatusNotImplemented, "create customer not yet implemented")
		case errors.Is(err, customers.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Error("create customer failed", "err", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	respondJSON(w, http.StatusCreated, customer)
}

// handleCustomerOrders serves the customer's order history, newest first.
func handleCustomerOrders(w http.ResponseWriter, r *http.Request, logger *slog.Logger, service customers.Service, orderService orders.Service, customerID int64) {
	if _, err := service.Get(customerID); err != nil {
		if errors.Is(err, customers.ErrNotFound) {
			respondError(w, http.StatusNotFound, "customer not found")
			return
		}
		logger.Error("get customer failed", "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	offset, limit, ok := parsePagination(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid pagination parameters")
		return
	}

	results, err := orderService.ListForCustomer(customerID, offset, limit)
	if err != nil {
		logger.Error("list orders for customer failed", "customer_id", customerID, "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"data":  results,
		"count": len(results),
	})
}
