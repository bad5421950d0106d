package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"github.com/mnmarketlink/platform/internal/auth"
	"github.com/mnmarketlink/platform/internal/domain"
)

// Register attaches API routes to the provided mux.
func Register(mux *http.ServeMux, logger *slog.Logger, domainServices domain.Container, tokens *auth.TokenIssuer) {
	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"status":  "ok",
			"time":    time.Now().UTC().Format(time.RFC3339),
			"server":  "mnmarketlink-platform",
			"version": "v1",
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to write ping response", "err", err)
		}
	})

	registerMarketRoutes(mux, logger, domainServices.Markets, domainServices.Vendors)
	registerVendorRoutes(mux, logger, domainServices.Vendors, domainServices.Products)
	registerProductRoutes(mux, logger, domainServices.Products)
	registerCustomerRoutes(mux, logger, domainServices.Customers, domainServices.Orders)
	registerOrderRoutes(mux, logger, domainServices.Orders)
	registerAuthRoutes(mux, logger, domainServices.Users, tokens)
	registerPublicRoutes(mux, logger, domainServices.Orders)
}
