package domain

import (
	"github.com/mnmarketlink/platform/internal/domain/customers"
	"github.com/mnmarketlink/platform/internal/domain/markets"
	"github.com/mnmarketlink/platform/internal/domain/orders"
	"github.com/mnmarketlink/platform/internal/domain/products"
	"github.com/mnmarketlink/platform/internal/domain/users"
	"github.com/mnmarketlink/platform/internal/domain/vendors"
)

// Container wires domain services together over whichever repository
// implementations the data backend provides.
type Container struct {
	Markets   markets.Service
	Vendors   vendors.Service
	Products  products.Service
	Customers customers.Service
	Orders    orders.Service
	Users     users.Service
}

// Options configures the domain container.
type Options struct {
	MarketRepo   markets.Repository
	VendorRepo   vendors.Repository
	ProductRepo  products.Repository
	CustomerRepo customers.Repository
	OrderRepo    orders.Repository
	UserRepo     users.Repository
}

// New constructs a domain container with provided repositories.
func New(opts Options) Container {
	marketRepo := opts.MarketRepo
	if marketRepo == nil {
		marketRepo = markets.NullRepository{}
	}

	vendorRepo := opts.VendorRepo
	if vendorRepo == nil {
		vendorRepo = vendors.NullRepository{}
	}

	productRepo := opts.ProductRepo
	if productRepo == nil {
		productRepo = products.NullRepository{}
	}

	customerRepo := opts.CustomerRepo
	if customerRepo == nil {
		customerRepo = customers.NullRepository{}
	}

	orderRepo := opts.OrderRepo
	if orderRepo == nil {
		orderRepo = orders.NullRepository{}
	}

	userRepo := opts.UserRepo
	if userRepo == nil {
		userRepo = users.NullRepository{}
	}

	return Container{
		Markets:   markets.NewService(marketRepo),
		Vendors:   vendors.NewService(vendorRepo),
		Products:  products.NewService(productRepo),
		Customers: customers.NewService(customerRepo),
		Orders:    orders.NewService(orderRepo, productRepo),
		Users:     users.NewService(userRepo),
	}
}
