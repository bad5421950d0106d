package products

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotImplemented = errors.New("products repository: not implemented")
	ErrNotFound       = errors.New("product not found")
	ErrEmptyKeyword   = errors.New("search keyword is required")
	ErrInvalidInput   = errors.New("invalid input")
)

// Product represents an item a vendor offers.
type Product struct {
	ID         int64
	VendorID   int64
	Name       string
	PriceCents int64 // store in cents
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Listing is a search hit joined across vendor and market, the row the
// product search page renders.
type Listing struct {
	ProductID      int64
	ProductName    string
	PriceCents     int64
	VendorName     string
	MarketName     string
	MarketLocation string
}

// Repository abstracts product persistence and catalog search.
type Repository interface {
	FindByID(id int64) (Product, error)
	Save(product Product) (Product, error)
	ListByVendor(vendorID int64, offset, limit int) ([]Product, error)
	// Search matches products by name substring across all markets. A
	// product sold by a vendor attending two markets yields two listings.
	Search(keyword string) ([]Listing, error)
}

// NullRepository returns ErrNotImplemented for all operations.
type NullRepository struct{}

func (NullRepository) FindByID(int64) (Product, error) { return Product{}, ErrNotImplemented }
func (NullRepository) Save(Product) (Product, error)   { return Product{}, ErrNotImplemented }
func (NullRepository) ListByVendor(int64, int, int) ([]Product, error) {
	return nil, ErrNotImplemented
}
func (NullRepository) Search(string) ([]Listing, error) { return nil, ErrNotImplemented }

// Service provides business logic around the product catalog.
type Service interface {
	Get(id int64) (Product, error)
	Create(input CreateInput) (Product, error)
	ListForVendor(vendorID int64, offset, limit int) ([]Product, error)
	Search(keyword string) ([]Listing, error)
}

// CreateInput defines data required to add a product to the catalog.
type CreateInput struct {
	VendorID   int64
	Name       string
	PriceCents int64
}

// NewService builds a product service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

type service struct {
	repo Repository
}

func (s *service) Get(id int64) (Product, error) {
	return s.repo.FindByID(id)
}

func (s *service) Create(input CreateInput) (Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Product{}, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if input.VendorID <= 0 {
		return Product{}, fmt.Errorf("%w: vendor_id is required", ErrInvalidInput)
	}
	if input.PriceCents < 0 {
		return Product{}, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	return s.repo.Save(Product{
		VendorID:   input.VendorID,
		Name:       name,
		PriceCents: input.PriceCents,
	})
}

func (s *service) ListForVendor(vendorID int64, offset, limit int) ([]Product, error) {
	return s.repo.ListByVendor(vendorID, offset, limit)
}

func (s *service) Search(keyword string) ([]Listing, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	return s.repo.Search(keyword)
}
