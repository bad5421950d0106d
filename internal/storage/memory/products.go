package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mnmarketlink/platform/internal/domain/products"
)

// ProductRepository is an in-memory implementation of products.Repository.
// Search joins through the vendor and market repositories the same way the
// SQL implementation joins through vendor_markets.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[int64]products.Product

	vendors *VendorRepository
	markets *MarketRepository
}

// NewProductRepository returns an in-memory repository joined to the given
// vendor and market repositories.
func NewProductRepository(vendors *VendorRepository, markets *MarketRepository) *ProductRepository {
	return &ProductRepository{
		products: make(map[int64]products.Product),
		vendors:  vendors,
		markets:  markets,
	}
}

// FindByID returns a product by identifier.
func (r *ProductRepository) FindByID(id int64) (products.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return products.Product{}, products.ErrNotFound
	}
	return p, nil
}

// Save inserts or updates a product record.
func (r *ProductRepository) Save(product products.Product) (products.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if product.ID == 0 {
		product.ID = newID()
		product.CreatedAt = now
	} else if existing, ok := r.products[product.ID]; ok && product.CreatedAt.IsZero() {
		product.CreatedAt = existing.CreatedAt
	}
	product.UpdatedAt = now
	r.products[product.ID] = product
	return product, nil
}

// ListByVendor returns a vendor's products ordered by name.
func (r *ProductRepository) ListByVendor(vendorID int64, offset, limit int) ([]products.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []products.Product
	for _, p := range r.products {
		if p.VendorID == vendorID {
			list = append(list, p)
		}
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})

	if offset > len(list) {
		return []products.Product{}, nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end], nil
}

// Search matches product names case-insensitively and emits one listing per
// market the selling vendor attends.
func (r *ProductRepository) Search(keyword string) ([]products.Listing, error) {
	r.mu.RLock()
	matched := make([]products.Product, 0)
	needle := strings.ToLower(keyword)
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	r.mu.RUnlock()

	var listings []products.Listing
	for _, p := range matched {
		vendor, err := r.vendors.FindByID(p.VendorID)
		if err != nil {
			continue
		}
		for _, marketID := range r.vendors.marketsFor(p.VendorID) {
			market, err := r.markets.FindByID(marketID)
			if err != nil {
				continue
			}
			listings = append(listings, products.Listing{
				ProductID:      p.ID,
				ProductName:    p.Name,
				PriceCents:     p.PriceCents,
				VendorName:     vendor.BusinessName,
				MarketName:     market.Name,
				MarketLocation: market.Location,
			})
		}
	}

	sort.Slice(listings, func(i, j int) bool {
		if listings[i].ProductName != listings[j].ProductName {
			return listings[i].ProductName < listings[j].ProductName
		}
		return listings[i].MarketName < listings[j].MarketName
	})
	return listings, nil
}
