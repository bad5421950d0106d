package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/mnmarketlink/platform/internal/domain/vendors"
)

// VendorRepository is an in-memory implementation of vendors.Repository.
// Market attendance is held as a set of market IDs per vendor.
type VendorRepository struct {
	mu         sync.RWMutex
	vendors    map[int64]vendors.Vendor
	attendance map[int64]map[int64]bool
}

// NewVendorRepository returns an initialized in-memory repository.
func NewVendorRepository() *VendorRepository {
	return &VendorRepository{
		vendors:    make(map[int64]vendors.Vendor),
		attendance: make(map[int64]map[int64]bool),
	}
}

// FindByID returns a vendor by identifier.
func (r *VendorRepository) FindByID(id int64) (vendors.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vendors[id]
	if !ok {
		return vendors.Vendor{}, vendors.ErrNotFound
	}
	return v, nil
}

// Save inserts or updates a vendor record.
func (r *VendorRepository) Save(vendor vendors.Vendor) (vendors.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if vendor.ID == 0 {
		vendor.ID = newID()
		vendor.CreatedAt = now
	} else if existing, ok := r.vendors[vendor.ID]; ok && vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = existing.CreatedAt
	}
	vendor.UpdatedAt = now
	r.vendors[vendor.ID] = vendor
	return vendor, nil
}

// List returns vendors ordered by business name with offset/limit pagination.
func (r *VendorRepository) List(offset, limit int) ([]vendors.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]vendors.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		list = append(list, v)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].BusinessName < list[j].BusinessName
	})

	if offset > len(list) {
		return []vendors.Vendor{}, nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end], nil
}

// ListByMarket returns vendors attending the given market, ordered by business name.
func (r *VendorRepository) ListByMarket(marketID int64) ([]vendors.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []vendors.Vendor
	for id, markets := range r.attendance {
		if markets[marketID] {
			if v, ok := r.vendors[id]; ok {
				list = append(list, v)
			}
		}
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].BusinessName < list[j].BusinessName
	})
	return list, nil
}

// AssignToMarket records market attendance for a vendor. Repeat assignments
// are a no-op.
func (r *VendorRepository) AssignToMarket(vendorID, marketID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vendors[vendorID]; !ok {
		return vendors.ErrNotFound
	}

	set, ok := r.attendance[vendorID]
	if !ok {
		set = make(map[int64]bool)
		r.attendance[vendorID] = set
	}
	set[marketID] = true
	return nil
}

// marketsFor exposes the attendance set for the product search join.
func (r *VendorRepository) marketsFor(vendorID int64) []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []int64
	for marketID := range r.attendance[vendorID] {
		ids = append(ids, marketID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
