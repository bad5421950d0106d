package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/mnmarketlink/platform/internal/domain/customers"
)

// CustomerRepository is an in-memory implementation of customers.Repository.
type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[int64]customers.Customer
}

// NewCustomerRepository returns an initialized in-memory repository.
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[int64]customers.Customer),
	}
}

// FindByID returns a customer by identifier.
func (r *CustomerRepository) FindByID(id int64) (customers.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return customers.Customer{}, customers.ErrNotFound
	}
	return c, nil
}

// FindByEmail returns a customer by email address.
func (r *CustomerRepository) FindByEmail(email string) (customers.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return customers.Customer{}, customers.ErrNotFound
}

// Save inserts or updates a customer record.
func (r *CustomerRepository) Save(customer customers.Customer) (customers.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if customer.ID == 0 {
		customer.ID = newID()
		customer.CreatedAt = now
	} else if existing, ok := r.customers[customer.ID]; ok && customer.CreatedAt.IsZero() {
		customer.CreatedAt = existing.CreatedAt
	}
	customer.UpdatedAt = now
	r.customers[customer.ID] = customer
	return customer, nil
}

// List returns all customers ordered by name.
func (r *CustomerRepository) List() ([]customers.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]customers.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		list = append(list, c)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list, nil
}
