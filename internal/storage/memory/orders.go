package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/mnmarketlink/platform/internal/domain/orders"
)

// OrderRepository is an in-memory implementation of orders.Repository.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[int64]orders.Order
}

// NewOrderRepository creates an in-memory order repo.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[int64]orders.Order),
	}
}

// FindByID returns an order with its line items.
func (r *OrderRepository) FindByID(id int64) (orders.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return orders.Order{}, orders.ErrNotFound
	}
	return o, nil
}

// Save inserts or updates an order and its line items.
func (r *OrderRepository) Save(order orders.Order) (orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == 0 {
		order.ID = newID()
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC()
	}

	for idx := range order.Items {
		if order.Items[idx].ID == 0 {
			order.Items[idx].ID = newID()
		}
		order.Items[idx].OrderID = order.ID
		order.Items[idx].SortOrder = idx
	}

	r.orders[order.ID] = order
	return order, nil
}

// ListByCustomer returns a customer's orders, newest order first.
func (r *OrderRepository) ListByCustomer(customerID int64, offset, limit int) ([]orders.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []orders.Order
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			list = append(list, o)
		}
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].OrderDate.After(list[j].OrderDate)
	})

	if offset > len(list) {
		return []orders.Order{}, nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end], nil
}
