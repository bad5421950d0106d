package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/mnmarketlink/platform/internal/domain/products"
)

var (
	ErrNotImplemented = errors.New("orders repository: not implemented")
	ErrNotFound       = errors.New("order not found")
	ErrNoItems        = errors.New("order requires at least one item")
	ErrInvalidInput   = errors.New("invalid input")
)

// Order represents a customer pre-order with line items.
type Order struct {
	ID         int64
	CustomerID int64
	OrderDate  time.Time
	PickupDate *time.Time
	TotalCents int64
	Items      []Item
}

// Item represents a product within an order. UnitPriceCents captures the
// product price at the time the order was placed.
type Item struct {
	ID             int64
	OrderID        int64
	ProductID      int64
	ProductName    string
	Quantity       int
	UnitPriceCents int64
	SortOrder      int
}

// Repository abstracts order persistence.
type Repository interface {
	FindByID(id int64) (Order, error)
	Save(order Order) (Order, error)
	// ListByCustomer returns a customer's orders, newest order first.
	ListByCustomer(customerID int64, offset, limit int) ([]Order, error)
}

// Catalog resolves products referenced by order items. Satisfied by
// products.Repository.
type Catalog interface {
	FindByID(id int64) (products.Product, error)
}

// NullRepository returns ErrNotImplemented for all operations.
type NullRepository struct{}

func (NullRepository) FindByID(int64) (Order, error) { return Order{}, ErrNotImplemented }
func (NullRepository) Save(Order) (Order, error)     { return Order{}, ErrNotImplemented }
func (NullRepository) ListByCustomer(int64, int, int) ([]Order, error) {
	return nil, ErrNotImplemented
}

// Service provides business logic around pre-orders.
type Service interface {
	Get(id int64) (Order, error)
	Place(input PlaceInput) (Order, error)
	ListForCustomer(customerID int64, offset, limit int) ([]Order, error)
}

// PlaceInput is used to place a new pre-order.
type PlaceInput struct {
	CustomerID int64
	PickupDate *time.Time
	Items      []PlaceItem
}

// PlaceItem names a product and quantity when placing an order.
type PlaceItem struct {
	ProductID int64
	Quantity  int
}

// NewService builds an order service. The catalog supplies current product
// names and prices for new line items.
func NewService(repo Repository, catalog Catalog) Service {
	return &service{repo: repo, catalog: catalog}
}

type service struct {
	repo    Repository
	catalog Catalog
}

func (s *service) Get(id int64) (Order, error) {
	return s.repo.FindByID(id)
}

func (s *service) Place(input PlaceInput) (Order, error) {
	if input.CustomerID <= 0 {
		return Order{}, fmt.Errorf("%w: customer_id is required", ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return Order{}, ErrNoItems
	}

	order := Order{
		CustomerID: input.CustomerID,
		OrderDate:  time.Now().UTC(),
		PickupDate: input.PickupDate,
	}

	for idx, item := range input.Items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}

		product, err := s.catalog.FindByID(item.ProductID)
		if err != nil {
			if errors.Is(err, products.ErrNotFound) {
				return Order{}, fmt.Errorf("%w: order references an unknown product", ErrInvalidInput)
			}
			return Order{}, err
		}

		order.Items = append(order.Items, Item{
			ProductID:      product.ID,
			ProductName:    product.Name,
			Quantity:       qty,
			UnitPriceCents: product.PriceCents,
			SortOrder:      idx,
		})
		order.TotalCents += int64(qty) * product.PriceCents
	}

	return s.repo.Save(order)
}

func (s *service) ListForCustomer(customerID int64, offset, limit int) ([]Order, error) {
	return s.repo.ListByCustomer(customerID, offset, limit)
}
