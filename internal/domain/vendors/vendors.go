package vendors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotImplemented = errors.New("vendors repository: not implemented")
	ErrNotFound       = errors.New("vendor not found")
	ErrInvalidInput   = errors.New("invalid input")
)

// Vendor represents a business selling at one or more markets.
type Vendor struct {
	ID           int64
	BusinessName string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repository abstracts vendor persistence, including the vendor-market
// attendance relation.
type Repository interface {
	FindByID(id int64) (Vendor, error)
	Save(vendor Vendor) (Vendor, error)
	List(offset, limit int) ([]Vendor, error)
	ListByMarket(marketID int64) ([]Vendor, error)
	AssignToMarket(vendorID, marketID int64) error
}

// NullRepository returns ErrNotImplemented for all operations.
type NullRepository struct{}

func (NullRepository) FindByID(int64) (Vendor, error)        { return Vendor{}, ErrNotImplemented }
func (NullRepository) Save(Vendor) (Vendor, error)           { return Vendor{}, ErrNotImplemented }
func (NullRepository) List(int, int) ([]Vendor, error)       { return nil, ErrNotImplemented }
func (NullRepository) ListByMarket(int64) ([]Vendor, error)  { return nil, ErrNotImplemented }
func (NullRepository) AssignToMarket(int64, int64) error     { return ErrNotImplemented }

// Service provides business logic around vendors.
type Service interface {
	Get(id int64) (Vendor, error)
	Create(input CreateInput) (Vendor, error)
	List(offset, limit int) ([]Vendor, error)
	// ListForMarket returns the vendors attending a given market.
	ListForMarket(marketID int64) ([]Vendor, error)
	// AssignToMarket records that a vendor attends a market. Assigning an
	// already-attending vendor is a no-op.
	AssignToMarket(vendorID, marketID int64) error
}

// CreateInput defines data required to register a vendor.
type CreateInput struct {
	BusinessName string
}

// NewService builds a vendor service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

type service struct {
	repo Repository
}

func (s *service) Get(id int64) (Vendor, error) {
	return s.repo.FindByID(id)
}

func (s *service) Create(input CreateInput) (Vendor, error) {
	name := strings.TrimSpace(input.BusinessName)
	if name == "" {
		return Vendor{}, fmt.Errorf("%w: business name is required", ErrInvalidInput)
	}
	return s.repo.Save(Vendor{BusinessName: name})
}

func (s *service) List(offset, limit int) ([]Vendor, error) {
	return s.repo.List(offset, limit)
}

func (s *service) ListForMarket(marketID int64) ([]Vendor, error) {
	return s.repo.ListByMarket(marketID)
}

func (s *service) AssignToMarket(vendorID, marketID int64) error {
	return s.repo.AssignToMarket(vendorID, marketID)
}
