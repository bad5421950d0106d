package customers

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Domain-level errors for customers.
var (
	ErrNotImplemented = errors.New("customers repository: not implemented")
	ErrNotFound       = errors.New("customer not found")
	ErrEmailExists    = errors.New("customer email already in use")
	ErrInvalidInput   = errors.New("invalid input")
)

// Customer represents a pre-order customer.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository abstracts persistence for customers.
type Repository interface {
	FindByID(id int64) (Customer, error)
	FindByEmail(email string) (Customer, error)
	Save(customer Customer) (Customer, error)
	List() ([]Customer, error)
}

// NullRepository stub implementation returning ErrNotImplemented.
type NullRepository struct{}

func (NullRepository) FindByID(int64) (Customer, error) { return Customer{}, ErrNotImplemented }
func (NullRepository) FindByEmail(string) (Customer, error) {
	return Customer{}, ErrNotImplemented
}
func (NullRepository) Save(Customer) (Customer, error) { return Customer{}, ErrNotImplemented }
func (NullRepository) List() ([]Customer, error)       { return nil, ErrNotImplemented }

// Service exposes business operations over customers.
type Service interface {
	Get(id int64) (Customer, error)
	Create(input CreateInput) (Customer, error)
	// List returns every customer ordered by name.
	List() ([]Customer, error)
}

// CreateInput defines data required to create a customer.
type CreateInput struct {
	Name  string
	Email string
}

// NewService builds a customer service with the given repository.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

type service struct {
	repo Repository
}

func (s *service) Get(id int64) (Customer, error) {
	return s.repo.FindByID(id)
}

func (s *service) Create(input CreateInput) (Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Customer{}, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return Customer{}, fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return Customer{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrNotImplemented) {
		return Customer{}, err
	}

	return s.repo.Save(Customer{Name: name, Email: email})
}

func (s *service) List() ([]Customer, error) {
	return s.repo.List()
}
