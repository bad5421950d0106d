package markets

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Domain-level errors for markets. ErrInvalidInput marks rejected caller
// input so handlers can distinguish it from storage failures.
var (
	ErrNotImplemented = errors.New("markets repository: not implemented")
	ErrNotFound       = errors.New("market not found")
	ErrInvalidInput   = errors.New("invalid input")
)

// Market represents a farmers market customers can browse.
type Market struct {
	ID        int64
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository abstracts persistence for markets.
type Repository interface {
	FindByID(id int64) (Market, error)
	Save(market Market) (Market, error)
	List() ([]Market, error)
}

// NullRepository stub implementation returning ErrNotImplemented.
type NullRepository struct{}

func (NullRepository) FindByID(int64) (Market, error) { return Market{}, ErrNotImplemented }
func (NullRepository) Save(Market) (Market, error)    { return Market{}, ErrNotImplemented }
func (NullRepository) List() ([]Market, error)        { return nil, ErrNotImplemented }

// Service exposes business operations over markets.
type Service interface {
	Get(id int64) (Market, error)
	Create(input CreateInput) (Market, error)
	// List returns every market ordered by name, the order the directory
	// presents them in.
	List() ([]Market, error)
}

// CreateInput defines data required to register a market.
type CreateInput struct {
	Name     string
	Location string
}

// NewService builds a market service with the given repository.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

type service struct {
	repo Repository
}

func (s *service) Get(id int64) (Market, error) {
	return s.repo.FindByID(id)
}

func (s *service) Create(input CreateInput) (Market, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Market{}, fmt.Errorf("%w: market name is required", ErrInvalidInput)
	}
	location := strings.TrimSpace(input.Location)
	if location == "" {
		return Market{}, fmt.Errorf("%w: market location is required", ErrInvalidInput)
	}

	return s.repo.Save(Market{Name: name, Location: location})
}

func (s *service) List() ([]Market, error) {
	return s.repo.List()
}
