package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/mnmarketlink/platform/internal/domain/markets"
)

// MarketRepository is an in-memory implementation of markets.Repository.
type MarketRepository struct {
	mu      sync.RWMutex
	markets map[int64]markets.Market
}

// NewMarketRepository returns an initialized in-memory repository.
func NewMarketRepository() *MarketRepository {
	return &MarketRepository{
		markets: make(map[int64]markets.Market),
	}
}

// FindByID returns a market by identifier.
func (r *MarketRepository) FindByID(id int64) (markets.Market, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.markets[id]
	if !ok {
		return markets.Market{}, markets.ErrNotFound
	}
	return m, nil
}

// Save inserts or updates a market record.
func (r *MarketRepository) Save(market markets.Market) (markets.Market, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if market.ID == 0 {
		market.ID = newID()
		market.CreatedAt = now
	} else if existing, ok := r.markets[market.ID]; ok && market.CreatedAt.IsZero() {
		market.CreatedAt = existing.CreatedAt
	}
	market.UpdatedAt = now
	r.markets[market.ID] = market
	return market, nil
}

// List returns all markets ordered by name.
func (r *MarketRepository) List() ([]markets.Market, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]markets.Market, 0, len(r.markets))
	for _, m := range r.markets {
		list = append(list, m)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list, nil
}
