package mysql

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mnmarketlink/platform/internal/domain/markets"
)

// MarketRepository persists markets using a pooled sqlx handle.
type MarketRepository struct {
	db *sqlx.DB
}

// NewMarketRepository returns a repository backed by a pooled DB connection.
func NewMarketRepository(db *sqlx.DB) *MarketRepository {
	return &MarketRepository{db: db}
}

type marketRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Location  string    `db:"location"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r marketRow) toDomain() markets.Market {
	return markets.Market{
		ID:        r.ID,
		Name:      r.Name,
		Location:  r.Location,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FindByID fetches a market by primary key.
func (r *MarketRepository) FindByID(id int64) (markets.Market, error) {
	const query = `
        SELECT id, name, location, created_at, updated_at
          FROM markets
         WHERE id = ?
    `

	var row marketRow
	if err := r.db.Get(&row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return markets.Market{}, markets.ErrNotFound
		}
		return markets.Market{}, fmt.Errorf("find market: %w", err)
	}
	return row.toDomain(), nil
}

// Save inserts or updates a market record.
func (r *MarketRepository) Save(market markets.Market) (markets.Market, error) {
	now := time.Now().UTC()

	if market.ID == 0 {
		const insert = `
            INSERT INTO markets (name, location, created_at, updated_at)
            VALUES (?, ?, ?, ?)
        `
		res, err := r.db.Exec(insert, market.Name, market.Location, now, now)
		if err != nil {
			return markets.Market{}, fmt.Errorf("insert market: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return markets.Market{}, fmt.Errorf("market insert id: %w", err)
		}
		market.ID = id
		market.CreatedAt = now
		market.UpdatedAt = now
		return market, nil
	}

	const update = `
        UPDATE markets
           SET name = ?, location = ?, updated_at = ?
         WHERE id = ?
    `
	res, err := r.db.Exec(update, market.Name, market.Location, now, market.ID)
	if err != nil {
		return markets.Market{}, fmt.Errorf("update market: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.FindByID(market.ID); err != nil {
			return markets.Market{}, markets.ErrNotFound
		}
	}
	market.UpdatedAt = now
	return market, nil
}

// List returns all markets ordered by name.
func (r *MarketRepository) List() ([]markets.Market, error) {
	const query = `
        SELECT id, name, location, created_at, updated_at
          FROM markets
         ORDER BY name
    `

	var rows []marketRow
	if err := r.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}

	result := make([]markets.Market, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}
