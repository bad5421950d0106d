package mysql

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mnmarketlink/platform/internal/domain/products"
)

// ProductRepository persists the product catalog and serves the cross-market
// search the product search page runs.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository returns a repository backed by a pooled DB connection.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type productRow struct {
	ID         int64     `db:"id"`
	VendorID   int64     `db:"vendor_id"`
	Name       string    `db:"name"`
	PriceCents int64     `db:"price_cents"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r productRow) toDomain() products.Product {
	return products.Product{
		ID:         r.ID,
		VendorID:   r.VendorID,
		Name:       r.Name,
		PriceCents: r.PriceCents,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type listingRow struct {
	ProductID      int64  `db:"product_id"`
	ProductName    string `db:"product_name"`
	PriceCents     int64  `db:"price_cents"`
	VendorName     string `db:"vendor_name"`
	MarketName     string `db:"market_name"`
	MarketLocation string `db:"market_location"`
}

// FindByID fetches a product by primary key.
func (r *ProductRepository) FindByID(id int64) (products.Product, error) {
	const query = `
        SELECT id, vendor_id, name, price_cents, created_at, updated_at
          FROM products
         WHERE id = ?
    `

	var row productRow
	if err := r.db.Get(&row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return products.Product{}, products.ErrNotFound
		}
		return products.Product{}, fmt.Errorf("find product: %w", err)
	}
	return row.toDomain(), nil
}

// Save inserts or updates a product record.
func (r *ProductRepository) Save(product products.Product) (products.Product, error) {
	now := time.Now().UTC()

	if product.ID == 0 {
		const insert = `
            INSERT INTO products (vendor_id, name, price_cents, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?)
        `
		res, err := r.db.Exec(insert, product.VendorID, product.Name, product.PriceCents, now, now)
		if err != nil {
			return products.Product{}, fmt.Errorf("insert product: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return products.Product{}, fmt.Errorf("product insert id: %w", err)
		}
		product.ID = id
		product.CreatedAt = now
		product.UpdatedAt = now
		return product, nil
	}

	const update = `
        UPDATE products
           SET vendor_id = ?, name = ?, price_cents = ?, updated_at = ?
         WHERE id = ?
    `
	if _, err := r.db.Exec(update, product.VendorID, product.Name, product.PriceCents, now, product.ID); err != nil {
		return products.Product{}, fmt.Errorf("update product: %w", err)
	}
	product.UpdatedAt = now
	return product, nil
}

// ListByVendor returns a vendor's products ordered by name.
func (r *ProductRepository) ListByVendor(vendorID int64, offset, limit int) ([]products.Product, error) {
	const query = `
        SELECT id, vendor_id, name, price_cents, created_at, updated_at
          FROM products
         WHERE vendor_id = ?
         ORDER BY name
         LIMIT ? OFFSET ?
    `

	var rows []productRow
	if err := r.db.Select(&rows, query, vendorID, limit, offset); err != nil {
		return nil, fmt.Errorf("list products for vendor: %w", err)
	}

	result := make([]products.Product, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

// Search matches products by name across all markets, joining through the
// vendor and its market attendance. A vendor attending two markets yields
// two listings for the same product.
func (r *ProductRepository) Search(keyword string) ([]products.Listing, error) {
	const query = `
        SELECT products.id          AS product_id,
               products.name        AS product_name,
               products.price_cents AS price_cents,
               vendors.business_name AS vendor_name,
               markets.name         AS market_name,
               markets.location     AS market_location
          FROM products
          JOIN vendors ON products.vendor_id = vendors.id
          JOIN vendor_markets ON vendors.id = vendor_markets.vendor_id
          JOIN markets ON vendor_markets.market_id = markets.id
         WHERE products.name LIKE ?
         ORDER BY products.name, markets.name
    `

	var rows []listingRow
	if err := r.db.Select(&rows, query, "%"+keyword+"%"); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	result := make([]products.Listing, 0, len(rows))
	for _, row := range rows {
		result = append(result, products.Listing{
			ProductID:      row.ProductID,
			ProductName:    row.ProductName,
			PriceCents:     row.PriceCents,
			VendorName:     row.VendorName,
			MarketName:     row.MarketName,
			MarketLocation: row.MarketLocation,
		})
	}
	return result, nil
}
