package mysql

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mnmarketlink/platform/internal/domain/vendors"
)

// VendorRepository persists vendors and their market attendance.
type VendorRepository struct {
	db *sqlx.DB
}

// NewVendorRepository returns a repository backed by a pooled DB connection.
func NewVendorRepository(db *sqlx.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

type vendorRow struct {
	ID           int64     `db:"id"`
	BusinessName string    `db:"business_name"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r vendorRow) toDomain() vendors.Vendor {
	return vendors.Vendor{
		ID:           r.ID,
		BusinessName: r.BusinessName,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// FindByID fetches a vendor by primary key.
func (r *VendorRepository) FindByID(id int64) (vendors.Vendor, error) {
	const query = `
        SELECT id, business_name, created_at, updated_at
          FROM vendors
         WHERE id = ?
    `

	var row vendorRow
	if err := r.db.Get(&row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vendors.Vendor{}, vendors.ErrNotFound
		}
		return vendors.Vendor{}, fmt.Errorf("find vendor: %w", err)
	}
	return row.toDomain(), nil
}

// Save inserts or updates a vendor record.
func (r *VendorRepository) Save(vendor vendors.Vendor) (vendors.Vendor, error) {
	now := time.Now().UTC()

	if vendor.ID == 0 {
		const insert = `
            INSERT INTO vendors (business_name, created_at, updated_at)
            VALUES (?, ?, ?)
        `
		res, err := r.db.Exec(insert, vendor.BusinessName, now, now)
		if err != nil {
			return vendors.Vendor{}, fmt.Errorf("insert vendor: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return vendors.Vendor{}, fmt.Errorf("vendor insert id: %w", err)
		}
		vendor.ID = id
		vendor.CreatedAt = now
		vendor.UpdatedAt = now
		return vendor, nil
	}

	const update = `
        UPDATE vendors
           SET business_name = ?, updated_at = ?
         WHERE id = ?
    `
	if _, err := r.db.Exec(update, vendor.BusinessName, now, vendor.ID); err != nil {
		return vendors.Vendor{}, fmt.Errorf("update vendor: %w", err)
	}
	vendor.UpdatedAt = now
	return vendor, nil
}

// List returns vendors ordered by business name with offset/limit pagination.
func (r *VendorRepository) List(offset, limit int) ([]vendors.Vendor, error) {
	const query = `
        SELECT id, business_name, created_at, updated_at
          FROM vendors
         ORDER BY business_name
         LIMIT ? OFFSET ?
    `

	var rows []vendorRow
	if err := r.db.Select(&rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}

	result := make([]vendors.Vendor, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

// ListByMarket returns vendors attending a specific market.
func (r *VendorRepository) ListByMarket(marketID int64) ([]vendors.Vendor, error) {
	const query = `
        SELECT vendors.id, vendors.business_name, vendors.created_at, vendors.updated_at
          FROM vendor_markets
          JOIN vendors ON vendor_markets.vendor_id = vendors.id
         WHERE vendor_markets.market_id = ?
         ORDER BY vendors.business_name
    `

	var rows []vendorRow
	if err := r.db.Select(&rows, query, marketID); err != nil {
		return nil, fmt.Errorf("list vendors for market: %w", err)
	}

	result := make([]vendors.Vendor, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

// AssignToMarket records market attendance. INSERT IGNORE keeps repeat
// assignments idempotent.
func (r *VendorRepository) AssignToMarket(vendorID, marketID int64) error {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM vendors WHERE id = ?`, vendorID); err != nil {
		return fmt.Errorf("check vendor: %w", err)
	}
	if count == 0 {
		return vendors.ErrNotFound
	}

	const insert = `
        INSERT IGNORE INTO vendor_markets (vendor_id, market_id)
        VALUES (?, ?)
    `
	if _, err := r.db.Exec(insert, vendorID, marketID); err != nil {
		return fmt.Errorf("assign vendor to market: %w", err)
	}
	return nil
}
