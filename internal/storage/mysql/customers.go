package mysql

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mnmarketlink/platform/internal/domain/customers"
)

// CustomerRepository persists customers using a pooled sqlx handle.
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository returns a repository backed by a pooled DB connection.
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

type customerRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r customerRow) toDomain() customers.Customer {
	return customers.Customer{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FindByID fetches a customer by primary key.
func (r *CustomerRepository) FindByID(id int64) (customers.Customer, error) {
	const query = `
        SELECT id, name, email, created_at, updated_at
          FROM customers
         WHERE id = ?
    `

	var row customerRow
	if err := r.db.Get(&row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customers.Customer{}, customers.ErrNotFound
		}
		return customers.Customer{}, fmt.Errorf("find customer: %w", err)
	}
	return row.toDomain(), nil
}

// FindByEmail fetches a customer by email address.
func (r *CustomerRepository) FindByEmail(email string) (customers.Customer, error) {
	const query = `
        SELECT id, name, email, created_at, updated_at
          FROM customers
         WHERE email = ?
    `

	var row customerRow
	if err := r.db.Get(&row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customers.Customer{}, customers.ErrNotFound
		}
		return customers.Customer{}, fmt.Errorf("find customer by email: %w", err)
	}
	return row.toDomain(), nil
}

// Save inserts or updates a customer record.
func (r *CustomerRepository) Save(customer customers.Customer) (customers.Customer, error) {
	now := time.Now().UTC()

	if customer.ID == 0 {
		const insert = `
            INSERT INTO customers (name, email, created_at, updated_at)
            VALUES (?, ?, ?, ?)
        `
		res, err := r.db.Exec(insert, customer.Name, customer.Email, now, now)
		if err != nil {
			return customers.Customer{}, fmt.Errorf("insert customer: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return customers.Customer{}, fmt.Errorf("customer insert id: %w", err)
		}
		customer.ID = id
		customer.CreatedAt = now
		customer.UpdatedAt = now
		return customer, nil
	}

	const update = `
        UPDATE customers
           SET name = ?, email = ?, updated_at = ?
         WHERE id = ?
    `
	if _, err := r.db.Exec(update, customer.Name, customer.Email, now, customer.ID); err != nil {
		return customers.Customer{}, fmt.Errorf("update customer: %w", err)
	}
	customer.UpdatedAt = now
	return customer, nil
}

// List returns all customers ordered by name.
func (r *CustomerRepository) List() ([]customers.Customer, error) {
	const query = `
        SELECT id, name, email, created_at, updated_at
          FROM customers
         ORDER BY name
    `

	var rows []customerRow
	if err := r.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	result := make([]customers.Customer, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}
