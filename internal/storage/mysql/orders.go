package mysql

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mnmarketlink/platform/internal/domain/orders"
)

// OrderRepository persists orders and their line items.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository constructs a repository using a pooled DB handle.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type orderRow struct {
	ID         int64      `db:"id"`
	CustomerID int64      `db:"customer_id"`
	OrderDate  time.Time  `db:"order_date"`
	PickupDate *time.Time `db:"pickup_date"`
	TotalCents int64      `db:"total_cents"`
}

func (r orderRow) toDomain() orders.Order {
	return orders.Order{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		OrderDate:  r.OrderDate,
		PickupDate: r.PickupDate,
		TotalCents: r.TotalCents,
	}
}

type orderItemRow struct {
	ID             int64  `db:"id"`
	OrderID        int64  `db:"order_id"`
	ProductID      int64  `db:"product_id"`
	ProductName    string `db:"product_name"`
	Quantity       int    `db:"quantity"`
	UnitPriceCents int64  `db:"unit_price_cents"`
	SortOrder      int    `db:"sort_order"`
}

// FindByID retrieves an order and its line items.
func (r *OrderRepository) FindByID(id int64) (orders.Order, error) {
	const query = `
        SELECT id, customer_id, order_date, pickup_date, total_cents
          FROM orders
         WHERE id = ?
    `

	var row orderRow
	if err := r.db.Get(&row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return orders.Order{}, orders.ErrNotFound
		}
		return orders.Order{}, fmt.Errorf("find order: %w", err)
	}

	order := row.toDomain()
	items, err := r.fetchItems(order.ID)
	if err != nil {
		return orders.Order{}, err
	}
	order.Items = items

	return order, nil
}

// fetchItems joins line items to products so each carries the product name.
func (r *OrderRepository) fetchItems(orderID int64) ([]orders.Item, error) {
	const query = `
        SELECT order_items.id               AS id,
               order_items.order_id         AS order_id,
               order_items.product_id       AS product_id,
               products.name                AS product_name,
               order_items.quantity         AS quantity,
               order_items.unit_price_cents AS unit_price_cents,
               order_items.sort_order       AS sort_order
          FROM order_items
          JOIN products ON order_items.product_id = products.id
         WHERE order_items.order_id = ?
         ORDER BY order_items.sort_order
    `

	var rows []orderItemRow
	if err := r.db.Select(&rows, query, orderID); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	items := make([]orders.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, orders.Item{
			ID:             row.ID,
			OrderID:        row.OrderID,
			ProductID:      row.ProductID,
			ProductName:    row.ProductName,
			Quantity:       row.Quantity,
			UnitPriceCents: row.UnitPriceCents,
			SortOrder:      row.SortOrder,
		})
	}
	return items, nil
}

// Save inserts or updates an order with its line items.
func (r *OrderRepository) Save(o orders.Order) (orders.Order, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return orders.Order{}, fmt.Errorf("begin tx: %w", err)
	}

	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now().UTC()
	}

	if o.ID == 0 {
		const insert = `
            INSERT INTO orders (customer_id, order_date, pickup_date, total_cents)
            VALUES (?, ?, ?, ?)
        `
		res, err := tx.Exec(insert, o.CustomerID, o.OrderDate, o.PickupDate, o.TotalCents)
		if err != nil {
			tx.Rollback()
			return orders.Order{}, fmt.Errorf("insert order: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			return orders.Order{}, fmt.Errorf("order insert id: %w", err)
		}
		o.ID = id
	} else {
		const update = `
            UPDATE orders
               SET customer_id = ?, order_date = ?, pickup_date = ?, total_cents = ?
             WHERE id = ?
        `
		if _, err := tx.Exec(update, o.CustomerID, o.OrderDate, o.PickupDate, o.TotalCents, o.ID); err != nil {
			tx.Rollback()
			return orders.Order{}, fmt.Errorf("update order: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM order_items WHERE order_id = ?`, o.ID); err != nil {
			tx.Rollback()
			return orders.Order{}, fmt.Errorf("delete order items: %w", err)
		}
	}

	const insertItem = `
        INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents, sort_order)
        VALUES (?, ?, ?, ?, ?)
    `
	for idx := range o.Items {
		item := &o.Items[idx]
		item.OrderID = o.ID
		item.SortOrder = idx

		res, err := tx.Exec(insertItem, o.ID, item.ProductID, item.Quantity, item.UnitPriceCents, idx)
		if err != nil {
			tx.Rollback()
			return orders.Order{}, fmt.Errorf("insert order item: %w", err)
		}
		if id, err := res.LastInsertId(); err == nil {
			item.ID = id
		}
	}

	if err := tx.Commit(); err != nil {
		return orders.Order{}, fmt.Errorf("commit order save: %w", err)
	}

	return o, nil
}

// ListByCustomer returns paginated orders for a customer, newest first.
func (r *OrderRepository) ListByCustomer(customerID int64, offset, limit int) ([]orders.Order, error) {
	const query = `
        SELECT id, customer_id, order_date, pickup_date, total_cents
          FROM orders
         WHERE customer_id = ?
         ORDER BY order_date DESC
         LIMIT ? OFFSET ?
    `

	var rows []orderRow
	if err := r.db.Select(&rows, query, customerID, limit, offset); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	result := make([]orders.Order, 0, len(rows))
	for _, row := range rows {
		order := row.toDomain()
		items, err := r.fetchItems(order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
		result = append(result, order)
	}
	return result, nil
}
