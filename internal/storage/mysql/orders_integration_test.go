//go:build integration

package mysql_test

import (
	"testing"
	"time"

	"github.com/mnmarketlink/platform/internal/domain/customers"
	"github.com/mnmarketlink/platform/internal/domain/orders"
	"github.com/mnmarketlink/platform/internal/domain/products"
	"github.com/mnmarketlink/platform/internal/domain/vendors"
	mysqlstorage "github.com/mnmarketlink/platform/internal/storage/mysql"
)

func TestOrderRepositoryIntegration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	customerRepo := mysqlstorage.NewCustomerRepository(db)
	vendorRepo := mysqlstorage.NewVendorRepository(db)
	productRepo := mysqlstorage.NewProductRepository(db)
	orderRepo := mysqlstorage.NewOrderRepository(db)

	customer, err := customerRepo.Save(customers.Customer{Name: "Alex Carlson", Email: "alex@example.com"})
	if err != nil {
		t.Fatalf("save customer failed: %v", err)
	}
	vendor, err := vendorRepo.Save(vendors.Vendor{BusinessName: "Red Barn Bakery"})
	if err != nil {
		t.Fatalf("save vendor failed: %v", err)
	}
	product, err := productRepo.Save(products.Product{VendorID: vendor.ID, Name: "Sourdough Loaf", PriceCents: 800})
	if err != nil {
		t.Fatalf("save product failed: %v", err)
	}

	placed, err := orderRepo.Save(orders.Order{
		CustomerID: customer.ID,
		OrderDate:  time.Now().UTC(),
		TotalCents: 1600,
		Items: []orders.Item{
			{ProductID: product.ID, ProductName: product.Name, Quantity: 2, UnitPriceCents: 800},
		},
	})
	if err != nil {
		t.Fatalf("save order failed: %v", err)
	}
	if placed.ID == 0 {
		t.Fatalf("expected generated order ID")
	}
	if len(placed.Items) != 1 || placed.Items[0].ID == 0 {
		t.Fatalf("expected item IDs assigned, got %+v", placed.Items)
	}

	fetched, err := orderRepo.FindByID(placed.ID)
	if err != nil {
		t.Fatalf("find order failed: %v", err)
	}
	if fetched.TotalCents != 1600 {
		t.Fatalf("unexpected total: %d", fetched.TotalCents)
	}
	if len(fetched.Items) != 1 || fetched.Items[0].ProductName != "Sourdough Loaf" {
		t.Fatalf("unexpected items: %+v", fetched.Items)
	}

	history, err := orderRepo.ListByCustomer(customer.ID, 0, 10)
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 order, got %d", len(history))
	}
	if len(history[0].Items) != 1 {
		t.Fatalf("expected items loaded with history, got %+v", history[0])
	}
}
