package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mnmarketlink/platform/internal/config"
	"github.com/mnmarketlink/platform/internal/database"
	"github.com/mnmarketlink/platform/internal/domain/customers"
	"github.com/mnmarketlink/platform/internal/domain/markets"
	domainorders "github.com/mnmarketlink/platform/internal/domain/orders"
	"github.com/mnmarketlink/platform/internal/domain/products"
	"github.com/mnmarketlink/platform/internal/domain/vendors"
	"github.com/mnmarketlink/platform/internal/logger"
	mysqlstorage "github.com/mnmarketlink/platform/internal/storage/mysql"
)

// seed applies the schema and loads the sample dataset. Both steps are
// idempotent: applied migrations are recorded, and seeding is skipped when
// the database already holds markets.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logr := logger.New("development")
		logr.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logr := logger.New(cfg.Env)

	if cfg.DataBackend != "mysql" {
		logr.Error("seed command requires DATA_BACKEND=mysql")
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.Connect(ctx, database.Options{
		DSN:             database.BuildDSN(cfg.Database),
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		Logger:          logr,
	})
	if err != nil {
		logr.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	migrator := database.NewSQLMigrator(db.DB, database.MigrationsFS(), database.MigrationsPath, logr)
	if err := db.RunMigrations(ctx, migrator); err != nil {
		logr.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	marketRepo := mysqlstorage.NewMarketRepository(db.DB)
	vendorRepo := mysqlstorage.NewVendorRepository(db.DB)
	productRepo := mysqlstorage.NewProductRepository(db.DB)
	customerRepo := mysqlstorage.NewCustomerRepository(db.DB)
	orderRepo := mysqlstorage.NewOrderRepository(db.DB)

	existing, err := marketRepo.List()
	if err != nil {
		logr.Error("failed to check existing markets", "err", err)
		os.Exit(1)
	}
	if len(existing) > 0 {
		logr.Info("database already seeded; nothing to do", "markets", len(existing))
		return
	}

	sampleMarkets := []markets.Market{
		{Name: "Mill City Farmers Market", Location: "Minneapolis"},
		{Name: "St. Paul Downtown Farmers Market", Location: "St. Paul"},
		{Name: "Rochester Farmers Market", Location: "Rochester"},
	}

	createdMarkets := make([]markets.Market, 0, len(sampleMarkets))
	for _, m := range sampleMarkets {
		saved, err := marketRepo.Save(m)
		if err != nil {
			logr.Error("failed to seed market", "name", m.Name, "err", err)
			os.Exit(1)
		}
		createdMarkets = append(createdMarkets, saved)
	}

	sampleVendors := []vendors.Vendor{
		{BusinessName: "Prairie Roots Produce"},
		{BusinessName: "North Shore Honey Co."},
		{BusinessName: "Red Barn Bakery"},
	}

	createdVendors := make([]vendors.Vendor, 0, len(sampleVendors))
	for _, v := range sampleVendors {
		saved, err := vendorRepo.Save(v)
		if err != nil {
			logr.Error("failed to seed vendor", "business_name", v.BusinessName, "err", err)
			os.Exit(1)
		}
		createdVendors = append(createdVendors, saved)
	}

	attendance := []struct {
		vendor int
		market int
	}{
		{0, 0}, {0, 1}, // Prairie Roots sells in Minneapolis and St. Paul
		{1, 0},
		{2, 1}, {2, 2},
	}
	for _, a := range attendance {
		if err := vendorRepo.AssignToMarket(createdVendors[a.vendor].ID, createdMarkets[a.market].ID); err != nil {
			logr.Error("failed to assign vendor to market", "err", err)
			os.Exit(1)
		}
	}

	sampleProducts := []products.Product{
		{VendorID: createdVendors[0].ID, Name: "Heirloom Tomatoes", PriceCents: 450},
		{VendorID: createdVendors[0].ID, Name: "Sweet Corn", PriceCents: 600},
		{VendorID: createdVendors[1].ID, Name: "Wildflower Honey", PriceCents: 1200},
		{VendorID: createdVendors[2].ID, Name: "Sourdough Loaf", PriceCents: 800},
	}

	createdProducts := make([]products.Product, 0, len(sampleProducts))
	for _, p := range sampleProducts {
		saved, err := productRepo.Save(p)
		if err != nil {
			logr.Error("failed to seed product", "name", p.Name, "err", err)
			os.Exit(1)
		}
		createdProducts = append(createdProducts, saved)
	}

	sampleCustomers := []customers.Customer{
		{Name: "Alex Carlson", Email: "alex@example.com"},
		{Name: "Jordan Lee", Email: "jordan@example.com"},
	}

	createdCustomers := make([]customers.Customer, 0, len(sampleCustomers))
	for _, c := range sampleCustomers {
		saved, err := customerRepo.Save(c)
		if err != nil {
			logr.Error("failed to seed customer", "email", c.Email, "err", err)
			os.Exit(1)
		}
		createdCustomers = append(createdCustomers, saved)
	}

	pickup := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
	sampleOrders := []domainorders.Order{
		{
			CustomerID: createdCustomers[0].ID,
			PickupDate: &pickup,
			Items: []domainorders.Item{
				{ProductID: createdProducts[0].ID, Quantity: 2, UnitPriceCents: createdProducts[0].PriceCents},
				{ProductID: createdProducts[3].ID, Quantity: 1, UnitPriceCents: createdProducts[3].PriceCents},
			},
		},
		{
			CustomerID: createdCustomers[1].ID,
			Items: []domainorders.Item{
				{ProductID: createdProducts[2].ID, Quantity: 1, UnitPriceCents: createdProducts[2].PriceCents},
			},
		},
	}

	for i := range sampleOrders {
		sampleOrders[i].TotalCents = computeTotal(sampleOrders[i].Items)
		saved, err := orderRepo.Save(sampleOrders[i])
		if err != nil {
			logr.Error("failed to seed order", "customer_id", sampleOrders[i].CustomerID, "err", err)
			os.Exit(1)
		}
		logr.Info("seeded order", "order_id", saved.ID, "customer_id", saved.CustomerID)
	}

	for _, m := range createdMarkets {
		fmt.Printf("Market: %s (%s)\n", m.Name, m.Location)
	}
	for _, c := range createdCustomers {
		fmt.Printf("Customer: %s (%s)\n", c.Name, c.Email)
	}

	logr.Info("seed complete")
}

func computeTotal(items []domainorders.Item) int64 {
	var total int64
	for _, item := range items {
		total += int64(item.Quantity) * item.UnitPriceCents
	}
	return total
}
