package vendors_test

import (
	"errors"
	"testing"

	"github.com/mnmarketlink/platform/internal/domain/markets"
	"github.com/mnmarketlink/platform/internal/domain/vendors"
	"github.com/mnmarketlink/platform/internal/storage/memory"
)

func TestServiceCreateAndGet(t *testing.T) {
	repo := memory.NewVendorRepository()
	svc := vendors.NewService(repo)

	created, err := svc.Create(vendors.CreateInput{BusinessName: "Prairie Roots Produce"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected ID to be set")
	}

	fetched, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if fetched.BusinessName != "Prairie Roots Produce" {
		t.Fatalf("unexpected business name: %s", fetched.BusinessName)
	}
}

func TestServiceCreateRequiresName(t *testing.T) {
	svc := vendors.NewService(memory.NewVendorRepository())

	if _, err := svc.Create(vendors.CreateInput{BusinessName: "   "}); !errors.Is(err, vendors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank business name, got %v", err)
	}
}

func TestAssignToMarketAndListForMarket(t *testing.T) {
	marketRepo := memory.NewMarketRepository()
	vendorRepo := memory.NewVendorRepository()
	svc := vendors.NewService(vendorRepo)

	market, err := markets.NewService(marketRepo).Create(markets.CreateInput{
		Name:     "Mill City Farmers Market",
		Location: "Minneapolis",
	})
	if err != nil {
		t.Fatalf("create market failed: %v", err)
	}

	honey, err := svc.Create(vendors.CreateInput{BusinessName: "North Shore Honey Co."})
	if err != nil {
		t.Fatalf("create vendor failed: %v", err)
	}
	bakery, err := svc.Create(vendors.CreateInput{BusinessName: "Red Barn Bakery"})
	if err != nil {
		t.Fatalf("create vendor failed: %v", err)
	}

	if err := svc.AssignToMarket(honey.ID, market.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	// repeat assignment must be a no-op
	if err := svc.AssignToMarket(honey.ID, market.ID); err != nil {
		t.Fatalf("repeat assign failed: %v", err)
	}

	got, err := svc.ListForMarket(market.ID)
	if err != nil {
		t.Fatalf("list for market failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 vendor at market, got %d", len(got))
	}
	if got[0].ID != honey.ID {
		t.Fatalf("unexpected vendor at market: %d", got[0].ID)
	}
	_ = bakery
}

func TestAssignToMarketUnknownVendor(t *testing.T) {
	svc := vendors.NewService(memory.NewVendorRepository())

	if err := svc.AssignToMarket(1234, 1); !errors.Is(err, vendors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceListPagination(t *testing.T) {
	repo := memory.NewVendorRepository()
	svc := vendors.NewService(repo)

	for _, name := range []string{"A Farm", "B Farm", "C Farm"} {
		if _, err := svc.Create(vendors.CreateInput{BusinessName: name}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	got, err := svc.List(1, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 vendors, got %d", len(got))
	}
	if got[0].BusinessName != "B Farm" {
		t.Fatalf("unexpected first vendor: %s", got[0].BusinessName)
	}
}
