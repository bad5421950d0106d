package customers_test

import (
	"errors"
	"testing"

	"github.com/mnmarketlink/platform/internal/domain/customers"
	"github.com/mnmarketlink/platform/internal/storage/memory"
)

func TestServiceCreateAndGet(t *testing.T) {
	repo := memory.NewCustomerRepository()
	svc := customers.NewService(repo)

	created, err := svc.Create(customers.CreateInput{
		Name:  "Alex Carlson",
		Email: "Alex@Example.com",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected ID to be set")
	}
	if created.Email != "alex@example.com" {
		t.Fatalf("expected email lowercased, got %s", created.Email)
	}

	fetched, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if fetched.Name != "Alex Carlson" {
		t.Fatalf("unexpected name: %s", fetched.Name)
	}
}

func TestServiceCreateDuplicateEmail(t *testing.T) {
	svc := customers.NewService(memory.NewCustomerRepository())

	if _, err := svc.Create(customers.CreateInput{Name: "Alex", Email: "alex@example.com"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(customers.CreateInput{Name: "Other Alex", Email: "alex@example.com"}); !errors.Is(err, customers.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := customers.NewService(memory.NewCustomerRepository())

	if _, err := svc.Create(customers.CreateInput{Name: "", Email: "a@example.com"}); !errors.Is(err, customers.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
	if _, err := svc.Create(customers.CreateInput{Name: "Alex", Email: "  "}); !errors.Is(err, customers.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing email, got %v", err)
	}
}

func TestServiceListOrderedByName(t *testing.T) {
	svc := customers.NewService(memory.NewCustomerRepository())

	for _, c := range []customers.CreateInput{
		{Name: "Jordan Lee", Email: "jordan@example.com"},
		{Name: "Alex Carlson", Email: "alex@example.com"},
	} {
		if _, err := svc.Create(c); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	got, err := svc.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(got))
	}
	if got[0].Name != "Alex Carlson" {
		t.Fatalf("expected list ordered by name, got %s first", got[0].Name)
	}
}
