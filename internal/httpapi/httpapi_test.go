package httpapi_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"log/slog"

	"github.com/mnmarketlink/platform/internal/auth"
	"github.com/mnmarketlink/platform/internal/domain"
	"github.com/mnmarketlink/platform/internal/domain/customers"
	"github.com/mnmarketlink/platform/internal/domain/markets"
	"github.com/mnmarketlink/platform/internal/domain/products"
	"github.com/mnmarketlink/platform/internal/domain/vendors"
	"github.com/mnmarketlink/platform/internal/httpapi"
	"github.com/mnmarketlink/platform/internal/storage/memory"
)

type testAPI struct {
	mux       *http.ServeMux
	container domain.Container
}

func newTestAPI(t *testing.T) testAPI {
	t.Helper()

	marketRepo := memory.NewMarketRepository()
	vendorRepo := memory.NewVendorRepository()
	container := domain.New(domain.Options{
		MarketRepo:   marketRepo,
		VendorRepo:   vendorRepo,
		ProductRepo:  memory.NewProductRepository(vendorRepo, marketRepo),
		CustomerRepo: memory.NewCustomerRepository(),
		OrderRepo:    memory.NewOrderRepository(),
		UserRepo:     memory.NewUserRepository(),
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	mux := http.NewServeMux()
	httpapi.Register(mux, logger, container, tokens)

	return testAPI{mux: mux, container: container}
}

func (a testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
}

func TestPing(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/ping", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var resp map[string]any
	decodeBody(t, rec, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("unexpected ping body: %v", resp)
	}
}

func TestMarketListAndVendors(t *testing.T) {
	api := newTestAPI(t)

	market, err := api.container.Markets.Create(markets.CreateInput{
		Name:     "Mill City Farmers Market",
		Location: "Minneapolis",
	})
	if err != nil {
		t.Fatalf("create market: %v", err)
	}
	vendor, err := api.container.Vendors.Create(vendors.CreateInput{BusinessName: "North Shore Honey Co."})
	if err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	if err := api.container.Vendors.AssignToMarket(vendor.ID, market.ID); err != nil {
		t.Fatalf("assign vendor: %v", err)
	}

	rec := api.do(t, http.MethodGet, "/v1/markets", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list markets status: %d", rec.Code)
	}
	var list struct {
		Count int `json:"count"`
	}
	decodeBody(t, rec, &list)
	if list.Count != 1 {
		t.Fatalf("expected 1 market, got %d", list.Count)
	}

	rec = api.do(t, http.MethodGet, fmt.Sprintf("/v1/markets/%d/vendors", market.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("market vendors status: %d (body: %s)", rec.Code, rec.Body.String())
	}
	var vendorList struct {
		Count int `json:"count"`
		Data  []struct {
			BusinessName string `json:"BusinessName"`
		} `json:"data"`
	}
	decodeBody(t, rec, &vendorList)
	if vendorList.Count != 1 || vendorList.Data[0].BusinessName != "North Shore Honey Co." {
		t.Fatalf("unexpected vendor list: %s", rec.Body.String())
	}
}

func TestMarketVendorsUnknownMarket(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/markets/999/vendors", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProductSearch(t *testing.T) {
	api := newTestAPI(t)

	market, _ := api.container.Markets.Create(markets.CreateInput{Name: "Rochester Farmers Market", Location: "Rochester"})
	vendor, _ := api.container.Vendors.Create(vendors.CreateInput{BusinessName: "Prairie Roots Produce"})
	if err := api.container.Vendors.AssignToMarket(vendor.ID, market.ID); err != nil {
		t.Fatalf("assign vendor: %v", err)
	}
	if _, err := api.container.Products.Create(products.CreateInput{VendorID: vendor.ID, Name: "Heirloom Tomatoes", PriceCents: 450}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	rec := api.do(t, http.MethodGet, "/v1/products/search?q=tomato", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search status: %d", rec.Code)
	}
	var resp struct {
		Count int `json:"count"`
		Data  []struct {
			ProductName    string `json:"ProductName"`
			MarketLocation string `json:"MarketLocation"`
		} `json:"data"`
	}
	decodeBody(t, rec, &resp)
	if resp.Count != 1 {
		t.Fatalf("expected 1 hit, got %d", resp.Count)
	}
	if resp.Data[0].MarketLocation != "Rochester" {
		t.Fatalf("unexpected listing: %s", rec.Body.String())
	}
}

func TestProductSearchRequiresKeyword(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/products/search", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank keyword, got %d", rec.Code)
	}
}

func TestPlaceAndFetchOrder(t *testing.T) {
	api := newTestAPI(t)

	vendor, _ := api.container.Vendors.Create(vendors.CreateInput{BusinessName: "Red Barn Bakery"})
	product, err := api.container.Products.Create(products.CreateInput{VendorID: vendor.ID, Name: "Sourdough Loaf", PriceCents: 800})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	customer, err := api.container.Customers.Create(customers.CreateInput{Name: "Alex Carlson", Email: "alex@example.com"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	rec := api.do(t, http.MethodPost, "/v1/orders", map[string]any{
		"customer_id": customer.ID,
		"items": []map[string]any{
			{"product_id": product.ID, "quantity": 3},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("place order status: %d (body: %s)", rec.Code, rec.Body.String())
	}

	var placed struct {
		ID         int64 `json:"ID"`
		TotalCents int64 `json:"TotalCents"`
	}
	decodeBody(t, rec, &placed)
	if placed.TotalCents != 2400 {
		t.Fatalf("unexpected total: %d", placed.TotalCents)
	}

	rec = api.do(t, http.MethodGet, fmt.Sprintf("/v1/orders/%d", placed.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get order status: %d", rec.Code)
	}
	var fetched struct {
		Items []struct {
			ProductName string `json:"ProductName"`
			Quantity    int    `json:"Quantity"`
		} `json:"Items"`
	}
	decodeBody(t, rec, &fetched)
	if len(fetched.Items) != 1 || fetched.Items[0].ProductName != "Sourdough Loaf" {
		t.Fatalf("unexpected order items: %s", rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, fmt.Sprintf("/v1/customers/%d/orders", customer.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("customer orders status: %d", rec.Code)
	}
	var history struct {
		Count int `json:"count"`
	}
	decodeBody(t, rec, &history)
	if history.Count != 1 {
		t.Fatalf("expected 1 order in history, got %d", history.Count)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/orders", map[string]any{"customer_id": 1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty order, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodPost, "/v1/orders", map[string]any{
		"items": []map[string]any{{"product_id": 1, "quantity": 1}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing customer, got %d", rec.Code)
	}
}

func TestAuthRegisterAndLogin(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/auth/register", map[string]any{
		"email":    "staff@example.com",
		"name":     "Market Staff",
		"password": "longenough",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status: %d (body: %s)", rec.Code, rec.Body.String())
	}

	var registered struct {
		Token struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		} `json:"token"`
	}
	decodeBody(t, rec, &registered)
	if registered.Token.AccessToken == "" || registered.Token.TokenType != "bearer" {
		t.Fatalf("unexpected token payload: %s", rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, "/v1/auth/login", map[string]any{
		"email":    "staff@example.com",
		"password": "longenough",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status: %d", rec.Code)
	}

	rec = api.do(t, http.MethodPost, "/v1/auth/login", map[string]any{
		"email":    "staff@example.com",
		"password": "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", rec.Code)
	}
}

func TestPublicPreorderIntake(t *testing.T) {
	api := newTestAPI(t)

	vendor, _ := api.container.Vendors.Create(vendors.CreateInput{BusinessName: "North Shore Honey Co."})
	product, _ := api.container.Products.Create(products.CreateInput{VendorID: vendor.ID, Name: "Wildflower Honey", PriceCents: 1200})
	customer, _ := api.container.Customers.Create(customers.CreateInput{Name: "Jordan Lee", Email: "jordan@example.com"})

	rec := api.do(t, http.MethodPost, "/public/preorder-intake", map[string]any{
		"customer_id": customer.ID,
		"items": []map[string]any{
			{"product_id": product.ID},
		},
	})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("intake status: %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
		Total  int64  `json:"total"`
	}
	decodeBody(t, rec, &resp)
	if resp.Status != "accepted" || resp.Total != 1200 {
		t.Fatalf("unexpected intake response: %s", rec.Body.String())
	}
}

func TestPublicPreorderIntakeValidation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/public/preorder-intake", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

var errStorageDown = errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")

// downMarketRepo simulates a storage outage.
type downMarketRepo struct{}

func (downMarketRepo) FindByID(int64) (markets.Market, error) {
	return markets.Market{}, errStorageDown
}
func (downMarketRepo) Save(markets.Market) (markets.Market, error) {
	return markets.Market{}, errStorageDown
}
func (downMarketRepo) List() ([]markets.Market, error) { return nil, errStorageDown }

func TestCreateMarketStorageFailureIsNotLeaked(t *testing.T) {
	container := domain.New(domain.Options{MarketRepo: downMarketRepo{}})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	mux := http.NewServeMux()
	httpapi.Register(mux, logger, container, tokens)
	api := testAPI{mux: mux, container: container}

	rec := api.do(t, http.MethodPost, "/v1/markets", map[string]any{
		"Name":     "Mill City Farmers Market",
		"Location": "Minneapolis",
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for storage failure, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &resp)
	if resp.Error != "internal error" {
		t.Fatalf("expected generic error message, got %q", resp.Error)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("storage error leaked to client: %s", rec.Body.String())
	}
}

func TestCreateMarketValidationStill400(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/markets", map[string]any{
		"Name":     "",
		"Location": "Minneapolis",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", rec.Code)
	}
}

func TestVendorListRejectsZeroLimit(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/vendors?limit=0", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for limit=0, got %d", rec.Code)
	}
}
