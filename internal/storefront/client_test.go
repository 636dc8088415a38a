package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		query := r.URL.Query()
		if query.Get("page") != "1" {
			t.Errorf("expected page=1, got %s", query.Get("page"))
		}
		if query.Get("per_page") != "10" {
			t.Errorf("expected per_page=10, got %s", query.Get("per_page"))
		}

		products := []Product{
			{
				ID:        "prod-001",
				Handle:    "bungi-x-bobby-hoodie",
				Title:     "BUNGI X BOBBY Hoodie",
				Price:     60.0,
				Available: true,
			},
			{
				ID:        "prod-003",
				Handle:    "bungi-x-bobby-tee",
				Title:     "BUNGI X BOBBY Tee",
				Price:     32.0,
				Available: true,
				Variants: []Variant{
					{ID: "var-3001", Price: 32.0, Available: true, Options: map[string]string{"size": "S"}},
					{ID: "var-3002", Price: 32.0, Available: true, Options: map[string]string{"size": "M"}},
				},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(products)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	products, err := client.ListProducts(context.Background(), ListProductsParams{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Title != "BUNGI X BOBBY Hoodie" {
		t.Errorf("expected hoodie first, got %q", products[0].Title)
	}
	if !products[1].HasVariants() {
		t.Error("expected tee to report variants")
	}
}

func TestListProductsWithSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "hoodie" {
			t.Errorf("expected search=hoodie, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Product{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.ListProducts(context.Background(), ListProductsParams{Page: 1, PerPage: 10, Search: "hoodie"}); err != nil {
		t.Fatalf("ListProducts with search failed: %v", err)
	}
}

func TestListProductsAvailableOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("available"); got != "true" {
			t.Errorf("expected available=true, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Product{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.ListProducts(context.Background(), ListProductsParams{Page: 1, PerPage: 10, AvailableOnly: true}); err != nil {
		t.Fatalf("ListProducts available only failed: %v", err)
	}
}

func TestGetProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expectedPath := "/api/products/bungi-x-bobby-hoodie"
		if r.URL.Path != expectedPath {
			t.Errorf("expected path %s, got %s", expectedPath, r.URL.Path)
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Product{
			ID:     "prod-001",
			Handle: "bungi-x-bobby-hoodie",
			Title:  "BUNGI X BOBBY Hoodie",
			Price:  60.0,
			Variants: []Variant{
				{ID: "var-1001", Available: true, Options: map[string]string{"color": "Black", "size": "S"}},
				{ID: "var-1002", Available: true, Options: map[string]string{"color": "Black", "size": "M"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	product, err := client.GetProduct(context.Background(), "bungi-x-bobby-hoodie")
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}

	if product.Handle != "bungi-x-bobby-hoodie" {
		t.Errorf("unexpected handle %q", product.Handle)
	}
	if len(product.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(product.Variants))
	}
}

func TestAccessTokenHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Storefront-Access-Token"); got != "tok_test" {
			t.Errorf("expected access token header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Product{})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithAccessToken("tok_test"))
	if _, err := client.ListProducts(context.Background(), ListProductsParams{}); err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
}

func TestListProductsErrorNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ListProducts(context.Background(), ListProductsParams{})
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("expected error to contain status code, got: %v", err)
	}
}

func TestVariantMatching(t *testing.T) {
	p := Product{
		Price: 60.0,
		Variants: []Variant{
			{ID: "var-1", Available: false, Options: map[string]string{"color": "Black", "size": "S"}},
			{ID: "var-2", Available: true, Options: map[string]string{"color": "Black", "size": "M"}},
			{ID: "var-3", Available: true, Options: map[string]string{"color": "Violet", "size": "M"}},
		},
	}

	if v := p.FindVariant(map[string]string{"color": "Violet", "size": "M"}); v == nil || v.ID != "var-3" {
		t.Errorf("expected var-3, got %+v", v)
	}
	if v := p.FindVariant(map[string]string{"size": "XL"}); v != nil {
		t.Errorf("expected no match for XL, got %+v", v)
	}

	// Default variant skips unavailable ones.
	if v := p.DefaultVariant(); v == nil || v.ID != "var-2" {
		t.Errorf("expected var-2 as default, got %+v", v)
	}

	names := p.OptionNames()
	if len(names) != 2 || names[0] != "color" || names[1] != "size" {
		t.Errorf("unexpected option names %v", names)
	}
	sizes := p.OptionValues("size")
	if len(sizes) != 2 || sizes[0] != "S" || sizes[1] != "M" {
		t.Errorf("unexpected size values %v", sizes)
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(52.8); got != "$52.80" {
		t.Errorf("expected $52.80, got %s", got)
	}
	if got := FormatPrice(0); got != "$0.00" {
		t.Errorf("expected $0.00, got %s", got)
	}
}
