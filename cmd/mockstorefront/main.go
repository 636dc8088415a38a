// Package main implements a mock storefront API server for local development.
package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/bungibobby/shop-terminal-go/internal/storefront"
)

//go:embed testdata/*
var testdataFS embed.FS

var products []storefront.Product
var sessionCounter atomic.Int64

func init() {
	data, err := testdataFS.ReadFile("testdata/products.json")
	if err != nil {
		log.Fatal("failed to load products.json", "err", err)
	}
	if err := json.Unmarshal(data, &products); err != nil {
		log.Fatal("failed to parse products.json", "err", err)
	}
}

func main() {
	addr := getEnv("MOCKSTOREFRONT_ADDR", ":18081")

	http.HandleFunc("/api/products", handleProducts)
	http.HandleFunc("/api/products/", handleProductByHandle)
	http.HandleFunc("/api/checkout", handleCheckout)

	log.Info("mock storefront listening", "addr", addr, "products", len(products))
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal("server error", "err", err)
	}
}

func handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()

	// Parse pagination
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(query.Get("per_page"))
	if perPage < 1 {
		perPage = 10
	}

	filtered := filterProducts(products, query.Get("search"), query.Get("available") == "true")

	// Paginate
	start := (page - 1) * perPage
	end := start + perPage
	if start >= len(filtered) {
		filtered = []storefront.Product{}
	} else {
		if end > len(filtered) {
			end = len(filtered)
		}
		filtered = filtered[start:end]
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(filtered)
}

func handleProductByHandle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	handle := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if handle == "" {
		http.Error(w, "Product handle required", http.StatusBadRequest)
		return
	}

	for _, p := range products {
		if p.Handle == handle {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(p)
			return
		}
	}

	writeError(w, http.StatusNotFound, "Product not found")
}

// handleCheckout validates the requested lines against the catalog and mints
// a fresh checkout session. Every call creates a new session, matching the
// real checkout function.
func handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req storefront.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	for _, item := range req.Items {
		if item.Quantity < 1 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid quantity for variant %s", item.VariantID))
			return
		}
		variant := findVariant(item.VariantID)
		if variant == nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown variant %s", item.VariantID))
			return
		}
		if !variant.Available {
			writeError(w, http.StatusConflict, fmt.Sprintf("Variant %s is sold out", item.VariantID))
			return
		}
	}

	n := sessionCounter.Add(1)
	session := storefront.CheckoutSession{
		CheckoutURL: fmt.Sprintf("https://checkout.bungibobby.test/session/%d", n),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

func findVariant(variantID string) *storefront.Variant {
	for i := range products {
		for j := range products[i].Variants {
			if products[i].Variants[j].ID == variantID {
				return &products[i].Variants[j]
			}
		}
	}
	return nil
}

func filterProducts(products []storefront.Product, search string, availableOnly bool) []storefront.Product {
	if search == "" && !availableOnly {
		return products
	}

	search = strings.ToLower(search)
	var filtered []storefront.Product

	for _, p := range products {
		if search != "" {
			if !strings.Contains(strings.ToLower(p.Title), search) &&
				!strings.Contains(strings.ToLower(p.DescriptionHTML), search) {
				continue
			}
		}
		if availableOnly && !p.Available {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(storefront.APIError{Message: message})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
