package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aquapoint/internal/models"
)

func TestCategories_ReturnsJSONList(t *testing.T) {
	env := newTestEnv(t)
	mustTestCategory(t, env, "Handler Cat", "handler-test-categories")

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	env.Public.Categories(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Categories: got status %d, want %d", rec.Code, http.StatusOK)
	}

	var items []models.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	found := false
	for _, c := range items {
		if c.Slug == "handler-test-categories" {
			found = true
		}
	}
	if !found {
		t.Error("created category missing from listing")
	}
}

func TestCategories_SecondCallServedFromCache(t *testing.T) {
	env := newTestEnv(t)
	mustTestCategory(t, env, "Cache Cat", "handler-test-cache")

	// First call populates the cache.
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	env.Public.Categories(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first call: status %d", rec.Code)
	}
	first := rec.Body.String()

	rec = httptest.NewRecorder()
	env.Public.Categories(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("second call: status %d", rec.Code)
	}
	if rec.Body.String() != first {
		t.Error("cached response differs from first response")
	}
}

func TestCategoryBySlug_UnknownReturns404(t *testing.T) {
	env := newTestEnv(t)

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/categories/no-such", nil), "slug", "no-such-category")
	rec := httptest.NewRecorder()
	env.Public.CategoryBySlug(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("CategoryBySlug: got status %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "Category not found") {
		t.Errorf("body = %q, want not-found error", rec.Body.String())
	}
}

func TestProducts_FilterByCategorySlug(t *testing.T) {
	env := newTestEnv(t)
	cat := mustTestCategory(t, env, "Pumps", "handler-test-pumps")
	other := mustTestCategory(t, env, "Valves", "handler-test-valves")
	mustTestProduct(t, env, cat.ID, "Borewell Pump", "handler-test-borewell-pump", false)
	mustTestProduct(t, env, other.ID, "Gate Valve", "handler-test-gate-valve", false)

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=handler-test-pumps", nil)
	rec := httptest.NewRecorder()
	env.Public.Products(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Products: got status %d, want %d", rec.Code, http.StatusOK)
	}

	var items []models.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d products, want 1", len(items))
	}
	if items[0].Slug != "handler-test-borewell-pump" {
		t.Errorf("got product %q, want handler-test-borewell-pump", items[0].Slug)
	}
	if items[0].Category == nil || items[0].Category.Slug != "handler-test-pumps" {
		t.Error("product category not joined in response")
	}
}

func TestProducts_FilterByFeatured(t *testing.T) {
	env := newTestEnv(t)
	cat := mustTestCategory(t, env, "Drip", "handler-test-drip")
	mustTestProduct(t, env, cat.ID, "Drip Kit", "handler-test-drip-kit", true)
	mustTestProduct(t, env, cat.ID, "Drip Tape", "handler-test-drip-tape", false)

	req := httptest.NewRequest(http.MethodGet, "/api/products?featured=true", nil)
	env.CatalogCache.InvalidateAll(req.Context())
	rec := httptest.NewRecorder()
	env.Public.Products(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Products: got status %d, want %d", rec.Code, http.StatusOK)
	}

	var items []models.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	var sawFeatured bool
	for _, p := range items {
		if !p.Featured {
			t.Errorf("non-featured product %q in featured listing", p.Slug)
		}
		if p.Slug == "handler-test-drip-kit" {
			sawFeatured = true
		}
	}
	if !sawFeatured {
		t.Error("featured product missing from listing")
	}
}

func TestProducts_FilterByCategoryAndFeatured(t *testing.T) {
	env := newTestEnv(t)
	cat := mustTestCategory(t, env, "Sprinklers", "handler-test-sprinklers")
	mustTestProduct(t, env, cat.ID, "Rain Gun", "handler-test-rain-gun", true)
	mustTestProduct(t, env, cat.ID, "Micro Sprinkler", "handler-test-micro-sprinkler", false)

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=handler-test-sprinklers&featured=true", nil)
	env.CatalogCache.InvalidateAll(req.Context())
	rec := httptest.NewRecorder()
	env.Public.Products(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Products: got status %d, want %d", rec.Code, http.StatusOK)
	}

	var items []models.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d products, want 1", len(items))
	}
	if items[0].Slug != "handler-test-rain-gun" {
		t.Errorf("got product %q, want handler-test-rain-gun", items[0].Slug)
	}
}

func TestProductBySlug_ReturnsProduct(t *testing.T) {
	env := newTestEnv(t)
	cat := mustTestCategory(t, env, "Solar", "handler-test-solar")
	mustTestProduct(t, env, cat.ID, "Solar Pump", "handler-test-solar-pump", true)

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/products/x", nil), "slug", "handler-test-solar-pump")
	rec := httptest.NewRecorder()
	env.Public.ProductBySlug(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("ProductBySlug: got status %d, want %d", rec.Code, http.StatusOK)
	}

	var p models.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !p.Featured {
		t.Error("featured flag lost in response")
	}
}

func TestInquiry_ValidSubmission(t *testing.T) {
	env := newTestEnv(t)
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM inquiries WHERE email = $1", "handler-test@example.com")
	})

	body := `{"name":"Test Buyer","email":"handler-test@example.com","message":"Interested in drip kits."}`
	req := httptest.NewRequest(http.MethodPost, "/api/inquiry", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Public.Inquiry(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Inquiry: got status %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Inquiry received successfully!") {
		t.Errorf("body = %q, want success message", rec.Body.String())
	}
}

func TestInquiry_InvalidEmailRejected(t *testing.T) {
	env := newTestEnv(t)

	body := `{"name":"Test Buyer","email":"not-an-email","message":"Hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/inquiry", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Public.Inquiry(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Inquiry: got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
