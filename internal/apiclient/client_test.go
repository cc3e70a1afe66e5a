package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aquapoint/internal/adminquery"
	"aquapoint/internal/models"
)

// The admin methods must satisfy the query engine's backend contract.
var _ adminquery.Backend = (*Client)(nil)

func TestCategories_DecodesList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/categories" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]models.Category{
			{ID: 1, Name: "Irrigation Systems", Slug: "irrigation-systems"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "irrigation-systems" {
		t.Fatalf("got %+v", got)
	}
}

func TestProducts_CategoryFilterInQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("category"); got != "solar-solutions" {
			t.Errorf("category param = %q", got)
		}
		json.NewEncoder(w).Encode([]models.Product{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Products(context.Background(), "solar-solutions"); err != nil {
		t.Fatalf("Products: %v", err)
	}
}

func TestDo_BearerTokenSentOnAdminCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode([]models.Product{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-123")
	if _, err := c.ListProducts(context.Background()); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
}

func TestDo_ServerErrorBodySurfacedInError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Product not found"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ProductBySlug(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !strings.Contains(err.Error(), "Product not found") {
		t.Errorf("error = %v, want server message included", err)
	}
}

func TestLogin_InstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(LoginResult{AccessToken: "tok-456", TokenType: "bearer"})
		default:
			if got := r.Header.Get("Authorization"); got != "Bearer tok-456" {
				t.Errorf("Authorization = %q after login", got)
			}
			json.NewEncoder(w).Encode([]models.Product{})
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Login(context.Background(), "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.AccessToken != "tok-456" {
		t.Fatalf("token = %q", res.AccessToken)
	}
	if _, err := c.ListProducts(context.Background()); err != nil {
		t.Fatalf("ListProducts after login: %v", err)
	}
}

func TestUpdateFeatured_SendsPartialBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/admin/products/7" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body) != 1 || body["featured"] != true {
			t.Errorf("body = %v, want featured only", body)
		}
		json.NewEncoder(w).Encode(models.Product{ID: 7, Featured: true})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.UpdateFeatured(context.Background(), 7, true); err != nil {
		t.Fatalf("UpdateFeatured: %v", err)
	}
}

func TestBulkProducts_SendsOperationAndIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Operation  string  `json:"operation"`
			ProductIDs []int64 `json:"product_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Operation != "unfeature" || len(body.ProductIDs) != 2 {
			t.Errorf("body = %+v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Unfeatured 2 products"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.BulkProducts(context.Background(), models.BulkUnfeature, []int64{3, 4}); err != nil {
		t.Fatalf("BulkProducts: %v", err)
	}
}
