package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"aquapoint/internal/cache"
	"aquapoint/internal/models"
	"aquapoint/internal/store"
)

// Public groups handlers for the public-facing catalog API. List responses
// are served from the Redis catalog cache when possible; admin writes
// invalidate the cache.
type Public struct {
	categoryStore *store.CategoryStore
	productStore  *store.ProductStore
	inquiryStore  *store.InquiryStore
	catalogCache  *cache.Catalog
}

// NewPublic creates a new Public handler group.
func NewPublic(categories *store.CategoryStore, products *store.ProductStore, inquiries *store.InquiryStore, catalogCache *cache.Catalog) *Public {
	return &Public{
		categoryStore: categories,
		productStore:  products,
		inquiryStore:  inquiries,
		catalogCache:  catalogCache,
	}
}

// writeCached serializes v, stores it under key, and writes the response.
func (p *Public) writeCached(ctx context.Context, w http.ResponseWriter, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("catalog response encode failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	p.catalogCache.Set(ctx, key, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// writeFromCache writes a cached payload if present. Returns true on a hit.
func (p *Public) writeFromCache(ctx context.Context, w http.ResponseWriter, key string) bool {
	payload, ok := p.catalogCache.Get(ctx, key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
	return true
}

// Categories returns all categories in section order.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if p.writeFromCache(ctx, w, cache.CategoriesKey()) {
		return
	}

	items, err := p.categoryStore.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	if items == nil {
		items = []models.Category{}
	}

	p.writeCached(ctx, w, cache.CategoriesKey(), items)
}

// CategoryBySlug returns one category, or 404 when the slug is unknown.
func (p *Public) CategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	c, err := p.categoryStore.FindBySlug(slugParam)
	if err != nil {
		slog.Error("find category by slug failed", "error", err, "slug", slugParam)
		respondError(w, http.StatusInternalServerError, "Failed to load category")
		return
	}
	if c == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// Products returns the product listing. ?category= narrows to one category
// slug; ?featured=true or ?featured=false narrows by the featured flag.
// Other featured values are ignored.
func (p *Public) Products(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categorySlug := r.URL.Query().Get("category")
	featured := r.URL.Query().Get("featured")
	if featured != "true" && featured != "false" {
		featured = ""
	}

	key := cache.ProductsKey(categorySlug, featured)
	if p.writeFromCache(ctx, w, key) {
		return
	}

	var items []models.Product
	var err error
	limit, offset := parseLimitOffset(r, 100, 500)
	switch {
	case categorySlug != "":
		items, err = p.productStore.ListByCategorySlug(categorySlug)
		if err == nil {
			items = narrowFeatured(items, featured)
		}
	case featured == "true":
		items, err = p.productStore.ListFeatured(limit)
	default:
		items, err = p.productStore.List(limit, offset)
		if err == nil {
			items = narrowFeatured(items, featured)
		}
	}
	if err != nil {
		slog.Error("list products failed", "error", err, "category", categorySlug, "featured", featured)
		respondError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}

	p.writeCached(ctx, w, key, items)
}

// narrowFeatured keeps the products whose featured flag matches the query
// value. An empty value leaves the listing untouched.
func narrowFeatured(items []models.Product, featured string) []models.Product {
	if featured == "" {
		return items
	}
	want := featured == "true"
	kept := items[:0]
	for _, it := range items {
		if it.Featured == want {
			kept = append(kept, it)
		}
	}
	return kept
}

// ProductBySlug returns one product with its category, or 404.
func (p *Public) ProductBySlug(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	product, err := p.productStore.FindBySlug(slugParam)
	if err != nil {
		slog.Error("find product by slug failed", "error", err, "slug", slugParam)
		respondError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// inquiryRequest is the contact form payload.
type inquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Inquiry accepts a contact form submission.
func (p *Public) Inquiry(w http.ResponseWriter, r *http.Request) {
	var req inquiryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validateInquiry(req.Name, req.Email, req.Message); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	inq, err := p.inquiryStore.Create(&models.Inquiry{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		slog.Error("store inquiry failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to submit inquiry")
		return
	}

	slog.Info("inquiry received", "id", inq.ID, "email", inq.Email)
	respondMessage(w, "Inquiry received successfully!")
}
