package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"aquapoint/internal/cache"
	"aquapoint/internal/models"
	"aquapoint/internal/slug"
	"aquapoint/internal/store"
)

// Admin groups the authenticated CRUD handlers behind the dashboard. Every
// write invalidates the public catalog cache so the site never serves
// stale listings.
type Admin struct {
	categoryStore *store.CategoryStore
	productStore  *store.ProductStore
	inquiryStore  *store.InquiryStore
	catalogCache  *cache.Catalog
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(categories *store.CategoryStore, products *store.ProductStore, inquiries *store.InquiryStore, catalogCache *cache.Catalog) *Admin {
	return &Admin{
		categoryStore: categories,
		productStore:  products,
		inquiryStore:  inquiries,
		catalogCache:  catalogCache,
	}
}

// ListProducts returns products for the dashboard table. With a non-empty
// ?q= term it searches name, SKU, and description; otherwise it lists all.
func (a *Admin) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 100, 500)

	var items []models.Product
	var err error
	if term := strings.TrimSpace(r.URL.Query().Get("q")); term != "" {
		items, err = a.productStore.Search(term, limit, offset)
	} else {
		items, err = a.productStore.List(limit, offset)
	}
	if err != nil {
		slog.Error("admin list products failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// productRequest is the create payload for a product.
type productRequest struct {
	CategoryID        int64    `json:"category_id"`
	Name              string   `json:"name"`
	Slug              string   `json:"slug"`
	Description       string   `json:"description"`
	Images            []string `json:"images"`
	Videos            []string `json:"videos"`
	SKU               *string  `json:"sku"`
	Featured          bool     `json:"featured"`
	AvailableVariants []string `json:"available_variants"`
}

// CreateProduct inserts a new product. The slug is derived from the name
// when the payload leaves it empty.
func (a *Admin) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}
	if msg := validateProduct(req.Name, req.Slug, req.Description, req.CategoryID); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if c, err := a.categoryStore.FindByID(req.CategoryID); err != nil {
		slog.Error("category lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	} else if c == nil {
		respondError(w, http.StatusBadRequest, "Category does not exist")
		return
	}

	created, err := a.productStore.Create(&models.Product{
		CategoryID:        req.CategoryID,
		Name:              req.Name,
		Slug:              req.Slug,
		Description:       req.Description,
		Images:            req.Images,
		Videos:            req.Videos,
		SKU:               req.SKU,
		Featured:          req.Featured,
		AvailableVariants: req.AvailableVariants,
	})
	if err != nil {
		slog.Error("create product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	a.catalogCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusCreated, created)
}

// UpdateProduct applies a partial update. The dashboard uses this for full
// edits and for single-field featured toggles alike.
func (a *Admin) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var upd models.ProductUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if upd.Empty() {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		respondError(w, http.StatusBadRequest, "Name is required.")
		return
	}

	updated, err := a.productStore.Update(id, &upd)
	if err != nil {
		slog.Error("update product failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	a.catalogCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, updated)
}

// DeleteProduct removes one product.
func (a *Admin) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	deleted, err := a.productStore.Delete(id)
	if err != nil {
		slog.Error("delete product failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	a.catalogCache.InvalidateAll(r.Context())
	respondMessage(w, "Product deleted successfully")
}

// bulkRequest applies one operation to a set of product IDs.
type bulkRequest struct {
	Operation  models.BulkOperation `json:"operation"`
	ProductIDs []int64              `json:"product_ids"`
}

// BulkProducts features, unfeatures, or deletes a batch of products in a
// single atomic statement.
func (a *Admin) BulkProducts(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Operation.Valid() {
		respondError(w, http.StatusBadRequest, "Invalid operation")
		return
	}
	if len(req.ProductIDs) == 0 {
		respondError(w, http.StatusBadRequest, "No products selected")
		return
	}

	n, err := a.productStore.Bulk(req.Operation, req.ProductIDs)
	if err != nil {
		slog.Error("bulk products failed", "error", err, "operation", req.Operation)
		respondError(w, http.StatusInternalServerError, "Bulk operation failed")
		return
	}

	a.catalogCache.InvalidateAll(r.Context())

	var verb string
	switch req.Operation {
	case models.BulkDelete:
		verb = "Deleted"
	case models.BulkFeature:
		verb = "Featured"
	case models.BulkUnfeature:
		verb = "Unfeatured"
	}
	respondMessage(w, fmt.Sprintf("%s %d products", verb, n))
}

// categoryRequest is the create payload for a category.
type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// ListCategories returns all categories for the dashboard.
func (a *Admin) ListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := a.categoryStore.List()
	if err != nil {
		slog.Error("admin list categories failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	if items == nil {
		items = []models.Category{}
	}
	respondJSON(w, http.StatusOK, items)
}

// CreateCategory inserts a new category, deriving the slug from the name
// when the payload leaves it empty.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}
	if msg := validateCategory(req.Name, req.Slug); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.categoryStore.Create(&models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		slog.Error("create category failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	a.catalogCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusCreated, created)
}

// UpdateCategory applies a partial category update.
func (a *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	var upd models.CategoryUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		respondError(w, http.StatusBadRequest, "Name is required.")
		return
	}

	updated, err := a.categoryStore.Update(id, &upd)
	if err != nil {
		slog.Error("update category failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	a.catalogCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, updated)
}

// DeleteCategory removes a category. Products in the category are removed
// with it by the foreign key cascade.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	deleted, err := a.categoryStore.Delete(id)
	if err != nil {
		slog.Error("delete category failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	a.catalogCache.InvalidateAll(r.Context())
	respondMessage(w, "Category deleted successfully")
}

// ListInquiries returns contact form submissions, newest first.
func (a *Admin) ListInquiries(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 100, 500)

	items, err := a.inquiryStore.List(limit, offset)
	if err != nil {
		slog.Error("list inquiries failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load inquiries")
		return
	}
	respondJSON(w, http.StatusOK, items)
}
