package store

import (
	"database/sql"
	"fmt"
	"strings"

	"aquapoint/internal/models"
)

// ProductStore manages products in the database.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `p.id, p.category_id, p.name, p.slug, p.description,
	p.images, p.videos, p.sku, p.featured, p.available_variants, p.created_at`

const productCategoryColumns = productColumns + `,
	c.id, c.name, c.slug, c.description, c.created_at`

// scanProduct scans a product row joined with its category.
func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	var c models.Category
	var images, videos, variants stringList

	err := scanner.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
		&images, &videos, &p.SKU, &p.Featured, &variants, &p.CreatedAt,
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Images = images
	p.Videos = videos
	p.AvailableVariants = variants
	p.Category = &c
	return &p, nil
}

const productSelect = `
	SELECT ` + productCategoryColumns + `
	FROM products p
	JOIN categories c ON c.id = p.category_id`

// queryProducts runs a product query and scans all rows.
func (s *ProductStore) queryProducts(query string, args ...any) ([]models.Product, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// List returns all products with their categories, in insertion order.
func (s *ProductStore) List(limit, offset int) ([]models.Product, error) {
	items, err := s.queryProducts(productSelect+` ORDER BY p.id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

// ListByCategorySlug returns the products of one category, in insertion order.
func (s *ProductStore) ListByCategorySlug(slug string) ([]models.Product, error) {
	items, err := s.queryProducts(productSelect+` WHERE c.slug = $1 ORDER BY p.id`, slug)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return items, nil
}

// ListFeatured returns featured products, newest first.
func (s *ProductStore) ListFeatured(limit int) ([]models.Product, error) {
	items, err := s.queryProducts(productSelect+` WHERE p.featured ORDER BY p.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	return items, nil
}

// Search returns products whose name, SKU, or description matches the term
// case-insensitively.
func (s *ProductStore) Search(term string, limit, offset int) ([]models.Product, error) {
	pattern := "%" + term + "%"
	items, err := s.queryProducts(productSelect+`
		WHERE p.name ILIKE $1 OR p.sku ILIKE $1 OR p.description ILIKE $1
		ORDER BY p.id LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return items, nil
}

// FindByID retrieves a product by ID. Returns nil if not found.
func (s *ProductStore) FindByID(id int64) (*models.Product, error) {
	row := s.db.QueryRow(productSelect+` WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a product by slug. Returns nil if not found.
func (s *ProductStore) FindBySlug(slug string) (*models.Product, error) {
	row := s.db.QueryRow(productSelect+` WHERE p.slug = $1`, slug)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new product and returns it with its category joined.
func (s *ProductStore) Create(p *models.Product) (*models.Product, error) {
	var id int64
	err := s.db.QueryRow(`
		INSERT INTO products (category_id, name, slug, description, images, videos, sku, featured, available_variants)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		p.CategoryID, p.Name, p.Slug, p.Description,
		stringList(p.Images), stringList(p.Videos), p.SKU, p.Featured, stringList(p.AvailableVariants),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return s.FindByID(id)
}

// Update applies only the provided (non-nil) fields of upd to a product,
// then returns the updated row. Returns nil if the product does not exist.
func (s *ProductStore) Update(id int64, upd *models.ProductUpdate) (*models.Product, error) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.CategoryID != nil {
		add("category_id", *upd.CategoryID)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Slug != nil {
		add("slug", *upd.Slug)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Images != nil {
		add("images", stringList(*upd.Images))
	}
	if upd.Videos != nil {
		add("videos", stringList(*upd.Videos))
	}
	if upd.SKU != nil {
		add("sku", *upd.SKU)
	}
	if upd.Featured != nil {
		add("featured", *upd.Featured)
	}
	if upd.AvailableVariants != nil {
		add("available_variants", stringList(*upd.AvailableVariants))
	}

	if len(sets) == 0 {
		return s.FindByID(id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d RETURNING id",
		strings.Join(sets, ", "), len(args))

	var updated int64
	err := s.db.QueryRow(query, args...).Scan(&updated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.FindByID(updated)
}

// Delete removes a product by ID. Returns false if no row matched.
func (s *ProductStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete product rows: %w", err)
	}
	return n > 0, nil
}

// Bulk applies one operation to a set of product IDs in a single statement,
// so the batch is atomic. Returns the number of affected rows.
func (s *ProductStore) Bulk(op models.BulkOperation, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var res sql.Result
	var err error
	switch op {
	case models.BulkFeature:
		res, err = s.db.Exec(`UPDATE products SET featured = TRUE WHERE id = ANY($1)`, ids)
	case models.BulkUnfeature:
		res, err = s.db.Exec(`UPDATE products SET featured = FALSE WHERE id = ANY($1)`, ids)
	case models.BulkDelete:
		res, err = s.db.Exec(`DELETE FROM products WHERE id = ANY($1)`, ids)
	default:
		return 0, fmt.Errorf("bulk products: unknown operation %q", op)
	}
	if err != nil {
		return 0, fmt.Errorf("bulk products %s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk products rows: %w", err)
	}
	return n, nil
}
