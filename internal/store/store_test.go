// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"aquapoint/internal/database"
	"aquapoint/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "aquapoint")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "aquapoint")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanCategories removes test categories (and their products, via cascade)
// by slug. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM categories WHERE slug = $1", slug)
	}
}

// cleanInquiries removes test inquiries by email. Call in t.Cleanup().
func cleanInquiries(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM inquiries WHERE email = $1", email)
	}
}

// mustCategory creates a category for product tests.
func mustCategory(t *testing.T, s *CategoryStore, name, slug string) *models.Category {
	t.Helper()
	c, err := s.Create(&models.Category{Name: name, Slug: slug, Description: "test category"})
	if err != nil {
		t.Fatalf("create category %s: %v", slug, err)
	}
	return c
}

// mustProduct creates a product in the given category.
func mustProduct(t *testing.T, s *ProductStore, categoryID int64, name, slug string, featured bool) *models.Product {
	t.Helper()
	p, err := s.Create(&models.Product{
		CategoryID: categoryID,
		Name:       name,
		Slug:       slug,
		Images:     []string{"https://example.com/" + slug + ".jpg"},
		Featured:   featured,
	})
	if err != nil {
		t.Fatalf("create product %s: %v", slug, err)
	}
	return p
}
