// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Redis are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"aquapoint/internal/cache"
	"aquapoint/internal/database"
	"aquapoint/internal/middleware"
	"aquapoint/internal/models"
	"aquapoint/internal/session"
	"aquapoint/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "aquapoint")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "aquapoint")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testRedisClient returns a Redis client for handler tests on DB 15.
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("REDIS_HOST", "localhost")
	port := envOr("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "catalog:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Redis         *redis.Client
	Sessions      *session.Store
	CategoryStore *store.CategoryStore
	ProductStore  *store.ProductStore
	InquiryStore  *store.InquiryStore
	UserStore     *store.UserStore
	CatalogCache  *cache.Catalog
	Public        *Public
	Admin         *Admin
	Auth          *Auth
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	rc := testRedisClient(t)

	sessions := session.NewStore(rc)
	categoryStore := store.NewCategoryStore(db)
	productStore := store.NewProductStore(db)
	inquiryStore := store.NewInquiryStore(db)
	userStore := store.NewUserStore(db)
	catalogCache := cache.NewCatalog(rc, 1*time.Minute)

	return &testEnv{
		DB:            db,
		Redis:         rc,
		Sessions:      sessions,
		CategoryStore: categoryStore,
		ProductStore:  productStore,
		InquiryStore:  inquiryStore,
		UserStore:     userStore,
		CatalogCache:  catalogCache,
		Public:        NewPublic(categoryStore, productStore, inquiryStore, catalogCache),
		Admin:         NewAdmin(categoryStore, productStore, inquiryStore, catalogCache),
		Auth:          NewAuth(sessions, userStore),
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// mustTestCategory creates a category and registers cleanup by slug.
func mustTestCategory(t *testing.T, env *testEnv, name, slug string) *models.Category {
	t.Helper()
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM categories WHERE slug = $1", slug)
	})
	c, err := env.CategoryStore.Create(&models.Category{Name: name, Slug: slug, Description: "test"})
	if err != nil {
		t.Fatalf("create category %s: %v", slug, err)
	}
	return c
}

// mustTestProduct creates a product in the given category.
func mustTestProduct(t *testing.T, env *testEnv, categoryID int64, name, slug string, featured bool) *models.Product {
	t.Helper()
	p, err := env.ProductStore.Create(&models.Product{
		CategoryID:  categoryID,
		Name:        name,
		Slug:        slug,
		Description: "test product",
		Featured:    featured,
	})
	if err != nil {
		t.Fatalf("create product %s: %v", slug, err)
	}
	return p
}
