// Catalog cache integration tests are skipped when Redis is not available.
package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()

	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       15,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := client.Keys(ctx, catalogKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func TestCatalogCacheRoundTrip(t *testing.T) {
	c := NewCatalog(testClient(t), time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, CategoriesKey()); ok {
		t.Fatal("Get on empty cache reported a hit")
	}

	payload := []byte(`[{"id":1,"slug":"irrigation-systems"}]`)
	c.Set(ctx, CategoriesKey(), payload)

	got, ok := c.Get(ctx, CategoriesKey())
	if !ok {
		t.Fatal("Get after Set reported a miss")
	}
	if string(got) != string(payload) {
		t.Errorf("Get = %s, want %s", got, payload)
	}
}

func TestCatalogCacheInvalidateAll(t *testing.T) {
	c := NewCatalog(testClient(t), time.Minute)
	ctx := context.Background()

	c.Set(ctx, CategoriesKey(), []byte(`[]`))
	c.Set(ctx, ProductsKey("", ""), []byte(`[]`))
	c.Set(ctx, ProductsKey("solar-solutions", ""), []byte(`[]`))
	c.Set(ctx, ProductsKey("", "true"), []byte(`[]`))

	c.InvalidateAll(ctx)

	for _, key := range []string{CategoriesKey(), ProductsKey("", ""), ProductsKey("solar-solutions", ""), ProductsKey("", "true")} {
		if _, ok := c.Get(ctx, key); ok {
			t.Errorf("key %q survived InvalidateAll", key)
		}
	}
}

func TestProductsKey(t *testing.T) {
	if got := ProductsKey("", ""); got != "products" {
		t.Errorf(`ProductsKey("", "") = %q`, got)
	}
	if got := ProductsKey("solar-solutions", ""); got != "products:solar-solutions" {
		t.Errorf("ProductsKey(slug) = %q", got)
	}
	if got := ProductsKey("", "true"); got != "products:featured:true" {
		t.Errorf("ProductsKey(featured) = %q", got)
	}
	if got := ProductsKey("solar-solutions", "false"); got != "products:solar-solutions:featured:false" {
		t.Errorf("ProductsKey(slug, featured) = %q", got)
	}
}
