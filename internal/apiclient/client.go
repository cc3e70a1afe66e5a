// Package apiclient provides a typed HTTP client for the AquaPoint API.
// It covers the public catalog reads used by the site and the
// authenticated admin surface; the admin methods satisfy
// adminquery.Backend, so the dashboard's query engine runs directly over
// this client.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aquapoint/internal/models"
)

// Client calls the AquaPoint JSON API. Safe for concurrent use once the
// bearer token is set.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer token sent on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// apiError is the JSON error body the server returns on failures.
type apiError struct {
	Error string `json:"error"`
}

// do performs one JSON request. body and out may be nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// --- Public catalog ---

// Categories returns all categories in section order.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Products returns the public product listing, optionally filtered to one
// category slug.
func (c *Client) Products(ctx context.Context, categorySlug string) ([]models.Product, error) {
	path := "/api/products"
	if categorySlug != "" {
		path += "?category=" + url.QueryEscape(categorySlug)
	}
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductBySlug returns one product with its category joined.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitInquiry sends a contact form submission.
func (c *Client) SubmitInquiry(ctx context.Context, name, email, message string) error {
	body := map[string]string{"name": name, "email": email, "message": message}
	return c.do(ctx, http.MethodPost, "/api/inquiry", body, nil)
}

// --- Authentication ---

// LoginResult is the outcome of a credential login.
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	TOTPRequired bool   `json:"totp_required"`
}

// Login exchanges credentials for a bearer token and installs it on the
// client. When TOTPRequired is set, admin calls stay rejected until
// VerifyTOTP succeeds.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.token = out.AccessToken
	return &out, nil
}

// VerifyTOTP completes a login pending two-factor verification.
func (c *Client) VerifyTOTP(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/totp/verify", map[string]string{"code": code}, nil)
}

// Logout destroys the session and clears the client's token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.token = ""
	return err
}

// --- Admin surface (adminquery.Backend) ---

// ListProducts returns the full admin product list.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/admin/products/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchProducts returns admin products matching a free-text term.
func (c *Client) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	var out []models.Product
	path := "/api/admin/products/?q=" + url.QueryEscape(term)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct inserts a new product.
func (c *Client) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPost, "/api/admin/products/", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct applies a partial update and returns the updated product.
func (c *Client) UpdateProduct(ctx context.Context, id int64, upd *models.ProductUpdate) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", id), upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFeatured sends a featured-only partial update.
func (c *Client) UpdateFeatured(ctx context.Context, id int64, featured bool) error {
	_, err := c.UpdateProduct(ctx, id, &models.ProductUpdate{Featured: &featured})
	return err
}

// DeleteProduct removes one product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", id), nil, nil)
}

// BulkProducts applies one operation to a batch of product IDs.
func (c *Client) BulkProducts(ctx context.Context, op models.BulkOperation, ids []int64) error {
	body := map[string]any{"operation": op, "product_ids": ids}
	return c.do(ctx, http.MethodPost, "/api/admin/products/bulk", body, nil)
}

// ListCategories returns all categories via the admin endpoint.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.do(ctx, http.MethodGet, "/api/admin/categories/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
