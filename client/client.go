// Package client is the typed consumer of the storefront API. It attaches
// the stored bearer token to every request, mirrors the server's session
// check for UX purposes and holds the browser-style cart. The server-side
// token verification remains the only security boundary.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pawonbufatim/storefront-server/src/models"
)

// PlaceholderImage is returned for entities without a stored image
const PlaceholderImage = "/placeholder-product.svg"

// APIError carries the envelope error for non-2xx responses
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Admin is the public admin identity returned by login
type Admin struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Identity is the session identity confirmed by verify
type Identity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Client talks to the storefront API
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken seeds a previously stored bearer token
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the stored bearer token, empty when unauthenticated
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Logout clears the stored token
func (c *Client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

type envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Error      string             `json:"error"`
	Data       json.RawMessage    `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return &env, nil
}

// Login authenticates against the API and stores the returned token
func (c *Client) Login(ctx context.Context, username, password string) (*Admin, error) {
	env, err := c.do(ctx, http.MethodPost, "/admin/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Token string `json:"token"`
		Admin Admin  `json:"admin"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode login payload: %w", err)
	}

	c.mu.Lock()
	c.token = result.Token
	c.mu.Unlock()

	return &result.Admin, nil
}

// Verify confirms the stored token against the API. On any failure the
// token is dropped and the caller is unauthenticated.
func (c *Client) Verify(ctx context.Context) (*Identity, error) {
	env, err := c.do(ctx, http.MethodGet, "/admin/verify", nil)
	if err != nil {
		c.Logout()
		return nil, err
	}

	var identity Identity
	if err := json.Unmarshal(env.Data, &identity); err != nil {
		c.Logout()
		return nil, fmt.Errorf("failed to decode identity: %w", err)
	}
	return &identity, nil
}

// Session mirrors the admin route guard: it reports whether the stored
// token still names a valid identity. UX convenience only.
type Session struct {
	Authenticated bool
	Admin         *Identity
}

// NewSession performs the one verification call done on load
func (c *Client) NewSession(ctx context.Context) Session {
	if c.Token() == "" {
		return Session{}
	}
	identity, err := c.Verify(ctx)
	if err != nil {
		return Session{}
	}
	return Session{Authenticated: true, Admin: identity}
}

// ListCategories fetches active categories
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	env, err := c.do(ctx, http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := json.Unmarshal(env.Data, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// GetCategory fetches one active category
func (c *Client) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	env, err := c.do(ctx, http.MethodGet, "/categories/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}
	var category models.Category
	if err := json.Unmarshal(env.Data, &category); err != nil {
		return nil, fmt.Errorf("failed to decode category: %w", err)
	}
	return &category, nil
}

// ListProductsOptions narrows and pages product listings
type ListProductsOptions struct {
	CategoryID *int
	Page       int
	Limit      int
}

// ListProducts fetches a page of active products with pagination metadata
func (c *Client) ListProducts(ctx context.Context, opts ListProductsOptions) ([]models.Product, models.Pagination, error) {
	path := "/products"
	params := []string{}
	if opts.CategoryID != nil {
		params = append(params, "category_id="+strconv.Itoa(*opts.CategoryID))
	}
	if opts.Page > 0 {
		params = append(params, "page="+strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		params = append(params, "limit="+strconv.Itoa(opts.Limit))
	}
	if len(params) > 0 {
		path += "?" + strings.Join(params, "&")
	}

	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	var products []models.Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to decode products: %w", err)
	}
	pagination := models.Pagination{}
	if env.Pagination != nil {
		pagination = *env.Pagination
	}
	return products, pagination, nil
}

// GetProduct fetches one active product with its category name
func (c *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	env, err := c.do(ctx, http.MethodGet, "/products/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := json.Unmarshal(env.Data, &product); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &product, nil
}

// ImageURL resolves a stored image reference to a fetchable URL, falling
// back to the placeholder when the entity carries no image
func (c *Client) ImageURL(imageURL *string) string {
	if imageURL == nil || *imageURL == "" {
		return PlaceholderImage
	}
	url := *imageURL
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if strings.HasPrefix(url, "/") {
		return c.baseURL + url
	}
	return c.baseURL + "/uploads/" + url
}
