// Package storefront implements the HTTP client for the upstream demo
// storefront API (users, products and carts collections). The client never
// retries; any transport error or unexpected status is reported as
// ErrUnavailable so callers can switch to the fallback store.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mertkaya-dev/backoffice/internal/metrics"
)

// Client errors.
var (
	// ErrUnavailable indicates a transport failure or a non-success
	// status other than 404. It marks the upstream as unreachable for
	// the current operation.
	ErrUnavailable = errors.New("upstream unavailable")

	// ErrNotFound indicates the upstream answered 404 for the resource.
	ErrNotFound = errors.New("upstream resource not found")
)

// Collection names used in paths, logs and metrics.
const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
	CollectionCarts    = "carts"
)

// Client issues requests against the storefront API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a storefront client. timeout bounds every request;
// metrics may be nil.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "storefront").Logger(),
		metrics:    m,
	}
}

// ListUsers fetches all users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users, CollectionUsers, "list"); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single user by ID.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &user, CollectionUsers, "get"); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user. The upstream assigns the ID.
func (c *Client) CreateUser(ctx context.Context, user User) (*User, error) {
	var created User
	if err := c.do(ctx, http.MethodPost, "/users", user, &created, CollectionUsers, "create"); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser replaces a user by ID.
func (c *Client) UpdateUser(ctx context.Context, id int64, user User) (*User, error) {
	var updated User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), user, &updated, CollectionUsers, "update"); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser deletes a user by ID.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, CollectionUsers, "delete")
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products, CollectionProducts, "list"); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single catalog entry by ID.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product, CollectionProducts, "get"); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCarts fetches all carts.
func (c *Client) ListCarts(ctx context.Context) ([]Cart, error) {
	var carts []Cart
	if err := c.do(ctx, http.MethodGet, "/carts", nil, &carts, CollectionCarts, "list"); err != nil {
		return nil, err
	}
	return carts, nil
}

// ListCartsByUser fetches the carts belonging to one user.
func (c *Client) ListCartsByUser(ctx context.Context, userID int64) ([]Cart, error) {
	var carts []Cart
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/carts/user/%d", userID), nil, &carts, CollectionCarts, "list_by_user"); err != nil {
		return nil, err
	}
	return carts, nil
}

// GetCart fetches a single cart by ID.
func (c *Client) GetCart(ctx context.Context, id int64) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/carts/%d", id), nil, &cart, CollectionCarts, "get"); err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateCart creates a cart. The upstream assigns the ID.
func (c *Client) CreateCart(ctx context.Context, cart Cart) (*Cart, error) {
	var created Cart
	if err := c.do(ctx, http.MethodPost, "/carts", cart, &created, CollectionCarts, "create"); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCart replaces a cart by ID.
func (c *Client) UpdateCart(ctx context.Context, id int64, cart Cart) (*Cart, error) {
	var updated Cart
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/carts/%d", id), cart, &updated, CollectionCarts, "update"); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCart deletes a cart by ID.
func (c *Client) DeleteCart(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/carts/%d", id), nil, nil, CollectionCarts, "delete")
}

// do performs one request and decodes the JSON response into out (when out
// is non-nil). collection and operation label the metrics observation.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, collection, operation string) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(collection, operation, metrics.OutcomeUnavailable)
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("upstream request failed")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.metrics.ObserveUpstream(collection, operation, metrics.OutcomeNotFound)
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.metrics.ObserveUpstream(collection, operation, metrics.OutcomeUnavailable)
		c.logger.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg("unexpected upstream status")
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.metrics.ObserveUpstream(collection, operation, metrics.OutcomeUnavailable)
			return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
		}
	}

	c.metrics.ObserveUpstream(collection, operation, metrics.OutcomeOK)
	return nil
}
