package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a storefront API client. It talks to the shop's serverless
// product and checkout endpoints.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// ClientOption is a functional option for configuring the client.
type ClientOption func(*Client)

// WithAccessToken sets the storefront access token sent with every request.
func WithAccessToken(token string) ClientOption {
	return func(c *Client) {
		c.accessToken = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new storefront API client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListProductsParams holds parameters for listing products.
type ListProductsParams struct {
	Page          int
	PerPage       int
	Search        string
	AvailableOnly bool
}

// ListProducts fetches a page of products from the storefront API.
func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) ([]Product, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(params.PerPage))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.AvailableOnly {
		query.Set("available", "true")
	}

	var products []Product
	if err := c.doRequest(ctx, "/api/products", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product, with its full variant list, by handle.
func (c *Client) GetProduct(ctx context.Context, handle string) (*Product, error) {
	endpoint := fmt.Sprintf("/api/products/%s", url.PathEscape(handle))

	var product Product
	if err := c.doRequest(ctx, endpoint, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// doRequest performs an HTTP GET request to the storefront API.
func (c *Client) doRequest(ctx context.Context, endpoint string, query url.Values, result interface{}) error {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("X-Storefront-Access-Token", c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storefront API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
