package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// CheckoutItem is one line of a checkout session request.
type CheckoutItem struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest is the payload sent to the checkout function.
type CheckoutRequest struct {
	Items []CheckoutItem `json:"items"`
}

// CheckoutSession is the success response from the checkout function. The
// caller hands navigation off to CheckoutURL.
type CheckoutSession struct {
	CheckoutURL string `json:"checkoutUrl"`
}

// APIError is an error envelope returned by the storefront API. Its message
// is surfaced to the user verbatim.
type APIError struct {
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
	Status  int    `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// CreateCheckout posts the cart lines to the checkout function and returns
// the hosted checkout session. Each call creates a new session server-side;
// retries are not idempotent. A fresh request id is attached per attempt for
// log correlation.
func (c *Client) CreateCheckout(ctx context.Context, items []CheckoutItem) (*CheckoutSession, error) {
	body, err := json.Marshal(CheckoutRequest{Items: items})
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/checkout", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.accessToken != "" {
		req.Header.Set("X-Storefront-Access-Token", c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr APIError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			apiErr.Status = resp.StatusCode
			return nil, &apiErr
		}
		return nil, fmt.Errorf("checkout API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var session CheckoutSession
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if session.CheckoutURL == "" {
		return nil, fmt.Errorf("checkout response missing checkoutUrl")
	}

	return &session, nil
}
