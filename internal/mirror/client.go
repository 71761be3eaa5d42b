package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/judahn02/Professional-Development/internal/models"
)

// NonceHeader must match the server's gate header.
const NonceHeader = "X-PD-Nonce"

// NonceSource supplies a fresh nonce per request. Typically an
// auth.NonceVerifier minting for the sessions capability.
type NonceSource func() string

// Client talks to the sessions REST surface. Requests run to completion
// or network failure; there is no retry and no cancellation beyond the
// caller's context.
type Client struct {
	baseURL    string
	nonce      NonceSource
	httpClient *http.Client
}

// NewClient creates a REST client for the given server base URL.
func NewClient(baseURL string, nonce NonceSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		nonce:   nonce,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// List fetches every session.
func (c *Client) List(ctx context.Context) ([]models.Session, error) {
	var out []models.Session
	if err := c.do(ctx, http.MethodGet, "/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one session by id.
func (c *Client) Get(ctx context.Context, id int64) (models.Session, error) {
	var out models.Session
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/sessions/%d", id), nil, &out)
	return out, err
}

// Create submits a new session and returns the canonical stored record.
func (c *Client) Create(ctx context.Context, req models.WriteRequest) (models.Session, error) {
	var out models.Session
	err := c.do(ctx, http.MethodPost, "/sessions", req, &out)
	return out, err
}

// Update submits changed fields for an existing session.
func (c *Client) Update(ctx context.Context, id int64, req models.WriteRequest) (models.Session, error) {
	var out models.Session
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/sessions/%d", id), req, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.nonce != nil {
		req.Header.Set(NonceHeader, c.nonce())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// decodeError recovers the typed error body. A body that is not the
// standard shape degrades to a query_error carrying the raw text.
func decodeError(status int, raw []byte) error {
	var e models.Error
	if err := json.Unmarshal(raw, &e); err == nil && e.Kind != "" {
		return &e
	}
	return models.NewError(models.ErrQuery,
		fmt.Sprintf("HTTP %d: %s", status, strings.TrimSpace(string(raw))))
}
