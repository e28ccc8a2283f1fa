// Package busapi is the client for the fleet REST backend. Payloads use
// the backend's snake_case field names; responses are reconciled into
// canonical shape before anything else sees them.
package busapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/qnextlabs/fleet-console/internal/models"
	"github.com/qnextlabs/fleet-console/internal/reconcile"
)

// Client talks to the fleet backend. Construct one at startup and share
// it; SetToken is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// SetToken stores the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// FetchBuses retrieves all buses and reconciles them into canonical shape.
func (c *Client) FetchBuses(ctx context.Context) ([]models.Bus, error) {
	payload, err := c.do(ctx, http.MethodGet, "/buses/", nil)
	if err != nil {
		return nil, err
	}

	raws := reconcile.ExtractBusArray(payload)
	buses := make([]models.Bus, 0, len(raws))
	for i, raw := range raws {
		buses = append(buses, reconcile.NormalizeBus(raw, i))
	}
	return buses, nil
}

// CreateBus posts a new bus and returns the backend's response payload.
func (c *Client) CreateBus(ctx context.Context, payload map[string]interface{}) (interface{}, error) {
	return c.do(ctx, http.MethodPost, "/buses/", payload)
}

// UpdateBus puts a (possibly partial) payload for an existing bus.
func (c *Client) UpdateBus(ctx context.Context, id string, payload map[string]interface{}) (interface{}, error) {
	return c.do(ctx, http.MethodPut, "/buses/"+id, payload)
}

// DeleteBus removes a bus permanently.
func (c *Client) DeleteBus(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/buses/"+id, nil)
	return err
}

// Login authenticates against the backend and returns its raw response
// (token plus user fields, shape owned by the backend).
func (c *Client) Login(ctx context.Context, email, password string) (reconcile.Raw, error) {
	payload, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	if m, ok := payload.(map[string]interface{}); ok {
		return reconcile.Raw(m), nil
	}
	return reconcile.Raw{}, nil
}

// Logout invalidates the backend session.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (interface{}, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, data)
		log.WithFields(log.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("backend request failed")
		return nil, apiErr
	}

	if len(data) == 0 {
		return nil, nil
	}

	var payload interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		// A non-JSON success body is a shape anomaly, not a failure.
		return nil, nil
	}
	return payload, nil
}
