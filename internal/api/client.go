package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client handles station API requests with bearer-token auth
type Client struct {
	baseURL        string
	httpClient     *http.Client
	token          string
	onUnauthorized func()
}

// envelope is the station API's response wrapper:
// {"success": true, "data": ...} or {"success": false, "error": "..."}
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// NewClient creates a station API client for the given base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken sets the bearer token attached to every request
func (c *Client) SetToken(token string) {
	c.token = token
}

// OnUnauthorized registers a callback invoked whenever the server answers
// 401. The session layer uses it to clear itself and force re-login.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Get issues a GET and decodes the envelope's data field into out
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the data field into out
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Delete issues a DELETE
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// PostRaw issues a POST and decodes the whole response body into out,
// bypassing the envelope. Used for endpoints with their own response
// shape, like login.
func (c *Client) PostRaw(ctx context.Context, path string, body, out interface{}) error {
	raw, status, err := c.roundTrip(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	if status >= 400 {
		return &APIError{StatusCode: status, Message: genericMessage(status)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	raw, status, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		log.Printf("❌ 401 from %s %s - session invalid", method, path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if status >= 400 {
			return &APIError{StatusCode: status, Message: genericMessage(status)}
		}
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if status >= 400 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = genericMessage(status)
		}
		return &APIError{StatusCode: status, Message: msg}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to parse response data: %w", err)
		}
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body interface{}) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Printf("📤 REQUEST: %s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	log.Printf("📥 RESPONSE: %d (%d bytes)", resp.StatusCode, len(raw))
	return raw, resp.StatusCode, nil
}
