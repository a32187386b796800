package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"gursha-client/internal/domain"
)

// TokenSource supplies the bearer token for authenticated backend calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks JSON-over-HTTP to the upstream ordering backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *log.Logger
}

// New builds a Client. tokens may be nil for unauthenticated use.
func New(baseURL string, timeout time.Duration, tokens TokenSource, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// doJSON performs one request and decodes a JSON response into out (when
// non-nil). Non-2xx statuses become errors; 404 and 409 map to the domain
// sentinels so callers can branch with errors.Is.
func (c *Client) doJSON(ctx context.Context, method, path string, headers map[string]string, body, out interface{}, authed bool) error {
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
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if authed && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("resolve token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		c.logger.Printf("backend: %s %s status=%d message=%q", method, path, resp.StatusCode, msg)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s %s: %s: %w", method, path, msg, domain.ErrNotFound)
		case http.StatusConflict:
			return fmt.Errorf("%s %s: %s: %w", method, path, msg, domain.ErrConflict)
		default:
			return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, msg)
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
