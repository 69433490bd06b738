package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"
)

// HTTPClient implements CredentialExchanger and ProfileFetcher against the
// dashboard API over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the API at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type tokenResponse struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	return c.exchange(ctx, "/api/v1/auth/login", body)
}

func (c *HTTPClient) Register(ctx context.Context, reg Registration) (string, error) {
	return c.exchange(ctx, "/api/v1/auth/register", reg)
}

func (c *HTTPClient) exchange(ctx context.Context, path string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed tokenResponse
	if err := decodeBody(resp.Body, &parsed); err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		if parsed.Error != "" {
			return "", fmt.Errorf("%s", parsed.Error)
		}
		return "", fmt.Errorf("auth endpoint returned %s", resp.Status)
	}
	return parsed.Token, nil
}

// Fetch retrieves the authenticated profile with the token as a bearer
// credential.
func (c *HTTPClient) Fetch(ctx context.Context, token string) (*model.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/me", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile endpoint returned %s", resp.Status)
	}

	var parsed struct {
		User *model.User `json:"user"`
	}
	if err := decodeBody(resp.Body, &parsed); err != nil {
		return nil, err
	}
	if parsed.User == nil {
		return nil, fmt.Errorf("profile endpoint returned no user")
	}
	return parsed.User, nil
}

func decodeBody(r io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(r, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
