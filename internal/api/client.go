// Package api is the typed client for the matka betting REST service. All
// business authority (settlement, payouts, balance) lives server-side; this
// layer only moves JSON.
package api

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

	"github.com/matkahub/matka-client/pkg/logger"
)

// TokenSource hands out the current bearer token. The token is re-read on
// every request so a login or logout mid-session takes effect immediately.
type TokenSource interface {
	Token() (string, error)
}

// NoToken is a TokenSource for unauthenticated clients (public content
// endpoints, login itself).
type NoToken struct{}

func (NoToken) Token() (string, error) { return "", nil }

type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if tokens == nil {
		tokens = NoToken{}
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
	}
}

// do issues one JSON request and decodes a 2xx body into out (when out is
// non-nil). Non-2xx responses come back as *Error.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, params map[string]string, out any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	logger.Debug("HTTP request completed", "method", method, "url", u, "status", resp.StatusCode, "elapsed", time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal %s %s response: %w", method, endpoint, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, params, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, body, nil, out)
}

func (c *Client) put(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPut, endpoint, body, nil, out)
}
