// Package api is the REST client for the expense backend. Authentication
// rides on a server-issued cookie held in the client's jar; no request
// carries an explicit token. Requests have no timeout and are never retried:
// every failure is terminal for the user action that issued it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/frahmantamala/expense-dashboard/internal"
	"github.com/frahmantamala/expense-dashboard/pkg/logger"
	"github.com/google/uuid"
)

type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, lg *slog.Logger) (*Client, error) {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Jar: jar},
		logger:  lg,
	}, nil
}

// errorPayload is the body shape of application-level failures.
type errorPayload struct {
	Error string `json:"error"`
}

// do issues one JSON request and decodes a 2xx body into out (when non-nil).
// Non-2xx responses surface the server's error string verbatim; transport and
// decode failures are wrapped as transport errors.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return internal.NewTransportError(fmt.Errorf("failed to marshal request: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return internal.NewTransportError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	lg := logger.From(ctx)
	lg.Debug("api request", "method", method, "path", path)

	resp, err := c.httpc.Do(req)
	if err != nil {
		lg.Error("api request failed", "method", method, "path", path, "error", err)
		return internal.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		// decode failures here are fine: the fallback message applies
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		lg.Warn("api request rejected",
			"method", method, "path", path,
			"status", resp.StatusCode, "error", payload.Error)
		return internal.NewApplicationError(payload.Error, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return internal.NewTransportError(fmt.Errorf("failed to decode response: %w", err))
		}
	}
	return nil
}

// download issues one GET and returns the raw body bytes of a 2xx response.
func (c *Client) download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, internal.NewTransportError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, internal.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return nil, internal.NewApplicationError(payload.Error, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, internal.NewTransportError(fmt.Errorf("failed to read report body: %w", err))
	}
	return data, nil
}

func queryEscape(v string) string {
	return url.QueryEscape(v)
}
