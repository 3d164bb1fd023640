// Package upstream is the typed client for the platform REST API.
// Every endpoint returns the same JSON envelope:
//
//	{ "success": bool, "data": T, "message": string }
//
// The client unwraps the envelope, translates failures into *APIError, and
// attaches the caller's bearer token plus a generated X-Request-Id to every
// outgoing request. No business logic lives here — fallback ladders and
// caching belong to the service layer.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/communitas/admin-gateway/internal/domain"
)

// genericFailure is the message used when the upstream response carries none.
const genericFailure = "something went wrong"

// APIError describes a failed upstream call. Message falls back to a
// generic string when the envelope carries none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream: %s (status %d)", e.Message, e.StatusCode)
}

// Unwrap makes errors.Is(err, domain.ErrUpstream) true for all API errors.
func (e *APIError) Unwrap() error {
	return domain.ErrUpstream
}

// Client talks to the platform API.
type Client struct {
	baseURL string
	token   string // service token, used when the context carries none
	http    *http.Client
}

// NewClient constructs a Client for the given base URL.
// token may be empty when every caller supplies a per-request token via
// ContextWithToken. A zero timeout falls back to 15s — the platform API has
// no server-side deadline, so the client must bound every call.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// tokenKey is the context key for per-request bearer tokens.
type tokenKey struct{}

// ContextWithToken returns a context carrying the caller's bearer token.
// The auth middleware populates this from the accessToken cookie, falling
// back to the Authorization header of the incoming request.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token stored by ContextWithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

// envelope is the wire shape of every upstream response.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// getJSON performs a GET and decodes the envelope's data field into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// do builds, sends, and unwraps one request. body may be nil.
// out may be nil when the caller does not need the data payload.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("upstream.Client.do: build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream.Client.do: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("upstream.Client.do: read body: %w", err)
	}

	var env envelope
	// Error responses are not guaranteed to be valid envelopes; tolerate
	// garbage and fall back to the generic message.
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = genericFailure
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("upstream.Client.do: decode data: %w", err)
		}
	}
	return nil
}

// sendMultipart sends a multipart body built by the caller.
func (c *Client) sendMultipart(ctx context.Context, method, path string, body *bytes.Buffer, contentType string, out any) error {
	return c.do(ctx, method, path, nil, body, contentType, out)
}
