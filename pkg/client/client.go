package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/megaloja/fidelidade/pkg/domain"
)

// Session is what the client needs from the session store: the credential to
// attach, and the teardown to run when the backend rejects it.
type Session interface {
	Token() string
	Login(ctx context.Context, u domain.Usuario, token string) error
	Logout(ctx context.Context) error
	Expire(ctx context.Context) error
}

// Client is the loyalty backend API client.
type Client struct {
	baseURL    string
	session    Session
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the API rooted at baseURL (including the /api
// prefix). sess may be nil for anonymous use.
func New(baseURL string, sess Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	header           http.Header
	keepSessionOn401 bool
}

// WithHeader sets a request header, overriding the defaults.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) { o.header.Set(key, value) }
}

// keepSessionOn401 makes a 401 an ordinary RequestError. Login uses it: bad
// credentials are not an expired session.
func keepSessionOn401() RequestOption {
	return func(o *requestOptions) { o.keepSessionOn401 = true }
}

// Request performs one call against the API and decodes a JSON response into
// out (which may be nil). body, when non-nil, is sent as JSON.
//
// Outcomes:
//   - 2xx: nil.
//   - 401: the session is expired and ErrSessionExpired returned.
//   - other non-2xx: *RequestError.
//   - no response: *TransportError, logged. There is no retry.
func (c *Client) Request(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	ro := requestOptions{header: http.Header{}}
	for _, o := range opts {
		o(&ro)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	for k, vs := range ro.header {
		req.Header[k] = vs
	}
	if c.session != nil {
		if tok := c.session.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	reqLog := c.log.With().
		Str("method", method).
		Str("path", path).
		Str("request_id", req.Header.Get("X-Request-ID")).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A caller giving up is not a backend failure.
		if errors.Is(err, context.Canceled) {
			reqLog.Debug().Err(err).Msg("api request canceled")
		} else {
			reqLog.Error().Err(err).Msg("api request failed")
		}
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	reqLog.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api response")

	if resp.StatusCode == http.StatusUnauthorized && !ro.keepSessionOn401 {
		if c.session != nil {
			if err := c.session.Expire(ctx); err != nil {
				reqLog.Error().Err(err).Msg("clearing expired session")
			}
		}
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	fallback := &RequestError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP error %d", resp.StatusCode),
	}
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if err != nil {
		return fallback
	}
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(respBody, &apiErr) != nil {
		return fallback
	}
	switch {
	case apiErr.Error != "":
		return &RequestError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	case apiErr.Message != "":
		return &RequestError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}
	return fallback
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.Request(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.Request(ctx, http.MethodDelete, path, nil, nil)
}

// idPath joins a collection path and a numeric id.
func idPath(collection string, id int64, suffix ...string) string {
	p := fmt.Sprintf("%s/%d", collection, id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}
