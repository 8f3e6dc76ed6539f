package barcodeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/barcodeapi-go/pkg/httpclient"
)

const authorizationHeader = "Authorization"

// Client calls the barcodeapi.org endpoints. It is safe for concurrent
// use; SetToken may be called at any time between or during calls.
type Client struct {
	baseURL   string
	transport httpclient.Client
	log       Logger

	mu      sync.RWMutex
	token   string
	headers map[string]string
}

// New builds a client. Without options it talks to DefaultBaseURL through
// a resty transport with DefaultTimeout.
func New(opts ...Option) *Client {
	o := options{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	transport := o.transport
	if transport == nil {
		transport = httpclient.NewRestyClient(o.timeout)
	}

	c := &Client{
		baseURL:   normalizeBaseURL(o.baseURL),
		transport: transport,
		log:       ensureLogger(o.log),
		headers:   make(map[string]string, len(o.headers)+1),
	}
	for k, v := range o.headers {
		c.headers[http.CanonicalHeaderKey(k)] = v
	}
	c.SetToken(o.token)
	return c
}

func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultBaseURL
	}
	return strings.TrimRight(raw, "/")
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string { return c.baseURL }

// SetToken sets the credential sent as "Authorization: Token=<token>".
// An empty token removes the header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
	if token != "" {
		c.headers[authorizationHeader] = "Token=" + token
	} else {
		delete(c.headers, authorizationHeader)
	}
}

// Token returns the current credential, empty when unset.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Headers returns a copy of the headers attached to every request.
func (c *Client) Headers() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.headers)
}

// request describes one call before it is sent.
type request struct {
	method  string
	path    string
	query   Query
	headers map[string]string
	body    []byte
}

func (c *Client) url(path string, q Query) string {
	u := c.baseURL + path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// mergeHeaders overlays per-call headers on the instance headers.
func (c *Client) mergeHeaders(extra map[string]string) map[string]string {
	c.mu.RLock()
	merged := make(map[string]string, len(c.headers)+len(extra))
	for k, v := range c.headers {
		merged[k] = v
	}
	c.mu.RUnlock()

	for k, v := range extra {
		merged[http.CanonicalHeaderKey(k)] = v
	}
	return merged
}

// do sends req and gates the response on a 2xx status.
func (c *Client) do(ctx context.Context, req request) (httpclient.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	target := c.url(req.path, req.query)
	headers := c.mergeHeaders(req.headers)

	start := time.Now()
	resp, err := c.transport.Send(ctx, req.method, target, headers, req.body)
	if err != nil {
		c.log.DebugObj("barcodeapi request failed", "request", map[string]any{
			"method":     req.method,
			"url":        target,
			"elapsed_ms": time.Since(start).Milliseconds(),
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("send %s %s: %w", req.method, target, err)
	}
	c.log.DebugObj("barcodeapi request completed", "request", map[string]any{
		"method":     req.method,
		"url":        target,
		"status":     resp.StatusCode(),
		"bytes":      len(resp.Body()),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, &StatusError{
			Method:     req.method,
			URL:        target,
			StatusCode: code,
			Body:       resp.Body(),
		}
	}
	return resp, nil
}

// doJSON sends req and validates that the body is JSON.
func (c *Client) doJSON(ctx context.Context, req request) (json.RawMessage, error) {
	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	return decodeJSON(resp.Body())
}

func decodeJSON(body []byte) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, &DecodeError{Body: body, Err: fmt.Errorf("body is not valid json (%d bytes)", len(body))}
	}
	return json.RawMessage(body), nil
}
