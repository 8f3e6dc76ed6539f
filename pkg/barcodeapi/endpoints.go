package barcodeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	pathAPI     = "/api/"
	pathDecode  = "/decode/"
	pathBulk    = "/bulk/"
	pathInfo    = "/info/"
	pathTypes   = "/types/"
	pathType    = "/type/"
	pathLimiter = "/limiter/"
	pathSession = "/session/"
	pathShare   = "/share/"

	// DefaultCodeType lets the service pick a symbology for the data.
	DefaultCodeType = "auto"
)

// Generate renders data as a barcode of codeType ("auto" when empty). The
// response body is returned untouched; its format depends on the request.
func (c *Client) Generate(ctx context.Context, data, codeType string, opts *GenerateOptions) (*Barcode, error) {
	if codeType = strings.TrimSpace(codeType); codeType == "" {
		codeType = DefaultCodeType
	}
	req := request{
		method: http.MethodGet,
		path:   pathAPI + codeType + "/" + escapeComponent(data),
	}
	if opts != nil {
		req.query = opts.Params
		req.headers = opts.Headers
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Barcode{
		Body:        resp.Body(),
		ContentType: resp.Header().Get("Content-Type"),
		Header:      resp.Header(),
	}, nil
}

// Decode uploads an image and returns what the service read from it.
func (c *Client) Decode(ctx context.Context, image Source) (*DecodeResult, error) {
	data, err := resolveSource(image)
	if err != nil {
		return nil, err
	}
	body, contentType, err := buildMultipart(imageField, imageFilename, "application/octet-stream", data)
	if err != nil {
		return nil, err
	}

	raw, err := c.doJSON(ctx, request{
		method:  http.MethodPost,
		path:    pathDecode,
		headers: map[string]string{"Content-Type": contentType},
		body:    body,
	})
	if err != nil {
		return nil, err
	}

	return newDecodeResult(raw), nil
}

// newDecodeResult maps the known fields one by one, so a field of an
// unexpected type is left zero without hiding the others. Non-object
// payloads are passed through in Raw only.
func newDecodeResult(raw json.RawMessage) *DecodeResult {
	result := &DecodeResult{Raw: raw}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return result
	}
	if v, ok := fields["code"]; ok {
		_ = json.Unmarshal(v, &result.Code)
	}
	if v, ok := fields["text"]; ok {
		_ = json.Unmarshal(v, &result.Text)
	}
	if v, ok := fields["format"]; ok {
		_ = json.Unmarshal(v, &result.Format)
	}
	return result
}

// BulkGenerate uploads a CSV describing many barcodes and returns the
// archive produced by the service as raw bytes.
func (c *Client) BulkGenerate(ctx context.Context, csv Source) ([]byte, error) {
	data, err := resolveSource(csv)
	if err != nil {
		return nil, err
	}
	body, contentType, err := buildMultipart(csvField, csvFilename, "text/csv", data)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    pathBulk,
		headers: map[string]string{"Content-Type": contentType},
		body:    body,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// Info returns server information.
func (c *Client) Info(ctx context.Context) (json.RawMessage, error) {
	return c.doJSON(ctx, request{method: http.MethodGet, path: pathInfo})
}

// Types lists every supported barcode type.
func (c *Client) Types(ctx context.Context) (json.RawMessage, error) {
	return c.doJSON(ctx, request{method: http.MethodGet, path: pathTypes})
}

// Type returns the details of a single barcode type.
func (c *Client) Type(ctx context.Context, name string) (json.RawMessage, error) {
	return c.doJSON(ctx, request{
		method: http.MethodGet,
		path:   pathType,
		query:  NewQuery("type", name),
	})
}

// Limiter returns the rate limit state of the caller.
func (c *Client) Limiter(ctx context.Context) (json.RawMessage, error) {
	return c.doJSON(ctx, request{method: http.MethodGet, path: pathLimiter})
}

// Session returns the details of the current session.
func (c *Client) Session(ctx context.Context) (json.RawMessage, error) {
	return c.doJSON(ctx, request{method: http.MethodGet, path: pathSession})
}

// DeleteSession ends the current session. The response body is ignored.
func (c *Client) DeleteSession(ctx context.Context) (bool, error) {
	if _, err := c.do(ctx, request{method: http.MethodDelete, path: pathSession}); err != nil {
		return false, err
	}
	return true, nil
}

// CreateShare stores a list of request URIs (for example "/api/qr/hello")
// on the server and returns the key addressing them.
func (c *Client) CreateShare(ctx context.Context, requests []string) (string, error) {
	if requests == nil {
		requests = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(requests); err != nil {
		return "", fmt.Errorf("encode share requests: %w", err)
	}
	body := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	resp, err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    pathShare,
		headers: map[string]string{"Content-Type": "application/json"},
		body:    body,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(resp.Body())), nil
}

// Share fetches a share created by CreateShare.
func (c *Client) Share(ctx context.Context, key string) (json.RawMessage, error) {
	return c.doJSON(ctx, request{
		method: http.MethodGet,
		path:   pathShare,
		query:  NewQuery("key", key),
	})
}
