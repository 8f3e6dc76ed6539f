package barcodeapi

import (
	"encoding/json"
	"net/http"
)

// GenerateOptions customises a Generate call.
type GenerateOptions struct {
	// Params are appended to the query string; a repeated key overwrites
	// the earlier value.
	Params Query
	// Headers override the client's headers for this call only.
	Headers map[string]string
}

// Barcode is the undecoded result of Generate.
type Barcode struct {
	Body        []byte
	ContentType string
	// Header carries the full response headers, including any barcode
	// metadata the service reports.
	Header http.Header
}

// DecodeResult is the payload returned by Decode. Only the commonly
// returned fields are mapped, each independently: a field with an
// unexpected type stays zero. Raw holds the payload as received.
type DecodeResult struct {
	Code   int    `json:"code"`
	Text   string `json:"text"`
	Format string `json:"format"`

	Raw json.RawMessage `json:"-"`
}

// Unmarshal decodes a JSON result returned by the client into T.
func Unmarshal[T any](raw json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &DecodeError{Body: raw, Err: err}
	}
	return out, nil
}
