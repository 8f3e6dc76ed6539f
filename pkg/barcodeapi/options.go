package barcodeapi

import (
	"time"

	"github.com/samvad-hq/barcodeapi-go/pkg/httpclient"
)

// DefaultBaseURL is the public barcodeapi.org service.
const DefaultBaseURL = "https://barcodeapi.org"

// DefaultTimeout bounds requests made through the default transport.
const DefaultTimeout = 30 * time.Second

type options struct {
	baseURL   string
	token     string
	transport httpclient.Client
	timeout   time.Duration
	headers   map[string]string
	log       Logger
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at another deployment of the service.
// Trailing slashes are stripped.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithToken sets the initial credential.
func WithToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

// WithTransport replaces the HTTP transport, typically with a stub in tests.
func WithTransport(transport httpclient.Client) Option {
	return func(o *options) {
		o.transport = transport
	}
}

// WithTimeout sets the request timeout of the default transport. It has no
// effect when WithTransport is used.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// WithLogger attaches a structured logger for per-request debug entries.
func WithLogger(log Logger) Option {
	return func(o *options) {
		o.log = log
	}
}
