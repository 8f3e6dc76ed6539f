package barcodeapi

import (
	"context"
	"net/http"
	"sync"

	"github.com/samvad-hq/barcodeapi-go/pkg/httpclient"
)

// stubResponse implements httpclient.Response.
type stubResponse struct {
	body       []byte
	statusCode int
	header     http.Header
}

func (s stubResponse) Body() []byte    { return s.body }
func (s stubResponse) StatusCode() int { return s.statusCode }
func (s stubResponse) Header() http.Header {
	if s.header == nil {
		return http.Header{}
	}
	return s.header
}

// sentRequest captures one call made through stubTransport.
type sentRequest struct {
	method  string
	url     string
	headers map[string]string
	body    []byte
}

// stubTransport records requests and replies with a fixed response.
type stubTransport struct {
	mu   sync.Mutex
	sent []sentRequest
	resp stubResponse
	err  error
}

func (s *stubTransport) Send(_ context.Context, method, url string, headers map[string]string, body []byte) (httpclient.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentRequest{method: method, url: url, headers: headers, body: body})
	if s.err != nil {
		return nil, s.err
	}
	resp := s.resp
	if resp.statusCode == 0 {
		resp.statusCode = http.StatusOK
	}
	return resp, nil
}

func (s *stubTransport) last() sentRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return sentRequest{}
	}
	return s.sent[len(s.sent)-1]
}

func (s *stubTransport) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func newStubClient(resp stubResponse, opts ...Option) (*Client, *stubTransport) {
	stub := &stubTransport{resp: resp}
	opts = append([]Option{WithBaseURL("https://example.com")}, opts...)
	opts = append(opts, WithTransport(stub))
	return New(opts...), stub
}
