package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/samvad-hq/barcodeapi-go/internal/config"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		BaseURL:              baseURL,
		Token:                "abc",
		Timeout:              2 * time.Second,
		ShareStore:           "bbolt",
		ShareStorePath:       filepath.Join(t.TempDir(), "shares.db"),
		ShareTTL:             time.Hour,
		ShareCleanupInterval: time.Hour,
	}
}

func TestNewRejectsNilConfig(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestNewAppliesConfigToClient(t *testing.T) {
	a, err := New(testConfig(t, "https://example.com/"), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if a.Client().BaseURL() != "https://example.com" {
		t.Fatalf("unexpected base url %q", a.Client().BaseURL())
	}
	if a.Client().Token() != "abc" {
		t.Fatalf("unexpected token %q", a.Client().Token())
	}
	if a.Config().ShareStore != "bbolt" {
		t.Fatalf("unexpected config %+v", a.Config())
	}
}

func TestCreateShareRemembersKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/share/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("key-123\n"))
	}))
	defer srv.Close()

	a, err := New(testConfig(t, srv.URL), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	key, err := a.CreateShare(context.Background(), []string{"/api/qr/hello"})
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}
	if key != "key-123" {
		t.Fatalf("unexpected key %q", key)
	}

	shares, err := a.Shares()
	if err != nil {
		t.Fatalf("Shares: %v", err)
	}
	if len(shares) != 1 || shares[0].Key != "key-123" || shares[0].BaseURL != srv.URL {
		t.Fatalf("unexpected shares %+v", shares)
	}

	if err := a.ForgetShare("key-123"); err != nil {
		t.Fatalf("ForgetShare: %v", err)
	}
	if shares, _ := a.Shares(); len(shares) != 0 {
		t.Fatalf("expected empty history, got %+v", shares)
	}
}

func TestCreateShareFailureIsNotRemembered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a, err := New(testConfig(t, srv.URL), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if _, err := a.CreateShare(context.Background(), []string{"/api/qr/x"}); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
	if shares, _ := a.Shares(); len(shares) != 0 {
		t.Fatalf("failed share was remembered: %+v", shares)
	}
}
