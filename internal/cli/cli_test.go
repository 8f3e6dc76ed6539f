package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/samvad-hq/barcodeapi-go/pkg/barcodeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// fakeService mimics the endpoints used by the commands.
func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.EscapedPath() == "/api/qr/hello%20world":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("PNG:" + r.URL.RawQuery + ":" + r.Header.Get("Authorization")))
		case r.Method == http.MethodPost && r.URL.Path == "/decode/":
			file, _, err := r.FormFile("image")
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			defer file.Close()
			data, _ := io.ReadAll(file)
			_ = json.NewEncoder(w).Encode(map[string]any{"code": 200, "text": string(data), "format": "QR"})
		case r.Method == http.MethodPost && r.URL.Path == "/bulk/":
			if _, _, err := r.FormFile("csvFile"); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte{0x50, 0x4b, 0x05, 0x06})
		case r.Method == http.MethodGet && r.URL.Path == "/info/":
			_, _ = w.Write([]byte(`{"version":"2.0","uptime":42}`))
		case r.Method == http.MethodGet && r.URL.Path == "/type/":
			_, _ = w.Write([]byte(`{"name":"` + r.URL.Query().Get("type") + `"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/session/":
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPost && r.URL.Path == "/share/":
			_, _ = w.Write([]byte("share-key\n"))
		case r.Method == http.MethodGet && r.URL.Path == "/limiter/":
			http.Error(w, `{"message":"slow down"}`, http.StatusTooManyRequests)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	base := []string{"--base-url", srv.URL, "--share-store", "none"}
	if len(args) > 0 {
		base = append([]string{args[0]}, base...)
		base = append(base, args[1:]...)
	}
	err := Execute(context.Background(), base, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRootCommandHelp(t *testing.T) {
	var stdout bytes.Buffer
	err := Execute(context.Background(), []string{"--help"}, &stdout, &stdout)
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "generate")
	assert.Contains(t, output, "share")
	assert.Contains(t, output, "BARCODEAPI_TOKEN")
}

func TestGenerateWritesImageFile(t *testing.T) {
	srv := fakeService(t)
	out := filepath.Join(t.TempDir(), "hello.png")

	_, stderr, err := run(t, srv, "generate", "hello world",
		"--type", "qr", "--param", "height=50", "--param", "height=80", "--token", "abc", "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "PNG:height=80:Token=abc", string(data))
	assert.Contains(t, stderr, "image/png")
}

func TestGenerateStreamsToStdout(t *testing.T) {
	srv := fakeService(t)
	stdout, _, err := run(t, srv, "generate", "hello world", "-t", "qr")
	require.NoError(t, err)
	assert.Equal(t, "PNG::", stdout)
}

func TestGenerateRejectsMalformedParam(t *testing.T) {
	srv := fakeService(t)
	_, _, err := run(t, srv, "generate", "x", "--param", "novalue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=value")
}

func TestDecodePrintsResult(t *testing.T) {
	srv := fakeService(t)
	image := filepath.Join(t.TempDir(), "code.png")
	require.NoError(t, os.WriteFile(image, []byte("123"), 0o644))

	stdout, _, err := run(t, srv, "decode", image)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "123", result["text"])
	assert.Equal(t, "QR", result["format"])
}

func TestDecodeMissingFileFailsWithoutRequest(t *testing.T) {
	srv := fakeService(t)
	_, _, err := run(t, srv, "decode", filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, barcodeapi.ErrInvalidInput))
}

func TestBulkWritesArchive(t *testing.T) {
	srv := fakeService(t)
	dir := t.TempDir()
	csv := filepath.Join(dir, "codes.csv")
	out := filepath.Join(dir, "codes.zip")
	require.NoError(t, os.WriteFile(csv, []byte("qr,hello\n"), 0o644))

	_, _, err := run(t, srv, "bulk", csv, "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x50, 0x4b, 0x05, 0x06}, data)
}

func TestInfoRendersYAML(t *testing.T) {
	srv := fakeService(t)
	stdout, _, err := run(t, srv, "info", "--output", "yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "2.0", doc["version"])
	assert.Equal(t, 42, doc["uptime"])
}

func TestTypeQueriesByName(t *testing.T) {
	srv := fakeService(t)
	stdout, _, err := run(t, srv, "type", "qr")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"qr"}`, stdout)
}

func TestSessionDelete(t *testing.T) {
	srv := fakeService(t)
	stdout, _, err := run(t, srv, "session", "--delete")
	require.NoError(t, err)
	assert.JSONEq(t, `{"deleted":true}`, stdout)
}

func TestStatusErrorIsReturned(t *testing.T) {
	srv := fakeService(t)
	_, _, err := run(t, srv, "limiter")
	require.Error(t, err)

	var statusErr *barcodeapi.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "slow down")
}

func TestShareCreateAndList(t *testing.T) {
	srv := fakeService(t)
	db := filepath.Join(t.TempDir(), "shares.db")
	var stdout, stderr bytes.Buffer

	err := Execute(context.Background(), []string{"share", "create", "/api/qr/a", "/api/128/b",
		"--base-url", srv.URL, "--share-db", db}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "share-key\n", stdout.String())

	stdout.Reset()
	err = Execute(context.Background(), []string{"share", "list", "--share-db", db}, &stdout, &stderr)
	require.NoError(t, err)

	var shares []map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &shares))
	require.Len(t, shares, 1)
	assert.Equal(t, "share-key", shares[0]["key"])
	assert.Equal(t, []any{"/api/qr/a", "/api/128/b"}, shares[0]["requests"])

	stdout.Reset()
	err = Execute(context.Background(), []string{"share", "forget", "share-key", "--share-db", db}, &stdout, &stderr)
	require.NoError(t, err)

	err = Execute(context.Background(), []string{"share", "list", "--share-db", db}, &stdout, &stderr)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, stdout.String())
}

func TestInjectedTransportOptionWins(t *testing.T) {
	srv := fakeService(t)
	var stdout bytes.Buffer
	err := Execute(context.Background(), []string{"info", "--share-store", "none"}, &stdout, &stdout,
		barcodeapi.WithBaseURL(srv.URL))
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"2.0","uptime":42}`, stdout.String())
}
