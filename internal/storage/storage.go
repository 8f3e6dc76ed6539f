// Package storage keeps a local history of share keys created through the CLI.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// ShareRecord is one remembered share.
type ShareRecord struct {
	Key       string    `json:"key" yaml:"key"`
	Requests  []string  `json:"requests" yaml:"requests"`
	BaseURL   string    `json:"base_url" yaml:"base_url"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	ExpiresAt time.Time `json:"expires_at" yaml:"expires_at"`
}

// Store tracks created share keys until they expire.
type Store interface {
	Close() error
	RememberShare(rec ShareRecord) error
	Shares() ([]ShareRecord, error)
	ForgetShare(key string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	ShareTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultShareTTL        = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.ShareTTL <= 0 {
		opts.ShareTTL = defaultShareTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                    { return nil }
func (noopStore) RememberShare(ShareRecord) error { return nil }
func (noopStore) Shares() ([]ShareRecord, error)  { return nil, nil }
func (noopStore) ForgetShare(string) error        { return nil }
