package app

import (
	"context"
	"fmt"

	"github.com/samvad-hq/barcodeapi-go/internal/config"
	"github.com/samvad-hq/barcodeapi-go/internal/logger"
	"github.com/samvad-hq/barcodeapi-go/internal/storage"
	"github.com/samvad-hq/barcodeapi-go/pkg/barcodeapi"
)

// App holds the runtime shared by CLI commands: the API client and the
// local share history.
type App struct {
	cfg    *config.Config
	client *barcodeapi.Client
	store  storage.Store
	log    logger.Logger
}

// New builds the runtime from config. Extra client options are applied
// after the config-derived ones, so tests can swap the transport.
func New(cfg *config.Config, log logger.Logger, opts ...barcodeapi.Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	clientOpts := []barcodeapi.Option{
		barcodeapi.WithBaseURL(cfg.BaseURL),
		barcodeapi.WithToken(cfg.Token),
		barcodeapi.WithTimeout(cfg.Timeout),
		barcodeapi.WithLogger(log),
	}
	client := barcodeapi.New(append(clientOpts, opts...)...)

	store, err := storage.NewStore(cfg.ShareStore, cfg.ShareStorePath, storage.Options{
		ShareTTL:        cfg.ShareTTL,
		CleanupInterval: cfg.ShareCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init share store: %w", err)
	}
	log.DebugObj("app initialized", "app_state", map[string]any{
		"base_url":    client.BaseURL(),
		"token_set":   client.Token() != "",
		"share_store": cfg.ShareStore,
		"share_path":  cfg.ShareStorePath,
	})

	return &App{cfg: cfg, client: client, store: store, log: log}, nil
}

// Client returns the API client.
func (a *App) Client() *barcodeapi.Client { return a.client }

// Config returns the loaded configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Shares returns the remembered shares, newest first.
func (a *App) Shares() ([]storage.ShareRecord, error) {
	return a.store.Shares()
}

// CreateShare creates a share on the service and remembers its key locally.
// A failure to remember the key is logged, not returned: the share exists.
func (a *App) CreateShare(ctx context.Context, requests []string) (string, error) {
	key, err := a.client.CreateShare(ctx, requests)
	if err != nil {
		return "", err
	}
	rec := storage.ShareRecord{
		Key:      key,
		Requests: requests,
		BaseURL:  a.client.BaseURL(),
	}
	if err := a.store.RememberShare(rec); err != nil {
		a.log.WarnObj("share history update failed", "share_error", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
	}
	return key, nil
}

// ForgetShare drops a key from the local history.
func (a *App) ForgetShare(key string) error {
	return a.store.ForgetShare(key)
}

// Close releases the share store.
func (a *App) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	if err := a.store.Close(); err != nil {
		a.log.ErrorObj("share store close failed", "error", err)
		return err
	}
	return nil
}
