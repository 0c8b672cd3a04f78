// Package storage holds the durable key-value contract used by the wizard
// and its backends.
package storage

import (
	"context"
	"fmt"

	"github.com/mark3labs/sensei/internal/config"
	"github.com/mark3labs/sensei/internal/logger"
	"github.com/mark3labs/sensei/internal/nats"
)

// Key names a durable value.
type Key string

// KeyUsername holds the name entered on the first wizard screen.
const KeyUsername Key = "sportsensei-username"

// Store is a durable string key-value store.
// Get reports ok=false for a key that has never been set or was cleared.
type Store interface {
	Get(ctx context.Context, key Key) (value string, ok bool, err error)
	Set(ctx context.Context, key Key, value string) error
	Clear(ctx context.Context, key Key) error
}

// Open builds the backend selected by cfg.Store. The returned close func
// releases backend resources and is safe to call once.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreMemory:
		return NewMemoryStore(), noop, nil

	case config.StoreFile:
		return NewFileStore(cfg.DataDir), noop, nil

	case config.StoreNATS:
		kv, closeKV, err := nats.OpenKV(ctx, cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening nats store: %w", err)
		}
		logger.Debug("Using NATS KV store in %s", cfg.DataDir)
		return NewKVStore(kv), closeKV, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
