package storage

import (
	"context"
	"os"
	"testing"

	"github.com/mark3labs/sensei/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns one fresh instance of every Store implementation.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	cfg := config.Default()
	cfg.Store = config.StoreNATS
	cfg.DataDir = t.TempDir()
	kv, closeKV, err := Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeKV() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(t.TempDir()),
		"nats":   kv,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, KeyUsername)
			require.NoError(t, err)
			assert.False(t, ok, "fresh store should be empty")

			require.NoError(t, store.Set(ctx, KeyUsername, "alice"))
			v, ok, err := store.Get(ctx, KeyUsername)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "alice", v)

			require.NoError(t, store.Set(ctx, KeyUsername, "bob"))
			v, _, err = store.Get(ctx, KeyUsername)
			require.NoError(t, err)
			assert.Equal(t, "bob", v, "set overwrites")

			require.NoError(t, store.Clear(ctx, KeyUsername))
			_, ok, err = store.Get(ctx, KeyUsername)
			require.NoError(t, err)
			assert.False(t, ok, "cleared key should be absent")

			require.NoError(t, store.Clear(ctx, KeyUsername), "clearing twice is fine")
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, NewFileStore(dir).Set(ctx, KeyUsername, "alice"))

	v, ok, err := NewFileStore(dir).Get(ctx, KeyUsername)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", v)
}

func TestFileStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0644))

	_, _, err := store.Get(ctx, KeyUsername)
	assert.Error(t, err)
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir() + "/nested/data")

	require.NoError(t, store.Set(ctx, KeyUsername, "carol"))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestKVStore_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Store = config.StoreNATS
	cfg.DataDir = t.TempDir()

	store, closeFn, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, KeyUsername, "dana"))
	require.NoError(t, closeFn())

	store, closeFn, err = Open(ctx, cfg)
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	v, ok, err := store.Get(ctx, KeyUsername)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dana", v)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	cfg.Store = config.StoreMemory
	store, closeFn, err := Open(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
	assert.NoError(t, closeFn())

	cfg.Store = config.StoreFile
	cfg.DataDir = t.TempDir()
	store, _, err = Open(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	cfg.Store = "redis"
	_, _, err = Open(ctx, cfg)
	assert.Error(t, err)
}
