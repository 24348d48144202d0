package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fintrack/fintrack/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestFileStore(t *testing.T) {
	t.Run("should report a never-written key as absent", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		_, found, err := store.Get(ctx, "financialTracker")

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("should round-trip a value", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, "financialTracker", []byte(`{"monthlyBalance":0}`)))
		value, found, err := store.Get(ctx, "financialTracker")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte(`{"monthlyBalance":0}`), value)
	})

	t.Run("should fully replace the previous value", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewFileStore(dir)
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, "financialTracker", []byte("a much longer first value")))
		require.NoError(t, store.Put(ctx, "financialTracker", []byte("short")))
		value, _, err := store.Get(ctx, "financialTracker")

		require.NoError(t, err)
		assert.Equal(t, []byte("short"), value)
	})

	t.Run("should leave no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewFileStore(dir)
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, "financialTracker", []byte("v")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "financialTracker.json", entries[0].Name())
	})
}

func TestMemoryStore(t *testing.T) {
	t.Run("should round-trip a value and isolate the stored copy", func(t *testing.T) {
		store := NewMemoryStore()

		original := []byte("value")
		require.NoError(t, store.Put(ctx, "k", original))
		original[0] = 'X'

		value, found, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("value"), value)
	})

	t.Run("should forget everything on Cleanup", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Put(ctx, "k", []byte("value")))

		store.Cleanup()

		_, found, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestSQLiteStore(t *testing.T) {
	newStore := func(t *testing.T) *SQLiteStore {
		store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "fintrack.db"))
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		return store
	}

	t.Run("should report a never-written key as absent", func(t *testing.T) {
		store := newStore(t)

		_, found, err := store.Get(ctx, "financialTracker")

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("should upsert on repeated writes", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Put(ctx, "financialTracker", []byte("first")))
		require.NoError(t, store.Put(ctx, "financialTracker", []byte("second")))
		value, found, err := store.Get(ctx, "financialTracker")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("second"), value)
	})
}

func TestOpen(t *testing.T) {
	t.Run("should build the configured backend", func(t *testing.T) {
		store, closeStore, err := Open(config.Storage{Type: "memory"})

		require.NoError(t, err)
		defer closeStore()
		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("should reject an unknown backend type", func(t *testing.T) {
		_, _, err := Open(config.Storage{Type: "tape"})

		assert.Error(t, err)
	})
}
