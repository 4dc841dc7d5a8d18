package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_frontend/domain"
)

func TestFileSessionStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileSessionStore(path)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.Complete())

	pair := domain.PersistedSession{Token: "abc", User: `{"id":"1","role":"tenant"}`}
	require.NoError(t, store.Save(ctx, pair))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, pair, loaded)

	require.NoError(t, store.Clear(ctx))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PersistedSession{}, loaded)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileSessionStore_ClearTwice(t *testing.T) {
	store := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))

	assert.NoError(t, store.Clear(context.Background()))
	assert.NoError(t, store.Clear(context.Background()))
}

func TestFileSessionStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileSessionStore(path).Load(context.Background())

	assert.Error(t, err)
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	pair := domain.PersistedSession{Token: "abc", User: `{"id":"1"}`}

	require.NoError(t, store.Save(ctx, pair))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, pair, loaded)

	require.NoError(t, store.Clear(ctx))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.Complete())
}
