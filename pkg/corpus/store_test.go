package corpus

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// setupTestStore creates a fresh on-disk SQLite database and a Store over
// it, releasing both with t.Cleanup.
func setupTestStore(t *testing.T) (context.Context, *Store) {
	t.Helper()
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbFile+"?_journal_mode=WAL&_busy_timeout=5000")
	require.NoError(t, err, "failed to open database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, SetupSchema(db), "failed to set up schema")

	store, err := NewStore(db)
	require.NoError(t, err, "NewStore() failed")
	t.Cleanup(store.Close)

	return context.Background(), store
}

func TestStoreRoundTrip(t *testing.T) {
	ctx, store := setupTestStore(t)

	names := []string{"John", "Joey", "John", "Joseph"}
	require.NoError(t, store.Put(ctx, "people", names))

	got, err := store.Get(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, names, got, "order and duplicates must round-trip")
}

func TestStorePutReplaces(t *testing.T) {
	ctx, store := setupTestStore(t)

	require.NoError(t, store.Put(ctx, "people", []string{"Old", "Older"}))
	require.NoError(t, store.Put(ctx, "people", []string{"New"}))

	got, err := store.Get(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, []string{"New"}, got)
}

func TestStoreAppendNames(t *testing.T) {
	ctx, store := setupTestStore(t)

	require.NoError(t, store.Put(ctx, "people", []string{"Ann"}))
	require.NoError(t, store.AppendNames(ctx, "people", []string{"Bea", "Ann"}))

	got, err := store.Get(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bea", "Ann"}, got)

	err = store.AppendNames(ctx, "missing", []string{"x"})
	assert.ErrorIs(t, err, ErrCorpusNotFound)
}

func TestStoreGetMissing(t *testing.T) {
	ctx, store := setupTestStore(t)
	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCorpusNotFound)
}

func TestStoreList(t *testing.T) {
	ctx, store := setupTestStore(t)

	require.NoError(t, store.Put(ctx, "beta", []string{"a", "b"}))
	require.NoError(t, store.Put(ctx, "alpha", []string{"x"}))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []CorpusInfo{{Name: "alpha", Names: 1}, {Name: "beta", Names: 2}}, infos)
}

func TestStoreDelete(t *testing.T) {
	ctx, store := setupTestStore(t)

	require.NoError(t, store.Put(ctx, "people", []string{"Ann"}))
	require.NoError(t, store.Delete(ctx, "people"))

	_, err := store.Get(ctx, "people")
	assert.ErrorIs(t, err, ErrCorpusNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "people"), ErrCorpusNotFound)
}

func TestStoreExport(t *testing.T) {
	ctx, store := setupTestStore(t)

	require.NoError(t, store.Put(ctx, "people", []string{"Ann", "Bea"}))

	var buf bytes.Buffer
	require.NoError(t, store.Export(ctx, "people", &buf))
	assert.Equal(t, "Ann\nBea\n", buf.String())
}

func TestSetupSchemaIdempotent(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbFile)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, SetupSchema(db))
	require.NoError(t, SetupSchema(db))
}
