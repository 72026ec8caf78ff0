package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

// testRecord builds a document record with deterministic timestamps.
func testRecord(id string, createdAt time.Time) domain.DocumentRecord {
	return domain.DocumentRecord{
		ID:         id,
		Source:     "/docs/" + id + ".pdf",
		Title:      "Document " + id,
		PageCount:  3,
		ChunkCount: 12,
		Metadata:   map[string]any{"type": "pdf"},
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestNewStore_CreatesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "catalogue.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening runs migrations again; already-applied versions are skipped.
	store, err = NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestSaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	record := testRecord("doc-1", now)
	require.NoError(t, store.Save(ctx, record))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.Source, got.Source)
	assert.Equal(t, record.Title, got.Title)
	assert.Equal(t, record.PageCount, got.PageCount)
	assert.Equal(t, record.ChunkCount, got.ChunkCount)
	assert.Equal(t, "pdf", got.Metadata["type"])
	assert.True(t, got.CreatedAt.Equal(now))
}

func TestGet_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSave_UpdatesExisting(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	record := testRecord("doc-1", now)
	require.NoError(t, store.Save(ctx, record))

	record.ChunkCount = 20
	record.Title = "Updated Title"
	record.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, store.Save(ctx, record))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 20, got.ChunkCount)
	assert.Equal(t, "Updated Title", got.Title)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestList_NewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.Save(ctx, testRecord("old", base.Add(-2*time.Hour))))
	require.NoError(t, store.Save(ctx, testRecord("new", base)))
	require.NoError(t, store.Save(ctx, testRecord("mid", base.Add(-time.Hour))))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "mid", records[1].ID)
	assert.Equal(t, "old", records[2].ID)
}

func TestList_Empty(t *testing.T) {
	store := setupTestStore(t)

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.Save(ctx, testRecord("doc-1", now)))
	require.NoError(t, store.Delete(ctx, "doc-1"))

	_, err := store.Get(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting a missing record is not an error.
	assert.NoError(t, store.Delete(ctx, "doc-1"))
}

func TestSave_NilMetadata(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	record := testRecord("doc-1", now)
	record.Metadata = nil
	require.NoError(t, store.Save(ctx, record))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Nil(t, got.Metadata)
}
