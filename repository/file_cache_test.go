package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"caseodds/models"
	"caseodds/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache_IsFresh(t *testing.T) {
	dir := t.TempDir()
	cache := NewFileCache(dir, 2*time.Hour)

	t.Run("missing file is stale", func(t *testing.T) {
		fresh, err := cache.IsFresh("missing.json")
		require.NoError(t, err)
		assert.False(t, fresh)
	})

	t.Run("file written one hour ago is fresh", func(t *testing.T) {
		require.NoError(t, cache.Store("recent.json", []byte(`{"a":1}`)))
		testutil.AgeFile(t, cache.Path("recent.json"), time.Hour)

		fresh, err := cache.IsFresh("recent.json")
		require.NoError(t, err)
		assert.True(t, fresh)
	})

	t.Run("file written three hours ago is stale", func(t *testing.T) {
		require.NoError(t, cache.Store("old.json", []byte(`{"a":1}`)))
		testutil.AgeFile(t, cache.Path("old.json"), 3*time.Hour)

		fresh, err := cache.IsFresh("old.json")
		require.NoError(t, err)
		assert.False(t, fresh)
	})
}

func TestFileCache_IsFresh_UsesInjectedClock(t *testing.T) {
	dir := t.TempDir()
	cache := NewFileCache(dir, 2*time.Hour)
	require.NoError(t, cache.Store("doc.json", []byte(`{}`)))

	cache.now = func() time.Time { return time.Now().Add(2*time.Hour + time.Minute) }

	fresh, err := cache.IsFresh("doc.json")
	require.NoError(t, err)
	assert.False(t, fresh)
}

func TestFileCache_StorePrettyPrintsAndLoads(t *testing.T) {
	dir := t.TempDir()
	cache := NewFileCache(filepath.Join(dir, "nested", "data"), time.Hour)

	require.NoError(t, cache.Store("doc.json", []byte(`{"data":[{"name":"S"}]}`)))

	raw, err := cache.Load("doc.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"data\": [\n    {\n      \"name\": \"S\"\n    }\n  ]\n}\n", string(raw))

	entries, err := os.ReadDir(filepath.Join(dir, "nested", "data"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileCache_StoreRejectsInvalidJSONAndKeepsOldFile(t *testing.T) {
	dir := t.TempDir()
	cache := NewFileCache(dir, time.Hour)
	require.NoError(t, cache.Store("doc.json", []byte(`{"v":1}`)))

	err := cache.Store("doc.json", []byte(`{"v":`))
	assert.ErrorIs(t, err, models.ErrParseFailed)

	raw, err := cache.Load("doc.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(raw))
}

func TestFileCache_LoadMissing(t *testing.T) {
	cache := NewFileCache(t.TempDir(), time.Hour)

	_, err := cache.Load("missing.json")
	assert.ErrorIs(t, err, models.ErrCacheIO)
}
