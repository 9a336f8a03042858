package cache

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, config Config) *Cache {
	t.Helper()
	if config.DBPath == "" && !config.NoCache {
		config.DBPath = filepath.Join(t.TempDir(), "nested", "decks.db")
	}
	c, err := New(config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestKeyIsContentHash(t *testing.T) {
	assert.Equal(t, Key([]byte("abc")), Key([]byte("abc")))
	assert.NotEqual(t, Key([]byte("abc")), Key([]byte("abd")))
	assert.Len(t, Key(nil), 64)
}

func TestSetThenGet(t *testing.T) {
	c := newCache(t, Config{})
	key := Key([]byte("pdf bytes"))

	_, err := c.Get(key)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, c.Set(&Entry{CacheKey: key, Path: "sdv.pdf", Pages: 12, Text: "SDV 개념", SizeBytes: 9}))

	entry, err := c.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "sdv.pdf", entry.Path)
	assert.Equal(t, 12, entry.Pages)
	assert.Equal(t, "SDV 개념", entry.Text)
	assert.Nil(t, entry.ExpiresAt)

	// replacing keeps a single row
	require.NoError(t, c.Set(&Entry{CacheKey: key, Path: "renamed.pdf", Pages: 12, Text: "SDV 개념"}))
	entry, err = c.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "renamed.pdf", entry.Path)

	stats, err := c.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Entries)
	assert.Equal(t, int64(12), stats.Pages)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(2), stats.Writes)
}

func TestSetRequiresKey(t *testing.T) {
	c := newCache(t, Config{})
	assert.Error(t, c.Set(&Entry{Path: "a.pdf"}))
}

func TestExpiredEntriesAreMisses(t *testing.T) {
	c := newCache(t, Config{TTL: time.Millisecond})
	key := Key([]byte("x"))
	require.NoError(t, c.Set(&Entry{CacheKey: key, Path: "x.pdf", Text: "x"}))
	time.Sleep(20 * time.Millisecond)

	_, err := c.Get(key)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestExpiredEntriesAreRemovedOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.db")
	c, err := New(Config{DBPath: path, TTL: time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, c.Set(&Entry{CacheKey: Key([]byte("x")), Path: "x.pdf", Text: "x"}))
	require.NoError(t, c.Close())
	time.Sleep(20 * time.Millisecond)

	c = newCache(t, Config{DBPath: path})
	stats, err := c.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.Entries)
}

func TestClear(t *testing.T) {
	c := newCache(t, Config{})
	for _, s := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(&Entry{CacheKey: Key([]byte(s)), Path: s + ".pdf", Text: s}))
	}
	removed, err := c.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	_, err = c.Get(Key([]byte("a")))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDisabled(t *testing.T) {
	c := newCache(t, Config{NoCache: true})
	assert.Empty(t, c.Path())

	require.NoError(t, c.Set(&Entry{CacheKey: "k", Path: "a.pdf"}))
	_, err := c.Get("k")
	assert.True(t, errors.Is(err, ErrCacheDisabled))
	_, err = c.Clear()
	assert.True(t, errors.Is(err, ErrCacheDisabled))
	_, err = c.Stats()
	assert.True(t, errors.Is(err, ErrCacheDisabled))
	assert.NoError(t, c.Close())
}
