package cache

import (
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/flanksource/commons/logger"
	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrCacheDisabled indicates caching is disabled
	ErrCacheDisabled = errors.New("caching is disabled")
	// ErrNotFound indicates the entry was not found in cache
	ErrNotFound = errors.New("cache entry not found")
)

// Config holds cache configuration
type Config struct {
	DBPath  string        // Database file path (default: ~/.cache/decks.db)
	TTL     time.Duration // Cache time-to-live, entries never expire when zero
	NoCache bool          // Disable caching
}

// Entry is the extracted text of one document.
type Entry struct {
	ExpiresAt *time.Time

	CacheKey string
	Path     string
	Text     string

	ID         int64
	SizeBytes  int64
	DurationMS int64
	Hits       int64
	CreatedAt  time.Time
	AccessedAt time.Time

	Pages int
}

// Stats summarises the cache contents and today's lookups.
type Stats struct {
	Entries    int64
	Pages      int64
	SizeBytes  int64
	Hits       int64
	Misses     int64
	Writes     int64
	FirstEntry *time.Time
	LastEntry  *time.Time
}

// Cache stores document extractions in SQLite
type Cache struct {
	db     *sql.DB
	config Config
}

// New creates a new cache instance
func New(config Config) (*Cache, error) {
	if config.NoCache {
		return &Cache{config: config}, nil
	}
	if config.DBPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		config.DBPath = filepath.Join(homeDir, ".cache", "decks.db")
	}

	cacheDir := filepath.Dir(config.DBPath)
	if err := os.MkdirAll(cacheDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -64000", // 64MB cache
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(embeddedSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	c := &Cache{db: db, config: config}
	c.removeExpired()
	return c, nil
}

// Path returns the database file, empty when caching is disabled.
func (c *Cache) Path() string {
	return c.config.DBPath
}

// Close closes the database connection
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Key hashes document content into a cache key.
func Key(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// Get retrieves a cached extraction
func (c *Cache) Get(key string) (*Entry, error) {
	if c.config.NoCache {
		return nil, ErrCacheDisabled
	}

	query := `
		SELECT id, cache_key, path, pages, text, size_bytes, duration_ms, hits,
		       created_at, accessed_at, expires_at
		FROM extractions
		WHERE cache_key = ? AND (expires_at IS NULL OR expires_at > ?)
	`

	var entry Entry
	var expiresAt sql.NullInt64
	err := c.db.QueryRow(query, key, time.Now().UnixNano()).Scan(
		&entry.ID, &entry.CacheKey, &entry.Path, &entry.Pages, &entry.Text,
		&entry.SizeBytes, &entry.DurationMS, &entry.Hits,
		&entry.CreatedAt, &entry.AccessedAt, &expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		c.count("miss_count")
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}

	if expiresAt.Valid {
		t := time.Unix(0, expiresAt.Int64)
		entry.ExpiresAt = &t
	}

	_, _ = c.db.Exec("UPDATE extractions SET accessed_at = CURRENT_TIMESTAMP, hits = hits + 1 WHERE id = ?", entry.ID)
	c.count("hit_count")
	logger.Debugf("cache hit for %s", entry.Path)
	return &entry, nil
}

// Set stores an extraction in the cache
func (c *Cache) Set(entry *Entry) error {
	if c.config.NoCache {
		return nil
	}
	if entry.CacheKey == "" {
		return fmt.Errorf("cache entry for %s has no key", entry.Path)
	}

	var expiresAt *int64
	if c.config.TTL > 0 {
		exp := time.Now().Add(c.config.TTL)
		entry.ExpiresAt = &exp
		nanos := exp.UnixNano()
		expiresAt = &nanos
	}

	query := `
		INSERT OR REPLACE INTO extractions (
			cache_key, path, pages, text, size_bytes, duration_ms, expires_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := c.db.Exec(query,
		entry.CacheKey, entry.Path, entry.Pages, entry.Text, entry.SizeBytes, entry.DurationMS, expiresAt,
	); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}

	c.count("write_count")
	logger.Debugf("cached %s: %d pages, %d bytes", entry.Path, entry.Pages, len(entry.Text))
	return nil
}

// Clear removes all cache entries and returns how many were removed
func (c *Cache) Clear() (int64, error) {
	if c.config.NoCache {
		return 0, ErrCacheDisabled
	}
	result, err := c.db.Exec("DELETE FROM extractions")
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	rows, _ := result.RowsAffected()
	logger.Debugf("cleared %d cache entries", rows)
	return rows, nil
}

// Stats retrieves aggregated statistics
func (c *Cache) Stats() (*Stats, error) {
	if c.config.NoCache {
		return nil, ErrCacheDisabled
	}

	var s Stats
	var first, last sql.NullString
	err := c.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(pages), 0), COALESCE(SUM(size_bytes), 0),
		       MIN(created_at), MAX(created_at)
		FROM extractions
	`).Scan(&s.Entries, &s.Pages, &s.SizeBytes, &first, &last)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	s.FirstEntry = parseTimestamp(first)
	s.LastEntry = parseTimestamp(last)

	err = c.db.QueryRow(`
		SELECT COALESCE(SUM(hit_count), 0), COALESCE(SUM(miss_count), 0), COALESCE(SUM(write_count), 0)
		FROM cache_stats
	`).Scan(&s.Hits, &s.Misses, &s.Writes)
	if err != nil {
		return nil, fmt.Errorf("failed to get lookup stats: %w", err)
	}
	return &s, nil
}

// count bumps one of today's lookup counters
func (c *Cache) count(column string) {
	query := fmt.Sprintf(`
		INSERT INTO cache_stats (date, %[1]s) VALUES (?, 1)
		ON CONFLICT(date) DO UPDATE SET %[1]s = %[1]s + 1, updated_at = CURRENT_TIMESTAMP
	`, column)
	_, _ = c.db.Exec(query, time.Now().Format("2006-01-02"))
}

// removeExpired deletes entries past their expiry
func (c *Cache) removeExpired() {
	result, err := c.db.Exec("DELETE FROM extractions WHERE expires_at IS NOT NULL AND expires_at <= ?", time.Now().UnixNano())
	if err != nil {
		logger.Warnf("failed to remove expired cache entries: %v", err)
		return
	}
	if rows, _ := result.RowsAffected(); rows > 0 {
		logger.Debugf("removed %d expired cache entries", rows)
	}
}

// MIN/MAX over TIMESTAMP columns lose their declared type, so the driver
// hands them back as text.
func parseTimestamp(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, v.String); err == nil {
			return &t
		}
	}
	return nil
}
