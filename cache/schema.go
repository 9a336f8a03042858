package cache

// embeddedSchema contains the SQLite database schema
const embeddedSchema = `
-- Extracted document text, keyed by the sha256 of the source file
CREATE TABLE IF NOT EXISTS extractions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    cache_key TEXT NOT NULL UNIQUE,
    path TEXT NOT NULL,
    pages INTEGER DEFAULT 0,
    text TEXT NOT NULL,
    size_bytes INTEGER DEFAULT 0,
    duration_ms INTEGER DEFAULT 0,
    hits INTEGER DEFAULT 0,

    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    accessed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    -- unix nanoseconds, NULL never expires
    expires_at INTEGER
);

CREATE INDEX IF NOT EXISTS idx_extractions_expires ON extractions(expires_at);
CREATE INDEX IF NOT EXISTS idx_extractions_created ON extractions(created_at DESC);

-- Daily lookup counters
CREATE TABLE IF NOT EXISTS cache_stats (
    date DATE NOT NULL PRIMARY KEY,
    hit_count INTEGER DEFAULT 0,
    miss_count INTEGER DEFAULT 0,
    write_count INTEGER DEFAULT 0,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
