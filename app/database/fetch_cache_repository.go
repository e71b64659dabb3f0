package database

import (
	"database/sql"
	"fmt"
	"time"
)

// FetchCacheRepository is the advisory TTL cache for upstream fetch results.
// The cache trades freshness for latency only; callers must treat every
// failure and every miss identically.
type FetchCacheRepository interface {
	Get(source, cacheKey string, ttl time.Duration) ([]byte, bool, error)
	Set(source, cacheKey string, payload []byte) error
	Purge(olderThan time.Duration) (int64, error)
	GetEntryCount() (int, error)
}

// SQLiteFetchCacheRepository handles database operations for the fetch cache
type SQLiteFetchCacheRepository struct {
	db *DB
}

var _ FetchCacheRepository = (*SQLiteFetchCacheRepository)(nil)

// NewFetchCacheRepository creates a new fetch cache repository
func NewFetchCacheRepository(db *DB) *SQLiteFetchCacheRepository {
	return &SQLiteFetchCacheRepository{db: db}
}

// Get returns the cached payload for (source, cacheKey) if it is younger
// than ttl. An expired or absent entry is a miss, not an error.
func (r *SQLiteFetchCacheRepository) Get(source, cacheKey string, ttl time.Duration) ([]byte, bool, error) {
	var payload []byte
	var fetchedAt time.Time

	err := r.db.QueryRow(`
		SELECT payload, fetched_at FROM fetch_cache
		WHERE source = ? AND cache_key = ?
	`, source, cacheKey).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read fetch cache: %w", err)
	}

	if time.Since(fetchedAt) > ttl {
		return nil, false, nil
	}

	return payload, true, nil
}

// Set stores or replaces the payload for (source, cacheKey).
func (r *SQLiteFetchCacheRepository) Set(source, cacheKey string, payload []byte) error {
	_, err := r.db.Exec(`
		INSERT INTO fetch_cache (source, cache_key, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (source, cache_key) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, source, cacheKey, payload, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to write fetch cache: %w", err)
	}
	return nil
}

// Purge deletes entries older than the given age and returns the count removed.
func (r *SQLiteFetchCacheRepository) Purge(olderThan time.Duration) (int64, error) {
	result, err := r.db.Exec(`
		DELETE FROM fetch_cache WHERE fetched_at < ?
	`, time.Now().UTC().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to purge fetch cache: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged rows: %w", err)
	}
	return removed, nil
}

// GetEntryCount returns the number of cached entries.
func (r *SQLiteFetchCacheRepository) GetEntryCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM fetch_cache`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count fetch cache entries: %w", err)
	}
	return count, nil
}
