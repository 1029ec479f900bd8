package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/broker"
	"github.com/jackc/pgx/v5"
)

// CacheRepository stores Broker responses in the broker_cache table so
// gateway instances sharing a database share the cache.
type CacheRepository struct {
	q   Executor
	now func() time.Time
}

func NewCacheRepository(db *DB) *CacheRepository {
	return &CacheRepository{q: db.Pool, now: time.Now}
}

func (r *CacheRepository) Get(ctx context.Context, key string) (broker.CachedEntry, bool, error) {
	query := `
		SELECT payload, stored_at, expires_at
		FROM broker_cache
		WHERE cache_key = $1
	`

	var (
		payload   []byte
		storedAt  time.Time
		expiresAt time.Time
	)
	err := r.q.QueryRow(ctx, query, key).Scan(&payload, &storedAt, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return broker.CachedEntry{}, false, nil
	}
	if err != nil {
		return broker.CachedEntry{}, false, fmt.Errorf("query cache entry: %w", err)
	}

	var result broker.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return broker.CachedEntry{}, false, fmt.Errorf("decode cache entry: %w", err)
	}

	return broker.CachedEntry{
		Result:   result,
		StoredAt: storedAt,
		TTL:      expiresAt.Sub(storedAt),
	}, true, nil
}

func (r *CacheRepository) Set(ctx context.Context, key string, result broker.Result, ttl time.Duration) error {
	query := `
		INSERT INTO broker_cache (cache_key, service, payload, stored_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cache_key) DO UPDATE
		SET service = EXCLUDED.service,
			payload = EXCLUDED.payload,
			stored_at = EXCLUDED.stored_at,
			expires_at = EXCLUDED.expires_at
	`

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	storedAt := r.now().UTC()
	_, err = r.q.Exec(ctx, query, key, string(result.Service), payload, storedAt, storedAt.Add(ttl))
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// PurgeExpired deletes entries past their expiry and returns how many went.
func (r *CacheRepository) PurgeExpired(ctx context.Context) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM broker_cache WHERE expires_at < $1`, r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge expired cache entries: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
