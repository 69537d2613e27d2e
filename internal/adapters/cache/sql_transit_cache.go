package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"strings"
)

// SQLTransitCache is a Postgres-backed cache of synthesized transit routes.
type SQLTransitCache struct {
	DB *sql.DB
}

func NewSQLTransitCache(db *sql.DB) *SQLTransitCache {
	return &SQLTransitCache{DB: db}
}

// InitSQLTransitCacheSchema creates the Postgres cache table.
func InitSQLTransitCacheSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init transit cache schema: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS transit_cache (
		route_key TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init transit cache schema: %w", err)
	}
	return nil
}

// Fetch cached routes for the given keys.
func (s *SQLTransitCache) GetMany(
	ctx context.Context,
	keys []string,
) (_ map[string]domain.DetailedRoute, err error) {
	defer obs.Time(ctx, "transit.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("transit cache: db is nil")
	}

	uniq := uniqueKeys(keys)
	if len(uniq) == 0 {
		return map[string]domain.DetailedRoute{}, nil
	}

	q := `
	SELECT route_key, payload
	FROM transit_cache
	WHERE route_key = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get transit cache: query transit_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.DetailedRoute, len(uniq))
	for rows.Next() {
		var key string
		var payload []byte
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, fmt.Errorf("get transit cache: scan rows: %w", err)
		}
		r, err := decodeDetailed(payload)
		if err != nil {
			return nil, fmt.Errorf("get transit cache key=%q: %w", key, err)
		}
		out[key] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get transit cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many routes in one transaction.
func (s *SQLTransitCache) PutMany(ctx context.Context, routes map[string]domain.DetailedRoute) (err error) {
	defer obs.Time(ctx, "transit.cache.PutMany")(&err)

	if s.DB == nil {
		return errors.New("transit cache: db is nil")
	}

	if len(routes) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert transit cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO transit_cache (route_key, payload)
	VALUES ($1, $2)
	ON CONFLICT (route_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		created_at = now();
	`)
	if err != nil {
		return fmt.Errorf("insert transit cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for key, r := range routes {
		if strings.TrimSpace(key) == "" {
			return errors.New("insert transit cache: empty route key")
		}
		payload, err := encodeDetailed(r)
		if err != nil {
			return fmt.Errorf("insert transit cache key=%q: %w", key, err)
		}
		if _, err := stmt.ExecContext(ctx, key, string(payload)); err != nil {
			return fmt.Errorf("insert transit cache key=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert transit cache commit: %w", err)
	}

	return nil
}
