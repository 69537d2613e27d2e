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

// SQLite backed cache of synthesized transit routes. The transit_cache table
// is created by repositories.InitSchema.
type SqliteTransitCache struct {
	DB *sql.DB
}

func NewSqliteTransitCache(db *sql.DB) *SqliteTransitCache {
	return &SqliteTransitCache{DB: db}
}

// Fetch cached routes for the given keys.
func (s *SqliteTransitCache) GetMany(
	ctx context.Context,
	keys []string,
) (_ map[string]domain.DetailedRoute, err error) {
	defer obs.Time(ctx, "transit.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("transit cache: db is nil")
	}

	uniq := uniqueKeys(keys)
	if len(uniq) == 0 {
		return map[string]domain.DetailedRoute{}, nil
	}

	ph := make([]string, len(uniq))
	args := make([]any, len(uniq))
	for i, k := range uniq {
		ph[i] = "?"
		args[i] = k
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT route_key, payload
	FROM transit_cache
	WHERE route_key IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get transit cache: query transit_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.DetailedRoute, len(uniq))
	for rows.Next() {
		var key, payload string
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, fmt.Errorf("get transit cache: scan rows: %w", err)
		}
		r, err := decodeDetailed([]byte(payload))
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
func (s *SqliteTransitCache) PutMany(ctx context.Context, routes map[string]domain.DetailedRoute) (err error) {
	defer obs.Time(ctx, "transit.sqlite.PutMany")(&err)

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
	INSERT OR REPLACE INTO transit_cache (
		route_key,
		payload
	)
	VALUES (?, ?)
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
