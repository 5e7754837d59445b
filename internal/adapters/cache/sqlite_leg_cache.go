package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pandal-planner/internal/domain"
)

// SQLite backed cache for leg geometry keyed by rounded endpoints.
// The from/to keys are rounded to 5 decimal places (roughly 1 meter),
// so repeated plans over the same venues reuse stored geometry.
type SqliteLegCache struct {
	DB *sql.DB
}

func NewSqliteLegCache(db *sql.DB) *SqliteLegCache {
	return &SqliteLegCache{DB: db}
}

// endpointKey normalizes a coordinate into the cache key format.
func endpointKey(p domain.LatLng) string {
	return fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lng)
}

// Get fetches the cached geometry for one leg, if present.
func (s *SqliteLegCache) Get(ctx context.Context, from, to domain.LatLng) ([]domain.LatLng, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("leg cache: db is nil")
	}

	q := `
	SELECT path_json
    FROM leg_path_cache
    WHERE from_point = ?
        AND to_point = ?;
	`

	var raw []byte
	err := s.DB.QueryRowContext(ctx, q, endpointKey(from), endpointKey(to)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get leg cache: query leg_path_cache table: %w", err)
	}

	var path []domain.LatLng
	if err := json.Unmarshal(raw, &path); err != nil {
		return nil, false, fmt.Errorf("get leg cache: decode path: %w", err)
	}

	return path, true, nil
}

// Put stores geometry for one leg, replacing any existing entry.
func (s *SqliteLegCache) Put(ctx context.Context, from, to domain.LatLng, path []domain.LatLng) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}

	if len(path) == 0 {
		return errors.New("insert leg cache: path must not be empty")
	}

	raw, err := json.Marshal(path)
	if err != nil {
		return fmt.Errorf("insert leg cache: encode path: %w", err)
	}

	q := `
	INSERT OR REPLACE INTO leg_path_cache (from_point, to_point, path_json)
    VALUES (?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, endpointKey(from), endpointKey(to), raw); err != nil {
		return fmt.Errorf("insert leg cache: %w", err)
	}

	return nil
}
