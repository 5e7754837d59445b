package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pandal-planner/internal/domain"
	"pandal-planner/internal/platform/obs"
)

// SQLLegCache is a SQL-backed cache for leg geometry keyed by rounded
// endpoints, for deployments that share one Postgres between instances.
type SQLLegCache struct {
	DB *sql.DB
}

// InitLegSchema creates the leg geometry table if missing. The local
// SQLite schema init covers this table too; this variant is for the
// shared Postgres, where no other schema tooling runs.
func InitLegSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init leg schema: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS leg_path_cache (
        from_point TEXT NOT NULL,
        to_point   TEXT NOT NULL,
        path_json  TEXT NOT NULL,
        PRIMARY KEY (from_point, to_point)
    );
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init leg schema: %w", err)
	}
	return nil
}

func NewSQLLegCache(db *sql.DB) *SQLLegCache {
	return &SQLLegCache{DB: db}
}

// Get fetches the cached geometry for one leg, if present.
func (s *SQLLegCache) Get(ctx context.Context, from, to domain.LatLng) (_ []domain.LatLng, _ bool, err error) {
	defer obs.Time(ctx, "legpath.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("leg cache: db is nil")
	}

	q := `
	SELECT path_json
    FROM leg_path_cache
    WHERE from_point = $1
        AND to_point = $2;
	`

	var raw []byte
	err = s.DB.QueryRowContext(ctx, q, endpointKey(from), endpointKey(to)).Scan(&raw)
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
func (s *SQLLegCache) Put(ctx context.Context, from, to domain.LatLng, path []domain.LatLng) error {
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
	INSERT INTO leg_path_cache (from_point, to_point, path_json)
    VALUES ($1, $2, $3)
	ON CONFLICT (from_point, to_point) DO UPDATE
	SET path_json = EXCLUDED.path_json;
	`
	if _, err := s.DB.ExecContext(ctx, q, endpointKey(from), endpointKey(to), raw); err != nil {
		return fmt.Errorf("insert leg cache: %w", err)
	}

	return nil
}
