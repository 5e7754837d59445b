package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVenuesQuery := `
	CREATE TABLE IF NOT EXISTS venues (
		venue_id   INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		region     TEXT NOT NULL DEFAULT '',
		town       TEXT NOT NULL DEFAULT '',
		latitude   REAL NOT NULL,
		longitude  REAL NOT NULL,
		is_big     INTEGER NOT NULL DEFAULT 0,
		main_pic   TEXT NOT NULL DEFAULT '',
		like_count INTEGER NOT NULL DEFAULT 0
	);
	`

	createLegPathCacheQuery := `
	CREATE TABLE IF NOT EXISTS leg_path_cache (
        from_point TEXT NOT NULL,
        to_point   TEXT NOT NULL,
        path_json  TEXT NOT NULL,
        PRIMARY KEY (from_point, to_point)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_venues_region_town
    ON venues(region, town);
	`

	statements := []string{
		createVenuesQuery,
		createLegPathCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type VenueSeed struct {
	VenueID   int     `json:"id"`
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Town      string  `json:"town"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsBig     bool    `json:"is_big"`
	MainPic   string  `json:"main_pic"`
}

// Populate the database with venue data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed venues: read %q: %w", jsonPath, err)
	}

	var data []VenueSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed venues: parse json: %w", err)
	}

	rows := make([]VenueSeed, 0, len(data))
	for i, item := range data {
		if item.VenueID <= 0 {
			return fmt.Errorf("seed venues: invalid id at index %d: %d", i+1, item.VenueID)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed venues: item id=%d: name cannot be empty", item.VenueID)
		}

		if item.Latitude < -90 || item.Latitude > 90 || item.Longitude < -180 || item.Longitude > 180 {
			return fmt.Errorf("seed venues: item id=%d: coordinates out of range", item.VenueID)
		}

		item.Name = name
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed venues: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO venues (
		venue_id,
		name,
		region,
		town,
		latitude,
		longitude,
		is_big,
		main_pic
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed venues: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range rows {
		isBig := 0
		if v.IsBig {
			isBig = 1
		}
		if _, err := stmt.Exec(v.VenueID, v.Name, v.Region, v.Town, v.Latitude, v.Longitude, isBig, v.MainPic); err != nil {
			return fmt.Errorf("seed venues: insert venue_id=%d: %w", v.VenueID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed venues: commit tx: %w", err)
	}

	return nil
}
