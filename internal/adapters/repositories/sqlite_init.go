package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-route-service/internal/dataset"
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

	createLinesQuery := `
	CREATE TABLE IF NOT EXISTS metro_lines (
		position INTEGER NOT NULL,
		line_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		name_local TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		operator TEXT NOT NULL
	);
	`

	createLineStationsQuery := `
	CREATE TABLE IF NOT EXISTS line_stations (
		line_id TEXT NOT NULL REFERENCES metro_lines(line_id),
		position INTEGER NOT NULL,
		station_name TEXT NOT NULL,
		PRIMARY KEY (line_id, position)
	);
	`

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS stations (
		position INTEGER NOT NULL,
		station_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		name_local TEXT NOT NULL DEFAULT '',
		lat REAL NOT NULL,
		lng REAL NOT NULL
	);
	`

	createStationLinesQuery := `
	CREATE TABLE IF NOT EXISTS station_lines (
		station_id TEXT NOT NULL REFERENCES stations(station_id),
		position INTEGER NOT NULL,
		line_id TEXT NOT NULL REFERENCES metro_lines(line_id),
		PRIMARY KEY (station_id, position)
	);
	`

	createAccommodationsQuery := `
	CREATE TABLE IF NOT EXISTS accommodations (
		position INTEGER NOT NULL,
		accommodation_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		area TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		advantages TEXT NOT NULL DEFAULT '[]'
	);
	`

	createSpotsQuery := `
	CREATE TABLE IF NOT EXISTS spots (
		position INTEGER NOT NULL,
		spot_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		name_local TEXT NOT NULL DEFAULT '',
		area TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		visit_duration_min INTEGER NOT NULL DEFAULT 0,
		best_time TEXT NOT NULL DEFAULT ''
	);
	`

	createTransitCacheQuery := `
	CREATE TABLE IF NOT EXISTS transit_cache (
		route_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_spots_area
	ON spots(area);
	`

	statements := []string{
		createLinesQuery,
		createLineStationsQuery,
		createStationsQuery,
		createStationLinesQuery,
		createAccommodationsQuery,
		createSpotsQuery,
		createTransitCacheQuery,
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

// Populate the database with a validated dataset. Existing rows are replaced
// so seeding can run on every start; cached transit routes are dropped with
// them since they were built from the previous data.
func SeedDataset(db *sql.DB, ds *dataset.Dataset) error {
	if db == nil {
		return errors.New("seed dataset: DB is nil")
	}
	if ds == nil {
		return errors.New("seed dataset: dataset is nil")
	}
	if err := ds.Validate(); err != nil {
		return fmt.Errorf("seed dataset: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed dataset: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"line_stations", "station_lines", "metro_lines", "stations", "accommodations", "spots", "transit_cache"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("seed dataset: clear %s: %w", table, err)
		}
	}

	lineStmt, err := tx.Prepare(`
	INSERT INTO metro_lines (position, line_id, name, name_local, color, operator)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed dataset: prepare line insert: %w", err)
	}
	defer lineStmt.Close()

	lineStationStmt, err := tx.Prepare(`
	INSERT INTO line_stations (line_id, position, station_name)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed dataset: prepare line station insert: %w", err)
	}
	defer lineStationStmt.Close()

	for i, l := range ds.Lines {
		if _, err := lineStmt.Exec(i, l.ID, l.Name, l.NameLocal, l.Color, l.Operator); err != nil {
			return fmt.Errorf("seed dataset: insert line_id=%s: %w", l.ID, err)
		}
		for pos, name := range l.Stations {
			if _, err := lineStationStmt.Exec(l.ID, pos, name); err != nil {
				return fmt.Errorf("seed dataset: insert line_id=%s station #%d: %w", l.ID, pos+1, err)
			}
		}
	}

	stationStmt, err := tx.Prepare(`
	INSERT INTO stations (position, station_id, name, name_local, lat, lng)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed dataset: prepare station insert: %w", err)
	}
	defer stationStmt.Close()

	stationLineStmt, err := tx.Prepare(`
	INSERT INTO station_lines (station_id, position, line_id)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed dataset: prepare station line insert: %w", err)
	}
	defer stationLineStmt.Close()

	for i, s := range ds.Stations {
		if _, err := stationStmt.Exec(i, s.ID, s.Name, s.NameLocal, s.Lat, s.Lng); err != nil {
			return fmt.Errorf("seed dataset: insert station_id=%s: %w", s.ID, err)
		}
		for pos, lineID := range s.Lines {
			if _, err := stationLineStmt.Exec(s.ID, pos, lineID); err != nil {
				return fmt.Errorf("seed dataset: insert station_id=%s line=%s: %w", s.ID, lineID, err)
			}
		}
	}

	accStmt, err := tx.Prepare(`
	INSERT INTO accommodations (position, accommodation_id, name, area, lat, lng, description, advantages)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed dataset: prepare accommodation insert: %w", err)
	}
	defer accStmt.Close()

	for i, a := range ds.Accommodations {
		adv, err := encodeList(a.Advantages)
		if err != nil {
			return fmt.Errorf("seed dataset: accommodation_id=%s: %w", a.ID, err)
		}
		if _, err := accStmt.Exec(i, a.ID, a.Name, a.Area, a.Lat, a.Lng, a.Description, adv); err != nil {
			return fmt.Errorf("seed dataset: insert accommodation_id=%s: %w", a.ID, err)
		}
	}

	spotStmt, err := tx.Prepare(`
	INSERT INTO spots (position, spot_id, name, name_local, area, lat, lng, description, tags, visit_duration_min, best_time)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed dataset: prepare spot insert: %w", err)
	}
	defer spotStmt.Close()

	for i, s := range ds.Spots {
		tags, err := encodeList(s.Tags)
		if err != nil {
			return fmt.Errorf("seed dataset: spot_id=%s: %w", s.ID, err)
		}
		if _, err := spotStmt.Exec(i, s.ID, s.Name, s.NameLocal, s.Area, s.Lat, s.Lng, s.Description, tags, s.VisitDurationMin, s.BestTime); err != nil {
			return fmt.Errorf("seed dataset: insert spot_id=%s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed dataset: commit tx: %w", err)
	}

	return nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(raw string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return items, nil
}
