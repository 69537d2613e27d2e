package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
)

// SQLite-backed implementation of the MetroRepository port.
type SqliteMetroRepository struct{ DB *sql.DB }

func NewSqliteMetroRepository(db *sql.DB) *SqliteMetroRepository {
	return &SqliteMetroRepository{DB: db}
}

// Return all lines with their ordered station names.
func (s *SqliteMetroRepository) ListLines(ctx context.Context) (_ []domain.MetroLine, err error) {
	defer obs.Time(ctx, "metro.repo.ListLines")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite metro repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		line_id,
		name,
		name_local,
		color,
		operator
	FROM metro_lines
	ORDER BY position;
	`)
	if err != nil {
		return nil, fmt.Errorf("list lines: query metro_lines table: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.MetroLine, 0, 16)
	index := make(map[string]int)
	for rows.Next() {
		var l domain.MetroLine
		var op string
		if err := rows.Scan(&l.ID, &l.Name, &l.NameLocal, &l.Color, &op); err != nil {
			return nil, fmt.Errorf("list lines: scan row: %w", err)
		}
		l.Operator = domain.Operator(op)
		index[l.ID] = len(lines)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list lines: row iteration: %w", err)
	}

	memberRows, err := s.DB.QueryContext(ctx, `
	SELECT line_id, station_name
	FROM line_stations
	ORDER BY line_id, position;
	`)
	if err != nil {
		return nil, fmt.Errorf("list lines: query line_stations table: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var lineID, name string
		if err := memberRows.Scan(&lineID, &name); err != nil {
			return nil, fmt.Errorf("list lines: scan station row: %w", err)
		}
		i, ok := index[lineID]
		if !ok {
			return nil, fmt.Errorf("list lines: station %q references unknown line %q", name, lineID)
		}
		lines[i].StationNames = append(lines[i].StationNames, name)
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("list lines: station row iteration: %w", err)
	}

	return lines, nil
}

// Return all stations with their line memberships in listed order.
func (s *SqliteMetroRepository) ListStations(ctx context.Context) (_ []domain.Station, err error) {
	defer obs.Time(ctx, "metro.repo.ListStations")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite metro repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		station_id,
		name,
		name_local,
		lat,
		lng
	FROM stations
	ORDER BY position;
	`)
	if err != nil {
		return nil, fmt.Errorf("list stations: query stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]domain.Station, 0, 16)
	index := make(map[string]int)
	for rows.Next() {
		var st domain.Station
		if err := rows.Scan(&st.ID, &st.Name, &st.NameLocal, &st.Lat, &st.Lng); err != nil {
			return nil, fmt.Errorf("list stations: scan row: %w", err)
		}
		index[st.ID] = len(stations)
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}

	memberRows, err := s.DB.QueryContext(ctx, `
	SELECT station_id, line_id
	FROM station_lines
	ORDER BY station_id, position;
	`)
	if err != nil {
		return nil, fmt.Errorf("list stations: query station_lines table: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var stationID, lineID string
		if err := memberRows.Scan(&stationID, &lineID); err != nil {
			return nil, fmt.Errorf("list stations: scan line row: %w", err)
		}
		i, ok := index[stationID]
		if !ok {
			return nil, fmt.Errorf("list stations: line %q references unknown station %q", lineID, stationID)
		}
		stations[i].LineIDs = append(stations[i].LineIDs, lineID)
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: line row iteration: %w", err)
	}

	return stations, nil
}
