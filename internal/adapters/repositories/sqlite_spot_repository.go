package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
)

// SQLite-backed implementation of the SpotRepository port.
type SqliteSpotRepository struct{ DB *sql.DB }

func NewSqliteSpotRepository(db *sql.DB) *SqliteSpotRepository {
	return &SqliteSpotRepository{DB: db}
}

const spotColumns = `
	spot_id,
	name,
	name_local,
	area,
	lat,
	lng,
	description,
	tags,
	visit_duration_min,
	best_time
`

const accommodationColumns = `
	accommodation_id,
	name,
	area,
	lat,
	lng,
	description,
	advantages
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpot(r rowScanner) (domain.Spot, error) {
	var sp domain.Spot
	var tags string
	if err := r.Scan(&sp.ID, &sp.Name, &sp.NameLocal, &sp.Area, &sp.Lat, &sp.Lng, &sp.Description, &tags, &sp.VisitDurationMin, &sp.BestTime); err != nil {
		return domain.Spot{}, err
	}
	list, err := decodeList(tags)
	if err != nil {
		return domain.Spot{}, fmt.Errorf("spot_id=%s tags: %w", sp.ID, err)
	}
	sp.Tags = list
	return sp, nil
}

func scanAccommodation(r rowScanner) (domain.Accommodation, error) {
	var a domain.Accommodation
	var adv string
	if err := r.Scan(&a.ID, &a.Name, &a.Area, &a.Lat, &a.Lng, &a.Description, &adv); err != nil {
		return domain.Accommodation{}, err
	}
	list, err := decodeList(adv)
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("accommodation_id=%s advantages: %w", a.ID, err)
	}
	a.Advantages = list
	return a, nil
}

// Return all spots stored in the database.
func (s *SqliteSpotRepository) ListSpots(ctx context.Context) (_ []domain.Spot, err error) {
	defer obs.Time(ctx, "spot.repo.ListSpots")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite spot repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+spotColumns+` FROM spots ORDER BY position;`)
	if err != nil {
		return nil, fmt.Errorf("list spots: query spots table: %w", err)
	}
	defer rows.Close()

	spots := make([]domain.Spot, 0, 64)
	for rows.Next() {
		sp, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("list spots: scan row: %w", err)
		}
		spots = append(spots, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list spots: row iteration: %w", err)
	}

	return spots, nil
}

// Return all accommodations stored in the database.
func (s *SqliteSpotRepository) ListAccommodations(ctx context.Context) (_ []domain.Accommodation, err error) {
	defer obs.Time(ctx, "spot.repo.ListAccommodations")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite spot repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+accommodationColumns+` FROM accommodations ORDER BY position;`)
	if err != nil {
		return nil, fmt.Errorf("list accommodations: query accommodations table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Accommodation, 0, 8)
	for rows.Next() {
		a, err := scanAccommodation(rows)
		if err != nil {
			return nil, fmt.Errorf("list accommodations: scan row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accommodations: row iteration: %w", err)
	}

	return out, nil
}

func (s *SqliteSpotRepository) GetSpot(ctx context.Context, id string) (_ domain.Spot, _ bool, err error) {
	defer obs.Time(ctx, "spot.repo.GetSpot")(&err)

	if s.DB == nil {
		return domain.Spot{}, false, errors.New("sqlite spot repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+spotColumns+` FROM spots WHERE spot_id = ?;`, id)
	sp, err := scanSpot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Spot{}, false, nil
	}
	if err != nil {
		return domain.Spot{}, false, fmt.Errorf("get spot %q: %w", id, err)
	}
	return sp, true, nil
}

func (s *SqliteSpotRepository) GetAccommodation(ctx context.Context, id string) (_ domain.Accommodation, _ bool, err error) {
	defer obs.Time(ctx, "spot.repo.GetAccommodation")(&err)

	if s.DB == nil {
		return domain.Accommodation{}, false, errors.New("sqlite spot repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+accommodationColumns+` FROM accommodations WHERE accommodation_id = ?;`, id)
	a, err := scanAccommodation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Accommodation{}, false, nil
	}
	if err != nil {
		return domain.Accommodation{}, false, fmt.Errorf("get accommodation %q: %w", id, err)
	}
	return a, true, nil
}
