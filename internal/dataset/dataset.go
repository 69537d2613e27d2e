// Package dataset loads the static lines, stations, accommodations and spots
// the planner queries. A Tokyo dataset is embedded in the binary.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"itinerary-route-service/internal/domain"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

//go:embed data/tokyo.json
var tokyoJSON []byte

type LineSeed struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	NameLocal string   `json:"name_local"`
	Color     string   `json:"color"`
	Operator  string   `json:"operator"`
	Stations  []string `json:"stations"`
}

type StationSeed struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	NameLocal string   `json:"name_local"`
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Lines     []string `json:"lines"`
}

type AccommodationSeed struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Area        string   `json:"area"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Description string   `json:"description"`
	Advantages  []string `json:"advantages"`
}

type SpotSeed struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	NameLocal        string   `json:"name_local"`
	Area             string   `json:"area"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`
	VisitDurationMin int      `json:"visit_duration_min"`
	BestTime         string   `json:"best_time"`
}

// Dataset is the decoded reference document.
type Dataset struct {
	Lines          []LineSeed          `json:"lines"`
	Stations       []StationSeed       `json:"stations"`
	Accommodations []AccommodationSeed `json:"accommodations"`
	Spots          []SpotSeed          `json:"spots"`
}

// Fingerprint is a short content hash of the dataset. Derived data such as
// cached transit routes is keyed by it.
func (d *Dataset) Fingerprint() string {
	b, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64(b), 16)
}

// Default returns the embedded Tokyo dataset.
func Default() (*Dataset, error) {
	ds, err := Load(bytes.NewReader(tokyoJSON))
	if err != nil {
		return nil, fmt.Errorf("load embedded dataset: %w", err)
	}
	return ds, nil
}

// ReadFile loads a dataset from a JSON file on disk.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %q: %w", path, err)
	}
	defer f.Close()

	ds, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %q: %w", path, err)
	}
	return ds, nil
}

// Load decodes and validates a dataset.
func Load(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks identifiers and cross references. Every station name must
// appear on each line it claims, otherwise hop counts could not be resolved.
func (d *Dataset) Validate() error {
	var errs []error

	lines := make(map[string]LineSeed, len(d.Lines))
	for i, l := range d.Lines {
		id := strings.TrimSpace(l.ID)
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("line #%d: empty id", i+1))
			continue
		case !domain.Operator(l.Operator).Valid():
			errs = append(errs, fmt.Errorf("line %q: unknown operator %q", id, l.Operator))
		case len(l.Stations) == 0:
			errs = append(errs, fmt.Errorf("line %q: no stations", id))
		}
		if _, dup := lines[id]; dup {
			errs = append(errs, fmt.Errorf("line %q: duplicate id", id))
		}
		lines[id] = l
	}

	seen := make(map[string]struct{}, len(d.Stations))
	for i, s := range d.Stations {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			errs = append(errs, fmt.Errorf("station #%d: empty id", i+1))
			continue
		}
		if _, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("station %q: duplicate id", id))
		}
		seen[id] = struct{}{}

		for _, lineID := range s.Lines {
			l, ok := lines[lineID]
			if !ok {
				errs = append(errs, fmt.Errorf("station %q: unknown line %q", id, lineID))
				continue
			}
			if !slices.Contains(l.Stations, s.Name) {
				errs = append(errs, fmt.Errorf("station %q: name %q not listed on line %q", id, s.Name, lineID))
			}
		}
	}

	if err := uniqueIDs("accommodation", len(d.Accommodations), func(i int) string { return d.Accommodations[i].ID }); err != nil {
		errs = append(errs, err)
	}
	if err := uniqueIDs("spot", len(d.Spots), func(i int) string { return d.Spots[i].ID }); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("validate dataset: %w", errors.Join(errs...))
	}
	return nil
}

func uniqueIDs(kind string, n int, id func(int) string) error {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		v := strings.TrimSpace(id(i))
		if v == "" {
			return fmt.Errorf("%s #%d: empty id", kind, i+1)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%s %q: duplicate id", kind, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// MetroLines converts the line seeds to domain values in listed order.
func (d *Dataset) MetroLines() []domain.MetroLine {
	out := make([]domain.MetroLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		out = append(out, domain.MetroLine{
			ID:           l.ID,
			Name:         l.Name,
			NameLocal:    l.NameLocal,
			Color:        l.Color,
			Operator:     domain.Operator(l.Operator),
			StationNames: slices.Clone(l.Stations),
		})
	}
	return out
}

// MetroStations converts the station seeds to domain values in listed order.
func (d *Dataset) MetroStations() []domain.Station {
	out := make([]domain.Station, 0, len(d.Stations))
	for _, s := range d.Stations {
		out = append(out, domain.Station{
			ID:        s.ID,
			Name:      s.Name,
			NameLocal: s.NameLocal,
			Lat:       s.Lat,
			Lng:       s.Lng,
			LineIDs:   slices.Clone(s.Lines),
		})
	}
	return out
}

func (d *Dataset) DomainAccommodations() []domain.Accommodation {
	out := make([]domain.Accommodation, 0, len(d.Accommodations))
	for _, a := range d.Accommodations {
		out = append(out, domain.Accommodation{
			ID:          a.ID,
			Name:        a.Name,
			Area:        a.Area,
			Lat:         a.Lat,
			Lng:         a.Lng,
			Description: a.Description,
			Advantages:  slices.Clone(a.Advantages),
		})
	}
	return out
}

func (d *Dataset) DomainSpots() []domain.Spot {
	out := make([]domain.Spot, 0, len(d.Spots))
	for _, s := range d.Spots {
		out = append(out, domain.Spot{
			ID:               s.ID,
			Name:             s.Name,
			NameLocal:        s.NameLocal,
			Area:             s.Area,
			Lat:              s.Lat,
			Lng:              s.Lng,
			Description:      s.Description,
			Tags:             slices.Clone(s.Tags),
			VisitDurationMin: s.VisitDurationMin,
			BestTime:         s.BestTime,
		})
	}
	return out
}
