// Package metro is a read-only view over static line and station data.
//
// A Graph is built once and never mutated, so it can be shared by any
// number of goroutines without locking.
package metro

import (
	"errors"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/geo"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// DefaultFlagshipLineID is the circular commuter line preferred when two
// stations share several lines.
const DefaultFlagshipLineID = "jr-yamanote"

type Graph struct {
	lines     []domain.MetroLine
	stations  []domain.Station
	lineByID  map[string]int
	stationBy map[string]int
	flagship  string
}

type Option func(*Graph)

// WithFlagshipLine overrides the preferred line id.
func WithFlagshipLine(id string) Option {
	return func(g *Graph) { g.flagship = id }
}

// NewGraph copies lines and stations into an immutable graph.
// Station line ids must reference known lines.
func NewGraph(lines []domain.MetroLine, stations []domain.Station, opts ...Option) (*Graph, error) {
	g := &Graph{
		lines:     make([]domain.MetroLine, 0, len(lines)),
		stations:  make([]domain.Station, 0, len(stations)),
		lineByID:  make(map[string]int, len(lines)),
		stationBy: make(map[string]int, len(stations)),
		flagship:  DefaultFlagshipLineID,
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, l := range lines {
		if l.ID == "" {
			return nil, errors.New("new metro graph: line id must not be empty")
		}
		if _, dup := g.lineByID[l.ID]; dup {
			return nil, fmt.Errorf("new metro graph: duplicate line %q", l.ID)
		}
		l.StationNames = slices.Clone(l.StationNames)
		g.lineByID[l.ID] = len(g.lines)
		g.lines = append(g.lines, l)
	}

	for _, s := range stations {
		if s.ID == "" {
			return nil, errors.New("new metro graph: station id must not be empty")
		}
		if _, dup := g.stationBy[s.ID]; dup {
			return nil, fmt.Errorf("new metro graph: duplicate station %q", s.ID)
		}
		for _, id := range s.LineIDs {
			if _, ok := g.lineByID[id]; !ok {
				return nil, fmt.Errorf("new metro graph: station %q references unknown line %q", s.ID, id)
			}
		}
		s.LineIDs = slices.Clone(s.LineIDs)
		g.stationBy[s.ID] = len(g.stations)
		g.stations = append(g.stations, s)
	}

	return g, nil
}

func (g *Graph) FlagshipLineID() string { return g.flagship }

// Lines returns a copy of all lines in listed order.
func (g *Graph) Lines() []domain.MetroLine { return lo.Map(g.lines, cloneLine) }

// Stations returns a copy of all stations in listed order.
func (g *Graph) Stations() []domain.Station { return lo.Map(g.stations, cloneStation) }

func (g *Graph) Line(id string) (domain.MetroLine, bool) {
	i, ok := g.lineByID[id]
	if !ok {
		return domain.MetroLine{}, false
	}
	return cloneLine(g.lines[i], i), true
}

// Returned values never share slices with the graph.
func cloneLine(l domain.MetroLine, _ int) domain.MetroLine {
	l.StationNames = slices.Clone(l.StationNames)
	return l
}

func cloneStation(s domain.Station, _ int) domain.Station {
	s.LineIDs = slices.Clone(s.LineIDs)
	return s
}

func (g *Graph) Station(id string) (domain.Station, bool) {
	i, ok := g.stationBy[id]
	if !ok {
		return domain.Station{}, false
	}
	return cloneStation(g.stations[i], i), true
}

// StationByName finds a station by display or local name, ignoring case.
func (g *Graph) StationByName(name string) (domain.Station, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Station{}, false
	}
	st, ok := lo.Find(g.stations, func(s domain.Station) bool {
		return strings.EqualFold(s.Name, name) || s.NameLocal == name
	})
	return cloneStation(st, 0), ok
}

// NearestStation scans every station and returns the closest one with its
// distance in km. On equal distances the first station in listed order wins.
// ok is false when the graph has no stations.
func (g *Graph) NearestStation(lat, lng float64) (st domain.Station, distKm float64, ok bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, s := range g.stations {
		d := geo.DistanceKm(lat, lng, s.Lat, s.Lng)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return domain.Station{}, 0, false
	}
	return cloneStation(g.stations[best], best), bestDist, true
}

// CommonLines returns the lines shared by a and b, in a's line order.
func (g *Graph) CommonLines(a, b domain.Station) []domain.MetroLine {
	ids := lo.Filter(a.LineIDs, func(id string, _ int) bool {
		return lo.Contains(b.LineIDs, id)
	})
	return lo.FilterMap(ids, func(id string, _ int) (domain.MetroLine, bool) {
		return g.Line(id)
	})
}

// PreferredLine picks the line to ride directly from a to b: the flagship
// line, then any metro-operated line, then the first shared line.
func (g *Graph) PreferredLine(a, b domain.Station) (domain.MetroLine, bool) {
	common := g.CommonLines(a, b)
	if len(common) == 0 {
		return domain.MetroLine{}, false
	}
	if l, ok := lo.Find(common, func(l domain.MetroLine) bool { return l.ID == g.flagship }); ok {
		return l, true
	}
	if l, ok := lo.Find(common, func(l domain.MetroLine) bool { return l.Operator == domain.OperatorMetro }); ok {
		return l, true
	}
	return common[0], true
}

// StationIndex returns the position of name on line, or -1.
func StationIndex(line domain.MetroLine, name string) int {
	return slices.Index(line.StationNames, name)
}

// HopCount is the number of stations between a and b along line.
// ok is false when either name cannot be resolved on the line.
func HopCount(line domain.MetroLine, a, b domain.Station) (hops int, ok bool) {
	i, j := StationIndex(line, a.Name), StationIndex(line, b.Name)
	if i < 0 || j < 0 {
		return 0, false
	}
	if i > j {
		return i - j, true
	}
	return j - i, true
}
