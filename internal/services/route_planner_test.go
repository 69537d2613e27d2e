package services

import (
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/geo"
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func loc(id string, lat, lng float64) domain.Location {
	return domain.Location{ID: id, Name: id, Lat: lat, Lng: lng}
}

func ids(locs []domain.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.ID
	}
	return out
}

func TestOptimizeRouteSingleDestination(t *testing.T) {
	start := loc("ueno", 35.7141, 139.7774)
	akiba := loc("akihabara", 35.7022, 139.7744)

	route := OptimizeRoute(start, []domain.Location{akiba})

	if len(route.OrderedLocations) != 2 || len(route.Legs) != 1 {
		t.Fatalf("got %d locations and %d legs, want 2 and 1", len(route.OrderedLocations), len(route.Legs))
	}
	leg := route.Legs[0]
	if leg.TransportMode != domain.ModeSubway {
		t.Fatalf("mode = %q, want subway", leg.TransportMode)
	}
	if math.Abs(leg.DistanceKm-1.35) > 0.05 {
		t.Fatalf("distance = %.3f, want about 1.35", leg.DistanceKm)
	}
	if leg.DurationMin != 13 {
		t.Fatalf("duration = %d, want 13", leg.DurationMin)
	}
	if route.TotalDistanceKm != leg.DistanceKm || route.TotalDurationMin != leg.DurationMin {
		t.Fatalf("totals do not match the single leg: %+v", route)
	}
}

func TestOptimizeRouteNoDestinations(t *testing.T) {
	start := loc("hotel", 35.7148, 139.7772)

	route := OptimizeRoute(start, nil)

	if !reflect.DeepEqual(ids(route.OrderedLocations), []string{"hotel"}) {
		t.Fatalf("ordered = %v, want [hotel]", ids(route.OrderedLocations))
	}
	if len(route.Legs) != 0 || route.TotalDistanceKm != 0 || route.TotalDurationMin != 0 {
		t.Fatalf("expected empty route, got %+v", route)
	}
}

func TestOptimizeRouteReordersAlongLine(t *testing.T) {
	start := loc("s", 0, 0)
	dests := []domain.Location{loc("a", 0, 1), loc("c", 0, 10), loc("b", 0, 2)}

	route := OptimizeRoute(start, dests)

	want := []string{"s", "a", "b", "c"}
	if got := ids(route.OrderedLocations); !reflect.DeepEqual(got, want) {
		t.Fatalf("ordered = %v, want %v", got, want)
	}

	inputOrder := append([]domain.Location{start}, dests...)
	if route.TotalDistanceKm >= TourLengthKm(inputOrder) {
		t.Fatalf("optimized %.3f km is not shorter than input order %.3f km", route.TotalDistanceKm, TourLengthKm(inputOrder))
	}
	if got := ids(dests); !reflect.DeepEqual(got, []string{"a", "c", "b"}) {
		t.Fatalf("input slice was modified: %v", got)
	}
}

func TestNearestNeighborTourTieKeepsInputOrder(t *testing.T) {
	start := loc("s", 0, 0)
	tour := NearestNeighborTour(start, []domain.Location{loc("east", 0, 1), loc("west", 0, -1)})

	if got := ids(tour); !reflect.DeepEqual(got, []string{"s", "east", "west"}) {
		t.Fatalf("tour = %v, want [s east west]", got)
	}
}

func TestTwoOptUntanglesCrossing(t *testing.T) {
	tour := []domain.Location{
		loc("0", 0, 0), loc("1", 0, 1), loc("10", 0, 10), loc("2", 0, 2), loc("3", 0, 3),
	}
	before := TourLengthKm(tour)

	TwoOpt(tour)

	if got := ids(tour); !reflect.DeepEqual(got, []string{"0", "1", "2", "10", "3"}) {
		t.Fatalf("tour = %v, want [0 1 2 10 3]", got)
	}
	if TourLengthKm(tour) >= before {
		t.Fatalf("2-opt did not shorten the tour")
	}
}

func TestOptimizeRouteProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for n := 2; n <= 9; n++ {
		for trial := 0; trial < 20; trial++ {
			start := loc("start", 35.6+rng.Float64()*0.2, 139.6+rng.Float64()*0.3)
			dests := make([]domain.Location, n)
			for i := range dests {
				dests[i] = loc(fmt.Sprintf("d%d", i), 35.3+rng.Float64()*0.5, 139.4+rng.Float64()*0.5)
			}

			route := OptimizeRoute(start, dests)

			// Completeness.
			if route.OrderedLocations[0].ID != "start" {
				t.Fatalf("n=%d: route does not begin at start", n)
			}
			if len(route.OrderedLocations) != n+1 || len(route.Legs) != n {
				t.Fatalf("n=%d: got %d locations, %d legs", n, len(route.OrderedLocations), len(route.Legs))
			}
			seen := map[string]int{}
			for _, l := range route.OrderedLocations[1:] {
				seen[l.ID]++
			}
			for _, d := range dests {
				if seen[d.ID] != 1 {
					t.Fatalf("n=%d: destination %s visited %d times", n, d.ID, seen[d.ID])
				}
			}

			// Totals match the legs and the path.
			sumKm, sumMin := 0.0, 0
			for _, leg := range route.Legs {
				sumKm += leg.DistanceKm
				sumMin += leg.DurationMin
				if got := ClassifyMode(leg.DistanceKm); got != leg.TransportMode {
					t.Fatalf("leg %.3f km has mode %q, want %q", leg.DistanceKm, leg.TransportMode, got)
				}
			}
			if math.Abs(sumKm-route.TotalDistanceKm) > 1e-9*math.Max(1, sumKm) || sumMin != route.TotalDurationMin {
				t.Fatalf("n=%d: totals do not match legs", n)
			}
			if pathKm := TourLengthKm(route.OrderedLocations); math.Abs(pathKm-route.TotalDistanceKm) > 1e-9*math.Max(1, pathKm) {
				t.Fatalf("n=%d: total %.9f differs from path length %.9f", n, route.TotalDistanceKm, pathKm)
			}

			// 2-opt never makes the greedy tour longer.
			greedy := NearestNeighborTour(start, dests)
			if route.TotalDistanceKm > TourLengthKm(greedy)+1e-9 {
				t.Fatalf("n=%d: optimized %.6f longer than greedy %.6f", n, route.TotalDistanceKm, TourLengthKm(greedy))
			}

			// Determinism.
			if again := OptimizeRoute(start, dests); !reflect.DeepEqual(again, route) {
				t.Fatalf("n=%d: second run differs", n)
			}
		}
	}
}

func TestClassifyModeThresholds(t *testing.T) {
	cases := []struct {
		km   float64
		want domain.TransportMode
	}{
		{0, domain.ModeWalk},
		{0.799, domain.ModeWalk},
		{0.8, domain.ModeSubway},
		{12.5, domain.ModeSubway},
		{20, domain.ModeSubway},
		{20.001, domain.ModeTrain},
		{65, domain.ModeTrain},
	}
	for _, c := range cases {
		if got := ClassifyMode(c.km); got != c.want {
			t.Errorf("ClassifyMode(%v) = %q, want %q", c.km, got, c.want)
		}
	}
}

func TestEstimateDurationMin(t *testing.T) {
	cases := []struct {
		km   float64
		mode domain.TransportMode
		want int
	}{
		{0.5, domain.ModeWalk, 8},    // 7.5 rounds up
		{3, domain.ModeSubway, 16},   // 6 + 10
		{10, domain.ModeSubway, 30},  // 20 + 10
		{30, domain.ModeTrain, 51},   // 36 + 15
		{27.3, domain.ModeTrain, 48}, // 32.76 + 15
	}
	for _, c := range cases {
		if got := EstimateDurationMin(c.km, c.mode); got != c.want {
			t.Errorf("EstimateDurationMin(%v, %s) = %d, want %d", c.km, c.mode, got, c.want)
		}
	}
}

func TestAnnotateLegUsesHaversine(t *testing.T) {
	a, b := loc("a", 35.6812, 139.7671), loc("b", 35.4437, 139.6455)
	leg := AnnotateLeg(a, b)

	if want := geo.DistanceKm(a.Lat, a.Lng, b.Lat, b.Lng); leg.DistanceKm != want {
		t.Fatalf("distance = %v, want %v", leg.DistanceKm, want)
	}
	if leg.TransportMode != domain.ModeTrain {
		t.Fatalf("mode = %q, want train", leg.TransportMode)
	}
}
