package services

import (
	"bytes"
	"context"
	"errors"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/logger"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSpotRepo struct {
	spots []domain.Spot
	accs  []domain.Accommodation
	err   error
}

func (f *fakeSpotRepo) ListSpots(context.Context) ([]domain.Spot, error) { return f.spots, f.err }

func (f *fakeSpotRepo) ListAccommodations(context.Context) ([]domain.Accommodation, error) {
	return f.accs, f.err
}

func (f *fakeSpotRepo) GetSpot(_ context.Context, id string) (domain.Spot, bool, error) {
	if f.err != nil {
		return domain.Spot{}, false, f.err
	}
	for _, s := range f.spots {
		if s.ID == id {
			return s, true, nil
		}
	}
	return domain.Spot{}, false, nil
}

func (f *fakeSpotRepo) GetAccommodation(_ context.Context, id string) (domain.Accommodation, bool, error) {
	if f.err != nil {
		return domain.Accommodation{}, false, f.err
	}
	for _, a := range f.accs {
		if a.ID == id {
			return a, true, nil
		}
	}
	return domain.Accommodation{}, false, nil
}

type labelDetailer struct {
	mu    sync.Mutex
	calls int
}

func (d *labelDetailer) GenerateDetailedRoute(from, to domain.Endpoint) domain.DetailedRoute {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	return domain.DetailedRoute{SummaryText: from.Label + ">" + to.Label}
}

type memTransitCache struct {
	data   map[string]domain.DetailedRoute
	getErr error
	putErr error
}

func (m *memTransitCache) GetMany(_ context.Context, keys []string) (map[string]domain.DetailedRoute, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := map[string]domain.DetailedRoute{}
	for _, k := range keys {
		if r, ok := m.data[k]; ok {
			out[k] = r
		}
	}
	return out, nil
}

func (m *memTransitCache) PutMany(_ context.Context, routes map[string]domain.DetailedRoute) error {
	if m.putErr != nil {
		return m.putErr
	}
	for k, r := range routes {
		m.data[k] = r
	}
	return nil
}

type memRouteCache struct {
	data map[string]domain.OptimizedRoute
	puts int
}

func (m *memRouteCache) Get(_ context.Context, key string) (domain.OptimizedRoute, bool, error) {
	r, ok := m.data[key]
	return r, ok, nil
}

func (m *memRouteCache) Put(_ context.Context, key string, route domain.OptimizedRoute) error {
	m.puts++
	m.data[key] = route
	return nil
}

func labelKey(from, to domain.Endpoint) string { return from.Label + "|" + to.Label }

func newTestRepo() *fakeSpotRepo {
	return &fakeSpotRepo{
		accs: []domain.Accommodation{{ID: "hotel", Name: "Hotel", Lat: 0, Lng: 0}},
		spots: []domain.Spot{
			{ID: "c", Name: "C", Lat: 0, Lng: 0.03, Tags: []string{"food"}, VisitDurationMin: 30},
			{ID: "a", Name: "A", Lat: 0, Lng: 0.01, Tags: []string{"temple"}, VisitDurationMin: 60},
			{ID: "b", Name: "B", Lat: 0, Lng: 0.02, Tags: []string{"shopping", "food"}, VisitDurationMin: 45},
		},
	}
}

func TestPlanOrdersSpotsAndSumsVisits(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	p := NewItineraryPlanner(newTestRepo(), &labelDetailer{}, WithClock(func() time.Time { return fixed }))

	it, err := p.Plan(context.Background(), PlanItineraryRequest{
		AccommodationID: " hotel ",
		SpotIDs:         []string{"c", "a", "b", "a", " "},
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(it.Spots))
	for _, s := range it.Spots {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Len(t, it.Route.Legs, 3)
	assert.Equal(t, 135, it.TotalVisitMin)
	assert.Equal(t, it.Route.TotalDurationMin+135, it.TotalMin())
	assert.Equal(t, fixed, it.GeneratedAt)
	assert.Nil(t, it.LegDetails)
}

func TestPlanValidation(t *testing.T) {
	p := NewItineraryPlanner(newTestRepo(), &labelDetailer{})
	ctx := context.Background()

	_, err := p.Plan(ctx, PlanItineraryRequest{AccommodationID: "hotel"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = p.Plan(ctx, PlanItineraryRequest{SpotIDs: []string{"a"}})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = p.Plan(ctx, PlanItineraryRequest{AccommodationID: "nowhere", SpotIDs: []string{"a"}})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = p.Plan(ctx, PlanItineraryRequest{AccommodationID: "hotel", SpotIDs: []string{"a", "zzz"}})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = p.Plan(ctx, PlanItineraryRequest{AccommodationID: "hotel", SpotIDs: []string{"a"}, Tags: []string{"food"}})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestPlanRepositoryError(t *testing.T) {
	repo := newTestRepo()
	repo.err = errors.New("disk gone")
	p := NewItineraryPlanner(repo, &labelDetailer{})

	_, err := p.Plan(context.Background(), PlanItineraryRequest{AccommodationID: "hotel", SpotIDs: []string{"a"}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestPlanTagFilter(t *testing.T) {
	p := NewItineraryPlanner(newTestRepo(), &labelDetailer{})

	it, err := p.Plan(context.Background(), PlanItineraryRequest{
		AccommodationID: "hotel",
		SpotIDs:         []string{"a", "b", "c"},
		Tags:            []string{"food"},
	})
	require.NoError(t, err)
	require.Len(t, it.Spots, 2)
	assert.Equal(t, "b", it.Spots[0].ID)
	assert.Equal(t, "c", it.Spots[1].ID)
	assert.Equal(t, 75, it.TotalVisitMin)
}

func TestPlanTransitDetailsInLegOrder(t *testing.T) {
	synth := &labelDetailer{}
	cache := &memTransitCache{data: map[string]domain.DetailedRoute{
		"A|B": {SummaryText: "cached"},
	}}
	p := NewItineraryPlanner(newTestRepo(), synth, WithTransitCache(cache, labelKey), WithLegWorkers(2))

	it, err := p.Plan(context.Background(), PlanItineraryRequest{
		AccommodationID: "hotel",
		SpotIDs:         []string{"a", "b", "c"},
		IncludeTransit:  true,
	})
	require.NoError(t, err)

	require.Len(t, it.LegDetails, 3)
	assert.Equal(t, "Hotel>A", it.LegDetails[0].SummaryText)
	assert.Equal(t, "cached", it.LegDetails[1].SummaryText)
	assert.Equal(t, "B>C", it.LegDetails[2].SummaryText)
	assert.Equal(t, 2, synth.calls)

	assert.Contains(t, cache.data, "Hotel|A")
	assert.Contains(t, cache.data, "B|C")
}

func TestPlanSurvivesCacheFailures(t *testing.T) {
	synth := &labelDetailer{}
	cache := &memTransitCache{getErr: errors.New("down"), putErr: errors.New("down")}
	p := NewItineraryPlanner(newTestRepo(), synth, WithTransitCache(cache, labelKey))

	it, err := p.Plan(context.Background(), PlanItineraryRequest{
		AccommodationID: "hotel",
		SpotIDs:         []string{"a"},
		IncludeTransit:  true,
	})
	require.NoError(t, err)
	require.Len(t, it.LegDetails, 1)
	assert.Equal(t, "Hotel>A", it.LegDetails[0].SummaryText)
	assert.Equal(t, 1, synth.calls)
}

func TestPlanLogsCacheFailuresToInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	cache := &memTransitCache{getErr: errors.New("read down"), putErr: errors.New("write down")}
	p := NewItineraryPlanner(newTestRepo(), &labelDetailer{},
		WithTransitCache(cache, labelKey), WithLogger(logger.New(&buf)))

	_, err := p.Plan(context.Background(), PlanItineraryRequest{
		AccommodationID: "hotel",
		SpotIDs:         []string{"a"},
		IncludeTransit:  true,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "transit cache read failed")
	assert.Contains(t, out, "read down")
	assert.Contains(t, out, "transit cache write failed")
	assert.Contains(t, out, "write down")
}

func TestPlanHonorsCanceledContext(t *testing.T) {
	p := NewItineraryPlanner(newTestRepo(), &labelDetailer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Transit(ctx, domain.Endpoint{Label: "x"}, domain.Endpoint{Lat: 1, Label: "y"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptimizeUsesRouteCache(t *testing.T) {
	rc := &memRouteCache{data: map[string]domain.OptimizedRoute{}}
	key := func(start domain.Location, dests []domain.Location) string { return start.ID }
	p := NewItineraryPlanner(newTestRepo(), &labelDetailer{}, WithRouteCache(rc, key))

	start := domain.Location{ID: "s"}
	dests := []domain.Location{{ID: "x", Lat: 0.01}}

	first := p.Optimize(context.Background(), start, dests)
	assert.Equal(t, 1, rc.puts)

	rc.data["s"] = domain.OptimizedRoute{TotalDurationMin: 999}
	second := p.Optimize(context.Background(), start, dests)
	assert.Equal(t, 999, second.TotalDurationMin)
	assert.Equal(t, 1, rc.puts)
	assert.NotEqual(t, first.TotalDurationMin, second.TotalDurationMin)
}
