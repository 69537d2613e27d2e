package services

import (
	"context"
	"errors"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/logger"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)

const defaultLegWorkers = 5

type PlanItineraryRequest struct {
	AccommodationID string
	SpotIDs         []string
	// Tags, when set, keeps only spots carrying at least one of them.
	Tags           []string
	IncludeTransit bool
}

type (
	TransitKeyFunc func(from, to domain.Endpoint) string
	RouteKeyFunc   func(start domain.Location, destinations []domain.Location) string
)

// ItineraryPlanner turns a selection of spots into an ordered day with
// optional transit detail per leg. Caches are optional; a failing cache is
// logged and bypassed.
type ItineraryPlanner struct {
	spots ports.SpotRepository
	synth ports.TransitDetailer

	transitCache ports.TransitCache
	transitKey   TransitKeyFunc
	routeCache   ports.RouteCache
	routeKey     RouteKeyFunc

	log     logger.Logger
	now     func() time.Time
	workers int
}

type PlannerOption func(*ItineraryPlanner)

func WithTransitCache(c ports.TransitCache, key TransitKeyFunc) PlannerOption {
	return func(p *ItineraryPlanner) {
		p.transitCache = c
		p.transitKey = key
	}
}

func WithRouteCache(c ports.RouteCache, key RouteKeyFunc) PlannerOption {
	return func(p *ItineraryPlanner) {
		p.routeCache = c
		p.routeKey = key
	}
}

// WithLogger routes cache warnings to l instead of the process logger.
func WithLogger(l logger.Logger) PlannerOption {
	return func(p *ItineraryPlanner) {
		if l != nil {
			p.log = l
		}
	}
}

func WithClock(now func() time.Time) PlannerOption {
	return func(p *ItineraryPlanner) { p.now = now }
}

// WithLegWorkers bounds concurrent leg synthesis.
func WithLegWorkers(n int) PlannerOption {
	return func(p *ItineraryPlanner) {
		if n > 0 {
			p.workers = n
		}
	}
}

func NewItineraryPlanner(spots ports.SpotRepository, synth ports.TransitDetailer, opts ...PlannerOption) *ItineraryPlanner {
	p := &ItineraryPlanner{
		spots:   spots,
		synth:   synth,
		log:     logger.Default(),
		now:     time.Now,
		workers: defaultLegWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *ItineraryPlanner) Plan(ctx context.Context, req PlanItineraryRequest) (_ *domain.Itinerary, err error) {
	defer obs.Time(ctx, "itinerary.Plan")(&err)

	accID := strings.TrimSpace(req.AccommodationID)
	if accID == "" {
		return nil, fmt.Errorf("plan itinerary: accommodation id is required: %w", ErrInvalidRequest)
	}

	ids := lo.Uniq(lo.FilterMap(req.SpotIDs, func(id string, _ int) (string, bool) {
		id = strings.TrimSpace(id)
		return id, id != ""
	}))
	if len(ids) == 0 {
		return nil, fmt.Errorf("plan itinerary: select at least one spot: %w", ErrInvalidRequest)
	}

	acc, ok, err := p.spots.GetAccommodation(ctx, accID)
	if err != nil {
		return nil, fmt.Errorf("plan itinerary: get accommodation: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("plan itinerary: accommodation %q: %w", accID, ErrNotFound)
	}

	spots := make([]domain.Spot, 0, len(ids))
	for _, id := range ids {
		s, ok, err := p.spots.GetSpot(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("plan itinerary: get spot %q: %w", id, err)
		}
		if !ok {
			return nil, fmt.Errorf("plan itinerary: spot %q: %w", id, ErrNotFound)
		}
		spots = append(spots, s)
	}

	if len(req.Tags) > 0 {
		spots = lo.Filter(spots, func(s domain.Spot, _ int) bool { return s.HasAnyTag(req.Tags) })
		if len(spots) == 0 {
			return nil, fmt.Errorf("plan itinerary: no selected spot matches tags %v: %w", req.Tags, ErrInvalidRequest)
		}
	}

	route := p.Optimize(ctx, acc.Location(), lo.Map(spots, func(s domain.Spot, _ int) domain.Location {
		return s.Location()
	}))

	byID := lo.SliceToMap(spots, func(s domain.Spot) (string, domain.Spot) { return s.ID, s })
	ordered := make([]domain.Spot, 0, len(spots))
	for _, loc := range route.OrderedLocations[1:] {
		ordered = append(ordered, byID[loc.ID])
	}

	it := &domain.Itinerary{
		Accommodation: acc,
		Spots:         ordered,
		Route:         route,
		TotalVisitMin: lo.SumBy(ordered, func(s domain.Spot) int { return s.VisitDurationMin }),
		GeneratedAt:   p.now().UTC(),
	}

	if req.IncludeTransit {
		pairs := lo.Map(route.Legs, func(l domain.RouteLeg, _ int) endpointPair {
			return endpointPair{from: endpointOf(l.From), to: endpointOf(l.To)}
		})
		it.LegDetails, err = p.detail(ctx, pairs)
		if err != nil {
			return nil, fmt.Errorf("plan itinerary: %w", err)
		}
	}

	return it, nil
}

// Optimize runs OptimizeRoute behind the route cache when one is configured.
func (p *ItineraryPlanner) Optimize(ctx context.Context, start domain.Location, destinations []domain.Location) domain.OptimizedRoute {
	if p.routeCache == nil || p.routeKey == nil {
		return OptimizeRoute(start, destinations)
	}

	key := p.routeKey(start, destinations)
	cached, ok, err := p.routeCache.Get(ctx, key)
	if err != nil {
		p.log.Warn("route cache read failed", "req_id", obs.RequestID(ctx), "error", err)
	} else if ok {
		return cached
	}

	route := OptimizeRoute(start, destinations)
	if err := p.routeCache.Put(ctx, key, route); err != nil {
		p.log.Warn("route cache write failed", "req_id", obs.RequestID(ctx), "error", err)
	}
	return route
}

// Transit synthesizes one detailed route, consulting the transit cache.
func (p *ItineraryPlanner) Transit(ctx context.Context, from, to domain.Endpoint) (domain.DetailedRoute, error) {
	out, err := p.detail(ctx, []endpointPair{{from: from, to: to}})
	if err != nil {
		return domain.DetailedRoute{}, err
	}
	return out[0], nil
}

type endpointPair struct {
	from, to domain.Endpoint
}

func endpointOf(l domain.Location) domain.Endpoint {
	return domain.Endpoint{Lat: l.Lat, Lng: l.Lng, Label: l.Name}
}

// detail returns one DetailedRoute per pair, in pair order.
func (p *ItineraryPlanner) detail(ctx context.Context, pairs []endpointPair) ([]domain.DetailedRoute, error) {
	out := make([]domain.DetailedRoute, len(pairs))
	if len(pairs) == 0 {
		return out, nil
	}

	useCache := p.transitCache != nil && p.transitKey != nil
	keys := make([]string, len(pairs))
	done := make([]bool, len(pairs))

	if useCache {
		for i, pr := range pairs {
			keys[i] = p.transitKey(pr.from, pr.to)
		}
		cached, err := p.transitCache.GetMany(ctx, keys)
		if err != nil {
			p.log.Warn("transit cache read failed", "req_id", obs.RequestID(ctx), "error", err)
		}
		for i, k := range keys {
			if r, ok := cached[k]; ok {
				out[i] = r
				done[i] = true
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, pr := range pairs {
		if done[i] {
			continue
		}
		i, pr := i, pr
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = p.synth.GenerateDetailedRoute(pr.from, pr.to)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("synthesize transit: %w", err)
	}

	if useCache {
		fresh := make(map[string]domain.DetailedRoute)
		for i, k := range keys {
			if !done[i] {
				fresh[k] = out[i]
			}
		}
		if len(fresh) > 0 {
			if err := p.transitCache.PutMany(ctx, fresh); err != nil {
				p.log.Warn("transit cache write failed", "req_id", obs.RequestID(ctx), "error", err)
			}
		}
	}

	return out, nil
}
