package services

import (
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/geo"
	"itinerary-route-service/internal/metro"
	"math"
	"slices"
)

const (
	walkOnlyMaxKm      = 1.0
	walkElideKm        = 0.05
	walkMinPerKm       = 15.0
	taxiMinPerKm       = 10.0
	genericMinPerKm    = 5.0
	minPerStation      = 2
	kmPerStationGuess  = 0.5
	transferWalkMin    = 3
	genericSubwayLabel = "Subway"
)

// TransitSynthesizer turns a pair of coordinates into a walk, ride, transfer
// narrative using a static metro graph. It holds no mutable state.
type TransitSynthesizer struct {
	graph *metro.Graph
}

func NewTransitSynthesizer(graph *metro.Graph) *TransitSynthesizer {
	return &TransitSynthesizer{graph: graph}
}

// Build a step-by-step route between two labeled points.
//
// Points closer than 1 km are walked. Otherwise the nearest station to each
// end is found, a direct line is preferred, and a single transfer is tried
// when no line is shared. Every outcome degrades to a distance estimate
// rather than failing; the result always has at least one step.
func (t *TransitSynthesizer) GenerateDetailedRoute(from, to domain.Endpoint) domain.DetailedRoute {
	straight := geo.Between(from.Coordinates(), to.Coordinates())

	if straight < walkOnlyMaxKm {
		step := walkStep(from.Label, to.Label, straight)
		step.NarrativeText = fmt.Sprintf("Walk from %s to %s, about %d min", from.Label, to.Label, step.DurationMin)
		return finish([]domain.TransitStep{step})
	}

	fromSt, walkIn, okFrom := t.graph.NearestStation(from.Lat, from.Lng)
	toSt, walkOut, okTo := t.graph.NearestStation(to.Lat, to.Lng)
	if !okFrom || !okTo {
		return taxiRoute(from, to, straight)
	}

	var steps []domain.TransitStep

	if walkIn > walkElideKm {
		step := walkStep(from.Label, fromSt.Name, walkIn)
		step.NarrativeText = fmt.Sprintf("Walk to %s, about %d min", fromSt.Name, step.DurationMin)
		steps = append(steps, step)
	}

	steps = append(steps, t.ride(fromSt, toSt, straight)...)

	if walkOut > walkElideKm {
		step := walkStep(toSt.Name, to.Label, walkOut)
		step.NarrativeText = fmt.Sprintf("Walk from %s to %s, about %d min", toSt.Name, to.Label, step.DurationMin)
		steps = append(steps, step)
	}

	return finish(steps)
}

// ride connects two stations directly, through one transfer, or with a
// generic estimate when neither is possible.
func (t *TransitSynthesizer) ride(fromSt, toSt domain.Station, straightKm float64) []domain.TransitStep {
	if line, ok := t.graph.PreferredLine(fromSt, toSt); ok {
		step := rideStep(line, fromSt, toSt)
		step.NarrativeText = fmt.Sprintf("Take the %s from %s to %s, about %d min", line.Name, fromSt.Name, toSt.Name, step.DurationMin)
		return []domain.TransitStep{step}
	}

	if via, line1, line2, ok := t.findTransfer(fromSt, toSt); ok {
		leg1 := rideStep(line1, fromSt, via)
		leg1.NarrativeText = fmt.Sprintf("Take the %s from %s to %s, about %d min", line1.Name, fromSt.Name, via.Name, leg1.DurationMin)

		name := via.Name
		transfer := domain.TransitStep{
			Kind:                domain.ModeWalk,
			FromLabel:           via.Name,
			ToLabel:             via.Name,
			DurationMin:         transferWalkMin,
			NarrativeText:       fmt.Sprintf("Transfer at %s, about %d min", via.Name, transferWalkMin),
			TransferStationName: &name,
		}

		leg2 := rideStep(line2, via, toSt)
		leg2.NarrativeText = fmt.Sprintf("Change to the %s from %s to %s, about %d min", line2.Name, via.Name, toSt.Name, leg2.DurationMin)

		return []domain.TransitStep{leg1, transfer, leg2}
	}

	minutes := int(math.Ceil(straightKm * genericMinPerKm))
	return []domain.TransitStep{{
		Kind:          domain.ModeSubway,
		FromLabel:     fromSt.Name,
		ToLabel:       toSt.Name,
		DurationMin:   minutes,
		NarrativeText: fmt.Sprintf("Take the subway from %s to %s, about %d min", fromSt.Name, toSt.Name, minutes),
	}}
}

// findTransfer returns the first station, in listed order, that reaches the
// origin on one line and the destination on a different line.
func (t *TransitSynthesizer) findTransfer(fromSt, toSt domain.Station) (via domain.Station, line1, line2 domain.MetroLine, ok bool) {
	for _, s := range t.graph.Stations() {
		l1, ok1 := t.graph.PreferredLine(fromSt, s)
		if !ok1 {
			continue
		}
		l2, ok2 := t.graph.PreferredLine(s, toSt)
		if !ok2 || l1.ID == l2.ID {
			continue
		}
		return s, l1, l2, true
	}
	return domain.Station{}, domain.MetroLine{}, domain.MetroLine{}, false
}

// RideMinutes estimates riding time between two stations on line: two minutes
// per station when both names resolve, otherwise two minutes per 0.5 km.
func RideMinutes(line domain.MetroLine, a, b domain.Station) int {
	if hops, ok := metro.HopCount(line, a, b); ok {
		return hops * minPerStation
	}
	d := geo.Between(a.Coordinates(), b.Coordinates())
	return int(math.Ceil(d/kmPerStationGuess)) * minPerStation
}

func rideStep(line domain.MetroLine, a, b domain.Station) domain.TransitStep {
	kind := domain.ModeSubway
	if line.Operator == domain.OperatorJR {
		kind = domain.ModeTrain
	}
	l := line
	l.StationNames = slices.Clone(line.StationNames)
	return domain.TransitStep{
		Kind:        kind,
		FromLabel:   a.Name,
		ToLabel:     b.Name,
		Line:        &l,
		DurationMin: RideMinutes(line, a, b),
	}
}

func walkStep(fromLabel, toLabel string, km float64) domain.TransitStep {
	d := km
	return domain.TransitStep{
		Kind:        domain.ModeWalk,
		FromLabel:   fromLabel,
		ToLabel:     toLabel,
		DurationMin: int(math.Ceil(km * walkMinPerKm)),
		DistanceKm:  &d,
	}
}

// taxiRoute is used when no station data is available at all.
func taxiRoute(from, to domain.Endpoint, straightKm float64) domain.DetailedRoute {
	d := straightKm
	minutes := int(math.Ceil(straightKm * taxiMinPerKm))
	return domain.DetailedRoute{
		Steps: []domain.TransitStep{{
			Kind:          domain.ModeWalk,
			FromLabel:     from.Label,
			ToLabel:       to.Label,
			DurationMin:   minutes,
			DistanceKm:    &d,
			NarrativeText: fmt.Sprintf("Take a taxi, about %d min, %.1f km", minutes, straightKm),
		}},
		TotalDurationMin: minutes,
		TotalDistanceKm:  straightKm,
		SummaryText:      fmt.Sprintf("taxi %d min", minutes),
	}
}

// finish totals the steps and writes the summary. Only walking distances are
// counted in TotalDistanceKm.
func finish(steps []domain.TransitStep) domain.DetailedRoute {
	route := domain.DetailedRoute{Steps: steps}

	var rides []domain.TransitStep
	transfers := 0
	for _, s := range steps {
		route.TotalDurationMin += s.DurationMin
		if s.Kind == domain.ModeWalk && s.DistanceKm != nil {
			route.TotalDistanceKm += *s.DistanceKm
		}
		if s.Kind != domain.ModeWalk {
			rides = append(rides, s)
		}
		if s.TransferStationName != nil {
			transfers++
		}
	}

	switch {
	case len(rides) == 0:
		route.SummaryText = fmt.Sprintf("walk %d min", route.TotalDurationMin)
	case transfers == 0:
		route.SummaryText = fmt.Sprintf("%s %d min", lineLabel(rides[0]), route.TotalDurationMin)
	default:
		route.SummaryText = fmt.Sprintf("%s → %s, %d min", lineLabel(rides[0]), lineLabel(rides[len(rides)-1]), route.TotalDurationMin)
	}

	return route
}

func lineLabel(s domain.TransitStep) string {
	if s.Line == nil {
		return genericSubwayLabel
	}
	return s.Line.Name
}
