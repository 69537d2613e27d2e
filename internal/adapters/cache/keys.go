package cache

import (
	"encoding/json"
	"fmt"
	"itinerary-route-service/internal/domain"
	"strconv"
	"strings"
)

// TransitKey identifies a synthesized route. Every input that shapes the
// result is part of the key: coordinates at full precision and the labels,
// which appear in the narrative text.
func TransitKey(from, to domain.Endpoint) string {
	var b strings.Builder
	b.WriteString("transit:")
	writeEndpoint(&b, from)
	writeEndpoint(&b, to)
	return b.String()
}

// VersionedTransitKey prefixes TransitKey with version, typically the
// reference data fingerprint, so persistent entries built from older data
// are never served.
func VersionedTransitKey(version string) func(from, to domain.Endpoint) string {
	return func(from, to domain.Endpoint) string {
		return "v=" + strconv.Quote(version) + ";" + TransitKey(from, to)
	}
}

// RouteKey identifies an optimization request by its start and the
// destinations in request order. IDs and names are echoed in the response,
// so they are keyed along with the exact coordinates.
func RouteKey(start domain.Location, destinations []domain.Location) string {
	var b strings.Builder
	b.WriteString("route:")
	writeLocation(&b, start)
	for _, d := range destinations {
		writeLocation(&b, d)
	}
	return b.String()
}

func writeEndpoint(b *strings.Builder, e domain.Endpoint) {
	b.WriteString(strconv.Quote(strings.TrimSpace(e.Label)))
	b.WriteByte('@')
	writeCoord(b, e.Lat, e.Lng)
	b.WriteByte(';')
}

func writeLocation(b *strings.Builder, l domain.Location) {
	b.WriteString(strconv.Quote(l.ID))
	b.WriteString(strconv.Quote(l.Name))
	b.WriteByte('@')
	writeCoord(b, l.Lat, l.Lng)
	b.WriteByte(';')
}

func writeCoord(b *strings.Builder, lat, lng float64) {
	b.WriteString(strconv.FormatFloat(lat, 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(lng, 'g', -1, 64))
}

func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func encodeDetailed(r domain.DetailedRoute) ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode detailed route: %w", err)
	}
	return b, nil
}

func decodeDetailed(b []byte) (domain.DetailedRoute, error) {
	var r domain.DetailedRoute
	if err := json.Unmarshal(b, &r); err != nil {
		return domain.DetailedRoute{}, fmt.Errorf("decode detailed route: %w", err)
	}
	return r, nil
}
