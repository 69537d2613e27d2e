package services

import (
	"itinerary-route-service/internal/domain"
	"strings"

	"github.com/samber/lo"
)

// FilterSpots keeps spots in area (case-insensitive) that carry any of tags.
// An empty area or tag list does not filter. Input order is preserved.
func FilterSpots(spots []domain.Spot, area string, tags []string) []domain.Spot {
	area = strings.TrimSpace(area)
	tags = lo.Filter(tags, func(t string, _ int) bool { return strings.TrimSpace(t) != "" })

	return lo.Filter(spots, func(s domain.Spot, _ int) bool {
		if area != "" && !strings.EqualFold(s.Area, area) {
			return false
		}
		return len(tags) == 0 || s.HasAnyTag(tags)
	})
}

// AllAreas lists distinct areas in first-seen order.
func AllAreas(spots []domain.Spot) []string {
	return lo.Uniq(lo.Map(spots, func(s domain.Spot, _ int) string { return s.Area }))
}

// AllTags lists distinct tags in first-seen order.
func AllTags(spots []domain.Spot) []string {
	return lo.Uniq(lo.FlatMap(spots, func(s domain.Spot, _ int) []string { return s.Tags }))
}
