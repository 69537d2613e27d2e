package services

import (
	"itinerary-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSpots(t *testing.T) {
	spots := []domain.Spot{
		{ID: "1", Area: "Asakusa", Tags: []string{"temple", "culture"}},
		{ID: "2", Area: "Shibuya", Tags: []string{"shopping"}},
		{ID: "3", Area: "Asakusa", Tags: []string{"food"}},
	}

	ids := func(ss []domain.Spot) []string {
		out := []string{}
		for _, s := range ss {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterSpots(spots, "", nil)))
	assert.Equal(t, []string{"1", "3"}, ids(FilterSpots(spots, "asakusa", nil)))
	assert.Equal(t, []string{"2", "3"}, ids(FilterSpots(spots, "", []string{"food", "shopping"})))
	assert.Equal(t, []string{"3"}, ids(FilterSpots(spots, "Asakusa", []string{"food"})))
	assert.Equal(t, []string{}, ids(FilterSpots(spots, "Ginza", nil)))
	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterSpots(spots, " ", []string{""})))

	assert.Equal(t, []string{"Asakusa", "Shibuya"}, AllAreas(spots))
	assert.Equal(t, []string{"temple", "culture", "shopping", "food"}, AllTags(spots))
}
