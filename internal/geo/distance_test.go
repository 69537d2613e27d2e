package geo

import (
	"itinerary-route-service/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKmZero(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(35.7141, 139.7774, 35.7141, 139.7774))
}

func TestDistanceKmUenoAkihabara(t *testing.T) {
	d := DistanceKm(35.7141, 139.7774, 35.7022, 139.7744)
	assert.InDelta(t, 1.35, d, 0.05)
}

func TestDistanceKmOneDegreeOfLongitudeAtEquator(t *testing.T) {
	d := DistanceKm(0, 0, 0, 1)
	assert.InDelta(t, EarthRadiusKm*math.Pi/180, d, 1e-9)
}

func TestDistanceKmSymmetric(t *testing.T) {
	a := DistanceKm(35.6812, 139.7671, 35.4437, 139.6455)
	b := DistanceKm(35.4437, 139.6455, 35.6812, 139.7671)
	assert.InDelta(t, a, b, 1e-12)
	assert.Greater(t, a, 20.0)
}

func TestPathDistanceKm(t *testing.T) {
	points := []domain.Coordinates{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 3}}
	want := DistanceKm(0, 0, 0, 1) + DistanceKm(0, 1, 0, 3)
	assert.InDelta(t, want, PathDistanceKm(points), 1e-9)
	assert.Equal(t, 0.0, PathDistanceKm(points[:1]))
	assert.Equal(t, 0.0, PathDistanceKm(nil))
}
