package domain

import "slices"

// A point of interest a traveler can add to an itinerary.
type Spot struct {
	ID               string
	Name             string
	NameLocal        string
	Area             string
	Lat              float64
	Lng              float64
	Description      string
	Tags             []string
	VisitDurationMin int
	BestTime         string
}

// HasAnyTag reports whether the spot carries at least one of tags.
func (s Spot) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if slices.Contains(s.Tags, t) {
			return true
		}
	}
	return false
}

func (s Spot) Location() Location {
	return Location{ID: s.ID, Name: s.Name, Lat: s.Lat, Lng: s.Lng}
}

// A place to stay; it is the fixed start of every planned day.
type Accommodation struct {
	ID          string
	Name        string
	Area        string
	Lat         float64
	Lng         float64
	Description string
	Advantages  []string
}

func (a Accommodation) Location() Location {
	return Location{ID: a.ID, Name: a.Name, Lat: a.Lat, Lng: a.Lng}
}
