package domain

import "testing"

func TestSpotHasAnyTag(t *testing.T) {
	s := Spot{ID: "sensoji", Tags: []string{"culture", "history", "photo"}}

	if !s.HasAnyTag([]string{"food", "history"}) {
		t.Fatalf("expected match on history")
	}
	if s.HasAnyTag([]string{"food"}) {
		t.Fatalf("unexpected match on food")
	}
	if s.HasAnyTag(nil) {
		t.Fatalf("empty tag list must not match")
	}
}

func TestItineraryTotalMin(t *testing.T) {
	it := Itinerary{
		Route:         OptimizedRoute{TotalDurationMin: 42},
		TotalVisitMin: 150,
	}
	if it.TotalMin() != 192 {
		t.Fatalf("TotalMin = %d, want 192", it.TotalMin())
	}
}
