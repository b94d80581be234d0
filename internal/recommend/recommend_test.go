package recommend

import (
	"testing"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
	"github.com/SkyDeskLabs/SkyDesk/internal/store"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	st := store.NewInMemoryStore()
	st.SeedSampleData()
	return NewEngine(st)
}

func TestPolicyRecommendations(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		intent     models.Intent
		wantPolicy string
	}{
		{models.IntentCancelBooking, "Cancellation Policy"},
		{models.IntentCancellationPolicy, "Cancellation Policy"},
		{models.IntentBaggageInfo, "Baggage Policy"},
		{models.IntentChangeFlight, "Change Policy"},
	}
	for _, tt := range tests {
		recs := e.PolicyRecommendations(tt.intent)
		if len(recs) != 1 {
			t.Errorf("PolicyRecommendations(%s) = %d recs, want 1", tt.intent, len(recs))
			continue
		}
		if recs[0].Type != models.RecommendationPolicy || recs[0].PolicyName != tt.wantPolicy {
			t.Errorf("PolicyRecommendations(%s) = %+v, want %s", tt.intent, recs[0], tt.wantPolicy)
		}
	}

	if recs := e.PolicyRecommendations(models.IntentGreeting); len(recs) != 0 {
		t.Errorf("greeting produced %d policy recs, want 0", len(recs))
	}
}

func TestSeatUpgradeRecommendationsByRow(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		seat string
		want int // number of upgrade offers
	}{
		{"12A", 2}, // economy: two upgrade tiers
		{"8B", 1},  // premium economy: business only
		{"5C", 0},  // business: nothing above it
		{"", 2},    // unknown seat treated as economy
	}
	for _, tt := range tests {
		b := &models.Booking{BookingID: "BK001", SeatNumber: tt.seat}
		recs := e.SeatUpgradeRecommendations(b)
		if len(recs) != tt.want {
			t.Errorf("seat %q: %d upgrade recs, want %d", tt.seat, len(recs), tt.want)
		}
		for _, r := range recs {
			if r.Type != models.RecommendationSeatUpgrade || r.BookingID != "BK001" {
				t.Errorf("seat %q: unexpected rec %+v", tt.seat, r)
			}
		}
	}
}

func TestServiceRecommendations(t *testing.T) {
	e := newTestEngine(t)

	b := &models.Booking{BookingID: "BK002", SeatNumber: "8B"}
	recs := e.ServiceRecommendations(b)
	if len(recs) != 3 {
		t.Fatalf("service recs = %d, want 3", len(recs))
	}
	seen := make(map[string]bool)
	for _, r := range recs {
		if r.Type != models.RecommendationService {
			t.Errorf("rec type = %q, want additional_service", r.Type)
		}
		if r.Price <= 0 || r.Service == "" {
			t.Errorf("incomplete service rec: %+v", r)
		}
		if seen[r.Service] {
			t.Errorf("duplicate service recommended: %s", r.Service)
		}
		seen[r.Service] = true
	}
}

func TestRecommendationsForStatusCheck(t *testing.T) {
	e := newTestEngine(t)

	b := &models.Booking{BookingID: "BK001", SeatNumber: "12A"}
	recs := e.Recommendations(models.IntentCheckStatus, b)

	var upgrades, services int
	for _, r := range recs {
		switch r.Type {
		case models.RecommendationSeatUpgrade:
			upgrades++
		case models.RecommendationService:
			services++
		}
	}
	if upgrades != 2 {
		t.Errorf("upgrade recs = %d, want 2", upgrades)
	}
	if services != 2 {
		t.Errorf("service recs = %d, want 2 (limited)", services)
	}
}

func TestRecommendationsWithoutBooking(t *testing.T) {
	e := newTestEngine(t)

	recs := e.Recommendations(models.IntentCancelBooking, nil)
	if len(recs) != 1 || recs[0].Type != models.RecommendationPolicy {
		t.Errorf("recs = %+v, want only the cancellation policy", recs)
	}
}
