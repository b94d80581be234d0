// Package recommend generates policy, seat-upgrade, and service
// recommendations attached to workflow responses.
package recommend

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
	"github.com/SkyDeskLabs/SkyDesk/internal/store"
)

// seatUpgrades lists upgrade pitches per current cabin class.
var seatUpgrades = map[string][]string{
	"economy": {
		"Premium Economy - Extra legroom for $50",
		"Business Class - Full service for $200",
	},
	"premium_economy": {
		"Business Class - Full service for $150",
	},
}

type service struct {
	name  string
	price int
}

var additionalServices = []service{
	{"Priority Boarding", 25},
	{"Extra Baggage", 40},
	{"Travel Insurance", 35},
	{"Airport Lounge Access", 60},
	{"In-flight WiFi", 15},
}

// intentPolicyTypes maps intents to the policy documents worth surfacing.
var intentPolicyTypes = map[models.Intent]string{
	models.IntentCancelBooking:      "cancellation",
	models.IntentCancellationPolicy: "cancellation",
	models.IntentBaggageInfo:        "baggage",
	models.IntentChangeFlight:       "change",
}

// Provider generates recommendations for a turn.
type Provider interface {
	PolicyRecommendations(intent models.Intent) []models.Recommendation
	SeatUpgradeRecommendations(b *models.Booking) []models.Recommendation
	ServiceRecommendations(b *models.Booking) []models.Recommendation
	Recommendations(intent models.Intent, b *models.Booking) []models.Recommendation
}

// Engine implements Provider over the policy store.
type Engine struct {
	store store.Store
}

// NewEngine creates a recommendation engine.
func NewEngine(st store.Store) *Engine {
	return &Engine{store: st}
}

// PolicyRecommendations returns the policy documents relevant to intent.
// Store errors are logged and yield no recommendations; they never fail the
// turn.
func (e *Engine) PolicyRecommendations(intent models.Intent) []models.Recommendation {
	policyType, ok := intentPolicyTypes[intent]
	if !ok {
		return nil
	}

	policies, err := e.store.GetPolicies(policyType)
	if err != nil {
		slog.Error("recommend.failed to load policies", "error", err, "policyType", policyType)
		return nil
	}

	var recs []models.Recommendation
	for _, p := range policies {
		recs = append(recs, models.Recommendation{
			Type:       models.RecommendationPolicy,
			PolicyName: p.PolicyName,
			Content:    p.Content,
		})
	}
	return recs
}

// SeatUpgradeRecommendations suggests cabin upgrades based on the booking's
// current seat row: rows 1-5 are business (no upgrade), 6-10 premium economy,
// the rest economy.
func (e *Engine) SeatUpgradeRecommendations(b *models.Booking) []models.Recommendation {
	if b == nil {
		return nil
	}

	class := "economy"
	if row := seatRow(b.SeatNumber); row > 0 {
		switch {
		case row <= 5:
			class = "business"
		case row <= 10:
			class = "premium_economy"
		}
	}

	var recs []models.Recommendation
	for _, upgrade := range seatUpgrades[class] {
		recs = append(recs, models.Recommendation{
			Type:        models.RecommendationSeatUpgrade,
			Description: upgrade,
			BookingID:   b.BookingID,
		})
	}
	return recs
}

// ServiceRecommendations picks up to three add-on services at random.
func (e *Engine) ServiceRecommendations(b *models.Booking) []models.Recommendation {
	if b == nil {
		return nil
	}

	picks := rand.Perm(len(additionalServices))
	if len(picks) > 3 {
		picks = picks[:3]
	}

	var recs []models.Recommendation
	for _, i := range picks {
		svc := additionalServices[i]
		recs = append(recs, models.Recommendation{
			Type:        models.RecommendationService,
			Service:     svc.name,
			Price:       svc.price,
			Description: fmt.Sprintf("Add %s for $%d", svc.name, svc.price),
			BookingID:   b.BookingID,
		})
	}
	return recs
}

// Recommendations assembles the full recommendation set for an intent,
// including booking-specific upgrades for status checks.
func (e *Engine) Recommendations(intent models.Intent, b *models.Booking) []models.Recommendation {
	recs := e.PolicyRecommendations(intent)

	if b != nil {
		if intent == models.IntentCheckStatus || intent == models.IntentSeatUpgrade {
			recs = append(recs, limit(e.SeatUpgradeRecommendations(b), 2)...)
		}
		if intent == models.IntentCheckStatus {
			recs = append(recs, limit(e.ServiceRecommendations(b), 2)...)
		}
	}
	return recs
}

func limit(recs []models.Recommendation, n int) []models.Recommendation {
	if len(recs) > n {
		return recs[:n]
	}
	return recs
}

// seatRow extracts the numeric row from a seat like "12A"; 0 when absent.
func seatRow(seat string) int {
	row := 0
	for _, r := range strings.TrimSpace(seat) {
		if r < '0' || r > '9' {
			break
		}
		row = row*10 + int(r-'0')
	}
	return row
}
