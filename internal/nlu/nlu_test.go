package nlu

import (
	"context"
	"testing"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

func TestKeywordClassifierIntents(t *testing.T) {
	tests := []struct {
		message string
		want    models.Intent
	}{
		{"cancel my flight", models.IntentCancelBooking},
		{"what is your cancellation policy", models.IntentCancellationPolicy},
		{"can i get a refund, what are the rules", models.IntentCancellationPolicy},
		{"baggage allowance", models.IntentBaggageInfo},
		{"how much luggage can i bring", models.IntentBaggageInfo},
		{"check my booking status", models.IntentCheckStatus},
		{"show my flight details", models.IntentCheckStatus},
		{"can i bring my dog on the flight", models.IntentPetTravel},
		{"do children need their own seat", models.IntentChildrenPolicy},
		{"i want to file a complaint about the service", models.IntentComplaints},
		{"my bag arrived damaged", models.IntentDamagedBag},
		{"my suitcase is missing", models.IntentMissingBag},
		{"any discounts available", models.IntentDiscounts},
		{"how much is a ticket to miami", models.IntentFareCheck},
		{"what time does the flight depart", models.IntentFlightsInfo},
		{"i need travel insurance coverage", models.IntentInsurance},
		{"do i need a medical certificate to fly", models.IntentMedicalPolicy},
		{"what items are prohibited in carry on", models.IntentProhibitedItems},
		{"can i bring my guitar as gear", models.IntentSportsMusicGear},
		{"what are your rules", models.IntentGeneralFAQ},
		{"i want to change my flight date", models.IntentChangeFlight},
		{"reschedule my booking", models.IntentChangeFlight},
		{"i want to book a flight", models.IntentBookFlight},
		{"upgrade my seat please", models.IntentSeatUpgrade},
		{"hello", models.IntentGreeting},
		{"good morning", models.IntentGreeting},
		{"what can you do", models.IntentHelp},
		{"xyzzy", models.IntentUnknown},
	}
	c := NewKeywordClassifier()
	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := c.Classify(ctx, tt.message)
			if got.Intent != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.message, got.Intent, tt.want)
			}
			if tt.want != models.IntentUnknown && got.Confidence < 0.5 {
				t.Errorf("Classify(%q) confidence = %v, want >= 0.5", tt.message, got.Confidence)
			}
		})
	}
}

func TestExtractEntitiesBookingID(t *testing.T) {
	entities := ExtractEntities("cancel bk001 please")
	if entities[models.EntityBookingID] != "BK001" {
		t.Errorf("booking id = %q, want BK001", entities[models.EntityBookingID])
	}
}

func TestExtractEntitiesCommaSeparated(t *testing.T) {
	entities := ExtractEntities("JFK, LAX, 2025-12-25, John Doe")

	if entities[models.EntityOrigin] != "JFK" {
		t.Errorf("origin = %q, want JFK", entities[models.EntityOrigin])
	}
	if entities[models.EntityDestination] != "LAX" {
		t.Errorf("destination = %q, want LAX", entities[models.EntityDestination])
	}
	if entities[models.EntityDate] != "2025-12-25" {
		t.Errorf("date = %q, want 2025-12-25", entities[models.EntityDate])
	}
	if entities[models.EntityPassengerName] != "John Doe" {
		t.Errorf("passenger = %q, want John Doe", entities[models.EntityPassengerName])
	}
}

func TestExtractEntitiesCityNames(t *testing.T) {
	entities := ExtractEntities("Chicago, Miami, 2025-12-25, Jane Smith")
	if entities[models.EntityOrigin] != "ORD" {
		t.Errorf("origin = %q, want ORD", entities[models.EntityOrigin])
	}
	if entities[models.EntityDestination] != "MIA" {
		t.Errorf("destination = %q, want MIA", entities[models.EntityDestination])
	}
}

func TestExtractEntitiesRoutePhrase(t *testing.T) {
	entities := ExtractEntities("from JFK to LAX on 2025-12-25")
	if entities[models.EntityOrigin] != "JFK" || entities[models.EntityDestination] != "LAX" {
		t.Errorf("route = %q -> %q, want JFK -> LAX", entities[models.EntityOrigin], entities[models.EntityDestination])
	}
	if entities[models.EntityDate] != "2025-12-25" {
		t.Errorf("date = %q, want 2025-12-25", entities[models.EntityDate])
	}
}

func TestExtractEntitiesNameKeyword(t *testing.T) {
	entities := ExtractEntities("the passenger is John Doe")
	if entities[models.EntityPassengerName] != "John Doe" {
		t.Errorf("passenger = %q, want John Doe", entities[models.EntityPassengerName])
	}
}

func TestExtractEntitiesSkipsQuestions(t *testing.T) {
	for _, msg := range []string{
		"what is the baggage policy",
		"can i bring my dog",
		"how much does a ticket cost",
		"i want to file a complaint",
	} {
		if entities := ExtractEntities(msg); len(entities) != 0 {
			t.Errorf("ExtractEntities(%q) = %v, want none for question", msg, entities)
		}
	}
}

func TestExtractEntitiesFlightNumber(t *testing.T) {
	entities := ExtractEntities("my flight aa101 on 2025-11-15")
	if entities[models.EntityFlightNumber] != "AA101" {
		t.Errorf("flight = %q, want AA101", entities[models.EntityFlightNumber])
	}
}
