package nlu

import (
	"context"
	"strings"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

// Confidence tiers for rule matches. Narrow patterns (two keyword groups
// agreeing) score higher than broad single-keyword ones.
const (
	confStrong = 0.9
	confMedium = 0.85
	confWeak   = 0.8
	confNone   = 0.3
)

// KeywordClassifier is the default rule-based classifier. Rules are checked
// in a fixed order so overlapping keywords resolve deterministically, with
// the more specific patterns first.
type KeywordClassifier struct{}

// NewKeywordClassifier creates the rule-based classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify applies the rule cascade and extracts entities.
func (c *KeywordClassifier) Classify(_ context.Context, message string) Result {
	intent, confidence := c.classifyIntent(message)
	return Result{
		Intent:     intent,
		Confidence: confidence,
		Entities:   ExtractEntities(message),
	}
}

func (c *KeywordClassifier) classifyIntent(message string) (models.Intent, float64) {
	m := strings.ToLower(message)

	if containsAny(m, "cancel", "cancellation", "refund") {
		if containsAny(m, "policy", "rule") {
			return models.IntentCancellationPolicy, confStrong
		}
		if containsAny(m, "cancel my", "cancel booking", "cancel flight") {
			return models.IntentCancelBooking, confStrong
		}
	}

	if containsAny(m, "baggage", "luggage") {
		return models.IntentBaggageInfo, confStrong
	}

	if containsAny(m, "status", "check my", "show my") {
		return models.IntentCheckStatus, confMedium
	}

	if containsAny(m, "pet", "dog", "cat", "animal") &&
		containsAny(m, "allow", "travel", "bring", "flight", "fly", "policy") {
		return models.IntentPetTravel, confStrong
	}

	if containsAny(m, "child", "children", "infant", "baby", "kid", "toddler") &&
		containsAny(m, "seat", "policy", "age", "travel", "fly", "allow") {
		return models.IntentChildrenPolicy, confStrong
	}

	if containsAny(m, "complaint", "complain", "unhappy", "dissatisfied", "issue", "problem") &&
		containsAny(m, "file", "report", "submit", "had", "service", "experience") {
		return models.IntentComplaints, confStrong
	}

	if containsAny(m, "damage", "damaged", "broken", "torn") &&
		containsAny(m, "bag", "luggage", "suitcase", "baggage") {
		return models.IntentDamagedBag, confStrong
	}

	if containsAny(m, "missing", "lost", "cannot find", "didnt receive") &&
		containsAny(m, "bag", "luggage", "suitcase", "baggage") {
		return models.IntentMissingBag, confStrong
	}

	if containsAny(m, "discount", "deal", "offer", "promo", "coupon", "sale") {
		return models.IntentDiscounts, confMedium
	}

	if containsAny(m, "fare", "price", "cost", "how much", "ticket price") &&
		!containsAny(m, "change", "cancel") {
		return models.IntentFareCheck, confMedium
	}

	if containsAny(m, "flight", "schedule", "departure", "arrival", "timing") &&
		containsAny(m, "info", "information", "schedule", "when", "time", "available") {
		return models.IntentFlightsInfo, confMedium
	}

	if containsAny(m, "insurance", "coverage", "protect", "travel protection") {
		return models.IntentInsurance, confStrong
	}

	if containsAny(m, "medical", "health", "doctor", "sick", "illness", "medication") &&
		containsAny(m, "policy", "certificate", "requirement", "need", "fly") {
		return models.IntentMedicalPolicy, confStrong
	}

	if containsAny(m, "prohibited", "banned", "not allowed", "restricted", "forbidden") &&
		containsAny(m, "item", "bring", "carry", "pack") {
		return models.IntentProhibitedItems, confStrong
	}

	if containsAny(m, "sport", "sports", "music", "instrument", "guitar", "ski", "surfboard", "golf", "bicycle") &&
		containsAny(m, "equipment", "gear", "bag", "bring", "carry", "policy") {
		return models.IntentSportsMusicGear, confStrong
	}

	if containsAny(m, "policy", "rule", "regulation", "allow", "permitted") &&
		!containsAny(m, "cancel", "refund", "baggage", "luggage") {
		return models.IntentGeneralFAQ, confWeak
	}

	if containsAny(m, "change", "modify", "reschedule", "switch date", "change date", "new date") &&
		containsAny(m, "flight", "date", "booking", "reservation") {
		return models.IntentChangeFlight, confStrong
	}

	if containsAny(m, "book", "new flight", "reservation", "need to book", "want to book") &&
		!containsAny(m, "cancel", "change", "modify", "check") {
		return models.IntentBookFlight, confMedium
	}

	if containsAny(m, "upgrade", "better seat", "business class", "first class") {
		return models.IntentSeatUpgrade, confStrong
	}

	if containsAny(m, "hello", "hi ", "hey", "good morning", "good afternoon", "good evening") || m == "hi" {
		return models.IntentGreeting, confStrong
	}

	if containsAny(m, "help", "assistance", "what can you do", "how does this work") {
		return models.IntentHelp, confMedium
	}

	return models.IntentUnknown, confNone
}

func containsAny(message string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(message, w) {
			return true
		}
	}
	return false
}
