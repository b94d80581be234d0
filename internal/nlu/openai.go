package nlu

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

const classifySystemPrompt = `You are an intent classifier for an airline customer service assistant.
Classify the user's message into exactly one of these intents:
book_flight, cancel_booking, check_status, change_flight, seat_upgrade,
baggage_info, cancellation_policy, pet_travel, children_policy, complaints,
damaged_bag, missing_bag, discounts, fare_check, flights_info, insurance,
medical_policy, prohibited_items, sports_music_gear, general_faq, greeting,
help, unknown.
Respond with only a JSON object: {"intent": "<intent>", "confidence": <0.0-1.0>}`

// OpenAIClassifier classifies intents with a chat completion and falls back
// to the rule-based classifier when the API call or response parsing fails.
// Entity extraction is always rule-based.
type OpenAIClassifier struct {
	client   openai.Client
	model    openai.ChatModel
	fallback *KeywordClassifier
}

// NewOpenAIClassifier creates a classifier backed by the OpenAI API.
func NewOpenAIClassifier(apiKey string) *OpenAIClassifier {
	return &OpenAIClassifier{
		client:   openai.NewClient(option.WithAPIKey(apiKey)),
		model:    openai.ChatModelGPT4oMini,
		fallback: NewKeywordClassifier(),
	}
}

// Classify asks the model for an intent and merges in rule-extracted
// entities.
func (c *OpenAIClassifier) Classify(ctx context.Context, message string) Result {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(classifySystemPrompt),
			openai.UserMessage(message),
		},
		Model: c.model,
	})
	if err != nil {
		slog.Warn("nlu.openai classification failed, using keyword rules", "error", err)
		return c.fallback.Classify(ctx, message)
	}
	if len(resp.Choices) == 0 {
		slog.Warn("nlu.openai returned no choices, using keyword rules")
		return c.fallback.Classify(ctx, message)
	}

	var parsed struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &parsed); err != nil {
		slog.Warn("nlu.openai response was not valid JSON, using keyword rules", "error", err)
		return c.fallback.Classify(ctx, message)
	}

	intent := models.Intent(parsed.Intent)
	if !knownIntent(intent) {
		slog.Warn("nlu.openai returned unknown intent, using keyword rules", "intent", parsed.Intent)
		return c.fallback.Classify(ctx, message)
	}
	if parsed.Confidence < 0 {
		parsed.Confidence = 0
	}
	if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}

	return Result{
		Intent:     intent,
		Confidence: parsed.Confidence,
		Entities:   ExtractEntities(message),
	}
}

func knownIntent(intent models.Intent) bool {
	switch intent {
	case models.IntentBookFlight, models.IntentCancelBooking, models.IntentCheckStatus,
		models.IntentChangeFlight, models.IntentSeatUpgrade, models.IntentBaggageInfo,
		models.IntentCancellationPolicy, models.IntentPetTravel, models.IntentChildrenPolicy,
		models.IntentComplaints, models.IntentDamagedBag, models.IntentMissingBag,
		models.IntentDiscounts, models.IntentFareCheck, models.IntentFlightsInfo,
		models.IntentInsurance, models.IntentMedicalPolicy, models.IntentProhibitedItems,
		models.IntentSportsMusicGear, models.IntentGeneralFAQ, models.IntentGreeting,
		models.IntentHelp, models.IntentUnknown:
		return true
	}
	return false
}
