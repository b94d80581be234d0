// Package nlu classifies user messages into intents and extracts booking
// entities. The default classifier is rule-based; an OpenAI-backed classifier
// can be layered on top when an API key is configured.
package nlu

import (
	"context"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

// Result is the outcome of processing one utterance.
type Result struct {
	Intent     models.Intent
	Confidence float64
	Entities   map[models.EntityKey]string
}

// Classifier turns raw message text into an intent, a confidence score in
// [0,1], and extracted entities.
type Classifier interface {
	Classify(ctx context.Context, message string) Result
}
