// Package cache provides a TTL cache for hot workflow state, fronting the
// persistent store so active conversations avoid a database query per turn.
package cache

import (
	"context"
	"time"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

// DefaultWorkflowTTL is how long a cached workflow state stays fresh.
const DefaultWorkflowTTL = 10 * time.Minute

// WorkflowKey returns the cache key for a session's active workflow.
func WorkflowKey(sessionID string) string {
	return "workflow:" + sessionID
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Entries int64   `json:"entries"`
	HitRate float64 `json:"hit_rate"`
}

// Cache stores workflow states under string keys with per-entry TTLs.
// Implementations must treat an expired or absent key as a miss, not an
// error.
type Cache interface {
	// Get returns the cached state and true on a hit, (nil, false) on a
	// miss.
	Get(ctx context.Context, key string) (*models.WorkflowState, bool, error)
	// Set stores state under key for ttl.
	Set(ctx context.Context, key string, state *models.WorkflowState, ttl time.Duration) error
	// Delete removes key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Stats returns hit/miss counters.
	Stats(ctx context.Context) (Stats, error)
	// Close releases any underlying resources.
	Close() error
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
