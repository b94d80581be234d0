// Package flow implements the dialogue workflow engine: a session state
// manager over the store and cache, per-task workflow handlers, and the
// dispatcher that routes each turn.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SkyDeskLabs/SkyDesk/internal/cache"
	"github.com/SkyDeskLabs/SkyDesk/internal/models"
	"github.com/SkyDeskLabs/SkyDesk/internal/store"
)

// SessionStateManager persists workflow state with a cache read-through.
// Reads hit the cache first; writes update the store then refresh the cache;
// completion flips the store row and drops the cache entry.
//
// Concurrent turns on the same session can interleave read-modify-write on
// the workflow row. Sessions are conversational, so turns arrive one at a
// time in practice and last-write-wins is acceptable.
type SessionStateManager struct {
	store store.Store
	cache cache.Cache
	ttl   time.Duration
}

// NewSessionStateManager creates a state manager. A nil c disables caching
// by substituting an in-process cache.
func NewSessionStateManager(st store.Store, c cache.Cache) *SessionStateManager {
	if c == nil {
		c = cache.NewMemoryCache()
	}
	return &SessionStateManager{store: st, cache: c, ttl: cache.DefaultWorkflowTTL}
}

// ActiveWorkflow returns the session's active workflow, or nil when none
// exists. Cache errors fall through to the store.
func (m *SessionStateManager) ActiveWorkflow(ctx context.Context, sessionID, userID string) (*models.WorkflowState, error) {
	key := cache.WorkflowKey(sessionID)
	if state, ok, err := m.cache.Get(ctx, key); err != nil {
		slog.Warn("flow.cache read failed, falling back to store", "error", err, "sessionID", sessionID)
	} else if ok && state.Status == models.WorkflowStatusActive {
		return state, nil
	}

	state, err := m.store.GetActiveWorkflow(sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow state: %w", err)
	}
	if state == nil {
		return nil, nil
	}

	if err := m.cache.Set(ctx, key, state, m.ttl); err != nil {
		slog.Warn("flow.cache populate failed", "error", err, "sessionID", sessionID)
	}
	return state, nil
}

// Save upserts the workflow and refreshes the cache entry.
func (m *SessionStateManager) Save(ctx context.Context, state *models.WorkflowState) error {
	state.UpdatedAt = time.Now()
	if state.CreatedAt.IsZero() {
		state.CreatedAt = state.UpdatedAt
	}

	if err := m.store.SaveWorkflow(*state); err != nil {
		return fmt.Errorf("failed to save workflow state: %w", err)
	}

	if err := m.cache.Set(ctx, cache.WorkflowKey(state.SessionID), state, m.ttl); err != nil {
		slog.Warn("flow.cache refresh failed", "error", err, "sessionID", state.SessionID)
	}

	slog.Debug("flow.workflow saved", "workflowID", state.WorkflowID,
		"type", state.WorkflowType, "step", state.CurrentStep, "sessionID", state.SessionID)
	return nil
}

// Complete marks the workflow completed and drops the session's cache entry.
func (m *SessionStateManager) Complete(ctx context.Context, workflowID, sessionID string) error {
	if err := m.store.CompleteWorkflow(workflowID); err != nil {
		return fmt.Errorf("failed to complete workflow %s: %w", workflowID, err)
	}

	if err := m.cache.Delete(ctx, cache.WorkflowKey(sessionID)); err != nil {
		slog.Warn("flow.cache delete failed", "error", err, "sessionID", sessionID)
	}

	slog.Info("flow.workflow completed", "workflowID", workflowID, "sessionID", sessionID)
	return nil
}

// newWorkflow builds a fresh active workflow state.
func newWorkflow(userID, sessionID string, wfType models.WorkflowType, step models.StepType, data map[models.DataKey]string) *models.WorkflowState {
	if data == nil {
		data = make(map[models.DataKey]string)
	}
	now := time.Now()
	return &models.WorkflowState{
		WorkflowID:   uuid.NewString(),
		UserID:       userID,
		SessionID:    sessionID,
		WorkflowType: wfType,
		CurrentStep:  step,
		StateData:    data,
		Status:       models.WorkflowStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
