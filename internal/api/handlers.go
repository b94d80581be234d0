// Package api provides HTTP handlers for SkyDesk endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

// messageRequest is the POST /api/message payload.
type messageRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// messageResponse is the POST /api/message result payload.
type messageResponse struct {
	Response        string                  `json:"response"`
	Recommendations []models.Recommendation `json:"recommendations"`
	Intent          models.Intent           `json:"intent"`
	Confidence      float64                 `json:"confidence"`
	MessageID       int64                   `json:"message_id"`
}

func (s *Server) messageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.messageHandler: processing message request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.messageHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.messageHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	result := s.classifier.Classify(r.Context(), req.Message)
	turn := models.Turn{
		UserID:     req.UserID,
		SessionID:  req.SessionID,
		Intent:     result.Intent,
		Confidence: result.Confidence,
		Entities:   result.Entities,
		RawText:    req.Message,
	}
	if err := turn.Validate(); err != nil {
		slog.Warn("Server.messageHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	messageID, err := s.store.AddMessage(models.Message{
		UserID:     req.UserID,
		SessionID:  req.SessionID,
		Body:       req.Message,
		Intent:     result.Intent,
		Confidence: result.Confidence,
		Timestamp:  time.Now(),
	})
	if err != nil {
		slog.Error("Server.messageHandler: failed to log message", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to process message"))
		return
	}

	turnResult, err := s.dispatcher.ProcessTurn(r.Context(), turn)
	if err != nil {
		slog.Error("Server.messageHandler: dispatcher failed", "error", err, "intent", result.Intent)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to process message"))
		return
	}

	if err := s.store.SetMessageResponse(messageID, turnResult.Response); err != nil {
		slog.Warn("Server.messageHandler: failed to record response", "error", err, "messageID", messageID)
	}

	slog.Info("Server.messageHandler: message processed", "userID", req.UserID,
		"sessionID", req.SessionID, "intent", result.Intent)
	writeJSONResponse(w, http.StatusOK, models.Success(messageResponse{
		Response:        turnResult.Response,
		Recommendations: turnResult.Recommendations,
		Intent:          result.Intent,
		Confidence:      result.Confidence,
		MessageID:       messageID,
	}))
}

// feedbackRequest is the POST /api/feedback payload.
type feedbackRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	MessageID int64  `json:"message_id,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

func (s *Server) feedbackHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.feedbackHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.feedbackHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if req.UserID == "" || req.SessionID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("user_id and session_id are required"))
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("rating must be between 1 and 5"))
		return
	}

	err := s.store.AddFeedback(models.Feedback{
		UserID:    req.UserID,
		SessionID: req.SessionID,
		MessageID: req.MessageID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Timestamp: time.Now(),
	})
	if err != nil {
		slog.Error("Server.feedbackHandler: failed to store feedback", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to store feedback"))
		return
	}

	slog.Info("Server.feedbackHandler: feedback recorded", "userID", req.UserID, "rating", req.Rating)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Feedback recorded", nil))
}

func (s *Server) bookingsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.bookingsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID := strings.TrimPrefix(r.URL.Path, "/api/bookings/")
	if userID == "" || strings.Contains(userID, "/") {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("user ID is required"))
		return
	}

	bookings, err := s.store.GetUserBookings(userID)
	if err != nil {
		slog.Error("Server.bookingsHandler: failed to load bookings", "error", err, "userID", userID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load bookings"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(bookings))
}

func (s *Server) analyticsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.analyticsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	analytics, err := s.store.Analytics()
	if err != nil {
		slog.Error("Server.analyticsHandler: failed to compute analytics", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to compute analytics"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(analytics))
}

func (s *Server) cacheStatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.cacheStatsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	stats, err := s.cache.Stats(r.Context())
	if err != nil {
		slog.Error("Server.cacheStatsHandler: failed to read cache stats", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to read cache stats"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(stats))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.healthHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("healthy", nil))
}
