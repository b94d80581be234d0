package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SkyDeskLabs/SkyDesk/internal/booking"
	"github.com/SkyDeskLabs/SkyDesk/internal/cache"
	"github.com/SkyDeskLabs/SkyDesk/internal/flow"
	"github.com/SkyDeskLabs/SkyDesk/internal/models"
	"github.com/SkyDeskLabs/SkyDesk/internal/nlu"
	"github.com/SkyDeskLabs/SkyDesk/internal/recommend"
	"github.com/SkyDeskLabs/SkyDesk/internal/store"
)

func newTestServer() *Server {
	st := store.NewInMemoryStore()
	st.SeedSampleData()
	c := cache.NewMemoryCache()
	states := flow.NewSessionStateManager(st, c)
	bookings := booking.NewService(st, booking.FixedPricing{Refund: 300, Fee: 75, Upgrade: 100})
	classifier := nlu.NewKeywordClassifier()
	dispatcher := flow.NewDispatcher(states, bookings, recommend.NewEngine(st), classifier)
	return NewServer(Config{
		Dispatcher: dispatcher,
		Classifier: classifier,
		Store:      st,
		Cache:      c,
	})
}

// decodeEnvelope parses the standard response envelope, returning the raw
// result payload for further decoding.
func decodeEnvelope(t *testing.T, body *bytes.Buffer) (models.APIResponse, json.RawMessage) {
	t.Helper()
	var envelope struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Result  json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return models.APIResponse{Status: envelope.Status, Message: envelope.Message}, envelope.Result
}

func TestMessageHandler_RoundTrip(t *testing.T) {
	s := newTestServer()
	payload := `{"user_id":"user123","session_id":"sess-1","message":"show my bookings"}`
	req, _ := http.NewRequest("POST", "/api/message", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	envelope, raw := decodeEnvelope(t, rr.Body)
	if envelope.Status != string(models.APIStatusOK) {
		t.Errorf("expected ok status, got %q", envelope.Status)
	}
	var result messageResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if !strings.Contains(result.Response, "BK001") || !strings.Contains(result.Response, "BK002") {
		t.Errorf("expected booking list in response, got %q", result.Response)
	}
	if result.MessageID == 0 {
		t.Error("expected non-zero message id")
	}
}

func TestMessageHandler_InvalidJSON(t *testing.T) {
	s := newTestServer()
	req, _ := http.NewRequest("POST", "/api/message", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestMessageHandler_MissingUserID(t *testing.T) {
	s := newTestServer()
	payload := `{"session_id":"sess-1","message":"hello"}`
	req, _ := http.NewRequest("POST", "/api/message", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestMessageHandler_MethodNotAllowed(t *testing.T) {
	s := newTestServer()
	req, _ := http.NewRequest("GET", "/api/message", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != http.MethodPost {
		t.Errorf("expected Allow: POST, got %q", allow)
	}
}

func TestMessageHandler_WorkflowAcrossRequests(t *testing.T) {
	s := newTestServer()
	post := func(message string) messageResponse {
		t.Helper()
		payload, _ := json.Marshal(map[string]string{
			"user_id":    "user123",
			"session_id": "sess-wf",
			"message":    message,
		})
		req, _ := http.NewRequest("POST", "/api/message", bytes.NewReader(payload))
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		_, raw := decodeEnvelope(t, rr.Body)
		var result messageResponse
		if err := json.Unmarshal(raw, &result); err != nil {
			t.Fatalf("failed to decode result: %v", err)
		}
		return result
	}

	first := post("I want to cancel booking BK001")
	if !strings.Contains(first.Response, "yes") {
		t.Fatalf("expected confirmation prompt, got %q", first.Response)
	}
	second := post("yes")
	if !strings.Contains(second.Response, "cancelled successfully") {
		t.Errorf("expected cancellation confirmation, got %q", second.Response)
	}

	b, err := s.store.GetBooking("BK001", "user123")
	if err != nil {
		t.Fatalf("GetBooking() error: %v", err)
	}
	if b == nil || b.Status != models.BookingStatusCancelled {
		t.Errorf("expected BK001 cancelled after workflow, got %+v", b)
	}
}

func TestFeedbackHandler(t *testing.T) {
	s := newTestServer()
	payload := `{"user_id":"user123","session_id":"sess-1","rating":5,"comment":"quick and helpful"}`
	req, _ := http.NewRequest("POST", "/api/feedback", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	a, err := s.store.Analytics()
	if err != nil {
		t.Fatalf("Analytics() error: %v", err)
	}
	if a.FeedbackStats.TotalFeedback != 1 {
		t.Errorf("expected 1 feedback entry, got %d", a.FeedbackStats.TotalFeedback)
	}
}

func TestFeedbackHandler_RejectsBadRating(t *testing.T) {
	s := newTestServer()
	payload := `{"user_id":"user123","session_id":"sess-1","rating":9}`
	req, _ := http.NewRequest("POST", "/api/feedback", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestBookingsHandler(t *testing.T) {
	s := newTestServer()
	req, _ := http.NewRequest("GET", "/api/bookings/user123", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	_, raw := decodeEnvelope(t, rr.Body)
	var bookings []models.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		t.Fatalf("failed to decode bookings: %v", err)
	}
	if len(bookings) != 2 {
		t.Errorf("expected 2 bookings for user123, got %d", len(bookings))
	}
}

func TestBookingsHandler_MissingUserID(t *testing.T) {
	s := newTestServer()
	req, _ := http.NewRequest("GET", "/api/bookings/", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestAnalyticsHandler(t *testing.T) {
	s := newTestServer()
	payload := `{"user_id":"user123","session_id":"sess-1","message":"hello"}`
	req, _ := http.NewRequest("POST", "/api/message", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("message setup: expected 200, got %d", rr.Code)
	}

	req, _ = http.NewRequest("GET", "/api/analytics", nil)
	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	_, raw := decodeEnvelope(t, rr.Body)
	var a models.Analytics
	if err := json.Unmarshal(raw, &a); err != nil {
		t.Fatalf("failed to decode analytics: %v", err)
	}
	if a.TotalMessages != 1 {
		t.Errorf("expected 1 logged message, got %d", a.TotalMessages)
	}
}

func TestCacheStatsHandler(t *testing.T) {
	s := newTestServer()
	req, _ := http.NewRequest("GET", "/api/cache/stats", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	_, raw := decodeEnvelope(t, rr.Body)
	var stats cache.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		t.Fatalf("failed to decode cache stats: %v", err)
	}
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer()
	req, _ := http.NewRequest("GET", "/api/health", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}
