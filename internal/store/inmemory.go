// Package store provides storage backends for SkyDesk.
//
// This file implements an in-memory store used by tests and local runs that
// do not need persistence.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

// InMemoryStore keeps all SkyDesk data in process memory.
type InMemoryStore struct {
	mu        sync.RWMutex
	workflows map[string]models.WorkflowState // keyed by workflow id
	bookings  map[string]models.Booking       // keyed by booking id
	policies  []models.Policy
	messages  []models.Message
	feedback  []models.Feedback
	nextMsgID int64
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		workflows: make(map[string]models.WorkflowState),
		bookings:  make(map[string]models.Booking),
		nextMsgID: 1,
	}
}

// SeedSampleData loads the same sample bookings and policies the SQL
// migrations seed, so tests exercise identical fixtures.
func (s *InMemoryStore) SeedSampleData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range []models.Booking{
		{BookingID: "BK001", UserID: "user123", FlightNumber: "AA101", PassengerName: "John Doe", DepartureDate: "2025-11-15", Origin: "JFK", Destination: "LAX", SeatNumber: "12A", Status: models.BookingStatusConfirmed},
		{BookingID: "BK002", UserID: "user123", FlightNumber: "AA202", PassengerName: "John Doe", DepartureDate: "2025-11-20", Origin: "LAX", Destination: "ORD", SeatNumber: "8B", Status: models.BookingStatusConfirmed},
		{BookingID: "BK003", UserID: "user456", FlightNumber: "AA303", PassengerName: "Jane Smith", DepartureDate: "2025-11-18", Origin: "MIA", Destination: "SFO", SeatNumber: "5C", Status: models.BookingStatusConfirmed},
	} {
		s.bookings[b.BookingID] = b
	}
	s.policies = []models.Policy{
		{PolicyName: "Cancellation Policy", PolicyType: "cancellation", Content: "Flights can be cancelled up to 24 hours before departure for a full refund. Cancellations within 24 hours incur a $50 fee."},
		{PolicyName: "Baggage Policy", PolicyType: "baggage", Content: "Each passenger is allowed 1 carry-on bag (22x14x9 inches) and 1 personal item. Checked bags cost $30 for the first bag, $40 for the second."},
		{PolicyName: "Change Policy", PolicyType: "change", Content: "Flight changes are allowed up to 2 hours before departure. Change fees vary by ticket type: $0 for flexible tickets, $75 for standard tickets."},
	}
}

// GetActiveWorkflow returns the most recently updated active workflow for a
// session, or (nil, nil) if none exists.
func (s *InMemoryStore) GetActiveWorkflow(sessionID, userID string) (*models.WorkflowState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.WorkflowState
	for id := range s.workflows {
		w := s.workflows[id]
		if w.SessionID != sessionID || w.UserID != userID || w.Status != models.WorkflowStatusActive {
			continue
		}
		if found == nil || w.UpdatedAt.After(found.UpdatedAt) {
			cp := w
			cp.StateData = copyStateData(w.StateData)
			found = &cp
		}
	}
	return found, nil
}

// SaveWorkflow upserts a workflow state keyed by workflow id.
func (s *InMemoryStore) SaveWorkflow(state models.WorkflowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state.StateData = copyStateData(state.StateData)
	s.workflows[state.WorkflowID] = state
	return nil
}

// CompleteWorkflow flips a workflow's status to completed.
func (s *InMemoryStore) CompleteWorkflow(workflowID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.workflows[workflowID]; ok {
		w.Status = models.WorkflowStatusCompleted
		w.UpdatedAt = time.Now()
		s.workflows[workflowID] = w
	}
	return nil
}

// GetBooking retrieves a booking, verifying ownership when userID is non-empty.
func (s *InMemoryStore) GetBooking(bookingID, userID string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	if userID != "" && b.UserID != userID {
		return nil, nil
	}
	cp := b
	return &cp, nil
}

// GetUserBookings returns all confirmed bookings for a user, most recent
// departure first.
func (s *InMemoryStore) GetUserBookings(userID string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bookings []models.Booking
	for _, b := range s.bookings {
		if b.UserID == userID && b.Status == models.BookingStatusConfirmed {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].DepartureDate > bookings[j].DepartureDate
	})
	return bookings, nil
}

// InsertBooking stores a new booking.
func (s *InMemoryStore) InsertBooking(b models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.BookingID] = b
	return nil
}

// CountBookings returns the total number of bookings.
func (s *InMemoryStore) CountBookings() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings), nil
}

// SetBookingStatus updates a booking's status, reporting whether it exists.
func (s *InMemoryStore) SetBookingStatus(bookingID, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return false, nil
	}
	b.Status = status
	s.bookings[bookingID] = b
	return true, nil
}

// SetBookingFlight updates a booking's flight number and departure date.
func (s *InMemoryStore) SetBookingFlight(bookingID, flightNumber, departureDate string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return false, nil
	}
	b.FlightNumber = flightNumber
	b.DepartureDate = departureDate
	s.bookings[bookingID] = b
	return true, nil
}

// SetBookingSeat updates a booking's seat assignment.
func (s *InMemoryStore) SetBookingSeat(bookingID, seat string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return false, nil
	}
	b.SeatNumber = seat
	s.bookings[bookingID] = b
	return true, nil
}

// GetPolicies returns all policy documents of the given type.
func (s *InMemoryStore) GetPolicies(policyType string) ([]models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var policies []models.Policy
	for _, p := range s.policies {
		if p.PolicyType == policyType {
			policies = append(policies, p)
		}
	}
	return policies, nil
}

// AddMessage logs one request turn and returns the new message id.
func (s *InMemoryStore) AddMessage(m models.Message) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.MessageID = s.nextMsgID
	s.nextMsgID++
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	s.messages = append(s.messages, m)
	return m.MessageID, nil
}

// SetMessageResponse records the assistant response for a logged message.
func (s *InMemoryStore) SetMessageResponse(messageID int64, response string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].MessageID == messageID {
			s.messages[i].Response = response
			return nil
		}
	}
	return nil
}

// AddFeedback stores a user rating.
func (s *InMemoryStore) AddFeedback(f models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.FeedbackID = int64(len(s.feedback) + 1)
	if f.Timestamp.IsZero() {
		f.Timestamp = time.Now()
	}
	s.feedback = append(s.feedback, f)
	return nil
}

// Analytics aggregates conversation-log statistics.
func (s *InMemoryStore) Analytics() (models.Analytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := models.Analytics{IntentDistribution: make(map[string]int)}
	a.TotalMessages = len(s.messages)

	sessions := make(map[string]bool)
	var confSum float64
	for _, m := range s.messages {
		sessions[m.SessionID] = true
		if m.Intent != "" {
			a.IntentDistribution[string(m.Intent)]++
		}
		confSum += m.Confidence
	}
	a.TotalSessions = len(sessions)
	if len(s.messages) > 0 {
		a.AverageConfidence = confSum / float64(len(s.messages))
	}

	var ratingSum int
	for _, f := range s.feedback {
		a.FeedbackStats.TotalFeedback++
		ratingSum += f.Rating
		if f.Rating >= 4 {
			a.FeedbackStats.PositiveFeedback++
		}
	}
	if a.FeedbackStats.TotalFeedback > 0 {
		a.FeedbackStats.AverageRating = float64(ratingSum) / float64(a.FeedbackStats.TotalFeedback)
	}
	return a, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error { return nil }

func copyStateData(data map[models.DataKey]string) map[models.DataKey]string {
	if data == nil {
		return nil
	}
	cp := make(map[models.DataKey]string, len(data))
	for k, v := range data {
		cp[k] = v
	}
	return cp
}
