// Package models defines the core data structures for SkyDesk.
//
// It includes types for conversation turns, workflow state, bookings, and
// recommendations, which are shared across modules.
package models

import (
	"errors"
	"time"
)

// Intent is the classified purpose of a user utterance.
type Intent string

const (
	IntentBookFlight         Intent = "book_flight"
	IntentCancelBooking      Intent = "cancel_booking"
	IntentCheckStatus        Intent = "check_status"
	IntentChangeFlight       Intent = "change_flight"
	IntentSeatUpgrade        Intent = "seat_upgrade"
	IntentBaggageInfo        Intent = "baggage_info"
	IntentCancellationPolicy Intent = "cancellation_policy"
	IntentPetTravel          Intent = "pet_travel"
	IntentChildrenPolicy     Intent = "children_policy"
	IntentComplaints         Intent = "complaints"
	IntentDamagedBag         Intent = "damaged_bag"
	IntentMissingBag         Intent = "missing_bag"
	IntentDiscounts          Intent = "discounts"
	IntentFareCheck          Intent = "fare_check"
	IntentFlightsInfo        Intent = "flights_info"
	IntentInsurance          Intent = "insurance"
	IntentMedicalPolicy      Intent = "medical_policy"
	IntentProhibitedItems    Intent = "prohibited_items"
	IntentSportsMusicGear    Intent = "sports_music_gear"
	IntentGeneralFAQ         Intent = "general_faq"
	IntentGreeting           Intent = "greeting"
	IntentHelp               Intent = "help"
	IntentUnknown            Intent = "unknown"
)

// IsTaskIntent reports whether the intent starts or continues a multi-turn
// task workflow, as opposed to a purely informational intent.
func (i Intent) IsTaskIntent() bool {
	switch i {
	case IntentBookFlight, IntentCancelBooking, IntentCheckStatus, IntentChangeFlight, IntentSeatUpgrade:
		return true
	default:
		return false
	}
}

// IsInformational reports whether the intent is answered statelessly and
// never disturbs an active task workflow.
func (i Intent) IsInformational() bool {
	switch i {
	case IntentBaggageInfo, IntentCancellationPolicy, IntentPetTravel, IntentChildrenPolicy,
		IntentComplaints, IntentDamagedBag, IntentMissingBag, IntentDiscounts,
		IntentFareCheck, IntentFlightsInfo, IntentInsurance, IntentMedicalPolicy,
		IntentProhibitedItems, IntentSportsMusicGear, IntentGeneralFAQ:
		return true
	default:
		return false
	}
}

// EntityKey names a slot extracted from an utterance.
type EntityKey string

const (
	EntityBookingID     EntityKey = "booking_id"
	EntityDate          EntityKey = "date"
	EntityOrigin        EntityKey = "origin"
	EntityDestination   EntityKey = "destination"
	EntityPassengerName EntityKey = "passenger_name"
	EntityFlightNumber  EntityKey = "flight_number"
)

// Turn is one classified user utterance handed to the dispatcher.
type Turn struct {
	UserID     string               `json:"user_id"`
	SessionID  string               `json:"session_id"`
	Intent     Intent               `json:"intent"`
	Confidence float64              `json:"confidence"`
	Entities   map[EntityKey]string `json:"entities,omitempty"`
	RawText    string               `json:"raw_text"`
}

// Entity returns the extracted value for key, or "" if absent.
func (t Turn) Entity(key EntityKey) string {
	if t.Entities == nil {
		return ""
	}
	return t.Entities[key]
}

// RecommendationType classifies a suggested follow-up attached to a response.
type RecommendationType string

const (
	RecommendationPolicy      RecommendationType = "policy"
	RecommendationSeatUpgrade RecommendationType = "seat_upgrade"
	RecommendationService     RecommendationType = "additional_service"
	RecommendationAction      RecommendationType = "action"
)

// Recommendation is a suggested follow-up (policy text, upgrade offer, add-on
// service, or next action) attached to a turn's response.
type Recommendation struct {
	Type        RecommendationType `json:"type"`
	Text        string             `json:"text,omitempty"`
	Description string             `json:"description,omitempty"`
	PolicyName  string             `json:"policy_name,omitempty"`
	Content     string             `json:"content,omitempty"`
	Service     string             `json:"service,omitempty"`
	Price       int                `json:"price,omitempty"`
	BookingID   string             `json:"booking_id,omitempty"`
}

// TurnResult is the dispatcher's reply for one turn.
type TurnResult struct {
	Response        string           `json:"response"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Booking is one flight reservation row in the booking system-of-record.
type Booking struct {
	BookingID     string `json:"booking_id"`
	UserID        string `json:"user_id"`
	FlightNumber  string `json:"flight_number"`
	PassengerName string `json:"passenger_name"`
	DepartureDate string `json:"departure_date"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	SeatNumber    string `json:"seat_number"`
	Status        string `json:"status"`
}

// Booking status values.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// OperationResult reports the outcome of a mutating booking operation.
// At most one of the amount fields is populated depending on the operation.
type OperationResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	BookingID    string `json:"booking_id,omitempty"`
	RefundAmount int    `json:"refund_amount,omitempty"`
	ChangeFee    int    `json:"change_fee,omitempty"`
	UpgradeCost  int    `json:"upgrade_cost,omitempty"`
}

// Policy is one canned policy document served to informational intents.
type Policy struct {
	PolicyName string `json:"policy_name"`
	PolicyType string `json:"policy_type"`
	Content    string `json:"content"`
}

// Message is one logged request/response cycle.
type Message struct {
	MessageID  int64     `json:"message_id"`
	UserID     string    `json:"user_id"`
	SessionID  string    `json:"session_id"`
	Body       string    `json:"message"`
	Intent     Intent    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Response   string    `json:"response"`
	Timestamp  time.Time `json:"timestamp"`
}

// Feedback is a user rating for a prior response.
type Feedback struct {
	FeedbackID int64     `json:"feedback_id"`
	UserID     string    `json:"user_id"`
	SessionID  string    `json:"session_id"`
	MessageID  int64     `json:"message_id,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Error variables for better error handling and testability.
var (
	ErrEmptyUserID    = errors.New("user id cannot be empty")
	ErrEmptySessionID = errors.New("session id cannot be empty")
	ErrEmptyRawText   = errors.New("raw text cannot be empty")
)

// Validate performs basic validation on a Turn before dispatch.
func (t Turn) Validate() error {
	if t.UserID == "" {
		return ErrEmptyUserID
	}
	if t.SessionID == "" {
		return ErrEmptySessionID
	}
	if t.RawText == "" {
		return ErrEmptyRawText
	}
	return nil
}
