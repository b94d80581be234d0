// Package models defines workflow state structures for SkyDesk conversations.
package models

import "time"

// WorkflowType identifies the multi-turn task a workflow tracks.
type WorkflowType string

const (
	WorkflowBookingLookup WorkflowType = "booking_lookup"
	WorkflowCancelBooking WorkflowType = "cancel_booking"
	WorkflowChangeFlight  WorkflowType = "change_flight"
	WorkflowSeatUpgrade   WorkflowType = "seat_upgrade"
	WorkflowBookFlight    WorkflowType = "book_flight"
	WorkflowBaggageInfo   WorkflowType = "baggage_info"
	WorkflowPolicyInquiry WorkflowType = "policy_inquiry"
)

// StepType is a workflow's position within its task-specific state machine.
// Step values are meaningful only within their workflow type.
type StepType string

const (
	StepWaitingForID         StepType = "waiting_for_id"
	StepConfirm              StepType = "confirm"
	StepWaitingForNewDate    StepType = "waiting_for_new_date"
	StepWaitingForSeatChoice StepType = "waiting_for_seat_choice"
	StepCollectingDetails    StepType = "collecting_details"
	StepShowingDetails       StepType = "showing_details"
	StepShowingPolicy        StepType = "showing_policy"
)

// WorkflowStatus is the lifecycle state of a workflow.
type WorkflowStatus string

const (
	WorkflowStatusActive    WorkflowStatus = "active"
	WorkflowStatusCompleted WorkflowStatus = "completed"
)

// DataKey names a slot stored in a workflow's state data.
type DataKey string

const (
	DataBookingID      DataKey = "booking_id"
	DataOrigin         DataKey = "origin"
	DataDestination    DataKey = "destination"
	DataDate           DataKey = "date"
	DataPassengerName  DataKey = "passenger_name"
	DataAvailableSeats DataKey = "available_seats"
	DataPolicyType     DataKey = "policy_type"
)

// WorkflowState is the unit of conversational memory: one in-progress task
// for one session. State data is an accumulating slot map; a later turn's
// value for a slot overwrites the prior value only when present.
//
// Per-workflow state data schema:
//
//	booking_lookup  booking_id
//	cancel_booking  booking_id
//	change_flight   booking_id
//	seat_upgrade    booking_id, available_seats (comma separated)
//	book_flight     origin, destination, date, passenger_name
//	baggage_info    (none)
//	policy_inquiry  policy_type
type WorkflowState struct {
	WorkflowID   string             `json:"workflow_id"`
	UserID       string             `json:"user_id"`
	SessionID    string             `json:"session_id"`
	WorkflowType WorkflowType       `json:"workflow_type"`
	CurrentStep  StepType           `json:"current_step"`
	StateData    map[DataKey]string `json:"state_data,omitempty"`
	Status       WorkflowStatus     `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Data returns the stored value for key, or "" if absent.
func (w *WorkflowState) Data(key DataKey) string {
	if w.StateData == nil {
		return ""
	}
	return w.StateData[key]
}

// SetData stores value under key, allocating the map if needed.
func (w *WorkflowState) SetData(key DataKey, value string) {
	if w.StateData == nil {
		w.StateData = make(map[DataKey]string)
	}
	w.StateData[key] = value
}

// ClearData removes key from the state data.
func (w *WorkflowState) ClearData(key DataKey) {
	delete(w.StateData, key)
}

// MergeData copies each non-empty value into the state data, retaining prior
// values for slots the new turn did not supply.
func (w *WorkflowState) MergeData(updates map[DataKey]string) {
	for k, v := range updates {
		if v != "" {
			w.SetData(k, v)
		}
	}
}
