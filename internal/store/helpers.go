package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

// nilIfEmpty returns nil if s is empty, otherwise returns s.
// Used for nullable database columns.
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// nilIfZero returns nil if n is zero, otherwise returns n.
func nilIfZero(n int64) interface{} {
	if n == 0 {
		return nil
	}
	return n
}

// rowsAffected reports whether an exec matched at least one row.
func rowsAffected(res sql.Result) bool {
	n, err := res.RowsAffected()
	if err != nil {
		// Both supported drivers implement RowsAffected; treat failure as no match.
		slog.Warn("rowsAffected unavailable", "error", err)
		return false
	}
	return n > 0
}

// scanWorkflowRow scans a WorkflowState from a single sql.Row.
func scanWorkflowRow(row *sql.Row) (*models.WorkflowState, error) {
	var state models.WorkflowState
	var stateDataJSON sql.NullString
	var workflowType, currentStep, status string

	err := row.Scan(&state.WorkflowID, &state.UserID, &state.SessionID, &workflowType,
		&currentStep, &stateDataJSON, &status, &state.CreatedAt, &state.UpdatedAt)
	if err != nil {
		return nil, err
	}
	state.WorkflowType = models.WorkflowType(workflowType)
	state.CurrentStep = models.StepType(currentStep)
	state.Status = models.WorkflowStatus(status)

	if stateDataJSON.Valid && stateDataJSON.String != "" {
		state.StateData = make(map[models.DataKey]string)
		if err := json.Unmarshal([]byte(stateDataJSON.String), &state.StateData); err != nil {
			slog.Error("scanWorkflowRow state data unmarshal failed", "error", err, "workflowID", state.WorkflowID)
			// Continue with empty map rather than failing the read.
			state.StateData = make(map[models.DataKey]string)
		}
	}
	return &state, nil
}

// scanBookingRow scans a Booking from a single sql.Row.
func scanBookingRow(row *sql.Row) (*models.Booking, error) {
	var b models.Booking
	var seat sql.NullString
	err := row.Scan(&b.BookingID, &b.UserID, &b.FlightNumber, &b.PassengerName,
		&b.DepartureDate, &b.Origin, &b.Destination, &seat, &b.Status)
	if err != nil {
		return nil, err
	}
	b.SeatNumber = seat.String
	return &b, nil
}

// scanBooking scans a Booking from sql.Rows.
func scanBooking(rows *sql.Rows) (models.Booking, error) {
	var b models.Booking
	var seat sql.NullString
	err := rows.Scan(&b.BookingID, &b.UserID, &b.FlightNumber, &b.PassengerName,
		&b.DepartureDate, &b.Origin, &b.Destination, &seat, &b.Status)
	if err != nil {
		return b, fmt.Errorf("scan booking failed: %w", err)
	}
	b.SeatNumber = seat.String
	return b, nil
}

// queryAnalytics aggregates conversation-log statistics. The queries carry no
// placeholders so they are shared between the SQLite and Postgres backends.
func queryAnalytics(db *sql.DB) (models.Analytics, error) {
	var a models.Analytics
	a.IntentDistribution = make(map[string]int)

	if err := db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&a.TotalMessages); err != nil {
		return a, fmt.Errorf("failed to count messages: %w", err)
	}
	if err := db.QueryRow(`SELECT COUNT(DISTINCT session_id) FROM messages`).Scan(&a.TotalSessions); err != nil {
		return a, fmt.Errorf("failed to count sessions: %w", err)
	}

	rows, err := db.Query(`SELECT intent, COUNT(*) FROM messages WHERE intent IS NOT NULL GROUP BY intent`)
	if err != nil {
		return a, fmt.Errorf("failed to query intent distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var intent string
		var count int
		if err := rows.Scan(&intent, &count); err != nil {
			return a, fmt.Errorf("failed to scan intent row: %w", err)
		}
		a.IntentDistribution[intent] = count
	}
	if err := rows.Err(); err != nil {
		return a, fmt.Errorf("failed to iterate intent rows: %w", err)
	}

	var avgConf sql.NullFloat64
	if err := db.QueryRow(`SELECT AVG(confidence) FROM messages WHERE confidence IS NOT NULL`).Scan(&avgConf); err != nil {
		return a, fmt.Errorf("failed to average confidence: %w", err)
	}
	a.AverageConfidence = avgConf.Float64

	var avgRating sql.NullFloat64
	err = db.QueryRow(`SELECT COUNT(*), AVG(rating), COUNT(CASE WHEN rating >= 4 THEN 1 END) FROM feedback`).
		Scan(&a.FeedbackStats.TotalFeedback, &avgRating, &a.FeedbackStats.PositiveFeedback)
	if err != nil {
		return a, fmt.Errorf("failed to aggregate feedback: %w", err)
	}
	a.FeedbackStats.AverageRating = avgRating.Float64

	return a, nil
}
