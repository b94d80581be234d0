// Package store provides storage backends for SkyDesk.
//
// This file implements the SQLite-backed store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// Constants for SQLite store configuration
const (
	// DefaultDirPermissions defines the default permissions for database directories
	DefaultDirPermissions = 0755
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore persists SkyDesk data in a single SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given options.
// The DSN is a file path to the SQLite database file; the parent directory
// is created if it does not exist.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	slog.Debug("Running SQLite migrations")
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

// GetActiveWorkflow retrieves the most recently updated active workflow for a
// session. Returns (nil, nil) if none exists.
func (s *SQLiteStore) GetActiveWorkflow(sessionID, userID string) (*models.WorkflowState, error) {
	query := `SELECT workflow_id, user_id, session_id, workflow_type, current_step, state_data, status, created_at, updated_at
			  FROM workflow_states
			  WHERE session_id = ? AND user_id = ? AND status = ?
			  ORDER BY updated_at DESC LIMIT 1`

	row := s.db.QueryRow(query, sessionID, userID, string(models.WorkflowStatusActive))
	state, err := scanWorkflowRow(row)
	if err == sql.ErrNoRows {
		slog.Debug("SQLiteStore GetActiveWorkflow not found", "sessionID", sessionID, "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore GetActiveWorkflow failed", "error", err, "sessionID", sessionID, "userID", userID)
		return nil, fmt.Errorf("failed to query active workflow: %w", err)
	}

	slog.Debug("SQLiteStore GetActiveWorkflow found", "sessionID", sessionID, "workflowType", state.WorkflowType, "step", state.CurrentStep)
	return state, nil
}

// SaveWorkflow upserts a workflow state row keyed by workflow_id. Calling it
// with an unchanged id is how a handler advances a step.
func (s *SQLiteStore) SaveWorkflow(state models.WorkflowState) error {
	query := `
		INSERT OR REPLACE INTO workflow_states
		(workflow_id, user_id, session_id, workflow_type, current_step, state_data, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stateDataJSON, err := marshalStateData(state.StateData)
	if err != nil {
		slog.Error("SQLiteStore SaveWorkflow JSON marshal failed", "error", err, "workflowID", state.WorkflowID)
		return err
	}

	_, err = s.db.Exec(query, state.WorkflowID, state.UserID, state.SessionID,
		string(state.WorkflowType), string(state.CurrentStep), stateDataJSON,
		string(state.Status), state.CreatedAt, state.UpdatedAt)
	if err != nil {
		slog.Error("SQLiteStore SaveWorkflow failed", "error", err, "workflowID", state.WorkflowID, "workflowType", state.WorkflowType)
		return fmt.Errorf("failed to save workflow %s: %w", state.WorkflowID, err)
	}
	slog.Debug("SQLiteStore SaveWorkflow succeeded", "workflowID", state.WorkflowID, "workflowType", state.WorkflowType, "step", state.CurrentStep)
	return nil
}

// CompleteWorkflow flips the persisted status to completed. Rows are never
// physically deleted.
func (s *SQLiteStore) CompleteWorkflow(workflowID string) error {
	query := `UPDATE workflow_states SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE workflow_id = ?`

	_, err := s.db.Exec(query, string(models.WorkflowStatusCompleted), workflowID)
	if err != nil {
		slog.Error("SQLiteStore CompleteWorkflow failed", "error", err, "workflowID", workflowID)
		return fmt.Errorf("failed to complete workflow %s: %w", workflowID, err)
	}
	slog.Debug("SQLiteStore CompleteWorkflow succeeded", "workflowID", workflowID)
	return nil
}

// GetBooking retrieves a booking, verifying user ownership when userID is
// non-empty. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetBooking(bookingID, userID string) (*models.Booking, error) {
	query := `SELECT booking_id, user_id, flight_number, passenger_name, departure_date, origin, destination, seat_number, status
			  FROM bookings WHERE booking_id = ?`
	args := []interface{}{bookingID}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}

	row := s.db.QueryRow(query, args...)
	b, err := scanBookingRow(row)
	if err == sql.ErrNoRows {
		slog.Debug("SQLiteStore GetBooking not found", "bookingID", bookingID, "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore GetBooking failed", "error", err, "bookingID", bookingID)
		return nil, fmt.Errorf("failed to query booking %s: %w", bookingID, err)
	}
	return b, nil
}

// GetUserBookings returns all confirmed bookings for a user, most recent
// departure first.
func (s *SQLiteStore) GetUserBookings(userID string) ([]models.Booking, error) {
	query := `SELECT booking_id, user_id, flight_number, passenger_name, departure_date, origin, destination, seat_number, status
			  FROM bookings WHERE user_id = ? AND status = ? ORDER BY departure_date DESC`

	rows, err := s.db.Query(query, userID, models.BookingStatusConfirmed)
	if err != nil {
		slog.Error("SQLiteStore GetUserBookings query failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query bookings for %s: %w", userID, err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			slog.Error("SQLiteStore GetUserBookings scan failed", "error", err, "userID", userID)
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		slog.Error("SQLiteStore GetUserBookings rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate booking rows: %w", err)
	}
	slog.Debug("SQLiteStore GetUserBookings succeeded", "userID", userID, "count", len(bookings))
	return bookings, nil
}

// InsertBooking stores a new booking row.
func (s *SQLiteStore) InsertBooking(b models.Booking) error {
	query := `INSERT INTO bookings
		(booking_id, user_id, flight_number, passenger_name, departure_date, origin, destination, seat_number, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query, b.BookingID, b.UserID, b.FlightNumber, b.PassengerName,
		b.DepartureDate, b.Origin, b.Destination, b.SeatNumber, b.Status)
	if err != nil {
		slog.Error("SQLiteStore InsertBooking failed", "error", err, "bookingID", b.BookingID)
		return fmt.Errorf("failed to insert booking %s: %w", b.BookingID, err)
	}
	slog.Debug("SQLiteStore InsertBooking succeeded", "bookingID", b.BookingID)
	return nil
}

// CountBookings returns the total number of booking rows.
func (s *SQLiteStore) CountBookings() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		slog.Error("SQLiteStore CountBookings failed", "error", err)
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// SetBookingStatus updates a booking's status, reporting whether a row matched.
func (s *SQLiteStore) SetBookingStatus(bookingID, status string) (bool, error) {
	res, err := s.db.Exec(`UPDATE bookings SET status = ? WHERE booking_id = ?`, status, bookingID)
	if err != nil {
		slog.Error("SQLiteStore SetBookingStatus failed", "error", err, "bookingID", bookingID)
		return false, fmt.Errorf("failed to update booking %s status: %w", bookingID, err)
	}
	return rowsAffected(res), nil
}

// SetBookingFlight updates a booking's flight number and departure date.
func (s *SQLiteStore) SetBookingFlight(bookingID, flightNumber, departureDate string) (bool, error) {
	res, err := s.db.Exec(`UPDATE bookings SET flight_number = ?, departure_date = ? WHERE booking_id = ?`,
		flightNumber, departureDate, bookingID)
	if err != nil {
		slog.Error("SQLiteStore SetBookingFlight failed", "error", err, "bookingID", bookingID)
		return false, fmt.Errorf("failed to update booking %s flight: %w", bookingID, err)
	}
	return rowsAffected(res), nil
}

// SetBookingSeat updates a booking's seat assignment.
func (s *SQLiteStore) SetBookingSeat(bookingID, seat string) (bool, error) {
	res, err := s.db.Exec(`UPDATE bookings SET seat_number = ? WHERE booking_id = ?`, seat, bookingID)
	if err != nil {
		slog.Error("SQLiteStore SetBookingSeat failed", "error", err, "bookingID", bookingID)
		return false, fmt.Errorf("failed to update booking %s seat: %w", bookingID, err)
	}
	return rowsAffected(res), nil
}

// GetPolicies returns all policy documents of the given type.
func (s *SQLiteStore) GetPolicies(policyType string) ([]models.Policy, error) {
	rows, err := s.db.Query(`SELECT policy_name, policy_type, content FROM policies WHERE policy_type = ?`, policyType)
	if err != nil {
		slog.Error("SQLiteStore GetPolicies query failed", "error", err, "policyType", policyType)
		return nil, fmt.Errorf("failed to query policies: %w", err)
	}
	defer rows.Close()

	var policies []models.Policy
	for rows.Next() {
		var p models.Policy
		if err := rows.Scan(&p.PolicyName, &p.PolicyType, &p.Content); err != nil {
			slog.Error("SQLiteStore GetPolicies scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan policy row: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate policy rows: %w", err)
	}
	return policies, nil
}

// AddMessage logs one request turn and returns the new message id.
func (s *SQLiteStore) AddMessage(m models.Message) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO messages (user_id, session_id, message, intent, confidence) VALUES (?, ?, ?, ?, ?)`,
		m.UserID, m.SessionID, m.Body, string(m.Intent), m.Confidence)
	if err != nil {
		slog.Error("SQLiteStore AddMessage failed", "error", err, "userID", m.UserID)
		return 0, fmt.Errorf("failed to insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read message id: %w", err)
	}
	return id, nil
}

// SetMessageResponse records the assistant response for a logged message.
func (s *SQLiteStore) SetMessageResponse(messageID int64, response string) error {
	_, err := s.db.Exec(`UPDATE messages SET response = ? WHERE message_id = ?`, response, messageID)
	if err != nil {
		slog.Error("SQLiteStore SetMessageResponse failed", "error", err, "messageID", messageID)
		return fmt.Errorf("failed to update message %d response: %w", messageID, err)
	}
	return nil
}

// AddFeedback stores a user rating.
func (s *SQLiteStore) AddFeedback(f models.Feedback) error {
	_, err := s.db.Exec(`INSERT INTO feedback (user_id, session_id, message_id, rating, comment) VALUES (?, ?, ?, ?, ?)`,
		f.UserID, f.SessionID, nilIfZero(f.MessageID), f.Rating, nilIfEmpty(f.Comment))
	if err != nil {
		slog.Error("SQLiteStore AddFeedback failed", "error", err, "userID", f.UserID)
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

// Analytics aggregates conversation-log statistics.
func (s *SQLiteStore) Analytics() (models.Analytics, error) {
	return queryAnalytics(s.db)
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	slog.Debug("Closing SQLite database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close SQLite database", "error", err)
	}
	return err
}

// marshalStateData converts the state data map to its JSON column value; an
// empty map becomes the empty string to keep the column NULL-ish.
func marshalStateData(data map[models.DataKey]string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}
