// Package store provides storage backends for SkyDesk.
//
// This file implements the PostgreSQL-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
	_ "github.com/lib/pq"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore persists SkyDesk data in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("PostgresStore.NewPostgresStore: creating Postgres store", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	// Configure connection pool for better performance
	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	slog.Debug("Running Postgres migrations")
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

// GetActiveWorkflow retrieves the most recently updated active workflow for a
// session. Returns (nil, nil) if none exists.
func (s *PostgresStore) GetActiveWorkflow(sessionID, userID string) (*models.WorkflowState, error) {
	query := `SELECT workflow_id, user_id, session_id, workflow_type, current_step, state_data, status, created_at, updated_at
			  FROM workflow_states
			  WHERE session_id = $1 AND user_id = $2 AND status = $3
			  ORDER BY updated_at DESC LIMIT 1`

	row := s.db.QueryRow(query, sessionID, userID, string(models.WorkflowStatusActive))
	state, err := scanWorkflowRow(row)
	if err == sql.ErrNoRows {
		slog.Debug("PostgresStore GetActiveWorkflow not found", "sessionID", sessionID, "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore GetActiveWorkflow failed", "error", err, "sessionID", sessionID, "userID", userID)
		return nil, fmt.Errorf("failed to query active workflow: %w", err)
	}
	return state, nil
}

// SaveWorkflow upserts a workflow state row keyed by workflow_id.
func (s *PostgresStore) SaveWorkflow(state models.WorkflowState) error {
	query := `
		INSERT INTO workflow_states
		(workflow_id, user_id, session_id, workflow_type, current_step, state_data, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (workflow_id) DO UPDATE SET
			workflow_type = EXCLUDED.workflow_type,
			current_step = EXCLUDED.current_step,
			state_data = EXCLUDED.state_data,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`

	stateDataJSON, err := marshalStateData(state.StateData)
	if err != nil {
		slog.Error("PostgresStore SaveWorkflow JSON marshal failed", "error", err, "workflowID", state.WorkflowID)
		return err
	}

	_, err = s.db.Exec(query, state.WorkflowID, state.UserID, state.SessionID,
		string(state.WorkflowType), string(state.CurrentStep), nilIfEmpty(stateDataJSON),
		string(state.Status), state.CreatedAt, state.UpdatedAt)
	if err != nil {
		slog.Error("PostgresStore SaveWorkflow failed", "error", err, "workflowID", state.WorkflowID)
		return fmt.Errorf("failed to save workflow %s: %w", state.WorkflowID, err)
	}
	slog.Debug("PostgresStore SaveWorkflow succeeded", "workflowID", state.WorkflowID, "workflowType", state.WorkflowType, "step", state.CurrentStep)
	return nil
}

// CompleteWorkflow flips the persisted status to completed.
func (s *PostgresStore) CompleteWorkflow(workflowID string) error {
	query := `UPDATE workflow_states SET status = $1, updated_at = NOW() WHERE workflow_id = $2`

	_, err := s.db.Exec(query, string(models.WorkflowStatusCompleted), workflowID)
	if err != nil {
		slog.Error("PostgresStore CompleteWorkflow failed", "error", err, "workflowID", workflowID)
		return fmt.Errorf("failed to complete workflow %s: %w", workflowID, err)
	}
	slog.Debug("PostgresStore CompleteWorkflow succeeded", "workflowID", workflowID)
	return nil
}

// GetBooking retrieves a booking, verifying user ownership when userID is
// non-empty. Returns (nil, nil) if not found.
func (s *PostgresStore) GetBooking(bookingID, userID string) (*models.Booking, error) {
	query := `SELECT booking_id, user_id, flight_number, passenger_name, departure_date, origin, destination, seat_number, status
			  FROM bookings WHERE booking_id = $1`
	args := []interface{}{bookingID}
	if userID != "" {
		query += ` AND user_id = $2`
		args = append(args, userID)
	}

	row := s.db.QueryRow(query, args...)
	b, err := scanBookingRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore GetBooking failed", "error", err, "bookingID", bookingID)
		return nil, fmt.Errorf("failed to query booking %s: %w", bookingID, err)
	}
	return b, nil
}

// GetUserBookings returns all confirmed bookings for a user.
func (s *PostgresStore) GetUserBookings(userID string) ([]models.Booking, error) {
	query := `SELECT booking_id, user_id, flight_number, passenger_name, departure_date, origin, destination, seat_number, status
			  FROM bookings WHERE user_id = $1 AND status = $2 ORDER BY departure_date DESC`

	rows, err := s.db.Query(query, userID, models.BookingStatusConfirmed)
	if err != nil {
		slog.Error("PostgresStore GetUserBookings query failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query bookings for %s: %w", userID, err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			slog.Error("PostgresStore GetUserBookings scan failed", "error", err, "userID", userID)
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate booking rows: %w", err)
	}
	return bookings, nil
}

// InsertBooking stores a new booking row.
func (s *PostgresStore) InsertBooking(b models.Booking) error {
	query := `INSERT INTO bookings
		(booking_id, user_id, flight_number, passenger_name, departure_date, origin, destination, seat_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.Exec(query, b.BookingID, b.UserID, b.FlightNumber, b.PassengerName,
		b.DepartureDate, b.Origin, b.Destination, b.SeatNumber, b.Status)
	if err != nil {
		slog.Error("PostgresStore InsertBooking failed", "error", err, "bookingID", b.BookingID)
		return fmt.Errorf("failed to insert booking %s: %w", b.BookingID, err)
	}
	return nil
}

// CountBookings returns the total number of booking rows.
func (s *PostgresStore) CountBookings() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		slog.Error("PostgresStore CountBookings failed", "error", err)
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// SetBookingStatus updates a booking's status, reporting whether a row matched.
func (s *PostgresStore) SetBookingStatus(bookingID, status string) (bool, error) {
	res, err := s.db.Exec(`UPDATE bookings SET status = $1 WHERE booking_id = $2`, status, bookingID)
	if err != nil {
		slog.Error("PostgresStore SetBookingStatus failed", "error", err, "bookingID", bookingID)
		return false, fmt.Errorf("failed to update booking %s status: %w", bookingID, err)
	}
	return rowsAffected(res), nil
}

// SetBookingFlight updates a booking's flight number and departure date.
func (s *PostgresStore) SetBookingFlight(bookingID, flightNumber, departureDate string) (bool, error) {
	res, err := s.db.Exec(`UPDATE bookings SET flight_number = $1, departure_date = $2 WHERE booking_id = $3`,
		flightNumber, departureDate, bookingID)
	if err != nil {
		slog.Error("PostgresStore SetBookingFlight failed", "error", err, "bookingID", bookingID)
		return false, fmt.Errorf("failed to update booking %s flight: %w", bookingID, err)
	}
	return rowsAffected(res), nil
}

// SetBookingSeat updates a booking's seat assignment.
func (s *PostgresStore) SetBookingSeat(bookingID, seat string) (bool, error) {
	res, err := s.db.Exec(`UPDATE bookings SET seat_number = $1 WHERE booking_id = $2`, seat, bookingID)
	if err != nil {
		slog.Error("PostgresStore SetBookingSeat failed", "error", err, "bookingID", bookingID)
		return false, fmt.Errorf("failed to update booking %s seat: %w", bookingID, err)
	}
	return rowsAffected(res), nil
}

// GetPolicies returns all policy documents of the given type.
func (s *PostgresStore) GetPolicies(policyType string) ([]models.Policy, error) {
	rows, err := s.db.Query(`SELECT policy_name, policy_type, content FROM policies WHERE policy_type = $1`, policyType)
	if err != nil {
		slog.Error("PostgresStore GetPolicies query failed", "error", err, "policyType", policyType)
		return nil, fmt.Errorf("failed to query policies: %w", err)
	}
	defer rows.Close()

	var policies []models.Policy
	for rows.Next() {
		var p models.Policy
		if err := rows.Scan(&p.PolicyName, &p.PolicyType, &p.Content); err != nil {
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
func (s *PostgresStore) AddMessage(m models.Message) (int64, error) {
	var id int64
	err := s.db.QueryRow(`INSERT INTO messages (user_id, session_id, message, intent, confidence) VALUES ($1, $2, $3, $4, $5) RETURNING message_id`,
		m.UserID, m.SessionID, m.Body, string(m.Intent), m.Confidence).Scan(&id)
	if err != nil {
		slog.Error("PostgresStore AddMessage failed", "error", err, "userID", m.UserID)
		return 0, fmt.Errorf("failed to insert message: %w", err)
	}
	return id, nil
}

// SetMessageResponse records the assistant response for a logged message.
func (s *PostgresStore) SetMessageResponse(messageID int64, response string) error {
	_, err := s.db.Exec(`UPDATE messages SET response = $1 WHERE message_id = $2`, response, messageID)
	if err != nil {
		slog.Error("PostgresStore SetMessageResponse failed", "error", err, "messageID", messageID)
		return fmt.Errorf("failed to update message %d response: %w", messageID, err)
	}
	return nil
}

// AddFeedback stores a user rating.
func (s *PostgresStore) AddFeedback(f models.Feedback) error {
	_, err := s.db.Exec(`INSERT INTO feedback (user_id, session_id, message_id, rating, comment) VALUES ($1, $2, $3, $4, $5)`,
		f.UserID, f.SessionID, nilIfZero(f.MessageID), f.Rating, nilIfEmpty(f.Comment))
	if err != nil {
		slog.Error("PostgresStore AddFeedback failed", "error", err, "userID", f.UserID)
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

// Analytics aggregates conversation-log statistics.
func (s *PostgresStore) Analytics() (models.Analytics, error) {
	return queryAnalytics(s.db)
}

// Close closes the Postgres database connection.
func (s *PostgresStore) Close() error {
	slog.Debug("Closing Postgres database connection")
	return s.db.Close()
}
