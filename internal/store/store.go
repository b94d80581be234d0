// Package store provides storage backends for SkyDesk.
//
// It includes SQLite and PostgreSQL stores for workflow state, bookings,
// policies, and the message/feedback log, plus an in-memory store for tests.
package store

import (
	"strings"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

// Store is the persistence interface shared by all backends.
//
// GetActiveWorkflow returns (nil, nil) when no active workflow exists for the
// session; absence is a normal outcome, not an error.
type Store interface {
	// Workflow state. At most one workflow should be active per
	// (sessionID, userID); GetActiveWorkflow reads the most recently
	// updated active row, which also papers over duplicates if a race
	// ever produces more than one.
	GetActiveWorkflow(sessionID, userID string) (*models.WorkflowState, error)
	SaveWorkflow(state models.WorkflowState) error
	CompleteWorkflow(workflowID string) error

	// Bookings (system-of-record rows consumed by the booking service).
	GetBooking(bookingID, userID string) (*models.Booking, error)
	GetUserBookings(userID string) ([]models.Booking, error)
	InsertBooking(b models.Booking) error
	CountBookings() (int, error)
	SetBookingStatus(bookingID, status string) (bool, error)
	SetBookingFlight(bookingID, flightNumber, departureDate string) (bool, error)
	SetBookingSeat(bookingID, seat string) (bool, error)

	// Policy documents.
	GetPolicies(policyType string) ([]models.Policy, error)

	// Conversation log.
	AddMessage(m models.Message) (int64, error)
	SetMessageResponse(messageID int64, response string) error
	AddFeedback(f models.Feedback) error
	Analytics() (models.Analytics, error)

	Close() error
}

// Opts holds configuration for store construction.
type Opts struct {
	DSN string
}

// Option configures store construction.
type Option func(*Opts)

// WithDSN sets the database DSN (a file path for SQLite, a connection string
// for PostgreSQL).
func WithDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// DetectDSNType reports which driver a DSN belongs to: "postgres" for
// PostgreSQL URLs and key/value connection strings, "sqlite3" otherwise
// (plain file paths).
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite3"
}
