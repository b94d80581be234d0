// Package booking implements booking operations over the store: lookups,
// cancellation, flight changes, seat upgrades, and new reservations.
package booking

import (
	"fmt"
	"log/slog"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
	"github.com/SkyDeskLabs/SkyDesk/internal/store"
)

// NewBookingFlightNumber is assigned to reservations created through the
// assistant until inventory integration lands.
const NewBookingFlightNumber = "AA999"

// availableSeats maps flight numbers to currently open seats.
var availableSeats = map[string][]string{
	"AA101": {"12A", "12B", "15C", "20A", "20B"},
	"AA202": {"8B", "10A", "10B", "18C"},
	"AA303": {"5C", "7A", "7B", "14A"},
}

// Service exposes booking operations to the workflow handlers.
type Service interface {
	GetBooking(bookingID, userID string) (*models.Booking, error)
	GetUserBookings(userID string) ([]models.Booking, error)
	CancelBooking(bookingID string) (models.OperationResult, error)
	ChangeFlight(bookingID, newFlightNumber, newDate string) (models.OperationResult, error)
	UpgradeSeat(bookingID, newSeat string) (models.OperationResult, error)
	CreateBooking(b models.Booking) (models.OperationResult, error)
	GetAvailableSeats(flightNumber string) []string
}

// StoreService implements Service against a store.Store.
type StoreService struct {
	store   store.Store
	pricing PricingPolicy
}

// NewService creates a booking service. A nil pricing falls back to
// StandardPricing.
func NewService(st store.Store, pricing PricingPolicy) *StoreService {
	if pricing == nil {
		pricing = StandardPricing{}
	}
	return &StoreService{store: st, pricing: pricing}
}

// GetBooking retrieves a booking, verifying ownership when userID is
// non-empty.
func (s *StoreService) GetBooking(bookingID, userID string) (*models.Booking, error) {
	return s.store.GetBooking(bookingID, userID)
}

// GetUserBookings returns a user's confirmed bookings.
func (s *StoreService) GetUserBookings(userID string) ([]models.Booking, error) {
	return s.store.GetUserBookings(userID)
}

// CancelBooking cancels a booking and quotes the refund. A missing or
// already-cancelled booking fails without error.
func (s *StoreService) CancelBooking(bookingID string) (models.OperationResult, error) {
	b, err := s.store.GetBooking(bookingID, "")
	if err != nil {
		return models.OperationResult{}, fmt.Errorf("failed to look up booking %s: %w", bookingID, err)
	}
	if b == nil {
		return models.OperationResult{
			Message: fmt.Sprintf("Booking %s not found", bookingID),
		}, nil
	}
	if b.Status == models.BookingStatusCancelled {
		return models.OperationResult{
			Message: fmt.Sprintf("Booking %s is already cancelled", bookingID),
		}, nil
	}

	if _, err := s.store.SetBookingStatus(bookingID, models.BookingStatusCancelled); err != nil {
		return models.OperationResult{}, fmt.Errorf("failed to cancel booking %s: %w", bookingID, err)
	}

	slog.Info("booking.cancelled", "bookingID", bookingID)
	return models.OperationResult{
		Success:      true,
		Message:      fmt.Sprintf("Booking %s has been cancelled successfully", bookingID),
		RefundAmount: s.pricing.RefundAmount(),
	}, nil
}

// ChangeFlight moves a booking to a new flight and date and quotes the
// change fee.
func (s *StoreService) ChangeFlight(bookingID, newFlightNumber, newDate string) (models.OperationResult, error) {
	matched, err := s.store.SetBookingFlight(bookingID, newFlightNumber, newDate)
	if err != nil {
		return models.OperationResult{}, fmt.Errorf("failed to change flight for %s: %w", bookingID, err)
	}
	if !matched {
		return models.OperationResult{
			Message: fmt.Sprintf("Booking %s not found", bookingID),
		}, nil
	}

	slog.Info("booking.flight changed", "bookingID", bookingID, "flight", newFlightNumber, "date", newDate)
	return models.OperationResult{
		Success:   true,
		Message:   fmt.Sprintf("Flight changed to %s on %s", newFlightNumber, newDate),
		ChangeFee: s.pricing.ChangeFee(),
	}, nil
}

// UpgradeSeat reassigns a booking's seat and quotes the upgrade cost.
func (s *StoreService) UpgradeSeat(bookingID, newSeat string) (models.OperationResult, error) {
	matched, err := s.store.SetBookingSeat(bookingID, newSeat)
	if err != nil {
		return models.OperationResult{}, fmt.Errorf("failed to upgrade seat for %s: %w", bookingID, err)
	}
	if !matched {
		return models.OperationResult{
			Message: fmt.Sprintf("Booking %s not found", bookingID),
		}, nil
	}

	slog.Info("booking.seat upgraded", "bookingID", bookingID, "seat", newSeat)
	return models.OperationResult{
		Success:     true,
		Message:     fmt.Sprintf("Seat upgraded to %s", newSeat),
		UpgradeCost: s.pricing.UpgradeCost(),
	}, nil
}

// CreateBooking assigns the next sequential booking id and inserts the
// booking as confirmed.
func (s *StoreService) CreateBooking(b models.Booking) (models.OperationResult, error) {
	count, err := s.store.CountBookings()
	if err != nil {
		return models.OperationResult{}, fmt.Errorf("failed to count bookings: %w", err)
	}

	b.BookingID = fmt.Sprintf("BK%03d", count+1)
	if b.SeatNumber == "" {
		b.SeatNumber = "TBD"
	}
	b.Status = models.BookingStatusConfirmed

	if err := s.store.InsertBooking(b); err != nil {
		return models.OperationResult{}, fmt.Errorf("failed to insert booking %s: %w", b.BookingID, err)
	}

	slog.Info("booking.created", "bookingID", b.BookingID, "userID", b.UserID,
		"origin", b.Origin, "destination", b.Destination, "date", b.DepartureDate)
	return models.OperationResult{
		Success:   true,
		Message:   "Booking created successfully",
		BookingID: b.BookingID,
	}, nil
}

// GetAvailableSeats lists open seats on a flight.
func (s *StoreService) GetAvailableSeats(flightNumber string) []string {
	return availableSeats[flightNumber]
}
