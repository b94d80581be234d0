package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

// handleBookingLookup shows booking details and opens a showing_details
// workflow so follow-up actions ("cancel it", "upgrade my seat") keep the
// booking in context.
func (d *Dispatcher) handleBookingLookup(ctx context.Context, turn models.Turn, wf *models.WorkflowState) (models.TurnResult, error) {
	bookingID := turn.Entity(models.EntityBookingID)

	// A booking ID mid-unrelated-workflow means the user moved on.
	if wf != nil && wf.WorkflowType != models.WorkflowBookingLookup && bookingID != "" {
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, err
		}
		wf = nil
	}

	if bookingID == "" {
		bookings, err := d.bookings.GetUserBookings(turn.UserID)
		if err != nil {
			return models.TurnResult{}, err
		}

		switch len(bookings) {
		case 0:
			return models.TurnResult{
				Response: "I don't see any active bookings for you. Would you like to book a new flight? Just let me know your departure city, destination, and preferred date!",
			}, nil

		case 1:
			b := bookings[0]
			// Replace any still-active workflow so the session never holds
			// two active rows.
			if wf != nil {
				if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
					return models.TurnResult{}, err
				}
			}
			state := newWorkflow(turn.UserID, turn.SessionID, models.WorkflowBookingLookup,
				models.StepShowingDetails, map[models.DataKey]string{models.DataBookingID: b.BookingID})
			if err := d.states.Save(ctx, state); err != nil {
				return models.TurnResult{}, err
			}
			return models.TurnResult{
				Response: fmt.Sprintf(
					"Here's your booking:\n\n"+
						"🎫 **Booking %s**\n"+
						"✈️ Flight: %s\n"+
						"👤 Passenger: %s\n"+
						"📅 Date: %s\n"+
						"🛫 Route: %s → %s\n"+
						"💺 Seat: %s\n"+
						"📊 Status: %s\n\n"+
						"Would you like to:\n"+
						"• Cancel this booking?\n"+
						"• Change your flight date?\n"+
						"• Upgrade your seat?\n"+
						"• Or is everything looking good?",
					b.BookingID, b.FlightNumber, b.PassengerName, b.DepartureDate,
					b.Origin, b.Destination, b.SeatNumber, strings.ToUpper(string(b.Status))),
				Recommendations: d.recs.Recommendations(models.IntentCheckStatus, &b),
			}, nil

		default:
			return models.TurnResult{
				Response: fmt.Sprintf(
					"You have %d active bookings:\n\n%s\n\nWhich one would you like to check? Just tell me the booking ID, or I can help you with something else!",
					len(bookings), bookingList(bookings)),
			}, nil
		}
	}

	booking, err := d.bookings.GetBooking(bookingID, turn.UserID)
	if err != nil {
		return models.TurnResult{}, err
	}
	if booking == nil {
		return d.bookingNotFound(turn, bookingID)
	}

	// Looking up another booking retargets the session: close the current
	// showing_details workflow before opening one for the new booking.
	if wf != nil {
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, err
		}
	}
	state := newWorkflow(turn.UserID, turn.SessionID, models.WorkflowBookingLookup,
		models.StepShowingDetails, map[models.DataKey]string{models.DataBookingID: bookingID})
	if err := d.states.Save(ctx, state); err != nil {
		return models.TurnResult{}, err
	}

	return models.TurnResult{
		Response: fmt.Sprintf(
			"Here are the details for **%s**:\n\n"+
				"✈️ Flight: %s\n"+
				"👤 Passenger: %s\n"+
				"📅 Date: %s\n"+
				"🛫 Route: %s → %s\n"+
				"💺 Seat: %s\n"+
				"📊 Status: %s\n\n"+
				"What would you like to do?\n"+
				"• Cancel this booking?\n"+
				"• Change the flight date?\n"+
				"• Upgrade your seat?\n"+
				"• Check baggage allowance?",
			bookingID, booking.FlightNumber, booking.PassengerName, booking.DepartureDate,
			booking.Origin, booking.Destination, booking.SeatNumber, strings.ToUpper(string(booking.Status))),
		Recommendations: d.recs.Recommendations(models.IntentCheckStatus, booking),
	}, nil
}

// bookingNotFound phrases the miss differently depending on whether the user
// has any bookings at all.
func (d *Dispatcher) bookingNotFound(turn models.Turn, bookingID string) (models.TurnResult, error) {
	userBookings, err := d.bookings.GetUserBookings(turn.UserID)
	if err != nil {
		return models.TurnResult{}, err
	}
	if len(userBookings) == 0 {
		return models.TurnResult{
			Response: fmt.Sprintf(
				"⚠️ I couldn't find booking %s.\n\n"+
					"You don't have any bookings in our system yet. "+
					"Would you like to book a new flight?", bookingID),
			Recommendations: []models.Recommendation{
				{Type: models.RecommendationAction, Text: "Book a flight"},
			},
		}, nil
	}
	return models.TurnResult{
		Response: fmt.Sprintf(
			"⚠️ I couldn't find booking %s under your account.\n\n"+
				"This booking ID either doesn't exist or doesn't belong to you. "+
				"Would you like me to show your bookings?", bookingID),
		Recommendations: []models.Recommendation{
			{Type: models.RecommendationAction, Text: "Show my bookings"},
		},
	}, nil
}

// showingDetailsFollowUp handles the turn after booking details were shown:
// the user picks a next action or signs off. Returns handled=false when the
// message matched nothing, letting the dispatcher fall back to intent routing.
func (d *Dispatcher) showingDetailsFollowUp(ctx context.Context, turn models.Turn, wf *models.WorkflowState, msg string) (models.TurnResult, bool, error) {
	bookingID := wf.Data(models.DataBookingID)

	redirect := func(h handlerFunc) (models.TurnResult, bool, error) {
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, false, err
		}
		next := turn
		next.Entities = map[models.EntityKey]string{models.EntityBookingID: bookingID}
		res, err := h(ctx, next, nil)
		return res, true, err
	}

	switch {
	case strings.Contains(msg, "cancel"):
		return redirect(d.handleCancelBooking)
	case strings.Contains(msg, "change"), strings.Contains(msg, "modify"):
		return redirect(d.handleChangeFlight)
	case strings.Contains(msg, "upgrade"), strings.Contains(msg, "seat"):
		return redirect(d.handleSeatUpgrade)
	case strings.Contains(msg, "baggage"), strings.Contains(msg, "luggage"):
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, false, err
		}
		res, err := d.handleBaggageInfo(ctx, turn)
		return res, true, err
	case containsAny(msg, "fine", "good", "okay", "thanks", "all set"):
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, false, err
		}
		return models.TurnResult{
			Response: "Great! I'm glad everything looks good. ✈️\n\n" +
				"If you need anything else before your flight, just let me know. " +
				"Have a wonderful trip! 🌟",
		}, true, nil
	}
	return models.TurnResult{}, false, nil
}

// bookingList renders one line per booking for list responses.
func bookingList(bookings []models.Booking) string {
	lines := make([]string, 0, len(bookings))
	for _, b := range bookings {
		lines = append(lines, fmt.Sprintf("🎫 **%s** - Flight %s (%s → %s) on %s",
			b.BookingID, b.FlightNumber, b.Origin, b.Destination, b.DepartureDate))
	}
	return strings.Join(lines, "\n")
}
