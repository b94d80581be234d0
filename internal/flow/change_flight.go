package flow

import (
	"context"
	"fmt"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
	"github.com/SkyDeskLabs/SkyDesk/internal/validate"
)

// handleChangeFlight drives the flight change state machine:
// waiting_for_id → waiting_for_new_date → done.
func (d *Dispatcher) handleChangeFlight(ctx context.Context, turn models.Turn, wf *models.WorkflowState) (models.TurnResult, error) {
	bookingID := turn.Entity(models.EntityBookingID)

	// A booking ID mid-unrelated-workflow means the user moved on.
	if wf != nil && wf.WorkflowType != models.WorkflowChangeFlight && bookingID != "" {
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, err
		}
		wf = nil
	}

	if wf == nil || wf.WorkflowType != models.WorkflowChangeFlight {
		if wf != nil {
			if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
				return models.TurnResult{}, err
			}
		}
		if bookingID == "" {
			state := newWorkflow(turn.UserID, turn.SessionID, models.WorkflowChangeFlight,
				models.StepWaitingForID, nil)
			if err := d.states.Save(ctx, state); err != nil {
				return models.TurnResult{}, err
			}
			return models.TurnResult{
				Response: "I can help you change your flight! Which booking would you like to modify? Please provide your booking ID (e.g., BK001).",
			}, nil
		}

		booking, err := d.bookings.GetBooking(bookingID, turn.UserID)
		if err != nil {
			return models.TurnResult{}, err
		}
		if booking == nil {
			return d.changeBookingNotFound(turn, bookingID)
		}

		state := newWorkflow(turn.UserID, turn.SessionID, models.WorkflowChangeFlight,
			models.StepWaitingForNewDate, map[models.DataKey]string{models.DataBookingID: bookingID})
		if err := d.states.Save(ctx, state); err != nil {
			return models.TurnResult{}, err
		}

		return models.TurnResult{
			Response: fmt.Sprintf(
				"Perfect! Your current booking:\n\n"+
					"✈️ Flight %s on %s\n"+
					"🛫 Route: %s → %s\n\n"+
					"📋 **Change Policy**: %s\n\n"+
					"What's your preferred new date? Please provide it in YYYY-MM-DD format (e.g., 2025-12-01).",
				booking.FlightNumber, booking.DepartureDate, booking.Origin,
				booking.Destination, d.changePolicyText()),
		}, nil
	}

	switch wf.CurrentStep {
	case models.StepWaitingForID:
		return d.changeWaitingForID(ctx, turn, wf, bookingID)
	case models.StepWaitingForNewDate:
		return d.changeWaitingForDate(ctx, turn, wf)
	}

	return models.TurnResult{
		Response: "Something went wrong. Let's start over. What would you like to do?",
	}, nil
}

func (d *Dispatcher) changeWaitingForID(ctx context.Context, turn models.Turn, wf *models.WorkflowState, bookingID string) (models.TurnResult, error) {
	if containsAny(lowered(turn), "show", "all", "list") {
		bookings, err := d.bookings.GetUserBookings(turn.UserID)
		if err != nil {
			return models.TurnResult{}, err
		}
		if len(bookings) == 0 {
			if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
				return models.TurnResult{}, err
			}
			return models.TurnResult{
				Response: "You don't have any active bookings. Would you like to book a new flight?",
			}, nil
		}
		return models.TurnResult{
			Response: fmt.Sprintf("Here are your bookings:\n\n%s\n\nWhich one would you like to change? Just tell me the booking ID.",
				bookingList(bookings)),
		}, nil
	}

	if bookingID == "" {
		return models.TurnResult{
			Response: "I need your booking ID. Please provide it (e.g., BK001), or I can 'show all' your bookings if that helps!",
		}, nil
	}

	booking, err := d.bookings.GetBooking(bookingID, turn.UserID)
	if err != nil {
		return models.TurnResult{}, err
	}
	if booking == nil {
		return models.TurnResult{
			Response: fmt.Sprintf("I couldn't find booking %s. Could you double-check the booking ID?", bookingID),
		}, nil
	}

	wf.CurrentStep = models.StepWaitingForNewDate
	wf.StateData = map[models.DataKey]string{models.DataBookingID: bookingID}
	if err := d.states.Save(ctx, wf); err != nil {
		return models.TurnResult{}, err
	}

	return models.TurnResult{
		Response: fmt.Sprintf(
			"Got it! Current booking:\n\n"+
				"✈️ Flight %s on %s\n"+
				"🛫 Route: %s → %s\n\n"+
				"📋 %s\n\n"+
				"What's your new preferred date? (Format: YYYY-MM-DD)",
			booking.FlightNumber, booking.DepartureDate, booking.Origin,
			booking.Destination, d.changePolicyText()),
	}, nil
}

func (d *Dispatcher) changeWaitingForDate(ctx context.Context, turn models.Turn, wf *models.WorkflowState) (models.TurnResult, error) {
	newDate := turn.Entity(models.EntityDate)
	if newDate == "" {
		return models.TurnResult{
			Response: "I need the new date for your flight.\n\n" +
				"📅 Please provide it in YYYY-MM-DD format\n" +
				"Example: 2025-12-15\n\n" +
				"💡 Make sure the date is in the future!",
		}, nil
	}

	if err := validate.Date(newDate, d.now()); err != nil {
		return models.TurnResult{Response: err.Error()}, nil
	}

	bookingID := wf.Data(models.DataBookingID)
	booking, err := d.bookings.GetBooking(bookingID, turn.UserID)
	if err != nil {
		return models.TurnResult{}, err
	}

	// A cancelled booking cannot be moved; close the workflow out.
	if booking == nil || booking.Status == models.BookingStatusCancelled {
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, err
		}
		return models.TurnResult{
			Response: fmt.Sprintf(
				"⚠️ Booking %s has been cancelled and cannot be modified.\n\n"+
					"Would you like to:\n"+
					"• Check your other bookings?\n"+
					"• Book a new flight?", bookingID),
		}, nil
	}

	result, err := d.bookings.ChangeFlight(bookingID, booking.FlightNumber, newDate)
	if err != nil {
		return models.TurnResult{}, err
	}
	if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
		return models.TurnResult{}, err
	}

	if !result.Success {
		return models.TurnResult{
			Response: fmt.Sprintf("❌ %s\n\nWould you like to try a different date?", result.Message),
		}, nil
	}
	return models.TurnResult{
		Response: fmt.Sprintf(
			"✅ Perfect! Your flight has been changed!\n\n"+
				"📋 Booking: %s\n"+
				"✈️ Flight: %s\n"+
				"📅 New date: %s\n"+
				"🛫 Route: %s → %s\n"+
				"💵 Change fee: $%d\n\n"+
				"You'll receive a confirmation email with your updated itinerary. "+
				"Anything else I can help with?",
			bookingID, booking.FlightNumber, newDate, booking.Origin,
			booking.Destination, result.ChangeFee),
	}, nil
}

func (d *Dispatcher) changeBookingNotFound(turn models.Turn, bookingID string) (models.TurnResult, error) {
	userBookings, err := d.bookings.GetUserBookings(turn.UserID)
	if err != nil {
		return models.TurnResult{}, err
	}
	if len(userBookings) == 0 {
		return models.TurnResult{
			Response: fmt.Sprintf(
				"⚠️ I couldn't find booking %s.\n\n"+
					"You don't have any bookings yet. Would you like to book a flight first?", bookingID),
			Recommendations: []models.Recommendation{
				{Type: models.RecommendationAction, Text: "Book a flight"},
			},
		}, nil
	}
	return models.TurnResult{
		Response: fmt.Sprintf(
			"⚠️ I couldn't find booking %s under your account.\n\n"+
				"Please check the booking ID or view your bookings to find the right one.", bookingID),
		Recommendations: []models.Recommendation{
			{Type: models.RecommendationAction, Text: "Show my bookings"},
		},
	}, nil
}

func (d *Dispatcher) changePolicyText() string {
	policies := d.recs.PolicyRecommendations(models.IntentChangeFlight)
	if len(policies) == 0 {
		return "Change fees apply based on ticket type."
	}
	return policies[0].Content
}
