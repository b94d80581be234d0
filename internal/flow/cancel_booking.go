package flow

import (
	"context"
	"fmt"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

// handleCancelBooking drives the cancellation state machine:
// waiting_for_id → confirm → done. The confirm step also answers policy
// questions in place and can pivot the same workflow into a flight change.
func (d *Dispatcher) handleCancelBooking(ctx context.Context, turn models.Turn, wf *models.WorkflowState) (models.TurnResult, error) {
	bookingID := turn.Entity(models.EntityBookingID)
	msg := lowered(turn)

	if wf != nil && wf.WorkflowType != models.WorkflowCancelBooking {
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, err
		}
		wf = nil
	}

	if wf == nil {
		if bookingID == "" {
			state := newWorkflow(turn.UserID, turn.SessionID, models.WorkflowCancelBooking,
				models.StepWaitingForID, nil)
			if err := d.states.Save(ctx, state); err != nil {
				return models.TurnResult{}, err
			}
			return models.TurnResult{
				Response: "I can help you cancel your booking. Which booking would you like to cancel? Please provide your booking ID (e.g., BK001), or I can show you all your bookings if you'd like!",
			}, nil
		}

		booking, err := d.bookings.GetBooking(bookingID, turn.UserID)
		if err != nil {
			return models.TurnResult{}, err
		}
		if booking == nil {
			return models.TurnResult{
				Response: fmt.Sprintf("I couldn't find booking %s. Could you check the booking ID again? Or type 'show my bookings' to see all your reservations.", bookingID),
			}, nil
		}

		state := newWorkflow(turn.UserID, turn.SessionID, models.WorkflowCancelBooking,
			models.StepConfirm, map[models.DataKey]string{models.DataBookingID: bookingID})
		if err := d.states.Save(ctx, state); err != nil {
			return models.TurnResult{}, err
		}

		return models.TurnResult{
			Response: fmt.Sprintf(
				"I found your booking:\n\n"+
					"✈️ Flight %s on %s\n"+
					"🛫 Route: %s → %s\n"+
					"💺 Seat: %s\n\n"+
					"📋 **Cancellation Policy**: %s\n\n"+
					"Are you sure you want to cancel? Reply **'yes'** to confirm or **'no'** if you'd like to keep it. "+
					"You can also ask me about changing the flight instead!",
				booking.FlightNumber, booking.DepartureDate, booking.Origin,
				booking.Destination, booking.SeatNumber, d.cancellationPolicyText()),
		}, nil
	}

	switch wf.CurrentStep {
	case models.StepWaitingForID:
		return d.cancelWaitingForID(ctx, turn, wf, bookingID, msg)
	case models.StepConfirm:
		return d.cancelConfirm(ctx, turn, wf, msg)
	}

	return models.TurnResult{
		Response: "I'm not sure what happened. Let's start over. What would you like to do?",
	}, nil
}

func (d *Dispatcher) cancelWaitingForID(ctx context.Context, turn models.Turn, wf *models.WorkflowState, bookingID, msg string) (models.TurnResult, error) {
	if containsAny(msg, "show", "all", "list") {
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
			Response: fmt.Sprintf("Here are your bookings:\n\n%s\n\nWhich one would you like to cancel? Just tell me the booking ID.",
				bookingList(bookings)),
		}, nil
	}

	if bookingID == "" {
		return models.TurnResult{
			Response: "I need your booking ID to proceed. Please provide it (e.g., BK001), or I can 'show all' your bookings if that helps!",
		}, nil
	}

	booking, err := d.bookings.GetBooking(bookingID, turn.UserID)
	if err != nil {
		return models.TurnResult{}, err
	}
	if booking == nil {
		return models.TurnResult{
			Response: fmt.Sprintf("I couldn't find booking %s. Could you please double-check the booking ID? Or type 'show all' to see your bookings.", bookingID),
		}, nil
	}

	wf.CurrentStep = models.StepConfirm
	wf.StateData = map[models.DataKey]string{models.DataBookingID: bookingID}
	if err := d.states.Save(ctx, wf); err != nil {
		return models.TurnResult{}, err
	}

	return models.TurnResult{
		Response: fmt.Sprintf(
			"Got it! Here's your booking:\n\n"+
				"✈️ Flight %s on %s\n"+
				"🛫 Route: %s → %s\n"+
				"💺 Seat: %s\n\n"+
				"📋 **Cancellation Policy**: %s\n\n"+
				"Are you sure you want to cancel? Reply **'yes'** to proceed or **'no'** to keep it. "+
				"You can also ask about changing the flight date instead!",
			booking.FlightNumber, booking.DepartureDate, booking.Origin,
			booking.Destination, booking.SeatNumber, d.cancellationPolicyText()),
	}, nil
}

func (d *Dispatcher) cancelConfirm(ctx context.Context, turn models.Turn, wf *models.WorkflowState, msg string) (models.TurnResult, error) {
	// A change request at the brink of cancelling pivots the workflow rather
	// than losing the booking context.
	if containsAny(msg, "change", "modify", "reschedule") {
		wf.WorkflowType = models.WorkflowChangeFlight
		wf.CurrentStep = models.StepWaitingForNewDate
		wf.StateData = map[models.DataKey]string{models.DataBookingID: wf.Data(models.DataBookingID)}
		if err := d.states.Save(ctx, wf); err != nil {
			return models.TurnResult{}, err
		}
		return models.TurnResult{
			Response: "Great! Let's change your flight instead of canceling it. " +
				"What's your preferred new date? Please provide it in YYYY-MM-DD format (e.g., 2025-12-01).",
		}, nil
	}

	// Policy questions are answered in place, the confirm step stays put.
	if containsAny(msg, "policy", "fee", "refund", "cost") {
		return models.TurnResult{
			Response: fmt.Sprintf(
				"📋 **Cancellation Policy**:\n%s\n\n"+
					"Do you still want to proceed with cancellation? Reply 'yes' or 'no'.",
				d.cancellationPolicyText()),
		}, nil
	}

	if containsAny(msg, "yes", "confirm", "sure", "proceed") {
		bookingID := wf.Data(models.DataBookingID)
		result, err := d.bookings.CancelBooking(bookingID)
		if err != nil {
			return models.TurnResult{}, err
		}
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, err
		}

		if !result.Success {
			return models.TurnResult{
				Response: fmt.Sprintf("❌ Oops! %s\n\nWould you like to try again, or can I help you with something else?", result.Message),
			}, nil
		}
		return models.TurnResult{
			Response: fmt.Sprintf(
				"✅ All done! Your booking %s has been cancelled successfully.\n\n"+
					"💰 Refund amount: $%d\n"+
					"⏰ Your refund will be processed within 5-7 business days.\n\n"+
					"You'll receive a confirmation email shortly. Is there anything else I can help you with? "+
					"Maybe book a new flight or check other bookings?",
				bookingID, result.RefundAmount),
		}, nil
	}

	if containsAny(msg, "no", "nevermind", "keep", "don't", "cancel") {
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, err
		}
		return models.TurnResult{
			Response: "No problem! I've kept your booking active. 👍\n\n" +
				"Is there anything else I can help you with? Maybe:\n" +
				"• Change your flight date?\n" +
				"• Upgrade your seat?\n" +
				"• Check baggage allowance?",
		}, nil
	}

	return models.TurnResult{
		Response: "I didn't quite catch that. To cancel the booking, reply **'yes'**. " +
			"To keep it, reply **'no'**. Or if you'd like to change the flight instead, just say 'change flight'!",
	}, nil
}

// cancellationPolicyText pulls the cancellation policy from the
// recommendation engine, with a fallback when none is configured.
func (d *Dispatcher) cancellationPolicyText() string {
	policies := d.recs.PolicyRecommendations(models.IntentCancelBooking)
	if len(policies) == 0 {
		return "Standard cancellation fees may apply."
	}
	return policies[0].Content
}
