package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/SkyDeskLabs/SkyDesk/internal/booking"
	"github.com/SkyDeskLabs/SkyDesk/internal/models"
	"github.com/SkyDeskLabs/SkyDesk/internal/validate"
)

// questionIndicators catch turns that look like policy questions rather than
// booking details, so a mid-booking "can I bring my dog?" gets an answer
// instead of being force-fit into a slot.
var questionIndicators = []string{
	"is there", "are there", "do you", "can i", "can you",
	"what is", "what are", "how much", "how many", "tell me",
	"policy", "allowed", "special", "children", "infant", "pet",
	"file", "complaint", "complain", "damaged", "missing", "lost",
	"discount", "deal", "fare", "price", "schedule", "insurance",
	"medical", "prohibited", "sport", "music", "instrument",
}

// handleBookFlight collects the four booking slots across turns, validates
// them once complete, and creates the booking.
func (d *Dispatcher) handleBookFlight(ctx context.Context, turn models.Turn, wf *models.WorkflowState) (models.TurnResult, error) {
	msg := lowered(turn)

	// Questions mid-booking are re-classified and answered without touching
	// the collected slots.
	if containsAny(msg, questionIndicators...) {
		res := d.classifier.Classify(ctx, turn.RawText)
		if res.Intent.IsInformational() {
			info := turn
			info.Intent = res.Intent
			info.Confidence = res.Confidence
			return d.answerInformational(ctx, info)
		}
	}

	if wf != nil && wf.WorkflowType != models.WorkflowBookFlight {
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, err
		}
		wf = nil
	}

	if wf == nil {
		state := newWorkflow(turn.UserID, turn.SessionID, models.WorkflowBookFlight,
			models.StepCollectingDetails, nil)
		if err := d.states.Save(ctx, state); err != nil {
			return models.TurnResult{}, err
		}
		return models.TurnResult{
			Response: "Great! Let me help you book a new flight. ✈️\n\n" +
				"I'll need the following information:\n" +
				"📍 Departure city (e.g., JFK, LAX)\n" +
				"📍 Destination city (e.g., ORD, MIA)\n" +
				"📅 Travel date (YYYY-MM-DD format)\n" +
				"👤 Passenger name\n\n" +
				"You can provide them all at once or one at a time!",
		}, nil
	}

	// Fold this turn's entities into the collected slots; stored values only
	// give way to non-empty new ones.
	wf.MergeData(map[models.DataKey]string{
		models.DataOrigin:        turn.Entity(models.EntityOrigin),
		models.DataDestination:   turn.Entity(models.EntityDestination),
		models.DataDate:          turn.Entity(models.EntityDate),
		models.DataPassengerName: turn.Entity(models.EntityPassengerName),
	})

	if missing := missingBookingSlots(wf); len(missing) > 0 {
		if err := d.states.Save(ctx, wf); err != nil {
			return models.TurnResult{}, err
		}
		return models.TurnResult{Response: bookingProgressText(wf, missing)}, nil
	}

	// All slots present; validate in a fixed order and clear only the slot
	// that failed so the user re-supplies just that one.
	if err := validate.Date(wf.Data(models.DataDate), d.now()); err != nil {
		return d.rejectBookingSlot(ctx, turn, wf, models.DataDate, err, "Please provide a valid date.")
	}
	if err := validate.PassengerName(wf.Data(models.DataPassengerName)); err != nil {
		return d.rejectBookingSlot(ctx, turn, wf, models.DataPassengerName, err, "Please provide a valid passenger name.")
	}
	if err := validate.AirportCode(wf.Data(models.DataOrigin), "Departure city"); err != nil {
		return d.rejectBookingSlot(ctx, turn, wf, models.DataOrigin, err, "Please provide a valid departure city.")
	}
	if err := validate.AirportCode(wf.Data(models.DataDestination), "Destination city"); err != nil {
		return d.rejectBookingSlot(ctx, turn, wf, models.DataDestination, err, "Please provide a valid destination city.")
	}

	origin := wf.Data(models.DataOrigin)
	destination := wf.Data(models.DataDestination)
	if strings.EqualFold(origin, destination) {
		wf.ClearData(models.DataOrigin)
		wf.ClearData(models.DataDestination)
		if err := d.states.Save(ctx, wf); err != nil {
			return models.TurnResult{}, err
		}
		return models.TurnResult{
			Response: fmt.Sprintf(
				"⚠️ Origin and destination cannot be the same!\n\n"+
					"You selected %s for both. "+
					"Please provide different departure and destination cities.", origin),
		}, nil
	}

	result, err := d.bookings.CreateBooking(models.Booking{
		UserID:        turn.UserID,
		FlightNumber:  booking.NewBookingFlightNumber,
		PassengerName: wf.Data(models.DataPassengerName),
		DepartureDate: wf.Data(models.DataDate),
		Origin:        origin,
		Destination:   destination,
	})
	if err != nil {
		return models.TurnResult{}, err
	}
	if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
		return models.TurnResult{}, err
	}

	if !result.Success {
		return models.TurnResult{
			Response: "❌ Sorry, there was an error creating your booking.\n\n" +
				"Please try again or contact customer support.",
		}, nil
	}
	return models.TurnResult{
		Response: fmt.Sprintf(
			"✅ Perfect! Your flight has been booked!\n\n"+
				"📋 Booking ID: %s\n"+
				"✈️ Flight: %s\n"+
				"👤 Passenger: %s\n"+
				"📅 Date: %s\n"+
				"🛫 Route: %s → %s\n\n"+
				"You'll receive a confirmation email shortly. "+
				"Is there anything else I can help you with?",
			result.BookingID, booking.NewBookingFlightNumber,
			wf.Data(models.DataPassengerName), wf.Data(models.DataDate), origin, destination),
	}, nil
}

// rejectBookingSlot clears the failing slot, persists the rest, and asks for
// a replacement value.
func (d *Dispatcher) rejectBookingSlot(ctx context.Context, turn models.Turn, wf *models.WorkflowState, slot models.DataKey, vErr error, ask string) (models.TurnResult, error) {
	wf.ClearData(slot)
	if err := d.states.Save(ctx, wf); err != nil {
		return models.TurnResult{}, err
	}
	return models.TurnResult{Response: vErr.Error() + "\n\n" + ask}, nil
}

// missingBookingSlots lists what is still needed, in prompt order.
func missingBookingSlots(wf *models.WorkflowState) []string {
	var missing []string
	if wf.Data(models.DataOrigin) == "" {
		missing = append(missing, "departure city")
	}
	if wf.Data(models.DataDestination) == "" {
		missing = append(missing, "destination city")
	}
	if wf.Data(models.DataDate) == "" {
		missing = append(missing, "travel date")
	}
	if wf.Data(models.DataPassengerName) == "" {
		missing = append(missing, "passenger name")
	}
	return missing
}

// bookingProgressText acknowledges what has been collected and asks for the
// rest.
func bookingProgressText(wf *models.WorkflowState, missing []string) string {
	var sb strings.Builder
	sb.WriteString("Thanks! ")
	if len(wf.StateData) > 0 {
		sb.WriteString("Here's what I have so far:\n")
		if v := wf.Data(models.DataOrigin); v != "" {
			fmt.Fprintf(&sb, "✅ From: %s\n", v)
		}
		if v := wf.Data(models.DataDestination); v != "" {
			fmt.Fprintf(&sb, "✅ To: %s\n", v)
		}
		if v := wf.Data(models.DataDate); v != "" {
			fmt.Fprintf(&sb, "✅ Date: %s\n", v)
		}
		if v := wf.Data(models.DataPassengerName); v != "" {
			fmt.Fprintf(&sb, "✅ Passenger: %s\n", v)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "I still need: %s\n\n", strings.Join(missing, ", "))
	sb.WriteString("Please provide the missing information.")
	return sb.String()
}
