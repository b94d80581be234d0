package flow

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

// seatPattern matches seat designators like 12A or 5C.
var seatPattern = regexp.MustCompile(`\b(\d{1,2}[A-F])\b`)

// handleSeatUpgrade drives the seat upgrade state machine:
// waiting_for_id → waiting_for_seat_choice → done. The available seats are
// pinned in the workflow state when the choice step starts, so the offer the
// user saw is the offer they pick from.
func (d *Dispatcher) handleSeatUpgrade(ctx context.Context, turn models.Turn, wf *models.WorkflowState) (models.TurnResult, error) {
	bookingID := turn.Entity(models.EntityBookingID)

	if wf != nil && wf.WorkflowType != models.WorkflowSeatUpgrade {
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, err
		}
		wf = nil
	}

	if wf == nil {
		if bookingID == "" {
			state := newWorkflow(turn.UserID, turn.SessionID, models.WorkflowSeatUpgrade,
				models.StepWaitingForID, nil)
			if err := d.states.Save(ctx, state); err != nil {
				return models.TurnResult{}, err
			}
			return models.TurnResult{
				Response: "I can help you upgrade your seat! Which booking would you like to upgrade? Please provide your booking ID (e.g., BK001).",
			}, nil
		}

		booking, err := d.bookings.GetBooking(bookingID, turn.UserID)
		if err != nil {
			return models.TurnResult{}, err
		}
		if booking == nil {
			return models.TurnResult{
				Response: fmt.Sprintf("I couldn't find booking %s. Please check and try again.", bookingID),
			}, nil
		}

		available := d.bookings.GetAvailableSeats(booking.FlightNumber)
		state := newWorkflow(turn.UserID, turn.SessionID, models.WorkflowSeatUpgrade,
			models.StepWaitingForSeatChoice, map[models.DataKey]string{
				models.DataBookingID:      bookingID,
				models.DataAvailableSeats: strings.Join(available, ","),
			})
		if err := d.states.Save(ctx, state); err != nil {
			return models.TurnResult{}, err
		}

		return models.TurnResult{
			Response: fmt.Sprintf(
				"Great! Your current seat is **%s**.\n\n"+
					"Available seats for upgrade: %s\n\n"+
					"Which seat would you like? Or ask me about the difference between Economy, Premium Economy, and Business Class!",
				booking.SeatNumber, seatListText(available)),
			Recommendations: d.recs.SeatUpgradeRecommendations(booking),
		}, nil
	}

	switch wf.CurrentStep {
	case models.StepWaitingForID:
		return d.upgradeWaitingForID(ctx, turn, wf, bookingID)
	case models.StepWaitingForSeatChoice:
		return d.upgradeSeatChoice(ctx, turn, wf)
	}

	return models.TurnResult{
		Response: "Something went wrong. What would you like to do?",
	}, nil
}

func (d *Dispatcher) upgradeWaitingForID(ctx context.Context, turn models.Turn, wf *models.WorkflowState, bookingID string) (models.TurnResult, error) {
	if bookingID == "" {
		return models.TurnResult{
			Response: "I need your booking ID to look up your seat. Please provide it (e.g., BK001).",
		}, nil
	}

	booking, err := d.bookings.GetBooking(bookingID, turn.UserID)
	if err != nil {
		return models.TurnResult{}, err
	}
	if booking == nil {
		return models.TurnResult{
			Response: "I couldn't find that booking. Could you check the ID?",
		}, nil
	}

	available := d.bookings.GetAvailableSeats(booking.FlightNumber)
	wf.CurrentStep = models.StepWaitingForSeatChoice
	wf.StateData = map[models.DataKey]string{
		models.DataBookingID:      bookingID,
		models.DataAvailableSeats: strings.Join(available, ","),
	}
	if err := d.states.Save(ctx, wf); err != nil {
		return models.TurnResult{}, err
	}

	return models.TurnResult{
		Response: fmt.Sprintf(
			"Current seat: **%s**\n\nAvailable: %s\n\nWhich would you like?",
			booking.SeatNumber, seatListText(available)),
	}, nil
}

func (d *Dispatcher) upgradeSeatChoice(ctx context.Context, turn models.Turn, wf *models.WorkflowState) (models.TurnResult, error) {
	match := seatPattern.FindStringSubmatch(strings.ToUpper(turn.RawText))
	if match == nil {
		return models.TurnResult{
			Response: "Please specify a seat number (e.g., 12A, 5C). Which seat would you like?",
		}, nil
	}

	newSeat := match[1]
	available := splitSeats(wf.Data(models.DataAvailableSeats))
	if !seatAvailable(newSeat, available) {
		return models.TurnResult{
			Response: fmt.Sprintf("Sorry, seat %s isn't available. Available seats are: %s. Which would you prefer?",
				newSeat, strings.Join(available, ", ")),
		}, nil
	}

	result, err := d.bookings.UpgradeSeat(wf.Data(models.DataBookingID), newSeat)
	if err != nil {
		return models.TurnResult{}, err
	}
	if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
		return models.TurnResult{}, err
	}

	if !result.Success {
		return models.TurnResult{
			Response: fmt.Sprintf("❌ %s\n\nWould you like to try another seat?", result.Message),
		}, nil
	}
	return models.TurnResult{
		Response: fmt.Sprintf(
			"✅ Awesome! Your seat has been upgraded to **%s**!\n\n"+
				"💵 Upgrade cost: $%d\n\n"+
				"You're all set! Anything else I can help with?",
			newSeat, result.UpgradeCost),
	}, nil
}

func seatListText(seats []string) string {
	if len(seats) == 0 {
		return "None available"
	}
	return strings.Join(seats, ", ")
}

func splitSeats(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

func seatAvailable(seat string, available []string) bool {
	for _, s := range available {
		if s == seat {
			return true
		}
	}
	return false
}
