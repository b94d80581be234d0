package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

const offTopicResponse = "I appreciate your question, but I'm specifically designed to help with airline services! 😊\n\n" +
	"I can help you with:\n" +
	"✈️ Booking and managing flights\n" +
	"🎫 Checking booking status\n" +
	"❌ Canceling or changing flights\n" +
	"💺 Seat upgrades\n" +
	"🧳 Baggage information\n" +
	"📋 Policy details\n\n" +
	"What can I help you with today regarding your flight?"

const workflowAbandonedResponse = "No problem! I've cancelled the current process. 👍\n\n" +
	"What would you like to do now? I can help you with:\n" +
	"• Check booking status\n" +
	"• Cancel a booking\n" +
	"• Change flight dates\n" +
	"• Upgrade seats\n" +
	"• Get policy information"

const helpResponse = "I'm here to help! Here's what I can do for you:\n\n" +
	"📋 **Check Bookings**: Say 'check my booking' or 'show booking BK001'\n" +
	"❌ **Cancel**: Say 'cancel my booking' or 'cancel BK001'\n" +
	"🔄 **Change Flight**: Say 'change my flight' or 'modify booking'\n" +
	"💺 **Seat Upgrade**: Say 'upgrade my seat' or 'change seat'\n" +
	"🧳 **Baggage Info**: Ask 'baggage policy' or 'luggage allowance'\n" +
	"📋 **Policies**: Ask about 'cancellation policy', 'change fees', etc.\n\n" +
	"Just talk to me naturally - I'll understand! What would you like to do?"

const unknownIntentResponse = "I'm not quite sure what you're asking about. Let me help you! 😊\n\n" +
	"I can assist with:\n" +
	"✈️ **Flight Management**: Check, cancel, or change bookings\n" +
	"💺 **Seat Upgrades**: Get better seats\n" +
	"🧳 **Baggage Info**: Allowances and fees\n" +
	"📋 **Policies**: Cancellation, changes, refunds\n\n" +
	"What would you like help with today?"

// answerInformational resolves an informational intent to its canned answer.
// Baggage and cancellation policy answers may open a follow-up workflow when
// the session has nothing else in progress.
func (d *Dispatcher) answerInformational(ctx context.Context, turn models.Turn) (models.TurnResult, error) {
	switch turn.Intent {
	case models.IntentBaggageInfo:
		return d.handleBaggageInfo(ctx, turn)
	case models.IntentCancellationPolicy:
		return d.handleCancellationPolicy(ctx, turn)
	case models.IntentGeneralFAQ:
		return d.handleGeneralFAQ(ctx, turn)
	case models.IntentPetTravel:
		return models.TurnResult{Response: petPolicyResponse}, nil
	case models.IntentChildrenPolicy:
		return models.TurnResult{Response: childrenPolicyResponse}, nil
	case models.IntentComplaints:
		return models.TurnResult{Response: complaintsResponse}, nil
	case models.IntentDamagedBag:
		return models.TurnResult{Response: damagedBagResponse}, nil
	case models.IntentMissingBag:
		return models.TurnResult{Response: missingBagResponse}, nil
	case models.IntentDiscounts:
		return models.TurnResult{
			Response:        discountsResponse,
			Recommendations: []models.Recommendation{{Type: models.RecommendationAction, Text: "Book a flight"}},
		}, nil
	case models.IntentFareCheck:
		return models.TurnResult{
			Response:        fareCheckResponse,
			Recommendations: []models.Recommendation{{Type: models.RecommendationAction, Text: "Book a flight"}},
		}, nil
	case models.IntentFlightsInfo:
		return models.TurnResult{
			Response: flightsInfoResponse,
			Recommendations: []models.Recommendation{
				{Type: models.RecommendationAction, Text: "Check booking"},
				{Type: models.RecommendationAction, Text: "Book flight"},
			},
		}, nil
	case models.IntentInsurance:
		return models.TurnResult{
			Response:        insuranceResponse,
			Recommendations: []models.Recommendation{{Type: models.RecommendationAction, Text: "Book flight"}},
		}, nil
	case models.IntentMedicalPolicy:
		return models.TurnResult{Response: medicalPolicyResponse}, nil
	case models.IntentProhibitedItems:
		return models.TurnResult{Response: prohibitedItemsResponse}, nil
	case models.IntentSportsMusicGear:
		return models.TurnResult{
			Response:        sportsMusicGearResponse,
			Recommendations: []models.Recommendation{{Type: models.RecommendationAction, Text: "Book flight"}},
		}, nil
	}
	return models.TurnResult{Response: unknownIntentResponse}, nil
}

// handleGeneralFAQ narrows a vague question to the closest specific policy
// before falling back to the capability overview.
func (d *Dispatcher) handleGeneralFAQ(ctx context.Context, turn models.Turn) (models.TurnResult, error) {
	msg := lowered(turn)
	switch {
	case containsAny(msg, "seat", "sitting"):
		return models.TurnResult{Response: childrenPolicyResponse}, nil
	case containsAny(msg, "pet", "animal"):
		return models.TurnResult{Response: petPolicyResponse}, nil
	case containsAny(msg, "bag", "luggage"):
		return d.handleBaggageInfo(ctx, turn)
	}
	return models.TurnResult{
		Response: "I can help you with information about:\n\n" +
			"✈️ **Flight Operations:**\n" +
			"• Check booking status\n" +
			"• Change or cancel flights\n" +
			"• Seat upgrades\n\n" +
			"📋 **Policies:**\n" +
			"• Pet travel\n" +
			"• Baggage allowance\n" +
			"• Cancellation policy\n" +
			"• Children & infant seating\n\n" +
			"🎫 **Bookings:**\n" +
			"• Book new flights\n" +
			"• Modify existing bookings\n\n" +
			"What would you like to know more about?",
	}, nil
}

// handleBaggageInfo shows the stored baggage policy, tailored by any specific
// angle in the question, and opens a baggage_info workflow for follow-ups
// when the session is otherwise idle.
func (d *Dispatcher) handleBaggageInfo(ctx context.Context, turn models.Turn) (models.TurnResult, error) {
	msg := lowered(turn)

	policies := d.recs.PolicyRecommendations(models.IntentBaggageInfo)
	if len(policies) == 0 {
		return models.TurnResult{
			Response: "Let me get you the baggage information...\n\n" +
				"What specifically would you like to know about baggage?",
		}, nil
	}
	policy := policies[0]

	active, err := d.states.ActiveWorkflow(ctx, turn.SessionID, turn.UserID)
	if err != nil {
		return models.TurnResult{}, err
	}
	if active == nil {
		state := newWorkflow(turn.UserID, turn.SessionID, models.WorkflowBaggageInfo,
			models.StepShowingPolicy, nil)
		if err := d.states.Save(ctx, state); err != nil {
			return models.TurnResult{}, err
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** 🧳\n\n%s\n\n", policy.PolicyName, policy.Content)

	switch {
	case containsAny(msg, "carry", "cabin"):
		sb.WriteString("For carry-on bags: Maximum dimensions are 22x14x9 inches (56x36x23 cm).\n\n")
	case containsAny(msg, "check", "luggage"):
		sb.WriteString("For checked bags: Each bag must weigh less than 50 lbs (23 kg).\n\n")
	case containsAny(msg, "cost", "fee", "price"):
		sb.WriteString("Checked bag fees: $30 for first bag, $40 for second bag.\n\n")
	case containsAny(msg, "prohibited", "restricted", "not allowed"):
		sb.WriteString("⚠️ **Prohibited items** include:\n" +
			"• Flammable materials\n" +
			"• Sharp objects in carry-on\n" +
			"• Liquids over 3.4oz in carry-on\n\n")
	}

	sb.WriteString("Do you have any specific questions about:\n" +
		"• Carry-on allowance?\n" +
		"• Checked baggage fees?\n" +
		"• Prohibited items?\n" +
		"• Excess baggage?\n" +
		"Or would you like help with something else?")

	return models.TurnResult{Response: sb.String()}, nil
}

// handleCancellationPolicy shows the cancellation policy and opens a
// policy_inquiry workflow for follow-ups when the session is otherwise idle.
func (d *Dispatcher) handleCancellationPolicy(ctx context.Context, turn models.Turn) (models.TurnResult, error) {
	policies := d.recs.PolicyRecommendations(models.IntentCancellationPolicy)
	if len(policies) == 0 {
		return models.TurnResult{Response: "Let me get that information for you..."}, nil
	}
	policy := policies[0]

	active, err := d.states.ActiveWorkflow(ctx, turn.SessionID, turn.UserID)
	if err != nil {
		return models.TurnResult{}, err
	}
	if active == nil {
		state := newWorkflow(turn.UserID, turn.SessionID, models.WorkflowPolicyInquiry,
			models.StepShowingPolicy, map[models.DataKey]string{models.DataPolicyType: "cancellation"})
		if err := d.states.Save(ctx, state); err != nil {
			return models.TurnResult{}, err
		}
	}

	return models.TurnResult{
		Response: fmt.Sprintf(
			"**%s** 📋\n\n%s\n\n"+
				"Would you like to:\n"+
				"• Cancel an existing booking?\n"+
				"• Check another policy?\n"+
				"• Or is there something else I can help with?",
			policy.PolicyName, policy.Content),
	}, nil
}

// greet personalizes the greeting when the user already has bookings.
func (d *Dispatcher) greet(turn models.Turn) (models.TurnResult, error) {
	bookings, err := d.bookings.GetUserBookings(turn.UserID)
	if err != nil {
		return models.TurnResult{}, err
	}

	if len(bookings) > 0 {
		return models.TurnResult{
			Response: fmt.Sprintf(
				"Hello! 👋 Welcome back!\n\n"+
					"I can see you have %d active booking(s). "+
					"I'm here to help you with:\n"+
					"• Check your booking details\n"+
					"• Cancel or modify bookings\n"+
					"• Seat upgrades\n"+
					"• Baggage information\n"+
					"• Policy questions\n\n"+
					"What would you like to do today?", len(bookings)),
		}, nil
	}
	return models.TurnResult{
		Response: "Hello! 👋 Welcome to our airline customer service.\n\n" +
			"I'm here to assist you with:\n" +
			"• Checking booking status\n" +
			"• Canceling bookings\n" +
			"• Changing flights\n" +
			"• Seat upgrades\n" +
			"• Baggage and policy information\n\n" +
			"How can I help you today?",
	}, nil
}

// followUp handles the turn after a details or policy answer. handled=false
// means the message matched no follow-up and the dispatcher should fall back
// to intent routing.
func (d *Dispatcher) followUp(ctx context.Context, turn models.Turn, wf *models.WorkflowState, msg string) (models.TurnResult, bool, error) {
	switch wf.WorkflowType {
	case models.WorkflowBookingLookup:
		return d.showingDetailsFollowUp(ctx, turn, wf, msg)
	case models.WorkflowBaggageInfo:
		return d.baggageFollowUp(ctx, turn, wf, msg)
	case models.WorkflowPolicyInquiry:
		return d.policyInquiryFollowUp(ctx, turn, wf, msg)
	}
	return models.TurnResult{}, false, nil
}

func (d *Dispatcher) baggageFollowUp(ctx context.Context, turn models.Turn, wf *models.WorkflowState, msg string) (models.TurnResult, bool, error) {
	switch {
	case containsAny(msg, "carry", "cabin"):
		return models.TurnResult{
			Response: "✈️ **Carry-on Allowance**:\n\n" +
				"• 1 carry-on bag (22x14x9 inches / 56x36x23 cm)\n" +
				"• 1 personal item (purse, laptop bag, etc.)\n" +
				"• Must fit in overhead bin or under seat\n\n" +
				"Anything else you'd like to know about baggage?",
		}, true, nil
	case containsAny(msg, "check", "luggage"):
		return models.TurnResult{
			Response: "🧳 **Checked Baggage**:\n\n" +
				"• First bag: $30\n" +
				"• Second bag: $40\n" +
				"• Maximum weight: 50 lbs (23 kg) per bag\n" +
				"• Maximum dimensions: 62 inches (158 cm) total\n\n" +
				"Need help with anything else?",
		}, true, nil
	case containsAny(msg, "prohibited", "not allowed"):
		return models.TurnResult{
			Response: "⚠️ **Prohibited/Restricted Items**:\n\n" +
				"**Cannot carry at all:**\n" +
				"• Explosives, flammable items\n" +
				"• Weapons (except when checked and declared)\n\n" +
				"**Carry-on restrictions:**\n" +
				"• Liquids over 3.4oz (100ml)\n" +
				"• Sharp objects (scissors, knives)\n" +
				"• Tools\n\n" +
				"These items may be allowed in checked baggage with restrictions.\n\n" +
				"Any other questions?",
		}, true, nil
	case containsAny(msg, "excess", "overweight", "extra"):
		return models.TurnResult{
			Response: "💼 **Excess Baggage Fees**:\n\n" +
				"• Third+ bag: $150 per bag\n" +
				"• Overweight (50-70 lbs): $100 per bag\n" +
				"• Oversized (63-80 inches): $200 per bag\n\n" +
				"Tip: Consider shipping heavy items if you have many bags!\n\n" +
				"What else can I help with?",
		}, true, nil
	case containsAny(msg, "thanks", "that's all", "nothing", "no"):
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, false, err
		}
		return models.TurnResult{
			Response: "Perfect! If you have any other questions about baggage or your flight, " +
				"feel free to ask anytime. Have a great trip! ✈️",
		}, true, nil
	}
	return models.TurnResult{}, false, nil
}

func (d *Dispatcher) policyInquiryFollowUp(ctx context.Context, turn models.Turn, wf *models.WorkflowState, msg string) (models.TurnResult, bool, error) {
	switch {
	case strings.Contains(msg, "cancel"):
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, false, err
		}
		res, err := d.handleCancelBooking(ctx, turn, nil)
		return res, true, err
	case containsAny(msg, "policy", "fee", "refund"):
		return models.TurnResult{
			Response: fmt.Sprintf(
				"📋 **Cancellation Policy**:\n%s\n\n"+
					"Would you like to cancel a booking, or is there something else I can help with?",
				d.cancellationPolicyText()),
		}, true, nil
	case containsAny(msg, "thanks", "that's all", "nothing", "no"):
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, false, err
		}
		return models.TurnResult{
			Response: "You're welcome! If anything else comes up before your trip, just ask. ✈️",
		}, true, nil
	}
	return models.TurnResult{}, false, nil
}
