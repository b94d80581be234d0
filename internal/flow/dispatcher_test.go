package flow

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SkyDeskLabs/SkyDesk/internal/booking"
	"github.com/SkyDeskLabs/SkyDesk/internal/cache"
	"github.com/SkyDeskLabs/SkyDesk/internal/models"
	"github.com/SkyDeskLabs/SkyDesk/internal/recommend"
	"github.com/SkyDeskLabs/SkyDesk/internal/store"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *store.InMemoryStore) {
	t.Helper()
	st := store.NewInMemoryStore()
	st.SeedSampleData()
	states := NewSessionStateManager(st, cache.NewMemoryCache())
	svc := booking.NewService(st, booking.FixedPricing{Refund: 300, Fee: 75, Upgrade: 100})
	d := NewDispatcher(states, svc, recommend.NewEngine(st), nil)
	d.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return d, st
}

func testTurn(intent models.Intent, text string, entities map[models.EntityKey]string) models.Turn {
	return models.Turn{
		UserID:     "user123",
		SessionID:  "sess-1",
		Intent:     intent,
		Confidence: 0.9,
		Entities:   entities,
		RawText:    text,
	}
}

func activeWorkflow(t *testing.T, d *Dispatcher) *models.WorkflowState {
	t.Helper()
	wf, err := d.states.ActiveWorkflow(context.Background(), "sess-1", "user123")
	if err != nil {
		t.Fatalf("ActiveWorkflow: %v", err)
	}
	return wf
}

func process(t *testing.T, d *Dispatcher, turn models.Turn) models.TurnResult {
	t.Helper()
	res, err := d.ProcessTurn(context.Background(), turn)
	if err != nil {
		t.Fatalf("ProcessTurn(%q): %v", turn.RawText, err)
	}
	return res
}

func TestOffTopicNeverTouchesWorkflow(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentCancelBooking, "I want to cancel my booking", nil))
	if wf := activeWorkflow(t, d); wf == nil || wf.WorkflowType != models.WorkflowCancelBooking {
		t.Fatal("expected active cancel workflow")
	}

	res := process(t, d, testTurn(models.IntentUnknown, "what's the weather like today", nil))
	if !strings.Contains(res.Response, "airline services") {
		t.Errorf("expected out-of-scope response, got %q", res.Response)
	}
	if wf := activeWorkflow(t, d); wf == nil || wf.WorkflowType != models.WorkflowCancelBooking {
		t.Error("off-topic turn must not disturb the active workflow")
	}
}

func TestCancelBookingConfirmed(t *testing.T) {
	d, st := newTestDispatcher(t)

	res := process(t, d, testTurn(models.IntentCancelBooking, "I want to cancel my booking", nil))
	if !strings.Contains(res.Response, "Which booking would you like to cancel?") {
		t.Fatalf("expected booking ID prompt, got %q", res.Response)
	}

	res = process(t, d, testTurn(models.IntentUnknown, "BK001",
		map[models.EntityKey]string{models.EntityBookingID: "BK001"}))
	if !strings.Contains(res.Response, "Are you sure you want to cancel?") {
		t.Fatalf("expected confirmation prompt, got %q", res.Response)
	}
	if wf := activeWorkflow(t, d); wf == nil || wf.CurrentStep != models.StepConfirm {
		t.Fatal("expected workflow at confirm step")
	}

	res = process(t, d, testTurn(models.IntentUnknown, "yes", nil))
	if !strings.Contains(res.Response, "cancelled successfully") {
		t.Fatalf("expected cancellation success, got %q", res.Response)
	}
	if !strings.Contains(res.Response, "$300") {
		t.Errorf("expected refund amount in response, got %q", res.Response)
	}

	b, err := st.GetBooking("BK001", "user123")
	if err != nil || b == nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if b.Status != models.BookingStatusCancelled {
		t.Errorf("booking status = %q, want cancelled", b.Status)
	}
	if activeWorkflow(t, d) != nil {
		t.Error("workflow should be completed after cancellation")
	}
}

func TestCancelBookingKept(t *testing.T) {
	d, st := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentCancelBooking, "cancel BK001",
		map[models.EntityKey]string{models.EntityBookingID: "BK001"}))

	res := process(t, d, testTurn(models.IntentUnknown, "no, keep it", nil))
	if !strings.Contains(res.Response, "kept your booking active") {
		t.Fatalf("expected keep response, got %q", res.Response)
	}

	b, _ := st.GetBooking("BK001", "user123")
	if b.Status != models.BookingStatusConfirmed {
		t.Errorf("booking status = %q, want confirmed", b.Status)
	}
	if activeWorkflow(t, d) != nil {
		t.Error("workflow should be completed after declining")
	}
}

func TestCancelConfirmPolicyQuestionKeepsStep(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentCancelBooking, "cancel BK001",
		map[models.EntityKey]string{models.EntityBookingID: "BK001"}))

	res := process(t, d, testTurn(models.IntentUnknown, "what is the fee for this", nil))
	if !strings.Contains(res.Response, "Cancellation Policy") {
		t.Fatalf("expected policy re-show, got %q", res.Response)
	}
	if wf := activeWorkflow(t, d); wf == nil || wf.CurrentStep != models.StepConfirm {
		t.Error("policy question must not move the confirm step")
	}
}

func TestCancelConfirmRedirectsToChange(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentCancelBooking, "cancel BK001",
		map[models.EntityKey]string{models.EntityBookingID: "BK001"}))

	res := process(t, d, testTurn(models.IntentUnknown, "can I reschedule it instead", nil))
	if !strings.Contains(res.Response, "change your flight instead") {
		t.Fatalf("expected change redirect, got %q", res.Response)
	}
	wf := activeWorkflow(t, d)
	if wf == nil || wf.WorkflowType != models.WorkflowChangeFlight || wf.CurrentStep != models.StepWaitingForNewDate {
		t.Fatal("expected pivoted change_flight workflow waiting for date")
	}
	if wf.Data(models.DataBookingID) != "BK001" {
		t.Error("booking ID should survive the pivot")
	}
}

func TestBookFlightCollectsAcrossTurns(t *testing.T) {
	d, st := newTestDispatcher(t)

	res := process(t, d, testTurn(models.IntentBookFlight, "I want to book a flight", nil))
	if !strings.Contains(res.Response, "book a new flight") {
		t.Fatalf("expected booking intro, got %q", res.Response)
	}

	res = process(t, d, testTurn(models.IntentUnknown, "from JFK to LAX",
		map[models.EntityKey]string{
			models.EntityOrigin:      "JFK",
			models.EntityDestination: "LAX",
		}))
	if !strings.Contains(res.Response, "✅ From: JFK") || !strings.Contains(res.Response, "✅ To: LAX") {
		t.Fatalf("expected collected slots echoed, got %q", res.Response)
	}
	if !strings.Contains(res.Response, "travel date, passenger name") {
		t.Fatalf("expected missing slots listed, got %q", res.Response)
	}

	res = process(t, d, testTurn(models.IntentUnknown, "2025-12-25, Alice Smith",
		map[models.EntityKey]string{
			models.EntityDate:          "2025-12-25",
			models.EntityPassengerName: "Alice Smith",
		}))
	if !strings.Contains(res.Response, "Your flight has been booked!") {
		t.Fatalf("expected booking confirmation, got %q", res.Response)
	}
	if !strings.Contains(res.Response, "BK004") {
		t.Errorf("expected new booking ID BK004, got %q", res.Response)
	}

	count, _ := st.CountBookings()
	if count != 4 {
		t.Errorf("CountBookings = %d, want 4", count)
	}
	if activeWorkflow(t, d) != nil {
		t.Error("booking workflow should complete after creation")
	}
}

func TestBookFlightRejectsSameOriginDestination(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentBookFlight, "I want to book a flight", nil))
	res := process(t, d, testTurn(models.IntentUnknown, "JFK, JFK, 2025-12-25, Alice Smith",
		map[models.EntityKey]string{
			models.EntityOrigin:        "JFK",
			models.EntityDestination:   "JFK",
			models.EntityDate:          "2025-12-25",
			models.EntityPassengerName: "Alice Smith",
		}))
	if !strings.Contains(res.Response, "cannot be the same") {
		t.Fatalf("expected same-city rejection, got %q", res.Response)
	}

	wf := activeWorkflow(t, d)
	if wf == nil {
		t.Fatal("workflow should stay active for corrections")
	}
	if wf.Data(models.DataOrigin) != "" || wf.Data(models.DataDestination) != "" {
		t.Error("origin and destination should be cleared")
	}
	if wf.Data(models.DataDate) != "2025-12-25" || wf.Data(models.DataPassengerName) != "Alice Smith" {
		t.Error("valid slots should be retained")
	}
}

func TestBookFlightInvalidDateClearsOnlyDate(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentBookFlight, "I want to book a flight", nil))
	res := process(t, d, testTurn(models.IntentUnknown, "JFK, LAX, 2025-01-01, Alice Smith",
		map[models.EntityKey]string{
			models.EntityOrigin:        "JFK",
			models.EntityDestination:   "LAX",
			models.EntityDate:          "2025-01-01",
			models.EntityPassengerName: "Alice Smith",
		}))
	if !strings.Contains(res.Response, "Please provide a valid date.") {
		t.Fatalf("expected date rejection, got %q", res.Response)
	}

	wf := activeWorkflow(t, d)
	if wf == nil {
		t.Fatal("workflow should stay active")
	}
	if wf.Data(models.DataDate) != "" {
		t.Error("invalid date should be cleared")
	}
	if wf.Data(models.DataOrigin) != "JFK" || wf.Data(models.DataPassengerName) != "Alice Smith" {
		t.Error("other slots should be retained")
	}

	res = process(t, d, testTurn(models.IntentUnknown, "2025-12-25",
		map[models.EntityKey]string{models.EntityDate: "2025-12-25"}))
	if !strings.Contains(res.Response, "Your flight has been booked!") {
		t.Fatalf("expected booking after re-supplying date, got %q", res.Response)
	}
}

func TestBookFlightAnswersMidBookingQuestion(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentBookFlight, "I want to book a flight", nil))
	res := process(t, d, testTurn(models.IntentBookFlight, "can I bring my pet on board", nil))
	if !strings.Contains(res.Response, "Pet Travel Policy") {
		t.Fatalf("expected pet policy answer, got %q", res.Response)
	}
	if wf := activeWorkflow(t, d); wf == nil || wf.WorkflowType != models.WorkflowBookFlight {
		t.Error("question detour must keep the booking workflow active")
	}
}

func TestDisambiguationOnAmbiguousSwitch(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentCancelBooking, "I want to cancel my booking", nil))
	res := process(t, d, testTurn(models.IntentSeatUpgrade, "what about my seat", nil))
	if !strings.Contains(res.Response, "Continue with cancel booking?") ||
		!strings.Contains(res.Response, "Switch to seat upgrade?") {
		t.Fatalf("expected disambiguation question, got %q", res.Response)
	}
	if wf := activeWorkflow(t, d); wf == nil || wf.WorkflowType != models.WorkflowCancelBooking {
		t.Error("ambiguous switch must not disturb the workflow")
	}
}

func TestAutoSwitchOnClearPhrase(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentChangeFlight, "I want to change my flight", nil))
	res := process(t, d, testTurn(models.IntentCancelBooking, "actually I want to cancel", nil))
	if !strings.Contains(res.Response, "Which booking would you like to cancel?") {
		t.Fatalf("expected new cancel workflow, got %q", res.Response)
	}
	if wf := activeWorkflow(t, d); wf == nil || wf.WorkflowType != models.WorkflowCancelBooking {
		t.Error("clear switch phrase should replace the workflow")
	}
}

func TestExplicitNewBookingInterrupts(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentCancelBooking, "cancel BK001",
		map[models.EntityKey]string{models.EntityBookingID: "BK001"}))

	res := process(t, d, testTurn(models.IntentBookFlight, "I want to book a new flight please", nil))
	if !strings.Contains(res.Response, "book a new flight") {
		t.Fatalf("expected booking intro, got %q", res.Response)
	}
	if wf := activeWorkflow(t, d); wf == nil || wf.WorkflowType != models.WorkflowBookFlight {
		t.Error("explicit new booking should replace the workflow")
	}
}

func TestExitAbandonsWorkflow(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentBookFlight, "I want to book a flight", nil))
	res := process(t, d, testTurn(models.IntentUnknown, "forget it", nil))
	if !strings.Contains(res.Response, "I've cancelled the current process") {
		t.Fatalf("expected abandonment response, got %q", res.Response)
	}
	if activeWorkflow(t, d) != nil {
		t.Error("workflow should be completed after abandonment")
	}
}

func TestInformationalMidWorkflowIsStateless(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentCancelBooking, "cancel BK001",
		map[models.EntityKey]string{models.EntityBookingID: "BK001"}))

	res := process(t, d, testTurn(models.IntentChildrenPolicy, "how do kids travel", nil))
	if !strings.Contains(res.Response, "Children & Infant Seating Policy") {
		t.Fatalf("expected children policy, got %q", res.Response)
	}
	if wf := activeWorkflow(t, d); wf == nil || wf.CurrentStep != models.StepConfirm {
		t.Fatal("informational answer must not disturb the confirm step")
	}

	res = process(t, d, testTurn(models.IntentUnknown, "yes", nil))
	if !strings.Contains(res.Response, "cancelled successfully") {
		t.Errorf("expected cancellation to resume, got %q", res.Response)
	}
}

func TestBookingLookupAndFollowUp(t *testing.T) {
	d, _ := newTestDispatcher(t)

	res := process(t, d, testTurn(models.IntentCheckStatus, "show me booking BK001",
		map[models.EntityKey]string{models.EntityBookingID: "BK001"}))
	if !strings.Contains(res.Response, "Here are the details for **BK001**") {
		t.Fatalf("expected booking details, got %q", res.Response)
	}
	if len(res.Recommendations) == 0 {
		t.Error("expected recommendations with booking details")
	}
	if wf := activeWorkflow(t, d); wf == nil || wf.CurrentStep != models.StepShowingDetails {
		t.Fatal("expected showing_details workflow")
	}

	res = process(t, d, testTurn(models.IntentUnknown, "cancel it", nil))
	if !strings.Contains(res.Response, "Are you sure you want to cancel?") {
		t.Fatalf("expected cancel confirmation via follow-up, got %q", res.Response)
	}
	wf := activeWorkflow(t, d)
	if wf == nil || wf.WorkflowType != models.WorkflowCancelBooking || wf.Data(models.DataBookingID) != "BK001" {
		t.Error("follow-up should carry the booking ID into the cancel workflow")
	}
}

func TestBookingLookupFarewellClosesWorkflow(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentCheckStatus, "show me booking BK001",
		map[models.EntityKey]string{models.EntityBookingID: "BK001"}))
	res := process(t, d, testTurn(models.IntentUnknown, "everything looks fine", nil))
	if !strings.Contains(res.Response, "Have a wonderful trip!") {
		t.Fatalf("expected farewell, got %q", res.Response)
	}
	if activeWorkflow(t, d) != nil {
		t.Error("workflow should be completed on sign-off")
	}
}

func TestBookingLookupListsMultipleBookings(t *testing.T) {
	d, _ := newTestDispatcher(t)

	res := process(t, d, testTurn(models.IntentCheckStatus, "show my bookings", nil))
	if !strings.Contains(res.Response, "You have 2 active bookings") {
		t.Fatalf("expected booking list, got %q", res.Response)
	}
	if !strings.Contains(res.Response, "BK001") || !strings.Contains(res.Response, "BK002") {
		t.Errorf("expected both bookings listed, got %q", res.Response)
	}
}

func TestBookingLookupUnknownID(t *testing.T) {
	d, _ := newTestDispatcher(t)

	res := process(t, d, testTurn(models.IntentCheckStatus, "show me booking BK999",
		map[models.EntityKey]string{models.EntityBookingID: "BK999"}))
	if !strings.Contains(res.Response, "couldn't find booking BK999 under your account") {
		t.Fatalf("expected not-found response, got %q", res.Response)
	}
	if len(res.Recommendations) != 1 || res.Recommendations[0].Text != "Show my bookings" {
		t.Errorf("expected show-bookings recommendation, got %+v", res.Recommendations)
	}
}

func TestBookingLookupRetargetsWithoutStrandedWorkflow(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentCheckStatus, "check booking BK001",
		map[models.EntityKey]string{models.EntityBookingID: "BK001"}))
	first := activeWorkflow(t, d)
	if first == nil || first.CurrentStep != models.StepShowingDetails {
		t.Fatal("expected showing_details workflow for the first lookup")
	}

	res := process(t, d, testTurn(models.IntentCheckStatus, "what about BK002",
		map[models.EntityKey]string{models.EntityBookingID: "BK002"}))
	if !strings.Contains(res.Response, "BK002") {
		t.Fatalf("expected BK002 details, got %q", res.Response)
	}

	second := activeWorkflow(t, d)
	if second == nil || second.Data(models.DataBookingID) != "BK002" {
		t.Fatal("expected active workflow targeting BK002")
	}
	if second.WorkflowID == first.WorkflowID {
		t.Fatal("expected a new workflow for the second lookup")
	}

	// Completing the current workflow must leave the session idle; anything
	// still active means two workflows were active at once.
	if err := d.states.Complete(context.Background(), second.WorkflowID, "sess-1"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if stray := activeWorkflow(t, d); stray != nil {
		t.Errorf("workflow %s (type %s) still active after completing the current one, want none",
			stray.WorkflowID, stray.WorkflowType)
	}
}

func TestBookingLookupRepeatedSingleBookingKeepsOneWorkflow(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	turn := models.Turn{
		UserID:     "user456",
		SessionID:  "sess-9",
		Intent:     models.IntentCheckStatus,
		Confidence: 0.9,
		RawText:    "show my booking",
	}
	process(t, d, turn)
	first, err := d.states.ActiveWorkflow(ctx, "sess-9", "user456")
	if err != nil || first == nil {
		t.Fatalf("expected active workflow after first lookup, err=%v", err)
	}

	process(t, d, turn)
	second, err := d.states.ActiveWorkflow(ctx, "sess-9", "user456")
	if err != nil || second == nil {
		t.Fatalf("expected active workflow after second lookup, err=%v", err)
	}
	if second.WorkflowID == first.WorkflowID {
		t.Fatal("expected the repeated lookup to open a fresh workflow")
	}

	if err := d.states.Complete(ctx, second.WorkflowID, "sess-9"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	stray, err := d.states.ActiveWorkflow(ctx, "sess-9", "user456")
	if err != nil {
		t.Fatalf("ActiveWorkflow: %v", err)
	}
	if stray != nil {
		t.Errorf("workflow %s still active after completing the current one, want none", stray.WorkflowID)
	}
}

func TestSeatUpgradeFlow(t *testing.T) {
	d, st := newTestDispatcher(t)

	res := process(t, d, testTurn(models.IntentSeatUpgrade, "upgrade my seat on BK001",
		map[models.EntityKey]string{models.EntityBookingID: "BK001"}))
	if !strings.Contains(res.Response, "Your current seat is **12A**") {
		t.Fatalf("expected current seat, got %q", res.Response)
	}
	if !strings.Contains(res.Response, "15C") {
		t.Errorf("expected available seats listed, got %q", res.Response)
	}

	res = process(t, d, testTurn(models.IntentUnknown, "15C please", nil))
	if !strings.Contains(res.Response, "upgraded to **15C**") {
		t.Fatalf("expected upgrade confirmation, got %q", res.Response)
	}
	if !strings.Contains(res.Response, "$100") {
		t.Errorf("expected upgrade cost, got %q", res.Response)
	}

	b, _ := st.GetBooking("BK001", "user123")
	if b.SeatNumber != "15C" {
		t.Errorf("seat = %q, want 15C", b.SeatNumber)
	}
	if activeWorkflow(t, d) != nil {
		t.Error("workflow should complete after upgrade")
	}
}

func TestSeatUpgradeRejectsUnavailableSeat(t *testing.T) {
	d, _ := newTestDispatcher(t)

	process(t, d, testTurn(models.IntentSeatUpgrade, "upgrade BK001",
		map[models.EntityKey]string{models.EntityBookingID: "BK001"}))
	res := process(t, d, testTurn(models.IntentUnknown, "99F please", nil))
	if !strings.Contains(res.Response, "seat 99F isn't available") {
		t.Fatalf("expected unavailable seat response, got %q", res.Response)
	}
	if wf := activeWorkflow(t, d); wf == nil || wf.CurrentStep != models.StepWaitingForSeatChoice {
		t.Error("workflow should stay at seat choice")
	}
}

func TestChangeFlightFlow(t *testing.T) {
	d, st := newTestDispatcher(t)

	res := process(t, d, testTurn(models.IntentChangeFlight, "change booking BK001",
		map[models.EntityKey]string{models.EntityBookingID: "BK001"}))
	if !strings.Contains(res.Response, "Change Policy") {
		t.Fatalf("expected change policy, got %q", res.Response)
	}

	res = process(t, d, testTurn(models.IntentUnknown, "2025-12-20",
		map[models.EntityKey]string{models.EntityDate: "2025-12-20"}))
	if !strings.Contains(res.Response, "Your flight has been changed!") {
		t.Fatalf("expected change confirmation, got %q", res.Response)
	}
	if !strings.Contains(res.Response, "$75") {
		t.Errorf("expected change fee, got %q", res.Response)
	}

	b, _ := st.GetBooking("BK001", "user123")
	if b.DepartureDate != "2025-12-20" {
		t.Errorf("departure date = %q, want 2025-12-20", b.DepartureDate)
	}
}

func TestChangeFlightRejectsCancelledBooking(t *testing.T) {
	d, st := newTestDispatcher(t)
	if _, err := st.SetBookingStatus("BK001", string(models.BookingStatusCancelled)); err != nil {
		t.Fatalf("SetBookingStatus: %v", err)
	}

	process(t, d, testTurn(models.IntentChangeFlight, "change booking BK001",
		map[models.EntityKey]string{models.EntityBookingID: "BK001"}))
	res := process(t, d, testTurn(models.IntentUnknown, "2025-12-20",
		map[models.EntityKey]string{models.EntityDate: "2025-12-20"}))
	if !strings.Contains(res.Response, "has been cancelled and cannot be modified") {
		t.Fatalf("expected cancelled-booking guard, got %q", res.Response)
	}
	if activeWorkflow(t, d) != nil {
		t.Error("workflow should complete when booking is unusable")
	}
}

func TestChangeFlightShowAllListsBookings(t *testing.T) {
	d, _ := newTestDispatcher(t)

	res := process(t, d, testTurn(models.IntentChangeFlight, "I need to change my flight", nil))
	if !strings.Contains(res.Response, "Which booking would you like to modify?") {
		t.Fatalf("expected booking ID prompt, got %q", res.Response)
	}

	res = process(t, d, testTurn(models.IntentUnknown, "show all my bookings", nil))
	if !strings.Contains(res.Response, "BK001") || !strings.Contains(res.Response, "BK002") {
		t.Fatalf("expected booking list, got %q", res.Response)
	}
	if !strings.Contains(res.Response, "Which one would you like to change?") {
		t.Errorf("expected change re-prompt after listing, got %q", res.Response)
	}
	if wf := activeWorkflow(t, d); wf == nil || wf.CurrentStep != models.StepWaitingForID {
		t.Error("listing bookings must keep the workflow waiting for an ID")
	}

	res = process(t, d, testTurn(models.IntentUnknown, "BK002",
		map[models.EntityKey]string{models.EntityBookingID: "BK002"}))
	if !strings.Contains(res.Response, "What's your new preferred date?") {
		t.Fatalf("expected date prompt after picking from the list, got %q", res.Response)
	}
}

func TestBaggageInfoFollowUps(t *testing.T) {
	d, _ := newTestDispatcher(t)

	res := process(t, d, testTurn(models.IntentBaggageInfo, "tell me the baggage policy", nil))
	if !strings.Contains(res.Response, "🧳") {
		t.Fatalf("expected baggage policy, got %q", res.Response)
	}
	if wf := activeWorkflow(t, d); wf == nil || wf.WorkflowType != models.WorkflowBaggageInfo {
		t.Fatal("expected baggage_info workflow")
	}

	res = process(t, d, testTurn(models.IntentUnknown, "what about carry on bags", nil))
	if !strings.Contains(res.Response, "Carry-on Allowance") {
		t.Fatalf("expected carry-on follow-up, got %q", res.Response)
	}

	res = process(t, d, testTurn(models.IntentUnknown, "thanks", nil))
	if !strings.Contains(res.Response, "Have a great trip!") {
		t.Fatalf("expected farewell, got %q", res.Response)
	}
	if activeWorkflow(t, d) != nil {
		t.Error("baggage workflow should complete on thanks")
	}
}

func TestCancellationPolicyInquiry(t *testing.T) {
	d, _ := newTestDispatcher(t)

	res := process(t, d, testTurn(models.IntentCancellationPolicy, "what is your cancellation policy", nil))
	if !strings.Contains(res.Response, "Cancel an existing booking?") {
		t.Fatalf("expected policy inquiry response, got %q", res.Response)
	}
	wf := activeWorkflow(t, d)
	if wf == nil || wf.WorkflowType != models.WorkflowPolicyInquiry {
		t.Fatal("expected policy_inquiry workflow")
	}
	if wf.Data(models.DataPolicyType) != "cancellation" {
		t.Errorf("policy_type = %q, want cancellation", wf.Data(models.DataPolicyType))
	}
}

func TestGreetingPersonalizedByBookings(t *testing.T) {
	d, _ := newTestDispatcher(t)

	res := process(t, d, testTurn(models.IntentGreeting, "hello", nil))
	if !strings.Contains(res.Response, "2 active booking(s)") {
		t.Errorf("expected personalized greeting, got %q", res.Response)
	}

	fresh := testTurn(models.IntentGreeting, "hello", nil)
	fresh.UserID = "user-without-bookings"
	fresh.SessionID = "sess-2"
	res = process(t, d, fresh)
	if !strings.Contains(res.Response, "Welcome to our airline customer service") {
		t.Errorf("expected generic greeting, got %q", res.Response)
	}
}

func TestUnknownIntentFallback(t *testing.T) {
	d, _ := newTestDispatcher(t)

	res := process(t, d, testTurn(models.IntentUnknown, "blargh", nil))
	if !strings.Contains(res.Response, "not quite sure what you're asking about") {
		t.Errorf("expected fallback, got %q", res.Response)
	}
}

func TestTurnValidation(t *testing.T) {
	d, _ := newTestDispatcher(t)

	bad := testTurn(models.IntentGreeting, "hello", nil)
	bad.UserID = ""
	if _, err := d.ProcessTurn(context.Background(), bad); err == nil {
		t.Error("expected validation error for empty user ID")
	}
}
