package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SkyDeskLabs/SkyDesk/internal/booking"
	"github.com/SkyDeskLabs/SkyDesk/internal/models"
	"github.com/SkyDeskLabs/SkyDesk/internal/nlu"
	"github.com/SkyDeskLabs/SkyDesk/internal/recommend"
)

// handlerFunc processes one turn for a task workflow. wf is the session's
// active workflow, or nil when the handler should start fresh.
type handlerFunc func(ctx context.Context, turn models.Turn, wf *models.WorkflowState) (models.TurnResult, error)

// offTopicKeywords short-circuit turns that are out of scope for an airline
// assistant.
var offTopicKeywords = []string{
	"weather", "news", "joke", "story", "recipe", "game",
	"calculate", "math", "translate", "define", "wikipedia",
	"sports", "movie", "music", "restaurant", "hotel",
}

// switchPhrases signal an explicit request to abandon the current task for
// another.
var switchPhrases = []string{"switch", "change to", "start"}

// continuePhrases signal the user wants to keep going with the current task.
var continuePhrases = []string{"continue", "yes", "proceed", "go ahead"}

// autoSwitchPhrases make a mid-workflow task change unambiguous, so no
// disambiguation question is needed.
var autoSwitchPhrases = []string{"instead", "actually", "i want to", "let me", "help me"}

// exitPhrases abandon the active workflow outright.
var exitPhrases = []string{"exit", "quit", "stop", "cancel this", "start over", "forget it"}

// newBookingPhrases let book_flight interrupt any workflow when the user is
// explicit about starting over with a new reservation.
var newBookingPhrases = []string{"book a new", "book new", "new flight", "need to book"}

// Dispatcher routes each turn: continue the active workflow, switch tasks,
// disambiguate, answer informational questions statelessly, or abandon.
type Dispatcher struct {
	states     *SessionStateManager
	bookings   booking.Service
	recs       recommend.Provider
	classifier nlu.Classifier

	// now anchors date validation; tests pin it.
	now func() time.Time

	taskHandlers   map[models.Intent]handlerFunc
	resumeHandlers map[models.WorkflowType]handlerFunc
}

// NewDispatcher wires the dispatcher with its collaborators. classifier may
// be nil, in which case mid-booking question detection uses keyword rules.
func NewDispatcher(states *SessionStateManager, bookings booking.Service, recs recommend.Provider, classifier nlu.Classifier) *Dispatcher {
	if classifier == nil {
		classifier = nlu.NewKeywordClassifier()
	}
	d := &Dispatcher{
		states:     states,
		bookings:   bookings,
		recs:       recs,
		classifier: classifier,
		now:        time.Now,
	}
	d.taskHandlers = map[models.Intent]handlerFunc{
		models.IntentCheckStatus:   d.handleBookingLookup,
		models.IntentCancelBooking: d.handleCancelBooking,
		models.IntentChangeFlight:  d.handleChangeFlight,
		models.IntentSeatUpgrade:   d.handleSeatUpgrade,
		models.IntentBookFlight:    d.handleBookFlight,
	}
	d.resumeHandlers = map[models.WorkflowType]handlerFunc{
		models.WorkflowBookingLookup: d.handleBookingLookup,
		models.WorkflowCancelBooking: d.handleCancelBooking,
		models.WorkflowChangeFlight:  d.handleChangeFlight,
		models.WorkflowSeatUpgrade:   d.handleSeatUpgrade,
		models.WorkflowBookFlight:    d.handleBookFlight,
	}
	return d
}

// ProcessTurn applies the precedence rules for one turn. The rules are
// ordered and first-match-wins; the order is part of the conversational
// contract.
func (d *Dispatcher) ProcessTurn(ctx context.Context, turn models.Turn) (models.TurnResult, error) {
	if err := turn.Validate(); err != nil {
		return models.TurnResult{}, err
	}

	msg := strings.ToLower(turn.RawText)
	slog.Debug("flow.processing turn", "userID", turn.UserID, "sessionID", turn.SessionID,
		"intent", turn.Intent, "confidence", turn.Confidence)

	// Rule 1: out-of-domain topics never touch workflow state.
	if containsAny(msg, offTopicKeywords...) {
		return models.TurnResult{Response: offTopicResponse}, nil
	}

	wf, err := d.states.ActiveWorkflow(ctx, turn.SessionID, turn.UserID)
	if err != nil {
		return models.TurnResult{}, err
	}

	// Rule 2: nothing in progress, route by intent.
	if wf == nil {
		return d.dispatchIntent(ctx, turn, nil)
	}

	// Rule 3: an explicit "book a new flight" interrupts anything.
	if turn.Intent == models.IntentBookFlight && containsAny(msg, newBookingPhrases...) {
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, err
		}
		return d.dispatchIntent(ctx, turn, nil)
	}

	// Rule 4: explicit switch phrasing abandons the current task.
	if containsAny(msg, switchPhrases...) {
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, err
		}
		if turn.Intent.IsTaskIntent() {
			return d.dispatchIntent(ctx, turn, nil)
		}
		if h := d.inferTaskHandler(msg); h != nil {
			return h(ctx, turn, nil)
		}
		return d.dispatchIntent(ctx, turn, nil)
	}

	// Rule 5: generic continuation language resumes the current task.
	if containsAny(msg, continuePhrases...) {
		if h, ok := d.resumeHandlers[wf.WorkflowType]; ok {
			return h(ctx, turn, wf)
		}
	}

	// Rule 6: data relevant to the current step wins over a mismatched
	// intent classification.
	if stepRelevantData(wf, turn, msg) {
		if h, ok := d.resumeHandlers[wf.WorkflowType]; ok {
			return h(ctx, turn, wf)
		}
	}

	// Rule 7: a different task intent mid-workflow either auto-switches on a
	// clear signal or asks for disambiguation.
	if turn.Intent.IsTaskIntent() &&
		models.WorkflowType(turn.Intent) != wf.WorkflowType && !sameTask(turn.Intent, wf.WorkflowType) {
		if turn.Entity(models.EntityBookingID) != "" || containsAny(msg, autoSwitchPhrases...) {
			if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
				return models.TurnResult{}, err
			}
			return d.dispatchIntent(ctx, turn, nil)
		}
		return models.TurnResult{
			Response: fmt.Sprintf(
				"I see you're currently in the middle of a %s process. Would you like to:\n"+
					"• Continue with %s?\n"+
					"• Switch to %s?\n\n"+
					"Just let me know what you'd prefer!",
				taskName(wf.WorkflowType), taskName(wf.WorkflowType), intentName(turn.Intent)),
		}, nil
	}

	// Rule 8: informational questions are answered statelessly, the active
	// workflow stays put.
	if turn.Intent.IsInformational() {
		return d.answerInformational(ctx, turn)
	}

	// Rule 9: abandonment language completes the workflow.
	if containsAny(msg, exitPhrases...) {
		if err := d.states.Complete(ctx, wf.WorkflowID, turn.SessionID); err != nil {
			return models.TurnResult{}, err
		}
		return models.TurnResult{Response: workflowAbandonedResponse}, nil
	}

	// Rule 10: nothing else matched, resume the active workflow.
	if wf.WorkflowType == models.WorkflowBookingLookup || wf.WorkflowType == models.WorkflowBaggageInfo ||
		wf.WorkflowType == models.WorkflowPolicyInquiry {
		res, handled, err := d.followUp(ctx, turn, wf, msg)
		if err != nil {
			return models.TurnResult{}, err
		}
		if handled {
			return res, nil
		}
		return d.dispatchIntent(ctx, turn, wf)
	}
	if h, ok := d.resumeHandlers[wf.WorkflowType]; ok {
		return h(ctx, turn, wf)
	}
	return d.dispatchIntent(ctx, turn, wf)
}

// dispatchIntent routes a turn with no workflow context to consider (rule 2).
func (d *Dispatcher) dispatchIntent(ctx context.Context, turn models.Turn, wf *models.WorkflowState) (models.TurnResult, error) {
	if h, ok := d.taskHandlers[turn.Intent]; ok {
		return h(ctx, turn, wf)
	}
	if turn.Intent.IsInformational() {
		return d.answerInformational(ctx, turn)
	}
	switch turn.Intent {
	case models.IntentGreeting:
		return d.greet(turn)
	case models.IntentHelp:
		return models.TurnResult{Response: helpResponse}, nil
	default:
		return models.TurnResult{Response: unknownIntentResponse}, nil
	}
}

// stepRelevantData reports whether the turn carries data the current step is
// waiting for.
func stepRelevantData(wf *models.WorkflowState, turn models.Turn, msg string) bool {
	switch {
	case wf.WorkflowType == models.WorkflowChangeFlight && wf.CurrentStep == models.StepWaitingForNewDate:
		return turn.Entity(models.EntityDate) != "" || containsDigit(msg)
	case wf.WorkflowType == models.WorkflowCancelBooking && wf.CurrentStep == models.StepConfirm:
		return containsAny(msg, "yes", "no", "confirm", "cancel")
	case wf.WorkflowType == models.WorkflowBookFlight && wf.CurrentStep == models.StepCollectingDetails:
		return turn.Entity(models.EntityOrigin) != "" || turn.Entity(models.EntityDestination) != "" ||
			turn.Entity(models.EntityDate) != "" || turn.Entity(models.EntityPassengerName) != "" ||
			containsDigit(msg)
	case wf.CurrentStep == models.StepWaitingForID:
		return turn.Entity(models.EntityBookingID) != ""
	case wf.CurrentStep == models.StepWaitingForSeatChoice:
		return seatPattern.MatchString(strings.ToUpper(msg))
	}
	return false
}

// inferTaskHandler maps switch-phrase keywords to a task handler when the
// classified intent is not itself a task.
func (d *Dispatcher) inferTaskHandler(msg string) handlerFunc {
	switch {
	case strings.Contains(msg, "cancel"):
		return d.handleCancelBooking
	case strings.Contains(msg, "change"), strings.Contains(msg, "modify"):
		return d.handleChangeFlight
	case strings.Contains(msg, "upgrade"), strings.Contains(msg, "seat"):
		return d.handleSeatUpgrade
	case strings.Contains(msg, "book"):
		return d.handleBookFlight
	}
	return nil
}

// sameTask treats the check_status intent and the booking_lookup workflow as
// one task.
func sameTask(intent models.Intent, wfType models.WorkflowType) bool {
	return intent == models.IntentCheckStatus && wfType == models.WorkflowBookingLookup
}

func taskName(t models.WorkflowType) string {
	return strings.ReplaceAll(string(t), "_", " ")
}

func intentName(i models.Intent) string {
	return strings.ReplaceAll(string(i), "_", " ")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func lowered(turn models.Turn) string {
	return strings.ToLower(turn.RawText)
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
