// Package flow models the bill-splitting wizard as an explicit state machine.
//
// The machine is owned by the presentation layer: the allocation engine is
// callable from any step and knows nothing about it. Steps advance through
// named events; illegal events are rejected without changing state.
package flow

import "fmt"

// Step is one screen of the wizard.
type Step string

const (
	StepLanding      Step = "landing"
	StepUpload       Step = "upload"
	StepParticipants Step = "participants"
	StepReview       Step = "review"
	StepAssign       Step = "assign"
	StepResults      Step = "results"
)

// Event is a named transition between steps.
type Event string

const (
	EventStart        Event = "start"         // landing -> upload
	EventScanned      Event = "scanned"       // upload -> participants
	EventParticipants Event = "participants"  // participants -> review
	EventAssignItems  Event = "assign_items"  // review -> assign
	EventFinish       Event = "finish"        // assign -> results
	EventBack         Event = "back"          // one step backwards
	EventReset        Event = "reset"         // anywhere -> landing
)

var transitions = map[Step]map[Event]Step{
	StepLanding: {
		EventStart: StepUpload,
	},
	StepUpload: {
		EventScanned: StepParticipants,
		EventBack:    StepLanding,
	},
	StepParticipants: {
		EventParticipants: StepReview,
		EventBack:         StepUpload,
	},
	StepReview: {
		EventAssignItems: StepAssign,
		EventBack:        StepParticipants,
	},
	StepAssign: {
		EventFinish: StepResults,
		EventBack:   StepReview,
	},
	StepResults: {
		EventBack: StepAssign,
	},
}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Next applies event to the current step and returns the resulting step.
// Reset is legal from every step. Any other illegal event is an error and the
// caller keeps its current step.
func Next(current Step, event Event) (Step, error) {
	if event == EventReset {
		return StepLanding, nil
	}
	outgoing, ok := transitions[current]
	if !ok {
		return current, fmt.Errorf("unknown step %q", current)
	}
	next, ok := outgoing[event]
	if !ok {
		return current, fmt.Errorf("event %q is not valid from step %q", event, current)
	}
	return next, nil
}
