// Package session owns the state of one bill being split: the editable
// receipt, the participant roster, the claim map, and the wizard step.
//
// The split math itself is synchronous and single-threaded, but sessions are
// reached through HTTP handlers, so every session guards its state with a
// mutex. Nothing is ever persisted; a session dies with the process or when
// it expires out of the store.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/checksplit/checksplit-backend/internal/domain/receipt"
	"github.com/checksplit/checksplit-backend/internal/domain/split"
	"github.com/checksplit/checksplit-backend/internal/flow"
)

// Session is one interactive bill-splitting run.
type Session struct {
	ID string

	mu           sync.Mutex
	step         flow.Step
	receipt      *receipt.Receipt
	participants []string
	assignments  *split.Assignments
	lastActive   time.Time
}

// New returns a session at the landing step with a minimal blank receipt.
func New(id string) *Session {
	r := receipt.New()
	return &Session{
		ID:           id,
		step:         flow.StepLanding,
		receipt:      r,
		assignments:  split.NewAssignments(len(r.Items)),
		participants: []string{},
		lastActive:   time.Now(),
	}
}

// Step returns the current wizard step.
func (s *Session) Step() flow.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Advance applies a wizard event. On an illegal event the step is unchanged
// and the error is returned.
func (s *Session) Advance(event flow.Event) (flow.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	next, err := flow.Next(s.step, event)
	if err != nil {
		return s.step, err
	}
	s.step = next
	return next, nil
}

// LoadReceipt replaces the receipt with a copy of r and resets all claims.
// The parser's stated total is kept as-is, even when it disagrees with the
// items; only a user edit re-derives it.
func (s *Session) LoadReceipt(r *receipt.Receipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.receipt = r.Clone()
	s.assignments.Reset(len(s.receipt.Items))
}

// Receipt returns a snapshot copy of the current receipt.
func (s *Session) Receipt() *receipt.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.receipt.Clone()
}

// Participants returns a copy of the roster, blank slots included.
func (s *Session) Participants() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.participants))
	copy(out, s.participants)
	return out
}

// AddParticipant appends an empty-named slot and returns its index.
func (s *Session) AddParticipant() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.participants = append(s.participants, "")
	return len(s.participants) - 1
}

// SetParticipantName renames the slot at index.
func (s *Session) SetParticipantName(index int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if index < 0 || index >= len(s.participants) {
		return fmt.Errorf("participant index %d out of range", index)
	}
	s.participants[index] = name
	return nil
}

// RemoveParticipant splices the slot at index out of the roster and shifts
// every claim above it down to match.
func (s *Session) RemoveParticipant(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if index < 0 || index >= len(s.participants) {
		return fmt.Errorf("participant index %d out of range", index)
	}
	s.participants = append(s.participants[:index], s.participants[index+1:]...)
	s.assignments.RemoveParticipant(index)
	return nil
}

// SetItemName edits an item label. Receipt setters keep their silent
// last-known-good policy, so these never fail.
func (s *Session) SetItemName(index int, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.receipt.SetItemName(index, name)
}

// SetItemQuantity edits an item quantity from raw user input.
func (s *Session) SetItemQuantity(index int, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.receipt.SetItemQuantity(index, value)
}

// SetItemPrice edits an item unit price from raw user input.
func (s *Session) SetItemPrice(index int, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.receipt.SetItemPrice(index, value)
}

// SetTax edits the receipt tax from raw user input.
func (s *Session) SetTax(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.receipt.SetTax(value)
}

// AddItem appends a blank item and a matching empty claim slot.
func (s *Session) AddItem() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	idx := s.receipt.AddItem()
	s.assignments.AddItem()
	return idx
}

// RemoveItem removes an item and its claim slot together.
func (s *Session) RemoveItem(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.receipt.RemoveItem(index); err != nil {
		return err
	}
	return s.assignments.RemoveItem(index)
}

// AssignmentAction is one of the four claim mutation primitives.
type AssignmentAction string

const (
	ActionAssign   AssignmentAction = "assign"
	ActionIncrease AssignmentAction = "increase"
	ActionDecrease AssignmentAction = "decrease"
	ActionUnassign AssignmentAction = "unassign"
)

// ApplyAssignment runs one claim mutation.
func (s *Session) ApplyAssignment(action AssignmentAction, item, participant int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if participant < 0 || participant >= len(s.participants) {
		return fmt.Errorf("participant index %d out of range", participant)
	}
	switch action {
	case ActionAssign:
		return s.assignments.Assign(item, participant)
	case ActionIncrease:
		return s.assignments.Increase(item, participant)
	case ActionDecrease:
		return s.assignments.Decrease(item, participant)
	case ActionUnassign:
		return s.assignments.Unassign(item, participant)
	default:
		return fmt.Errorf("unknown assignment action %q", action)
	}
}

// Share reports a participant's current claim on an item.
func (s *Session) Share(item, participant int) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignments.Share(item, participant)
}

// Preview returns the live unrounded running totals.
func (s *Session) Preview() []split.ParticipantTotal {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return split.PreviewTotals(s.receipt, s.participants, s.assignments)
}

// Settle finalizes the split into an immutable settlement.
func (s *Session) Settle() (*split.Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return split.ComputeSettlement(s.receipt, s.participants, s.assignments)
}

// LastActive returns when the session was last touched.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}
