// Package split turns a receipt, a participant list, and a sparse claim map
// into per-person totals with proportional tax.
//
// Costs are allocated by claimed share, not by an item's nominal quantity:
// if one person claims 1 of 3 listed units and nobody else claims any, that
// person owes the whole line total. Items nobody claims cost nobody anything.
package split

import (
	"errors"
	"fmt"
)

var (
	// ErrNoItems is returned for assignment operations on an empty receipt.
	ErrNoItems = errors.New("need at least one item")

	// ErrNoParticipants is returned when a settlement is requested with no
	// usable (non-blank) participants.
	ErrNoParticipants = errors.New("need at least one participant")
)

// Assignments tracks how many units of each item every participant claims.
// Storage is one claim map per item, so removing an item is a splice with no
// key shifting. Claims are stepped by whole units through the mutation
// primitives; an entry that would drop to zero is deleted, never stored.
type Assignments struct {
	items []map[int]float64
}

// NewAssignments returns an empty claim map sized to itemCount items.
func NewAssignments(itemCount int) *Assignments {
	a := &Assignments{}
	a.Reset(itemCount)
	return a
}

// Reset discards all claims and resizes to itemCount items. Called whenever a
// receipt is (re)loaded.
func (a *Assignments) Reset(itemCount int) {
	if itemCount < 0 {
		itemCount = 0
	}
	a.items = make([]map[int]float64, itemCount)
	for i := range a.items {
		a.items[i] = make(map[int]float64)
	}
}

// ItemCount returns the number of item slots.
func (a *Assignments) ItemCount() int {
	return len(a.items)
}

// AddItem appends an empty claim slot for a newly added receipt item.
func (a *Assignments) AddItem() {
	a.items = append(a.items, make(map[int]float64))
}

// RemoveItem drops the claim slot at index; later slots shift down with it.
func (a *Assignments) RemoveItem(index int) error {
	if err := a.checkItem(index); err != nil {
		return err
	}
	a.items = append(a.items[:index], a.items[index+1:]...)
	return nil
}

// RemoveParticipant drops the participant's claims on every item and shifts
// higher participant indices down by one, mirroring a splice of the
// participant list.
func (a *Assignments) RemoveParticipant(index int) {
	if index < 0 {
		return
	}
	for i, claims := range a.items {
		next := make(map[int]float64, len(claims))
		for p, share := range claims {
			switch {
			case p < index:
				next[p] = share
			case p > index:
				next[p-1] = share
			}
		}
		a.items[i] = next
	}
}

// Assign claims one unit of an item for a participant. Idempotent: a second
// call on an already-claimed pair changes nothing.
func (a *Assignments) Assign(item, participant int) error {
	if err := a.check(item, participant); err != nil {
		return err
	}
	if _, ok := a.items[item][participant]; ok {
		return nil
	}
	a.items[item][participant] = 1
	return nil
}

// Increase adds one unit to a participant's claim, creating it at 1.
func (a *Assignments) Increase(item, participant int) error {
	if err := a.check(item, participant); err != nil {
		return err
	}
	a.items[item][participant]++
	return nil
}

// Decrease removes one unit from a participant's claim. A claim that would
// reach zero is deleted outright.
func (a *Assignments) Decrease(item, participant int) error {
	if err := a.check(item, participant); err != nil {
		return err
	}
	share, ok := a.items[item][participant]
	if !ok {
		return nil
	}
	if share <= 1 {
		delete(a.items[item], participant)
		return nil
	}
	a.items[item][participant] = share - 1
	return nil
}

// Unassign deletes a participant's claim on an item regardless of its size.
func (a *Assignments) Unassign(item, participant int) error {
	if err := a.check(item, participant); err != nil {
		return err
	}
	delete(a.items[item], participant)
	return nil
}

// Share returns a participant's claim on an item and whether one exists.
func (a *Assignments) Share(item, participant int) (float64, bool) {
	if item < 0 || item >= len(a.items) {
		return 0, false
	}
	share, ok := a.items[item][participant]
	return share, ok
}

// Claims returns a copy of the claim map for one item.
func (a *Assignments) Claims(item int) map[int]float64 {
	if item < 0 || item >= len(a.items) {
		return nil
	}
	out := make(map[int]float64, len(a.items[item]))
	for p, share := range a.items[item] {
		out[p] = share
	}
	return out
}

func (a *Assignments) checkItem(index int) error {
	if len(a.items) == 0 {
		return ErrNoItems
	}
	if index < 0 || index >= len(a.items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	return nil
}

func (a *Assignments) check(item, participant int) error {
	if err := a.checkItem(item); err != nil {
		return err
	}
	if participant < 0 {
		return fmt.Errorf("participant index %d out of range", participant)
	}
	return nil
}
