// Package receipt holds the editable receipt model.
//
// A receipt arrives from an external parser and is treated as untrusted: the
// stated total may disagree with the sum of its items plus tax. That
// discrepancy is preserved until the user edits a money field, at which point
// the total is re-derived from the items.
package receipt

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrLastItem is returned when removing an item would leave the receipt empty.
var ErrLastItem = errors.New("receipt must keep at least one item")

// LineItem is one priced, quantified entry on a receipt.
type LineItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"price"`
}

// LineTotal returns quantity times unit price.
func (li LineItem) LineTotal() float64 {
	return li.Quantity * li.UnitPrice
}

// Receipt is the normalized bill: ordered line items, tax, and a total.
type Receipt struct {
	Items []LineItem `json:"items"`
	Tax   float64    `json:"tax"`
	Total float64    `json:"total"`
}

// New returns a receipt with a single blank item, the smallest editable state.
func New() *Receipt {
	return &Receipt{
		Items: []LineItem{{Name: "", Quantity: 1, UnitPrice: 0}},
	}
}

// Subtotal returns the sum of all line totals, excluding tax.
func (r *Receipt) Subtotal() float64 {
	var sum float64
	for _, it := range r.Items {
		sum += it.LineTotal()
	}
	return sum
}

// RecomputeTotal re-derives the stated total from items plus tax.
// Idempotent; the only place the stated total is ever overwritten.
func (r *Receipt) RecomputeTotal() {
	r.Total = r.Subtotal() + r.Tax
}

// SetItemName renames an item. Names carry no money, so no recompute.
func (r *Receipt) SetItemName(index int, name string) {
	if index < 0 || index >= len(r.Items) {
		return
	}
	r.Items[index].Name = name
}

// SetItemQuantity parses value as a real number and applies it.
// Non-numeric or non-positive input is silently ignored: the prior value
// stands and the caller re-renders it.
func (r *Receipt) SetItemQuantity(index int, value string) {
	if index < 0 || index >= len(r.Items) {
		return
	}
	qty, err := parseNumber(value)
	if err != nil || qty <= 0 {
		return
	}
	r.Items[index].Quantity = qty
	r.RecomputeTotal()
}

// SetItemPrice parses value as a real number and applies it.
// Non-numeric or negative input is silently ignored.
func (r *Receipt) SetItemPrice(index int, value string) {
	if index < 0 || index >= len(r.Items) {
		return
	}
	price, err := parseNumber(value)
	if err != nil || price < 0 {
		return
	}
	r.Items[index].UnitPrice = price
	r.RecomputeTotal()
}

// SetTax parses value as a real number and applies it.
// Non-numeric or negative input is silently ignored.
func (r *Receipt) SetTax(value string) {
	tax, err := parseNumber(value)
	if err != nil || tax < 0 {
		return
	}
	r.Tax = tax
	r.RecomputeTotal()
}

// AddItem appends a blank item with quantity 1 and price 0 and returns its
// index. The caller is responsible for extending any assignment map.
func (r *Receipt) AddItem() int {
	r.Items = append(r.Items, LineItem{Name: "", Quantity: 1, UnitPrice: 0})
	return len(r.Items) - 1
}

// RemoveItem removes the item at index and recomputes the total. It refuses
// to remove the last remaining item. The caller is responsible for
// re-indexing any assignment map.
func (r *Receipt) RemoveItem(index int) error {
	if index < 0 || index >= len(r.Items) {
		return errors.New("item index out of range")
	}
	if len(r.Items) == 1 {
		return ErrLastItem
	}
	r.Items = append(r.Items[:index], r.Items[index+1:]...)
	r.RecomputeTotal()
	return nil
}

// Clone returns a deep copy, so settlements can snapshot the receipt without
// aliasing the live items slice.
func (r *Receipt) Clone() *Receipt {
	cp := &Receipt{
		Items: make([]LineItem, len(r.Items)),
		Tax:   r.Tax,
		Total: r.Total,
	}
	copy(cp.Items, r.Items)
	return cp
}

func parseNumber(value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}
	// ParseFloat accepts "NaN" and "Inf" literals; neither is a usable amount.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}
