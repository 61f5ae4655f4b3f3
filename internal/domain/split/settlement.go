package split

import (
	"math"
	"strings"

	"github.com/checksplit/checksplit-backend/internal/domain/receipt"
)

// SettlementItem is one line of a participant's audit trail: what they
// claimed, what it cost them, and how many people it was shared with.
type SettlementItem struct {
	Label           string  `json:"label"`
	Cost            float64 `json:"cost"`
	SharedWithCount int     `json:"shared_with_count"`
}

// ParticipantSettlement is one person's final breakdown.
type ParticipantSettlement struct {
	Name       string           `json:"name"`
	ItemsTotal float64          `json:"items_total"`
	TaxPortion float64          `json:"tax_portion"`
	Total      float64          `json:"total"`
	Items      []SettlementItem `json:"items"`
}

// Settlement is the final result of a split. It is produced fresh on every
// computation and never mutated afterwards. SplitTotal is the sum of the
// independently rounded participant totals and may differ from OriginalTotal
// by a few cents; the discrepancy is surfaced, not corrected.
type Settlement struct {
	Participants  []ParticipantSettlement `json:"participants"`
	Subtotal      float64                 `json:"subtotal"`
	Tax           float64                 `json:"tax"`
	OriginalTotal float64                 `json:"original_total"`
	SplitTotal    float64                 `json:"split_total"`
}

// Drift returns how far the per-person rounding moved the split away from the
// receipt's stated total. This is the accuracy flag shown to the user.
func (s *Settlement) Drift() float64 {
	return roundToCents(s.SplitTotal - s.OriginalTotal)
}

// ParticipantTotal is the lightweight live preview of one person's running
// share, unrounded.
type ParticipantTotal struct {
	Index      int     `json:"index"`
	Name       string  `json:"name"`
	ItemsTotal float64 `json:"items_total"`
	TaxPortion float64 `json:"tax_portion"`
	Total      float64 `json:"total"`
}

// PreviewTotals computes every usable participant's running share from
// scratch. It is a pure projection of current state: no rounding, no caching.
// Participants whose trimmed name is blank are skipped; their index slots
// stay meaningful for the claim map.
func PreviewTotals(r *receipt.Receipt, participants []string, a *Assignments) []ParticipantTotal {
	raw := computeRaw(r, participants, a)

	out := make([]ParticipantTotal, 0, len(participants))
	for idx, name := range participants {
		if strings.TrimSpace(name) == "" {
			continue
		}
		pr := raw[idx]
		out = append(out, ParticipantTotal{
			Index:      idx,
			Name:       name,
			ItemsTotal: pr.itemsTotal,
			TaxPortion: pr.taxPortion,
			Total:      pr.itemsTotal + pr.taxPortion,
		})
	}
	return out
}

// ComputeSettlement finalizes the split. Each participant's items total, tax
// portion, and total are rounded to cents independently, which is where the
// documented cent-level drift against the stated total comes from.
func ComputeSettlement(r *receipt.Receipt, participants []string, a *Assignments) (*Settlement, error) {
	usable := 0
	for _, name := range participants {
		if strings.TrimSpace(name) != "" {
			usable++
		}
	}
	if usable == 0 {
		return nil, ErrNoParticipants
	}

	raw := computeRaw(r, participants, a)

	s := &Settlement{
		Participants:  make([]ParticipantSettlement, 0, usable),
		Subtotal:      r.Subtotal(),
		Tax:           r.Tax,
		OriginalTotal: r.Total,
	}

	for idx, name := range participants {
		if strings.TrimSpace(name) == "" {
			continue
		}
		pr := raw[idx]
		ps := ParticipantSettlement{
			Name:       name,
			ItemsTotal: roundToCents(pr.itemsTotal),
			TaxPortion: roundToCents(pr.taxPortion),
			Total:      roundToCents(pr.itemsTotal + pr.taxPortion),
			Items:      make([]SettlementItem, 0, len(pr.items)),
		}
		for _, it := range pr.items {
			ps.Items = append(ps.Items, SettlementItem{
				Label:           it.label,
				Cost:            roundToCents(it.cost),
				SharedWithCount: it.sharedWith,
			})
		}
		s.SplitTotal = roundToCents(s.SplitTotal + ps.Total)
		s.Participants = append(s.Participants, ps)
	}

	return s, nil
}

type rawItem struct {
	label      string
	cost       float64
	sharedWith int
}

type rawResult struct {
	itemsTotal float64
	taxPortion float64
	items      []rawItem
}

// computeRaw runs the allocation over every participant slot. Blank-name
// slots are skipped entirely: their claims neither receive cost nor count in
// an item's claimed sum.
func computeRaw(r *receipt.Receipt, participants []string, a *Assignments) []rawResult {
	results := make([]rawResult, len(participants))

	usable := func(p int) bool {
		return p < len(participants) && strings.TrimSpace(participants[p]) != ""
	}

	for i, item := range r.Items {
		claims := a.Claims(i)

		var totalClaimed float64
		claimants := 0
		for p, share := range claims {
			if usable(p) {
				totalClaimed += share
				claimants++
			}
		}
		if totalClaimed == 0 {
			// Unclaimed item: its cost is simply lost, not redistributed.
			continue
		}

		lineTotal := item.LineTotal()
		for p, share := range claims {
			if !usable(p) {
				continue
			}
			cost := share / totalClaimed * lineTotal
			results[p].itemsTotal += cost
			results[p].items = append(results[p].items, rawItem{
				label:      item.Name,
				cost:       cost,
				sharedWith: claimants,
			})
		}
	}

	// Tax is proportional to each person's share of the items subtotal. The
	// denominator includes unclaimed items, so under-claiming shrinks the tax
	// actually collected.
	subtotal := r.Subtotal()
	if subtotal > 0 {
		for p := range results {
			results[p].taxPortion = results[p].itemsTotal / subtotal * r.Tax
		}
	}

	return results
}

// roundToCents rounds a float to 2 decimal places, half away from zero.
func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
