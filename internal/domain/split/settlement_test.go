package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checksplit/checksplit-backend/internal/domain/receipt"
)

func TestEvenSplit(t *testing.T) {
	// One pizza, two claimants of one unit each: ten bucks apiece.
	r := &receipt.Receipt{
		Items: []receipt.LineItem{{Name: "Pizza", Quantity: 1, UnitPrice: 20}},
		Total: 20,
	}
	a := NewAssignments(1)
	require.NoError(t, a.Assign(0, 0))
	require.NoError(t, a.Assign(0, 1))

	s, err := ComputeSettlement(r, []string{"Alice", "Bob"}, a)
	require.NoError(t, err)

	require.Len(t, s.Participants, 2)
	for _, p := range s.Participants {
		assert.InDelta(t, 10.00, p.ItemsTotal, 0.001)
		assert.InDelta(t, 10.00, p.Total, 0.001)
		require.Len(t, p.Items, 1)
		assert.Equal(t, "Pizza", p.Items[0].Label)
		assert.Equal(t, 2, p.Items[0].SharedWithCount)
	}
	assert.InDelta(t, 20.00, s.SplitTotal, 0.001)
	assert.InDelta(t, 20.00, s.OriginalTotal, 0.001)
	assert.InDelta(t, 0, s.Drift(), 0.001)
}

func TestProportionalTax(t *testing.T) {
	r := &receipt.Receipt{
		Items: []receipt.LineItem{{Name: "Feast", Quantity: 1, UnitPrice: 100}},
		Tax:   10,
		Total: 110,
	}
	a := NewAssignments(1)
	require.NoError(t, a.Assign(0, 0))

	s, err := ComputeSettlement(r, []string{"Ana"}, a)
	require.NoError(t, err)

	require.Len(t, s.Participants, 1)
	ana := s.Participants[0]
	assert.InDelta(t, 100.00, ana.ItemsTotal, 0.001)
	assert.InDelta(t, 10.00, ana.TaxPortion, 0.001)
	assert.InDelta(t, 110.00, ana.Total, 0.001)
}

func TestUnclaimedItemCostIsLost(t *testing.T) {
	// Nobody claims the only item: nobody owes anything, tax included, and
	// the gap against the stated total is surfaced rather than corrected.
	r := &receipt.Receipt{
		Items: []receipt.LineItem{{Name: "Mystery", Quantity: 1, UnitPrice: 15}},
		Tax:   5,
		Total: 20,
	}
	a := NewAssignments(1)

	s, err := ComputeSettlement(r, []string{"Ana", "Ben"}, a)
	require.NoError(t, err)

	for _, p := range s.Participants {
		assert.Zero(t, p.ItemsTotal)
		assert.Zero(t, p.TaxPortion)
		assert.Zero(t, p.Total)
		assert.Empty(t, p.Items)
	}
	assert.Zero(t, s.SplitTotal)
	assert.InDelta(t, 20.00, s.OriginalTotal, 0.001)
	assert.InDelta(t, -20.00, s.Drift(), 0.001)
}

func TestRoundingDriftIsPreserved(t *testing.T) {
	// 10.00 split three ways rounds to 3.33 each; the lost cent must show up
	// in the split total, not get redistributed.
	r := &receipt.Receipt{
		Items: []receipt.LineItem{{Name: "Jug", Quantity: 1, UnitPrice: 10}},
		Total: 10,
	}
	a := NewAssignments(1)
	for p := 0; p < 3; p++ {
		require.NoError(t, a.Assign(0, p))
	}

	s, err := ComputeSettlement(r, []string{"A", "B", "C"}, a)
	require.NoError(t, err)

	for _, p := range s.Participants {
		assert.InDelta(t, 3.33, p.Total, 0.0001)
	}
	assert.InDelta(t, 9.99, s.SplitTotal, 0.0001)
	assert.InDelta(t, -0.01, s.Drift(), 0.0001)
}

func TestUnderClaimingDoesNotDiscount(t *testing.T) {
	// 3 nominal units, but only 1 unit ever claimed: the sole claimant pays
	// the whole line total.
	r := &receipt.Receipt{
		Items: []receipt.LineItem{{Name: "Beers", Quantity: 3, UnitPrice: 4}},
		Total: 12,
	}
	a := NewAssignments(1)
	require.NoError(t, a.Assign(0, 0))

	s, err := ComputeSettlement(r, []string{"Ana", "Ben"}, a)
	require.NoError(t, err)

	assert.InDelta(t, 12.00, s.Participants[0].ItemsTotal, 0.001)
	assert.Zero(t, s.Participants[1].ItemsTotal)
}

func TestOverAssignmentIsLegal(t *testing.T) {
	// Claims sum past the nominal quantity; allocation still normalizes by
	// the claimed sum.
	r := &receipt.Receipt{
		Items: []receipt.LineItem{{Name: "Wings", Quantity: 1, UnitPrice: 9}},
		Total: 9,
	}
	a := NewAssignments(1)
	require.NoError(t, a.Increase(0, 0))
	require.NoError(t, a.Increase(0, 0))
	require.NoError(t, a.Increase(0, 1))

	s, err := ComputeSettlement(r, []string{"Ana", "Ben"}, a)
	require.NoError(t, err)

	assert.InDelta(t, 6.00, s.Participants[0].ItemsTotal, 0.001)
	assert.InDelta(t, 3.00, s.Participants[1].ItemsTotal, 0.001)
}

func TestItemCostsReconstituteLineTotal(t *testing.T) {
	r := &receipt.Receipt{
		Items: []receipt.LineItem{
			{Name: "Platter", Quantity: 2, UnitPrice: 13.37},
			{Name: "Soda", Quantity: 3, UnitPrice: 2.15},
		},
		Tax: 2.61,
	}
	r.RecomputeTotal()

	a := NewAssignments(2)
	require.NoError(t, a.Increase(0, 0))
	require.NoError(t, a.Increase(0, 1))
	require.NoError(t, a.Increase(0, 1))
	require.NoError(t, a.Increase(1, 2))

	participants := []string{"Ana", "Ben", "Cho"}
	totals := PreviewTotals(r, participants, a)

	var itemsSum, taxSum float64
	for _, pt := range totals {
		itemsSum += pt.ItemsTotal
		taxSum += pt.TaxPortion
	}

	// Every claimed item's cost is fully reconstituted, and tax portions
	// reconstitute the receipt tax while everything is claimed.
	assert.InDelta(t, r.Subtotal(), itemsSum, 1e-9)
	assert.InDelta(t, r.Tax, taxSum, 1e-9)
}

func TestPreviewSkipsBlankNames(t *testing.T) {
	r := &receipt.Receipt{
		Items: []receipt.LineItem{{Name: "Pie", Quantity: 1, UnitPrice: 8}},
		Total: 8,
	}
	a := NewAssignments(1)
	require.NoError(t, a.Assign(0, 0))
	require.NoError(t, a.Assign(0, 2))

	totals := PreviewTotals(r, []string{"Ana", "   ", "Cho"}, a)

	require.Len(t, totals, 2)
	assert.Equal(t, 0, totals[0].Index)
	assert.Equal(t, "Ana", totals[0].Name)
	assert.Equal(t, 2, totals[1].Index)
	assert.Equal(t, "Cho", totals[1].Name)
	assert.InDelta(t, 4.0, totals[0].ItemsTotal, 0.001)
}

func TestBlankSlotClaimsAreIgnored(t *testing.T) {
	// A claim left behind on a blanked-out name slot neither pays nor
	// dilutes the remaining claimants.
	r := &receipt.Receipt{
		Items: []receipt.LineItem{{Name: "Pie", Quantity: 1, UnitPrice: 8}},
		Total: 8,
	}
	a := NewAssignments(1)
	require.NoError(t, a.Assign(0, 0))
	require.NoError(t, a.Assign(0, 1))

	totals := PreviewTotals(r, []string{"Ana", ""}, a)

	require.Len(t, totals, 1)
	assert.InDelta(t, 8.0, totals[0].ItemsTotal, 0.001)
}

func TestPreviewIsUnrounded(t *testing.T) {
	r := &receipt.Receipt{
		Items: []receipt.LineItem{{Name: "Jug", Quantity: 1, UnitPrice: 10}},
		Total: 10,
	}
	a := NewAssignments(1)
	for p := 0; p < 3; p++ {
		require.NoError(t, a.Assign(0, p))
	}

	totals := PreviewTotals(r, []string{"A", "B", "C"}, a)
	assert.InDelta(t, 10.0/3.0, totals[0].Total, 1e-9)
}

func TestSettlementNeedsOneUsableParticipant(t *testing.T) {
	r := receipt.New()
	a := NewAssignments(1)

	_, err := ComputeSettlement(r, nil, a)
	assert.ErrorIs(t, err, ErrNoParticipants)

	_, err = ComputeSettlement(r, []string{"", "  "}, a)
	assert.ErrorIs(t, err, ErrNoParticipants)
}

func TestZeroSubtotalYieldsZeroTax(t *testing.T) {
	r := &receipt.Receipt{
		Items: []receipt.LineItem{{Name: "Freebie", Quantity: 1, UnitPrice: 0}},
		Tax:   3,
		Total: 3,
	}
	a := NewAssignments(1)
	require.NoError(t, a.Assign(0, 0))

	s, err := ComputeSettlement(r, []string{"Ana"}, a)
	require.NoError(t, err)
	assert.Zero(t, s.Participants[0].TaxPortion)
}

func TestRemovingParticipantMatchesNeverHavingThem(t *testing.T) {
	buildReceipt := func() *receipt.Receipt {
		r := &receipt.Receipt{
			Items: []receipt.LineItem{
				{Name: "Tapas", Quantity: 4, UnitPrice: 6.50},
				{Name: "Wine", Quantity: 1, UnitPrice: 18},
			},
			Tax: 4.40,
		}
		r.RecomputeTotal()
		return r
	}

	// World one: Ben (index 1) exists but claims nothing.
	withBen := NewAssignments(2)
	require.NoError(t, withBen.Increase(0, 0))
	require.NoError(t, withBen.Assign(1, 2))
	sWith, err := ComputeSettlement(buildReceipt(), []string{"Ana", "Ben", "Cho"}, withBen)
	require.NoError(t, err)
	withBen.RemoveParticipant(1)
	sAfter, err := ComputeSettlement(buildReceipt(), []string{"Ana", "Cho"}, withBen)
	require.NoError(t, err)

	// World two: Ben never existed.
	without := NewAssignments(2)
	require.NoError(t, without.Increase(0, 0))
	require.NoError(t, without.Assign(1, 1))
	sNever, err := ComputeSettlement(buildReceipt(), []string{"Ana", "Cho"}, without)
	require.NoError(t, err)

	require.Len(t, sAfter.Participants, 2)
	for i := range sNever.Participants {
		assert.Equal(t, sNever.Participants[i].Name, sAfter.Participants[i].Name)
		assert.InDelta(t, sNever.Participants[i].Total, sAfter.Participants[i].Total, 1e-9)
	}

	// And Ana's and Cho's money never depended on Ben being around.
	assert.InDelta(t, sWith.Participants[0].Total, sAfter.Participants[0].Total, 1e-9)
	assert.InDelta(t, sWith.Participants[2].Total, sAfter.Participants[1].Total, 1e-9)
}

func TestSettlementSnapshotsOriginalTotal(t *testing.T) {
	// The parser's stated total is carried into the settlement verbatim even
	// when it disagrees with items+tax.
	r := &receipt.Receipt{
		Items: []receipt.LineItem{{Name: "Pad Thai", Quantity: 1, UnitPrice: 11}},
		Tax:   1,
		Total: 99.99,
	}
	a := NewAssignments(1)
	require.NoError(t, a.Assign(0, 0))

	s, err := ComputeSettlement(r, []string{"Ana"}, a)
	require.NoError(t, err)
	assert.InDelta(t, 99.99, s.OriginalTotal, 0.001)
	assert.InDelta(t, 12.00, s.SplitTotal, 0.001)
}
