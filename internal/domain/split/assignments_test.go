package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignIsIdempotent(t *testing.T) {
	a := NewAssignments(2)

	require.NoError(t, a.Assign(0, 0))
	require.NoError(t, a.Assign(0, 0))

	share, ok := a.Share(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 1.0, share, "second assign must not grow the claim")
}

func TestIncreaseAndDecrease(t *testing.T) {
	a := NewAssignments(1)

	require.NoError(t, a.Increase(0, 3))
	require.NoError(t, a.Increase(0, 3))
	share, _ := a.Share(0, 3)
	assert.Equal(t, 2.0, share)

	require.NoError(t, a.Decrease(0, 3))
	share, _ = a.Share(0, 3)
	assert.Equal(t, 1.0, share)
}

func TestDecreaseToZeroDeletesEntry(t *testing.T) {
	a := NewAssignments(1)
	require.NoError(t, a.Assign(0, 0))

	require.NoError(t, a.Decrease(0, 0))

	_, ok := a.Share(0, 0)
	assert.False(t, ok, "claim must be absent, not present with value 0")
	assert.Empty(t, a.Claims(0))
}

func TestDecreaseOnAbsentClaimIsNoop(t *testing.T) {
	a := NewAssignments(1)
	require.NoError(t, a.Decrease(0, 0))
	_, ok := a.Share(0, 0)
	assert.False(t, ok)
}

func TestUnassign(t *testing.T) {
	a := NewAssignments(1)
	require.NoError(t, a.Increase(0, 1))
	require.NoError(t, a.Increase(0, 1))
	require.NoError(t, a.Increase(0, 1))

	require.NoError(t, a.Unassign(0, 1))
	_, ok := a.Share(0, 1)
	assert.False(t, ok, "unassign deletes regardless of share size")

	// Never-assigned pair is a no-op, not an error.
	require.NoError(t, a.Unassign(0, 9))
}

func TestRemoveItemShiftsClaims(t *testing.T) {
	a := NewAssignments(3)
	require.NoError(t, a.Assign(0, 0))
	require.NoError(t, a.Assign(1, 1))
	require.NoError(t, a.Increase(2, 0))
	require.NoError(t, a.Increase(2, 0))

	require.NoError(t, a.RemoveItem(1))

	assert.Equal(t, 2, a.ItemCount())

	share, ok := a.Share(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 1.0, share)

	// Old item 2 is now item 1; the middle item's claims are gone.
	share, ok = a.Share(1, 0)
	assert.True(t, ok)
	assert.Equal(t, 2.0, share)
	_, ok = a.Share(1, 1)
	assert.False(t, ok)
}

func TestRemoveParticipantReindexes(t *testing.T) {
	a := NewAssignments(2)
	require.NoError(t, a.Assign(0, 0))
	require.NoError(t, a.Assign(0, 1))
	require.NoError(t, a.Increase(0, 2))
	require.NoError(t, a.Increase(0, 2))
	require.NoError(t, a.Assign(1, 1))

	a.RemoveParticipant(1)

	// Participant 0 untouched, old participant 2 is now 1, old 1 dropped.
	share, ok := a.Share(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 1.0, share)

	share, ok = a.Share(0, 1)
	assert.True(t, ok)
	assert.Equal(t, 2.0, share)

	_, ok = a.Share(0, 2)
	assert.False(t, ok)
	assert.Empty(t, a.Claims(1))
}

func TestAssignmentBounds(t *testing.T) {
	t.Run("empty map reports no items", func(t *testing.T) {
		a := NewAssignments(0)
		assert.ErrorIs(t, a.Assign(0, 0), ErrNoItems)
	})

	t.Run("item out of range", func(t *testing.T) {
		a := NewAssignments(1)
		assert.Error(t, a.Assign(1, 0))
		assert.Error(t, a.Increase(-1, 0))
		assert.Error(t, a.RemoveItem(3))
	})

	t.Run("negative participant", func(t *testing.T) {
		a := NewAssignments(1)
		assert.Error(t, a.Assign(0, -1))
	})
}

func TestResetDropsAllClaims(t *testing.T) {
	a := NewAssignments(2)
	require.NoError(t, a.Assign(0, 0))
	require.NoError(t, a.Assign(1, 1))

	a.Reset(3)

	assert.Equal(t, 3, a.ItemCount())
	for i := 0; i < 3; i++ {
		assert.Empty(t, a.Claims(i))
	}
}

func TestAddItemExtendsMap(t *testing.T) {
	a := NewAssignments(1)
	a.AddItem()

	assert.Equal(t, 2, a.ItemCount())
	require.NoError(t, a.Assign(1, 0))
}

func TestClaimsReturnsCopy(t *testing.T) {
	a := NewAssignments(1)
	require.NoError(t, a.Assign(0, 0))

	claims := a.Claims(0)
	claims[0] = 99

	share, _ := a.Share(0, 0)
	assert.Equal(t, 1.0, share)
}
