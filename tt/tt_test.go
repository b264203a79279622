package tt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
	"github.com/chrisflorin/knightwatch/tt"
)

func TestNewSizesToPowerOfTwo(t *testing.T) {
	table := tt.New(1)
	n := table.Len()
	assert.Zero(t, n&(n-1), "expected a power-of-two slot count, got %d", n)
}

func TestProbeMissOnEmptyTable(t *testing.T) {
	table := tt.New(1)
	_, _, _, _, ok := table.Probe(0xdeadbeef)
	assert.False(t, ok, "expected a miss on an empty table")
}

func TestStoreThenProbeRoundTrips(t *testing.T) {
	table := tt.New(1)
	m := board.NewMove(bb.ParseSquare("e2"), bb.ParseSquare("e4"), bb.NONE, bb.PAWN, bb.NONE)
	table.Store(42, 150, 6, tt.EXACT, m)
	et, score, depth, custom, ok := table.Probe(42)
	require.True(t, ok, "expected a hit after Store")
	assert.Equal(t, tt.EXACT, et)
	assert.EqualValues(t, 150, score)
	assert.EqualValues(t, 6, depth)
	assert.Equal(t, m, custom)
}

func TestProbeCollisionOnDifferentHashIsAMiss(t *testing.T) {
	table := tt.New(1)
	n := uint64(table.Len())
	table.Store(n, 1, 1, tt.EXACT, 0) // index 0, same as hash 0
	_, _, _, _, ok := table.Probe(0)
	assert.False(t, ok, "expected a full-hash mismatch at the same index to miss")
}

func TestStoreRejectsShallowerEntryAtSameAge(t *testing.T) {
	table := tt.New(1)
	table.Store(7, 100, 10, tt.EXACT, 0)
	table.Store(7, 200, 3, tt.EXACT, 0)
	_, score, depth, _, ok := table.Probe(7)
	require.True(t, ok)
	assert.EqualValues(t, 100, score, "expected the deeper same-generation entry to survive")
	assert.EqualValues(t, 10, depth)
}

func TestStoreAcceptsDeeperEntryAtSameAge(t *testing.T) {
	table := tt.New(1)
	table.Store(7, 100, 3, tt.EXACT, 0)
	table.Store(7, 200, 10, tt.EXACT, 0)
	_, score, depth, _, ok := table.Probe(7)
	require.True(t, ok)
	assert.EqualValues(t, 200, score, "expected the deeper store to replace the shallow one")
	assert.EqualValues(t, 10, depth)
}

func TestIncrementAgeAllowsShallowerOverwrite(t *testing.T) {
	table := tt.New(1)
	table.Store(7, 100, 10, tt.EXACT, 0)
	table.IncrementAge()
	table.Store(7, 999, 1, tt.UPPER, 0)
	_, score, depth, _, ok := table.Probe(7)
	require.True(t, ok)
	assert.EqualValues(t, 999, score, "expected a stale-generation entry to be replaced regardless of depth")
	assert.EqualValues(t, 1, depth)
}

func TestStorePreservesHashMoveWhenNewStoreHasNone(t *testing.T) {
	table := tt.New(1)
	m := board.NewMove(bb.ParseSquare("g1"), bb.ParseSquare("f3"), bb.NONE, bb.KNIGHT, bb.NONE)
	table.Store(7, 100, 3, tt.EXACT, m)
	table.Store(7, 120, 5, tt.EXACT, 0)
	_, _, _, custom, ok := table.Probe(7)
	require.True(t, ok)
	assert.Equal(t, m, custom, "expected the prior hash move to survive a move-less overwrite")
}

func TestClearResetsTable(t *testing.T) {
	table := tt.New(1)
	table.Store(7, 100, 10, tt.EXACT, 0)
	table.Clear()
	_, _, _, _, ok := table.Probe(7)
	assert.False(t, ok, "expected Clear to wipe all entries")
}
