package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
)

func TestHistoryRepetitionKnightShuffle(t *testing.T) {
	b, err := board.ParseFEN(board.StartingFEN)
	require.NoError(t, err)
	h := board.NewHistory()
	h.Push(b.HashValue, bb.NONE, bb.NONE)

	play := func(uci string) {
		m := move(t, &b, uci)
		child := b.DoMove(m, true)
		h.Push(child.HashValue, m.MovedPiece(), m.Captured())
		b = child
	}

	play("g1f3")
	play("g8f6")
	play("f3g1")
	play("f6g8") // back to the starting position's hash

	require.True(t, h.IsRepetition(b.HashValue), "expected the starting position's hash to have repeated once")
	require.False(t, h.RepeatedAtLeastTwice(b.HashValue), "did not expect a second repetition yet")

	play("g1f3")
	play("g8f6")
	play("f3g1")
	play("f6g8")

	assert.True(t, h.RepeatedAtLeastTwice(b.HashValue), "expected three-fold repetition after the second full cycle")
}

func TestHistoryStopsAtIrreversibleMove(t *testing.T) {
	b, err := board.ParseFEN(board.StartingFEN)
	require.NoError(t, err)
	h := board.NewHistory()
	h.Push(b.HashValue, bb.NONE, bb.NONE)

	m := move(t, &b, "e2e4")
	child := b.DoMove(m, true)
	h.Push(child.HashValue, m.MovedPiece(), m.Captured())

	// A pawn move is irreversible: nothing before it should ever be
	// considered a repeat of a later hash, since captures/pushes change
	// the position's fabric (Zobrist keys differ) but the scan must not
	// walk past the irreversible entry looking for a coincidental match.
	assert.False(t, h.IsRepetition(b.HashValue), "the pre-push hash must not be reachable as a repetition across a pawn move")
}

func TestHistoryPopUndoesLastEntry(t *testing.T) {
	h := board.NewHistory()
	h.Push(1, bb.NONE, bb.NONE)
	h.Push(2, bb.NONE, bb.NONE)
	require.Equal(t, 2, h.Len())

	h.Pop()
	assert.Equal(t, 1, h.Len())
}
