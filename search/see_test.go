package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
	"github.com/chrisflorin/knightwatch/search"
)

func TestSEEWinningPawnTakesQueen(t *testing.T) {
	b, err := board.ParseFEN("4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	got := search.SEE(&b, bb.ParseSquare("e4"), bb.ParseSquare("d5"))
	assert.Positive(t, got, "pawn takes undefended queen should be a clear win")
}

func TestSEELosingQueenTakesDefendedPawn(t *testing.T) {
	b, err := board.ParseFEN("4k3/3p4/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	got := search.SEE(&b, bb.ParseSquare("d1"), bb.ParseSquare("d7"))
	assert.Negative(t, got, "queen taking a pawn defended by the king should lose material")
}

func TestSEEEqualTradeRooks(t *testing.T) {
	// Doubled black rooks on the d-file recapture on d5 after White's
	// rook takes, so the exchange nets to zero rather than winning a
	// rook outright.
	b, err := board.ParseFEN("3r3k/8/8/3r4/8/8/8/3R3K w - - 0 1")
	require.NoError(t, err)
	got := search.SEE(&b, bb.ParseSquare("d1"), bb.ParseSquare("d5"))
	assert.Zero(t, got, "a defended rook-for-rook trade should net zero")
}

func TestSEEQuickReturnIgnoresDefender(t *testing.T) {
	// White pawn takes a black rook defended by the black king; the
	// quick-return shortcut fires because Value[rook] > Value[pawn],
	// ignoring the recapture entirely.
	b, err := board.ParseFEN("8/8/3k4/4r3/3P4/8/8/K7 w - - 0 1")
	require.NoError(t, err)
	got := search.SEE(&b, bb.ParseSquare("d4"), bb.ParseSquare("e5"))
	assert.Equal(t, search.SeeValue[bb.ROOK]-search.SeeValue[bb.PAWN], got)
}
