package movegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
	"github.com/chrisflorin/knightwatch/movegen"
)

func TestCheckEvasionDoubleCheckKingMovesOnly(t *testing.T) {
	// White king e1 double-checked by a black rook on e8 (file) and a
	// black bishop on h4 (diagonal through g3-f2-e1).
	b, err := board.ParseFEN("4r3/8/8/8/7b/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.EqualValues(t, 2, b.CheckingPieces.PopCount(), "expected double check")

	moves := movegen.GenerateAllMoves(&b)
	for _, m := range moves {
		assert.Equal(t, bb.KING, m.MovedPiece(), "expected only king moves under double check")
	}
}

func TestCheckEvasionBlockOrCaptureSlider(t *testing.T) {
	// White king e1 in check from a black rook on e8; a white rook on
	// a4 can block on e4, and nothing can capture the checker directly.
	b, err := board.ParseFEN("4r3/8/8/8/R7/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.EqualValues(t, 1, b.CheckingPieces.PopCount(), "expected single check")

	moves := movegen.GenerateAllMoves(&b)
	assert.True(t, hasMove(moves, "a4e4"), "expected rook block a4e4 among evasions")
}

func TestStalemateHasNoMoves(t *testing.T) {
	b, err := board.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	require.False(t, b.IsInCheck(b.SideToMove), "expected black not to be in check in the stalemate position")

	moves := movegen.GenerateAllMoves(&b)
	assert.Empty(t, moves, "expected stalemate (0 moves)")
}

func TestFoolsMateCheckmateHasNoMoves(t *testing.T) {
	b, err := board.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	require.True(t, b.IsInCheck(b.SideToMove), "expected White to be in check (fool's mate)")

	moves := movegen.GenerateAllMoves(&b)
	assert.Empty(t, moves, "expected checkmate (0 moves)")
}
