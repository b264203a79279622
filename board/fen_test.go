package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
)

func TestParseFENStartingPosition(t *testing.T) {
	b, err := board.ParseFEN(board.StartingFEN)
	require.NoError(t, err)
	require.True(t, b.Validate(), "starting position failed Validate()")

	assert.Equal(t, bb.KING, b.PieceAt(bb.ParseSquare("e1")), "expected king on e1")
	assert.Equal(t, bb.KING, b.PieceAt(bb.ParseSquare("e8")), "expected king on e8")
	assert.Equal(t, bb.ParseSquare("e1"), b.KingSquare(bb.White), "WhiteKing square wrong")
	assert.Equal(t, bb.WhiteOO|bb.WhiteOOO|bb.BlackOO|bb.BlackOOO, b.CastleRights, "expected all castle rights at game start")
	assert.Equal(t, bb.NoSquare, b.EnPassant, "expected no en-passant square at game start")
	assert.Equal(t, b.RecomputeHash(), b.HashValue, "hash mismatch on fresh parse")
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		board.StartingFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		b, err := board.ParseFEN(fen)
		require.NoError(t, err, "ParseFEN(%q)", fen)
		assert.Equal(t, fen, b.String(), "round trip mismatch")
	}
}

func TestEnPassantOnlyStoredWhenCapturable(t *testing.T) {
	// Raw FEN claims an en-passant square on d6, but no white pawn
	// stands beside it on the 5th rank (rank index 3) to capture —
	// spec.md's tighter-than-FEN storage policy must drop it.
	b, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)
	assert.Equal(t, bb.NoSquare, b.EnPassant, "expected en-passant to be dropped when not actually capturable")
}

func TestEnPassantKeptWhenCapturable(t *testing.T) {
	b, err := board.ParseFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	require.NoError(t, err)
	assert.Equal(t, bb.ParseSquare("d6"), b.EnPassant, "expected en-passant square d6 to be kept")
}
