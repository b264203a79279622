package bitboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bb "github.com/chrisflorin/knightwatch/bitboard"
)

func TestSquareStringRoundTrip(t *testing.T) {
	for _, s := range []string{"a1", "h1", "a8", "h8", "e4", "d5"} {
		sq := bb.ParseSquare(s)
		require.NotEqual(t, bb.NoSquare, sq, "ParseSquare(%q) returned NoSquare", s)
		assert.Equal(t, s, sq.String(), "round trip mismatch for %q", s)
	}
}

func TestSquareNumberingMatchesSpec(t *testing.T) {
	assert.EqualValues(t, 0, bb.ParseSquare("a8"), "expected a8 == 0")
	assert.EqualValues(t, 63, bb.ParseSquare("h1"), "expected h1 == 63")
}

func TestFlipYIsSelfInverse(t *testing.T) {
	for sq := bb.Square(0); sq < 64; sq++ {
		require.Equal(t, sq, bb.FlipY(bb.FlipY(sq)), "FlipY is not self-inverse at square %d", sq)
	}
}

func TestFlipYSwapsRanks(t *testing.T) {
	assert.Equal(t, bb.ParseSquare("a1"), bb.FlipY(bb.ParseSquare("a8")), "expected FlipY(a8) == a1")
	assert.Equal(t, bb.ParseSquare("e5"), bb.FlipY(bb.ParseSquare("e4")), "expected FlipY(e4) == e5")
}

func TestPopCountAndPopLSB(t *testing.T) {
	var set bb.Bitboard
	set |= bb.Bit(bb.ParseSquare("a1"))
	set |= bb.Bit(bb.ParseSquare("h8"))
	set |= bb.Bit(bb.ParseSquare("d4"))
	require.EqualValues(t, 3, set.PopCount(), "expected 3 set bits")

	squares := set.Squares()
	require.Len(t, squares, 3, "expected 3 squares from Squares()")

	// Squares() must return them in ascending index order.
	for i := 1; i < len(squares); i++ {
		assert.Greater(t, squares[i], squares[i-1], "Squares() not ascending: %v", squares)
	}
}

func TestPieceLetterRoundTrip(t *testing.T) {
	for _, p := range []bb.Piece{bb.PAWN, bb.KNIGHT, bb.BISHOP, bb.ROOK, bb.QUEEN, bb.KING} {
		letter := bb.PieceLetter(p)
		assert.Equal(t, p, bb.PieceFromLetter(letter), "piece letter round trip failed for %d: letter=%c", p, letter)
		assert.Equal(t, p, bb.PieceFromLetter(letter|0x20), "lowercase piece letter round trip failed for %d", p)
	}
}

func TestColorOther(t *testing.T) {
	assert.Equal(t, bb.Black, bb.White.Other())
	assert.Equal(t, bb.White, bb.Black.Other())
}
