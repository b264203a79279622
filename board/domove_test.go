package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
)

func move(t *testing.T, b *board.Board, uci string) board.Move {
	t.Helper()
	m, ok := board.ParseMoveInBoard(b, uci)
	require.True(t, ok, "could not parse move %q", uci)
	return m
}

func TestDoMoveQuietPawnPush(t *testing.T) {
	b, err := board.ParseFEN(board.StartingFEN)
	require.NoError(t, err)

	child := b.DoMove(move(t, &b, "e2e4"), true)
	require.True(t, child.Validate(), "child board failed Validate() after e2e4")

	assert.Equal(t, bb.NONE, child.PieceAt(bb.ParseSquare("e2")), "expected e2 empty after the push")
	assert.Equal(t, bb.PAWN, child.PieceAt(bb.ParseSquare("e4")), "expected a pawn on e4")
	assert.Equal(t, bb.NoSquare, child.EnPassant, "expected no en-passant square: no black pawn can capture on e3")
	assert.Equal(t, bb.Black, child.SideToMove, "expected side to move to flip to Black")
	// Parent must be untouched (copy-on-write).
	assert.Equal(t, bb.PAWN, b.PieceAt(bb.ParseSquare("e2")), "parent board was mutated by DoMove")
}

func TestDoMoveCaptureClearsBitboards(t *testing.T) {
	b, err := board.ParseFEN("4k3/8/8/8/8/2n5/1P6/4K3 w - - 0 1")
	require.NoError(t, err)

	child := b.DoMove(move(t, &b, "b2c3"), true)
	require.True(t, child.Validate(), "child board failed Validate() after capture")

	assert.Equal(t, bb.PAWN, child.PieceAt(bb.ParseSquare("c3")), "expected the white pawn on c3 after the capture")
	assert.Zero(t, child.Pieces(bb.Black, bb.KNIGHT), "expected the captured knight's bitboard bit cleared")
	assert.NotZero(t, child.Pieces(bb.White, bb.ALL)&bb.Bit(bb.ParseSquare("c3")), "expected white's ALL bitboard to include c3")
}

func TestDoMoveEnPassantCapture(t *testing.T) {
	b, err := board.ParseFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	require.NoError(t, err)

	child := b.DoMove(move(t, &b, "e5d6"), true)
	require.True(t, child.Validate(), "child board failed Validate() after en-passant capture")

	assert.Equal(t, bb.PAWN, child.PieceAt(bb.ParseSquare("d6")), "expected the capturing pawn on d6")
	assert.Equal(t, bb.NONE, child.PieceAt(bb.ParseSquare("d5")), "expected the captured pawn's square d5 to be empty")
	assert.Equal(t, child.RecomputeHash(), child.HashValue, "hash not maintained incrementally through en-passant capture")
}

func TestDoMoveCastlingMovesBothPieces(t *testing.T) {
	b, err := board.ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	child := b.DoMove(move(t, &b, "e1g1"), true)
	require.True(t, child.Validate(), "child board failed Validate() after castling")

	assert.Equal(t, bb.KING, child.PieceAt(bb.ParseSquare("g1")), "expected king on g1 after kingside castle")
	assert.Equal(t, bb.ROOK, child.PieceAt(bb.ParseSquare("f1")), "expected rook on f1 after kingside castle")
	assert.Zero(t, child.CastleRights&(bb.WhiteOO|bb.WhiteOOO), "expected both white castle rights cleared after castling")
}

func TestDoMovePromotion(t *testing.T) {
	b, err := board.ParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	child := b.DoMove(move(t, &b, "a7a8q"), true)
	require.True(t, child.Validate(), "child board failed Validate() after promotion")

	assert.Equal(t, bb.QUEEN, child.PieceAt(bb.ParseSquare("a8")), "expected a queen on a8 after promotion")
	assert.Zero(t, child.Pieces(bb.White, bb.PAWN), "expected no white pawns left after promotion")
	assert.Equal(t, child.RecomputeMaterialHash(), child.MaterialHashValue, "material hash not maintained incrementally through promotion")
}

func TestDoMoveRookDepartureStripsCastleRight(t *testing.T) {
	b, err := board.ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	child := b.DoMove(move(t, &b, "h1h2"), true)
	assert.Zero(t, child.CastleRights&bb.WhiteOO, "expected kingside castle right stripped after rook departure")
	assert.NotZero(t, child.CastleRights&bb.WhiteOOO, "expected queenside castle right untouched")
}

func TestDoMoveFiftyMoveCounter(t *testing.T) {
	b, err := board.ParseFEN(board.StartingFEN)
	require.NoError(t, err)

	afterKnight := b.DoMove(move(t, &b, "g1f3"), true)
	assert.Equal(t, 1, afterKnight.FiftyMoveCount, "expected fifty-move counter to increment on a quiet knight move")

	afterPawn := b.DoMove(move(t, &b, "e2e4"), true)
	assert.Zero(t, afterPawn.FiftyMoveCount, "expected fifty-move counter to reset on a pawn move")
}

func TestMaterialEvalIsWhiteRelative(t *testing.T) {
	b, err := board.ParseFEN(board.StartingFEN)
	require.NoError(t, err)
	require.Zero(t, b.MaterialEval.MG, "expected a symmetric starting position to have zero material balance")
	require.Zero(t, b.MaterialEval.EG, "expected a symmetric starting position to have zero material balance")

	child := b.DoMove(move(t, &b, "e2e4"), true)
	grandchild := child.DoMove(move(t, &child, "d7d5"), true)
	grandchild2 := grandchild.DoMove(move(t, &grandchild, "e4d5"), true)
	assert.Greater(t, grandchild2.MaterialEval.MG, int32(0),
		"expected a positive White-relative material balance after White captures a pawn, got %+v", grandchild2.MaterialEval)
}

func TestDoNullMoveLeavesMaterialUntouched(t *testing.T) {
	b, err := board.ParseFEN(board.StartingFEN)
	require.NoError(t, err)

	child := b.DoNullMove()
	assert.True(t, child.NullMove, "expected NullMove flag set")
	assert.Equal(t, b.MaterialEval, child.MaterialEval, "null move must not change material evaluation")
	assert.Equal(t, b.PSTEval, child.PSTEval, "null move must not change PST evaluation")
	assert.NotEqual(t, b.SideToMove, child.SideToMove, "expected side to move to flip")
}
