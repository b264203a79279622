package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
	"github.com/chrisflorin/knightwatch/eval"
)

func TestEvaluatePawnsDetectsPassedPawn(t *testing.T) {
	b, err := board.ParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)

	p := eval.NewParams()
	res := eval.EvaluatePawns(&b, p)
	e2 := bitboard.ParseSquare("e2")
	assert.NotZero(t, res.PassedPawns[bitboard.White]&bitboard.Bit(e2), "expected the lone white pawn to be recognised as passed")
	assert.Equal(t, p.PawnPassedPstMG[bitboard.FlipY(e2)], res.Score.MG, "expected exactly the rank-2 passed-pawn MG table entry, got %+v", res.Score)
	assert.Positive(t, res.Score.EG, "expected a positive (White-relative) passed-pawn bonus, got %+v", res.Score)
}

func TestEvaluatePawnsNotPassedBehindEnemyPawn(t *testing.T) {
	b, err := board.ParseFEN("4k3/4p3/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)

	res := eval.EvaluatePawns(&b, eval.NewParams())
	e2 := bitboard.ParseSquare("e2")
	assert.Zero(t, res.PassedPawns[bitboard.White]&bitboard.Bit(e2), "expected the white pawn to be blocked by the black pawn on its file, not passed")
}

func TestEvaluatePawnsDoubledPenalty(t *testing.T) {
	b, err := board.ParseFEN("4k3/8/8/8/4P3/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)

	p := eval.NewParams()
	res := eval.EvaluatePawns(&b, p)

	e4 := bitboard.FlipY(bitboard.ParseSquare("e4"))
	e2 := bitboard.FlipY(bitboard.ParseSquare("e2"))
	// Both pawns are passed (no black pawns on the board); the rear
	// pawn on e2 additionally sees the e4 pawn ahead of it on the file,
	// so it alone takes the doubled penalty.
	wantMG := p.PawnPassedPstMG[e4] + p.PawnPassedPstMG[e2] - p.PawnDoubledMG
	wantEG := p.PawnPassedPstEG[e4] + p.PawnPassedPstEG[e2] - p.PawnDoubledEG
	assert.Equal(t, wantMG, res.Score.MG)
	assert.Equal(t, wantEG, res.Score.EG)
}

func TestEvaluatePawnsChainSupport(t *testing.T) {
	// d3 defends e4's chain: e4 is attacked by the friendly pawn on d3.
	b, err := board.ParseFEN("4k3/8/8/8/4P3/3P4/8/4K3 w - - 0 1")
	require.NoError(t, err)

	res := eval.EvaluatePawns(&b, eval.NewParams())
	assert.False(t, res.Score.MG == 0 && res.Score.EG == 0, "expected a nonzero score from passed-pawn and chain bonuses")
}
