package eval

import (
	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
)

// PieceCount returns the total number of pieces on the board (both
// colours, all kinds including kings), the phase-blend weight spec.md
// §4.E uses directly as `pieceCount`.
func PieceCount(b *board.Board) int {
	return b.Occupied().PopCount()
}

// Blend tapers a middlegame/endgame pair by piece count the way §4.E
// specifies: score = (mg*pieceCount + eg*(32-pieceCount)) / 32.
func Blend(e board.Eval, pieceCount int) int32 {
	return (e.MG*int32(pieceCount) + e.EG*int32(32-pieceCount)) / 32
}

// sideSign is +1 for White, -1 for Black: used to flip a white-relative
// accumulator to the side-to-move's perspective.
func sideSign(c bb.Color) int32 {
	if c == bb.White {
		return 1
	}
	return -1
}

// ToMove flips a White-relative score to color's perspective.
func ToMove(whiteRelative int32, color bb.Color) int32 {
	return whiteRelative * sideSign(color)
}

// materialAndPST returns the position's material+PST evaluation,
// White-relative, straight from the board's incremental accumulators
// (board.go maintains these through every DoMove per spec.md §3).
func materialAndPST(b *board.Board) board.Eval {
	return board.Eval{
		MG: b.MaterialEval.MG + b.PSTEval.MG,
		EG: b.MaterialEval.EG + b.PSTEval.EG,
	}
}
