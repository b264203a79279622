package search

import (
	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
)

// SeeValue are the piece values SEE trades against, distinct from the
// evaluator's tapered MaterialValue: SEE only cares about a single
// scalar ordering of piece worth, with the king valued far above
// anything it could be traded for so a king "capture" always wins the
// exchange outright (spec.md §4.I: "Stop on king capture").
var SeeValue = [bb.KING + 1]int32{
	bb.PAWN:   100,
	bb.KNIGHT: 300,
	bb.BISHOP: 300,
	bb.ROOK:   500,
	bb.QUEEN:  900,
	bb.KING:   20000,
}

// attackersTo returns every piece of either colour pseudo-attacking sq
// given the occupancy occ, used by SEE to re-derive the attacker set as
// pieces are removed from the board one exchange at a time.
func attackersTo(b *board.Board, sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	var attackers bb.Bitboard
	attackers |= bb.PawnCaptures[bb.Black][sq] & b.Pieces(bb.White, bb.PAWN) & occ
	attackers |= bb.PawnCaptures[bb.White][sq] & b.Pieces(bb.Black, bb.PAWN) & occ
	attackers |= bb.PieceMoves[bb.KNIGHT][sq] & (b.Pieces(bb.White, bb.KNIGHT) | b.Pieces(bb.Black, bb.KNIGHT)) & occ
	attackers |= bb.PieceMoves[bb.KING][sq] & (b.Pieces(bb.White, bb.KING) | b.Pieces(bb.Black, bb.KING)) & occ
	rq := (b.Pieces(bb.White, bb.ROOK) | b.Pieces(bb.White, bb.QUEEN) | b.Pieces(bb.Black, bb.ROOK) | b.Pieces(bb.Black, bb.QUEEN)) & occ
	attackers |= bb.SlidingAttacks(bb.ROOK, sq, occ) & rq
	bq := (b.Pieces(bb.White, bb.BISHOP) | b.Pieces(bb.White, bb.QUEEN) | b.Pieces(bb.Black, bb.BISHOP) | b.Pieces(bb.Black, bb.QUEEN)) & occ
	attackers |= bb.SlidingAttacks(bb.BISHOP, sq, occ) & bq
	return attackers
}

// leastValuableAttacker picks the cheapest piece in attackers belonging
// to color, returning its square, kind, and whether one was found.
func leastValuableAttacker(b *board.Board, attackers bb.Bitboard, color bb.Color) (bb.Square, bb.Piece, bool) {
	for _, kind := range []bb.Piece{bb.PAWN, bb.KNIGHT, bb.BISHOP, bb.ROOK, bb.QUEEN, bb.KING} {
		set := attackers & b.Pieces(color, kind)
		if set != 0 {
			return set.LSB(), kind, true
		}
	}
	return bb.NoSquare, bb.NONE, false
}

// SEE computes the Static Exchange Evaluation of a capture on dst
// initiated by the piece on src, per spec.md §4.I: a sequence of
// least-valuable-attacker recaptures on the same square, folded back
// from the deepest forced exchange to the shallowest beneficial one.
func SEE(b *board.Board, src, dst bb.Square) int32 {
	captured := b.PieceAt(dst)
	mover := b.PieceAt(src)
	if captured == bb.NONE {
		// En-passant and other non-capturing callers: treat as a pawn
		// taken, matching the teacher's "ugly en passant" fallback.
		captured = bb.PAWN
	}

	if SeeValue[captured] > SeeValue[mover] {
		return SeeValue[captured] - SeeValue[mover]
	}

	var gain [32]int32
	depth := 0
	gain[0] = SeeValue[captured]

	_, moverColor, _ := b.PieceColorAt(src)
	occ := b.Occupied() &^ bb.Bit(src)
	side := moverColor.Other()
	fromPiece := mover

	for {
		attackers := attackersTo(b, dst, occ)
		sq, kind, ok := leastValuableAttacker(b, attackers, side)
		if !ok {
			break
		}
		depth++
		gain[depth] = SeeValue[fromPiece] - gain[depth-1]
		if max32(-gain[depth-1], gain[depth]) < 0 {
			break
		}
		occ &^= bb.Bit(sq)
		fromPiece = kind
		side = side.Other()
		if fromPiece == bb.KING {
			break
		}
	}

	for depth > 0 {
		gain[depth-1] = -max32(-gain[depth-1], gain[depth])
		depth--
	}
	return gain[0]
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
