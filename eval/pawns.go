package eval

import (
	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
)

// PawnResult is the pawn evaluator's output: a White-relative tapered
// score plus the passed-pawn bitboards the main evaluator needs for its
// rook/queen-behind-a-passer bonuses (spec.md §4.F).
type PawnResult struct {
	Score       board.Eval
	PassedPawns [2]bb.Bitboard
}

// EvaluatePawns implements spec.md §4.F: passed/doubled/tripled pawns
// plus pawn chains, done per pawn with precomputed bitboard masks
// (passed-pawn spans, squares in front, pawn captures).
func EvaluatePawns(b *board.Board, p *Params) PawnResult {
	var res PawnResult
	for color := bb.White; color <= bb.Black; color++ {
		sign := sideSign(color)
		enemy := color.Other()
		enemyPawns := b.Pieces(enemy, bb.PAWN)
		ownPawns := b.Pieces(color, bb.PAWN)
		ownAttacks := pawnAttacks(b, color)

		for _, sq := range ownPawns.Squares() {
			idx := sq
			if color == bb.White {
				idx = bb.FlipY(sq)
			}

			if bb.PassedPawnCheck[color][sq]&enemyPawns == 0 {
				res.PassedPawns[color] |= bb.Bit(sq)
				res.Score.MG += sign * p.PawnPassedPstMG[idx]
				res.Score.EG += sign * p.PawnPassedPstEG[idx]
			}

			stacked := (bb.SquaresInFront[color][sq] & ownPawns).PopCount()
			switch {
			case stacked == 1:
				res.Score.MG -= sign * p.PawnDoubledMG
				res.Score.EG -= sign * p.PawnDoubledEG
			case stacked >= 2:
				res.Score.MG -= sign * p.PawnTripledMG
				res.Score.EG -= sign * p.PawnTripledEG
			}

			if ownAttacks&bb.Bit(sq) != 0 {
				res.Score.MG += sign * p.PawnChainFrontPstMG[idx]
				res.Score.EG += sign * p.PawnChainFrontPstEG[idx]
				for _, supporter := range (bb.PawnCaptures[enemy][sq] & ownPawns).Squares() {
					supporterIdx := supporter
					if color == bb.White {
						supporterIdx = bb.FlipY(supporter)
					}
					res.Score.MG += sign * p.PawnChainBackPstMG[supporterIdx]
					res.Score.EG += sign * p.PawnChainBackPstEG[supporterIdx]
				}
			}
		}
	}
	return res
}
