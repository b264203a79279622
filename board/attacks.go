package board

import (
	bb "github.com/chrisflorin/knightwatch/bitboard"
)

// attackersOf returns the bitboard of `by`-colored pieces attacking sq,
// with sliding attackers tested through (occupied &^ throughMask) so
// callers can x-ray through a piece (e.g. the king itself).
// stopEarly lets callers bail out after finding the first attacker.
func (b *Board) attackersOf(sq bb.Square, by bb.Color, throughMask bb.Bitboard, stopEarly bool) bb.Bitboard {
	var attackers bb.Bitboard
	occ := b.occupied &^ throughMask

	if a := bb.PawnCaptures[by.Other()][sq] & b.byColor[by][bb.PAWN]; a != 0 {
		attackers |= a
		if stopEarly {
			return attackers
		}
	}
	if a := bb.PieceMoves[bb.KNIGHT][sq] & b.byColor[by][bb.KNIGHT]; a != 0 {
		attackers |= a
		if stopEarly {
			return attackers
		}
	}
	if a := bb.PieceMoves[bb.KING][sq] & b.byColor[by][bb.KING]; a != 0 {
		attackers |= a
		if stopEarly {
			return attackers
		}
	}
	rq := b.byColor[by][bb.ROOK] | b.byColor[by][bb.QUEEN]
	if rq != 0 {
		if a := bb.SlidingAttacks(bb.ROOK, sq, occ) & rq; a != 0 {
			attackers |= a
			if stopEarly {
				return attackers
			}
		}
	}
	bq := b.byColor[by][bb.BISHOP] | b.byColor[by][bb.QUEEN]
	if bq != 0 {
		if a := bb.SlidingAttacks(bb.BISHOP, sq, occ) & bq; a != 0 {
			attackers |= a
			if stopEarly {
				return attackers
			}
		}
	}
	return attackers
}

// IsSquareAttacked reports whether sq is attacked by `by`, x-raying
// through the attacked side's own king (needed to find squares a king
// may not step to, since the king itself would otherwise block a
// slider's attack on its destination square).
func (b *Board) IsSquareAttacked(sq bb.Square, by bb.Color) bool {
	ownKing := b.KingSquare(by.Other())
	return b.attackersOf(sq, by, bb.Bit(ownKing), true) != 0
}

// IsInCheck reports whether color's king is attacked. When color is
// SideToMove, this is answered from the cached CheckingPieces in O(1);
// otherwise it is recomputed from scratch.
func (b *Board) IsInCheck(color bb.Color) bool {
	if color == b.SideToMove {
		return b.CheckingPieces != 0
	}
	king := b.KingSquare(color)
	return b.attackersOf(king, color.Other(), 0, true) != 0
}

// buildAttackBoards recomputes the attack cache for SideToMove's king:
// checkers, pinned pieces, blocked pieces, and the evasion block-mask.
func (b *Board) buildAttackBoards() {
	us := b.SideToMove
	them := us.Other()
	king := b.KingSquare(us)

	var checkers, blocked, pinned, between bb.Bitboard
	var pinRay [64]bb.Bitboard

	// Pawns and knights check directly; they cannot be blocked.
	checkers |= bb.PawnCaptures[us][king] & b.byColor[them][bb.PAWN]
	checkers |= bb.PieceMoves[bb.KNIGHT][king] & b.byColor[them][bb.KNIGHT]

	considerSlider := func(kind bb.Piece, attackerSet bb.Bitboard) {
		pseudo := bb.PieceMoves[kind][king] & attackerSet
		for bbAtk := pseudo; bbAtk != 0; {
			atk := bbAtk.PopLSB()
			line := bb.InBetween[king][atk]
			occOnLine := line & b.occupied
			n := occOnLine.PopCount()
			switch n {
			case 0:
				checkers |= bb.Bit(atk)
				between |= line
			case 1:
				blockerSq := occOnLine.LSB()
				blocked |= bb.Bit(blockerSq)
				pinned |= bb.Bit(blockerSq)
				pinRay[blockerSq] = line | bb.Bit(atk)
				between |= line
			default:
				// Two or more pieces between: no check, no pin today.
				between |= line
			}
		}
	}
	considerSlider(bb.ROOK, b.byColor[them][bb.ROOK]|b.byColor[them][bb.QUEEN])
	considerSlider(bb.BISHOP, b.byColor[them][bb.BISHOP]|b.byColor[them][bb.QUEEN])

	b.CheckingPieces = checkers
	b.BlockedPieces = blocked
	b.PinnedPieces = pinned
	b.InBetweenSquares = between
	b.pinRay = pinRay
}

// PinRayFor returns the allowed-destination mask for a piece pinned on
// sq (the ray between the king and the pinning slider, inclusive of
// capturing the slider). Empty if sq is not pinned.
func (b *Board) PinRayFor(sq bb.Square) bb.Bitboard { return b.pinRay[sq] }
