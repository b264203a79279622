package board

import (
	bb "github.com/chrisflorin/knightwatch/bitboard"
)

func addEval(e *Eval, d Eval) {
	e.MG += d.MG
	e.EG += d.EG
}

func subEval(e *Eval, d Eval) {
	e.MG -= d.MG
	e.EG -= d.EG
}

// signedEval flips a piece's material/PST value to White's perspective:
// MaterialEval and PSTEval are running White-relative totals, so a
// Black piece's contribution is subtracted rather than added.
func signedEval(c bb.Color, d Eval) Eval {
	if c == bb.Black {
		return Eval{MG: -d.MG, EG: -d.EG}
	}
	return d
}

// movePiece relocates a piece from src to dst, maintaining bitboards,
// mailbox, incremental hash and PST. The destination must be empty.
func (b *Board) movePiece(src, dst bb.Square, c bb.Color, kind bb.Piece, withPrecalc bool) {
	b.removePiece(src)
	b.addPiece(dst, c, kind)
	if withPrecalc {
		b.HashValue ^= bb.ZobristPiece[c][kind][src]
		b.HashValue ^= bb.ZobristPiece[c][kind][dst]
		pst := PSTValue(c, kind, dst)
		subEval(&b.PSTEval, signedEval(c, PSTValue(c, kind, src)))
		addEval(&b.PSTEval, signedEval(c, pst))
		if kind == bb.PAWN {
			b.PawnHashValue ^= bb.ZobristPiece[c][kind][src]
			b.PawnHashValue ^= bb.ZobristPiece[c][kind][dst]
		}
	}
}

// castleRookSquare reports the rook-origin square for a given castle right.
func castleRookSquare(right bb.CastleRights) bb.Square {
	switch right {
	case bb.WhiteOO:
		return bb.MakeSquare(7, 7)
	case bb.WhiteOOO:
		return bb.MakeSquare(7, 0)
	case bb.BlackOO:
		return bb.MakeSquare(0, 7)
	case bb.BlackOOO:
		return bb.MakeSquare(0, 0)
	}
	return bb.NoSquare
}

func stripCastleRightForRookSquare(b *Board, sq bb.Square, withPrecalc bool) {
	rights := []bb.CastleRights{bb.WhiteOO, bb.WhiteOOO, bb.BlackOO, bb.BlackOOO}
	for _, r := range rights {
		if castleRookSquare(r) == sq && b.CastleRights&r != 0 {
			b.CastleRights &^= r
		}
	}
}

// DoMove applies move to a clone of b and returns the resulting board.
// When withPrecalc is false (perft), incremental hash/material/PST
// bookkeeping is skipped, but the attack cache is still rebuilt.
func (b *Board) DoMove(move Move, withPrecalc bool) Board {
	nb := b.Clone()
	nb.NullMove = false

	us := nb.SideToMove
	them := us.Other()
	src, dst := move.Src(), move.Dst()
	moved := nb.pieces[src]

	oldCastle := nb.CastleRights
	oldEnPassant := nb.EnPassant

	// 1. en-passant capture: remove the pawn one rank behind dst.
	if dst == nb.EnPassant && moved == bb.PAWN {
		capSq := epCapturedSquare(dst, us)
		nb.removePiece(capSq)
		if withPrecalc {
			nb.HashValue ^= bb.ZobristPiece[them][bb.PAWN][capSq]
			nb.PawnHashValue ^= bb.ZobristPiece[them][bb.PAWN][capSq]
			subEval(&nb.MaterialEval, signedEval(them, MaterialValue(bb.PAWN)))
			subEval(&nb.PSTEval, signedEval(them, PSTValue(them, bb.PAWN, capSq)))
			nb.MaterialHashValue = recomputeMaterialHashDelta(nb.MaterialHashValue, them, bb.PAWN, nb.byColor[them][bb.PAWN].PopCount()+1, nb.byColor[them][bb.PAWN].PopCount())
		}
	}

	// 2. cache captured piece, clearing it from its bitboards now so
	// step 3 moves the mover onto a genuinely empty square.
	captured := nb.removePiece(dst)

	// 3. move src -> dst.
	nb.movePiece(src, dst, us, moved, withPrecalc)

	// 4. clear en-passant (before recomputing it below).
	nb.EnPassant = bb.NoSquare

	// 5. special-move side effects.
	switch moved {
	case bb.PAWN:
		if abs8(int(bb.Rank(src))-int(bb.Rank(dst))) == 2 {
			passThrough := bb.MakeSquare((int(bb.Rank(src))+int(bb.Rank(dst)))/2, bb.File(src))
			if bb.PawnCaptures[us][passThrough]&nb.byColor[them][bb.PAWN] != 0 {
				nb.EnPassant = passThrough
			}
		}
	case bb.ROOK:
		stripCastleRightForRookSquare(&nb, src, withPrecalc)
	case bb.KING:
		if us == bb.White {
			nb.CastleRights &^= bb.WhiteOO | bb.WhiteOOO
		} else {
			nb.CastleRights &^= bb.BlackOO | bb.BlackOOO
		}
		if bb.File(src)-bb.File(dst) == -2 || bb.File(src)-bb.File(dst) == 2 {
			rank := bb.Rank(src)
			var rookSrc, rookDst bb.Square
			if bb.File(dst) > bb.File(src) {
				rookSrc = bb.MakeSquare(rank, 7)
				rookDst = bb.MakeSquare(rank, bb.File(dst)-1)
			} else {
				rookSrc = bb.MakeSquare(rank, 0)
				rookDst = bb.MakeSquare(rank, bb.File(dst)+1)
			}
			nb.movePiece(rookSrc, rookDst, us, bb.ROOK, withPrecalc)
		}
	}

	// 6. captured-piece bookkeeping (bitboards already cleared in step 2).
	if captured != bb.NONE {
		if withPrecalc {
			nb.HashValue ^= bb.ZobristPiece[them][captured][dst]
			subEval(&nb.MaterialEval, signedEval(them, MaterialValue(captured)))
			subEval(&nb.PSTEval, signedEval(them, PSTValue(them, captured, dst)))
			if captured == bb.PAWN {
				nb.PawnHashValue ^= bb.ZobristPiece[them][bb.PAWN][dst]
			}
			n := nb.byColor[them][captured].PopCount()
			nb.MaterialHashValue = recomputeMaterialHashDelta(nb.MaterialHashValue, them, captured, n+1, n)
		}
		if captured == bb.ROOK {
			stripCastleRightForRookSquare(&nb, dst, withPrecalc)
		}
	}

	// 7. promotion.
	promo := move.Promotion()
	if promo != bb.NONE {
		nb.removePiece(dst)
		nb.addPiece(dst, us, promo)
		if withPrecalc {
			nb.HashValue ^= bb.ZobristPiece[us][bb.PAWN][dst]
			nb.HashValue ^= bb.ZobristPiece[us][promo][dst]
			nb.PawnHashValue ^= bb.ZobristPiece[us][bb.PAWN][dst]
			subEval(&nb.MaterialEval, signedEval(us, MaterialValue(bb.PAWN)))
			addEval(&nb.MaterialEval, signedEval(us, MaterialValue(promo)))
			subEval(&nb.PSTEval, signedEval(us, PSTValue(us, bb.PAWN, dst)))
			addEval(&nb.PSTEval, signedEval(us, PSTValue(us, promo, dst)))
			pawnsLeft := nb.byColor[us][bb.PAWN].PopCount()
			promotedCount := nb.byColor[us][promo].PopCount()
			nb.MaterialHashValue = recomputeMaterialHashDelta(nb.MaterialHashValue, us, bb.PAWN, pawnsLeft+1, pawnsLeft)
			nb.MaterialHashValue = recomputeMaterialHashDelta(nb.MaterialHashValue, us, promo, promotedCount-1, promotedCount)
		}
	}

	// 8. flip side to move.
	nb.SideToMove = them
	if withPrecalc {
		nb.HashValue ^= bb.ZobristSide
	}

	// 9. update hash for en-passant / castle-rights changes.
	if withPrecalc {
		if oldEnPassant != bb.NoSquare {
			nb.HashValue ^= bb.ZobristEnPassant[bb.File(oldEnPassant)]
		}
		if nb.EnPassant != bb.NoSquare {
			nb.HashValue ^= bb.ZobristEnPassant[bb.File(nb.EnPassant)]
		}
		if oldCastle != nb.CastleRights {
			nb.HashValue ^= bb.ZobristCastle[oldCastle]
			nb.HashValue ^= bb.ZobristCastle[nb.CastleRights]
		}
	}

	// 10. fifty-move count.
	if moved == bb.PAWN || captured != bb.NONE {
		nb.FiftyMoveCount = 0
	} else {
		nb.FiftyMoveCount++
	}
	if us == bb.Black {
		nb.FullMoveCount++
	}

	// 11. allPieces is maintained incrementally by add/removePiece.

	// 12. rebuild the attack cache for the new side to move.
	nb.buildAttackBoards()

	return nb
}

// DoNullMove flips the side to move without touching material, PST,
// piece placement or counters. Used by null-move pruning.
func (b *Board) DoNullMove() Board {
	nb := b.Clone()
	if nb.EnPassant != bb.NoSquare {
		nb.HashValue ^= bb.ZobristEnPassant[bb.File(nb.EnPassant)]
		nb.EnPassant = bb.NoSquare
	}
	nb.SideToMove = nb.SideToMove.Other()
	nb.HashValue ^= bb.ZobristSide
	nb.NullMove = true
	nb.buildAttackBoards()
	return nb
}

// epCapturedSquare returns the square of the pawn being captured
// en-passant, one rank behind the destination square from mover's view.
func epCapturedSquare(dst bb.Square, mover bb.Color) bb.Square {
	if mover == bb.White {
		return bb.MakeSquare(bb.Rank(dst)+1, bb.File(dst))
	}
	return bb.MakeSquare(bb.Rank(dst)-1, bb.File(dst))
}

func abs8(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// recomputeMaterialHashDelta swaps the (color,kind,oldCount) key for
// the (color,kind,newCount) key in a material hash, capping counts at 9
// the same way RecomputeMaterialHash does.
func recomputeMaterialHashDelta(h uint64, c bb.Color, kind bb.Piece, oldCount, newCount int) uint64 {
	if oldCount > 9 {
		oldCount = 9
	}
	if newCount > 9 {
		newCount = 9
	}
	if oldCount == newCount {
		return h
	}
	h ^= bb.ZobristMaterial[c][kind][oldCount]
	h ^= bb.ZobristMaterial[c][kind][newCount]
	return h
}
