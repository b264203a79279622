package eval

import (
	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
)

// fileMasks[f] is every square on file f, built once at package init
// the same way the bitboard package precomputes its attack tables.
var fileMasks [8]bb.Bitboard

func init() {
	for f := 0; f < 8; f++ {
		var m bb.Bitboard
		for r := 0; r < 8; r++ {
			m |= bb.Bit(bb.MakeSquare(r, f))
		}
		fileMasks[f] = m
	}
}

// pawnAttacks returns every square color's pawns attack, used both for
// "safe mobility" (mobility excluding enemy-pawn-attacked squares) and
// the king-danger/tropism bookkeeping.
func pawnAttacks(b *board.Board, color bb.Color) bb.Bitboard {
	var attacks bb.Bitboard
	for _, sq := range b.Pieces(color, bb.PAWN).Squares() {
		attacks |= bb.PawnCaptures[color][sq]
	}
	return attacks
}

// pieceAttacks returns the attack set of a non-pawn piece on sq, sliding
// attacks tested against the full board occupancy (no magic/PEXT, per
// bitboard.SlidingAttacks's own doc comment).
func pieceAttacks(kind bb.Piece, sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	switch kind {
	case bb.KNIGHT, bb.KING:
		return bb.PieceMoves[kind][sq]
	default:
		return bb.SlidingAttacks(kind, sq, occ)
	}
}

// chebyshev is the king-move distance between two squares, used for
// tropism and the weak-king mating drive. REDESIGN FLAGS calls out a
// teacher bug using signed (file,rank) deltas; this takes absolute
// values throughout.
func chebyshev(a, b bb.Square) int {
	df := bb.File(a) - bb.File(b)
	if df < 0 {
		df = -df
	}
	dr := bb.Rank(a) - bb.Rank(b)
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

// isOpenFile reports whether a file carries no pawns of either colour.
func isOpenFile(b *board.Board, file int) bool {
	return (b.Pieces(bb.White, bb.PAWN)|b.Pieces(bb.Black, bb.PAWN))&fileMasks[file] == 0
}

// isSemiOpenFile reports whether a file has no pawns of color but is not
// fully open (the enemy still has a pawn on it).
func isSemiOpenFile(b *board.Board, color bb.Color, file int) bool {
	return !ownPawnsOnFile(b, color, file) && !isOpenFile(b, file)
}

func ownPawnsOnFile(b *board.Board, color bb.Color, file int) bool {
	return b.Pieces(color, bb.PAWN)&fileMasks[file] != 0
}
