// Package board implements the mailbox+bitboard dual board
// representation, FEN parsing, move application, and the per-position
// attack cache (checkers/pins/blockers) the move generator and
// evaluator depend on. It corresponds to spec.md §4.B and §4.C.
package board

import (
	bb "github.com/chrisflorin/knightwatch/bitboard"
)

// Eval holds a phase-tagged (middlegame, endgame) incremental score.
type Eval struct {
	MG, EG int32
}

// Board is the sole mutable state during search. It is kept
// copy-on-write between plies: callers clone by value before mutating
// (spec.md §9).
type Board struct {
	pieces [64]bb.Piece // colourless kind per square, NONE if empty

	byColor [2][bb.ALL + 1]bb.Bitboard // byColor[c][kind], plus byColor[c][ALL]
	occupied bb.Bitboard

	SideToMove   bb.Color
	CastleRights bb.CastleRights
	EnPassant    bb.Square

	FiftyMoveCount int
	FullMoveCount  int

	WhiteKing bb.Square
	BlackKing bb.Square

	// Attack cache, relative to SideToMove's king.
	CheckingPieces   bb.Bitboard
	PinnedPieces     bb.Bitboard
	BlockedPieces    bb.Bitboard
	InBetweenSquares bb.Bitboard
	pinRay           [64]bb.Bitboard // legal destinations for the pinned piece on that square

	HashValue         uint64
	MaterialHashValue uint64
	PawnHashValue     uint64
	MaterialEval      Eval
	PSTEval           Eval

	NullMove bool
}

// colorAt returns which side owns the piece on sq, or White if empty
// (callers must check PieceAt first).
func (b *Board) colorAt(sq bb.Square) bb.Color {
	if b.byColor[bb.Black][bb.ALL]&bb.Bit(sq) != 0 {
		return bb.Black
	}
	return bb.White
}

// PieceAt returns the colourless piece kind on a square, or NONE.
func (b *Board) PieceAt(sq bb.Square) bb.Piece { return b.pieces[sq] }

// PieceColorAt returns the kind and color on a square; ok is false if empty.
func (b *Board) PieceColorAt(sq bb.Square) (kind bb.Piece, color bb.Color, ok bool) {
	kind = b.pieces[sq]
	if kind == bb.NONE {
		return bb.NONE, bb.White, false
	}
	return kind, b.colorAt(sq), true
}

// Occupied returns the union of all pieces.
func (b *Board) Occupied() bb.Bitboard { return b.occupied }

// Pieces returns the bitboard of pieces of the given kind and color.
// Pass bb.ALL to get every piece of that color.
func (b *Board) Pieces(c bb.Color, kind bb.Piece) bb.Bitboard { return b.byColor[c][kind] }

// KingSquare returns the king square for a color.
func (b *Board) KingSquare(c bb.Color) bb.Square {
	if c == bb.White {
		return b.WhiteKing
	}
	return b.BlackKing
}

func (b *Board) setKingSquare(c bb.Color, sq bb.Square) {
	if c == bb.White {
		b.WhiteKing = sq
	} else {
		b.BlackKing = sq
	}
}

// Clone returns a value copy of the board, safe to mutate independently.
func (b *Board) Clone() Board { return *b }

// addPiece places a piece on an empty square, updating bitboards and occupancy only.
// Incremental hash/material/PST updates are the caller's responsibility (doMove).
func (b *Board) addPiece(sq bb.Square, c bb.Color, kind bb.Piece) {
	b.pieces[sq] = kind
	bit := bb.Bit(sq)
	b.byColor[c][kind] |= bit
	b.byColor[c][bb.ALL] |= bit
	b.occupied |= bit
	if kind == bb.KING {
		b.setKingSquare(c, sq)
	}
}

// removePiece clears a square, returning the kind that was there (NONE if empty).
func (b *Board) removePiece(sq bb.Square) bb.Piece {
	kind := b.pieces[sq]
	if kind == bb.NONE {
		return bb.NONE
	}
	c := b.colorAt(sq)
	bit := bb.Bit(sq)
	b.pieces[sq] = bb.NONE
	b.byColor[c][kind] &^= bit
	b.byColor[c][bb.ALL] &^= bit
	b.occupied &^= bit
	return kind
}

// RecomputeHash rebuilds the Zobrist hash from scratch; used by tests
// to validate the incremental maintenance in DoMove.
func (b *Board) RecomputeHash() uint64 {
	var h uint64
	for sq := bb.Square(0); sq < 64; sq++ {
		k := b.pieces[sq]
		if k == bb.NONE {
			continue
		}
		h ^= bb.ZobristPiece[b.colorAt(sq)][k][sq]
	}
	if b.SideToMove == bb.Black {
		h ^= bb.ZobristSide
	}
	h ^= bb.ZobristCastle[b.CastleRights]
	if b.EnPassant != bb.NoSquare {
		h ^= bb.ZobristEnPassant[bb.File(b.EnPassant)]
	}
	return h
}

// RecomputeMaterialHash rebuilds the material-only hash (used as the
// endgame recogniser key): a Zobrist-like XOR of (color,kind,count)
// features, independent of square.
func (b *Board) RecomputeMaterialHash() uint64 {
	var h uint64
	for c := bb.White; c <= bb.Black; c++ {
		for k := bb.PAWN; k <= bb.KING; k++ {
			n := b.byColor[c][k].PopCount()
			if n > 9 {
				n = 9
			}
			h ^= bb.ZobristMaterial[c][k][n]
		}
	}
	return h
}

// RecomputePawnHash rebuilds the pawn-only hash from the pawn bitboards.
func (b *Board) RecomputePawnHash() uint64 {
	var h uint64
	for c := bb.White; c <= bb.Black; c++ {
		for bb2 := b.byColor[c][bb.PAWN]; bb2 != 0; {
			sq := bb2.PopLSB()
			h ^= bb.ZobristPiece[c][bb.PAWN][sq]
		}
	}
	return h
}

// Validate checks the §3 invariants hold; used by tests.
func (b *Board) Validate() bool {
	if b.byColor[bb.White][bb.ALL]&b.byColor[bb.Black][bb.ALL] != 0 {
		return false
	}
	if b.occupied != b.byColor[bb.White][bb.ALL]|b.byColor[bb.Black][bb.ALL] {
		return false
	}
	for c := bb.White; c <= bb.Black; c++ {
		var union bb.Bitboard
		for k := bb.PAWN; k <= bb.KING; k++ {
			union |= b.byColor[c][k]
		}
		if union != b.byColor[c][bb.ALL] {
			return false
		}
	}
	for sq := bb.Square(0); sq < 64; sq++ {
		occ := b.occupied&bb.Bit(sq) != 0
		has := b.pieces[sq] != bb.NONE
		if occ != has {
			return false
		}
	}
	if b.pieces[b.WhiteKing] != bb.KING || b.pieces[b.BlackKing] != bb.KING {
		return false
	}
	if b.HashValue != b.RecomputeHash() {
		return false
	}
	return true
}
