package board

import (
	bb "github.com/chrisflorin/knightwatch/bitboard"
)

// Move packs a chess move into a 32-bit value, plus an out-of-band
// ordinal used only for move ordering (spec.md §3: ordinal is excluded
// from equality and from the packed bits since it swings far more
// negative/positive than 4 bits could hold).
//
// Layout (LSB first): src:6 dst:6 promotion:3 moved:3 captured:3
type Move uint32

const (
	srcShift       = 0
	dstShift       = 6
	promotionShift = 12
	movedShift     = 15
	capturedShift  = 18
)

// NewMove builds a move from the given fields as passed; DoMove does not
// fill in moved/captured, so callers pass the board's knowledge of the
// moving and captured pieces directly.
func NewMove(src, dst bb.Square, promotion, moved, captured bb.Piece) Move {
	return Move(uint32(src)&0x3F |
		(uint32(dst)&0x3F)<<dstShift |
		(uint32(promotion)&0x7)<<promotionShift |
		(uint32(moved)&0x7)<<movedShift |
		(uint32(captured)&0x7)<<capturedShift)
}

func (m Move) Src() bb.Square        { return bb.Square((uint32(m) >> srcShift) & 0x3F) }
func (m Move) Dst() bb.Square        { return bb.Square((uint32(m) >> dstShift) & 0x3F) }
func (m Move) Promotion() bb.Piece   { return bb.Piece((uint32(m) >> promotionShift) & 0x7) }
func (m Move) MovedPiece() bb.Piece  { return bb.Piece((uint32(m) >> movedShift) & 0x7) }
func (m Move) Captured() bb.Piece    { return bb.Piece((uint32(m) >> capturedShift) & 0x7) }
func (m Move) IsPromotion() bool     { return m.Promotion() != bb.NONE }
func (m Move) IsCapture() bool       { return m.Captured() != bb.NONE }

// coreBits masks out everything but src/dst/promotion, which is what
// the spec's move equality contract uses (ordinal, moved, captured are
// derived/ordering fields and excluded from equality).
const coreBits = 0x3F | (0x3F << dstShift) | (0x7 << promotionShift)

// Equal compares two moves ignoring ordinal/moved/captured bookkeeping.
func (m Move) Equal(o Move) bool {
	return uint32(m)&coreBits == uint32(o)&coreBits
}

var NullMove Move = 0

// String renders a move in pure coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.Src().String() + m.Dst().String()
	if m.IsPromotion() {
		s += string(bb.PieceLetter(m.Promotion()) | 0x20) // lowercase
	}
	return s
}

// ParseMoveInBoard parses pure-coordinate notation, tolerating an
// optional 'x' between source and destination, and fills in the
// moved/captured pieces from the given board so the result compares
// equal to whatever doMove would produce.
func ParseMoveInBoard(b *Board, s string) (Move, bool) {
	if len(s) < 4 {
		return 0, false
	}
	t := s
	if len(t) >= 5 && t[2] == 'x' {
		t = t[:2] + t[3:]
	}
	if len(t) < 4 {
		return 0, false
	}
	src := bb.ParseSquare(t[0:2])
	dst := bb.ParseSquare(t[2:4])
	if src == bb.NoSquare || dst == bb.NoSquare {
		return 0, false
	}
	promo := bb.NONE
	if len(t) >= 5 {
		promo = bb.PieceFromLetter(t[4])
	}
	moved := b.PieceAt(src)
	captured := b.PieceAt(dst)
	if b.EnPassant == dst && moved == bb.PAWN && captured == bb.NONE && bb.File(src) != bb.File(dst) {
		captured = bb.PAWN
	}
	return NewMove(src, dst, promo, moved, captured), true
}
