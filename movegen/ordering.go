package movegen

import (
	"golang.org/x/exp/slices"

	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
)

// Ordinal bands for main-search move ordering, per spec.md §4.D. Larger
// is better; OrderMoves sorts descending so the best band comes first.
const (
	OrdinalPV            int32 = -1_000_000
	OrdinalGoodCapture   int32 = -2_000_000
	OrdinalEqualCapture  int32 = -3_000_000
	OrdinalKiller1       int32 = -4_000_000
	OrdinalKiller2       int32 = -5_000_000
	OrdinalButterflyBase int32 = -6_000_000
	OrdinalBadCapture    int32 = -7_000_000
	OrdinalUnsafe        int32 = -8_000_000
)

// Scored pairs a move with the ordinal it was assigned this ply, so
// callers (the root loop especially) can carry the ordinal forward
// across iterations without re-deriving it.
type Scored struct {
	Move    board.Move
	Ordinal int32
}

// HistoryLookup returns the butterfly (history) counter for a
// (movedPiece, destination) pair. Owned by the search package;
// movegen only consumes it.
type HistoryLookup func(moved bb.Piece, dst bb.Square) int32

// OrderContext carries the ordering hints available at a search node:
// the hash-table move, up to two killers, and a butterfly lookup.
type OrderContext struct {
	TTMove  board.Move
	Killer1 board.Move
	Killer2 board.Move
	History HistoryLookup
}

// OrderMoves assigns an ordinal to every move and stable-sorts the
// slice best-first (descending ordinal), per spec.md §4.D's bands.
func OrderMoves(b *board.Board, moves []board.Move, ctx OrderContext) []Scored {
	us := b.SideToMove
	them := us.Other()
	out := make([]Scored, len(moves))
	for i, m := range moves {
		out[i] = Scored{Move: m, Ordinal: ordinalFor(b, m, us, them, ctx)}
	}
	slices.SortStableFunc(out, func(a, c Scored) bool { return a.Ordinal > c.Ordinal })
	return out
}

func ordinalFor(b *board.Board, m board.Move, us, them bb.Color, ctx OrderContext) int32 {
	if m.Equal(ctx.TTMove) {
		return OrdinalPV
	}
	if cls, ok := captureClass(m); ok {
		return cls
	}
	if m.Equal(ctx.Killer1) {
		return OrdinalKiller1
	}
	if m.Equal(ctx.Killer2) {
		return OrdinalKiller2
	}
	if isUnsafe(b, m, us, them) {
		return OrdinalUnsafe
	}
	bonus := int32(0)
	if ctx.History != nil {
		bonus = ctx.History(m.MovedPiece(), m.Dst())
	}
	return OrdinalButterflyBase + bonus
}

// captureClass classifies a capture by comparing middlegame material
// values of captured vs mover, per spec.md §4.D.
func captureClass(m board.Move) (int32, bool) {
	if !m.IsCapture() {
		return 0, false
	}
	capturedVal := board.PieceValueMG[m.Captured()]
	moverVal := board.PieceValueMG[m.MovedPiece()]
	switch {
	case capturedVal > moverVal:
		return OrdinalGoodCapture, true
	case capturedVal == moverVal:
		return OrdinalEqualCapture, true
	default:
		return OrdinalBadCapture, true
	}
}

// isUnsafe reports whether a non-pawn move's source square is attacked
// by an enemy pawn (per spec.md §4.D's "Unsafe" band).
func isUnsafe(b *board.Board, m board.Move, us, them bb.Color) bool {
	if m.MovedPiece() == bb.PAWN {
		return false
	}
	return bb.PawnCaptures[us][m.Src()]&b.Pieces(them, bb.PAWN) != 0
}

// OrderCaptures applies quiescence search's dedicated ordering (spec.md
// §4.D): unsafe moves last, otherwise ordinal = 1024*capturedValue -
// moverValue, stable-sorted descending.
func OrderCaptures(b *board.Board, moves []board.Move) []Scored {
	us := b.SideToMove
	them := us.Other()
	out := make([]Scored, len(moves))
	for i, m := range moves {
		if isUnsafe(b, m, us, them) {
			out[i] = Scored{Move: m, Ordinal: OrdinalUnsafe}
			continue
		}
		capturedVal := board.PieceValueMG[m.Captured()]
		moverVal := board.PieceValueMG[m.MovedPiece()]
		out[i] = Scored{Move: m, Ordinal: 1024*capturedVal - moverVal}
	}
	slices.SortStableFunc(out, func(a, c Scored) bool { return a.Ordinal > c.Ordinal })
	return out
}

// Moves extracts the bare moves from a scored, ordered slice.
func Moves(scored []Scored) []board.Move {
	out := make([]board.Move, len(scored))
	for i, s := range scored {
		out[i] = s.Move
	}
	return out
}
