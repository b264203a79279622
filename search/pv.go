package search

import (
	"strings"

	"github.com/chrisflorin/knightwatch/board"
)

// MaxPly bounds recursion depth and sizes every per-ply array in the
// searcher (killers, PV buffers).
const MaxPly = 128

// PVLine is an ordered sequence of moves, maintained by
// copying a child node's line backward into the parent's with the move
// that produced it prefixed on front.
type PVLine struct {
	Moves []board.Move
}

// Clear empties the line without releasing its backing array.
func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// Update sets pv to [move] followed by child's moves.
func (pv *PVLine) Update(move board.Move, child PVLine) {
	pv.Moves = append(pv.Moves[:0], move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

// Clone returns an independent copy, since child PV buffers are reused
// (and cleared) across sibling searches at the same node.
func (pv PVLine) Clone() PVLine {
	out := make([]board.Move, len(pv.Moves))
	copy(out, pv.Moves)
	return PVLine{Moves: out}
}

// GetPVMove returns the first move of the line, or the zero Move if
// empty - the caller's best-effort fallback when a search is aborted
// before completing any iteration.
func (pv PVLine) GetPVMove() board.Move {
	if len(pv.Moves) == 0 {
		return 0
	}
	return pv.Moves[0]
}

// String renders the line as space-separated coordinate moves, e.g.
// "e2e4 e7e5 g1f3".
func (pv PVLine) String() string {
	parts := make([]string, len(pv.Moves))
	for i, m := range pv.Moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
