package search

import (
	bb "github.com/chrisflorin/knightwatch/bitboard"
)

// historyMaxVal bounds the butterfly counters; crossing it halves the
// whole table so older bumps fade relative to recent ones instead of
// letting the counters grow without bound across a long search.
const historyMaxVal = 1 << 20

// History is the butterfly table: for each (color, moved piece,
// destination square) it counts how often a quiet move to that square
// caused a beta cutoff, used as a move-ordering tiebreaker below killers.
type History struct {
	counts [2][bb.KING + 1][64]int32
}

// Bump increments the counter for a quiet move that caused a cutoff.
func (h *History) Bump(c bb.Color, moved bb.Piece, dst bb.Square) {
	h.counts[c][moved][dst]++
	if h.counts[c][moved][dst] >= historyMaxVal {
		h.halve()
	}
}

func (h *History) halve() {
	for c := 0; c < 2; c++ {
		for p := range h.counts[c] {
			for sq := range h.counts[c][p] {
				h.counts[c][p][sq] /= 2
			}
		}
	}
}

// Lookup binds the butterfly table to a fixed side to move, matching
// movegen.HistoryLookup's (moved, dst) signature for OrderContext.
func (h *History) Lookup(c bb.Color) func(moved bb.Piece, dst bb.Square) int32 {
	return func(moved bb.Piece, dst bb.Square) int32 {
		return h.counts[c][moved][dst]
	}
}

// Clear resets every counter, done once per root search.
func (h *History) Clear() {
	*h = History{}
}
