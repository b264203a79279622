package board

import bb "github.com/chrisflorin/knightwatch/bitboard"

// HistoryEntry is one ply of the append-only move-history stack used
// for repetition detection and "undo".
type HistoryEntry struct {
	Hash     uint64
	Moved    bb.Piece
	Captured bb.Piece
}

// reversible reports whether an entry could possibly repeat an earlier
// position: only quiet, non-pawn moves can.
func (h HistoryEntry) reversible() bool {
	return h.Moved != bb.PAWN && h.Captured == bb.NONE
}

// History is the move-history stack shared by the search and the
// "play move"/"undo" protocol commands.
type History struct {
	entries []HistoryEntry
}

// NewHistory returns an empty history.
func NewHistory() *History { return &History{} }

// Push records a ply's resulting hash along with the moved/captured
// pieces, for repetition scanning. Call with the child board's hash
// and the move that produced it.
func (h *History) Push(hash uint64, moved, captured bb.Piece) {
	h.entries = append(h.entries, HistoryEntry{Hash: hash, Moved: moved, Captured: captured})
}

// Pop removes the most recent entry ("undo").
func (h *History) Pop() {
	if len(h.entries) > 0 {
		h.entries = h.entries[:len(h.entries)-1]
	}
}

// Len reports the number of recorded plies.
func (h *History) Len() int { return len(h.entries) }

// Reset clears the history.
func (h *History) Reset() { h.entries = h.entries[:0] }

// IsRepetition reports whether hash has occurred at least once earlier
// in the history, scanning back only through reversible (quiet,
// non-pawn) plies — an irreversible entry stops the scan, per spec.
func (h *History) IsRepetition(hash uint64) bool {
	for i := len(h.entries) - 1; i >= 0; i-- {
		e := h.entries[i]
		if e.Hash == hash {
			return true
		}
		if !e.reversible() {
			return false
		}
	}
	return false
}

// RepeatedAtLeastTwice reports whether hash has appeared at least twice
// earlier in the history (three-fold repetition including the current
// occurrence), stopping the scan at the last irreversible move. The
// current position is the newest entry (Push records the child's hash),
// so three matching entries are needed.
func (h *History) RepeatedAtLeastTwice(hash uint64) bool {
	count := 0
	for i := len(h.entries) - 1; i >= 0; i-- {
		e := h.entries[i]
		if e.Hash == hash {
			count++
			if count >= 3 {
				return true
			}
		}
		if !e.reversible() {
			return false
		}
	}
	return false
}
