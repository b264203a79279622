package search

import (
	"github.com/chrisflorin/knightwatch/board"
)

// Killers holds, per ply, the two most recent quiet moves that caused a
// beta cutoff. Move ordering tries these after the transposition-table
// move and the good/equal captures (losing captures come later), on the
// heuristic that a quiet move good
// enough to refute one line is often good in a sibling line too.
type Killers struct {
	moves [MaxPly + 1][2]board.Move
}

// Insert records move as the newest killer at ply, demoting the
// previous first killer to second unless move already holds that slot.
func (k *Killers) Insert(ply int, move board.Move) {
	if ply < 0 || ply > MaxPly {
		return
	}
	if k.moves[ply][0].Equal(move) {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = move
}

// First and Second return the killer slots at ply (the zero Move if
// unset).
func (k *Killers) First(ply int) board.Move {
	if ply < 0 || ply > MaxPly {
		return 0
	}
	return k.moves[ply][0]
}

func (k *Killers) Second(ply int) board.Move {
	if ply < 0 || ply > MaxPly {
		return 0
	}
	return k.moves[ply][1]
}

// Clear resets every ply's killer pair, done once per root search
// (spec.md §4.I: killer/butterfly tables reset between searches).
func (k *Killers) Clear() {
	*k = Killers{}
}
