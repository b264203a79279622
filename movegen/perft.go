package movegen

import "github.com/chrisflorin/knightwatch/board"

// Perft counts the leaf nodes reachable in exactly depth plies — the
// standard move-generator correctness exercise (spec.md §8). withPrecalc
// is left off since perft never reads the incremental hash/eval fields.
func Perft(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := GenerateAllMoves(b)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		child := b.DoMove(m, false)
		nodes += Perft(&child, depth-1)
	}
	return nodes
}
