// Command perft is the standalone move-count correctness runner for
// spec.md §8: parse a FEN, walk it to a fixed depth, and report either
// the total leaf count or a per-root-move divide breakdown, grounded
// on the teacher's cmd/perft driver.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/chrisflorin/knightwatch/board"
	"github.com/chrisflorin/knightwatch/movegen"
)

func main() {
	fen := flag.String("fen", board.StartingFEN, "FEN string (defaults to the initial position)")
	depth := flag.Int("depth", 0, "perft depth (required)")
	divide := flag.Bool("divide", false, "print per-root-move node counts instead of just the total")
	repeat := flag.Int("repeat", 1, "repeat perft N times and report aggregate timing")
	label := flag.String("label", "", "optional label prefix for the one-line summary")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		runDivide(&b, *depth)
		return
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += movegen.Perft(&b, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	fmt.Printf("%s\tdepth=%d\tnodes=%d\ttime=%s\tnps=%.0f\n", *label, *depth, totalNodes, elapsed, nps)
}

func runDivide(b *board.Board, depth int) {
	type kv struct {
		move string
		n    uint64
	}
	moves := movegen.GenerateAllMoves(b)
	arr := make([]kv, 0, len(moves))
	var sum uint64
	for _, m := range moves {
		child := b.DoMove(m, false)
		n := movegen.Perft(&child, depth-1)
		arr = append(arr, kv{m.String(), n})
		sum += n
	}
	sort.Slice(arr, func(i, j int) bool { return arr[i].move < arr[j].move })
	for _, x := range arr {
		fmt.Printf("%s: %d\n", x.move, x.n)
	}
	fmt.Printf("Total: %d\n", sum)
}
