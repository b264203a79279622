// Package search implements the iterative-deepening, principal-variation
// negamax searcher described in spec.md §4.I: a single-threaded tree
// walk over board.Board positions, cooperatively cancelled via a Clock,
// ordered by movegen's ordinal bands and fed by the transposition table
// and the killer/butterfly tables this package owns.
package search

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
	"github.com/chrisflorin/knightwatch/eval"
	"github.com/chrisflorin/knightwatch/movegen"
	"github.com/chrisflorin/knightwatch/tt"
)

// Win is the mate score; a returned score whose absolute value exceeds
// Win-MaxPly is a forced mate in (Win-|score|) plies.
const Win int32 = 32000

const nullMoveReduction = 3

// nodeType mirrors the PV/Cut/All classification spec.md §4.I's
// search<NT> is parameterised over, driving which moves get a full
// window and which get late-move reductions.
type nodeType int

const (
	pvNode nodeType = iota
	cutNode
	allNode
)

func (nt nodeType) flip() nodeType {
	if nt == cutNode {
		return allNode
	}
	return cutNode
}

// Searcher owns every piece of mutable search state: the shared
// transposition table, the killer/history tables, the evaluator, and
// the process-wide repetition history shared with the "usermove"/"undo"
// protocol commands. One Searcher runs one search at a time.
type Searcher struct {
	TT         *tt.Table
	Killers    *Killers
	History    *History
	Eval       *eval.Evaluator
	Repetition *board.History

	clock     Clock
	rootDepth int
	nodes     uint64
	aborted   bool
	pv        [MaxPly + 2]PVLine
}

// NewSearcher builds a Searcher around the given shared tables.
func NewSearcher(table *tt.Table, evaluator *eval.Evaluator, repetition *board.History) *Searcher {
	return &Searcher{
		TT:         table,
		Killers:    &Killers{},
		History:    &History{},
		Eval:       evaluator,
		Repetition: repetition,
	}
}

// Result is one completed iterative-deepening iteration's outcome.
type Result struct {
	Depth   int
	Score   int32
	Nodes   uint64
	PV      PVLine
	Elapsed time.Duration
}

type rootMove struct {
	Move  board.Move
	Score int32
}

// Search runs iterative deepening from b until clock says stop, and
// returns the last fully-completed iteration's result.
func (s *Searcher) Search(b *board.Board, clock Clock) Result {
	s.TT.IncrementAge()
	s.Killers.Clear()
	s.History.Clear()
	s.clock = clock
	s.nodes = 0
	s.aborted = false
	start := time.Now()

	legal := movegen.GenerateAllMoves(b)
	if len(legal) == 0 {
		score := int32(0)
		if b.IsInCheck(b.SideToMove) {
			score = -Win
		}
		return Result{Score: score}
	}

	root := make([]rootMove, len(legal))
	for i, m := range legal {
		root[i] = rootMove{Move: m}
	}

	var best Result
	for depth := 1; clock.ShouldContinue(depth, s.nodes); depth++ {
		s.rootDepth = depth
		score, pv, ok := s.rootSearch(b, root, depth)
		if !ok {
			log.Debug().Int("depth", depth).Uint64("nodes", s.nodes).Msg("search aborted mid-iteration, keeping previous depth's result")
			break
		}
		best = Result{Depth: depth, Score: score, Nodes: s.nodes, PV: pv, Elapsed: time.Since(start)}
		log.Debug().Int("depth", depth).Int32("score", score).Uint64("nodes", s.nodes).Str("pv", pv.String()).Msg("iteration complete")

		sortRootMoves(root)

		if score > Win-int32(MaxPly) || score < -(Win-int32(MaxPly)) {
			break // found a forced mate, no point searching deeper
		}
	}
	return best
}

// sortRootMoves re-orders the root move list by the previous
// iteration's scores, highest first, so the next iteration's move
// ordering tries last time's best move first (spec.md §4.I).
func sortRootMoves(root []rootMove) {
	slices.SortStableFunc(root, func(a, b rootMove) bool { return a.Score > b.Score })
}

// rootSearch searches every root move once at the given depth, the
// first as full-window PV, the rest with a null-window/PVS re-search,
// per spec.md §4.I's "Root search".
func (s *Searcher) rootSearch(b *board.Board, root []rootMove, depth int) (int32, PVLine, bool) {
	alpha, beta := -Win, Win
	bestScore := -Win - 1
	var bestPV PVLine

	for i := range root {
		if !s.clock.ShouldContinue(depth, s.nodes) {
			return 0, PVLine{}, false
		}
		m := root[i].Move
		child := b.DoMove(m, true)

		var score int32
		if i == 0 {
			score = -s.search(&child, -beta, -alpha, depth-1, 1, pvNode)
		} else {
			score = -s.search(&child, -alpha-1, -alpha, depth-1, 1, cutNode)
			if !s.aborted && score > alpha {
				score = -s.search(&child, -beta, -alpha, depth-1, 1, pvNode)
			}
		}
		if s.aborted {
			return 0, PVLine{}, false
		}

		root[i].Score = score
		if score > bestScore {
			bestScore = score
			bestPV.Update(m, s.pv[1])
		}
		if score > alpha {
			alpha = score
		}
	}
	return bestScore, bestPV, true
}

// search is negamax search<NT> from spec.md §4.I, steps 1-12.
func (s *Searcher) search(b *board.Board, alpha, beta int32, depthLeft, currentDepth int, nt nodeType) int32 {
	s.pv[currentDepth].Clear()

	// 1. abort checks.
	if currentDepth >= MaxPly-1 {
		return s.Eval.Evaluate(b, alpha, beta)
	}
	if s.aborted || !s.clock.ShouldContinue(s.rootDepth, s.nodes) {
		s.aborted = true
		return 0
	}

	// 2. draw detection, checked against ancestors only: this node's own
	// hash is pushed onto Repetition after this check and popped before
	// returning, so a later descendant sees it but this check does not
	// trivially match itself.
	if currentDepth > 0 && isDraw(b, s.Repetition) {
		return 0
	}

	// 3. mate-distance pruning.
	if a := -Win + int32(currentDepth); a > alpha {
		alpha = a
	}
	if bnd := Win - int32(currentDepth+1); bnd < beta {
		beta = bnd
	}
	if alpha >= beta {
		return alpha
	}

	inCheck := b.IsInCheck(b.SideToMove)

	// 4. quiescence hand-off.
	if depthLeft <= 0 && !inCheck {
		return s.quiescence(b, alpha, beta, currentDepth, nt)
	}

	// 5. node counter.
	s.nodes++

	entry := historyEntryFor(b)
	s.Repetition.Push(entry.Hash, entry.Moved, entry.Captured)
	defer s.Repetition.Pop()

	isPV := nt == pvNode
	nearMate := beta >= Win-int32(MaxPly) || alpha <= -(Win-int32(MaxPly))

	// 6. transposition probe, non-PV nodes only.
	var ttMove board.Move
	ttHit := false
	if !isPV {
		if entryType, score, depth, custom, ok := s.TT.Probe(b.HashValue); ok && int(depth) >= depthLeft {
			ttHit = true
			ttMove = custom
			switch entryType {
			case tt.EXACT:
				return score
			case tt.LOWER:
				if score >= beta {
					return score
				}
			case tt.UPPER:
				if score <= alpha {
					return score
				}
			}
		} else if ok {
			ttMove = custom
		}
	}

	// 7. null-move pruning.
	if !isPV && !inCheck && !nearMate && depthLeft > 2 && !b.NullMove && !ttHit {
		nullChild := b.DoNullMove()
		nullScore := -s.search(&nullChild, -beta, -beta+1, depthLeft-nullMoveReduction, currentDepth+1, nt.flip())
		if !s.aborted && nullScore >= beta && !isMateScore(nullScore) {
			verify := s.search(b, beta-1, beta, depthLeft-nullMoveReduction, currentDepth, nt)
			if !s.aborted && verify >= beta {
				return beta
			}
		}
		if s.aborted {
			return 0
		}
	}

	// 8. static eval.
	var staticEval int32
	if inCheck {
		staticEval = -Win + int32(currentDepth)
	} else {
		staticEval = s.Eval.Evaluate(b, alpha, beta)
	}

	// 9. futility pruning.
	pawnValue := board.PieceValueMG[bb.PAWN]
	if !isPV && !inCheck && !nearMate && depthLeft < 4 && !ttHit {
		if staticEval-int32(depthLeft)*pawnValue >= beta {
			return staticEval
		}
	}

	// 10. move generation.
	moves := movegen.GenerateAllMoves(b)
	if len(moves) == 0 {
		if inCheck {
			return -Win + int32(currentDepth)
		}
		return 0
	}

	// 11. searchLoop.
	result, bestMove := s.searchLoop(b, moves, alpha, beta, depthLeft, currentDepth, nt, ttMove, inCheck)
	if s.aborted {
		return 0
	}

	// 12. TT store.
	entryType := tt.EXACT
	switch {
	case result >= beta:
		entryType = tt.LOWER
	case result <= alpha:
		entryType = tt.UPPER
	}
	s.TT.Store(b.HashValue, result, int8(depthLeft), entryType, bestMove)
	return result
}

// searchLoop is spec.md §4.I's searchLoop<NT>: internal iterative
// deepening to seed ordering, check extensions, late-move reductions,
// and the PVS recursion structure.
func (s *Searcher) searchLoop(b *board.Board, moves []board.Move, alpha, beta int32, depthLeft, currentDepth int, nt nodeType, ttMove board.Move, inCheck bool) (int32, board.Move) {
	if depthLeft > 3 && ttMove == board.NullMove {
		s.search(b, alpha, beta, depthLeft-3, currentDepth, nt)
		if s.aborted {
			return 0, board.NullMove
		}
		if _, _, _, custom, ok := s.TT.Probe(b.HashValue); ok {
			ttMove = custom
		}
	}

	ctx := movegen.OrderContext{
		TTMove:  ttMove,
		Killer1: s.Killers.First(currentDepth),
		Killer2: s.Killers.Second(currentDepth),
		History: s.History.Lookup(b.SideToMove),
	}
	ordered := movegen.OrderMoves(b, moves, ctx)

	extension := 0
	if inCheck && currentDepth >= 2 {
		extension = 1
	}

	isPV := nt == pvNode
	bestMove := board.NullMove
	searched := 0

	for idx, sm := range ordered {
		m := sm.Move
		reduction := 0
		if !isPV && searched > 0 && extension == 0 {
			reduction = s.lmrReduction(b, m, depthLeft, len(ordered)-idx-1, searched)
		}

		child := b.DoMove(m, true)
		childDepth := depthLeft - 1 + extension
		var score int32

		switch {
		case isPV && idx == 0:
			score = -s.search(&child, -beta, -alpha, childDepth, currentDepth+1, pvNode)
		case isPV:
			score = -s.search(&child, -alpha-1, -alpha, childDepth, currentDepth+1, cutNode)
			if !s.aborted && score > alpha && score < beta {
				score = -s.search(&child, -beta, -alpha, childDepth, currentDepth+1, pvNode)
			}
		default:
			reducedDepth := childDepth - reduction
			if reducedDepth < 0 {
				reducedDepth = 0
			}
			score = -s.search(&child, -alpha-1, -alpha, reducedDepth, currentDepth+1, nt.flip())
			if !s.aborted && reduction > 0 && score > alpha {
				score = -s.search(&child, -alpha-1, -alpha, childDepth, currentDepth+1, nt.flip())
			}
		}
		if s.aborted {
			return 0, board.NullMove
		}
		searched++

		if score >= beta {
			if !m.IsCapture() {
				s.History.Bump(b.SideToMove, m.MovedPiece(), m.Dst())
				s.Killers.Insert(currentDepth, m)
			}
			return beta, m
		}
		if score > alpha {
			alpha = score
			bestMove = m
			s.pv[currentDepth].Update(m, s.pv[currentDepth+1])
		}
	}
	return alpha, bestMove
}

// lmrReduction computes spec.md §4.I step 1's late-move-reduction ply
// count, biased by the evaluator's LMR0-LMR3 tunables.
func (s *Searcher) lmrReduction(b *board.Board, m board.Move, depthLeft, movesLeft, searched int) int {
	p := s.Eval.Params
	r0 := float64(p.LMR0) / 1000
	r1 := float64(p.LMR1) / 1000
	r2 := float64(p.LMR2) / 1000
	r3 := float64(p.LMR3) / 1000

	inner := (1+r0)*math.Log(float64(depthLeft)+1)*
		(1+r1)*math.Log(float64(movesLeft)+1)*
		(1+r2)*math.Log(float64(searched)+1) + 1
	r := int((1 + r3) * math.Log(inner))

	if SEE(b, m.Src(), m.Dst()) < board.PieceValueMG[bb.PAWN] {
		r++
	}
	if r < 0 {
		r = 0
	}
	return r
}

// quiescence is spec.md §4.I's quiescenceSearch<NT>: captures-only
// (or check evasions) search to a quiet position before handing a
// score back to the main search.
func (s *Searcher) quiescence(b *board.Board, alpha, beta int32, currentDepth int, nt nodeType) int32 {
	if currentDepth >= MaxPly-1 {
		return s.Eval.Evaluate(b, alpha, beta)
	}
	if s.aborted || !s.clock.ShouldContinue(s.rootDepth, s.nodes) {
		s.aborted = true
		return 0
	}
	s.nodes++

	inCheck := b.IsInCheck(b.SideToMove)
	var standPat int32
	if inCheck {
		standPat = -Win + int32(currentDepth)
	} else {
		standPat = s.Eval.Evaluate(b, alpha, beta)
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	var moves []board.Move
	if inCheck {
		moves = movegen.GenerateCheckEvasions(b)
	} else {
		moves = movegen.GenerateAllCaptures(b)
	}
	if len(moves) == 0 {
		if inCheck {
			return -Win + int32(currentDepth)
		}
		return standPat
	}

	var ordered []movegen.Scored
	if inCheck {
		ordered = movegen.OrderMoves(b, moves, movegen.OrderContext{})
	} else {
		ordered = movegen.OrderCaptures(b, moves)
	}

	pawnValue := board.PieceValueMG[bb.PAWN]
	for _, sm := range ordered {
		m := sm.Move
		if !inCheck {
			capturedVal := board.PieceValueMG[m.Captured()]
			if standPat+capturedVal+2*pawnValue < alpha {
				continue
			}
			if SEE(b, m.Src(), m.Dst()) < pawnValue {
				continue
			}
		}
		child := b.DoMove(m, true)
		score := -s.quiescence(&child, -beta, -alpha, currentDepth+1, nt.flip())
		if s.aborted {
			return 0
		}
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func isMateScore(score int32) bool {
	return score > Win-int32(MaxPly) || score < -(Win-int32(MaxPly))
}

// historyEntryFor derives the board.HistoryEntry fields a move into b
// would have produced, from b's own fifty-move counter: a reset to
// zero means the last move was a pawn push or a capture, exactly the
// condition board.HistoryEntry.reversible checks for. This lets search
// push repetition-scan entries without threading the triggering move
// through the recursion.
func historyEntryFor(b *board.Board) board.HistoryEntry {
	if b.FiftyMoveCount == 0 {
		return board.HistoryEntry{Hash: b.HashValue, Moved: bb.PAWN}
	}
	return board.HistoryEntry{Hash: b.HashValue}
}

// isDraw implements spec.md §4.I step 2: fifty-move, repetition, and
// insufficient-material detection.
func isDraw(b *board.Board, hist *board.History) bool {
	if b.FiftyMoveCount >= 100 {
		return true
	}
	if hist.IsRepetition(b.HashValue) {
		return true
	}
	return insufficientMaterial(b)
}

// insufficientMaterial covers spec.md §4.I step 2's named draws: bare
// kings, king+minor vs king, two knights vs a king, and same-colour-
// complex opposite bishops.
func insufficientMaterial(b *board.Board) bool {
	if b.Pieces(bb.White, bb.PAWN)|b.Pieces(bb.Black, bb.PAWN) != 0 {
		return false
	}
	if b.Pieces(bb.White, bb.ROOK)|b.Pieces(bb.Black, bb.ROOK)|b.Pieces(bb.White, bb.QUEEN)|b.Pieces(bb.Black, bb.QUEEN) != 0 {
		return false
	}

	wKnights := b.Pieces(bb.White, bb.KNIGHT)
	bKnights := b.Pieces(bb.Black, bb.KNIGHT)
	wBishops := b.Pieces(bb.White, bb.BISHOP)
	bBishops := b.Pieces(bb.Black, bb.BISHOP)
	wMinors := wKnights.PopCount() + wBishops.PopCount()
	bMinors := bKnights.PopCount() + bBishops.PopCount()

	switch {
	case wMinors == 0 && bMinors == 0:
		return true
	case wMinors+bMinors == 1:
		return true
	case wKnights.PopCount() == 2 && wBishops == 0 && bMinors == 0:
		return true
	case bKnights.PopCount() == 2 && bBishops == 0 && wMinors == 0:
		return true
	case wBishops.PopCount() == 1 && bBishops.PopCount() == 1 && wKnights == 0 && bKnights == 0:
		return squareColorOf(wBishops.LSB()) == squareColorOf(bBishops.LSB())
	}
	return false
}

func squareColorOf(sq bb.Square) int {
	return (int(bb.Rank(sq)) + int(bb.File(sq))) & 1
}
