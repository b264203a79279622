// Package engine is the process-wide facade a CECP-style driver talks
// to: it owns the current board, the move history, the transposition
// table, and the killer/butterfly tables the searcher reuses across
// "go" commands, wiring board, movegen, eval, tt and search together
// the way the teacher's engine package wires its own globals (spec.md
// §6).
package engine

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chrisflorin/knightwatch/board"
	"github.com/chrisflorin/knightwatch/eval"
	"github.com/chrisflorin/knightwatch/movegen"
	"github.com/chrisflorin/knightwatch/search"
	"github.com/chrisflorin/knightwatch/tt"
)

// Engine holds every piece of process-wide state a CECP driver needs
// to drive across "new"/"setboard"/"usermove"/"go" calls. Unlike the
// teacher's package-level globals, this state is instance-held so a
// driver (or a test) can run more than one game in a process.
type Engine struct {
	Board   board.Board
	History *board.History
	TT      *tt.Table
	Eval    *eval.Evaluator
	Search  *search.Searcher

	forceMode bool

	// Per-move budget knobs, set independently by sd/st/sn/nps/time/
	// otim/level and combined into a search.Limits at "go" time.
	depth     int
	moveTime  time.Duration
	nodes     uint64
	nps       uint64
	timeLeft  time.Duration
	oppTime   time.Duration
	movesToGo int
	increment time.Duration
}

// New builds an engine at the standard starting position with a fresh
// transposition table, ready to receive protocol commands.
func New(ttSizeMB int) *Engine {
	e := &Engine{
		History: board.NewHistory(),
		TT:      tt.New(ttSizeMB),
		Eval:    eval.NewEvaluator(),
	}
	e.Search = search.NewSearcher(e.TT, e.Eval, e.History)
	e.resetBoard()
	return e
}

func (e *Engine) resetBoard() {
	b, err := board.ParseFEN(board.StartingFEN)
	if err != nil {
		// StartingFEN is a compile-time constant; a parse failure here
		// means the constant itself is broken, not anything a caller did.
		panic(fmt.Errorf("engine: starting position failed to parse: %w", err))
	}
	e.Board = b
}

// NewGame resets to the initial position and clears every table that
// carries information between games: TT, killers/history, move history
// (spec.md §6's "new" command).
func (e *Engine) NewGame() {
	e.resetBoard()
	e.History.Reset()
	e.TT.Clear()
	e.Search.Killers.Clear()
	e.Search.History.Clear()
	e.forceMode = false
	log.Info().Msg("new game")
}

// SetBoard loads the given FEN, replacing the current position and
// clearing move history (there is no ancestor game to repeat against).
func (e *Engine) SetBoard(fen string) error {
	b, err := board.ParseFEN(fen)
	if err != nil {
		log.Warn().Err(err).Str("fen", fen).Msg("setboard: malformed FEN")
		return fmt.Errorf("setboard: %w", err)
	}
	e.Board = b
	e.History.Reset()
	return nil
}

// UserMove parses and applies a coordinate move to the current
// position, pushing it onto the move history. Illegal moves are the
// driver's responsibility to filter (spec.md §7); UserMove only
// reports a parse failure, never a legality check.
func (e *Engine) UserMove(moveStr string) error {
	m, ok := board.ParseMoveInBoard(&e.Board, moveStr)
	if !ok {
		log.Warn().Str("move", moveStr).Msg("usermove: could not parse move")
		return fmt.Errorf("usermove: could not parse %q", moveStr)
	}
	child := e.Board.DoMove(m, true)
	e.History.Push(child.HashValue, m.MovedPiece(), m.Captured())
	e.Board = child
	return nil
}

// Undo pops the most recent entry of the repetition-detection stack.
// The board has no built-in "unmove" and the moves themselves are not
// recorded, so Undo does not change e.Board: the position stays as it
// was before the call.
func (e *Engine) Undo() {
	e.History.Pop()
}

// Force toggles "do not auto-reply after usermove" mode.
func (e *Engine) Force(on bool) {
	e.forceMode = on
}

// ForceMode reports the current force-mode setting.
func (e *Engine) ForceMode() bool { return e.forceMode }

// SetDepth sets a fixed maximum search depth ("sd"); 0 clears it.
func (e *Engine) SetDepth(d int) { e.depth = d }

// SetTime sets a fixed per-move search time ("st"); 0 clears it.
func (e *Engine) SetTime(d time.Duration) { e.moveTime = d }

// SetNodes sets a fixed per-move node budget ("sn"); 0 clears it.
func (e *Engine) SetNodes(n uint64) { e.nodes = n }

// SetNPS declares a synthetic node-rate clock ("nps"); 0 means use the
// wall clock instead.
func (e *Engine) SetNPS(n uint64) { e.nps = n }

// SetClock sets the engine's own remaining clock in centiseconds ("time").
func (e *Engine) SetClock(centiseconds int) {
	e.timeLeft = time.Duration(centiseconds) * 10 * time.Millisecond
}

// SetOpponentClock sets the opponent's remaining clock in centiseconds
// ("otim"). It is recorded for completeness but the searcher's budget
// only ever depends on the engine's own clock.
func (e *Engine) SetOpponentClock(centiseconds int) {
	e.oppTime = time.Duration(centiseconds) * 10 * time.Millisecond
}

// SetLevel sets a tournament time control: mps moves in base seconds
// plus inc seconds per move ("level").
func (e *Engine) SetLevel(mps int, base time.Duration, inc time.Duration) {
	e.movesToGo = mps
	e.timeLeft = base
	e.increment = inc
}

// Perft runs the move-count correctness exercise to the given depth
// from the current position (spec.md §8).
func (e *Engine) Perft(depth int) uint64 {
	return movegen.Perft(&e.Board, depth)
}

// SetValue updates a named evaluation parameter ("setvalue"). ok is
// false for an unrecognised name, per spec.md §7 ("unknown protocol
// command/parameter name is silently ignored/diagnosed by the driver").
func (e *Engine) SetValue(name string, value int32) bool {
	return e.Eval.Params.Set(name, value)
}

// LoadPersonality applies every "name score" line in the file at path.
func (e *Engine) LoadPersonality(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("personality: %w", err)
	}
	defer f.Close()
	return e.Eval.Params.LoadPersonality(bufio.NewReader(f))
}

// Ping answers the CECP "ping N" keepalive with "pong N".
func (e *Engine) Ping(n int) string {
	return fmt.Sprintf("pong %d", n)
}

// limits assembles the search.Limits this move should run under from
// whatever combination of sd/st/sn/nps/time/otim/level has been set.
func (e *Engine) limits() search.Limits {
	return search.Limits{
		Depth:      e.depth,
		MoveTime:   e.moveTime,
		Nodes:      e.nodes,
		NPS:        e.nps,
		TimeLeft:   e.timeLeft,
		Increment:  e.increment,
		MovesToGo:  e.movesToGo,
		FullMoveNo: e.Board.FullMoveCount,
	}
}

// GoResult is what "go" reports back to the driver: the move chosen
// (already applied to the board) plus the final iteration's stats for
// the thinking-output line (spec.md §6).
type GoResult struct {
	Move   board.Move
	Result search.Result
}

// Go runs iterative deepening under whatever limits are currently set,
// applies the chosen move to the board, pushes history, and returns it
// for the driver to report ("go" command; spec.md §6).
func (e *Engine) Go() GoResult {
	clock := search.NewStdClock(e.limits(), time.Now())
	result := e.Search.Search(&e.Board, clock)

	var chosen board.Move
	if len(result.PV.Moves) > 0 {
		chosen = result.PV.Moves[0]
	}
	if chosen != board.NullMove {
		child := e.Board.DoMove(chosen, true)
		e.History.Push(child.HashValue, chosen.MovedPiece(), chosen.Captured())
		e.Board = child
	}
	log.Info().Int("depth", result.Depth).Int32("score", result.Score).
		Uint64("nodes", result.Nodes).Str("move", chosen.String()).Msg("go: move chosen")
	return GoResult{Move: chosen, Result: result}
}

// ThinkingLine renders one completed iteration in the CECP thinking
// format: "depth score-or-mate time-cs nodes pv" (spec.md §6). Mate
// scores report as ±(10000-plies)/100 once |score| exceeds
// Win-MaxPly.
func ThinkingLine(r search.Result) string {
	score := r.Score
	var scoreField int32
	if score > search.Win-int32(search.MaxPly) {
		pliesToMate := search.Win - score
		scoreField = (10000 - pliesToMate) / 100
	} else if score < -(search.Win - int32(search.MaxPly)) {
		pliesToMate := search.Win + score
		scoreField = -(10000 - pliesToMate) / 100
	} else {
		scoreField = score
	}
	timeCs := r.Elapsed.Milliseconds() / 10
	return fmt.Sprintf("%d %d %d %d %s", r.Depth, scoreField, timeCs, r.Nodes, r.PV.String())
}
