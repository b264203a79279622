package search

import (
	"time"
)

// Clock is the cooperative time/node/depth budget oracle the searcher
// polls at the top of every search call (spec.md §5). A false result
// means the current iteration's result is unreliable and the searcher
// must abort and fall back to the previous completed iteration's PV.
type Clock interface {
	ShouldContinue(depth int, nodes uint64) bool
}

// Limits describes the budget for one "go" command, combining the
// fixed sd/st/sn/nps knobs with a wall-clock "time/otim/level" time
// control, mirroring spec.md §6's protocol command table.
type Limits struct {
	Depth      int           // sd: 0 means unlimited
	MoveTime   time.Duration // st: 0 means not fixed
	Nodes      uint64        // sn: 0 means unlimited
	NPS        uint64        // nps: synthetic node-rate clock, 0 means use the wall clock
	TimeLeft   time.Duration // time: engine's remaining clock
	Increment  time.Duration // level's inc field
	MovesToGo  int           // level's mps field, 0 means "sudden death" (estimate)
	FullMoveNo int           // used to estimate moves remaining from game phase
}

// StdClock is the default Clock: a single per-move deadline computed
// once in NewStdClock, checked every pollInterval nodes to keep the hot path
// branch-cheap, grounded on the teacher's nodesChecked&4095==0 polling
// pattern in engine/search.go.
type StdClock struct {
	limits    Limits
	start     time.Time
	deadline  time.Time
	hasDepth  bool
	hasNodes  bool
	hasTime   bool
	lastNodes uint64
	stopped   bool
}

const pollInterval = 2047

// NewStdClock builds a clock for one search, already started.
func NewStdClock(limits Limits, now time.Time) *StdClock {
	c := &StdClock{limits: limits, start: now}
	c.hasDepth = limits.Depth > 0
	c.hasNodes = limits.Nodes > 0
	if limits.MoveTime > 0 {
		c.hasTime = true
		c.deadline = now.Add(limits.MoveTime)
	} else if limits.TimeLeft > 0 {
		c.hasTime = true
		c.deadline = now.Add(allocateMoveTime(limits))
	}
	return c
}

// allocateMoveTime estimates how long to spend on this move from the
// remaining clock, increment, and a phase-based moves-remaining guess,
// the same shape as the teacher's TimeHandler.StartTime but without
// its panic-mode/overhead knobs (spec.md's clock model is the simpler
// shouldContinueSearch(depth, nodes) oracle, not a full time manager).
func allocateMoveTime(l Limits) time.Duration {
	movesLeft := l.MovesToGo
	if movesLeft <= 0 {
		movesLeft = estimateMovesRemaining(l.FullMoveNo)
	}
	budget := l.TimeLeft/time.Duration(movesLeft) + l.Increment
	maxSpend := l.TimeLeft * 7 / 10
	if budget > maxSpend {
		budget = maxSpend
	}
	if budget <= 0 {
		budget = time.Millisecond
	}
	return budget
}

func estimateMovesRemaining(fullMoveNo int) int {
	left := 40 - fullMoveNo
	if left < 10 {
		left = 10
	}
	if left > 40 {
		left = 40
	}
	return left
}

// ShouldContinue reports whether the search may keep running. depth=0
// checks are cheap: only a real wall-clock read every pollInterval
// nodes.
func (c *StdClock) ShouldContinue(depth int, nodes uint64) bool {
	if c.stopped {
		return false
	}
	if c.hasDepth && depth > c.limits.Depth {
		c.stopped = true
		return false
	}
	if c.hasNodes && nodes >= c.limits.Nodes {
		c.stopped = true
		return false
	}
	if c.hasTime && (nodes-c.lastNodes) >= pollInterval {
		c.lastNodes = nodes
		if !time.Now().Before(c.deadline) {
			c.stopped = true
			return false
		}
	}
	return true
}

// Elapsed returns the time spent since the clock was built by
// NewStdClock, for "info ... time" output.
func (c *StdClock) Elapsed(now time.Time) time.Duration {
	return now.Sub(c.start)
}

// FixedDepthClock never stops on time or nodes, useful for perft-style
// exact-depth searches and for tests that want deterministic behaviour.
type FixedDepthClock struct {
	MaxDepth int
}

func (c FixedDepthClock) ShouldContinue(depth int, nodes uint64) bool {
	return c.MaxDepth <= 0 || depth <= c.MaxDepth
}
