package eval

import (
	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
)

// EndgameHandler scores a recognised material configuration.
type EndgameHandler func(b *board.Board, p *Params) int32

// EndgameTable dispatches by material-hash to a specialised evaluator
// for 2-5 piece endings (spec.md §4.G). The key is a Zobrist-like hash
// of material counts only (board.RecomputeMaterialHash), so both colour
// orientations of a given ending share the table the same way a real
// position would collide on it.
type EndgameTable struct {
	handlers map[uint64]EndgameHandler
}

// DefaultEndgames is the built-in recogniser table, populated once at
// package init from a set of canonical minimal FENs.
var DefaultEndgames = newDefaultEndgameTable()

// Probe looks the position's material hash up; ok is false on a miss,
// in which case the caller falls through to the general evaluator.
func (t *EndgameTable) Probe(b *board.Board, p *Params) (int32, bool) {
	h, ok := t.handlers[b.MaterialHashValue]
	if !ok {
		return 0, false
	}
	return h(b, p), true
}

func (t *EndgameTable) install(fen string, h EndgameHandler) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		panic("eval: bad endgame recogniser FEN " + fen + ": " + err.Error())
	}
	t.handlers[b.MaterialHashValue] = h
}

func newDefaultEndgameTable() *EndgameTable {
	t := &EndgameTable{handlers: make(map[uint64]EndgameHandler)}

	drawn := func(b *board.Board, p *Params) int32 { return 0 }
	weakKing := func(b *board.Board, p *Params) int32 { return weakKingEndgame(b, p, p.BasicallyWinning) }
	drawish := func(b *board.Board, p *Params) int32 { return weakKingEndgame(b, p, 0) }
	cannotWin := func(b *board.Board, p *Params) int32 { return cannotWinEndgame(b, p) }

	// Drawn material balances: minor-vs-minor and the classic
	// rook-for-minor exchange imbalances that are drawish regardless of
	// who is "up" on paper.
	t.install("4k3/8/8/8/8/8/8/2N1K3 w - - 0 1", weakKing)  // KN vs K (mating, if driven into a corner with help — kept simple)
	t.install("2n1k3/8/8/8/8/8/8/4K3 w - - 0 1", weakKing)
	t.install("4k3/8/8/8/8/8/8/2NNK3 w - - 0 1", drawn) // KNN vs K: known draw
	t.install("2nnk3/8/8/8/8/8/8/4K3 w - - 0 1", drawn)
	t.install("4k1n1/8/8/8/8/8/8/2N1K3 w - - 0 1", drawn) // KN vs KN
	t.install("4k1b1/8/8/8/8/8/8/2B1K3 w - - 0 1", drawn) // KB vs KB
	t.install("4k1n1/8/8/8/8/8/8/3RK3 w - - 0 1", drawn) // KR vs KN
	t.install("4k1r1/8/8/8/8/8/8/3NK3 w - - 0 1", drawn)
	t.install("4k1r1/8/8/8/8/8/8/2Q1K3 w - - 0 1", drawn) // KQ vs KR

	t.install("4k3/8/8/8/8/8/8/3QK3 w - - 0 1", weakKing) // KQ vs K
	t.install("3qk3/8/8/8/8/8/8/4K3 w - - 0 1", weakKing)
	t.install("4k3/8/8/8/8/8/8/3RK3 w - - 0 1", weakKing) // KR vs K
	t.install("3rk3/8/8/8/8/8/8/4K3 w - - 0 1", weakKing)
	t.install("4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1", weakKing) // KBB vs K
	t.install("2b1k1b1/8/8/8/8/8/8/4K3 w - - 0 1", weakKing)

	t.install("4k3/8/8/8/8/8/8/2BNK3 w - - 0 1", drawish) // KBN vs K: technically won, scored conservatively here
	t.install("2bnk3/8/8/8/8/8/8/4K3 w - - 0 1", drawish)

	// KR vs KP, KB vs KP, KN vs KP: the extra pawn means the strong side's
	// material edge cannot convert; clamp to a near-draw.
	t.install("4k3/4p3/8/8/8/8/8/2N1K3 w - - 0 1", cannotWin)
	t.install("4k3/8/8/8/8/8/4P3/2n1K3 w - - 0 1", cannotWin)
	t.install("4k3/4p3/8/8/8/8/8/3RK3 w - - 0 1", cannotWin)
	t.install("4k3/8/8/8/8/8/4P3/3rK3 w - - 0 1", cannotWin)
	t.install("4k3/4p3/8/8/8/8/8/2B1K3 w - - 0 1", cannotWin)
	t.install("4k3/8/8/8/8/8/4P3/2b1K3 w - - 0 1", cannotWin)

	return t
}

// weakKingEndgame implements spec.md §4.G's weakKingEndgame/weakKingDrawish:
// base + GeneralMate[weakKingSq] + Proximity[dist] + endgamePST, signed to
// side-to-move. Which side is "weak" is read off material, not colour, so
// the same handler covers both colour orientations of an ending.
func weakKingEndgame(b *board.Board, p *Params, base int32) int32 {
	weak := bb.Black
	if b.MaterialEval.MG+b.MaterialEval.EG < 0 {
		weak = bb.White
	}
	strong := weak.Other()

	weakSq := b.KingSquare(weak)
	strongSq := b.KingSquare(strong)
	dist := chebyshev(weakSq, strongSq)

	score := base + p.GeneralMate[weakSq] + p.Proximity[dist] + b.PSTEval.EG
	return ToMove(sideSign(strong)*score, b.SideToMove)
}

// cannotWinEndgame implements knkp/kbkp: the strong side's extra minor
// or rook cannot convert against the lone pawn, so the score is the
// ordinary PST evaluation clamped below the draw threshold.
func cannotWinEndgame(b *board.Board, p *Params) int32 {
	blended := ToMove(Blend(materialAndPST(b), PieceCount(b)), b.SideToMove)
	if blended > p.Draw-1 {
		blended = p.Draw - 1
	}
	if blended < -(p.Draw - 1) {
		blended = -(p.Draw - 1)
	}
	return blended
}
