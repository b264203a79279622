// Package eval implements the tapered evaluator, pawn structure
// evaluator, and endgame recogniser described in spec.md §4.E-§4.G.
package eval

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	bb "github.com/chrisflorin/knightwatch/bitboard"
)

// Params holds every tunable evaluation constant behind a name, so the
// "setvalue"/"personality" protocol commands can reach into the
// evaluator without the driver knowing its internals. Scalar knobs are
// individually addressable; the larger piece-square-style tables are
// not reachable by name at all.
type Params struct {
	values map[string]*int32

	PawnScore  int32
	LazyMargin int32

	KnightPairMG, KnightPairEG int32
	BishopPairMG, BishopPairEG int32
	RookPairMG, RookPairEG     int32
	QueenPairMG, QueenPairEG   int32

	MobilityMG     [bb.KING + 1]int32
	MobilityEG     [bb.KING + 1]int32
	SafeMobilityMG [bb.KING + 1]int32
	SafeMobilityEG [bb.KING + 1]int32

	AttackPairMG [bb.KING + 1][bb.KING + 1]int32
	AttackPairEG [bb.KING + 1][bb.KING + 1]int32

	TropismMG [bb.KING + 1]int32
	TropismEG [bb.KING + 1]int32

	BishopColorComplexMG, BishopColorComplexEG int32

	RookDoubledMG, RookDoubledEG         int32
	RookOpenFileMG, RookOpenFileEG       int32
	RookBehindPasserMG, RookBehindPasserEG int32

	QueenOpenFileMG, QueenOpenFileEG         int32
	QueenBehindPasserMG, QueenBehindPasserEG int32

	// BetterMobilityMG/EG[kind][|diff|] is added with the sign of the
	// mobility difference (spec.md §4.E step 6).
	BetterMobilityMG [bb.KING + 1][32]int32
	BetterMobilityEG [bb.KING + 1][32]int32

	BoardControlPstMG [64]int32
	BoardControlPstEG [64]int32
	KingControlPstMG  [64]int32
	KingControlPstEG  [64]int32

	PawnPassedPstMG [64]int32
	PawnPassedPstEG [64]int32

	PawnDoubledMG, PawnDoubledEG int32
	PawnTripledMG, PawnTripledEG int32

	PawnChainFrontPstMG [64]int32
	PawnChainFrontPstEG [64]int32
	PawnChainBackPstMG  [64]int32
	PawnChainBackPstEG  [64]int32

	BasicallyWinning int32
	Draw             int32
	GeneralMate      [64]int32
	Proximity        [8]int32

	// LMR0..LMR3 are the late-move-reduction tunables from spec.md
	// §4.I's searchLoop formula, scaled by 1000 so they can live in the
	// same int32 parameter table as everything else (e.g. LMR0=750
	// means R0=0.75).
	LMR0, LMR1, LMR2, LMR3 int32
}

// Default is the process-wide parameter set the evaluator consults
// unless a search is explicitly handed a different personality.
var Default = NewParams()

// NewParams builds a parameter set seeded with the engine's book values.
func NewParams() *Params {
	p := &Params{values: make(map[string]*int32)}
	p.seedDefaults()
	p.registerNames()
	return p
}

func (p *Params) register(name string, v *int32) { p.values[name] = v }

// Set updates a named parameter; ok is false for an unrecognised name.
func (p *Params) Set(name string, value int32) bool {
	v, ok := p.values[name]
	if !ok {
		return false
	}
	*v = value
	return true
}

// Get returns a named parameter's current value.
func (p *Params) Get(name string) (int32, bool) {
	v, ok := p.values[name]
	if !ok {
		return 0, false
	}
	return *v, true
}

// LoadPersonality applies "name score" pairs, one per whitespace
// delimited line, EOF-terminated. Unknown names are ignored (spec.md §6).
func (p *Params) LoadPersonality(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		n, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("personality: bad value for %q: %w", fields[0], err)
		}
		p.Set(fields[0], int32(n))
	}
	return sc.Err()
}

func (p *Params) registerNames() {
	p.register("PawnScore", &p.PawnScore)
	p.register("LazyMargin", &p.LazyMargin)
	p.register("KnightPairMG", &p.KnightPairMG)
	p.register("KnightPairEG", &p.KnightPairEG)
	p.register("BishopPairMG", &p.BishopPairMG)
	p.register("BishopPairEG", &p.BishopPairEG)
	p.register("RookPairMG", &p.RookPairMG)
	p.register("RookPairEG", &p.RookPairEG)
	p.register("QueenPairMG", &p.QueenPairMG)
	p.register("QueenPairEG", &p.QueenPairEG)
	p.register("BishopColorComplexMG", &p.BishopColorComplexMG)
	p.register("BishopColorComplexEG", &p.BishopColorComplexEG)
	p.register("RookDoubledMG", &p.RookDoubledMG)
	p.register("RookDoubledEG", &p.RookDoubledEG)
	p.register("RookOpenFileMG", &p.RookOpenFileMG)
	p.register("RookOpenFileEG", &p.RookOpenFileEG)
	p.register("RookBehindPasserMG", &p.RookBehindPasserMG)
	p.register("RookBehindPasserEG", &p.RookBehindPasserEG)
	p.register("QueenOpenFileMG", &p.QueenOpenFileMG)
	p.register("QueenOpenFileEG", &p.QueenOpenFileEG)
	p.register("QueenBehindPasserMG", &p.QueenBehindPasserMG)
	p.register("QueenBehindPasserEG", &p.QueenBehindPasserEG)
	p.register("PawnDoubledMG", &p.PawnDoubledMG)
	p.register("PawnDoubledEG", &p.PawnDoubledEG)
	p.register("PawnTripledMG", &p.PawnTripledMG)
	p.register("PawnTripledEG", &p.PawnTripledEG)
	p.register("BasicallyWinning", &p.BasicallyWinning)
	p.register("Draw", &p.Draw)
	p.register("LMR0", &p.LMR0)
	p.register("LMR1", &p.LMR1)
	p.register("LMR2", &p.LMR2)
	p.register("LMR3", &p.LMR3)

	for k := bb.KNIGHT; k <= bb.KING; k++ {
		name := bb.PieceLetter(k)
		p.register("MobilityMG_"+string(name), &p.MobilityMG[k])
		p.register("MobilityEG_"+string(name), &p.MobilityEG[k])
		p.register("SafeMobilityMG_"+string(name), &p.SafeMobilityMG[k])
		p.register("SafeMobilityEG_"+string(name), &p.SafeMobilityEG[k])
		p.register("TropismMG_"+string(name), &p.TropismMG[k])
		p.register("TropismEG_"+string(name), &p.TropismEG[k])
	}
}
