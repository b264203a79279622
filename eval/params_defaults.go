package eval

// seedDefaults installs the engine's book values. Mobility, bishop-pair,
// rook-file, and pawn-doubling figures are carried over from the
// teacher's scalar evaluation constants; the rest follows the same
// ballpark for the symmetry the spec asks for (knight/rook/queen pair,
// safe-mobility, tropism, board control) since no teacher analogue
// exists for them.
func (p *Params) seedDefaults() {
	p.PawnScore = 128
	p.LazyMargin = 4 * 128

	p.KnightPairMG, p.KnightPairEG = -8, -4
	p.BishopPairMG, p.BishopPairEG = 10, 50
	p.RookPairMG, p.RookPairEG = -6, -10
	p.QueenPairMG, p.QueenPairEG = 0, 0

	p.MobilityMG[2], p.MobilityEG[2] = 2, 3 // knight
	p.MobilityMG[3], p.MobilityEG[3] = 3, 2 // bishop
	p.MobilityMG[4], p.MobilityEG[4] = 2, 4 // rook
	p.MobilityMG[5], p.MobilityEG[5] = 1, 4 // queen

	p.SafeMobilityMG[2], p.SafeMobilityEG[2] = 3, 4
	p.SafeMobilityMG[3], p.SafeMobilityEG[3] = 4, 3
	p.SafeMobilityMG[4], p.SafeMobilityEG[4] = 3, 5
	p.SafeMobilityMG[5], p.SafeMobilityEG[5] = 2, 5

	p.TropismMG[2], p.TropismEG[2] = 1, 4 // knight: carried from the teacher's knightTropism
	p.TropismMG[3], p.TropismEG[3] = 1, 2
	p.TropismMG[4], p.TropismEG[4] = 1, 1
	p.TropismMG[5], p.TropismEG[5] = 2, 3

	for attacker := 1; attacker <= 6; attacker++ {
		for attacked := 1; attacked <= 6; attacked++ {
			if attacker == attacked {
				continue
			}
			// A piece attacking a higher-value piece earns more than
			// one attacking a lower-value piece: use the same
			// MG-heavier / EG-lighter split the rest of the table uses.
			p.AttackPairMG[attacker][attacked] = int32(attacked-attacker) + 3
			p.AttackPairEG[attacker][attacked] = int32(attacked-attacker) + 1
		}
	}

	p.BishopColorComplexMG, p.BishopColorComplexEG = 4, 8

	p.RookDoubledMG, p.RookDoubledEG = 20, 10
	p.RookOpenFileMG, p.RookOpenFileEG = 30, 15
	p.RookBehindPasserMG, p.RookBehindPasserEG = 5, 20

	p.QueenOpenFileMG, p.QueenOpenFileEG = 10, 5
	p.QueenBehindPasserMG, p.QueenBehindPasserEG = 5, 15

	p.PawnDoubledMG, p.PawnDoubledEG = 4, 17
	p.PawnTripledMG, p.PawnTripledEG = 12, 45

	p.BasicallyWinning = 2000
	p.Draw = 20

	p.LMR0, p.LMR1, p.LMR2, p.LMR3 = 750, 750, 750, 500

	seedBetterMobility(p)
	seedBoardControl(p)
	seedPassedPawnTables(p)
	seedPawnChainTables(p)
	seedEndgameTables(p)
}

// seedBetterMobility grows linearly with the mobility gap and saturates
// past a dozen squares: most of the signal is in the first few.
func seedBetterMobility(p *Params) {
	for k := 2; k <= 5; k++ {
		for d := 0; d < 32; d++ {
			step := d
			if step > 12 {
				step = 12
			}
			p.BetterMobilityMG[k][d] = int32(step)
			p.BetterMobilityEG[k][d] = int32(step * 2)
		}
	}
}
