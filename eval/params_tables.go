package eval

// Tables below are generated from square geometry rather than hand-typed
// grids — the teacher's own centerManhattanDistance (engine/evaluation.go)
// is exactly "distance from d4/d5/e4/e5", which is what a board-control
// or mop-up table wants; reproducing it as a formula keeps the intent
// visible instead of burying it in 64 magic numbers.

// centerManhattanDistance mirrors the teacher's table: 0 in the centre
// four squares, rising to 6 in the corners. Symmetric under FlipY, so it
// needs no colour-specific orientation.
func centerManhattanDistance(rank, file int) int {
	return minAbs(rank-3, rank-4) + minAbs(file-3, file-4)
}

func minAbs(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a < b {
		return a
	}
	return b
}

func seedBoardControl(p *Params) {
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		cmd := centerManhattanDistance(rank, file)
		control := int32(6 - cmd)
		p.BoardControlPstMG[sq] = control
		p.BoardControlPstEG[sq] = control / 2
		p.KingControlPstMG[sq] = control * 2
		p.KingControlPstEG[sq] = control
	}
}

// seedPassedPawnTables carries the teacher's PassedPawnPSQT_MG/EG verbatim
// (engine/evaluation.go): written a1=0 rank-1-first the same way the base
// PSTs in board/pst.go are, so PawnPassedPstMG[FlipY(sq)] reads correctly
// for White and as-is for Black.
func seedPassedPawnTables(p *Params) {
	p.PawnPassedPstMG = [64]int32{
		0, 0, 0, 0, 0, 0, 0, 0,
		-11, -10, -11, -11, -1, -6, 16, 14,
		-2, -4, -17, -17, -7, -6, -5, 15,
		15, 6, -8, -5, -8, -8, -2, 6,
		34, 33, 25, 17, 11, 8, 15, 17,
		68, 52, 41, 33, 24, 24, 19, 17,
		56, 53, 55, 54, 46, 31, 4, 9,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	p.PawnPassedPstEG = [64]int32{
		0, 0, 0, 0, 0, 0, 0, 0,
		18, 16, 10, 9, 4, 0, 8, 15,
		13, 22, 12, 10, 9, 8, 25, 13,
		32, 36, 29, 24, 23, 30, 44, 33,
		60, 54, 40, 41, 35, 37, 48, 45,
		102, 86, 64, 41, 33, 50, 57, 78,
		68, 66, 56, 46, 43, 42, 55, 62,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
}

// seedPawnChainTables rewards an advanced, supported pawn and its
// supporter proportionally to how far up the board the chain sits,
// using the same a1=0 rank-ordered layout as the rest of the PSTs.
func seedPawnChainTables(p *Params) {
	for sq := 0; sq < 64; sq++ {
		rank := sq / 8
		front := int32(rank * rank / 3)
		back := int32(rank * 2)
		p.PawnChainFrontPstMG[sq] = front
		p.PawnChainFrontPstEG[sq] = front + front/2
		p.PawnChainBackPstMG[sq] = back
		p.PawnChainBackPstEG[sq] = back
	}
}

// seedEndgameTables builds the weak-king mating drive: GeneralMate peaks
// on the rim/corners (reusing centerManhattanDistance, which already has
// that shape) and Proximity rewards the strong king standing close.
func seedEndgameTables(p *Params) {
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		p.GeneralMate[sq] = int32(centerManhattanDistance(rank, file)) * 10
	}
	for d := 0; d < 8; d++ {
		p.Proximity[d] = int32(7-d) * 5
	}
}
