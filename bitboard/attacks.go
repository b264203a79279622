package bitboard

// Precomputed, read-only-after-init attack and ray tables. Built once
// at process start from pure square arithmetic — no magic/PEXT tables,
// per the spec: sliding attacks are derived on demand from a pseudo-attack
// mask plus an InBetween occupancy test (see SlidingAttacks).

var (
	// PawnCaptures[color][sq] is the set of squares a pawn of color on sq attacks.
	PawnCaptures [2][64]Bitboard
	// PawnPushes[color][sq] is the union of single & double push targets,
	// ignoring occupancy (callers must still test for blockers).
	PawnPushes [2][64]Bitboard
	// PieceMoves[kind][sq] are the pseudo-attacks from an empty board.
	// Indexed by KNIGHT, BISHOP, ROOK, QUEEN, KING (PAWN and NONE unused).
	PieceMoves [KING + 1][64]Bitboard
	// InBetween[a][b] is the bitboard of squares strictly between a and b
	// when they share a rank, file, or diagonal; 0 otherwise.
	InBetween [64][64]Bitboard
	// PassedPawnCheck[color][sq] is the opposing-pawn mask that must be
	// empty for a pawn of color on sq to be passed.
	PassedPawnCheck [2][64]Bitboard
	// SquaresInFront[color][sq] is the set of squares on sq's file ahead of it.
	SquaresInFront [2][64]Bitboard

	// rookRay/bishopRay[sq][dir] hold a single ray from sq to the edge of
	// the board, excluding sq itself. Rook dirs: 0=N 1=S 2=E 3=W.
	// Bishop dirs: 0=NE 1=NW 2=SE 3=SW.
	rookRay   [64][4]Bitboard
	bishopRay [64][4]Bitboard
)

func init() {
	initLeaperAttacks()
	initRays()
	initInBetween()
	initPassedPawnTables()
}

func inBounds(rank, file int) bool { return rank >= 0 && rank < 8 && file >= 0 && file < 8 }

func initLeaperAttacks() {
	knightDeltas := [8][2]int{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
	kingDeltas := [8][2]int{
		{-1, -1}, {-1, 0}, {-1, 1}, {0, -1},
		{0, 1}, {1, -1}, {1, 0}, {1, 1},
	}
	for sq := 0; sq < 64; sq++ {
		rank, file := Rank(Square(sq)), File(Square(sq))

		var knight, king Bitboard
		for _, d := range knightDeltas {
			if r, f := rank+d[0], file+d[1]; inBounds(r, f) {
				knight |= Bit(MakeSquare(r, f))
			}
		}
		for _, d := range kingDeltas {
			if r, f := rank+d[0], file+d[1]; inBounds(r, f) {
				king |= Bit(MakeSquare(r, f))
			}
		}
		PieceMoves[KNIGHT][sq] = knight
		PieceMoves[KING][sq] = king

		// White advances toward rank 8, i.e. toward decreasing rank index.
		var whiteAtk, blackAtk Bitboard
		if rank > 0 {
			if file > 0 {
				whiteAtk |= Bit(MakeSquare(rank-1, file-1))
			}
			if file < 7 {
				whiteAtk |= Bit(MakeSquare(rank-1, file+1))
			}
		}
		if rank < 7 {
			if file > 0 {
				blackAtk |= Bit(MakeSquare(rank+1, file-1))
			}
			if file < 7 {
				blackAtk |= Bit(MakeSquare(rank+1, file+1))
			}
		}
		PawnCaptures[White][sq] = whiteAtk
		PawnCaptures[Black][sq] = blackAtk

		var whitePush, blackPush Bitboard
		if rank > 0 {
			whitePush |= Bit(MakeSquare(rank-1, file))
			if rank == 6 {
				whitePush |= Bit(MakeSquare(rank-2, file))
			}
		}
		if rank < 7 {
			blackPush |= Bit(MakeSquare(rank+1, file))
			if rank == 1 {
				blackPush |= Bit(MakeSquare(rank+2, file))
			}
		}
		PawnPushes[White][sq] = whitePush
		PawnPushes[Black][sq] = blackPush
	}
}

// rayWalk walks from (rank,file) repeatedly applying (dr,df) until it
// leaves the board, returning the bitboard of visited squares.
func rayWalk(rank, file, dr, df int) Bitboard {
	var ray Bitboard
	r, f := rank+dr, file+df
	for inBounds(r, f) {
		ray |= Bit(MakeSquare(r, f))
		r += dr
		f += df
	}
	return ray
}

func initRays() {
	rookDeltas := [4][2]int{{-1, 0}, {1, 0}, {0, 1}, {0, -1}}
	bishopDeltas := [4][2]int{{-1, 1}, {-1, -1}, {1, 1}, {1, -1}}

	for sq := 0; sq < 64; sq++ {
		rank, file := Rank(Square(sq)), File(Square(sq))
		var rookUnion, bishopUnion Bitboard
		for d, delta := range rookDeltas {
			ray := rayWalk(rank, file, delta[0], delta[1])
			rookRay[sq][d] = ray
			rookUnion |= ray
		}
		for d, delta := range bishopDeltas {
			ray := rayWalk(rank, file, delta[0], delta[1])
			bishopRay[sq][d] = ray
			bishopUnion |= ray
		}
		PieceMoves[ROOK][sq] = rookUnion
		PieceMoves[BISHOP][sq] = bishopUnion
		PieceMoves[QUEEN][sq] = rookUnion | bishopUnion
	}
}

// SlidingAttacks returns the attack set of a rook, bishop, or queen on
// sq given the full-board occupancy. Per the spec, this is computed by
// intersecting the empty-board pseudo-attack (PieceMoves) with an
// in-between occupancy test for each candidate destination — no
// magic/PEXT tables.
func SlidingAttacks(kind Piece, sq Square, occ Bitboard) Bitboard {
	var attacks Bitboard
	for bb := PieceMoves[kind][sq]; bb != 0; {
		dst := bb.PopLSB()
		if InBetween[sq][dst]&occ == 0 {
			attacks |= Bit(dst)
		}
	}
	return attacks
}

func initInBetween() {
	rookDeltas := [4][2]int{{-1, 0}, {1, 0}, {0, 1}, {0, -1}}
	bishopDeltas := [4][2]int{{-1, 1}, {-1, -1}, {1, 1}, {1, -1}}
	for a := 0; a < 64; a++ {
		ra, fa := Rank(Square(a)), File(Square(a))
		for _, delta := range rookDeltas {
			r, f := ra, fa
			var between Bitboard
			for {
				r += delta[0]
				f += delta[1]
				if !inBounds(r, f) {
					break
				}
				b := MakeSquare(r, f)
				InBetween[a][int(b)] = between
				between |= Bit(b)
			}
		}
		for _, delta := range bishopDeltas {
			r, f := ra, fa
			var between Bitboard
			for {
				r += delta[0]
				f += delta[1]
				if !inBounds(r, f) {
					break
				}
				b := MakeSquare(r, f)
				InBetween[a][int(b)] = between
				between |= Bit(b)
			}
		}
	}
}

func initPassedPawnTables() {
	for sq := 0; sq < 64; sq++ {
		rank, file := Rank(Square(sq)), File(Square(sq))

		var whiteInFront, blackInFront Bitboard
		for r := 0; r < rank; r++ {
			whiteInFront |= Bit(MakeSquare(r, file))
		}
		for r := rank + 1; r < 8; r++ {
			blackInFront |= Bit(MakeSquare(r, file))
		}
		SquaresInFront[White][sq] = whiteInFront
		SquaresInFront[Black][sq] = blackInFront

		var whiteCheck, blackCheck Bitboard
		for r := 0; r < rank; r++ {
			for _, f := range []int{file - 1, file, file + 1} {
				if f >= 0 && f < 8 {
					whiteCheck |= Bit(MakeSquare(r, f))
				}
			}
		}
		for r := rank + 1; r < 8; r++ {
			for _, f := range []int{file - 1, file, file + 1} {
				if f >= 0 && f < 8 {
					blackCheck |= Bit(MakeSquare(r, f))
				}
			}
		}
		PassedPawnCheck[White][sq] = whiteCheck
		PassedPawnCheck[Black][sq] = blackCheck
	}
}
