package eval

import (
	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
)

// Evaluator bundles the tunable parameter set and endgame recogniser the
// tapered evaluator reads from, so a "personality" can be swapped in
// without touching global state (spec.md §6).
type Evaluator struct {
	Params   *Params
	Endgames *EndgameTable
}

// NewEvaluator builds an evaluator against the book parameters and the
// built-in endgame recogniser table.
func NewEvaluator() *Evaluator {
	return &Evaluator{Params: Default, Endgames: DefaultEndgames}
}

// onlyKing reports whether color has nothing left but its king.
func onlyKing(b *board.Board, color bb.Color) bool {
	return b.Pieces(color, bb.ALL) == bb.Bit(b.KingSquare(color))
}

// Evaluate returns a centipawn score from sideToMove's perspective,
// implementing spec.md §4.E's seven-step order of operations.
func (e *Evaluator) Evaluate(b *board.Board, alpha, beta int32) int32 {
	pieceCount := PieceCount(b)

	if pieceCount <= 5 {
		if score, ok := e.Endgames.Probe(b, e.Params); ok {
			return score
		}
	}
	if onlyKing(b, bb.White) || onlyKing(b, bb.Black) {
		return weakKingEndgame(b, e.Params, e.Params.BasicallyWinning)
	}

	matPST := materialAndPST(b)
	lazy := ToMove(Blend(matPST, pieceCount), b.SideToMove)
	if lazy > beta+e.Params.LazyMargin || lazy < alpha-e.Params.LazyMargin {
		return lazy
	}

	acc := matPST // White-relative accumulator, material+PST seeded.
	occ := b.Occupied()

	var mobility [2][bb.KING + 1]int
	var pieceCounts [2][bb.KING + 1]int

	for color := bb.White; color <= bb.Black; color++ {
		sign := sideSign(color)
		enemy := color.Other()
		enemyKing := b.KingSquare(enemy)
		enemyPawnAttacks := pawnAttacks(b, enemy)

		for kind := bb.KNIGHT; kind <= bb.QUEEN; kind++ {
			squares := b.Pieces(color, kind).Squares()
			pieceCounts[color][kind] = len(squares)

			for _, sq := range squares {
				attacks := pieceAttacks(kind, sq, occ)
				reachable := attacks &^ b.Pieces(color, bb.ALL)
				mob := reachable.PopCount()
				safe := (reachable &^ enemyPawnAttacks).PopCount()
				mobility[color][kind] += mob

				acc.MG += sign * (int32(mob)*e.Params.MobilityMG[kind] + int32(safe)*e.Params.SafeMobilityMG[kind])
				acc.EG += sign * (int32(mob)*e.Params.MobilityEG[kind] + int32(safe)*e.Params.SafeMobilityEG[kind])

				for _, target := range (attacks & b.Pieces(enemy, bb.ALL)).Squares() {
					attacked := b.PieceAt(target)
					acc.MG += sign * e.Params.AttackPairMG[kind][attacked]
					acc.EG += sign * e.Params.AttackPairEG[kind][attacked]
				}

				dist := chebyshev(sq, enemyKing)
				acc.MG += sign * e.Params.TropismMG[kind] * int32(7-dist)
				acc.EG += sign * e.Params.TropismEG[kind] * int32(7-dist)
			}
		}

		applyPiecePairs(&acc, e.Params, pieceCounts, color)
		applyBishopComplex(&acc, e.Params, b, color)
		applyRookQueenFileBonuses(&acc, e.Params, b, color)
	}

	applyBoardControl(&acc, e.Params, b, occ)
	applyMobilityDifference(&acc, e.Params, mobility)

	pawnRes := EvaluatePawns(b, e.Params)
	acc.MG += pawnRes.Score.MG
	acc.EG += pawnRes.Score.EG
	applyRookQueenBehindPasser(&acc, e.Params, b, pawnRes.PassedPawns)

	return ToMove(Blend(acc, pieceCount), b.SideToMove)
}

func applyPiecePairs(acc *board.Eval, p *Params, counts [2][bb.KING + 1]int, color bb.Color) {
	enemy := color.Other()
	sign := sideSign(color)
	pair := func(kind bb.Piece, mg, eg int32) {
		if counts[color][kind] > 1 && counts[enemy][kind] < 2 {
			acc.MG += sign * mg
			acc.EG += sign * eg
		}
	}
	pair(bb.KNIGHT, p.KnightPairMG, p.KnightPairEG)
	pair(bb.BISHOP, p.BishopPairMG, p.BishopPairEG)
	pair(bb.ROOK, p.RookPairMG, p.RookPairEG)
	pair(bb.QUEEN, p.QueenPairMG, p.QueenPairEG)
}

// squareColor is 1 for a dark square (a1 is dark) and 0 for a light
// square. FlipY swaps the value, so it is applied consistently to pawns
// and the bishop alike.
func squareColor(sq bb.Square) int {
	return (bb.Rank(sq) + bb.File(sq)) & 1
}

func applyBishopComplex(acc *board.Eval, p *Params, b *board.Board, color bb.Color) {
	bishops := b.Pieces(color, bb.BISHOP)
	if bishops.PopCount() != 1 {
		return
	}
	sign := sideSign(color)
	complex := squareColor(bishops.LSB())
	sameColorPawns := 0
	for _, sq := range b.Pieces(color, bb.PAWN).Squares() {
		if squareColor(sq) == complex {
			sameColorPawns++
		}
	}
	acc.MG -= sign * int32(sameColorPawns) * p.BishopColorComplexMG
	acc.EG -= sign * int32(sameColorPawns) * p.BishopColorComplexEG
}

func applyRookQueenFileBonuses(acc *board.Eval, p *Params, b *board.Board, color bb.Color) {
	sign := sideSign(color)
	rooks := b.Pieces(color, bb.ROOK)
	for _, sq := range rooks.Squares() {
		file := bb.File(sq)
		if rooks&fileMasks[file] != bb.Bit(sq) {
			acc.MG += sign * p.RookDoubledMG
			acc.EG += sign * p.RookDoubledEG
		}
		if isOpenFile(b, file) {
			acc.MG += sign * p.RookOpenFileMG
			acc.EG += sign * p.RookOpenFileEG
		}
	}
	for _, sq := range b.Pieces(color, bb.QUEEN).Squares() {
		if isOpenFile(b, bb.File(sq)) {
			acc.MG += sign * p.QueenOpenFileMG
			acc.EG += sign * p.QueenOpenFileEG
		}
	}
}

// squaresBehind returns the squares on sq's file that color's pawn has
// already passed through, i.e. "behind" it in its march to promotion.
func squaresBehind(color bb.Color, sq bb.Square) bb.Bitboard {
	return bb.SquaresInFront[color.Other()][sq]
}

func applyRookQueenBehindPasser(acc *board.Eval, p *Params, b *board.Board, passed [2]bb.Bitboard) {
	for color := bb.White; color <= bb.Black; color++ {
		sign := sideSign(color)
		for _, pawnSq := range passed[color].Squares() {
			behind := squaresBehind(color, pawnSq) & fileMasks[bb.File(pawnSq)]
			if behind&b.Pieces(color, bb.ROOK) != 0 {
				acc.MG += sign * p.RookBehindPasserMG
				acc.EG += sign * p.RookBehindPasserEG
			}
			if behind&b.Pieces(color, bb.QUEEN) != 0 {
				acc.MG += sign * p.QueenBehindPasserMG
				acc.EG += sign * p.QueenBehindPasserEG
			}
		}
	}
}

// applyBoardControl partitions attacked squares by the attacking kind's
// rank (pawn first, queen last): a square already claimed by a
// lower-ordered kind is not recounted for a higher one (spec.md §4.E
// step 5).
func applyBoardControl(acc *board.Eval, p *Params, b *board.Board, occ bb.Bitboard) {
	var owned bb.Bitboard
	whiteKingZone := bb.PieceMoves[bb.KING][b.KingSquare(bb.Black)]
	blackKingZone := bb.PieceMoves[bb.KING][b.KingSquare(bb.White)]

	for kind := bb.PAWN; kind <= bb.QUEEN; kind++ {
		var whiteAttack, blackAttack bb.Bitboard
		if kind == bb.PAWN {
			whiteAttack = pawnAttacks(b, bb.White)
			blackAttack = pawnAttacks(b, bb.Black)
		} else {
			for _, sq := range b.Pieces(bb.White, kind).Squares() {
				whiteAttack |= pieceAttacks(kind, sq, occ)
			}
			for _, sq := range b.Pieces(bb.Black, kind).Squares() {
				blackAttack |= pieceAttacks(kind, sq, occ)
			}
		}

		whiteOnly := whiteAttack &^ blackAttack &^ owned
		blackOnly := blackAttack &^ whiteAttack &^ owned

		for _, sq := range whiteOnly.Squares() {
			acc.MG += p.BoardControlPstMG[sq]
			acc.EG += p.BoardControlPstEG[sq]
			if whiteKingZone&bb.Bit(sq) != 0 {
				acc.MG += p.KingControlPstMG[sq]
				acc.EG += p.KingControlPstEG[sq]
			}
		}
		for _, sq := range blackOnly.Squares() {
			acc.MG -= p.BoardControlPstMG[sq]
			acc.EG -= p.BoardControlPstEG[sq]
			if blackKingZone&bb.Bit(sq) != 0 {
				acc.MG -= p.KingControlPstMG[sq]
				acc.EG -= p.KingControlPstEG[sq]
			}
		}
		owned |= whiteAttack | blackAttack
	}
}

func applyMobilityDifference(acc *board.Eval, p *Params, mobility [2][bb.KING + 1]int) {
	for kind := bb.KNIGHT; kind <= bb.QUEEN; kind++ {
		diff := mobility[bb.White][kind] - mobility[bb.Black][kind]
		sign := int32(1)
		if diff < 0 {
			sign = -1
			diff = -diff
		}
		if diff > 31 {
			diff = 31
		}
		acc.MG += sign * p.BetterMobilityMG[kind][diff]
		acc.EG += sign * p.BetterMobilityEG[kind][diff]
	}
}
