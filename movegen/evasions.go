package movegen

import (
	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
)

// GenerateCheckEvasions generates legal moves when the side to move is
// in check, per spec.md §4.D: king moves always; if double check, only
// king moves; otherwise captures of the checker and, if it is a
// slider, blocks along the king-to-checker ray.
func GenerateCheckEvasions(b *board.Board) []board.Move {
	us := b.SideToMove
	them := us.Other()
	moves := make([]board.Move, 0, 16)
	moves = appendKingMoves(b, moves, us, them, b.Pieces(us, bb.ALL), false)

	if b.CheckingPieces.PopCount() >= 2 {
		return validateIfNeeded(b, moves)
	}

	checkerSq := b.CheckingPieces.LSB()
	checker := b.PieceAt(checkerSq)

	if b.EnPassant != bb.NoSquare && checker == bb.PAWN {
		epCapturedIsChecker := epPawnSquare(b.EnPassant, us) == checkerSq
		if epCapturedIsChecker {
			moves = appendEnPassantCapturesOf(b, moves, checkerSq)
		}
	}

	moves = appendAttacksOnSquare(b, moves, checkerSq, us)

	if isSlider(checker) {
		between := bb.InBetween[b.KingSquare(us)][checkerSq]
		moves = appendMovesToSquares(b, moves, between, us)
	}

	return validateIfNeeded(b, moves)
}

func isSlider(kind bb.Piece) bool {
	return kind == bb.BISHOP || kind == bb.ROOK || kind == bb.QUEEN
}

// epPawnSquare is the reverse of epCapturedSquare in board/domove.go:
// given the en-passant target square and the side that would capture,
// returns the square the captured pawn actually stands on.
func epPawnSquare(ep bb.Square, mover bb.Color) bb.Square {
	if mover == bb.White {
		return bb.MakeSquare(bb.Rank(ep)+1, bb.File(ep))
	}
	return bb.MakeSquare(bb.Rank(ep)-1, bb.File(ep))
}

func appendEnPassantCapturesOf(b *board.Board, moves []board.Move, checkerSq bb.Square) []board.Move {
	us := b.SideToMove
	for pawns := b.Pieces(us, bb.PAWN) & bb.PawnCaptures[us.Other()][b.EnPassant]; pawns != 0; {
		src := pawns.PopLSB()
		if bb.PawnCaptures[us][src]&bb.Bit(b.EnPassant) == 0 {
			continue
		}
		if b.PinnedPieces&bb.Bit(src) != 0 {
			continue
		}
		moves = append(moves, board.NewMove(src, b.EnPassant, bb.NONE, bb.PAWN, bb.PAWN))
	}
	return moves
}

// appendAttacksOnSquare adds every non-king, non-pinned move by the
// side to move that lands exactly on sq (capturing the checker).
func appendAttacksOnSquare(b *board.Board, moves []board.Move, sq bb.Square, us bb.Color) []board.Move {
	occ := b.Occupied()

	promRank := promotionRank(us)
	for pawns := bb.PawnCaptures[us.Other()][sq] & b.Pieces(us, bb.PAWN); pawns != 0; {
		src := pawns.PopLSB()
		if b.PinnedPieces&bb.Bit(src) != 0 {
			continue
		}
		moves = appendPawnDest(moves, src, sq, us, b.PieceAt(sq), promRank)
	}

	for knights := bb.PieceMoves[bb.KNIGHT][sq] & b.Pieces(us, bb.KNIGHT); knights != 0; {
		src := knights.PopLSB()
		if b.PinnedPieces&bb.Bit(src) != 0 {
			continue
		}
		moves = append(moves, board.NewMove(src, sq, bb.NONE, bb.KNIGHT, b.PieceAt(sq)))
	}

	for _, kind := range [3]bb.Piece{bb.BISHOP, bb.ROOK, bb.QUEEN} {
		for pieces := b.Pieces(us, kind); pieces != 0; {
			src := pieces.PopLSB()
			if b.PinnedPieces&bb.Bit(src) != 0 {
				continue
			}
			if bb.SlidingAttacks(kind, src, occ)&bb.Bit(sq) != 0 {
				moves = append(moves, board.NewMove(src, sq, bb.NONE, kind, b.PieceAt(sq)))
			}
		}
	}
	return moves
}

// appendMovesToSquares adds every non-king, non-pinned move that lands
// on any square in targets (blocking a sliding checker).
func appendMovesToSquares(b *board.Board, moves []board.Move, targets bb.Bitboard, us bb.Color) []board.Move {
	occ := b.Occupied()
	promRank := promotionRank(us)

	for t := targets; t != 0; {
		dst := t.PopLSB()

		dstRank := bb.Rank(dst)
		startRank := 6
		if us == bb.Black {
			startRank = 1
		}

		singleSrcRank := dstRank - 1
		if us == bb.White {
			singleSrcRank = dstRank + 1
		}
		if singleSrcRank >= 0 && singleSrcRank < 8 {
			singleSrc := bb.MakeSquare(singleSrcRank, bb.File(dst))
			if b.Pieces(us, bb.PAWN)&bb.Bit(singleSrc) != 0 && b.PinnedPieces&bb.Bit(singleSrc) == 0 {
				moves = appendPawnDest(moves, singleSrc, dst, us, bb.NONE, promRank)
			}
		}

		doubleSrcRank := dstRank - 2
		midRank := dstRank - 1
		if us == bb.White {
			doubleSrcRank = dstRank + 2
			midRank = dstRank + 1
		}
		if doubleSrcRank == startRank {
			doubleSrc := bb.MakeSquare(doubleSrcRank, bb.File(dst))
			mid := bb.MakeSquare(midRank, bb.File(dst))
			if b.Pieces(us, bb.PAWN)&bb.Bit(doubleSrc) != 0 && occ&bb.Bit(mid) == 0 && b.PinnedPieces&bb.Bit(doubleSrc) == 0 {
				moves = append(moves, board.NewMove(doubleSrc, dst, bb.NONE, bb.PAWN, bb.NONE))
			}
		}

		for knights := bb.PieceMoves[bb.KNIGHT][dst] & b.Pieces(us, bb.KNIGHT); knights != 0; {
			src := knights.PopLSB()
			if b.PinnedPieces&bb.Bit(src) != 0 {
				continue
			}
			moves = append(moves, board.NewMove(src, dst, bb.NONE, bb.KNIGHT, bb.NONE))
		}

		for _, kind := range [3]bb.Piece{bb.BISHOP, bb.ROOK, bb.QUEEN} {
			for pieces := b.Pieces(us, kind); pieces != 0; {
				src := pieces.PopLSB()
				if b.PinnedPieces&bb.Bit(src) != 0 {
					continue
				}
				if bb.SlidingAttacks(kind, src, occ)&bb.Bit(dst) != 0 {
					moves = append(moves, board.NewMove(src, dst, bb.NONE, kind, bb.NONE))
				}
			}
		}
	}
	return moves
}
