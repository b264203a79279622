// Package movegen generates pseudo-legal and legal moves from a board
// position: full move lists, captures-only lists (for quiescence), and
// check-evasion lists, per spec.md §4.D.
package movegen

import (
	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
)

// promotionKinds are the pieces a pawn can promote to, in the order
// moves are emitted.
var promotionKinds = [4]bb.Piece{bb.QUEEN, bb.ROOK, bb.BISHOP, bb.KNIGHT}

func promotionRank(c bb.Color) int {
	if c == bb.White {
		return 0
	}
	return 7
}

// GenerateAllMoves returns every legal move for the side to move.
//
// The source this is grounded on advertises a countOnly fast path that
// skips move materialisation when there are no pins and no en-passant
// square, but its fallback to full generation the moment either
// condition holds means the two code paths can only ever be
// consistency-checked against each other, never meaningfully faster in
// the positions that matter (middlegames are rarely pin-free). This
// implementation always fully generates and returns len(moves) for the
// "count only" case, which is observably identical and a good deal
// simpler — see DESIGN.md.
func GenerateAllMoves(b *board.Board) []board.Move {
	if b.IsInCheck(b.SideToMove) {
		return GenerateCheckEvasions(b)
	}
	moves := make([]board.Move, 0, 48)
	moves = appendPieceMoves(b, moves, false)
	moves = appendCastles(b, moves)
	return validateIfNeeded(b, moves)
}

// GenerateAllCaptures returns every legal capturing move (including
// en-passant and capturing promotions); non-capturing promotions are not
// included. In check it returns the full evasion list instead. Used by
// quiescence search.
func GenerateAllCaptures(b *board.Board) []board.Move {
	if b.IsInCheck(b.SideToMove) {
		return GenerateCheckEvasions(b)
	}
	moves := make([]board.Move, 0, 24)
	moves = appendPieceMoves(b, moves, true)
	return validateIfNeeded(b, moves)
}

func validateIfNeeded(b *board.Board, moves []board.Move) []board.Move {
	if b.PinnedPieces == 0 && b.EnPassant == bb.NoSquare {
		return moves
	}
	return filterValid(b, moves)
}

// filterValid drops any candidate that leaves the mover's own king in
// check: clone, apply, re-check. This is the authoritative legality
// test — the pin-ray/in-between restriction above it is only a filter
// to keep the candidate set small, per spec.md §4.D.vii.
func filterValid(b *board.Board, moves []board.Move) []board.Move {
	out := moves[:0]
	mover := b.SideToMove
	for _, m := range moves {
		child := b.DoMove(m, true)
		if !child.IsInCheck(mover) {
			out = append(out, m)
		}
	}
	return out
}

func appendPieceMoves(b *board.Board, moves []board.Move, capturesOnly bool) []board.Move {
	us := b.SideToMove
	them := us.Other()
	ownOcc := b.Pieces(us, bb.ALL)
	enemyOcc := b.Pieces(them, bb.ALL)
	occ := b.Occupied()

	moves = appendPawnMoves(b, moves, us, them, enemyOcc, occ, capturesOnly)

	for _, kind := range [3]bb.Piece{bb.KNIGHT, bb.BISHOP, bb.ROOK} {
		moves = appendLeaperOrSlider(b, moves, kind, us, ownOcc, enemyOcc, occ, capturesOnly)
	}
	moves = appendLeaperOrSlider(b, moves, bb.QUEEN, us, ownOcc, enemyOcc, occ, capturesOnly)
	moves = appendKingMoves(b, moves, us, them, ownOcc, capturesOnly)
	return moves
}

func pinRestrict(b *board.Board, src bb.Square, targets bb.Bitboard) bb.Bitboard {
	if b.PinnedPieces&bb.Bit(src) == 0 {
		return targets
	}
	return targets & (b.InBetweenSquares | b.BlockedPieces)
}

func appendPawnMoves(b *board.Board, moves []board.Move, us, them bb.Color, enemyOcc, occ bb.Bitboard, capturesOnly bool) []board.Move {
	promRank := promotionRank(us)
	for bbPawns := b.Pieces(us, bb.PAWN); bbPawns != 0; {
		src := bbPawns.PopLSB()

		if !capturesOnly {
			var singleDst bb.Square
			if us == bb.White {
				singleDst = bb.MakeSquare(bb.Rank(src)-1, bb.File(src))
			} else {
				singleDst = bb.MakeSquare(bb.Rank(src)+1, bb.File(src))
			}
			if occ&bb.Bit(singleDst) == 0 {
				dests := pinRestrict(b, src, bb.Bit(singleDst))
				if dests != 0 {
					moves = appendPawnDest(moves, src, singleDst, us, bb.NONE, promRank)
				}
				startRank := 6
				if us == bb.Black {
					startRank = 1
				}
				if bb.Rank(src) == startRank {
					var doubleDst bb.Square
					if us == bb.White {
						doubleDst = bb.MakeSquare(bb.Rank(src)-2, bb.File(src))
					} else {
						doubleDst = bb.MakeSquare(bb.Rank(src)+2, bb.File(src))
					}
					if occ&bb.Bit(doubleDst) == 0 {
						if pinRestrict(b, src, bb.Bit(doubleDst)) != 0 {
							moves = append(moves, board.NewMove(src, doubleDst, bb.NONE, bb.PAWN, bb.NONE))
						}
					}
				}
			}
		}

		captures := bb.PawnCaptures[us][src] & enemyOcc
		captures = pinRestrict(b, src, captures)
		for captures != 0 {
			dst := captures.PopLSB()
			moves = appendPawnDest(moves, src, dst, us, b.PieceAt(dst), promRank)
		}

		if b.EnPassant != bb.NoSquare && bb.PawnCaptures[us][src]&bb.Bit(b.EnPassant) != 0 {
			if pinRestrict(b, src, bb.Bit(b.EnPassant)) != 0 {
				moves = append(moves, board.NewMove(src, b.EnPassant, bb.NONE, bb.PAWN, bb.PAWN))
			}
		}
	}
	return moves
}

func appendPawnDest(moves []board.Move, src, dst bb.Square, us bb.Color, captured bb.Piece, promRank int) []board.Move {
	if bb.Rank(dst) == promRank {
		for _, p := range promotionKinds {
			moves = append(moves, board.NewMove(src, dst, p, bb.PAWN, captured))
		}
		return moves
	}
	return append(moves, board.NewMove(src, dst, bb.NONE, bb.PAWN, captured))
}

func appendLeaperOrSlider(b *board.Board, moves []board.Move, kind bb.Piece, us bb.Color, ownOcc, enemyOcc, occ bb.Bitboard, capturesOnly bool) []board.Move {
	for pieces := b.Pieces(us, kind); pieces != 0; {
		src := pieces.PopLSB()
		var targets bb.Bitboard
		if kind == bb.KNIGHT {
			targets = bb.PieceMoves[bb.KNIGHT][src]
		} else {
			targets = bb.SlidingAttacks(kind, src, occ)
		}
		targets &^= ownOcc
		if capturesOnly {
			targets &= enemyOcc
		}
		targets = pinRestrict(b, src, targets)
		for targets != 0 {
			dst := targets.PopLSB()
			moves = append(moves, board.NewMove(src, dst, bb.NONE, kind, b.PieceAt(dst)))
		}
	}
	return moves
}

func appendKingMoves(b *board.Board, moves []board.Move, us, them bb.Color, ownOcc bb.Bitboard, capturesOnly bool) []board.Move {
	src := b.KingSquare(us)
	targets := bb.PieceMoves[bb.KING][src] &^ ownOcc
	if capturesOnly {
		targets &= b.Pieces(them, bb.ALL)
	}
	for targets != 0 {
		dst := targets.PopLSB()
		if b.IsSquareAttacked(dst, them) {
			continue
		}
		moves = append(moves, board.NewMove(src, dst, bb.NONE, bb.KING, b.PieceAt(dst)))
	}
	return moves
}

// appendCastles adds castling moves; not used by GenerateAllCaptures
// since castling is never a capture.
func appendCastles(b *board.Board, moves []board.Move) []board.Move {
	us := b.SideToMove
	them := us.Other()
	src := b.KingSquare(us)
	occ := b.Occupied()

	tryCastle := func(right bb.CastleRights, kingside bool) {
		if b.CastleRights&right == 0 {
			return
		}
		rank := bb.Rank(src)
		var transitSquares []bb.Square
		var dst bb.Square
		if kingside {
			dst = bb.MakeSquare(rank, 6)
			transitSquares = []bb.Square{bb.MakeSquare(rank, 5), bb.MakeSquare(rank, 6)}
		} else {
			dst = bb.MakeSquare(rank, 2)
			transitSquares = []bb.Square{bb.MakeSquare(rank, 1), bb.MakeSquare(rank, 2), bb.MakeSquare(rank, 3)}
		}
		for _, sq := range transitSquares {
			if occ&bb.Bit(sq) != 0 {
				return
			}
		}
		for _, sq := range transitSquares {
			if bb.File(sq) == 1 {
				continue // b-file/rook-file square need not be unattacked, only empty
			}
			if b.IsSquareAttacked(sq, them) {
				return
			}
		}
		moves = append(moves, board.NewMove(src, dst, bb.NONE, bb.KING, bb.NONE))
	}

	if us == bb.White {
		tryCastle(bb.WhiteOO, true)
		tryCastle(bb.WhiteOOO, false)
	} else {
		tryCastle(bb.BlackOO, true)
		tryCastle(bb.BlackOOO, false)
	}
	return moves
}
