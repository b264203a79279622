package board

import (
	"errors"
	"strconv"
	"strings"

	bb "github.com/chrisflorin/knightwatch/bitboard"
)

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a Board from a FEN string, deriving the incremental
// hash/material/PST scalars and the attack cache.
func ParseFEN(fen string) (Board, error) {
	var b Board
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return b, errors.New("fen: need at least 4 fields")
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return b, errors.New("fen: need 8 ranks")
	}
	for r, rankStr := range ranks {
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file >= 8 {
				return b, errors.New("fen: rank overflow")
			}
			kind := bb.PieceFromLetter(byte(ch))
			if kind == bb.NONE {
				return b, errors.New("fen: bad piece letter")
			}
			color := bb.White
			if ch >= 'a' && ch <= 'z' {
				color = bb.Black
			}
			b.addPiece(bb.MakeSquare(r, file), color, kind)
			file++
		}
		if file != 8 {
			return b, errors.New("fen: rank does not sum to 8 files")
		}
	}

	switch fields[1] {
	case "w":
		b.SideToMove = bb.White
	case "b":
		b.SideToMove = bb.Black
	default:
		return b, errors.New("fen: side to move must be w/b")
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				b.CastleRights |= bb.WhiteOO
			case 'Q':
				b.CastleRights |= bb.WhiteOOO
			case 'k':
				b.CastleRights |= bb.BlackOO
			case 'q':
				b.CastleRights |= bb.BlackOOO
			default:
				return b, errors.New("fen: bad castle rights character")
			}
		}
	}

	b.EnPassant = bb.NoSquare
	if fields[3] != "-" {
		sq := bb.ParseSquare(fields[3])
		if sq == bb.NoSquare {
			return b, errors.New("fen: bad en-passant square")
		}
		// Tighter than the raw FEN rule: only keep it if a side-to-move
		// pawn could actually make the capture (spec.md policy decision).
		if bb.PawnCaptures[b.SideToMove.Other()][sq]&b.byColor[b.SideToMove][bb.PAWN] != 0 {
			b.EnPassant = sq
		}
	}

	b.FiftyMoveCount = 0
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			b.FiftyMoveCount = n
		}
	}
	b.FullMoveCount = 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			b.FullMoveCount = n
		}
	}

	for sq := bb.Square(0); sq < 64; sq++ {
		kind := b.pieces[sq]
		if kind == bb.NONE {
			continue
		}
		c := b.colorAt(sq)
		addEval(&b.MaterialEval, signedEval(c, MaterialValue(kind)))
		addEval(&b.PSTEval, signedEval(c, PSTValue(c, kind, sq)))
	}

	b.HashValue = b.RecomputeHash()
	b.MaterialHashValue = b.RecomputeMaterialHash()
	b.PawnHashValue = b.RecomputePawnHash()
	b.buildAttackBoards()

	return b, nil
}

// String renders the board as a FEN string.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		empty := 0
		for f := 0; f < 8; f++ {
			sq := bb.MakeSquare(r, f)
			kind := b.pieces[sq]
			if kind == bb.NONE {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			letter := bb.PieceLetter(kind)
			if b.colorAt(sq) == bb.Black {
				letter |= 0x20
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if r < 7 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	if b.SideToMove == bb.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	if b.CastleRights == 0 {
		sb.WriteByte('-')
	} else {
		if b.CastleRights&bb.WhiteOO != 0 {
			sb.WriteByte('K')
		}
		if b.CastleRights&bb.WhiteOOO != 0 {
			sb.WriteByte('Q')
		}
		if b.CastleRights&bb.BlackOO != 0 {
			sb.WriteByte('k')
		}
		if b.CastleRights&bb.BlackOOO != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(b.EnPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.FiftyMoveCount))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.FullMoveCount))
	return sb.String()
}
