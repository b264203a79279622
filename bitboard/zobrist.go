package bitboard

import "math/rand"

// Zobrist tables, seeded from a fixed constant so hashes are
// reproducible across runs and processes (spec.md §4.A).
var (
	ZobristPiece     [2][KING + 1][64]uint64
	ZobristEnPassant [8]uint64
	ZobristCastle    [16]uint64
	ZobristSide      uint64
	// ZobristMaterial keys the endgame-recogniser material hash: one
	// key per (color, kind, count-of-that-piece), count capped at 9.
	ZobristMaterial [2][KING + 1][10]uint64
)

// zobristSeed is a fixed 64-bit seed; changing it changes every hash
// in the engine, so it must never vary between builds.
const zobristSeed = 0x5A6F62726973742D

func init() {
	rnd := rand.New(rand.NewSource(zobristSeed))
	for c := 0; c < 2; c++ {
		for p := PAWN; p <= KING; p++ {
			for sq := 0; sq < 64; sq++ {
				ZobristPiece[c][p][sq] = rnd.Uint64()
			}
		}
	}
	for f := 0; f < 8; f++ {
		ZobristEnPassant[f] = rnd.Uint64()
	}
	for cr := 0; cr < 16; cr++ {
		ZobristCastle[cr] = rnd.Uint64()
	}
	ZobristSide = rnd.Uint64()
	for c := 0; c < 2; c++ {
		for p := PAWN; p <= KING; p++ {
			for n := 0; n < 10; n++ {
				ZobristMaterial[c][p][n] = rnd.Uint64()
			}
		}
	}
}
