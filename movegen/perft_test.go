package movegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisflorin/knightwatch/board"
	"github.com/chrisflorin/knightwatch/movegen"
)

func TestPerftInitialPosition(t *testing.T) {
	b, err := board.ParseFEN(board.StartingFEN)
	require.NoError(t, err)
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8_902},
		{4, 197_281},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, movegen.Perft(&b, c.depth), "perft(initial, %d)", c.depth)
	}
}

func TestPerftInitialPositionDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping depth 5 perft in short mode")
	}
	b, err := board.ParseFEN(board.StartingFEN)
	require.NoError(t, err)
	assert.Equal(t, uint64(4_865_609), movegen.Perft(&b, 5), "perft(initial, 5)")
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	b, err := board.ParseFEN(fen)
	require.NoError(t, err)
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 48},
		{2, 2_039},
		{3, 97_862},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, movegen.Perft(&b, c.depth), "perft(kiwipete, %d)", c.depth)
	}
}

func TestPerftPosition3(t *testing.T) {
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	b, err := board.ParseFEN(fen)
	require.NoError(t, err)
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2_812},
		{4, 43_238},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, movegen.Perft(&b, c.depth), "perft(position3, %d)", c.depth)
	}
}

// TestGenerateAllMovesCountMatchesLen pins the Open Question resolution in
// spec.md §9: the move count (Perft at depth 1) must always observably
// equal len(GenerateAllMoves).
func TestGenerateAllMovesCountMatchesLen(t *testing.T) {
	fens := []string{
		board.StartingFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		b, err := board.ParseFEN(fen)
		require.NoErrorf(t, err, "ParseFEN(%q)", fen)

		moves := movegen.GenerateAllMoves(&b)
		assert.NotEmptyf(t, moves, "expected at least one move for %q", fen)
		assert.Equalf(t, uint64(len(moves)), movegen.Perft(&b, 1), "perft(1) must equal len(GenerateAllMoves) for %q", fen)
	}
}
