package movegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisflorin/knightwatch/board"
	"github.com/chrisflorin/knightwatch/movegen"
)

func TestOrderMovesPutsTTMoveFirst(t *testing.T) {
	b, err := board.ParseFEN(board.StartingFEN)
	require.NoError(t, err)
	moves := movegen.GenerateAllMoves(&b)
	tt := mustFind(t, moves, "e2e4")
	scored := movegen.OrderMoves(&b, moves, movegen.OrderContext{TTMove: tt})
	require.True(t, scored[0].Move.Equal(tt), "expected TT move first, got %s", scored[0].Move)
}

func TestOrderMovesRanksGoodCaptureAboveQuiet(t *testing.T) {
	// White pawn e5 can capture a black knight on d6 (good capture,
	// N for P) or push quietly to e6.
	b, err := board.ParseFEN("4k3/8/3n4/4P3/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	moves := movegen.GenerateAllMoves(&b)
	scored := movegen.OrderMoves(&b, moves, movegen.OrderContext{})
	capture := mustFind(t, moves, "e5d6")
	quiet := mustFind(t, moves, "e5e6")
	var captureRank, quietRank = -1, -1
	for i, s := range scored {
		if s.Move.Equal(capture) {
			captureRank = i
		}
		if s.Move.Equal(quiet) {
			quietRank = i
		}
	}
	require.NotEqual(t, -1, captureRank, "expected candidate capture present")
	require.NotEqual(t, -1, quietRank, "expected candidate quiet move present")
	assert.Less(t, captureRank, quietRank, "expected the good capture to sort ahead of the quiet push")
}

func TestOrderCapturesPutsRookCaptureFirst(t *testing.T) {
	// White knight on c3 can capture an undefended rook on d5 (good);
	// that capture must come first in the ordered list.
	b, err := board.ParseFEN("4k3/8/8/3r4/8/2N5/8/4K3 w - - 0 1")
	require.NoError(t, err)
	moves := movegen.GenerateAllCaptures(&b)
	scored := movegen.OrderCaptures(&b, moves)
	require.NotEmpty(t, scored, "expected at least one capture")
	capture := mustFind(t, moves, "c3d5")
	assert.True(t, scored[0].Move.Equal(capture), "expected the rook capture to sort first, got %s", scored[0].Move)
}
