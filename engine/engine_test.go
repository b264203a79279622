package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bb "github.com/chrisflorin/knightwatch/bitboard"
	"github.com/chrisflorin/knightwatch/board"
	"github.com/chrisflorin/knightwatch/engine"
	"github.com/chrisflorin/knightwatch/search"
)

func TestNewGameResetsToStartingPosition(t *testing.T) {
	e := engine.New(1)
	require.NoError(t, e.SetBoard("6k1/8/8/4q3/8/8/8/4QK2 w - - 0 1"))

	e.NewGame()

	assert.Equal(t, board.StartingFEN, boardFEN(&e.Board))
	assert.Zero(t, e.History.Len())
}

func TestSetBoardRejectsMalformedFEN(t *testing.T) {
	e := engine.New(1)
	err := e.SetBoard("not a fen")
	assert.Error(t, err)
}

func TestUserMoveAppliesAndPushesHistory(t *testing.T) {
	e := engine.New(1)
	err := e.UserMove("e2e4")
	require.NoError(t, err)
	assert.Equal(t, 1, e.History.Len())
	assert.Equal(t, bb.Black, e.Board.SideToMove)
}

func TestUserMoveReportsUnparsableMove(t *testing.T) {
	e := engine.New(1)
	err := e.UserMove("zzzz")
	assert.Error(t, err)
}

func TestForceModeToggles(t *testing.T) {
	e := engine.New(1)
	assert.False(t, e.ForceMode())
	e.Force(true)
	assert.True(t, e.ForceMode())
}

func TestPerftFromStartingPositionDepthOne(t *testing.T) {
	e := engine.New(1)
	assert.Equal(t, uint64(20), e.Perft(1))
}

func TestSetValueRejectsUnknownName(t *testing.T) {
	e := engine.New(1)
	assert.False(t, e.SetValue("NotARealParameter", 5))
	assert.True(t, e.SetValue("PawnScore", 130))
}

func TestPingEchoesArgument(t *testing.T) {
	e := engine.New(1)
	assert.Equal(t, "pong 7", e.Ping(7))
}

func TestGoReturnsAMove(t *testing.T) {
	e := engine.New(1)
	require.NoError(t, e.SetBoard("6k1/8/8/4q3/8/8/8/4QK2 w - - 0 1"))
	e.SetDepth(2)

	result := e.Go()

	assert.NotEqual(t, board.NullMove, result.Move)
	assert.GreaterOrEqual(t, result.Result.Depth, 1)
}

func TestThinkingLineFormatsMateScore(t *testing.T) {
	r := search.Result{Depth: 3, Score: search.Win - 2, Nodes: 100}
	line := engine.ThinkingLine(r)
	assert.Equal(t, "3 99 0 100 ", line)
}

func boardFEN(b *board.Board) string {
	return b.String()
}

