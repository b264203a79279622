package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisflorin/knightwatch/board"
	"github.com/chrisflorin/knightwatch/eval"
	"github.com/chrisflorin/knightwatch/search"
	"github.com/chrisflorin/knightwatch/tt"
)

func newSearcher() *search.Searcher {
	return search.NewSearcher(tt.New(1), eval.NewEvaluator(), board.NewHistory())
}

func TestSearchFindsFoolsMate(t *testing.T) {
	b, err := board.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)

	result := newSearcher().Search(&b, search.FixedDepthClock{MaxDepth: 1})
	assert.LessOrEqual(t, result.Score, -(search.Win - int32(search.MaxPly)),
		"White is already mated, expected a mate-in-1 score, got %d", result.Score)
}

func TestSearchPrefersWinningQueenCapture(t *testing.T) {
	b, err := board.ParseFEN("6k1/8/8/4q3/8/8/8/4QK2 w - - 0 1")
	require.NoError(t, err)

	result := newSearcher().Search(&b, search.FixedDepthClock{MaxDepth: 2})
	require.NotEmpty(t, result.PV.Moves, "expected a non-empty principal variation")
	assert.Equal(t, "e1e5", result.PV.Moves[0].String(), "expected the undefended queen capture as the best move")
}

func TestSearchRecognisesInsufficientMaterialDraw(t *testing.T) {
	b, err := board.ParseFEN("8/8/3k4/8/8/3K4/8/8 w - - 0 1")
	require.NoError(t, err)

	result := newSearcher().Search(&b, search.FixedDepthClock{MaxDepth: 3})
	assert.Zero(t, result.Score, "a bare king ending should score as a dead draw")
}

func TestSearchRespectsFixedDepth(t *testing.T) {
	b, err := board.ParseFEN(board.StartingFEN)
	require.NoError(t, err)

	result := newSearcher().Search(&b, search.FixedDepthClock{MaxDepth: 2})
	assert.Equal(t, 2, result.Depth)
}

func TestSearchDetectsCheckmateAtRootWithoutIterating(t *testing.T) {
	// White has no legal moves and is in check: Search must short-circuit
	// to a mate score before ever consulting the clock.
	b, err := board.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)

	result := newSearcher().Search(&b, search.FixedDepthClock{MaxDepth: 1})
	assert.Equal(t, -search.Win, result.Score)
	assert.Zero(t, result.Depth, "a root checkmate never completes an iteration")
}
