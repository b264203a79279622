package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisflorin/knightwatch/board"
	"github.com/chrisflorin/knightwatch/eval"
)

func TestEndgameTableRecognisesKQvK(t *testing.T) {
	b, err := board.ParseFEN("7k/8/8/8/8/8/8/Q3K3 w - - 0 1")
	require.NoError(t, err)

	score, ok := eval.DefaultEndgames.Probe(&b, eval.Default)
	require.True(t, ok, "expected KQ vs K to be a recognised ending")
	assert.Positive(t, score, "expected White (with the queen) to score positively")
}

func TestEndgameTableMissOnUnrecognisedMaterial(t *testing.T) {
	b, err := board.ParseFEN("7k/8/8/8/3n4/8/8/Q3K3 w - - 0 1")
	require.NoError(t, err)

	_, ok := eval.DefaultEndgames.Probe(&b, eval.Default)
	assert.False(t, ok, "expected KQ vs KN to miss the recogniser table")
}

func TestEndgameDrawnMinorVsMinor(t *testing.T) {
	b, err := board.ParseFEN("4k1n1/8/8/8/8/8/8/2N1K3 w - - 0 1")
	require.NoError(t, err)

	score, ok := eval.DefaultEndgames.Probe(&b, eval.Default)
	require.True(t, ok, "expected KN vs KN to be recognised as a drawn ending")
	assert.Zero(t, score, "expected a drawn KN vs KN ending to score 0")
}

func TestEndgameCannotWinKRvKP(t *testing.T) {
	b, err := board.ParseFEN("4k3/4p3/8/8/8/8/8/3RK3 w - - 0 1")
	require.NoError(t, err)

	p := eval.Default
	score, ok := eval.DefaultEndgames.Probe(&b, p)
	require.True(t, ok, "expected KR vs KP to be recognised")
	assert.True(t, score < p.Draw && score > -p.Draw,
		"expected a knkp/kbkp-style clamp within (-Draw, Draw), got %d", score)
}

func TestWeakKingPrefersStrongKingCloser(t *testing.T) {
	far, err := board.ParseFEN("k7/8/8/8/4K3/8/8/7Q w - - 0 1")
	require.NoError(t, err)
	near, err := board.ParseFEN("k7/8/1K6/8/8/8/8/7Q w - - 0 1")
	require.NoError(t, err)

	p := eval.Default
	farScore, ok := eval.DefaultEndgames.Probe(&far, p)
	require.True(t, ok, "expected KQ vs K to be recognised (far)")
	nearScore, ok := eval.DefaultEndgames.Probe(&near, p)
	require.True(t, ok, "expected KQ vs K to be recognised (near)")

	assert.Greater(t, nearScore, farScore, "expected a closer strong king to score higher")
}
