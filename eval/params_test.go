package eval_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisflorin/knightwatch/eval"
)

func TestParamsSetAndGetRoundTrip(t *testing.T) {
	p := eval.NewParams()
	require.True(t, p.Set("PawnScore", 200), "expected PawnScore to be a known parameter")

	got, ok := p.Get("PawnScore")
	require.True(t, ok)
	assert.EqualValues(t, 200, got)
}

func TestParamsSetUnknownNameFails(t *testing.T) {
	p := eval.NewParams()
	assert.False(t, p.Set("NotARealParameter", 1), "expected Set on an unknown name to report failure")
}

func TestLoadPersonalityIgnoresUnknownNames(t *testing.T) {
	p := eval.NewParams()
	body := "PawnScore 300\nNotARealParameter 99\nBishopPairMG 7\n"
	require.NoError(t, p.LoadPersonality(strings.NewReader(body)))

	v, _ := p.Get("PawnScore")
	assert.EqualValues(t, 300, v)
	v, _ = p.Get("BishopPairMG")
	assert.EqualValues(t, 7, v)
}

func TestLoadPersonalityRejectsMalformedValue(t *testing.T) {
	p := eval.NewParams()
	err := p.LoadPersonality(strings.NewReader("PawnScore notanumber\n"))
	assert.Error(t, err, "expected an error for a non-integer value")
}

func TestNewParamsInstancesAreIndependent(t *testing.T) {
	a := eval.NewParams()
	b := eval.NewParams()
	a.Set("PawnScore", 1)
	b.Set("PawnScore", 2)
	va, _ := a.Get("PawnScore")
	vb, _ := b.Get("PawnScore")
	require.NotEqual(t, va, vb, "expected independent Params instances")
}
