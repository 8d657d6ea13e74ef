package graph

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByPredicate_IdempotentScan(t *testing.T) {
	g := sampleGraph(t)
	seq := ByPredicate(g, IRI(owlMinCd))

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	require.Len(t, first, 1)
	assert.Equal(t, first, second, "restartable and deterministic on an unmutated graph")
}

func TestByPredicate_ReflectsCurrentContent(t *testing.T) {
	g := New()
	seq := ByPredicate(g, IRI(ex+"p"))
	assert.Empty(t, slices.Collect(seq))

	_, err := g.Add(NewStatement(IRI(ex+"s"), IRI(ex+"p"), Literal("1")))
	require.NoError(t, err)
	assert.Len(t, slices.Collect(seq), 1)
}

func TestByPredicates_ConcatenatesInOrder(t *testing.T) {
	g := New(
		NewStatement(IRI(ex+"a"), IRI(ex+"p2"), Literal("x")),
		NewStatement(IRI(ex+"b"), IRI(ex+"p1"), Literal("y")),
	)

	got := slices.Collect(ByPredicates(g, IRI(ex+"p1"), IRI(ex+"p2")))
	require.Len(t, got, 2)
	assert.Equal(t, IRI(ex+"p1"), got[0].Predicate)
	assert.Equal(t, IRI(ex+"p2"), got[1].Predicate)
}

func TestFilter_StopsEarly(t *testing.T) {
	g := sampleGraph(t)
	count := 0
	for range Filter(g.Find(Any, Any, Any), func(Statement) bool { return true }) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
