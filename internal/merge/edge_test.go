package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func acceptedPairs(t *testing.T, edges []Edge) [][2]int {
	t.Helper()
	var out [][2]int
	for _, e := range acceptedEdges(edges) {
		out = append(out, [2]int{e.Prev, e.Next})
	}
	return out
}

func TestCheckForLoopsAcceptsSimpleChain(t *testing.T) {
	edges := []Edge{
		{Prev: 1, Next: 2, Distance: 0, Weight: 0},
		{Prev: 2, Next: 3, Distance: 0, Weight: 0},
	}
	out := checkForLoops(edges)
	assert.ElementsMatch(t, [][2]int{{1, 2}, {2, 3}}, acceptedPairs(t, out))
}

func TestCheckForLoopsRejectsCycle(t *testing.T) {
	edges := []Edge{
		{Prev: 1, Next: 2, Distance: 0, Weight: 0},
		{Prev: 2, Next: 3, Distance: 0, Weight: 0},
		{Prev: 3, Next: 1, Distance: 0, Weight: 0},
	}
	out := checkForLoops(edges)
	assert.Len(t, acceptedEdges(out), 2)
	assert.Len(t, out, 3)
}

func TestCheckForLoopsRejectsDuplicatePrevOrNext(t *testing.T) {
	edges := []Edge{
		{Prev: 1, Next: 2, Distance: 0, Weight: 0},
		{Prev: 1, Next: 3, Distance: 1, Weight: 0},
		{Prev: 4, Next: 2, Distance: 1, Weight: 0},
	}
	out := checkForLoops(edges)
	assert.Len(t, acceptedEdges(out), 1)
	assert.Equal(t, [2]int{1, 2}, acceptedPairs(t, out)[0])
}

func TestCheckForLoopsRejectsSelfLoop(t *testing.T) {
	edges := []Edge{{Prev: 1, Next: 1, Distance: 0, Weight: 0}}
	out := checkForLoops(edges)
	assert.Empty(t, acceptedEdges(out))
	assert.Equal(t, RejectWeight, out[0].Weight)
}

func TestCheckForLoopsDedupesExactDuplicateEdges(t *testing.T) {
	edges := []Edge{
		{Prev: 1, Next: 2, Distance: 0, Weight: 0},
		{Prev: 1, Next: 2, Distance: 0, Weight: 0},
	}
	out := checkForLoops(edges)
	assert.Len(t, out, 1)
}

func TestCheckForLoopsPrefersShorterEdgeAtSameWeight(t *testing.T) {
	edges := []Edge{
		{Prev: 1, Next: 2, Distance: 5, Weight: 1},
		{Prev: 1, Next: 3, Distance: 1, Weight: 1},
	}
	out := checkForLoops(edges)
	accepted := acceptedEdges(out)
	assert.Len(t, accepted, 1)
	assert.Equal(t, 3, accepted[0].Next)
}

func TestCheckForLoopsMergesChainsAtBothEnds(t *testing.T) {
	edges := []Edge{
		{Prev: 1, Next: 2, Distance: 0, Weight: 0},
		{Prev: 3, Next: 4, Distance: 0, Weight: 0},
		{Prev: 2, Next: 3, Distance: 0, Weight: 0},
	}
	out := checkForLoops(edges)
	assert.Len(t, acceptedEdges(out), 3)
}
