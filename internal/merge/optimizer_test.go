package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cncmill/gcodeclean/internal/geom"
)

func coord(x, y float64) geom.Coord {
	return geom.Coord{X: x, Y: y, Set: geom.SetX | geom.SetY}
}

func TestOrderSingleNode(t *testing.T) {
	nodes := []Node{{ID: 1, Start: coord(0, 0), End: coord(1, 1)}}
	assert.Equal(t, []int{1}, Order(nodes))
}

func TestOrderChainsCoincidentEndpoints(t *testing.T) {
	// 1 ends where 2 starts, 2 ends where 3 starts: a clean primary chain.
	nodes := []Node{
		{ID: 1, Start: coord(0, 0), End: coord(10, 0)},
		{ID: 2, Start: coord(10, 0), End: coord(10, 10)},
		{ID: 3, Start: coord(10, 10), End: coord(0, 10)},
	}
	assert.Equal(t, []int{1, 2, 3}, Order(nodes))
}

func TestOrderSeedsNearestWhenDisjoint(t *testing.T) {
	// No coincident endpoints: 1 is far from 3, close to 2.
	nodes := []Node{
		{ID: 1, Start: coord(0, 0), End: coord(1, 1)},
		{ID: 2, Start: coord(1, 2), End: coord(50, 50)},
		{ID: 3, Start: coord(1000, 1000), End: coord(1001, 1001)},
	}
	order := Order(nodes)
	assert.Len(t, order, 3)
	assert.ElementsMatch(t, []int{1, 2, 3}, order)
	// 1 and 2 are the closest pair (1 apart); they end up next to each other.
	pos := map[int]int{}
	for i, id := range order {
		pos[id] = i
	}
	assert.Equal(t, 1, abs(pos[1]-pos[2]))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
