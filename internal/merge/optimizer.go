package merge

import (
	"sort"

	"github.com/cncmill/gcodeclean/internal/geom"
)

const zeroDistance = 1e-9

// Order runs the travel-reordering optimiser of §4.7 over nodes and
// returns their ids in the chosen concatenation order. Primary
// (coincident-endpoint) edges are assembled first, then zero-distance
// secondary edges, then distance-ascending seeded edges, then a greedy
// residual pass links whatever remains; a final rotation opens the chain
// at its single longest link if that beats the chain's natural ends.
func Order(nodes []Node) []int {
	if len(nodes) == 0 {
		return nil
	}
	if len(nodes) == 1 {
		return []int{nodes[0].ID}
	}

	byID := make(map[int]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	accepted := checkForLoops(primaryEdges(nodes))

	pass := 1
	for {
		cand := secondaryEdges(nodes, byID, accepted, pass)
		if len(cand) == 0 {
			break
		}
		merged := checkForLoops(append(cloneAccepted(accepted), cand...))
		if countAccepted(merged) == countAccepted(accepted) {
			break
		}
		accepted = merged
		pass++
	}

	for {
		srcs, tgts := unpaired(nodes, accepted)
		if len(srcs) <= 1 {
			break
		}
		cand := seededEdges(byID, srcs, tgts, pass+1)
		if len(cand) == 0 {
			break
		}
		merged := checkForLoops(append(cloneAccepted(accepted), cand...))
		if countAccepted(merged) == countAccepted(accepted) {
			break
		}
		accepted = merged
		pass++
	}

	for {
		srcs, tgts := unpaired(nodes, accepted)
		if len(srcs) <= 1 {
			break
		}
		cand := residualCandidates(byID, srcs, tgts, pass)
		progressed := false
		for _, e := range cand {
			merged := checkForLoops(append(cloneAccepted(accepted), e))
			if countAccepted(merged) > countAccepted(accepted) {
				accepted = merged
				progressed = true
				break
			}
		}
		if !progressed {
			break
		}
	}

	return materialize(nodes, byID, accepted)
}

func acceptedEdges(edges []Edge) []Edge {
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.Weight < RejectWeight {
			out = append(out, e)
		}
	}
	return out
}

func countAccepted(edges []Edge) int { return len(acceptedEdges(edges)) }

func cloneAccepted(edges []Edge) []Edge {
	return append([]Edge(nil), acceptedEdges(edges)...)
}

func dist(a, b Node) float64 { return a.End.Distance2D(b.Start, geom.AxisZ) }

func coordEqual(a, b geom.Coord) bool {
	return a.Distance2D(b, geom.AxisZ) <= zeroDistance && (a.Z-b.Z) < zeroDistance && (b.Z-a.Z) < zeroDistance
}

// primaryEdges implements pass 0: for every node u, a coincident-endpoint
// v is a primary edge at distance 0; when several v tie, only the
// degenerate peck-drill case (v.Start == v.End) is kept as a candidate.
func primaryEdges(nodes []Node) []Edge {
	var edges []Edge
	for _, u := range nodes {
		var matches []Node
		for _, v := range nodes {
			if v.ID == u.ID {
				continue
			}
			if coordEqual(u.End, v.Start) {
				matches = append(matches, v)
			}
		}
		if len(matches) > 1 {
			var filtered []Node
			for _, v := range matches {
				if coordEqual(v.Start, v.End) {
					filtered = append(filtered, v)
				}
			}
			matches = filtered
		}
		for _, v := range matches {
			edges = append(edges, Edge{Prev: u.ID, Next: v.ID, Distance: 0, Weight: 0})
		}
	}
	return edges
}

// secondaryEdges proposes zero-distance edges (weight k) between
// currently unpaired sources and targets.
func secondaryEdges(nodes []Node, byID map[int]Node, accepted []Edge, weight int) []Edge {
	srcs, tgts := unpaired(nodes, accepted)
	var edges []Edge
	for _, s := range srcs {
		for _, t := range tgts {
			if s == t {
				continue
			}
			d := dist(byID[s], byID[t])
			if d <= zeroDistance {
				edges = append(edges, Edge{Prev: s, Next: t, Distance: d, Weight: weight})
			}
		}
	}
	return edges
}

// seededEdges proposes every remaining unpaired source->target pairing at
// weight k+1; checkForLoops' distance-ascending tie-break within the
// shared weight class does the ordering.
func seededEdges(byID map[int]Node, srcs, tgts []int, weight int) []Edge {
	var edges []Edge
	for _, s := range srcs {
		for _, t := range tgts {
			if s == t {
				continue
			}
			edges = append(edges, Edge{Prev: s, Next: t, Distance: dist(byID[s], byID[t]), Weight: weight})
		}
	}
	return edges
}

// residualCandidates orders the remaining pairings by ascending distance,
// tie-broken by the larger next id, for the greedy residual pass.
func residualCandidates(byID map[int]Node, srcs, tgts []int, weight int) []Edge {
	edges := seededEdges(byID, srcs, tgts, weight)
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].Distance != edges[j].Distance {
			return edges[i].Distance < edges[j].Distance
		}
		return edges[i].Next > edges[j].Next
	})
	return edges
}

func unpaired(nodes []Node, accepted []Edge) (sources, targets []int) {
	usedPrev := map[int]bool{}
	usedNext := map[int]bool{}
	for _, e := range acceptedEdges(accepted) {
		usedPrev[e.Prev] = true
		usedNext[e.Next] = true
	}
	for _, n := range nodes {
		if !usedPrev[n.ID] {
			sources = append(sources, n.ID)
		}
		if !usedNext[n.ID] {
			targets = append(targets, n.ID)
		}
	}
	return sources, targets
}

// materialize walks the accepted edge set into node-id chains, appends
// any node left unconnected (in ascending id order) as its own singleton
// chain, then applies the closing-edge rotation check to the result.
func materialize(nodes []Node, byID map[int]Node, accepted []Edge) []int {
	next := map[int]int{}
	hasNext := map[int]bool{}
	usedNext := map[int]bool{}
	for _, e := range acceptedEdges(accepted) {
		next[e.Prev] = e.Next
		hasNext[e.Prev] = true
		usedNext[e.Next] = true
	}

	visited := map[int]bool{}
	var order []int
	ids := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	sort.Ints(ids)

	for _, id := range ids {
		if visited[id] || usedNext[id] {
			continue // not a chain head
		}
		cur := id
		for {
			order = append(order, cur)
			visited[cur] = true
			if !hasNext[cur] {
				break
			}
			cur = next[cur]
			if visited[cur] {
				break
			}
		}
	}
	for _, id := range ids {
		if !visited[id] {
			order = append(order, id)
			visited[id] = true
		}
	}

	return rotate(order, byID)
}

// rotate compares closing the assembled chain (last -> first) against the
// chain's single longest consecutive link; if closing would be shorter,
// the chain is cut there instead and re-opened at the node following it.
func rotate(order []int, byID map[int]Node) []int {
	if len(order) < 3 {
		return order
	}
	maxIdx, maxDist := -1, -1.0
	for i := 0; i < len(order)-1; i++ {
		d := dist(byID[order[i]], byID[order[i+1]])
		if d > maxDist {
			maxDist, maxIdx = d, i
		}
	}
	closing := dist(byID[order[len(order)-1]], byID[order[0]])
	if maxIdx < 0 || closing >= maxDist {
		return order
	}
	return append(append([]int{}, order[maxIdx+1:]...), order[:maxIdx+1]...)
}
