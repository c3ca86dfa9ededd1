package merge

import "sort"

// RejectWeight marks an edge as excluded from the final ordering (§3:
// "A weighting of 100 means excluded/forbidden").
const RejectWeight = 100

// Edge is a directed candidate pairing of two nodes' endpoints, scored by
// the Euclidean distance between prev's End and next's Start, and tagged
// with the pass that proposed it (0 = primary, k = seeded at pass k).
type Edge struct {
	Prev, Next int
	Distance   float64
	Weight     int
}

// nodelist is a linear chain of node ids under assembly, plus the edges
// that currently connect them (len(edges) == len(ids)-1).
type nodelist struct {
	ids   []int
	edges []Edge
}

func (nl *nodelist) first() int { return nl.ids[0] }
func (nl *nodelist) last() int  { return nl.ids[len(nl.ids)-1] }

// checkForLoops is the invariant maintainer of §4.7: given a candidate
// edge list, it deduplicates by (prev, next), processes edges in
// weight/distance order, and accepts an edge only when doing so keeps the
// accepted set a disjoint union of simple paths — no node used twice as a
// prev, never twice as a next, and never closing a cycle. Edges that
// would violate that are returned with Weight set to RejectWeight rather
// than dropped, so later passes can see what was tried. The returned
// slice lists accepted edges in nodelist-chain order first, rejected
// edges last.
func checkForLoops(edges []Edge) []Edge {
	deduped := dedupeEdges(edges)
	ordered := orderForSweep(deduped)

	usedAsPrev := map[int]bool{}
	usedAsNext := map[int]bool{}
	memberOf := map[int]*nodelist{}
	var lists []*nodelist

	var accepted, rejected []Edge

	for _, e := range ordered {
		if e.Weight >= RejectWeight {
			rejected = append(rejected, e)
			continue
		}
		if usedAsPrev[e.Prev] || usedAsNext[e.Next] || e.Prev == e.Next {
			e.Weight = RejectWeight
			rejected = append(rejected, e)
			continue
		}
		if closesCycle(memberOf, e.Prev, e.Next) {
			e.Weight = RejectWeight
			rejected = append(rejected, e)
			continue
		}

		lp, hasLP := memberOf[e.Prev]
		ln, hasLN := memberOf[e.Next]
		switch {
		case hasLP && hasLN:
			lp.ids = append(lp.ids, ln.ids...)
			lp.edges = append(lp.edges, e)
			lp.edges = append(lp.edges, ln.edges...)
			for _, id := range ln.ids {
				memberOf[id] = lp
			}
		case hasLP:
			lp.ids = append(lp.ids, e.Next)
			lp.edges = append(lp.edges, e)
			memberOf[e.Next] = lp
		case hasLN:
			ln.ids = append([]int{e.Prev}, ln.ids...)
			ln.edges = append([]Edge{e}, ln.edges...)
			memberOf[e.Prev] = ln
		default:
			nl := &nodelist{ids: []int{e.Prev, e.Next}, edges: []Edge{e}}
			memberOf[e.Prev] = nl
			memberOf[e.Next] = nl
			lists = append(lists, nl)
		}
		usedAsPrev[e.Prev] = true
		usedAsNext[e.Next] = true
		accepted = append(accepted, e)
	}

	out := make([]Edge, 0, len(edges))
	seen := map[*nodelist]bool{}
	for _, e := range accepted {
		nl := memberOf[e.Prev]
		if seen[nl] {
			continue
		}
		seen[nl] = true
		out = append(out, nl.edges...)
	}
	out = append(out, rejected...)
	return out
}

// closesCycle reports whether adding prev->next would complete a loop:
// true iff next is already able to reach prev by following the chain
// prev currently belongs to (i.e. prev and next are the two ends of the
// same open nodelist).
func closesCycle(memberOf map[int]*nodelist, prev, next int) bool {
	lp, okp := memberOf[prev]
	ln, okn := memberOf[next]
	if !okp || !okn || lp != ln {
		return false
	}
	return lp.last() == prev && lp.first() == next
}

func dedupeEdges(edges []Edge) []Edge {
	seen := map[[2]int]bool{}
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		k := [2]int{e.Prev, e.Next}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}

// orderForSweep implements §4.7's processing order: edges below the
// maximum surviving weight first (original order), edges at the maximum
// weight sorted by distance ascending, rejected (>=100) edges last.
func orderForSweep(edges []Edge) []Edge {
	maxWeight := -1
	for _, e := range edges {
		if e.Weight < RejectWeight && e.Weight > maxWeight {
			maxWeight = e.Weight
		}
	}

	var below, atMax, rejected []Edge
	for _, e := range edges {
		switch {
		case e.Weight >= RejectWeight:
			rejected = append(rejected, e)
		case e.Weight == maxWeight:
			atMax = append(atMax, e)
		default:
			below = append(below, e)
		}
	}
	sort.SliceStable(atMax, func(i, j int) bool { return atMax[i].Distance < atMax[j].Distance })

	out := make([]Edge, 0, len(edges))
	out = append(out, below...)
	out = append(out, atMax...)
	out = append(out, rejected...)
	return out
}
