package graph

import (
	"sort"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
)

// Edge joins two settlement indices with the planar distance between them.
// Edges are unordered; A < B always holds for edges built by Edges().
type Edge struct {
	A, B int
	Dist float64
}

// Edges returns the complete set of n·(n-1)/2 edges between the given
// points. Emission order is outer index ascending, then inner index
// ascending - SpanningTree relies on this order for stable tie-breaking.
func Edges(points []model2d.Coord) []Edge {
	out := make([]Edge, 0, len(points)*(len(points)-1)/2)
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			out = append(out, Edge{A: i, B: j, Dist: points[i].Dist(points[j])})
		}
	}
	return out
}

// SpanningTree selects a minimum-distance set of edges connecting all n
// points via Prim's algorithm, starting from point 0. Ties go to the first
// minimal edge encountered in the given edge order.
//
// If the edge set does not connect all points the result is a partial
// tree; callers must check len(result) == n-1 before trusting it.
func SpanningTree(n int, edges []Edge) []Edge {
	if n < 2 {
		return []Edge{}
	}

	inTree := make([]bool, n)
	inTree[0] = true
	tree := make([]Edge, 0, n-1)

	for len(tree) < n-1 {
		best := -1
		for i, e := range edges {
			if inTree[e.A] == inTree[e.B] {
				continue // not a crossing edge
			}
			if best < 0 || e.Dist < edges[best].Dist {
				best = i
			}
		}
		if best < 0 {
			break // no crossing edge left, graph is disconnected
		}
		e := edges[best]
		inTree[e.A] = true
		inTree[e.B] = true
		tree = append(tree, e)
	}

	return tree
}

// Redundant picks up to count extra edges to layer over the spanning tree,
// shortest first, so the network isn't a pure tree with single chokepoints.
func Redundant(all, tree []Edge, count int) []Edge {
	if count <= 0 {
		return []Edge{}
	}

	rest := make([]Edge, len(all))
	copy(rest, all)
	for _, t := range tree {
		for i := 0; i < len(rest); i++ {
			if rest[i].A == t.A && rest[i].B == t.B {
				essentials.UnorderedDelete(&rest, i)
				break
			}
		}
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Dist < rest[j].Dist
	})

	if count > len(rest) {
		count = len(rest)
	}
	return rest[:count]
}
