package roadgraph

import (
	"math"

	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/roadgraph/internal/tile"
)

// Network returns the generated network snapshot (by reference).
// Nil until Generate has run.
func (r *Roadgraph) Network() *Network {
	return r.network
}

// DistanceToNearestRoad returns the planar distance from (x,z) to the
// closest road path. The 3x3 block of cache tiles around the point is
// checked first; when those tiles are empty (generation incomplete,
// out-of-bounds query) every road path is scanned instead. Returns +Inf
// when no roads exist.
func (r *Roadgraph) DistanceToNearestRoad(x, z float64) float64 {
	if d, ok := r.cache.Nearest(x, z); ok {
		return d
	}

	// cache had nothing nearby; exhaustive scan
	p := model2d.Coord{X: x, Y: z}
	best := math.Inf(1)
	for _, road := range r.roads {
		for i := 0; i+1 < len(road.Path); i++ {
			d := tile.PointSegDist(p, road.Path[i].Pos, road.Path[i+1].Pos)
			if d < best {
				best = d
			}
		}
		if len(road.Path) == 1 {
			if d := p.Dist(road.Path[0].Pos); d < best {
				best = d
			}
		}
	}
	return best
}

// IsOnRoad reports whether (x,z) lies within half a road width of a road.
func (r *Roadgraph) IsOnRoad(x, z float64) bool {
	return r.DistanceToNearestRoad(x, z) <= r.cfg.RoadWidth/2
}

// SegmentsForTile returns the cached road segments crossing the given
// tile, endpoints local to the tile origin. Empty when the tile holds no
// roads.
func (r *Roadgraph) SegmentsForTile(tx, tz int) []TileSegment {
	cached := r.cache.Segments(tx, tz)
	if len(cached) == 0 {
		return nil
	}
	out := make([]TileSegment, len(cached))
	for i, s := range cached {
		out[i] = TileSegment{RoadID: s.RoadID, Width: s.Width, A: s.A, B: s.B}
	}
	return out
}

// TileAt returns the tile coordinates containing the world point (x,z).
func (r *Roadgraph) TileAt(x, z float64) (int, int) {
	return r.cache.TileAt(x, z)
}

// validate walks the settlement adjacency implied by the generated roads
// & logs (non-fatally) anything unreachable. The network is published
// with whatever connectivity it achieved either way.
func (r *Roadgraph) validate() {
	if len(r.settlements) < 2 {
		return
	}

	adj := map[int][]int{}
	for _, road := range r.roads {
		adj[road.From] = append(adj[road.From], road.To)
		adj[road.To] = append(adj[road.To], road.From)
	}

	seen := map[int]bool{r.settlements[0].ID: true}
	queue := []int{r.settlements[0].ID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	for _, s := range r.settlements {
		if !seen[s.ID] {
			r.log.Error("settlement unreachable by road", "settlement", s.ID, "name", s.Name)
		}
	}

	if len(r.roads) < len(r.settlements)-1 {
		r.log.Warn("road count below settlement count - 1, network may be disconnected",
			"roads", len(r.roads), "settlements", len(r.settlements))
	}
}
