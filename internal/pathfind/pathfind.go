package pathfind

import (
	"context"
	"math"
	"runtime"

	"github.com/boljen/go-bitmap"
	"github.com/unixpickle/model3d/model2d"
)

// Passable reports whether terrain at the world point (x,z) can carry a road.
type Passable func(x, z float64) bool

// Cost returns the traversal cost multiplier at (x,z). Only the weighted
// search consumes it; plain BFS treats every step as equal.
type Cost func(x, z float64) float64

// Config bounds a single path search.
type Config struct {
	// Step is the grid spacing in world units.
	Step float64

	// MaxIterations caps how many nodes a search may expand before the
	// caller falls back to a direct line.
	MaxIterations int

	// YieldEvery sets how many iterations run between cooperative yields
	// back to the scheduler.
	YieldEvery int

	// Margin widens the search window (in grid cells) beyond the
	// bounding box of start & goal. Nodes outside the window count as
	// blocked.
	Margin int

	// HeuristicWeight switches the search to weighted A* when > 0.
	HeuristicWeight float64
}

// 4 cardinal + 4 diagonal neighbour offsets, in grid cells
var neighbours = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// grid is the bounded search window shared by BFS and A*. Cell (0,0) of
// the window sits at (minX, minZ) in grid coordinates.
type grid struct {
	step       float64
	minX, minZ int
	w, h       int
}

func newGrid(cfg Config, sx, sz, gx, gz int) *grid {
	margin := cfg.Margin
	if margin <= 0 {
		margin = 32
	}
	minX := minInt(sx, gx) - margin
	minZ := minInt(sz, gz) - margin
	return &grid{
		step: cfg.Step,
		minX: minX,
		minZ: minZ,
		w:    maxInt(sx, gx) + margin - minX + 1,
		h:    maxInt(sz, gz) + margin - minZ + 1,
	}
}

// index maps grid coordinates into the window, ok=false when outside.
func (g *grid) index(x, z int) (int, bool) {
	lx, lz := x-g.minX, z-g.minZ
	if lx < 0 || lx >= g.w || lz < 0 || lz >= g.h {
		return 0, false
	}
	return lz*g.w + lx, true
}

func (g *grid) world(x, z int) (float64, float64) {
	return float64(x) * g.step, float64(z) * g.step
}

// Find searches for a terrain-passable route from start to goal over a
// fixed-step grid. The returned path excludes the start point & ends on
// the exact (unsnapped) goal. ok=false means no route was found within
// the iteration budget - callers should degrade to Fallback.
//
// Identical inputs always produce identical paths.
func Find(ctx context.Context, start, goal model2d.Coord, cfg Config, passable Passable, cost Cost) ([]model2d.Coord, bool) {
	if cfg.HeuristicWeight > 0 {
		return findAStar(ctx, start, goal, cfg, passable, cost)
	}
	return findBFS(ctx, start, goal, cfg, passable)
}

func findBFS(ctx context.Context, start, goal model2d.Coord, cfg Config, passable Passable) ([]model2d.Coord, bool) {
	sx, sz := snap(start.X, cfg.Step), snap(start.Y, cfg.Step)
	gx, gz := snap(goal.X, cfg.Step), snap(goal.Y, cfg.Step)

	g := newGrid(cfg, sx, sz, gx, gz)
	visited := bitmap.New(g.w * g.h)
	parent := make([]int32, g.w*g.h)
	for i := range parent {
		parent[i] = -1
	}

	si, _ := g.index(sx, sz)
	visited.Set(si, true)

	type node struct{ x, z int }
	queue := []node{{sx, sz}}

	iters := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		iters++
		if iters > cfg.MaxIterations {
			return nil, false
		}
		if cfg.YieldEvery > 0 && iters%cfg.YieldEvery == 0 {
			if yield(ctx) {
				return nil, false
			}
		}

		if chebyshev(cur.x, cur.z, gx, gz) <= 1 {
			ci, _ := g.index(cur.x, cur.z)
			return reconstruct(g, parent, si, ci, goal), true
		}

		for _, n := range neighbours {
			nx, nz := cur.x+n[0], cur.z+n[1]
			ni, ok := g.index(nx, nz)
			if !ok || visited.Get(ni) {
				continue
			}
			wx, wz := g.world(nx, nz)
			if !passable(wx, wz) {
				continue
			}
			visited.Set(ni, true)
			ci, _ := g.index(cur.x, cur.z)
			parent[ni] = int32(ci)
			queue = append(queue, node{nx, nz})
		}
	}

	return nil, false
}

// reconstruct walks parent pointers from the found node back to the start,
// dropping the start itself & appending the exact goal position.
func reconstruct(g *grid, parent []int32, start, found int, goal model2d.Coord) []model2d.Coord {
	rev := []int{}
	for i := found; i != start; i = int(parent[i]) {
		rev = append(rev, i)
	}

	out := make([]model2d.Coord, 0, len(rev)+1)
	for i := len(rev) - 1; i >= 0; i-- {
		lx := rev[i] % g.w
		lz := rev[i] / g.w
		wx, wz := g.world(lx+g.minX, lz+g.minZ)
		out = append(out, model2d.Coord{X: wx, Y: wz})
	}
	return append(out, goal)
}

// Fallback returns a straight line from start to goal sampled at the grid
// step. No passability check is made - callers must flag the result so
// consumers know its points may sit below the water level.
func Fallback(start, goal model2d.Coord, step float64) []model2d.Coord {
	dist := start.Dist(goal)
	if dist == 0 || step <= 0 {
		return []model2d.Coord{goal}
	}

	n := int(dist / step)
	dir := goal.Sub(start).Scale(1 / dist)

	out := make([]model2d.Coord, 0, n+1)
	for i := 1; i <= n; i++ {
		out = append(out, start.Add(dir.Scale(float64(i)*step)))
	}
	if len(out) == 0 || out[len(out)-1] != goal {
		out = append(out, goal)
	}
	return out
}

// yield hands control back to the scheduler; true means the context died.
func yield(ctx context.Context) bool {
	if ctx != nil {
		select {
		case <-ctx.Done():
			return true
		default:
		}
	}
	runtime.Gosched()
	return false
}

func snap(v, step float64) int {
	return int(math.Round(v / step))
}

func chebyshev(ax, az, bx, bz int) int {
	dx := absInt(ax - bx)
	dz := absInt(az - bz)
	return maxInt(dx, dz)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
