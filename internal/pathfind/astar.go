package pathfind

import (
	"container/heap"
	"context"
	"math"

	"github.com/unixpickle/model3d/model2d"
)

// Weighted A* variant of the grid search. Selected when
// Config.HeuristicWeight > 0; per-step cost is the step length multiplied
// by the biome cost of the destination cell, h is the weighted euclidean
// distance to the goal. With weight 0 the plain BFS runs instead, so the
// default configuration is unaffected by this file.

type aNode struct {
	x, z  int
	g     float64
	f     float64
	index int // index in the heap
}

type aQueue []*aNode

func (q aQueue) Len() int            { return len(q) }
func (q aQueue) Less(i, j int) bool  { return q[i].f < q[j].f }
func (q *aQueue) Push(x interface{}) { n := x.(*aNode); n.index = len(*q); *q = append(*q, n) }

func (q aQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *aQueue) Pop() interface{} {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*q = old[:len(old)-1]
	return n
}

func findAStar(ctx context.Context, start, goal model2d.Coord, cfg Config, passable Passable, cost Cost) ([]model2d.Coord, bool) {
	sx, sz := snap(start.X, cfg.Step), snap(start.Y, cfg.Step)
	gx, gz := snap(goal.X, cfg.Step), snap(goal.Y, cfg.Step)

	g := newGrid(cfg, sx, sz, gx, gz)
	parent := make([]int32, g.w*g.h)
	for i := range parent {
		parent[i] = -1
	}
	closed := make([]bool, g.w*g.h)
	open := map[int]*aNode{}

	h := func(x, z int) float64 {
		dx := float64(x-gx) * cfg.Step
		dz := float64(z-gz) * cfg.Step
		return cfg.HeuristicWeight * math.Sqrt(dx*dx+dz*dz)
	}

	si, _ := g.index(sx, sz)
	startNode := &aNode{x: sx, z: sz, g: 0, f: h(sx, sz)}
	queue := &aQueue{}
	heap.Init(queue)
	heap.Push(queue, startNode)
	open[si] = startNode

	iters := 0
	for queue.Len() > 0 {
		cur := heap.Pop(queue).(*aNode)
		ci, _ := g.index(cur.x, cur.z)
		delete(open, ci)
		closed[ci] = true

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
			return reconstruct(g, parent, si, ci, goal), true
		}

		for _, n := range neighbours {
			nx, nz := cur.x+n[0], cur.z+n[1]
			ni, ok := g.index(nx, nz)
			if !ok || closed[ni] {
				continue
			}
			wx, wz := g.world(nx, nz)
			if !passable(wx, wz) {
				continue
			}

			stepLen := cfg.Step
			if n[0] != 0 && n[1] != 0 {
				stepLen *= math.Sqrt2
			}
			mult := 1.0
			if cost != nil {
				if m := cost(wx, wz); m > 0 {
					mult = m
				}
			}
			tentative := cur.g + stepLen*mult

			existing, seen := open[ni]
			if !seen {
				nn := &aNode{x: nx, z: nz, g: tentative, f: tentative + h(nx, nz)}
				parent[ni] = int32(ci)
				heap.Push(queue, nn)
				open[ni] = nn
			} else if tentative < existing.g {
				existing.g = tentative
				existing.f = tentative + h(nx, nz)
				parent[ni] = int32(ci)
				heap.Fix(queue, existing.index)
			}
		}
	}

	return nil, false
}
