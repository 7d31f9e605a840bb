package pathfind

import (
	"context"
	"math"
	"testing"

	"github.com/unixpickle/model3d/model2d"
)

func flatPassable(x, z float64) bool { return true }

func testConfig() Config {
	return Config{Step: 20, MaxIterations: 6000, YieldEvery: 200}
}

func TestFindFlatTerrainStraightLine(t *testing.T) {
	start := model2d.Coord{X: 0, Y: 0}
	goal := model2d.Coord{X: 100, Y: 0}

	path, ok := Find(context.Background(), start, goal, testConfig(), flatPassable, nil)
	if !ok {
		t.Fatal("expected a path on fully passable terrain")
	}

	want := []model2d.Coord{
		{X: 20, Y: 0}, {X: 40, Y: 0}, {X: 60, Y: 0}, {X: 80, Y: 0}, {X: 100, Y: 0},
	}
	if len(path) != len(want) {
		t.Fatalf("got %d points, want %d: %v", len(path), len(want), path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("point %d: got %v, want %v", i, path[i], want[i])
		}
	}
}

func TestFindStepSpacing(t *testing.T) {
	cfg := testConfig()
	start := model2d.Coord{X: 0, Y: 0}
	goal := model2d.Coord{X: 160, Y: 120}

	path, ok := Find(context.Background(), start, goal, cfg, flatPassable, nil)
	if !ok {
		t.Fatal("expected a path")
	}

	prev := start
	for i, p := range path[:len(path)-1] { // final point is the exact goal
		dx := math.Abs(p.X - prev.X)
		dz := math.Abs(p.Y - prev.Y)
		if math.Max(dx, dz) != cfg.Step {
			t.Fatalf("point %d: chebyshev step %v -> %v is not %v", i, prev, p, cfg.Step)
		}
		prev = p
	}
	if path[len(path)-1] != goal {
		t.Fatalf("path does not end on the goal: %v", path[len(path)-1])
	}
}

func TestFindEnclosedStart(t *testing.T) {
	// everything except the start cell itself is under water
	blocked := func(x, z float64) bool { return x == 0 && z == 0 }

	path, ok := Find(context.Background(), model2d.Coord{}, model2d.Coord{X: 200, Y: 0}, testConfig(), blocked, nil)
	if ok {
		t.Fatalf("expected no path from an enclosed start, got %v", path)
	}
	if len(path) != 0 {
		t.Fatalf("expected an empty path, got %d points", len(path))
	}
}

func TestFindRoutesAroundWater(t *testing.T) {
	// a vertical water strip at x in (30, 70) with a ford at z >= 100
	water := func(x, z float64) bool { return x <= 30 || x >= 70 || z >= 100 }

	path, ok := Find(context.Background(), model2d.Coord{}, model2d.Coord{X: 200, Y: 0}, testConfig(), water, nil)
	if !ok {
		t.Fatal("expected a route around the water")
	}
	for i, p := range path {
		if !water(p.X, p.Y) {
			t.Fatalf("point %d at %v is in the water", i, p)
		}
	}
}

func TestFindDeterministic(t *testing.T) {
	water := func(x, z float64) bool { return z >= 0 || x < -40 }
	start := model2d.Coord{X: 0, Y: 0}
	goal := model2d.Coord{X: 140, Y: 100}

	a, okA := Find(context.Background(), start, goal, testConfig(), water, nil)
	b, okB := Find(context.Background(), start, goal, testConfig(), water, nil)
	if okA != okB || len(a) != len(b) {
		t.Fatalf("runs differ: %v/%d vs %v/%d", okA, len(a), okB, len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestFindIterationBudget(t *testing.T) {
	cfg := testConfig()
	cfg.MaxIterations = 3

	_, ok := Find(context.Background(), model2d.Coord{}, model2d.Coord{X: 2000, Y: 2000}, cfg, flatPassable, nil)
	if ok {
		t.Fatal("expected failure with a 3 iteration budget")
	}
}

func TestFindCancelledContext(t *testing.T) {
	cfg := testConfig()
	cfg.YieldEvery = 1
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := Find(ctx, model2d.Coord{}, model2d.Coord{X: 2000, Y: 0}, cfg, flatPassable, nil)
	if ok {
		t.Fatal("expected failure once the context is cancelled")
	}
}

func TestFindWeightedAStar(t *testing.T) {
	cfg := testConfig()
	cfg.HeuristicWeight = 1

	// off the z=0 row every step costs 10x; the cheap route is straight
	cost := func(x, z float64) float64 {
		if z != 0 {
			return 10
		}
		return 1
	}

	path, ok := Find(context.Background(), model2d.Coord{}, model2d.Coord{X: 100, Y: 0}, cfg, flatPassable, cost)
	if !ok {
		t.Fatal("expected a weighted path")
	}
	for i, p := range path {
		if p.Y != 0 {
			t.Fatalf("point %d at %v strayed into the expensive biome", i, p)
		}
	}
}

func TestFallbackSpacingAndGoal(t *testing.T) {
	start := model2d.Coord{X: 0, Y: 0}
	goal := model2d.Coord{X: 50, Y: 0}

	path := Fallback(start, goal, 20)
	want := []model2d.Coord{{X: 20, Y: 0}, {X: 40, Y: 0}, {X: 50, Y: 0}}
	if len(path) != len(want) {
		t.Fatalf("got %d points, want %d: %v", len(path), len(want), path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("point %d: got %v, want %v", i, path[i], want[i])
		}
	}
}

func TestFallbackZeroDistance(t *testing.T) {
	p := model2d.Coord{X: 5, Y: 5}
	path := Fallback(p, p, 20)
	if len(path) != 1 || path[0] != p {
		t.Fatalf("expected just the goal point, got %v", path)
	}
}
