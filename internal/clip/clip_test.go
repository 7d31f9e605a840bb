package clip

import (
	"testing"

	"github.com/unixpickle/model3d/model2d"
)

var rect = Rect{MinX: 0, MinZ: 0, MaxX: 10, MaxZ: 10}

func TestSegmentFullyInside(t *testing.T) {
	a := model2d.Coord{X: 2, Y: 3}
	b := model2d.Coord{X: 8, Y: 7}

	ca, cb, ok := Segment(a, b, rect)
	if !ok {
		t.Fatal("inside segment rejected")
	}
	if ca != a || cb != b {
		t.Fatalf("inside segment changed: %v-%v", ca, cb)
	}
}

func TestSegmentFullyOutside(t *testing.T) {
	cases := [][2]model2d.Coord{
		{{X: 20, Y: 20}, {X: 30, Y: 30}}, // shared corner region
		{{X: -5, Y: 2}, {X: -1, Y: 8}},   // both left
		{{X: 2, Y: 15}, {X: 8, Y: 12}},   // both above
	}
	for i, c := range cases {
		if _, _, ok := Segment(c[0], c[1], rect); ok {
			t.Fatalf("case %d: outside segment accepted", i)
		}
	}
}

func TestSegmentCrossesBoundary(t *testing.T) {
	a := model2d.Coord{X: -5, Y: 5}
	b := model2d.Coord{X: 5, Y: 5}

	ca, cb, ok := Segment(a, b, rect)
	if !ok {
		t.Fatal("crossing segment rejected")
	}
	if ca != (model2d.Coord{X: 0, Y: 5}) {
		t.Fatalf("entry point not clipped at the boundary: %v", ca)
	}
	if cb != b {
		t.Fatalf("inside endpoint changed: %v", cb)
	}
}

func TestSegmentSpansRect(t *testing.T) {
	a := model2d.Coord{X: -10, Y: 5}
	b := model2d.Coord{X: 20, Y: 5}

	ca, cb, ok := Segment(a, b, rect)
	if !ok {
		t.Fatal("spanning segment rejected")
	}
	if ca != (model2d.Coord{X: 0, Y: 5}) || cb != (model2d.Coord{X: 10, Y: 5}) {
		t.Fatalf("expected clip at both boundaries, got %v-%v", ca, cb)
	}
}

func TestSegmentDiagonalCornerCut(t *testing.T) {
	// passes through (0,3) and (3,0)
	a := model2d.Coord{X: -1, Y: 4}
	b := model2d.Coord{X: 4, Y: -1}

	ca, cb, ok := Segment(a, b, rect)
	if !ok {
		t.Fatal("corner-cutting segment rejected")
	}
	if ca != (model2d.Coord{X: 0, Y: 3}) || cb != (model2d.Coord{X: 3, Y: 0}) {
		t.Fatalf("got %v-%v, want (0,3)-(3,0)", ca, cb)
	}
}

func TestSegmentDegeneratePoint(t *testing.T) {
	in := model2d.Coord{X: 5, Y: 5}
	if _, _, ok := Segment(in, in, rect); ok {
		t.Fatal("zero-length segment inside the rect should clip to nothing")
	}

	out := model2d.Coord{X: 50, Y: 5}
	if _, _, ok := Segment(out, out, rect); ok {
		t.Fatal("zero-length segment outside the rect should clip to nothing")
	}
}

func TestSegmentAxisAlignedOnEdge(t *testing.T) {
	// runs exactly along the rect's top edge
	a := model2d.Coord{X: -5, Y: 10}
	b := model2d.Coord{X: 15, Y: 10}

	ca, cb, ok := Segment(a, b, rect)
	if !ok {
		t.Fatal("edge-aligned segment rejected")
	}
	if ca != (model2d.Coord{X: 0, Y: 10}) || cb != (model2d.Coord{X: 10, Y: 10}) {
		t.Fatalf("got %v-%v, want (0,10)-(10,10)", ca, cb)
	}
}
