package clip

import (
	"github.com/unixpickle/model3d/model2d"
)

// en.wikipedia.org/wiki/Cohen%E2%80%93Sutherland_algorithm

// outcodes for the nine regions around a rect
const (
	inside = 0
	left   = 1
	right  = 2
	bottom = 4
	top    = 8
)

// Rect is an axis-aligned clipping rectangle in world space.
type Rect struct {
	MinX, MinZ, MaxX, MaxZ float64
}

func (r Rect) outcode(p model2d.Coord) int {
	code := inside
	if p.X < r.MinX {
		code |= left
	} else if p.X > r.MaxX {
		code |= right
	}
	if p.Y < r.MinZ {
		code |= bottom
	} else if p.Y > r.MaxZ {
		code |= top
	}
	return code
}

// Segment clips the segment a-b against r. It returns the portion of the
// segment inside r, or ok=false if the segment misses the rect entirely.
// Degenerate (point-like) segments are rejected outright; they carry no
// drawable geometry & would otherwise risk a division by zero.
func Segment(a, b model2d.Coord, r Rect) (model2d.Coord, model2d.Coord, bool) {
	if a == b {
		return a, b, false
	}

	codeA := r.outcode(a)
	codeB := r.outcode(b)

	for {
		if codeA|codeB == inside {
			// both endpoints in the rect; a segment that only grazed a
			// corner may have collapsed to a point, which we discard
			return a, b, a != b
		}
		if codeA&codeB != inside {
			return a, b, false // both endpoints share an outside region
		}

		// at least one endpoint is outside; clip it to the rect boundary
		out := codeA
		if out == inside {
			out = codeB
		}

		var p model2d.Coord
		switch {
		case out&top != 0:
			p.X = a.X + (b.X-a.X)*(r.MaxZ-a.Y)/(b.Y-a.Y)
			p.Y = r.MaxZ
		case out&bottom != 0:
			p.X = a.X + (b.X-a.X)*(r.MinZ-a.Y)/(b.Y-a.Y)
			p.Y = r.MinZ
		case out&right != 0:
			p.Y = a.Y + (b.Y-a.Y)*(r.MaxX-a.X)/(b.X-a.X)
			p.X = r.MaxX
		case out&left != 0:
			p.Y = a.Y + (b.Y-a.Y)*(r.MinX-a.X)/(b.X-a.X)
			p.X = r.MinX
		}

		if out == codeA {
			a = p
			codeA = r.outcode(a)
		} else {
			b = p
			codeB = r.outcode(b)
		}
	}
}
