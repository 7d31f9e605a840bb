// Package smooth turns blocky grid paths into organic curves: Chaikin
// corner-cutting subdivision, perpendicular noise displacement & a
// minimum-spacing pass. Everything here works on horizontal coordinates
// only - terrain height sampling & passability acceptance stay with the
// caller, which is the only holder of a terrain reference.
package smooth

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/unixpickle/model3d/model2d"
)

// Chaikin runs one round of corner cutting: each consecutive pair (p0,p1)
// is replaced by points at the 75/25 and 25/75 blends. The first & last
// points are preserved unchanged. Each round roughly doubles the count.
func Chaikin(points []model2d.Coord) []model2d.Coord {
	if len(points) < 3 {
		return points
	}

	out := make([]model2d.Coord, 0, 2*len(points))
	out = append(out, points[0])
	for i := 0; i+1 < len(points); i++ {
		p0, p1 := points[i], points[i+1]
		out = append(out,
			p0.Scale(0.75).Add(p1.Scale(0.25)),
			p0.Scale(0.25).Add(p1.Scale(0.75)),
		)
	}
	return append(out, points[len(points)-1])
}

// Subdivide applies Chaikin the given number of rounds.
func Subdivide(points []model2d.Coord, rounds int) []model2d.Coord {
	for i := 0; i < rounds; i++ {
		points = Chaikin(points)
	}
	return points
}

// Displacer proposes noise-driven displacements for path points. The
// underlying simplex field is seeded once per world; each road gets its
// own deterministic sample offset so two roads crossing the same area
// don't wobble in lockstep.
type Displacer struct {
	noise    opensimplex.Noise
	scale    float64
	strength float64
	seed     int64
}

// NewDisplacer builds a displacer over a simplex field seeded from the
// world seed.
func NewDisplacer(seed int64, scale, strength float64) *Displacer {
	return &Displacer{
		noise:    opensimplex.NewNormalized(seed),
		scale:    scale,
		strength: strength,
		seed:     seed,
	}
}

// Candidates returns a displaced copy of points for the given road index.
// Interior points move perpendicular to their local tangent by an amount
// drawn from the noise field; endpoints are returned untouched. The caller
// decides per point whether to accept the candidate or keep the original
// (terrain passability is not checked here).
func (d *Displacer) Candidates(points []model2d.Coord, road int) []model2d.Coord {
	out := make([]model2d.Coord, len(points))
	copy(out, points)
	if len(points) < 3 || d.strength == 0 {
		return out
	}

	rng := newLCG(uint32(d.seed) ^ uint32(road)*2654435761)
	ox := rng.float64() * 1024
	oz := rng.float64() * 1024

	for i := 1; i+1 < len(points); i++ {
		tangent := points[i+1].Sub(points[i-1])
		norm := tangent.Norm()
		if norm == 0 {
			continue
		}
		perp := model2d.Coord{X: -tangent.Y / norm, Y: tangent.X / norm}

		v := d.noise.Eval2(points[i].X*d.scale+ox, points[i].Y*d.scale+oz)
		amount := (v*2 - 1) * d.strength

		out[i] = points[i].Add(perp.Scale(amount))
	}
	return out
}

// Space drops points closer than min to the last accepted point, walking
// in order. The final point is always kept, replacing its predecessor if
// the two ended up too close.
func Space(points []model2d.Coord, min float64) []model2d.Coord {
	if len(points) < 2 || min <= 0 {
		return points
	}

	out := []model2d.Coord{points[0]}
	for i := 1; i < len(points); i++ {
		if points[i].Dist(out[len(out)-1]) >= min {
			out = append(out, points[i])
		}
	}

	last := points[len(points)-1]
	if out[len(out)-1] != last {
		if len(out) > 1 && last.Dist(out[len(out)-1]) < min {
			out[len(out)-1] = last
		} else {
			out = append(out, last)
		}
	}
	return out
}

// Length returns the planar length of the polyline.
func Length(points []model2d.Coord) float64 {
	total := 0.0
	for i := 0; i+1 < len(points); i++ {
		total += points[i].Dist(points[i+1])
	}
	return total
}

// lcg is a tiny deterministic linear congruential generator used to derive
// per-road noise offsets. Numerical Recipes constants, modulus 2^32. Not
// suitable for anything needing real randomness.
type lcg struct {
	state uint32
}

func newLCG(seed uint32) *lcg {
	return &lcg{state: seed}
}

func (l *lcg) next() uint32 {
	l.state = l.state*1664525 + 1013904223
	return l.state
}

func (l *lcg) float64() float64 {
	return float64(l.next()) / float64(math.MaxUint32)
}
