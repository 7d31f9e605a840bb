package tile

import (
	"math"
	"runtime"

	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/roadgraph/internal/clip"
)

// Segment is the part of one road's path that crosses a single tile.
// A and B are local to the tile's world origin.
type Segment struct {
	RoadID int
	Width  float64
	A, B   model2d.Coord
}

// Polyline is the cache's view of a road: an id, a width & an ordered
// run of horizontal path points.
type Polyline struct {
	RoadID int
	Width  float64
	Points []model2d.Coord
}

// Cache buckets road segments by the world tile they cross, so "what roads
// are near (x,z)" is answered by looking at a handful of tiles rather than
// every road in the network.
type Cache struct {
	size float64
	segs map[uint64][]Segment
}

// NewCache returns an empty cache over tiles of the given world size.
func NewCache(size float64) *Cache {
	return &Cache{size: size, segs: map[uint64][]Segment{}}
}

// TileAt returns the tile coordinates containing the world point (x,z).
func (c *Cache) TileAt(x, z float64) (int, int) {
	return int(math.Floor(x / c.size)), int(math.Floor(z / c.size))
}

// Segments returns the cached segments of the given tile, nil if none.
func (c *Cache) Segments(tx, tz int) []Segment {
	return c.segs[Key(tx, tz)]
}

// Len returns the number of non-empty tiles.
func (c *Cache) Len() int {
	return len(c.segs)
}

// Rebuild discards the cache contents & re-clips every polyline segment
// against the tile grid. Lines are processed `batch` at a time with a
// scheduling yield between batches so a big network doesn't monopolise
// the calling goroutine.
func (c *Cache) Rebuild(lines []Polyline, batch int) {
	c.segs = map[uint64][]Segment{}
	if batch < 1 {
		batch = 1
	}

	for start := 0; start < len(lines); start += batch {
		end := start + batch
		if end > len(lines) {
			end = len(lines)
		}
		for _, line := range lines[start:end] {
			c.addLine(line)
		}
		runtime.Gosched()
	}
}

// addLine clips each consecutive point pair of the polyline against every
// tile its bounding box touches.
func (c *Cache) addLine(line Polyline) {
	for i := 0; i+1 < len(line.Points); i++ {
		a := line.Points[i]
		b := line.Points[i+1]

		tx0, tz0 := c.TileAt(math.Min(a.X, b.X), math.Min(a.Y, b.Y))
		tx1, tz1 := c.TileAt(math.Max(a.X, b.X), math.Max(a.Y, b.Y))

		for tx := tx0; tx <= tx1; tx++ {
			for tz := tz0; tz <= tz1; tz++ {
				origin := model2d.Coord{X: float64(tx) * c.size, Y: float64(tz) * c.size}
				bounds := clip.Rect{
					MinX: origin.X,
					MinZ: origin.Y,
					MaxX: origin.X + c.size,
					MaxZ: origin.Y + c.size,
				}

				ca, cb, ok := clip.Segment(a, b, bounds)
				if !ok {
					continue
				}

				k := Key(tx, tz)
				c.segs[k] = append(c.segs[k], Segment{
					RoadID: line.RoadID,
					Width:  line.Width,
					A:      ca.Sub(origin),
					B:      cb.Sub(origin),
				})
			}
		}
	}
}

// Nearest returns the distance from (x,z) to the closest cached segment in
// the 3x3 block of tiles around the query point. ok is false when those
// tiles hold no segments at all - the caller should fall back to a full
// scan of the road list.
func (c *Cache) Nearest(x, z float64) (float64, bool) {
	qtx, qtz := c.TileAt(x, z)
	p := model2d.Coord{X: x, Y: z}

	best := math.Inf(1)
	found := false
	for tx := qtx - 1; tx <= qtx+1; tx++ {
		for tz := qtz - 1; tz <= qtz+1; tz++ {
			origin := model2d.Coord{X: float64(tx) * c.size, Y: float64(tz) * c.size}
			for _, s := range c.segs[Key(tx, tz)] {
				found = true
				d := PointSegDist(p, s.A.Add(origin), s.B.Add(origin))
				if d < best {
					best = d
				}
			}
		}
	}
	return best, found
}

// PointSegDist returns the distance from point p to the segment a-b.
func PointSegDist(p, a, b model2d.Coord) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(a.Add(ab.Scale(t)))
}
