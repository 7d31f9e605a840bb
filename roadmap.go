package roadgraph

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"
)

// ColourScheme defines how network features are coloured in the debug
// render. Rendering proper (meshes etc) belongs to the consumer of
// SegmentsForTile; this image exists to eyeball a generated network.
type ColourScheme struct {
	Land        color.Color
	Water       color.Color
	Road        color.Color
	Settlement  color.Color
	EntryPoints color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Land:        colornames.Wheat,
		Water:       colornames.Lightblue,
		Road:        colornames.Dimgray,
		Settlement:  colornames.Crimson,
		EntryPoints: colornames.Gold,
	}
}

// Image renders the network over the given world-space bounds, one pixel
// per world unit.
func (r *Roadgraph) Image(bounds image.Rectangle, scheme *ColourScheme) image.Image {
	if scheme == nil {
		scheme = DefaultScheme()
	}

	w := bounds.Max.X - bounds.Min.X
	h := bounds.Max.Y - bounds.Min.Y
	ctx := gg.NewContext(w, h)

	// terrain underlay: water vs land by the passability threshold
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			wx := float64(bounds.Min.X + px)
			wz := float64(bounds.Min.Y + py)
			if r.terrain.HeightAt(wx, wz) < r.cfg.WaterLevel {
				ctx.SetColor(scheme.Water)
			} else {
				ctx.SetColor(scheme.Land)
			}
			ctx.SetPixel(px, py)
		}
	}

	ctx.SetLineCapRound()
	ctx.SetColor(scheme.Road)
	for _, road := range r.roads {
		if len(road.Path) < 2 {
			continue
		}
		ctx.SetLineWidth(road.Width)
		ctx.MoveTo(road.Path[0].Pos.X-float64(bounds.Min.X), road.Path[0].Pos.Y-float64(bounds.Min.Y))
		for _, p := range road.Path[1:] {
			ctx.LineTo(p.Pos.X-float64(bounds.Min.X), p.Pos.Y-float64(bounds.Min.Y))
		}
		ctx.Stroke()
	}

	for _, s := range r.settlements {
		ctx.SetColor(scheme.Settlement)
		ctx.DrawCircle(s.Pos.X-float64(bounds.Min.X), s.Pos.Y-float64(bounds.Min.Y), 4)
		ctx.Fill()

		ctx.SetColor(scheme.EntryPoints)
		for _, ep := range s.EntryPoints {
			ctx.DrawCircle(ep.Pos.X-float64(bounds.Min.X), ep.Pos.Y-float64(bounds.Min.Y), 2)
			ctx.Fill()
		}
	}

	return ctx.Image()
}

// SavePNG renders the network & writes it to disk.
func (r *Roadgraph) SavePNG(fpath string, bounds image.Rectangle, scheme *ColourScheme) error {
	return savePNG(fpath, r.Image(bounds, scheme))
}
