package roadgraph

// Config holds every tunable of the generator. It is passed to New by
// value & never mutated afterwards - there is no global configuration
// state. Structural fields left zero (widths, steps, batch sizes, the
// water level) are replaced by the documented defaults; zero is
// meaningful for the noise, spacing & redundancy fields ("off"). A zero Seed means "pick one from
// the clock". Start from DefaultConfig & override what you need.
type Config struct {
	// Width of generated roads in world units.
	// Used both for rendering & for the IsOnRoad query (distance
	// within Width/2 counts as on the road).
	RoadWidth float64

	// Surface material tag stamped on every generated road.
	RoadSurface string

	// PathStep is the grid spacing of the pathfinder in world units.
	// Smaller steps hug terrain better but cost more search iterations.
	PathStep float64

	// MaxIterations caps a single path search. When the pathfinder
	// blows this budget the road degrades to a straight interpolated
	// line (which skips the water check - see Road.Fallback).
	MaxIterations int

	// YieldEvery sets how many search iterations run between
	// cooperative yields back to the scheduler.
	YieldEvery int

	// ExtraConnectionRatio adds floor(settlements × ratio) extra short
	// edges on top of the spanning tree, so traffic isn't forced
	// through single chokepoints.
	ExtraConnectionRatio float64

	// SmoothIterations is the number of Chaikin corner-cutting rounds.
	// Each round roughly doubles a path's point count.
	SmoothIterations int

	// NoiseScale is the spatial frequency of the displacement noise
	// field; NoiseStrength is the max perpendicular displacement in
	// world units. Displacements that would push a point below the
	// water level are rejected & the original point kept.
	NoiseScale    float64
	NoiseStrength float64

	// MinPointSpacing drops final path points closer than this to
	// their predecessor, preventing clusters of near-duplicates.
	MinPointSpacing float64

	// WaterLevel is the passability threshold: terrain below this
	// height cannot carry a road. Zero means the default; pass a
	// negative value for worlds whose sea sits below height zero.
	WaterLevel float64

	// TileSize is the world size of one tile of the segment cache.
	TileSize float64

	// RoadBatch is how many roads are generated concurrently per
	// batch; TileBatch is how many roads the cache rebuild processes
	// between scheduling yields.
	RoadBatch int
	TileBatch int

	// HeuristicWeight switches pathfinding from plain BFS to weighted
	// A* when > 0. BiomeCosts then multiplies per-step cost by the
	// multiplier of the biome under the destination cell (missing
	// biomes cost 1). With the default weight of 0 both fields are
	// ignored & every step costs the same.
	HeuristicWeight float64
	BiomeCosts      map[string]float64

	// Seed for all deterministic randomness. A fixed seed, terrain &
	// settlement set reproduce bit-identical road paths.
	Seed int64
}

// DefaultConfig returns the generator defaults.
func DefaultConfig() Config {
	return Config{
		RoadWidth:            8,
		RoadSurface:          "dirt",
		PathStep:             20,
		MaxIterations:        6000,
		YieldEvery:           200,
		ExtraConnectionRatio: 0.25,
		SmoothIterations:     2,
		NoiseScale:           0.02,
		NoiseStrength:        6,
		MinPointSpacing:      4,
		WaterLevel:           5.4,
		TileSize:             64,
		RoadBatch:            4,
		TileBatch:            8,
	}
}

// withDefaults fills zero fields in from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.RoadWidth <= 0 {
		c.RoadWidth = def.RoadWidth
	}
	if c.RoadSurface == "" {
		c.RoadSurface = def.RoadSurface
	}
	if c.PathStep <= 0 {
		c.PathStep = def.PathStep
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = def.MaxIterations
	}
	if c.YieldEvery <= 0 {
		c.YieldEvery = def.YieldEvery
	}
	if c.WaterLevel == 0 {
		c.WaterLevel = def.WaterLevel
	}
	if c.TileSize <= 0 {
		c.TileSize = def.TileSize
	}
	if c.RoadBatch < 1 {
		c.RoadBatch = def.RoadBatch
	}
	if c.TileBatch < 1 {
		c.TileBatch = def.TileBatch
	}
	return c
}
