package roadgraph

// Terrain answers the two questions the generator has about the world
// under a point. Implementations must be safe for concurrent readers:
// road generation samples heights from several goroutines at once.
type Terrain interface {
	// HeightAt returns the terrain height at the horizontal point (x,z).
	HeightAt(x, z float64) float64

	// BiomeAt returns an identifier for the biome at (x,z). Only
	// consulted when Config.HeuristicWeight enables the weighted
	// search; return "" if biomes aren't a thing in your world.
	BiomeAt(x, z float64) string
}

// SettlementProvider hands us the towns to connect. Settlement placement
// (and entry point registration) happens before road generation & is not
// this library's business.
type SettlementProvider interface {
	Settlements() []*Settlement
}

// EventSink is notified once when generation completes. Optional. Stays
// silent when generation is skipped for want of settlements.
type EventSink interface {
	RoadsGenerated(roads, settlements int)
}
